package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GoSim-25-26J-441/pms-backend/config"
)

func TestDSN(t *testing.T) {
	cfg := &config.DatabaseConfig{Host: "db", Port: 5433, User: "pms", Password: "secret", Name: "pms"}
	assert.Equal(t, "host=db port=5433 user=pms password=secret dbname=pms sslmode=disable", DSN(cfg))

	cfg.SSLMode = "require"
	assert.True(t, strings.HasSuffix(DSN(cfg), "sslmode=require"))

	cfg.DSN = "postgres://u@h/d"
	assert.Equal(t, "postgres://u@h/d", DSN(cfg))
}

func TestSchema(t *testing.T) {
	s := Schema()
	for _, table := range []string{"project_types", "project_statuses", "persons", "projects"} {
		assert.Contains(t, s, "CREATE TABLE IF NOT EXISTS "+table)
	}
}
