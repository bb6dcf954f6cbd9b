package postgres

import (
	"fmt"

	"github.com/GoSim-25-26J-441/pms-backend/config"
)

// DSN returns the keyword/value connection string understood by both lib/pq
// and pgx. DB_DSN wins when set.
func DSN(cfg *config.DatabaseConfig) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, sslMode,
	)
}
