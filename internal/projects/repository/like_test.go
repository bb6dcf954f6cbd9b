package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	cases := map[string]string{
		"Smith":    "Smith",
		"50%":      "50!%",
		"a_b":      "a!_b",
		"[x]":      "![x]",
		"wow!":     "wow!!",
		"!%":       "!!!%",
		"100%_off": "100!%!_off",
		"":         "",
	}
	for in, want := range cases {
		assert.Equal(t, want, EscapeLike(in), in)
	}
	assert.Equal(t, "%50!%%", containsPattern("50%"))
}
