package repository

import "strings"

// LikeEscapeChar is declared with ESCAPE in every LIKE predicate built here.
const LikeEscapeChar = "!"

var likeReplacer = strings.NewReplacer(
	"!", "!!",
	"%", "!%",
	"_", "!_",
	"[", "![",
)

// EscapeLike makes term match literally inside a LIKE pattern that declares
// ESCAPE '!'. The escape character is rewritten first by the replacer's
// single left-to-right pass, so "!%" becomes "!!!%".
func EscapeLike(term string) string {
	return likeReplacer.Replace(term)
}

// containsPattern wraps an escaped term for a substring match.
func containsPattern(term string) string {
	return "%" + EscapeLike(term) + "%"
}
