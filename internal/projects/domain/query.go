package domain

import "time"

// MatchMode selects how a repository compares a column with a search term.
type MatchMode int

const (
	// MatchExact compares with strict equality; the term is never escaped.
	MatchExact MatchMode = iota
	// MatchContains matches the term as a literal substring.
	MatchContains
)

func (m MatchMode) String() string {
	if m == MatchContains {
		return "contains"
	}
	return "exact"
}

// SearchField is a project column the resolver may search.
type SearchField string

const (
	SearchByName    SearchField = "name"
	SearchByAddress SearchField = "address"
)

func (f SearchField) Valid() bool {
	return f == SearchByName || f == SearchByAddress
}

// ListScope picks a predefined project listing.
type ListScope int

const (
	ScopeAll ListScope = iota
	// ScopeCurrent: not finalised and the deadline is unset or after Today.
	ScopeCurrent
	// ScopeOverdue: not finalised and the deadline is before Today.
	ScopeOverdue
	// ScopeByPerson: PersonID holds any of the four roles.
	ScopeByPerson
)

type ProjectFilter struct {
	Scope    ListScope
	PersonID int64
	Today    time.Time
}
