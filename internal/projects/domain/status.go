package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ProjectStatus is a stage of the project lifecycle. The numeric value is the
// stage rank and doubles as the persisted id, so statuses compare with < and >.
type ProjectStatus int

const (
	StatusCaptured ProjectStatus = iota + 1
	StatusLogged
	StatusConcept
	StatusPreFeasibility
	StatusBankable
	StatusConstruction
	StatusFinal
)

type statusInfo struct {
	key   string
	label string
}

var statusTable = map[ProjectStatus]statusInfo{
	StatusCaptured:       {key: "captured", label: "Captured"},
	StatusLogged:         {key: "logged", label: "Logged"},
	StatusConcept:        {key: "concept", label: "Concept and Viability"},
	StatusPreFeasibility: {key: "pre_feasibility", label: "Pre-feasibility"},
	StatusBankable:       {key: "bankable", label: "Bankable feasibility"},
	StatusConstruction:   {key: "construction", label: "Construction"},
	StatusFinal:          {key: "final", label: "Finalisation"},
}

// AllStatuses returns every status in lifecycle order.
func AllStatuses() []ProjectStatus {
	return []ProjectStatus{
		StatusCaptured,
		StatusLogged,
		StatusConcept,
		StatusPreFeasibility,
		StatusBankable,
		StatusConstruction,
		StatusFinal,
	}
}

// StatusFromRank maps a persisted rank back to its status.
func StatusFromRank(rank int) (ProjectStatus, error) {
	s := ProjectStatus(rank)
	if !s.Valid() {
		return 0, fmt.Errorf("invalid project status rank: %d", rank)
	}
	return s, nil
}

// ParseStatus accepts a rank ("3"), a key ("concept") or a display label.
func ParseStatus(v string) (ProjectStatus, error) {
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		return StatusFromRank(n)
	}
	for s, info := range statusTable {
		if strings.EqualFold(v, info.key) || strings.EqualFold(v, info.label) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("invalid project status: %q", v)
}

func (s ProjectStatus) Valid() bool {
	_, ok := statusTable[s]
	return ok
}

func (s ProjectStatus) Rank() int { return int(s) }

// Key is the stable machine-readable name used in JSON and on the CLI.
func (s ProjectStatus) Key() string {
	if info, ok := statusTable[s]; ok {
		return info.key
	}
	return "unknown"
}

func (s ProjectStatus) String() string {
	if info, ok := statusTable[s]; ok {
		return info.label
	}
	return fmt.Sprintf("ProjectStatus(%d)", int(s))
}

func (s ProjectStatus) Less(other ProjectStatus) bool { return s < other }

func (s ProjectStatus) IsFinal() bool { return s == StatusFinal }

// Next returns the immediate successor. ok is false for Final and for invalid values.
func (s ProjectStatus) Next() (next ProjectStatus, ok bool) {
	if !s.Valid() || s.IsFinal() {
		return s, false
	}
	return s + 1, true
}

func (s ProjectStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid project status: %d", int(s))
	}
	return []byte(s.Key()), nil
}

func (s *ProjectStatus) UnmarshalText(b []byte) error {
	parsed, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
