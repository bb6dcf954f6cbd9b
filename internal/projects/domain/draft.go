package domain

import "time"

// Draft is a pending project change-set parked between requests. Entries hold
// operator text keyed by field name so a draft survives a schema-compatible
// restart and is re-validated when loaded.
type Draft struct {
	ProjectNumber int64             `json:"project_number"`
	Entries       map[string]string `json:"entries"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func (d *Draft) Empty() bool { return d == nil || len(d.Entries) == 0 }
