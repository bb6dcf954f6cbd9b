package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Column limits shared by validation and the schema.
const (
	MaxProjectNameLen = 80
	MaxAddressLen     = 120
	MaxPersonNameLen  = 40
	MaxEmailLen       = 50
)

// Project is a snapshot of one project row. Role assignments are person ids;
// resolve them on demand instead of embedding Person copies.
type Project struct {
	Number           int64           `json:"number"`
	Name             string          `json:"name"`
	Address          string          `json:"address,omitempty"`
	ERF              int64           `json:"erf,omitempty"`
	TotalFee         decimal.Decimal `json:"total_fee"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	Deadline         *time.Time      `json:"deadline,omitempty"`
	Type             ProjectType     `json:"type"`
	Status           ProjectStatus   `json:"status"`
	CustomerID       int64           `json:"customer_id"`
	ArchitectID      *int64          `json:"architect_id,omitempty"`
	EngineerID       *int64          `json:"engineer_id,omitempty"`
	ProjectManagerID *int64          `json:"project_manager_id,omitempty"`
}

// NewProject builds an unsaved project in the Captured stage.
func NewProject(name string, t ProjectType, customerID int64) *Project {
	return &Project{
		Name:       name,
		Type:       t,
		Status:     StatusCaptured,
		CustomerID: customerID,
		TotalFee:   decimal.Zero,
		TotalPaid:  decimal.Zero,
	}
}

func (p *Project) HasAddress() bool { return strings.TrimSpace(p.Address) != "" }

// Overdue reports whether the deadline has passed on a project that is not finalised.
func (p *Project) Overdue(today time.Time) bool {
	if p.Deadline == nil || p.Status.IsFinal() {
		return false
	}
	return p.Deadline.Before(DateOf(today))
}

// Person is anyone who can hold a role on a project.
type Person struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	Surname   string `json:"surname"`
	Email     string `json:"email"`
	Address   string `json:"address"`
}

func (p Person) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.Surname)
}

// OneLine renders "First Surname <email>" for pick lists.
func (p Person) OneLine() string {
	return p.FullName() + " <" + p.Email + ">"
}

// Roles holds the people resolved for a project's role ids.
type Roles struct {
	Customer       *Person `json:"customer,omitempty"`
	Architect      *Person `json:"architect,omitempty"`
	Engineer       *Person `json:"engineer,omitempty"`
	ProjectManager *Person `json:"project_manager,omitempty"`
}

// DateOf truncates t to a calendar date in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
