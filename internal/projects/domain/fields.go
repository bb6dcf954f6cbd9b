package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// DateLayout is the only accepted deadline format.
const DateLayout = "2006-01-02"

// ProjectField names an editable project column. The set is closed.
type ProjectField string

const (
	FieldName           ProjectField = "name"
	FieldAddress        ProjectField = "address"
	FieldERF            ProjectField = "erf"
	FieldTotalFee       ProjectField = "total_fee"
	FieldTotalPaid      ProjectField = "total_paid"
	FieldDeadline       ProjectField = "deadline"
	FieldCustomer       ProjectField = "customer"
	FieldArchitect      ProjectField = "architect"
	FieldProjectManager ProjectField = "project_manager"
	FieldEngineer       ProjectField = "engineer"
	FieldType           ProjectField = "type"
)

var projectFieldOrder = []ProjectField{
	FieldName,
	FieldAddress,
	FieldERF,
	FieldTotalFee,
	FieldTotalPaid,
	FieldDeadline,
	FieldCustomer,
	FieldArchitect,
	FieldProjectManager,
	FieldEngineer,
	FieldType,
}

// ProjectFields returns the editable fields in display order.
func ProjectFields() []ProjectField {
	out := make([]ProjectField, len(projectFieldOrder))
	copy(out, projectFieldOrder)
	return out
}

func (f ProjectField) Valid() bool {
	for _, known := range projectFieldOrder {
		if f == known {
			return true
		}
	}
	return false
}

// IsRole reports whether the field holds a person id.
func (f ProjectField) IsRole() bool {
	switch f {
	case FieldCustomer, FieldArchitect, FieldProjectManager, FieldEngineer:
		return true
	}
	return false
}

func ParseProjectField(s string) (ProjectField, error) {
	f := ProjectField(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", newRejected(s, CodeUnknownField, "not an editable project field", s, nil)
	}
	return f, nil
}

// ParseProjectValue converts operator text into the canonical value for f.
func ParseProjectValue(f ProjectField, text string) (any, error) {
	if !f.Valid() {
		return nil, newRejected(string(f), CodeUnknownField, "not an editable project field", text, nil)
	}
	trimmed := strings.TrimSpace(text)
	switch f {
	case FieldName, FieldAddress:
		return NormalizeProjectValue(f, text)
	case FieldERF:
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return nil, newRejected(string(f), CodeInvalidFormat, "must be a whole number", text, err)
		}
		return NormalizeProjectValue(f, n)
	case FieldTotalFee, FieldTotalPaid:
		d, err := decimal.NewFromString(trimmed)
		if err != nil {
			return nil, newRejected(string(f), CodeInvalidFormat, "must be a decimal amount", text, err)
		}
		return NormalizeProjectValue(f, d)
	case FieldDeadline:
		return NormalizeProjectValue(f, trimmed)
	case FieldType:
		t, err := ParseProjectType(trimmed)
		if err != nil {
			return nil, newRejected(string(f), CodeInvalidEnum, "unknown project type", text, err)
		}
		return t, nil
	default: // roles
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return nil, newRejected(string(f), CodeInvalidFormat, "must be a person id", text, err)
		}
		return NormalizeProjectValue(f, n)
	}
}

// NormalizeProjectValue validates v and returns it in canonical form:
// string for name/address, int64 for erf and roles, decimal.Decimal rounded to
// two places for money, a UTC date for deadline and ProjectType for type.
func NormalizeProjectValue(f ProjectField, v any) (any, error) {
	switch f {
	case FieldName:
		return normalizeText(string(f), v, MaxProjectNameLen)
	case FieldAddress:
		return normalizeText(string(f), v, MaxAddressLen)
	case FieldERF:
		return normalizePositiveID(string(f), v)
	case FieldTotalFee, FieldTotalPaid:
		return normalizeMoney(string(f), v)
	case FieldDeadline:
		return normalizeDate(string(f), v)
	case FieldType:
		return normalizeType(v)
	case FieldCustomer, FieldArchitect, FieldProjectManager, FieldEngineer:
		return normalizePositiveID(string(f), v)
	}
	return nil, newRejected(string(f), CodeUnknownField, "not an editable project field", fmt.Sprint(v), nil)
}

// FieldValue returns the current value of f in canonical form. Unset optional
// fields return nil.
func (p *Project) FieldValue(f ProjectField) any {
	switch f {
	case FieldName:
		return p.Name
	case FieldAddress:
		if p.Address == "" {
			return nil
		}
		return p.Address
	case FieldERF:
		if p.ERF == 0 {
			return nil
		}
		return p.ERF
	case FieldTotalFee:
		return p.TotalFee
	case FieldTotalPaid:
		return p.TotalPaid
	case FieldDeadline:
		if p.Deadline == nil {
			return nil
		}
		return DateOf(*p.Deadline)
	case FieldCustomer:
		return p.CustomerID
	case FieldArchitect:
		return derefID(p.ArchitectID)
	case FieldProjectManager:
		return derefID(p.ProjectManagerID)
	case FieldEngineer:
		return derefID(p.EngineerID)
	case FieldType:
		return p.Type
	}
	return nil
}

// SetField writes a canonical value into the snapshot. Used by stores that
// keep projects in memory.
func (p *Project) SetField(f ProjectField, v any) {
	switch f {
	case FieldName:
		p.Name = v.(string)
	case FieldAddress:
		p.Address = v.(string)
	case FieldERF:
		p.ERF = v.(int64)
	case FieldTotalFee:
		p.TotalFee = v.(decimal.Decimal)
	case FieldTotalPaid:
		p.TotalPaid = v.(decimal.Decimal)
	case FieldDeadline:
		d := v.(time.Time)
		p.Deadline = &d
	case FieldCustomer:
		p.CustomerID = v.(int64)
	case FieldArchitect:
		id := v.(int64)
		p.ArchitectID = &id
	case FieldProjectManager:
		id := v.(int64)
		p.ProjectManagerID = &id
	case FieldEngineer:
		id := v.(int64)
		p.EngineerID = &id
	case FieldType:
		p.Type = v.(ProjectType)
	}
}

// ProjectValuesEqual compares two canonical values of f.
func ProjectValuesEqual(f ProjectField, a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch f {
	case FieldTotalFee, FieldTotalPaid:
		return a.(decimal.Decimal).Equal(b.(decimal.Decimal))
	case FieldDeadline:
		return a.(time.Time).Equal(b.(time.Time))
	}
	return a == b
}

// FormatProjectValue renders a canonical value as text that ParseProjectValue accepts.
func FormatProjectValue(f ProjectField, v any) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case decimal.Decimal:
		return val.StringFixed(2)
	case time.Time:
		return val.Format(DateLayout)
	case ProjectType:
		return strconv.Itoa(val.ID())
	case int64:
		return strconv.FormatInt(val, 10)
	case string:
		return val
	}
	return fmt.Sprint(v)
}

// PersonField names an editable person column.
type PersonField string

const (
	PersonFirstName PersonField = "first_name"
	PersonSurname   PersonField = "surname"
	PersonEmail     PersonField = "email"
	PersonAddress   PersonField = "address"
)

// PersonFields returns the editable person fields in display order.
func PersonFields() []PersonField {
	return []PersonField{PersonFirstName, PersonSurname, PersonEmail, PersonAddress}
}

func (f PersonField) Valid() bool {
	switch f {
	case PersonFirstName, PersonSurname, PersonEmail, PersonAddress:
		return true
	}
	return false
}

func ParsePersonField(s string) (PersonField, error) {
	f := PersonField(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", newRejected(s, CodeUnknownField, "not an editable person field", s, nil)
	}
	return f, nil
}

// NormalizePersonValue trims and bounds a person field.
func NormalizePersonValue(f PersonField, v string) (string, error) {
	var limit int
	switch f {
	case PersonFirstName, PersonSurname:
		limit = MaxPersonNameLen
	case PersonEmail:
		limit = MaxEmailLen
	case PersonAddress:
		limit = MaxAddressLen
	default:
		return "", newRejected(string(f), CodeUnknownField, "not an editable person field", v, nil)
	}
	out, err := normalizeText(string(f), v, limit)
	if err != nil {
		return "", err
	}
	s := out.(string)
	if f == PersonEmail && !strings.Contains(s, "@") {
		return "", newRejected(string(f), CodeInvalidFormat, "must contain @", v, nil)
	}
	return s, nil
}

// FieldValue returns the current value of a person field.
func (p Person) FieldValue(f PersonField) string {
	switch f {
	case PersonFirstName:
		return p.FirstName
	case PersonSurname:
		return p.Surname
	case PersonEmail:
		return p.Email
	case PersonAddress:
		return p.Address
	}
	return ""
}

func (p *Person) SetField(f PersonField, v string) {
	switch f {
	case PersonFirstName:
		p.FirstName = v
	case PersonSurname:
		p.Surname = v
	case PersonEmail:
		p.Email = v
	case PersonAddress:
		p.Address = v
	}
}

func normalizeText(field string, v any, limit int) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, newRejected(field, CodeInvalidFormat, "must be text", fmt.Sprint(v), nil)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, newRejected(field, CodeRequired, "must not be blank", s, nil)
	}
	if utf8.RuneCountInString(s) > limit {
		return nil, newRejected(field, CodeTooLong, fmt.Sprintf("at most %d characters", limit), s, nil)
	}
	return s, nil
}

func normalizePositiveID(field string, v any) (any, error) {
	var n int64
	switch val := v.(type) {
	case int64:
		n = val
	case int:
		n = int64(val)
	case int32:
		n = int64(val)
	case float64:
		if val != float64(int64(val)) {
			return nil, newRejected(field, CodeInvalidFormat, "must be a whole number", fmt.Sprint(v), nil)
		}
		n = int64(val)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return nil, newRejected(field, CodeInvalidFormat, "must be a whole number", val, err)
		}
		n = parsed
	default:
		return nil, newRejected(field, CodeInvalidFormat, "must be a whole number", fmt.Sprint(v), nil)
	}
	if n <= 0 {
		return nil, newRejected(field, CodeOutOfRange, "must be greater than zero", strconv.FormatInt(n, 10), nil)
	}
	return n, nil
}

func normalizeMoney(field string, v any) (any, error) {
	var d decimal.Decimal
	switch val := v.(type) {
	case decimal.Decimal:
		d = val
	case float64:
		d = decimal.NewFromFloat(val)
	case int64:
		d = decimal.NewFromInt(val)
	case int:
		d = decimal.NewFromInt(int64(val))
	case string:
		parsed, err := decimal.NewFromString(strings.TrimSpace(val))
		if err != nil {
			return nil, newRejected(field, CodeInvalidFormat, "must be a decimal amount", val, err)
		}
		d = parsed
	default:
		return nil, newRejected(field, CodeInvalidFormat, "must be a decimal amount", fmt.Sprint(v), nil)
	}
	if d.IsNegative() {
		return nil, newRejected(field, CodeOutOfRange, "must not be negative", d.String(), nil)
	}
	// Round is half away from zero, which is half-up for non-negative amounts.
	return d.Round(2), nil
}

func normalizeDate(field string, v any) (any, error) {
	switch val := v.(type) {
	case time.Time:
		if val.IsZero() {
			return nil, newRejected(field, CodeRequired, "must be a date", "", nil)
		}
		return DateOf(val), nil
	case string:
		t, err := time.Parse(DateLayout, strings.TrimSpace(val))
		if err != nil {
			return nil, newRejected(field, CodeInvalidFormat, "must be YYYY-MM-DD", val, err)
		}
		return t, nil
	}
	return nil, newRejected(field, CodeInvalidFormat, "must be YYYY-MM-DD", fmt.Sprint(v), nil)
}

func normalizeType(v any) (any, error) {
	var (
		t   ProjectType
		err error
	)
	switch val := v.(type) {
	case ProjectType:
		t = val
		if !t.Valid() {
			err = errors.New("unknown id")
		}
	case int:
		t, err = ProjectTypeFromID(val)
	case int64:
		t, err = ProjectTypeFromID(int(val))
	case string:
		t, err = ParseProjectType(val)
	default:
		err = errors.New("unsupported value")
	}
	if err != nil {
		return nil, newRejected(string(FieldType), CodeInvalidEnum, "unknown project type", fmt.Sprint(v), err)
	}
	return t, nil
}

func derefID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
