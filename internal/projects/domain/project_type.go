package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ProjectType classifies the building a project delivers. Values match the
// ids in the project_types lookup table.
type ProjectType int

const (
	TypeHouse ProjectType = iota + 1
	TypeApartment
	TypeShop
	TypeWarehouse
	TypeOfficeBuilding
	TypeHotel
	TypeLargeRetail
)

var typeLabels = map[ProjectType]string{
	TypeHouse:          "House",
	TypeApartment:      "Apartment",
	TypeShop:           "Shop",
	TypeWarehouse:      "Warehouse",
	TypeOfficeBuilding: "Office Building",
	TypeHotel:          "Hotel",
	TypeLargeRetail:    "Large Retail",
}

// AllProjectTypes returns the closed set of types ordered by id.
func AllProjectTypes() []ProjectType {
	return []ProjectType{
		TypeHouse,
		TypeApartment,
		TypeShop,
		TypeWarehouse,
		TypeOfficeBuilding,
		TypeHotel,
		TypeLargeRetail,
	}
}

// ProjectTypeFromID maps a persisted id to its type.
func ProjectTypeFromID(id int) (ProjectType, error) {
	t := ProjectType(id)
	if !t.Valid() {
		return 0, fmt.Errorf("invalid project type id: %d", id)
	}
	return t, nil
}

// ParseProjectType accepts an id ("5") or a label, case-insensitive
// ("office building" and "office_building" both match).
func ParseProjectType(v string) (ProjectType, error) {
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		return ProjectTypeFromID(n)
	}
	norm := strings.ReplaceAll(v, "_", " ")
	for t, label := range typeLabels {
		if strings.EqualFold(norm, label) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("invalid project type: %q", v)
}

func (t ProjectType) Valid() bool {
	_, ok := typeLabels[t]
	return ok
}

func (t ProjectType) ID() int { return int(t) }

func (t ProjectType) String() string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return fmt.Sprintf("ProjectType(%d)", int(t))
}

func (t ProjectType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid project type: %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *ProjectType) UnmarshalText(b []byte) error {
	parsed, err := ParseProjectType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
