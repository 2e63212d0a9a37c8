package models

import (
	"strings"

	dErrors "certhub/pkg/domain-errors"
)

// RequirementType selects how a requirement area's quota is measured.
type RequirementType string

const (
	RequirementTypeCourseCount   RequirementType = "course_count"
	RequirementTypeTotalDuration RequirementType = "total_duration"
)

func (t RequirementType) IsValid() bool {
	return t == RequirementTypeCourseCount || t == RequirementTypeTotalDuration
}

func (t RequirementType) String() string { return string(t) }

// ParseRequirementType constructs a RequirementType from external input.
func ParseRequirementType(s string) (RequirementType, error) {
	t := RequirementType(strings.TrimSpace(s))
	if !t.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, "invalid requirement type")
	}
	return t, nil
}

// RequirementArea is a named quota inside a certification. It is owned by its
// certification and has no identity of its own beyond its name.
//
// Invariants:
//   - Name is non-empty
//   - Value is strictly positive
//   - No two courses share an identity
type RequirementArea struct {
	name    string
	reqType RequirementType
	value   int
	courses []Course
}

func NewRequirementArea(name string, reqType RequirementType, value int) (*RequirementArea, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "requirement area name cannot be empty")
	}
	if !reqType.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "invalid requirement type")
	}
	if value <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "requirement value must be positive")
	}
	return &RequirementArea{name: name, reqType: reqType, value: value}, nil
}

// HydrateRequirementArea rebuilds an area from persisted rows. Stores use it
// to load areas of published certifications without tripping mutation guards.
func HydrateRequirementArea(name string, reqType RequirementType, value int, courses []Course) *RequirementArea {
	return &RequirementArea{
		name:    name,
		reqType: reqType,
		value:   value,
		courses: append([]Course(nil), courses...),
	}
}

func (a *RequirementArea) Name() string                     { return a.name }
func (a *RequirementArea) RequirementType() RequirementType { return a.reqType }
func (a *RequirementArea) RequirementValue() int            { return a.value }
func (a *RequirementArea) CourseCount() int                 { return len(a.courses) }

// Courses returns a copy of the area's courses in insertion order.
func (a *RequirementArea) Courses() []Course {
	return append([]Course(nil), a.courses...)
}

// TotalDuration sums the duration of every course in the area, in hours.
func (a *RequirementArea) TotalDuration() int {
	total := 0
	for _, c := range a.courses {
		total += c.durationHours
	}
	return total
}

func (a *RequirementArea) Contains(id CourseID) bool {
	for _, c := range a.courses {
		if c.id == id {
			return true
		}
	}
	return false
}

// AddCourse appends course and then checks rule against the area. A failing
// check pops the course again, so a rejected call leaves the area unchanged.
func (a *RequirementArea) AddCourse(course Course, rule Specification) error {
	if a.Contains(course.id) {
		return dErrors.New(dErrors.CodeValidation, "course already exists in this requirement area")
	}

	a.courses = append(a.courses, course)

	if !rule.IsSatisfiedBy(a) {
		a.courses = a.courses[:len(a.courses)-1]
		return dErrors.New(dErrors.CodeValidation, "requirement area validation failed after adding course")
	}
	return nil
}

func (a *RequirementArea) clone() *RequirementArea {
	return HydrateRequirementArea(a.name, a.reqType, a.value, a.courses)
}

func (*RequirementArea) specCandidate() {}
