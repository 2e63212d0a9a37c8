package models

import (
	"strings"

	dErrors "certhub/pkg/domain-errors"
)

// CourseID identifies a persisted course. The zero value means "not yet saved".
type CourseID int64

func (id CourseID) IsZero() bool { return id == 0 }

// Course is a catalog entry. Only its identity may change, and only once,
// when the catalog store assigns it on first save.
type Course struct {
	id            CourseID
	title         string
	durationHours int
	category      string
}

// NewCourse validates and constructs an unsaved course.
func NewCourse(title string, durationHours int, category string) (*Course, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "course title cannot be empty")
	}
	if durationHours <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "course duration must be positive")
	}
	return &Course{
		title:         title,
		durationHours: durationHours,
		category:      strings.TrimSpace(category),
	}, nil
}

// HydrateCourse rebuilds a course from persisted state without re-running
// constructor validation.
func HydrateCourse(id CourseID, title string, durationHours int, category string) Course {
	return Course{id: id, title: title, durationHours: durationHours, category: category}
}

func (c Course) ID() CourseID       { return c.id }
func (c Course) Title() string      { return c.title }
func (c Course) DurationHours() int { return c.durationHours }
func (c Course) Category() string   { return c.category }

// AssignID sets the identity once. Re-assigning the same value is a no-op.
func (c *Course) AssignID(id CourseID) error {
	if !c.id.IsZero() && c.id != id {
		return dErrors.New(dErrors.CodeInvalidState, "course id cannot be changed once set")
	}
	c.id = id
	return nil
}
