package models

import (
	"strings"

	dErrors "certhub/pkg/domain-errors"
)

// MaxCoursesPerCertification caps the number of course links across all areas.
const MaxCoursesPerCertification = 50

// CertificationID identifies a persisted certification. The zero value means
// "not yet saved".
type CertificationID int64

func (id CertificationID) IsZero() bool { return id == 0 }

type Status string

const (
	StatusDraft    Status = "draft"
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

func (s Status) IsValid() bool {
	return s == StatusDraft || s == StatusActive || s == StatusArchived
}

func (s Status) String() string { return string(s) }

// ParseStatus constructs a Status from persisted or external input.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, "invalid certification status")
	}
	return status, nil
}

// Certification is the aggregate root for a certification program and its
// requirement areas.
//
// Invariants:
//   - Name is non-empty
//   - Area names are unique within the certification; areas keep insertion order
//   - Total course links across all areas never exceed MaxCoursesPerCertification
//   - Structure (areas, course links) only changes while Status is draft
//   - Status becomes active only when every area's quota is met
//   - Archived is terminal
//
// Concurrent writers are not detected: there is no version column and the
// last save wins.
type Certification struct {
	id          CertificationID
	name        string
	description string
	status      Status
	areas       []*RequirementArea
}

// NewDraft constructs an unsaved draft certification.
func NewDraft(name, description string) (*Certification, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "certification name cannot be empty")
	}
	return &Certification{
		name:        name,
		description: strings.TrimSpace(description),
		status:      StatusDraft,
	}, nil
}

// Hydrate rebuilds a certification from persisted state. It accepts areas as
// already validated, which lets stores reload active or archived
// certifications whose structure the public API would refuse to modify.
func Hydrate(id CertificationID, name, description string, status Status, areas []*RequirementArea) *Certification {
	c := &Certification{id: id, name: name, description: description, status: status}
	for _, a := range areas {
		c.areas = append(c.areas, a.clone())
	}
	return c
}

func (c *Certification) ID() CertificationID { return c.id }
func (c *Certification) Name() string        { return c.name }
func (c *Certification) Description() string { return c.description }
func (c *Certification) Status() Status      { return c.status }
func (c *Certification) IsDraft() bool       { return c.status == StatusDraft }

// AssignID sets the identity once. Re-assigning the same value is a no-op.
func (c *Certification) AssignID(id CertificationID) error {
	if !c.id.IsZero() && c.id != id {
		return dErrors.New(dErrors.CodeInvalidState, "certification id cannot be changed once set")
	}
	c.id = id
	return nil
}

// RequirementAreas returns copies of the areas in insertion order. Mutating a
// returned area does not affect the aggregate.
func (c *Certification) RequirementAreas() []*RequirementArea {
	out := make([]*RequirementArea, 0, len(c.areas))
	for _, a := range c.areas {
		out = append(out, a.clone())
	}
	return out
}

// RequirementArea returns a copy of the named area.
func (c *Certification) RequirementArea(name string) (*RequirementArea, bool) {
	if a := c.findArea(name); a != nil {
		return a.clone(), true
	}
	return nil, false
}

func (c *Certification) TotalCourseCount() int {
	count := 0
	for _, a := range c.areas {
		count += a.CourseCount()
	}
	return count
}

// AddRequirementArea appends a copy of area. The max-courses rule is checked
// after appending and the area is removed again if it fails.
func (c *Certification) AddRequirementArea(area *RequirementArea) error {
	if !c.IsDraft() {
		return dErrors.New(dErrors.CodeInvalidState, "cannot modify certification structure after it is published")
	}
	if c.findArea(area.name) != nil {
		return dErrors.Newf(dErrors.CodeValidation, "requirement area %q already exists", area.name)
	}

	c.areas = append(c.areas, area.clone())

	if !(MaxCoursesPerCertificationSpecification{}).IsSatisfiedBy(c) {
		c.areas = c.areas[:len(c.areas)-1]
		return dErrors.New(dErrors.CodeValidation, "maximum number of courses per certification exceeded")
	}
	return nil
}

// AddCourseToArea links course to the named area. The certification-wide limit
// is checked before delegating and again on the result, so the area itself is
// only asked for duplicate detection.
func (c *Certification) AddCourseToArea(areaName string, course Course) error {
	if !c.IsDraft() {
		return dErrors.New(dErrors.CodeInvalidState, "cannot add courses to a published certification")
	}
	if c.TotalCourseCount() >= MaxCoursesPerCertification {
		return dErrors.Newf(dErrors.CodeLimitExceeded,
			"maximum number of courses per certification exceeded (max %d)", MaxCoursesPerCertification)
	}

	area := c.findArea(areaName)
	if area == nil {
		return dErrors.New(dErrors.CodeNotFound, "requirement area not found")
	}
	if err := area.AddCourse(course, AlwaysSatisfied{}); err != nil {
		return err
	}
	if !(MaxCoursesPerCertificationSpecification{}).IsSatisfiedBy(c) {
		area.courses = area.courses[:len(area.courses)-1]
		return dErrors.New(dErrors.CodeValidation, "maximum number of courses per certification exceeded")
	}
	return nil
}

// Publish moves a draft to active once every area meets its quota. Areas are
// checked in insertion order and the first failure is returned; status only
// changes after all areas pass. Publishing an active certification is a no-op.
func (c *Certification) Publish() error {
	switch c.status {
	case StatusActive:
		return nil
	case StatusArchived:
		return dErrors.New(dErrors.CodeInvalidState, "archived certification cannot be published")
	}

	if len(c.areas) == 0 {
		return dErrors.New(dErrors.CodeValidation, "certification must have at least one requirement area before publishing")
	}

	for _, area := range c.areas {
		if err := checkAreaQuota(area); err != nil {
			return err
		}
	}

	c.status = StatusActive
	return nil
}

// Archive retires the certification from any status.
func (c *Certification) Archive() {
	c.status = StatusArchived
}

// Clone returns a deep copy, used by in-memory stores to avoid aliasing.
func (c *Certification) Clone() *Certification {
	return Hydrate(c.id, c.name, c.description, c.status, c.areas)
}

func (c *Certification) findArea(name string) *RequirementArea {
	for _, a := range c.areas {
		if a.name == name {
			return a
		}
	}
	return nil
}

func (*Certification) specCandidate() {}

func checkAreaQuota(area *RequirementArea) error {
	switch area.reqType {
	case RequirementTypeCourseCount:
		if !(CourseCountSpecification{}).IsSatisfiedBy(area) {
			return dErrors.Newf(dErrors.CodeValidation, "Area %q requires %d courses, but has %d",
				area.name, area.value, area.CourseCount())
		}
	case RequirementTypeTotalDuration:
		if !(TotalDurationSpecification{}).IsSatisfiedBy(area) {
			return dErrors.Newf(dErrors.CodeValidation, "Area %q requires %d hours duration, but has %d",
				area.name, area.value, area.TotalDuration())
		}
	}
	return nil
}
