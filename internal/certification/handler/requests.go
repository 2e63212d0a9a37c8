package handler

import (
	"strings"

	"certhub/internal/certification/models"
	dErrors "certhub/pkg/domain-errors"
)

const (
	maxNameLength        = 255
	maxDescriptionLength = 4000
)

// CreateCertificationRequest is the body of POST /api/certifications.
type CreateCertificationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r *CreateCertificationRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Name) > maxNameLength {
		return dErrors.Newf(dErrors.CodeValidation, "name must be at most %d characters", maxNameLength)
	}
	if len(r.Description) > maxDescriptionLength {
		return dErrors.Newf(dErrors.CodeValidation, "description must be at most %d characters", maxDescriptionLength)
	}
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	return nil
}

// AddAreaRequest is the body of POST /api/certifications/{id}/areas.
type AddAreaRequest struct {
	Name             string `json:"name"`
	RequirementType  string `json:"requirement_type"`
	RequirementValue int    `json:"requirement_value"`

	parsedType models.RequirementType
}

func (r *AddAreaRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Name) > maxNameLength {
		return dErrors.Newf(dErrors.CodeValidation, "name must be at most %d characters", maxNameLength)
	}
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	reqType, err := models.ParseRequirementType(strings.TrimSpace(r.RequirementType))
	if err != nil {
		return err
	}
	r.parsedType = reqType
	if r.RequirementValue <= 0 {
		return dErrors.New(dErrors.CodeValidation, "requirement_value must be greater than zero")
	}
	return nil
}

func (r *AddAreaRequest) ParsedType() models.RequirementType {
	return r.parsedType
}

// AddCourseRequest is the body of POST /api/certifications/{id}/areas/{area}/courses.
type AddCourseRequest struct {
	CourseID int64 `json:"course_id"`
}

func (r *AddCourseRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.CourseID <= 0 {
		return dErrors.New(dErrors.CodeValidation, "course_id must be a positive integer")
	}
	return nil
}

// CreateCourseRequest is the body of POST /api/courses.
type CreateCourseRequest struct {
	Title    string `json:"title"`
	Duration int    `json:"duration"`
	Category string `json:"category"`
}

func (r *CreateCourseRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Title) > maxNameLength || len(r.Category) > maxNameLength {
		return dErrors.Newf(dErrors.CodeValidation, "title and category must be at most %d characters", maxNameLength)
	}
	r.Title = strings.TrimSpace(r.Title)
	r.Category = strings.TrimSpace(r.Category)
	if r.Title == "" {
		return dErrors.New(dErrors.CodeValidation, "title is required")
	}
	if r.Duration <= 0 {
		return dErrors.New(dErrors.CodeValidation, "duration must be greater than zero")
	}
	return nil
}
