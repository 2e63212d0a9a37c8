package handler

import "certhub/internal/certification/models"

type CourseResponse struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Duration int    `json:"duration"`
	Category string `json:"category"`
}

type AreaResponse struct {
	Name             string           `json:"name"`
	RequirementType  string           `json:"requirement_type"`
	RequirementValue int              `json:"requirement_value"`
	TotalDuration    int              `json:"total_duration"`
	Courses          []CourseResponse `json:"courses"`
}

type CertificationResponse struct {
	ID               int64          `json:"id"`
	Name             string         `json:"name"`
	Description      string         `json:"description"`
	Status           string         `json:"status"`
	RequirementAreas []AreaResponse `json:"requirement_areas"`
}

func FromCourse(c models.Course) CourseResponse {
	return CourseResponse{
		ID:       int64(c.ID()),
		Title:    c.Title(),
		Duration: c.DurationHours(),
		Category: c.Category(),
	}
}

func FromCourses(courses []*models.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, FromCourse(*c))
	}
	return out
}

// FromCertification converts the aggregate, areas and courses in insertion
// order, to its HTTP representation.
func FromCertification(cert *models.Certification) *CertificationResponse {
	areas := make([]AreaResponse, 0, len(cert.RequirementAreas()))
	for _, area := range cert.RequirementAreas() {
		courses := make([]CourseResponse, 0, area.CourseCount())
		for _, c := range area.Courses() {
			courses = append(courses, FromCourse(c))
		}
		areas = append(areas, AreaResponse{
			Name:             area.Name(),
			RequirementType:  string(area.RequirementType()),
			RequirementValue: area.RequirementValue(),
			TotalDuration:    area.TotalDuration(),
			Courses:          courses,
		})
	}
	return &CertificationResponse{
		ID:               int64(cert.ID()),
		Name:             cert.Name(),
		Description:      cert.Description(),
		Status:           string(cert.Status()),
		RequirementAreas: areas,
	}
}
