package service

import (
	"context"
	"errors"

	"certhub/internal/certification/models"
	dErrors "certhub/pkg/domain-errors"
	"certhub/pkg/platform/sentinel"
)

// CreateCourse adds a course to the catalog.
func (s *Service) CreateCourse(ctx context.Context, title string, durationHours int, category string) (_ *models.Course, err error) {
	ctx, span := startSpan(ctx, "course.Create")
	defer func() { endSpan(span, err) }()

	course, err := models.NewCourse(title, durationHours, category)
	if err != nil {
		return nil, err
	}
	if err := s.courses.Save(ctx, course); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save course")
	}

	s.logAudit(ctx, "course_created", "course_id", int64(course.ID()))
	if s.metrics != nil {
		s.metrics.IncrementCoursesCreated()
	}
	return course, nil
}

func (s *Service) GetCourse(ctx context.Context, id models.CourseID) (*models.Course, error) {
	return s.loadCourse(ctx, id)
}

// ListCourses returns the catalog sorted by title.
func (s *Service) ListCourses(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.courses.FindAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list courses")
	}
	return courses, nil
}

func (s *Service) loadCourse(ctx context.Context, id models.CourseID) (*models.Course, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "course not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load course")
	}
	return course, nil
}
