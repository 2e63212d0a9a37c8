package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"certhub/internal/certification/models"
	"certhub/internal/notification"
)

const (
	publishOutcomePublished     = "published"
	publishOutcomeAlreadyActive = "already_active"
	publishOutcomeRejected      = "rejected"
)

// CreateDraft saves a new draft certification.
func (s *Service) CreateDraft(ctx context.Context, name, description string) (_ *models.Certification, err error) {
	ctx, span := startSpan(ctx, "certification.CreateDraft")
	defer func() { endSpan(span, err) }()

	cert, err := models.NewDraft(name, description)
	if err != nil {
		return nil, err
	}
	if err := s.saveCertification(ctx, cert); err != nil {
		return nil, err
	}

	s.logAudit(ctx, "certification_created", "certification_id", int64(cert.ID()))
	if s.metrics != nil {
		s.metrics.IncrementCertificationsCreated()
	}
	return cert, nil
}

// GetCertification loads a fully hydrated certification.
func (s *Service) GetCertification(ctx context.Context, id models.CertificationID) (*models.Certification, error) {
	return s.loadCertification(ctx, id)
}

// AddRequirementArea appends a new area to a draft certification.
func (s *Service) AddRequirementArea(ctx context.Context, id models.CertificationID, name string, reqType models.RequirementType, value int) (_ *models.Certification, err error) {
	ctx, span := startSpan(ctx, "certification.AddRequirementArea",
		attribute.Int64("certification.id", int64(id)))
	defer func() { endSpan(span, err) }()

	cert, err := s.loadCertification(ctx, id)
	if err != nil {
		return nil, err
	}
	area, err := models.NewRequirementArea(name, reqType, value)
	if err != nil {
		return nil, err
	}
	if err := cert.AddRequirementArea(area); err != nil {
		return nil, err
	}
	if err := s.saveCertification(ctx, cert); err != nil {
		return nil, err
	}

	s.logAudit(ctx, "requirement_area_added",
		"certification_id", int64(id),
		"area", area.Name(),
		"requirement_type", string(reqType),
		"requirement_value", value,
	)
	return cert, nil
}

// AddCourseToArea links an existing catalog course to a named area.
func (s *Service) AddCourseToArea(ctx context.Context, id models.CertificationID, areaName string, courseID models.CourseID) (_ *models.Certification, err error) {
	ctx, span := startSpan(ctx, "certification.AddCourseToArea",
		attribute.Int64("certification.id", int64(id)),
		attribute.Int64("course.id", int64(courseID)))
	defer func() { endSpan(span, err) }()

	cert, err := s.loadCertification(ctx, id)
	if err != nil {
		return nil, err
	}
	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if err := cert.AddCourseToArea(areaName, *course); err != nil {
		return nil, err
	}
	if err := s.saveCertification(ctx, cert); err != nil {
		return nil, err
	}

	s.logAudit(ctx, "course_linked",
		"certification_id", int64(id),
		"area", areaName,
		"course_id", int64(courseID),
	)
	return cert, nil
}

// Publish activates a draft whose areas all meet their quotas and announces
// it. Publishing an already active certification returns it unchanged and
// emits nothing.
func (s *Service) Publish(ctx context.Context, id models.CertificationID) (_ *models.Certification, err error) {
	ctx, span := startSpan(ctx, "certification.Publish",
		attribute.Int64("certification.id", int64(id)))
	defer func() { endSpan(span, err) }()

	cert, err := s.loadCertification(ctx, id)
	if err != nil {
		return nil, err
	}
	if cert.Status() == models.StatusActive {
		s.incrementPublish(publishOutcomeAlreadyActive)
		return cert, nil
	}
	if err := cert.Publish(); err != nil {
		s.incrementPublish(publishOutcomeRejected)
		return nil, err
	}
	if err := s.saveCertification(ctx, cert); err != nil {
		return nil, err
	}

	s.logAudit(ctx, "certification_published", "certification_id", int64(id))
	s.incrementPublish(publishOutcomePublished)
	if err := s.notify(ctx, notification.CertificationPublished(int64(cert.ID()), s.now(ctx))); err != nil {
		return nil, err
	}
	return cert, nil
}

// Archive retires a certification. Archiving twice is a no-op.
func (s *Service) Archive(ctx context.Context, id models.CertificationID) (_ *models.Certification, err error) {
	ctx, span := startSpan(ctx, "certification.Archive",
		attribute.Int64("certification.id", int64(id)))
	defer func() { endSpan(span, err) }()

	cert, err := s.loadCertification(ctx, id)
	if err != nil {
		return nil, err
	}
	if cert.Status() == models.StatusArchived {
		return cert, nil
	}
	cert.Archive()
	if err := s.saveCertification(ctx, cert); err != nil {
		return nil, err
	}

	s.logAudit(ctx, "certification_archived", "certification_id", int64(id))
	if err := s.notify(ctx, notification.CertificationArchived(int64(cert.ID()), s.now(ctx))); err != nil {
		return nil, err
	}
	return cert, nil
}

func (s *Service) incrementPublish(outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementPublish(outcome)
	}
}

