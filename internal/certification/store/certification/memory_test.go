package certification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"certhub/internal/certification/models"
	"certhub/pkg/platform/sentinel"
)

type CertificationStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestCertificationStoreSuite(t *testing.T) {
	suite.Run(t, new(CertificationStoreSuite))
}

func (s *CertificationStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *CertificationStoreSuite) draft(name string) *models.Certification {
	cert, err := models.NewDraft(name, "desc")
	s.Require().NoError(err)
	area, err := models.NewRequirementArea("Core", models.RequirementTypeCourseCount, 1)
	s.Require().NoError(err)
	s.Require().NoError(cert.AddRequirementArea(area))
	return cert
}

func (s *CertificationStoreSuite) TestSaveAssignsIDAndRoundTrips() {
	cert := s.draft("Go")
	s.Require().NoError(cert.AddCourseToArea("Core", models.HydrateCourse(7, "Go", 3, "dev")))

	s.Require().NoError(s.store.Save(s.ctx, cert))
	s.Equal(models.CertificationID(1), cert.ID())

	found, err := s.store.FindByID(s.ctx, cert.ID())
	s.Require().NoError(err)
	s.Equal("Go", found.Name())
	area, ok := found.RequirementArea("Core")
	s.Require().True(ok)
	s.True(area.Contains(7))
}

func (s *CertificationStoreSuite) TestStoredStateIsIsolated() {
	cert := s.draft("Go")
	s.Require().NoError(s.store.Save(s.ctx, cert))

	s.Require().NoError(cert.AddCourseToArea("Core", models.HydrateCourse(1, "A", 1, "")))
	found, err := s.store.FindByID(s.ctx, cert.ID())
	s.Require().NoError(err)
	s.Equal(0, found.TotalCourseCount(), "mutation after save is not visible until saved again")

	s.Require().NoError(found.AddCourseToArea("Core", models.HydrateCourse(2, "B", 1, "")))
	again, err := s.store.FindByID(s.ctx, cert.ID())
	s.Require().NoError(err)
	s.Equal(0, again.TotalCourseCount(), "mutating a loaded copy does not leak into the store")
}

func (s *CertificationStoreSuite) TestSaveReplacesStructure() {
	cert := s.draft("Go")
	s.Require().NoError(s.store.Save(s.ctx, cert))
	s.Require().NoError(cert.AddCourseToArea("Core", models.HydrateCourse(1, "A", 1, "")))
	s.Require().NoError(cert.Publish())
	s.Require().NoError(s.store.Save(s.ctx, cert))

	found, err := s.store.FindByID(s.ctx, cert.ID())
	s.Require().NoError(err)
	s.Equal(models.StatusActive, found.Status())
	s.Equal(1, found.TotalCourseCount())
}

func (s *CertificationStoreSuite) TestNotFound() {
	_, err := s.store.FindByID(s.ctx, 404)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	ghost := models.Hydrate(404, "Ghost", "", models.StatusDraft, nil)
	s.Require().ErrorIs(s.store.Save(s.ctx, ghost), sentinel.ErrNotFound)
}
