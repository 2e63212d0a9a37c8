package certification

import (
	"context"
	"sync"

	"certhub/internal/certification/models"
	"certhub/pkg/platform/sentinel"
)

// InMemory keeps deep copies of certifications so that a caller mutating its
// aggregate after Save, or after FindByID, never changes stored state.
type InMemory struct {
	mu             sync.RWMutex
	certifications map[models.CertificationID]*models.Certification
	nextID         models.CertificationID
}

func NewInMemory() *InMemory {
	return &InMemory{certifications: make(map[models.CertificationID]*models.Certification)}
}

func (s *InMemory) Save(_ context.Context, cert *models.Certification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cert.ID().IsZero() {
		s.nextID++
		if err := cert.AssignID(s.nextID); err != nil {
			return err
		}
	} else if _, ok := s.certifications[cert.ID()]; !ok {
		return sentinel.ErrNotFound
	}
	s.certifications[cert.ID()] = cert.Clone()
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id models.CertificationID) (*models.Certification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cert, ok := s.certifications[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cert.Clone(), nil
}
