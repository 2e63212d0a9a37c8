package course

import (
	"context"
	"sort"
	"sync"

	"certhub/internal/certification/models"
	"certhub/pkg/platform/sentinel"
)

// InMemory is a mutex-guarded course catalog. Courses are stored by value, so
// callers never share state with the store.
type InMemory struct {
	mu      sync.RWMutex
	courses map[models.CourseID]models.Course
	nextID  models.CourseID
}

func NewInMemory() *InMemory {
	return &InMemory{courses: make(map[models.CourseID]models.Course)}
}

func (s *InMemory) Save(_ context.Context, course *models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if course.ID().IsZero() {
		s.nextID++
		if err := course.AssignID(s.nextID); err != nil {
			return err
		}
	} else if _, ok := s.courses[course.ID()]; !ok {
		return sentinel.ErrNotFound
	}
	s.courses[course.ID()] = *course
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id models.CourseID) (*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.courses[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &c, nil
}

// FindAll returns every course ordered by title, then id.
func (s *InMemory) FindAll(_ context.Context) ([]*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Course, 0, len(s.courses))
	for _, c := range s.courses {
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Title() != out[j].Title() {
			return out[i].Title() < out[j].Title()
		}
		return out[i].ID() < out[j].ID()
	})
	return out, nil
}
