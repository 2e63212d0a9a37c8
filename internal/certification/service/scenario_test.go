package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"certhub/internal/certification/models"
	"certhub/internal/certification/store/certification"
	"certhub/internal/certification/store/course"
	"certhub/internal/notification"
	dErrors "certhub/pkg/domain-errors"
	"certhub/pkg/testutil"
)

type recordingObserver struct {
	events []notification.Event
}

func (r *recordingObserver) Handle(_ context.Context, e notification.Event) error {
	r.events = append(r.events, e)
	return nil
}

func TestPublishFlowAgainstInMemoryStores(t *testing.T) {
	ctx := context.Background()
	observer := &recordingObserver{}
	svc := New(certification.NewInMemory(), course.NewInMemory(),
		WithNotifier(notification.NewSubject(observer)))

	first, err := svc.CreateCourse(ctx, "Go Basics", 10, "dev")
	require.NoError(t, err)
	second, err := svc.CreateCourse(ctx, "Go Concurrency", 8, "dev")
	require.NoError(t, err)

	cert, err := svc.CreateDraft(ctx, "X", "d")
	require.NoError(t, err)
	id := cert.ID()

	_, err = svc.AddRequirementArea(ctx, id, "A", models.RequirementTypeCourseCount, 2)
	require.NoError(t, err)
	_, err = svc.AddCourseToArea(ctx, id, "A", first.ID())
	require.NoError(t, err)

	testutil.When(t, "one of two required courses is linked", func(t *testing.T) {
		_, err := svc.Publish(ctx, id)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.Contains(t, err.Error(), "requires 2 courses, but has 1")

		stored, err := svc.GetCertification(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, models.StatusDraft, stored.Status())
		assert.Empty(t, observer.events)
	})

	testutil.When(t, "the second course is linked", func(t *testing.T) {
		_, err := svc.AddCourseToArea(ctx, id, "A", second.ID())
		require.NoError(t, err)

		published, err := svc.Publish(ctx, id)
		require.NoError(t, err)

		testutil.Then(t, "the certification is active and announced once", func(t *testing.T) {
			assert.Equal(t, models.StatusActive, published.Status())
			stored, err := svc.GetCertification(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, models.StatusActive, stored.Status())
			require.Len(t, observer.events, 1)
			assert.Equal(t, notification.EventCertificationPublished, observer.events[0].Name)
			assert.Equal(t, int64(id), observer.events[0].AggregateID)
		})

		testutil.Then(t, "publishing again changes nothing", func(t *testing.T) {
			_, err := svc.Publish(ctx, id)
			require.NoError(t, err)
			assert.Len(t, observer.events, 1)
		})

		testutil.Then(t, "the structure is frozen", func(t *testing.T) {
			_, err := svc.AddRequirementArea(ctx, id, "B", models.RequirementTypeCourseCount, 1)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
		})
	})
}

func TestCourseLimitAcrossAreas(t *testing.T) {
	ctx := context.Background()
	svc := New(certification.NewInMemory(), course.NewInMemory())

	cert, err := svc.CreateDraft(ctx, "Big", "")
	require.NoError(t, err)
	for _, area := range []string{"A", "B"} {
		_, err := svc.AddRequirementArea(ctx, cert.ID(), area, models.RequirementTypeCourseCount, 1)
		require.NoError(t, err)
	}

	for i := 0; i < models.MaxCoursesPerCertification; i++ {
		c, err := svc.CreateCourse(ctx, "Course", 1, "")
		require.NoError(t, err)
		area := "A"
		if i%2 == 1 {
			area = "B"
		}
		_, err = svc.AddCourseToArea(ctx, cert.ID(), area, c.ID())
		require.NoError(t, err)
	}

	extra, err := svc.CreateCourse(ctx, "One too many", 1, "")
	require.NoError(t, err)
	_, err = svc.AddCourseToArea(ctx, cert.ID(), "A", extra.ID())
	require.Error(t, err)
	assert.True(t, dErrors.IsValidation(err))

	stored, err := svc.GetCertification(ctx, cert.ID())
	require.NoError(t, err)
	assert.Equal(t, models.MaxCoursesPerCertification, stored.TotalCourseCount())
}
