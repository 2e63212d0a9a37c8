package adapters

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	certModels "certhub/internal/certification/models"
	dErrors "certhub/pkg/domain-errors"
)

type getterFunc func(ctx context.Context, id certModels.CertificationID) (*certModels.Certification, error)

func (f getterFunc) GetCertification(ctx context.Context, id certModels.CertificationID) (*certModels.Certification, error) {
	return f(ctx, id)
}

func TestCertificationExists(t *testing.T) {
	t.Run("known certification", func(t *testing.T) {
		checker := NewCertificationChecker(getterFunc(func(_ context.Context, id certModels.CertificationID) (*certModels.Certification, error) {
			return certModels.Hydrate(id, "Cloud", "", certModels.StatusActive, nil), nil
		}))
		ok, err := checker.CertificationExists(context.Background(), 3)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("unknown certification", func(t *testing.T) {
		checker := NewCertificationChecker(getterFunc(func(context.Context, certModels.CertificationID) (*certModels.Certification, error) {
			return nil, dErrors.New(dErrors.CodeNotFound, "certification not found")
		}))
		ok, err := checker.CertificationExists(context.Background(), 3)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("lookup failure", func(t *testing.T) {
		boom := errors.New("db down")
		checker := NewCertificationChecker(getterFunc(func(context.Context, certModels.CertificationID) (*certModels.Certification, error) {
			return nil, boom
		}))
		_, err := checker.CertificationExists(context.Background(), 3)
		require.ErrorIs(t, err, boom)
	})
}
