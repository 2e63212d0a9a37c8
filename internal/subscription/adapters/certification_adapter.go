package adapters

import (
	"context"

	certModels "certhub/internal/certification/models"
	dErrors "certhub/pkg/domain-errors"
)

// certificationGetter is the part of the certification service this adapter
// needs. Defined locally so subscriptions do not depend on that package.
type certificationGetter interface {
	GetCertification(ctx context.Context, id certModels.CertificationID) (*certModels.Certification, error)
}

// CertificationChecker answers whether a certification reference is valid.
type CertificationChecker struct {
	certifications certificationGetter
}

func NewCertificationChecker(svc certificationGetter) *CertificationChecker {
	return &CertificationChecker{certifications: svc}
}

// CertificationExists reports false without an error for unknown ids and
// passes every other failure through.
func (a *CertificationChecker) CertificationExists(ctx context.Context, id int64) (bool, error) {
	_, err := a.certifications.GetCertification(ctx, certModels.CertificationID(id))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
