package handler

import (
	"strings"
	"time"

	"certhub/internal/subscription/models"
	dErrors "certhub/pkg/domain-errors"
)

// CreateSubscriptionRequest is the body of POST /api/subscriptions.
type CreateSubscriptionRequest struct {
	UserID          int64  `json:"user_id"`
	CertificationID int64  `json:"certification_id"`
	Type            string `json:"type"`
	AutoRenew       *bool  `json:"auto_renew"`

	parsedType models.Type
}

// Validate parses the type. auto_renew defaults to true when omitted.
func (r *CreateSubscriptionRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.UserID <= 0 {
		return dErrors.New(dErrors.CodeValidation, "user_id must be a positive integer")
	}
	if r.CertificationID <= 0 {
		return dErrors.New(dErrors.CodeValidation, "certification_id must be a positive integer")
	}
	subType, err := models.ParseType(strings.TrimSpace(r.Type))
	if err != nil {
		return err
	}
	r.parsedType = subType
	return nil
}

func (r *CreateSubscriptionRequest) ParsedType() models.Type {
	return r.parsedType
}

func (r *CreateSubscriptionRequest) ParsedAutoRenew() bool {
	return r.AutoRenew == nil || *r.AutoRenew
}

// RenewRequest is the optional body of POST /api/subscriptions/renew.
type RenewRequest struct {
	ReferenceTime string `json:"reference_time"`

	parsedTime time.Time
}

func (r *RenewRequest) Validate() error {
	if r == nil {
		return nil
	}
	r.ReferenceTime = strings.TrimSpace(r.ReferenceTime)
	if r.ReferenceTime == "" {
		return nil
	}
	at, err := time.Parse(time.RFC3339, r.ReferenceTime)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, "reference_time must be an RFC 3339 timestamp")
	}
	r.parsedTime = at
	return nil
}

// ParsedTime returns the requested reference time, or fallback when none was given.
func (r *RenewRequest) ParsedTime(fallback time.Time) time.Time {
	if r.parsedTime.IsZero() {
		return fallback
	}
	return r.parsedTime
}
