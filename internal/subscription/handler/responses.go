package handler

import (
	"time"

	"certhub/internal/subscription/models"
)

type SubscriptionResponse struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	CertificationID int64     `json:"certification_id"`
	Type            string    `json:"type"`
	State           string    `json:"state"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	AutoRenew       bool      `json:"auto_renew"`
}

type RenewResponse struct {
	Message       string    `json:"message"`
	ReferenceTime time.Time `json:"reference_time"`
}

func FromSubscription(sub *models.Subscription) *SubscriptionResponse {
	return &SubscriptionResponse{
		ID:              int64(sub.ID()),
		UserID:          sub.UserID(),
		CertificationID: sub.CertificationID(),
		Type:            string(sub.Type()),
		State:           string(sub.State()),
		StartDate:       sub.StartDate(),
		EndDate:         sub.EndDate(),
		AutoRenew:       sub.AutoRenew(),
	}
}
