package dto

import (
	"time"

	"github.com/google/uuid"
)

type ApplyRequest struct {
	Message string `json:"message"`
}

type ApplicationResponse struct {
	ID              uuid.UUID  `json:"id"`
	PostID          uuid.UUID  `json:"post_id"`
	ApplicantUserID uuid.UUID  `json:"applicant_user_id"`
	Message         string     `json:"message"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	DecidedAt       *time.Time `json:"decided_at"`
}

// ApplicationListItemResponse is the owner's view of an application,
// joined with the applicant's public identity.
type ApplicationListItemResponse struct {
	ID                   uuid.UUID  `json:"id"`
	PostID               uuid.UUID  `json:"post_id"`
	ApplicantUserID      uuid.UUID  `json:"applicant_user_id"`
	ApplicantEmail       string     `json:"applicant_email"`
	ApplicantDisplayName string     `json:"applicant_display_name"`
	Message              string     `json:"message"`
	Status               string     `json:"status"`
	CreatedAt            time.Time  `json:"created_at"`
	DecidedAt            *time.Time `json:"decided_at"`
}
