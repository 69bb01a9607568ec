package models

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is the lifecycle state of an application.
// Pending is the only non-terminal state.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

// Application is a request to join a post. At most one per
// (post, applicant) pair; the applicant's user row is protected from
// deletion while the application exists, the post cascade removes it.
type Application struct {
	ID              uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PostID          uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_applications_post_applicant" json:"post_id"`
	Post            *CollabPost       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ApplicantUserID uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_applications_post_applicant;index" json:"applicant_user_id"`
	ApplicantUser   *User             `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	Message         string            `gorm:"size:2000;not null" json:"message"`
	Status          ApplicationStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt       time.Time         `gorm:"index" json:"created_at"`
	DecidedAt       *time.Time        `json:"decided_at"`
}
