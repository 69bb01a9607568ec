package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account identity. Email is stored trimmed and lower-cased.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email       string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	DisplayName string    `gorm:"size:100;not null" json:"display_name"`
	Password    string    `gorm:"not null" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
