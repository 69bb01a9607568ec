package models

import (
	"time"

	"github.com/google/uuid"
)

// CollabPost is a collaboration ad. Posts are immutable after creation;
// deleting the owning user cascades to their posts.
type CollabPost struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Description string    `gorm:"size:2000;not null" json:"description"`
	Location    string    `gorm:"size:100" json:"location"`
	IsRemote    bool      `json:"is_remote"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}
