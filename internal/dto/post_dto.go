package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePostRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	IsRemote    bool   `json:"is_remote"`
}

type CollabPostResponse struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Location         string    `json:"location"`
	IsRemote         bool      `json:"is_remote"`
	CreatedAt        time.Time `json:"created_at"`
	OwnerID          uuid.UUID `json:"owner_id"`
	OwnerDisplayName string    `json:"owner_display_name"`
}
