package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/linklab/linklab-api/internal/dto"
	"github.com/linklab/linklab-api/internal/models"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound = errors.New("post not found")
	// ErrUserNotFound means the authenticated subject has no user row
	// (e.g. a token outliving a deleted account).
	ErrUserNotFound = errors.New("user not found")
)

const postListMaxLimit = 50

// PostService handles collaboration post creation and lookup.
type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

func (s *PostService) Create(ownerID uuid.UUID, req *dto.CreatePostRequest) (*dto.CollabPostResponse, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	location := strings.TrimSpace(req.Location)

	// Bounds are in characters, not bytes.
	if n := utf8.RuneCountInString(title); n < 5 || n > 100 {
		return nil, ValidationError("title must be 5-100 characters")
	}
	if n := utf8.RuneCountInString(description); n < 20 || n > 2000 {
		return nil, ValidationError("description must be 20-2000 characters")
	}
	if utf8.RuneCountInString(location) > 100 {
		return nil, ValidationError("location must be at most 100 characters")
	}

	var owner models.User
	if err := s.db.First(&owner, "id = ?", ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load owner: %w", err)
	}

	post := models.CollabPost{
		ID:          uuid.New(),
		UserID:      ownerID,
		Title:       title,
		Description: description,
		Location:    location,
		IsRemote:    req.IsRemote,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.db.Create(&post).Error; err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return postResponse(&post, owner.DisplayName), nil
}

// List returns the newest posts, capped. Limit is clamped to [1,50];
// the handler defaults an absent limit to 20.
func (s *PostService) List(limit int) ([]dto.CollabPostResponse, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > postListMaxLimit {
		limit = postListMaxLimit
	}

	var posts []models.CollabPost
	if err := s.db.Order("created_at DESC").Limit(limit).Find(&posts).Error; err != nil {
		return nil, err
	}

	names, err := s.ownerNames(posts)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CollabPostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, *postResponse(&posts[i], names[posts[i].UserID]))
	}
	return out, nil
}

func (s *PostService) GetByID(id uuid.UUID) (*dto.CollabPostResponse, error) {
	var post models.CollabPost
	if err := s.db.First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	// Missing owner degrades to an empty display name.
	displayName := ""
	var owner models.User
	if err := s.db.First(&owner, "id = ?", post.UserID).Error; err == nil {
		displayName = owner.DisplayName
	}

	return postResponse(&post, displayName), nil
}

func (s *PostService) ownerNames(posts []models.CollabPost) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string)
	if len(posts) == 0 {
		return names, nil
	}

	ids := make([]uuid.UUID, 0, len(posts))
	seen := make(map[uuid.UUID]bool)
	for i := range posts {
		if !seen[posts[i].UserID] {
			seen[posts[i].UserID] = true
			ids = append(ids, posts[i].UserID)
		}
	}

	var owners []models.User
	if err := s.db.Where("id IN ?", ids).Find(&owners).Error; err != nil {
		return nil, err
	}
	for i := range owners {
		names[owners[i].ID] = owners[i].DisplayName
	}
	return names, nil
}

func postResponse(post *models.CollabPost, ownerDisplayName string) *dto.CollabPostResponse {
	return &dto.CollabPostResponse{
		ID:               post.ID,
		Title:            post.Title,
		Description:      post.Description,
		Location:         post.Location,
		IsRemote:         post.IsRemote,
		CreatedAt:        post.CreatedAt,
		OwnerID:          post.UserID,
		OwnerDisplayName: ownerDisplayName,
	}
}
