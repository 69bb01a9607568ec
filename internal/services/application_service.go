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
	ErrApplicationNotFound = errors.New("application not found")
	ErrSelfApplication     = errors.New("cannot apply to your own post")
	ErrAlreadyApplied      = errors.New("already applied to this post")
	ErrAlreadyDecided      = errors.New("application already decided")
	// ErrNotPostOwner is returned for authenticated callers who are not
	// the post's owner. This intentionally reveals that the resource
	// exists; see DESIGN.md.
	ErrNotPostOwner = errors.New("only the post owner may do this")
)

// ApplicationService drives the application lifecycle:
// pending -> accepted | rejected, decided once, by the post owner only.
type ApplicationService struct {
	db *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{db: db}
}

func (s *ApplicationService) Apply(postID, applicantID uuid.UUID, message string) (*dto.ApplicationResponse, error) {
	message = strings.TrimSpace(message)
	if message == "" || utf8.RuneCountInString(message) > 2000 {
		return nil, ValidationError("message must be 1-2000 characters")
	}

	var post models.CollabPost
	if err := s.db.First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if post.UserID == applicantID {
		return nil, ErrSelfApplication
	}

	var existing models.Application
	err := s.db.Where("post_id = ? AND applicant_user_id = ?", postID, applicantID).
		First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyApplied
	}

	app := models.Application{
		ID:              uuid.New(),
		PostID:          postID,
		ApplicantUserID: applicantID,
		Message:         message,
		Status:          models.StatusPending,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.db.Create(&app).Error; err != nil {
		// The unique index on (post_id, applicant_user_id) decides races
		// between concurrent applies; the pre-check above is advisory.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyApplied
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	return applicationResponse(&app), nil
}

// Decide moves a pending application to a terminal state. Only the post
// owner may decide, and only once.
func (s *ApplicationService) Decide(applicationID, deciderID uuid.UUID, status models.ApplicationStatus) (*dto.ApplicationResponse, error) {
	if status != models.StatusAccepted && status != models.StatusRejected {
		return nil, fmt.Errorf("invalid decision status %q", status)
	}

	var app models.Application
	if err := s.db.First(&app, "id = ?", applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}

	var post models.CollabPost
	if err := s.db.First(&post, "id = ?", app.PostID).Error; err != nil {
		return nil, fmt.Errorf("failed to load post for application: %w", err)
	}

	if post.UserID != deciderID {
		return nil, ErrNotPostOwner
	}

	// Conditional update keeps concurrent decisions serializable: the
	// status guard means exactly one caller flips the row.
	decidedAt := time.Now().UTC()
	result := s.db.Model(&models.Application{}).
		Where("id = ? AND status = ?", applicationID, models.StatusPending).
		Updates(map[string]interface{}{
			"status":     status,
			"decided_at": decidedAt,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update application: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrAlreadyDecided
	}

	app.Status = status
	app.DecidedAt = &decidedAt
	return applicationResponse(&app), nil
}

// ListForPost returns all applications for a post, newest first, joined
// with applicant identities. Owner only.
func (s *ApplicationService) ListForPost(postID, requesterID uuid.UUID) ([]dto.ApplicationListItemResponse, error) {
	var post models.CollabPost
	if err := s.db.First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if post.UserID != requesterID {
		return nil, ErrNotPostOwner
	}

	var apps []models.Application
	if err := s.db.Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	applicants, err := s.applicantsByID(apps)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ApplicationListItemResponse, 0, len(apps))
	for i := range apps {
		a := &apps[i]
		item := dto.ApplicationListItemResponse{
			ID:              a.ID,
			PostID:          a.PostID,
			ApplicantUserID: a.ApplicantUserID,
			Message:         a.Message,
			Status:          string(a.Status),
			CreatedAt:       a.CreatedAt,
			DecidedAt:       a.DecidedAt,
		}
		if u, ok := applicants[a.ApplicantUserID]; ok {
			item.ApplicantEmail = u.Email
			item.ApplicantDisplayName = u.DisplayName
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *ApplicationService) applicantsByID(apps []models.Application) (map[uuid.UUID]models.User, error) {
	users := make(map[uuid.UUID]models.User)
	if len(apps) == 0 {
		return users, nil
	}

	ids := make([]uuid.UUID, 0, len(apps))
	seen := make(map[uuid.UUID]bool)
	for i := range apps {
		if !seen[apps[i].ApplicantUserID] {
			seen[apps[i].ApplicantUserID] = true
			ids = append(ids, apps[i].ApplicantUserID)
		}
	}

	var rows []models.User
	if err := s.db.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		users[rows[i].ID] = rows[i]
	}
	return users, nil
}

func applicationResponse(app *models.Application) *dto.ApplicationResponse {
	return &dto.ApplicationResponse{
		ID:              app.ID,
		PostID:          app.PostID,
		ApplicantUserID: app.ApplicantUserID,
		Message:         app.Message,
		Status:          string(app.Status),
		CreatedAt:       app.CreatedAt,
		DecidedAt:       app.DecidedAt,
	}
}
