package services

import (
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/linklab/linklab-api/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreatePostRequest() *dto.CreatePostRequest {
	return &dto.CreatePostRequest{
		Title:       "Looking for co-founder",
		Description: "Building a small collaboration board, need help with the frontend.",
		Location:    "Melbourne",
		IsRemote:    true,
	}
}

func postRows(id, ownerID uuid.UUID, title string, createdAt time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "title", "description", "location", "is_remote", "created_at"}).
		AddRow(id.String(), ownerID.String(), title, "A description that is long enough.", "", false, createdAt)
}

func TestCreatePostValidatesBounds(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewPostService(db)
	ownerID := uuid.New()

	cases := []struct {
		name   string
		mutate func(*dto.CreatePostRequest)
	}{
		{"title too short", func(r *dto.CreatePostRequest) { r.Title = "abc" }},
		{"title too short after trim", func(r *dto.CreatePostRequest) { r.Title = "  ab  " }},
		{"title too long", func(r *dto.CreatePostRequest) { r.Title = strings.Repeat("a", 101) }},
		{"description too short", func(r *dto.CreatePostRequest) { r.Description = "too short" }},
		{"description too long", func(r *dto.CreatePostRequest) { r.Description = strings.Repeat("d", 2001) }},
		{"location too long", func(r *dto.CreatePostRequest) { r.Location = strings.Repeat("l", 101) }},
		// Bounds count characters: 7 CJK characters are 21 bytes but
		// still under the 20-character floor.
		{"description short in characters", func(r *dto.CreatePostRequest) { r.Description = strings.Repeat("協", 7) }},
		{"title long in characters", func(r *dto.CreatePostRequest) { r.Title = strings.Repeat("協", 101) }},
		{"location long in characters", func(r *dto.CreatePostRequest) { r.Location = strings.Repeat("協", 101) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreatePostRequest()
			tc.mutate(req)
			_, err := svc.Create(ownerID, req)
			var vErr ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}
}

func TestCreatePostAcceptsMultibyteDescription(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPostService(db)
	ownerID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(userRows(ownerID, "alice@example.com", "Alice", "hash"))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "collab_posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectCommit()

	req := validCreatePostRequest()
	req.Description = strings.Repeat("協", 25) // 25 characters, 75 bytes

	post, err := svc.Create(ownerID, req)
	require.NoError(t, err)
	assert.Equal(t, req.Description, post.Description)
}

func TestCreatePostSuccess(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPostService(db)
	ownerID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(userRows(ownerID, "alice@example.com", "Alice", "hash"))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "collab_posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectCommit()

	post, err := svc.Create(ownerID, validCreatePostRequest())
	require.NoError(t, err)
	assert.Equal(t, "Looking for co-founder", post.Title)
	assert.Equal(t, ownerID, post.OwnerID)
	assert.Equal(t, "Alice", post.OwnerDisplayName)
	assert.False(t, post.CreatedAt.IsZero())
}

func TestCreatePostUnknownOwner(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPostService(db)

	mock.ExpectQuery(`SELECT (.+) FROM "users"`).WillReturnRows(emptyUserRows())

	_, err := svc.Create(uuid.New(), validCreatePostRequest())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListClampsLimit(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPostService(db)

	emptyPosts := sqlmock.NewRows([]string{"id", "user_id", "title", "description", "location", "is_remote", "created_at"})

	// Above the cap.
	mock.ExpectQuery(`SELECT (.+) FROM "collab_posts"`).WithArgs(50).WillReturnRows(emptyPosts)
	out, err := svc.List(500)
	require.NoError(t, err)
	assert.Empty(t, out)

	// Below the floor.
	emptyPosts = sqlmock.NewRows([]string{"id", "user_id", "title", "description", "location", "is_remote", "created_at"})
	mock.ExpectQuery(`SELECT (.+) FROM "collab_posts"`).WithArgs(1).WillReturnRows(emptyPosts)
	_, err = svc.List(0)
	require.NoError(t, err)
}

func TestListJoinsOwnerDisplayNames(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPostService(db)

	owner := uuid.New()
	stranger := uuid.New()
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "description", "location", "is_remote", "created_at"}).
		AddRow(uuid.New().String(), owner.String(), "Newest post", "A description that is long enough.", "", false, now).
		AddRow(uuid.New().String(), stranger.String(), "Older post", "A description that is long enough.", "", false, now.Add(-time.Hour))

	mock.ExpectQuery(`SELECT (.+) FROM "collab_posts"`).WillReturnRows(rows)
	// Only the owner row exists; the other falls back to "".
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(userRows(owner, "alice@example.com", "Alice", "hash"))

	out, err := svc.List(20)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Newest post", out[0].Title)
	assert.Equal(t, "Alice", out[0].OwnerDisplayName)
	assert.Equal(t, "", out[1].OwnerDisplayName)
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPostService(db)

	mock.ExpectQuery(`SELECT (.+) FROM "collab_posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.GetByID(uuid.New())
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestGetByIDMissingOwnerDegrades(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPostService(db)

	postID := uuid.New()
	mock.ExpectQuery(`SELECT (.+) FROM "collab_posts"`).
		WillReturnRows(postRows(postID, uuid.New(), "Orphaned post", time.Now().UTC()))
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).WillReturnRows(emptyUserRows())

	post, err := svc.GetByID(postID)
	require.NoError(t, err)
	assert.Equal(t, "Orphaned post", post.Title)
	assert.Equal(t, "", post.OwnerDisplayName)
}
