package routes

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/linklab/linklab-api/internal/config"
	"github.com/linklab/linklab-api/internal/database"
	"github.com/linklab/linklab-api/internal/handlers"
	"github.com/linklab/linklab-api/internal/models"
	"github.com/linklab/linklab-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:   "test-secret",
		JWTIssuer:   "linklab-api",
		JWTAudience: "linklab-clients",
		JWTExpiry:   12 * time.Hour,
	}
}

func setupTestApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock, *services.AuthService) {
	t.Helper()

	conn, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		// Pings are monitored for the health check; keep GORM's own
		// connect-time ping out of the expectations.
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	database.DB = db

	cfg := testConfig()
	authService := services.NewAuthService(db, cfg)
	postService := services.NewPostService(db)
	applicationService := services.NewApplicationService(db)

	app := fiber.New()
	Setup(app, cfg,
		handlers.NewAuthHandler(authService),
		handlers.NewPostHandler(postService),
		handlers.NewApplicationHandler(applicationService),
		handlers.NewHealthHandler(),
	)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	return app, mock, authService
}

func TestHealthEndpoint(t *testing.T) {
	app, mock, _ := setupTestApp(t)
	mock.ExpectPing()

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"status":"ok"`)
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("POST", "/posts", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMeReturnsTokenClaims(t *testing.T) {
	app, _, authService := setupTestApp(t)

	userID := uuid.New()
	token, err := authService.IssueToken(&models.User{
		ID: userID, Email: "alice@example.com", DisplayName: "Alice",
	})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var me struct {
		UserID      uuid.UUID `json:"user_id"`
		Email       string    `json:"email"`
		DisplayName string    `json:"display_name"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
	assert.Equal(t, userID, me.UserID)
	assert.Equal(t, "alice@example.com", me.Email)
	assert.Equal(t, "Alice", me.DisplayName)
}

func TestWrongIssuerTokenRejected(t *testing.T) {
	app, _, _ := setupTestApp(t)

	claims := jwt.MapClaims{
		"sub":          uuid.New().String(),
		"email":        "mallory@example.com",
		"display_name": "Mallory",
		"iss":          "someone-else",
		"aud":          "linklab-clients",
		"iat":          time.Now().Unix(),
		"exp":          time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(testConfig().JWTSecret))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestStoreErrorsAreHiddenFromClients(t *testing.T) {
	app, mock, authService := setupTestApp(t)

	token, err := authService.IssueToken(&models.User{
		ID: uuid.New(), Email: "alice@example.com", DisplayName: "Alice",
	})
	require.NoError(t, err)

	// Owner lookup blows up; the response must not echo the DB error.
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnError(errors.New("pq: connection reset"))

	body := `{"title":"Looking for co-founder","description":"Building a small collaboration board, need help.","location":"","is_remote":true}`
	req := httptest.NewRequest("POST", "/posts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	respBody, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(respBody), "Internal server error")
	assert.NotContains(t, string(respBody), "connection reset")
}

func TestValidationErrorsAreBadRequests(t *testing.T) {
	app, _, authService := setupTestApp(t)

	token, err := authService.IssueToken(&models.User{
		ID: uuid.New(), Email: "alice@example.com", DisplayName: "Alice",
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/posts", strings.NewReader(`{"title":"abc","description":"too short"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetPostMalformedIDIsNotFound(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/posts/not-a-uuid", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetPostNotFound(t *testing.T) {
	app, mock, _ := setupTestApp(t)

	mock.ExpectQuery(`SELECT (.+) FROM "collab_posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	resp, err := app.Test(httptest.NewRequest("GET", "/posts/"+uuid.NewString(), nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
