package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/awave-app/backend/internal/middleware"
	"github.com/awave-app/backend/internal/models"
	"github.com/awave-app/backend/internal/repositories"
	"github.com/awave-app/backend/internal/token"
	"github.com/awave-app/backend/validators"
)

// setupTestEnv builds an echo instance over an in-memory SQLite database.
// In place of the JWT middleware, requests carry their identity in an
// X-User-ID / X-User-Role header pair.
func setupTestEnv(t *testing.T) (*echo.Echo, *echo.Group, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Feed{},
		&models.Comment{},
		&models.Reaction{},
		&models.Report{},
		&models.Notification{},
	))

	e := echo.New()
	e.Validator = validators.NewValidator()

	api := e.Group("/api")
	api.Use(testClaimsMiddleware())

	return e, api, db
}

func testClaimsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if header := c.Request().Header.Get("X-User-ID"); header != "" {
				id, _ := strconv.ParseUint(header, 10, 32)
				role := c.Request().Header.Get("X-User-Role")
				if role == "" {
					role = models.RoleUser
				}
				c.Set(middleware.ClaimsContextKey, &token.Claims{UserID: uint(id), Role: role})
			}
			return next(c)
		}
	}
}

func doJSONRequest(e *echo.Echo, method, target, body string, userID uint, role string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if userID != 0 {
		req.Header.Set("X-User-ID", strconv.FormatUint(uint64(userID), 10))
	}
	if role != "" {
		req.Header.Set("X-User-Role", role)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doRequest(e *echo.Echo, method, target string, userID uint) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if userID != 0 {
		req.Header.Set("X-User-ID", strconv.FormatUint(uint64(userID), 10))
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func seedNotifications(t *testing.T, db *gorm.DB, userID uint, count int) []models.Notification {
	t.Helper()
	repo := repositories.NewPostgresNotificationRepository(db)
	for i := 0; i < count; i++ {
		created, err := repo.CreateIfAbsent(&models.Notification{
			UserID:      userID,
			FromUserID:  99,
			Type:        models.NotificationComment,
			ReferenceID: uint(100 + i),
			Message:     "new comment",
		})
		require.NoError(t, err)
		require.True(t, created)
	}
	items, _, err := repo.List(userID, count, 0, repositories.NotificationFilterAll)
	require.NoError(t, err)
	return items
}

func TestGetNotifications(t *testing.T) {
	e, api, db := setupTestEnv(t)
	NewNotificationHandler(repositories.NewPostgresNotificationRepository(db)).RegisterNotificationRoutes(api)

	seedNotifications(t, db, 2, 3)

	rec := doRequest(e, http.MethodGet, "/api/notifications?limit=2&offset=0", 2)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data   []models.Notification `json:"data"`
		Total  int64                 `json:"total"`
		Limit  int                   `json:"limit"`
		Offset int                   `json:"offset"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(3), body.Total)
	assert.Len(t, body.Data, 2)
	assert.Equal(t, 2, body.Limit)
	assert.Equal(t, 0, body.Offset)
}

func TestGetNotificationsUnauthenticated(t *testing.T) {
	e, api, db := setupTestEnv(t)
	NewNotificationHandler(repositories.NewPostgresNotificationRepository(db)).RegisterNotificationRoutes(api)

	rec := doRequest(e, http.MethodGet, "/api/notifications", 0)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetNotificationsFilter(t *testing.T) {
	e, api, db := setupTestEnv(t)
	repo := repositories.NewPostgresNotificationRepository(db)
	NewNotificationHandler(repo).RegisterNotificationRoutes(api)

	items := seedNotifications(t, db, 2, 3)
	require.NoError(t, repo.MarkAsRead(items[0].ID, 2))

	rec := doRequest(e, http.MethodGet, "/api/notifications?filter=unread", 2)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(2), body.Total)
}

func TestMarkAsReadOwnershipOverHTTP(t *testing.T) {
	e, api, db := setupTestEnv(t)
	NewNotificationHandler(repositories.NewPostgresNotificationRepository(db)).RegisterNotificationRoutes(api)

	items := seedNotifications(t, db, 2, 1)
	target := "/api/notifications/" + strconv.FormatUint(uint64(items[0].ID), 10) + "/read"

	// Someone else's notification id is indistinguishable from a missing one.
	rec := doRequest(e, http.MethodPatch, target, 7)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(e, http.MethodPatch, target, 2)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Marking again stays read.
	rec = doRequest(e, http.MethodPatch, target, 2)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/notifications/unread-count", 2)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Count int64 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(0), body.Count)
}

func TestMarkAllAsReadOverHTTP(t *testing.T) {
	e, api, db := setupTestEnv(t)
	NewNotificationHandler(repositories.NewPostgresNotificationRepository(db)).RegisterNotificationRoutes(api)

	seedNotifications(t, db, 2, 3)

	rec := doRequest(e, http.MethodPost, "/api/notifications/read-all", 2)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count int64 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(3), body.Count)

	rec = doRequest(e, http.MethodPost, "/api/notifications/read-all", 2)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(0), body.Count)
}
