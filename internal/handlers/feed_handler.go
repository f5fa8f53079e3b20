package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/awave-app/backend/internal/models"
	"github.com/awave-app/backend/internal/repositories"
)

// FeedHandler handles HTTP requests related to feed posts
type FeedHandler struct {
	feedRepository repositories.FeedRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedRepo repositories.FeedRepository) *FeedHandler {
	return &FeedHandler{feedRepository: feedRepo}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.POST("/feed", h.CreateFeed)
	g.GET("/feed", h.GetFeeds)
	g.GET("/feed/:id", h.GetFeed)
}

// CreateFeed creates a new feed post
func (h *FeedHandler) CreateFeed(c echo.Context) error {
	claims := getClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateFeedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	feed := &models.Feed{
		UserID:   claims.UserID,
		Caption:  req.Caption,
		ImageURL: req.ImageURL,
		Location: req.Location,
		Tags:     req.Tags,
	}

	if err := h.feedRepository.CreateFeed(feed); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create feed post")
	}

	return c.JSON(http.StatusCreated, feed)
}

// GetFeeds retrieves paginated feed posts, newest first
func (h *FeedHandler) GetFeeds(c echo.Context) error {
	limit, offset := parsePagination(c)

	feeds, total, err := h.feedRepository.GetFeeds(limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load feeds")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":   feeds,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// GetFeed retrieves a single feed post by ID
func (h *FeedHandler) GetFeed(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid feed ID")
	}

	feed, err := h.feedRepository.GetFeedByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Feed post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load feed post")
	}

	return c.JSON(http.StatusOK, feed)
}
