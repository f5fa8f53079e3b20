package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/awave-app/backend/internal/models"
	"github.com/awave-app/backend/internal/notifier"
	"github.com/awave-app/backend/internal/repositories"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	feedRepository    repositories.FeedRepository
	userRepository    repositories.UserRepository
	notifier          *notifier.Notifier
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, feedRepo repositories.FeedRepository, userRepo repositories.UserRepository, n *notifier.Notifier) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		feedRepository:    feedRepo,
		userRepository:    userRepo,
		notifier:          n,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/comment/:feedId", h.CreateComment)
	g.GET("/comment/:feedId", h.GetCommentsByFeedID)
}

// CreateComment creates a new comment on a feed post and notifies the feed
// owner. The notification is best-effort: the comment succeeds even when the
// notification path fails.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	claims := getClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	feedID, err := parseUintParam(c, "feedId")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid feed ID")
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	feed, err := h.feedRepository.GetFeedByID(feedID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Feed post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load feed post")
	}

	comment := &models.Comment{
		FeedID:  feedID,
		UserID:  claims.UserID,
		Content: req.Content,
	}

	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create comment")
	}

	if actor, err := h.userRepository.GetUserByID(claims.UserID); err == nil {
		h.notifier.CommentCreated(actor, feed, comment)
	}

	return c.JSON(http.StatusCreated, comment)
}

// GetCommentsByFeedID retrieves all comments for a specific feed post
func (h *CommentHandler) GetCommentsByFeedID(c echo.Context) error {
	feedID, err := parseUintParam(c, "feedId")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid feed ID")
	}

	if _, err := h.feedRepository.GetFeedByID(feedID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Feed post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load feed post")
	}

	comments, err := h.commentRepository.GetCommentsByFeedID(feedID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load comments")
	}

	return c.JSON(http.StatusOK, comments)
}
