package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/awave-app/backend/internal/models"
	"github.com/awave-app/backend/internal/notifier"
	"github.com/awave-app/backend/internal/repositories"
)

// ReactionHandler handles HTTP requests related to reactions
type ReactionHandler struct {
	reactionRepository repositories.ReactionRepository
	feedRepository     repositories.FeedRepository
	userRepository     repositories.UserRepository
	notifier           *notifier.Notifier
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(reactionRepo repositories.ReactionRepository, feedRepo repositories.FeedRepository, userRepo repositories.UserRepository, n *notifier.Notifier) *ReactionHandler {
	return &ReactionHandler{
		reactionRepository: reactionRepo,
		feedRepository:     feedRepo,
		userRepository:     userRepo,
		notifier:           n,
	}
}

// RegisterReactionRoutes registers reaction-related routes
func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group) {
	g.POST("/feed/:feedId/reaction", h.UpsertReaction)
	g.DELETE("/feed/:feedId/reaction", h.RemoveReaction)
}

// UpsertReaction sets or replaces the caller's reaction on a feed post and
// notifies the owner. Sending the type already on record toggles the reaction
// off instead.
func (h *ReactionHandler) UpsertReaction(c echo.Context) error {
	claims := getClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	feedID, err := parseUintParam(c, "feedId")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid feed ID")
	}

	var req models.UpsertReactionRequest
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

	existing, err := h.reactionRepository.GetReaction(feedID, claims.UserID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load reaction")
	}

	// Repeating the same reaction toggles it off, retracting the
	// notification it produced.
	if existing != nil && existing.Type == req.Type {
		if err := h.reactionRepository.DeleteReaction(feedID, claims.UserID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to remove reaction")
		}
		h.notifier.ReactionRemoved(claims.UserID, feed)
		return c.NoContent(http.StatusNoContent)
	}

	reaction := &models.Reaction{
		FeedID: feedID,
		UserID: claims.UserID,
		Type:   req.Type,
	}

	created, err := h.reactionRepository.UpsertReaction(reaction)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save reaction")
	}

	if actor, err := h.userRepository.GetUserByID(claims.UserID); err == nil {
		h.notifier.ReactionUpserted(actor, feed, reaction)
	}

	if created {
		return c.JSON(http.StatusCreated, reaction)
	}
	return c.JSON(http.StatusOK, reaction)
}

// RemoveReaction withdraws the caller's reaction and retracts the
// notification it produced
func (h *ReactionHandler) RemoveReaction(c echo.Context) error {
	claims := getClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	feedID, err := parseUintParam(c, "feedId")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid feed ID")
	}

	feed, err := h.feedRepository.GetFeedByID(feedID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Feed post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load feed post")
	}

	if err := h.reactionRepository.DeleteReaction(feedID, claims.UserID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Reaction not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to remove reaction")
	}

	h.notifier.ReactionRemoved(claims.UserID, feed)

	return c.NoContent(http.StatusNoContent)
}
