package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/awave-app/backend/internal/models"
	"github.com/awave-app/backend/internal/notifier"
	"github.com/awave-app/backend/internal/repositories"
)

// ReportHandler handles HTTP requests related to moderation reports
type ReportHandler struct {
	reportRepository repositories.ReportRepository
	feedRepository   repositories.FeedRepository
	userRepository   repositories.UserRepository
	notifier         *notifier.Notifier
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportRepo repositories.ReportRepository, feedRepo repositories.FeedRepository, userRepo repositories.UserRepository, n *notifier.Notifier) *ReportHandler {
	return &ReportHandler{
		reportRepository: reportRepo,
		feedRepository:   feedRepo,
		userRepository:   userRepo,
		notifier:         n,
	}
}

// RegisterReportRoutes registers report routes on the authenticated group and
// the moderator-only update route on the moderation group.
func (h *ReportHandler) RegisterReportRoutes(g, moderation *echo.Group) {
	g.POST("/report", h.CreateReport)
	moderation.GET("/report", h.GetReports)
	moderation.PATCH("/report/:id", h.UpdateReportStatus)
}

// CreateReport files a moderation report against a feed post
func (h *ReportHandler) CreateReport(c echo.Context) error {
	claims := getClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.feedRepository.GetFeedByID(req.FeedID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Feed post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load feed post")
	}

	report := &models.Report{
		ReporterID: claims.UserID,
		FeedID:     req.FeedID,
		Reason:     req.Reason,
		Status:     models.ReportStatusPending,
	}

	if err := h.reportRepository.CreateReport(report); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create report")
	}

	return c.JSON(http.StatusCreated, report)
}

// GetReports lists reports for the moderation console
func (h *ReportHandler) GetReports(c echo.Context) error {
	limit, offset := parsePagination(c)

	reports, total, err := h.reportRepository.GetReports(limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load reports")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":   reports,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// UpdateReportStatus changes a report's status and notifies the original
// reporter. Moderator-only; the role check lives in the route group.
func (h *ReportHandler) UpdateReportStatus(c echo.Context) error {
	claims := getClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid report ID")
	}

	var req models.UpdateReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	report, err := h.reportRepository.GetReportByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Report not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load report")
	}

	if err := h.reportRepository.UpdateReportStatus(id, req.Status); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update report")
	}
	report.Status = req.Status

	if moderator, err := h.userRepository.GetUserByID(claims.UserID); err == nil {
		h.notifier.ReportStatusChanged(moderator, report)
	}

	return c.JSON(http.StatusOK, report)
}
