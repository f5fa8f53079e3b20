package models

import "time"

// Report statuses
const (
	ReportStatusPending  = "pending"
	ReportStatusReviewed = "reviewed"
	ReportStatusResolved = "resolved"
	ReportStatusRejected = "rejected"
)

// Report represents a moderation report filed against a feed post
type Report struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ReporterID uint      `json:"reporter_id" gorm:"index"`
	FeedID     uint      `json:"feed_id" gorm:"index"`
	Reason     string    `json:"reason"`
	Status     string    `json:"status" gorm:"size:20;default:pending;index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateReportRequest defines the request body for filing a report
type CreateReportRequest struct {
	FeedID uint   `json:"feed_id" validate:"required"`
	Reason string `json:"reason" validate:"required,min=1,max=500"`
}

// UpdateReportRequest defines the request body for a moderator status change
type UpdateReportRequest struct {
	Status string `json:"status" validate:"required,oneof=pending reviewed resolved rejected"`
}
