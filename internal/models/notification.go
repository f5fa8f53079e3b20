package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification types
const (
	NotificationComment      = "comment"
	NotificationReaction     = "reaction"
	NotificationReportUpdate = "report_update"
)

// Notification represents a user notification (PostgreSQL). At most one live
// row may exist per (user_id, reference_id, type) tuple; the unique index
// enforces this under concurrent triggers.
type Notification struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      uint           `json:"user_id" gorm:"index;uniqueIndex:idx_notifications_dedup"`
	FromUserID  uint           `json:"from_user_id" gorm:"index"`
	Type        string         `json:"type" gorm:"size:30;uniqueIndex:idx_notifications_dedup"`
	ReferenceID uint           `json:"reference_id" gorm:"uniqueIndex:idx_notifications_dedup"` // feed ID, report ID, etc.
	Message     string         `json:"message"`
	Payload     datatypes.JSON `json:"payload,omitempty"`
	IsRead      bool           `json:"is_read" gorm:"default:false;index"`
	ReadAt      *time.Time     `json:"read_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at" gorm:"index"`
}
