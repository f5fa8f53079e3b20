package models

import "time"

// Comment represents a comment on a feed post
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FeedID    uint      `json:"feed_id" gorm:"index"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
