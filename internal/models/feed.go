package models

import "time"

// Feed represents a user's feed post
type Feed struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Caption   string    `json:"caption"`
	ImageURL  string    `json:"image_url"`
	Location  string    `json:"location"`
	Tags      string    `json:"tags"` // comma-separated
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// CreateFeedRequest defines the request body for creating a new feed post
type CreateFeedRequest struct {
	Caption  string `json:"caption" validate:"required,min=1,max=2000"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
	Location string `json:"location" validate:"omitempty,max=200"`
	Tags     string `json:"tags" validate:"omitempty,max=200"`
}
