package models

import "time"

// Reaction represents a user's reaction to a feed post. One reaction per
// (feed, user); a repeated reaction replaces the type in place.
type Reaction struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FeedID    uint      `json:"feed_id" gorm:"index;uniqueIndex:idx_reactions_feed_user"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_reactions_feed_user"`
	Type      string    `json:"type" gorm:"size:30"` // like, love, laugh, ...
	CreatedAt time.Time `json:"created_at"`
}

// UpsertReactionRequest defines the request body for setting a reaction
type UpsertReactionRequest struct {
	Type string `json:"type" validate:"required,min=1,max=30"`
}
