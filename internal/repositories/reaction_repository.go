package repositories

import (
	"time"

	"github.com/awave-app/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionRepository defines the interface for reaction data operations
type ReactionRepository interface {
	UpsertReaction(reaction *models.Reaction) (bool, error)
	DeleteReaction(feedID, userID uint) error
	GetReaction(feedID, userID uint) (*models.Reaction, error)
}

// PostgresReactionRepository implements ReactionRepository for PostgreSQL
type PostgresReactionRepository struct {
	db *gorm.DB
}

// NewPostgresReactionRepository creates a new PostgresReactionRepository
func NewPostgresReactionRepository(db *gorm.DB) *PostgresReactionRepository {
	return &PostgresReactionRepository{db: db}
}

// UpsertReaction inserts a reaction, or replaces the type of the existing one
// for the same (feed, user). Returns true when a new row was created.
func (r *PostgresReactionRepository) UpsertReaction(reaction *models.Reaction) (bool, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "feed_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(reaction)
	if tx.Error != nil {
		return false, tx.Error
	}
	if tx.RowsAffected > 0 {
		return true, nil
	}

	err := r.db.Model(&models.Reaction{}).
		Where("feed_id = ? AND user_id = ?", reaction.FeedID, reaction.UserID).
		Updates(map[string]interface{}{"type": reaction.Type, "created_at": time.Now()}).Error
	return false, err
}

// DeleteReaction removes a user's reaction to a feed post. Returns
// gorm.ErrRecordNotFound when there is nothing to remove.
func (r *PostgresReactionRepository) DeleteReaction(feedID, userID uint) error {
	tx := r.db.Where("feed_id = ? AND user_id = ?", feedID, userID).Delete(&models.Reaction{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetReaction retrieves a user's reaction to a feed post
func (r *PostgresReactionRepository) GetReaction(feedID, userID uint) (*models.Reaction, error) {
	var reaction models.Reaction
	if err := r.db.Where("feed_id = ? AND user_id = ?", feedID, userID).First(&reaction).Error; err != nil {
		return nil, err
	}
	return &reaction, nil
}
