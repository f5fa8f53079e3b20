package repositories

import (
	"github.com/awave-app/backend/internal/models"
	"gorm.io/gorm"
)

// FeedRepository defines the interface for feed post operations
type FeedRepository interface {
	CreateFeed(feed *models.Feed) error
	GetFeedByID(id uint) (*models.Feed, error)
	GetFeeds(limit, offset int) ([]models.Feed, int64, error)
}

// PostgresFeedRepository implements FeedRepository for PostgreSQL
type PostgresFeedRepository struct {
	db *gorm.DB
}

// NewPostgresFeedRepository creates a new PostgresFeedRepository
func NewPostgresFeedRepository(db *gorm.DB) *PostgresFeedRepository {
	return &PostgresFeedRepository{db: db}
}

// CreateFeed creates a new feed post in PostgreSQL
func (r *PostgresFeedRepository) CreateFeed(feed *models.Feed) error {
	return r.db.Create(feed).Error
}

// GetFeedByID retrieves a feed post by ID from PostgreSQL
func (r *PostgresFeedRepository) GetFeedByID(id uint) (*models.Feed, error) {
	var feed models.Feed
	if err := r.db.First(&feed, id).Error; err != nil {
		return nil, err
	}
	return &feed, nil
}

// GetFeeds retrieves feed posts, newest first, with a total count for paging
func (r *PostgresFeedRepository) GetFeeds(limit, offset int) ([]models.Feed, int64, error) {
	var feeds []models.Feed
	var total int64

	if err := r.db.Model(&models.Feed{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&feeds).Error

	return feeds, total, err
}
