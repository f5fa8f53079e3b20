package repositories

import (
	"time"

	"github.com/awave-app/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Notification list filters
const (
	NotificationFilterAll    = "all"
	NotificationFilterRead   = "read"
	NotificationFilterUnread = "unread"
)

// RecentDuplicateWindow is how far back a same-tuple notification counts as a
// duplicate worth refreshing instead of leaving untouched.
const RecentDuplicateWindow = time.Minute

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateIfAbsent(notification *models.Notification) (bool, error)
	FindRecentDuplicate(userID, fromUserID uint, notifType string, referenceID uint, within time.Duration) (*models.Notification, error)
	RefreshByTuple(userID uint, notifType string, referenceID uint, message string) error
	DeleteByTuple(userID, fromUserID uint, notifType string, referenceID uint) error
	MarkAsRead(id, userID uint) error
	MarkAllAsRead(userID uint) (int64, error)
	List(userID uint, limit, offset int, filter string) ([]models.Notification, int64, error)
	GetUnreadCount(userID uint) (int64, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a new NotificationRepository
// backed by PostgreSQL
func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

// CreateIfAbsent inserts the notification unless a live row already exists
// for the (user_id, type, reference_id) tuple. The conflict clause rides on
// the tuple's unique index, so concurrent triggers cannot produce a second
// row. Returns true when a row was actually inserted.
func (r *postgresNotificationRepository) CreateIfAbsent(notification *models.Notification) (bool, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "type"}, {Name: "reference_id"}},
		DoNothing: true,
	}).Create(notification)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// FindRecentDuplicate looks up a live notification for the same
// recipient/actor/type/reference created within the given window. At most one
// match, the most recent.
func (r *postgresNotificationRepository) FindRecentDuplicate(userID, fromUserID uint, notifType string, referenceID uint, within time.Duration) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.Where(
		"user_id = ? AND from_user_id = ? AND type = ? AND reference_id = ? AND created_at >= ?",
		userID, fromUserID, notifType, referenceID, time.Now().Add(-within),
	).Order("created_at DESC").First(&notification).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &notification, nil
}

// RefreshByTuple rewrites the message of the existing tuple row, bumps its
// created_at and flips it back to unread. No-op if the row has gone away.
func (r *postgresNotificationRepository) RefreshByTuple(userID uint, notifType string, referenceID uint, message string) error {
	return r.db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ? AND reference_id = ?", userID, notifType, referenceID).
		Updates(map[string]interface{}{
			"message":    message,
			"is_read":    false,
			"read_at":    nil,
			"created_at": time.Now(),
		}).Error
}

// DeleteByTuple removes the notification for a tuple, used when the
// originating reaction is withdrawn. The predicate includes the actor: with
// several reactions on one feed the live row records whoever reacted first,
// and only that user withdrawing may take the notification down.
func (r *postgresNotificationRepository) DeleteByTuple(userID, fromUserID uint, notifType string, referenceID uint) error {
	return r.db.Where("user_id = ? AND from_user_id = ? AND type = ? AND reference_id = ?",
		userID, fromUserID, notifType, referenceID).
		Delete(&models.Notification{}).Error
}

// MarkAsRead marks a notification as read. Ownership is folded into the query
// predicate; an id belonging to another user reports gorm.ErrRecordNotFound.
func (r *postgresNotificationRepository) MarkAsRead(id, userID uint) error {
	now := time.Now()
	tx := r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{"is_read": true, "read_at": now})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkAllAsRead marks all unread notifications read, returning the count
func (r *postgresNotificationRepository) MarkAllAsRead(userID uint) (int64, error) {
	now := time.Now()
	tx := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": now})
	return tx.RowsAffected, tx.Error
}

// List returns paginated notifications for a user, newest first, plus the
// total matching the filter for pagination UI
func (r *postgresNotificationRepository) List(userID uint, limit, offset int, filter string) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	filtered := func() *gorm.DB {
		query := r.db.Model(&models.Notification{}).Where("user_id = ?", userID)
		switch filter {
		case NotificationFilterRead:
			query = query.Where("is_read = ?", true)
		case NotificationFilterUnread:
			query = query.Where("is_read = ?", false)
		}
		return query
	}

	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := filtered().Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error

	return notifications, total, err
}

// GetUnreadCount returns the unread notification count for a user
func (r *postgresNotificationRepository) GetUnreadCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// DeleteOlderThan purges notifications created before the cutoff regardless
// of read state, returning the number removed
func (r *postgresNotificationRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	tx := r.db.Where("created_at < ?", cutoff).Delete(&models.Notification{})
	return tx.RowsAffected, tx.Error
}
