package cron

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/awave-app/backend/internal/models"
	"github.com/awave-app/backend/internal/repositories"
)

func setupRetention(t *testing.T) (*RetentionJob, repositories.NotificationRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Notification{}))

	repo := repositories.NewPostgresNotificationRepository(db)
	return NewRetentionJob(repo, 30, zerolog.Nop()), repo
}

func seedNotification(t *testing.T, repo repositories.NotificationRepository, referenceID uint, age time.Duration) {
	t.Helper()
	n := &models.Notification{
		UserID:      2,
		FromUserID:  1,
		Type:        models.NotificationComment,
		ReferenceID: referenceID,
		Message:     "new comment",
		CreatedAt:   time.Now().Add(-age),
	}
	created, err := repo.CreateIfAbsent(n)
	require.NoError(t, err)
	require.True(t, created)
}

func TestRetentionPurgesOnlyExpiredRows(t *testing.T) {
	job, repo := setupRetention(t)

	seedNotification(t, repo, 10, 31*24*time.Hour)
	seedNotification(t, repo, 11, 45*24*time.Hour)
	seedNotification(t, repo, 12, 3*24*time.Hour)
	seedNotification(t, repo, 13, time.Hour)

	job.Run()

	items, total, err := repo.List(2, 10, 0, repositories.NotificationFilterAll)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, n := range items {
		assert.True(t, n.CreatedAt.After(time.Now().AddDate(0, 0, -30)))
	}
}

func TestRetentionIgnoresReadState(t *testing.T) {
	job, repo := setupRetention(t)

	seedNotification(t, repo, 10, 31*24*time.Hour)
	items, _, err := repo.List(2, 10, 0, repositories.NotificationFilterAll)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NoError(t, repo.MarkAsRead(items[0].ID, 2))

	// A fresh read notification survives; an expired one does not.
	seedNotification(t, repo, 11, time.Hour)

	job.Run()

	items, total, err := repo.List(2, 10, 0, repositories.NotificationFilterAll)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, uint(11), items[0].ReferenceID)
}

func TestRetentionRunWithStubbedClock(t *testing.T) {
	job, repo := setupRetention(t)

	seedNotification(t, repo, 10, 10*24*time.Hour)

	// With the clock advanced 25 days, the 10-day-old row is past retention.
	job.now = func() time.Time { return time.Now().Add(25 * 24 * time.Hour) }
	job.Run()

	_, total, err := repo.List(2, 10, 0, repositories.NotificationFilterAll)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}
