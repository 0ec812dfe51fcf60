package services

import (
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"local-services-server/database"
	"local-services-server/models"
)

// testDB opens an isolated in-memory database with the full schema
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db
}

// publishedEvent is one Publish call observed by the recording broadcaster
type publishedEvent struct {
	Type    string
	Payload interface{}

	// Number of notification rows at the moment of publish. Lets tests
	// verify that notifications are committed before events go out.
	NotificationsAtPublish int64
}

// recordingBroadcaster captures events instead of fanning them out
type recordingBroadcaster struct {
	mu     sync.Mutex
	db     *gorm.DB
	events []publishedEvent
}

func newRecordingBroadcaster(db *gorm.DB) *recordingBroadcaster {
	return &recordingBroadcaster{db: db}
}

func (b *recordingBroadcaster) Publish(eventType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var count int64
	b.db.Model(&models.Notification{}).Count(&count)

	b.events = append(b.events, publishedEvent{
		Type:                   eventType,
		Payload:                payload,
		NotificationsAtPublish: count,
	})
}

func (b *recordingBroadcaster) Events() []publishedEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]publishedEvent, len(b.events))
	copy(out, b.events)
	return out
}

func uintPtr(v uint) *uint        { return &v }
func floatPtr(v float64) *float64 { return &v }

// createUser inserts a user and returns its id
func createUser(t *testing.T, db *gorm.DB, name string, role models.UserRole) uint {
	t.Helper()

	user := models.User{
		FullName:     name,
		Email:        name + "@test.local",
		PasswordHash: "x",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

// createWorkerWithProfile inserts a worker user plus its profile
func createWorkerWithProfile(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()

	userID := createUser(t, db, name, models.RoleWorker)
	profile := models.WorkerProfile{
		UserID:             userID,
		Skill:              "Plumber",
		City:               "Lahore",
		VerificationStatus: models.VerificationApproved,
		IsAvailable:        true,
	}
	require.NoError(t, db.Create(&profile).Error)
	return userID
}

// notificationsFor returns the recipient's notifications, oldest first
func notificationsFor(t *testing.T, db *gorm.DB, userID uint) []models.Notification {
	t.Helper()

	var out []models.Notification
	require.NoError(t, db.Where("recipient_id = ?", userID).Order("id ASC").Find(&out).Error)
	return out
}
