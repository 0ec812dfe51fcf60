package services

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"local-services-server/models"
)

// NotificationService creates and serves per-recipient notification records.
// Notifications are only ever created as side effects of booking, message and
// payment operations, never directly by a user action.
type NotificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a new notification service
func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Create persists a notification for a recipient. Callers rely on this
// completing before any related broadcast is emitted.
func (s *NotificationService) Create(recipientID uint, senderID *uint, ntype models.NotificationType, message string, relatedID *uint) (*models.Notification, error) {
	notification := models.Notification{
		RecipientID: recipientID,
		SenderID:    senderID,
		Type:        ntype,
		Message:     message,
		RelatedID:   relatedID,
	}

	if err := s.db.Create(&notification).Error; err != nil {
		return nil, err
	}

	return &notification, nil
}

// ListForUser returns the recipient's notifications, newest first, capped at
// the last 50.
func (s *NotificationService) ListForUser(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := s.db.
		Where("recipient_id = ?", userID).
		Order("created_at DESC").
		Limit(50).
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// UnreadCount returns the number of unread notifications for the recipient
func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	var count int64
	if err := s.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// MarkRead flips the read flag on a single notification. Only the recipient
// may do this.
func (s *NotificationService) MarkRead(notificationID, userID uint) (*models.Notification, error) {
	var notification models.Notification
	if err := s.db.First(&notification, notificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if notification.RecipientID != userID {
		return nil, ErrNotAuthorized
	}

	if err := s.db.Model(&notification).Update("is_read", true).Error; err != nil {
		return nil, err
	}
	notification.IsRead = true

	return &notification, nil
}

// MarkAllRead flips the read flag on all of the recipient's unread
// notifications
func (s *NotificationService) MarkAllRead(userID uint) error {
	res := s.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}

	log.Printf("✅ Marked %d notifications as read for user %d", res.RowsAffected, userID)
	return nil
}
