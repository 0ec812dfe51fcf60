package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"local-services-server/models"
)

// MessageService manages per-booking message threads. Posting and reading are
// gated by booking membership.
type MessageService struct {
	db            *gorm.DB
	notifications *NotificationService
	broadcaster   Broadcaster
}

// NewMessageService creates a new message service
func NewMessageService(db *gorm.DB, notifications *NotificationService, broadcaster Broadcaster) *MessageService {
	if broadcaster == nil {
		broadcaster = NoopBroadcaster{}
	}
	return &MessageService{
		db:            db,
		notifications: notifications,
		broadcaster:   broadcaster,
	}
}

// Send posts a message to a booking's thread. The sender must be a party to
// the booking. A message notification is created for the other party (none
// when the booking has no assigned worker), and that notification is
// committed before the new_message event is broadcast.
func (s *MessageService) Send(bookingID, senderID uint, text string) (*models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: message text is required", ErrValidation)
	}

	var booking models.Booking
	if err := s.db.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !booking.IsParty(senderID) {
		return nil, ErrNotAuthorized
	}

	message := models.Message{
		BookingID: bookingID,
		SenderID:  senderID,
		Text:      text,
	}
	if err := s.db.Create(&message).Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("Sender").First(&message, message.ID).Error; err != nil {
		return nil, err
	}

	// Notification before broadcast, so a client reacting to the event sees it
	if recipientID := booking.OtherParty(senderID); recipientID != nil {
		senderName := message.Sender.FullName
		if senderName == "" {
			senderName = "User"
		}
		msg := fmt.Sprintf("New message from %s", senderName)
		if _, err := s.notifications.Create(*recipientID, &senderID, models.NotificationTypeMessage, msg, &booking.ID); err != nil {
			log.Printf("⚠️ Failed to create message notification for user %d: %v", *recipientID, err)
		}
	}

	s.broadcaster.Publish(EventNewMessage, message)

	return &message, nil
}

// List returns the full thread for a booking, oldest first. The requester
// must be a party to the booking.
func (s *MessageService) List(bookingID, requesterID uint) ([]models.Message, error) {
	var booking models.Booking
	if err := s.db.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !booking.IsParty(requesterID) {
		return nil, ErrNotAuthorized
	}

	var messages []models.Message
	if err := s.db.Preload("Sender").
		Where("booking_id = ?", bookingID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
