package models

import (
	"time"
)

type NotificationType string

const (
	NotificationTypeBookingNew       NotificationType = "booking_new"
	NotificationTypeBookingUpdate    NotificationType = "booking_update"
	NotificationTypeBookingCompleted NotificationType = "booking_completed"
	NotificationTypeBookingCancelled NotificationType = "booking_cancelled"
	NotificationTypePayment          NotificationType = "payment"
	NotificationTypeSystem           NotificationType = "system"
	NotificationTypeMessage          NotificationType = "message"
)

// Notification is a persistent per-recipient record created as a side effect
// of booking, message and payment operations. It is never created directly by
// a user action, and after creation only the IsRead flag changes.
type Notification struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	RecipientID uint             `json:"recipient_id" gorm:"not null;index"`
	SenderID    *uint            `json:"sender_id"`
	Type        NotificationType `json:"type" gorm:"type:varchar(30);not null;check:type IN ('booking_new','booking_update','booking_completed','booking_cancelled','payment','system','message')"`
	Message     string           `json:"message" gorm:"size:500;not null"`
	RelatedID   *uint            `json:"related_id"` // Correlates to a booking
	IsRead      bool             `json:"is_read" gorm:"default:false"`
	CreatedAt   time.Time        `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}
