package models

import (
	"time"
)

// Message belongs to exactly one booking's thread. Messages are immutable
// after creation and ordered by creation time ascending.
type Message struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	BookingID uint      `json:"booking_id" gorm:"not null;index"`
	SenderID  uint      `json:"sender_id" gorm:"not null"`
	Text      string    `json:"text" gorm:"size:2000;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Relationships
	Booking Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	Sender  User    `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
}

// TableName specifies the table name for the Message model
func (Message) TableName() string {
	return "messages"
}
