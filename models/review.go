package models

import (
	"time"
)

// Review is created at most once per booking, only after the booking reached
// "completed". CustomerID and WorkerID are copied from the booking at
// creation time.
type Review struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	BookingID  uint      `json:"booking_id" gorm:"uniqueIndex;not null"` // One review per booking
	CustomerID uint      `json:"customer_id" gorm:"not null"`
	WorkerID   uint      `json:"worker_id" gorm:"not null;index"`
	Rating     int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment    string    `json:"comment" gorm:"size:2000;not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Relationships
	Booking  Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	Customer User    `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Worker   User    `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
}

// TableName specifies the table name for the Review model
func (Review) TableName() string {
	return "reviews"
}
