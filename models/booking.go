package models

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusAccepted  BookingStatus = "accepted"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusWorkDone  BookingStatus = "work_done"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

type PaymentMethod string

const (
	PaymentMethodCash      PaymentMethod = "cash"
	PaymentMethodJazzCash  PaymentMethod = "jazzcash"
	PaymentMethodEasypaisa PaymentMethod = "easypaisa"
)

type Booking struct {
	ID               uint          `json:"id" gorm:"primaryKey"`
	CustomerID       uint          `json:"customer_id" gorm:"not null"`
	WorkerID         *uint         `json:"worker_id"` // Null until a worker is assigned
	Service          string        `json:"service" gorm:"size:100;not null"`
	ServiceDate      time.Time     `json:"service_date" gorm:"not null"`
	Address          string        `json:"address" gorm:"size:500;not null"`
	Phone            string        `json:"phone" gorm:"size:20;not null"`
	Notes            string        `json:"notes" gorm:"size:1000"`
	Price            *float64      `json:"price" gorm:"type:decimal(10,2)"`
	PaymentMethod    PaymentMethod `json:"payment_method" gorm:"type:varchar(20);default:'cash';check:payment_method IN ('cash','jazzcash','easypaisa')"`
	Status           BookingStatus `json:"status" gorm:"type:varchar(20);default:'pending';check:status IN ('pending','accepted','rejected','work_done','completed','cancelled')"`
	PaymentStatus    PaymentStatus `json:"payment_status" gorm:"type:varchar(20);default:'pending';check:payment_status IN ('pending','paid','failed')"`
	TransactionID    string        `json:"transaction_id" gorm:"size:50"`
	EstimatedArrival string        `json:"estimated_arrival" gorm:"size:100"` // Free text, e.g. "30 minutes"
	CreatedAt        time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time     `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Customer User  `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Worker   *User `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
}

// TableName specifies the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// IsTerminal reports whether no further actor-driven transition is defined
// for the status.
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case BookingStatusRejected, BookingStatusCompleted, BookingStatusCancelled:
		return true
	default:
		return false
	}
}

// IsValidStatus checks if the value is one of the six booking statuses.
func IsValidStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusPending, BookingStatusAccepted, BookingStatusRejected,
		BookingStatusWorkDone, BookingStatusCompleted, BookingStatusCancelled:
		return true
	default:
		return false
	}
}

// IsValidTargetStatus checks if the value is a status a party can move a
// booking to. "pending" is the creation state only, never a target.
func IsValidTargetStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusAccepted, BookingStatusRejected, BookingStatusWorkDone,
		BookingStatusCompleted, BookingStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransition reports whether the booking status graph has an edge from
// one status to another. Cancellation is allowed from any non-terminal state.
func CanTransition(from, to BookingStatus) bool {
	if to == BookingStatusCancelled {
		return !from.IsTerminal()
	}
	switch from {
	case BookingStatusPending:
		return to == BookingStatusAccepted || to == BookingStatusRejected
	case BookingStatusAccepted:
		return to == BookingStatusWorkDone
	case BookingStatusWorkDone:
		return to == BookingStatusCompleted
	default:
		return false
	}
}

// IsValidPaymentMethod checks if the payment method is supported.
func IsValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodJazzCash, PaymentMethodEasypaisa:
		return true
	default:
		return false
	}
}

// IsParty checks whether the user is the booking's customer or its assigned
// worker. These are the only two identities authorized to act on a booking.
func (b *Booking) IsParty(userID uint) bool {
	if b.CustomerID == userID {
		return true
	}
	return b.WorkerID != nil && *b.WorkerID == userID
}

// OtherParty returns the id of the party other than the actor, or nil when
// there is none (actor is not a party, or the booking has no assigned worker).
// Notification recipients for booking updates and messages are derived from
// this single rule.
func (b *Booking) OtherParty(actorID uint) *uint {
	if b.CustomerID == actorID {
		return b.WorkerID
	}
	if b.WorkerID != nil && *b.WorkerID == actorID {
		customerID := b.CustomerID
		return &customerID
	}
	return nil
}
