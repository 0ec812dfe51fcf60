package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"gorm.io/gorm"

	"local-services-server/models"
)

// PaymentService simulates payment settlement. It owns the payment-status
// axis of a booking and the single defined coupling to the booking-status
// axis: settling a work_done booking completes it.
type PaymentService struct {
	db            *gorm.DB
	notifications *NotificationService
	broadcaster   Broadcaster

	// Simulated gateway round-trip; zero in tests
	processingDelay time.Duration
}

// NewPaymentService creates a new payment service
func NewPaymentService(db *gorm.DB, notifications *NotificationService, broadcaster Broadcaster, processingDelay time.Duration) *PaymentService {
	if broadcaster == nil {
		broadcaster = NoopBroadcaster{}
	}
	return &PaymentService{
		db:              db,
		notifications:   notifications,
		broadcaster:     broadcaster,
		processingDelay: processingDelay,
	}
}

// PaymentResult is returned to the caller after successful settlement
type PaymentResult struct {
	TransactionID string               `json:"transaction_id"`
	Status        models.PaymentStatus `json:"status"`
}

// Process settles payment for a booking. The amount is accepted but not
// validated against the booking price; the invoice is advisory. A booking
// that is already paid yields ErrAlreadyPaid and no state change.
func (s *PaymentService) Process(ctx context.Context, bookingID uint, method models.PaymentMethod, amount float64, actorID uint) (*PaymentResult, error) {
	var booking models.Booking
	if err := s.db.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !models.IsValidPaymentMethod(method) {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, method)
	}

	if booking.PaymentStatus == models.PaymentStatusPaid {
		return nil, ErrAlreadyPaid
	}

	// Simulated gateway round-trip
	if s.processingDelay > 0 {
		select {
		case <-time.After(s.processingDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	transactionID := fmt.Sprintf("TXN-%d-%03d", time.Now().UnixMilli(), rand.Intn(1000))

	updates := map[string]interface{}{
		"payment_status": models.PaymentStatusPaid,
		"payment_method": method,
		"transaction_id": transactionID,
		"updated_at":     time.Now(),
	}

	// If work was already done, settlement finishes the booking
	completesBooking := booking.Status == models.BookingStatusWorkDone
	if completesBooking {
		updates["status"] = models.BookingStatusCompleted
	}

	// The payment-status guard makes a concurrent double settlement lose
	res := s.db.Model(&models.Booking{}).
		Where("id = ? AND payment_status <> ?", booking.ID, models.PaymentStatusPaid).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrAlreadyPaid
	}

	updated := booking
	updated.PaymentStatus = models.PaymentStatusPaid
	updated.PaymentMethod = method
	updated.TransactionID = transactionID
	if completesBooking {
		updated.Status = models.BookingStatusCompleted
	}

	log.Printf("💰 Payment settled for booking %d (txn=%s, amount=%.2f)", booking.ID, transactionID, amount)

	// Notify the other party about the settlement
	if recipientID := updated.OtherParty(actorID); recipientID != nil {
		msg := fmt.Sprintf("Payment received for the %s booking", updated.Service)
		if _, err := s.notifications.Create(*recipientID, &actorID, models.NotificationTypePayment, msg, &updated.ID); err != nil {
			log.Printf("⚠️ Failed to create payment notification for user %d: %v", *recipientID, err)
		}
	}

	// Only the cross-axis cascade changes booking status, so only then do
	// realtime clients need a booking event
	if completesBooking {
		s.broadcaster.Publish(EventBookingUpdated, &updated)
	}

	return &PaymentResult{
		TransactionID: transactionID,
		Status:        models.PaymentStatusPaid,
	}, nil
}
