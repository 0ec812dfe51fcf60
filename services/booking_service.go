package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"local-services-server/models"
)

// BookingService is the booking lifecycle engine. It validates transitions,
// enforces party authorization, mutates booking state and orchestrates the
// notification + broadcast side effects.
//
// Side-effect ordering for every state-changing operation: the booking
// mutation commits first, then the notification record is persisted, then the
// realtime event is broadcast. Notification and broadcast are best-effort
// once the primary mutation has committed.
type BookingService struct {
	db            *gorm.DB
	notifications *NotificationService
	broadcaster   Broadcaster
}

// NewBookingService creates a new booking service
func NewBookingService(db *gorm.DB, notifications *NotificationService, broadcaster Broadcaster) *BookingService {
	if broadcaster == nil {
		broadcaster = NoopBroadcaster{}
	}
	return &BookingService{
		db:            db,
		notifications: notifications,
		broadcaster:   broadcaster,
	}
}

// BookingCreateInput carries the customer-supplied fields for a new booking
type BookingCreateInput struct {
	WorkerID      *uint
	Service       string
	ServiceDate   time.Time
	Address       string
	Phone         string
	Notes         string
	Price         *float64
	PaymentMethod models.PaymentMethod
}

// StatusUpdateInput carries a requested status transition. EstimatedArrival
// is only persisted on the transition to accepted; Price may revise the
// agreed price whenever supplied (final invoice on work_done).
type StatusUpdateInput struct {
	Status           models.BookingStatus
	EstimatedArrival string
	Price            *float64
}

// Create persists a new booking with status pending and payment status
// pending. When a worker is targeted, a booking_new notification is created
// for that worker before the booking_created event is broadcast.
func (s *BookingService) Create(customerID uint, in BookingCreateInput) (*models.Booking, error) {
	if in.Service == "" || in.Address == "" || in.Phone == "" || in.ServiceDate.IsZero() {
		return nil, fmt.Errorf("%w: service, service_date, address and phone are required", ErrValidation)
	}

	if in.PaymentMethod == "" {
		in.PaymentMethod = models.PaymentMethodCash
	}
	if !models.IsValidPaymentMethod(in.PaymentMethod) {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, in.PaymentMethod)
	}

	booking := models.Booking{
		CustomerID:    customerID,
		WorkerID:      in.WorkerID,
		Service:       in.Service,
		ServiceDate:   in.ServiceDate,
		Address:       in.Address,
		Phone:         in.Phone,
		Notes:         in.Notes,
		Price:         in.Price,
		PaymentMethod: in.PaymentMethod,
		Status:        models.BookingStatusPending,
		PaymentStatus: models.PaymentStatusPending,
	}

	if err := s.db.Create(&booking).Error; err != nil {
		return nil, err
	}

	// Notification first so it is committed when clients react to the event
	if booking.WorkerID != nil {
		msg := fmt.Sprintf("New booking request from %s", s.displayName(customerID, "Customer"))
		if _, err := s.notifications.Create(*booking.WorkerID, &customerID, models.NotificationTypeBookingNew, msg, &booking.ID); err != nil {
			log.Printf("⚠️ Failed to create booking notification for worker %d: %v", *booking.WorkerID, err)
		}
	}

	s.broadcaster.Publish(EventBookingCreated, booking)

	return &booking, nil
}

// ListForUser returns the caller's bookings, newest first. Workers are
// scoped by worker id, everyone else by customer id.
func (s *BookingService) ListForUser(userID uint, role models.UserRole) ([]models.Booking, error) {
	query := s.db.Preload("Customer").Preload("Worker")
	if role == models.RoleWorker {
		query = query.Where("worker_id = ?", userID)
	} else {
		query = query.Where("customer_id = ?", userID)
	}

	var bookings []models.Booking
	if err := query.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// Get loads a single booking, restricted to its parties
func (s *BookingService) Get(bookingID, userID uint) (*models.Booking, error) {
	booking, err := s.load(bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.IsParty(userID) {
		return nil, ErrNotAuthorized
	}
	return booking, nil
}

// UpdateStatus performs a party-driven status transition.
//
// Validation order: booking exists, target status is an allowed value, actor
// is a party, the transition has an edge in the status graph. The mutation is
// guarded by a compare-and-swap on the current status so two concurrent
// transitions on the same booking cannot both win; the loser gets a conflict.
func (s *BookingService) UpdateStatus(bookingID, actorID uint, in StatusUpdateInput) (*models.Booking, error) {
	booking, err := s.load(bookingID)
	if err != nil {
		return nil, err
	}

	if !models.IsValidTargetStatus(in.Status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, in.Status)
	}

	if !booking.IsParty(actorID) {
		return nil, ErrNotAuthorized
	}

	if !models.CanTransition(booking.Status, in.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, in.Status)
	}

	actorIsWorker := booking.WorkerID != nil && *booking.WorkerID == actorID

	if in.Status == models.BookingStatusAccepted && actorIsWorker && in.EstimatedArrival == "" {
		return nil, fmt.Errorf("%w: estimated_arrival is required when accepting a booking", ErrValidation)
	}

	updates := map[string]interface{}{
		"status":     in.Status,
		"updated_at": time.Now(),
	}
	if in.Status == models.BookingStatusAccepted && in.EstimatedArrival != "" {
		updates["estimated_arrival"] = in.EstimatedArrival
	}
	if in.Price != nil {
		updates["price"] = *in.Price
	}

	// Compare-and-swap on the current status: a concurrent transition that
	// committed first makes RowsAffected zero.
	res := s.db.Model(&models.Booking{}).
		Where("id = ? AND status = ?", booking.ID, booking.Status).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrStatusConflict
	}

	updated, err := s.load(bookingID)
	if err != nil {
		return nil, err
	}

	// Notify the other party, then broadcast. Both are best-effort: the
	// transition above is already committed.
	s.notifyStatusChange(updated, actorID, actorIsWorker)
	s.broadcaster.Publish(EventBookingUpdated, updated)

	return updated, nil
}

// AdminSetStatus forcibly sets a booking status without membership or
// transition checks. Used for dispute resolution; deliberately creates no
// notification and emits no event.
func (s *BookingService) AdminSetStatus(bookingID uint, status models.BookingStatus) (*models.Booking, error) {
	if !models.IsValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	booking, err := s.load(bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(booking).Update("status", status).Error; err != nil {
		return nil, err
	}
	booking.Status = status

	log.Printf("⚖️ Admin override: booking %d status forced to %s", booking.ID, status)
	return booking, nil
}

// AdminList returns all bookings, newest first
func (s *BookingService) AdminList() ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.db.Preload("Customer").Preload("Worker").
		Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// AdminDelete removes a booking entirely
func (s *BookingService) AdminDelete(bookingID uint) error {
	booking, err := s.load(bookingID)
	if err != nil {
		return err
	}
	return s.db.Delete(booking).Error
}

// notifyStatusChange creates the booking_update notification for the party
// other than the actor. The message text differs by actor role.
func (s *BookingService) notifyStatusChange(booking *models.Booking, actorID uint, actorIsWorker bool) {
	recipientID := booking.OtherParty(actorID)
	if recipientID == nil {
		return
	}

	var msg string
	if actorIsWorker {
		msg = fmt.Sprintf("Your booking for %s is now %s", booking.Service, booking.Status)
	} else {
		msg = fmt.Sprintf("Booking status updated to %s by customer", booking.Status)
	}

	ntype := models.NotificationTypeBookingUpdate
	switch booking.Status {
	case models.BookingStatusCompleted:
		ntype = models.NotificationTypeBookingCompleted
	case models.BookingStatusCancelled:
		ntype = models.NotificationTypeBookingCancelled
	}

	if _, err := s.notifications.Create(*recipientID, &actorID, ntype, msg, &booking.ID); err != nil {
		log.Printf("⚠️ Failed to create status notification for user %d: %v", *recipientID, err)
	}
}

// load fetches a booking by id, translating the missing-record error
func (s *BookingService) load(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// displayName resolves a user's name for notification text, with a fallback
// when the record cannot be loaded
func (s *BookingService) displayName(userID uint, fallback string) string {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil || user.FullName == "" {
		return fallback
	}
	return user.FullName
}
