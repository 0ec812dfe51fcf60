package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"local-services-server/models"
)

// ReviewService creates post-completion reviews and maintains the worker's
// aggregate rating. The aggregate is a full recomputation of the arithmetic
// mean over all of the worker's reviews on every submission.
type ReviewService struct {
	db *gorm.DB
}

// NewReviewService creates a new review service
func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// Create submits a review for a completed booking. Preconditions, checked in
// order: the booking exists, the requester is its customer, the booking
// status is exactly completed, and no review exists for the booking yet.
func (s *ReviewService) Create(bookingID, customerID uint, rating int, comment string) (*models.Review, error) {
	var booking models.Booking
	if err := s.db.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if booking.CustomerID != customerID {
		return nil, ErrNotAuthorized
	}

	if booking.Status != models.BookingStatusCompleted {
		return nil, ErrBookingNotCompleted
	}

	if booking.WorkerID == nil {
		return nil, fmt.Errorf("%w: booking has no assigned worker", ErrValidation)
	}

	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}

	var existing models.Review
	if err := s.db.Where("booking_id = ?", bookingID).First(&existing).Error; err == nil {
		return nil, ErrReviewExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := models.Review{
		BookingID:  bookingID,
		CustomerID: customerID,
		WorkerID:   *booking.WorkerID,
		Rating:     rating,
		Comment:    comment,
	}
	if err := s.db.Create(&review).Error; err != nil {
		// The exists-check above races with concurrent submissions; the
		// unique index on booking_id is the authoritative guard
		if isDuplicateKey(err) {
			return nil, ErrReviewExists
		}
		return nil, err
	}

	if err := s.recomputeWorkerRating(*booking.WorkerID); err != nil {
		return nil, fmt.Errorf("review created but failed to update worker rating: %w", err)
	}

	return &review, nil
}

// ListByWorker returns all reviews received by a worker, newest first
func (s *ReviewService) ListByWorker(workerID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.db.Preload("Customer").
		Where("worker_id = ?", workerID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListRecent returns the most recent reviews across all workers, for the
// public landing feed
func (s *ReviewService) ListRecent(limit int) ([]models.Review, error) {
	if limit <= 0 || limit > 20 {
		limit = 6
	}

	var reviews []models.Review
	if err := s.db.Preload("Customer").Preload("Worker").
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// isDuplicateKey recognizes a unique-constraint violation across the drivers
// in use (postgres in production, sqlite in tests)
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// recomputeWorkerRating recalculates the arithmetic mean and count over all
// of the worker's reviews and persists them onto the worker profile
func (s *ReviewService) recomputeWorkerRating(workerID uint) error {
	var agg struct {
		Average float64
		Total   int64
	}
	if err := s.db.Model(&models.Review{}).
		Where("worker_id = ?", workerID).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS total").
		Scan(&agg).Error; err != nil {
		return err
	}

	return s.db.Model(&models.WorkerProfile{}).
		Where("user_id = ?", workerID).
		Updates(map[string]interface{}{
			"average_rating": agg.Average,
			"reviews_count":  agg.Total,
			"updated_at":     time.Now(),
		}).Error
}
