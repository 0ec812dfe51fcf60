package jobs

import (
	"fmt"
	"log"
	"time"

	"local-services-server/database"
	"local-services-server/models"
	"local-services-server/services"
)

// ReminderJob nudges customers about bookings that have sat in pending
// longer than the configured threshold
type ReminderJob struct {
	notifications *services.NotificationService
	threshold     time.Duration
	interval      time.Duration
	stopChan      chan bool
}

// NewReminderJob creates a new reminder job
func NewReminderJob(notifications *services.NotificationService, threshold time.Duration) *ReminderJob {
	return &ReminderJob{
		notifications: notifications,
		threshold:     threshold,
		interval:      15 * time.Minute,
		stopChan:      make(chan bool),
	}
}

// Start begins the reminder job
func (j *ReminderJob) Start() {
	go j.run()
	log.Println("🚀 Pending booking reminder job started")
}

// Stop stops the reminder job
func (j *ReminderJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Pending booking reminder job stopped")
}

func (j *ReminderJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.checkStalePendingBookings()
		case <-j.stopChan:
			return
		}
	}
}

// checkStalePendingBookings finds bookings stuck in pending and sends each
// customer at most one reminder per booking
func (j *ReminderJob) checkStalePendingBookings() {
	cutoff := time.Now().Add(-j.threshold)

	var stale []models.Booking
	err := database.DB.Where("status = ? AND created_at <= ?",
		models.BookingStatusPending, cutoff).Find(&stale).Error
	if err != nil {
		log.Printf("❌ Error checking stale pending bookings: %v", err)
		return
	}

	if len(stale) == 0 {
		return
	}

	log.Printf("⏰ Found %d stale pending bookings", len(stale))

	for _, booking := range stale {
		j.remind(booking)
	}
}

func (j *ReminderJob) remind(booking models.Booking) {
	// Dedupe: one system reminder per booking
	var existing int64
	err := database.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND type = ? AND related_id = ?",
			booking.CustomerID, models.NotificationTypeSystem, booking.ID).
		Count(&existing).Error
	if err != nil {
		log.Printf("❌ Failed to check existing reminders for booking %d: %v", booking.ID, err)
		return
	}
	if existing > 0 {
		return
	}

	message := fmt.Sprintf("Your booking for %s is still awaiting a response. You may want to cancel it or try another worker.", booking.Service)
	if _, err := j.notifications.Create(booking.CustomerID, nil, models.NotificationTypeSystem, message, &booking.ID); err != nil {
		log.Printf("❌ Failed to create reminder for booking %d: %v", booking.ID, err)
		return
	}

	log.Printf("✅ Reminder sent for pending booking %d", booking.ID)
}
