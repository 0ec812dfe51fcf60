package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"local-services-server/models"
)

func newBookingFixture(t *testing.T) (*gorm.DB, *BookingService, *recordingBroadcaster, uint, uint) {
	t.Helper()

	db := testDB(t)
	broadcaster := newRecordingBroadcaster(db)
	svc := NewBookingService(db, NewNotificationService(db), broadcaster)

	customerID := createUser(t, db, "customer", models.RoleCustomer)
	workerID := createWorkerWithProfile(t, db, "worker")

	return db, svc, broadcaster, customerID, workerID
}

func validCreateInput(workerID *uint) BookingCreateInput {
	return BookingCreateInput{
		WorkerID:      workerID,
		Service:       "Plumbing",
		ServiceDate:   time.Now().Add(24 * time.Hour),
		Address:       "12 Canal Road",
		Phone:         "+923001234567",
		PaymentMethod: models.PaymentMethodCash,
	}
}

func TestCreateBooking(t *testing.T) {
	_, svc, broadcaster, customerID, workerID := newBookingFixture(t)

	booking, err := svc.Create(customerID, validCreateInput(&workerID))
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Equal(t, models.PaymentStatusPending, booking.PaymentStatus)
	assert.Equal(t, customerID, booking.CustomerID)
	require.NotNil(t, booking.WorkerID)
	assert.Equal(t, workerID, *booking.WorkerID)

	events := broadcaster.Events()
	require.Len(t, events, 1)
	assert.Equal(t, EventBookingCreated, events[0].Type)

	// Worker notification was committed before the event went out
	assert.Equal(t, int64(1), events[0].NotificationsAtPublish)
}

func TestCreateBookingNotifiesTargetedWorker(t *testing.T) {
	db, svc, _, customerID, workerID := newBookingFixture(t)

	booking, err := svc.Create(customerID, validCreateInput(&workerID))
	require.NoError(t, err)

	notis := notificationsFor(t, db, workerID)
	require.Len(t, notis, 1)
	assert.Equal(t, models.NotificationTypeBookingNew, notis[0].Type)
	assert.Contains(t, notis[0].Message, "customer")
	require.NotNil(t, notis[0].RelatedID)
	assert.Equal(t, booking.ID, *notis[0].RelatedID)
}

func TestCreateBookingWithoutWorker(t *testing.T) {
	db, svc, broadcaster, customerID, _ := newBookingFixture(t)

	booking, err := svc.Create(customerID, validCreateInput(nil))
	require.NoError(t, err)
	assert.Nil(t, booking.WorkerID)

	// No worker targeted, no notification; the event still goes out
	var count int64
	db.Model(&models.Notification{}).Count(&count)
	assert.Equal(t, int64(0), count)

	events := broadcaster.Events()
	require.Len(t, events, 1)
	assert.Equal(t, EventBookingCreated, events[0].Type)
}

func TestCreateBookingValidation(t *testing.T) {
	_, svc, _, customerID, workerID := newBookingFixture(t)

	missing := validCreateInput(&workerID)
	missing.Address = ""
	_, err := svc.Create(customerID, missing)
	assert.ErrorIs(t, err, ErrValidation)

	badMethod := validCreateInput(&workerID)
	badMethod.PaymentMethod = "bitcoin"
	_, err = svc.Create(customerID, badMethod)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateStatusAcceptRequiresEstimatedArrival(t *testing.T) {
	_, svc, _, customerID, workerID := newBookingFixture(t)

	booking, err := svc.Create(customerID, validCreateInput(&workerID))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(booking.ID, workerID, StatusUpdateInput{
		Status: models.BookingStatusAccepted,
	})
	assert.ErrorIs(t, err, ErrValidation)

	updated, err := svc.UpdateStatus(booking.ID, workerID, StatusUpdateInput{
		Status:           models.BookingStatusAccepted,
		EstimatedArrival: "30 minutes",
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusAccepted, updated.Status)
	assert.Equal(t, "30 minutes", updated.EstimatedArrival)
}

func TestUpdateStatusLifecycle(t *testing.T) {
	_, svc, _, customerID, workerID := newBookingFixture(t)

	booking, err := svc.Create(customerID, validCreateInput(&workerID))
	require.NoError(t, err)

	accepted, err := svc.UpdateStatus(booking.ID, workerID, StatusUpdateInput{
		Status:           models.BookingStatusAccepted,
		EstimatedArrival: "1 hour",
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusAccepted, accepted.Status)

	done, err := svc.UpdateStatus(booking.ID, workerID, StatusUpdateInput{
		Status: models.BookingStatusWorkDone,
		Price:  floatPtr(2500),
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusWorkDone, done.Status)
	require.NotNil(t, done.Price)
	assert.Equal(t, 2500.0, *done.Price)

	completed, err := svc.UpdateStatus(booking.ID, customerID, StatusUpdateInput{
		Status: models.BookingStatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, completed.Status)
}

func TestUpdateStatusRejectsInvalidEdges(t *testing.T) {
	_, svc, _, customerID, workerID := newBookingFixture(t)

	booking, err := svc.Create(customerID, validCreateInput(&workerID))
	require.NoError(t, err)

	// No pending -> work_done edge
	_, err = svc.UpdateStatus(booking.ID, workerID, StatusUpdateInput{
		Status: models.BookingStatusWorkDone,
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// No pending -> completed edge
	_, err = svc.UpdateStatus(booking.ID, customerID, StatusUpdateInput{
		Status: models.BookingStatusCompleted,
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Terminal state: rejected has no outgoing edges, not even cancel
	_, err = svc.UpdateStatus(booking.ID, workerID, StatusUpdateInput{
		Status: models.BookingStatusRejected,
	})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(booking.ID, customerID, StatusUpdateInput{
		Status: models.BookingStatusCancelled,
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatusRejectsUnknownStatusValue(t *testing.T) {
	_, svc, _, customerID, workerID := newBookingFixture(t)

	booking, err := svc.Create(customerID, validCreateInput(&workerID))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(booking.ID, workerID, StatusUpdateInput{Status: "in_progress"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	// pending is a real value but never a valid target
	_, err = svc.UpdateStatus(booking.ID, workerID, StatusUpdateInput{Status: models.BookingStatusPending})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatusRejectsNonParties(t *testing.T) {
	db, svc, _, customerID, workerID := newBookingFixture(t)
	strangerID := createUser(t, db, "stranger", models.RoleCustomer)

	booking, err := svc.Create(customerID, validCreateInput(&workerID))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(booking.ID, strangerID, StatusUpdateInput{
		Status: models.BookingStatusCancelled,
	})
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestUpdateStatusNotFound(t *testing.T) {
	_, svc, _, customerID, _ := newBookingFixture(t)

	_, err := svc.UpdateStatus(9999, customerID, StatusUpdateInput{
		Status: models.BookingStatusCancelled,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatusConcurrentConflict(t *testing.T) {
	db, svc, _, customerID, workerID := newBookingFixture(t)

	booking, err := svc.Create(customerID, validCreateInput(&workerID))
	require.NoError(t, err)

	// Simulate a transition that committed after our load: the row no longer
	// matches the status the actor saw, so the guarded update hits zero rows.
	loaded, err := svc.load(booking.ID)
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Booking{}).
		Where("id = ?", booking.ID).
		Update("status", models.BookingStatusCancelled).Error)

	res := db.Model(&models.Booking{}).
		Where("id = ? AND status = ?", loaded.ID, loaded.Status).
		Update("status", models.BookingStatusAccepted)
	require.NoError(t, res.Error)
	assert.Equal(t, int64(0), res.RowsAffected)

	// And through the service, a stale transition surfaces as a conflict on
	// the edge check or the CAS depending on interleaving; here the reload
	// sees cancelled so the edge check fires.
	_, err = svc.UpdateStatus(booking.ID, workerID, StatusUpdateInput{
		Status:           models.BookingStatusAccepted,
		EstimatedArrival: "1 hour",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatusNotifiesBeforeBroadcast(t *testing.T) {
	db, svc, broadcaster, customerID, workerID := newBookingFixture(t)

	booking, err := svc.Create(customerID, validCreateInput(&workerID))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(booking.ID, workerID, StatusUpdateInput{
		Status:           models.BookingStatusAccepted,
		EstimatedArrival: "45 minutes",
	})
	require.NoError(t, err)

	events := broadcaster.Events()
	require.Len(t, events, 2) // booking_created, booking_updated
	assert.Equal(t, EventBookingUpdated, events[1].Type)

	// Two notifications exist by the time the update event is published:
	// the booking_new from create and the booking_update from the transition
	assert.Equal(t, int64(2), events[1].NotificationsAtPublish)

	notis := notificationsFor(t, db, customerID)
	require.Len(t, notis, 1)
	assert.Equal(t, models.NotificationTypeBookingUpdate, notis[0].Type)
	assert.Contains(t, notis[0].Message, "accepted")
}

func TestUpdateStatusNotificationTypeFollowsStatus(t *testing.T) {
	db, svc, _, customerID, workerID := newBookingFixture(t)

	booking, err := svc.Create(customerID, validCreateInput(&workerID))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(booking.ID, customerID, StatusUpdateInput{
		Status: models.BookingStatusCancelled,
	})
	require.NoError(t, err)

	notis := notificationsFor(t, db, workerID)
	require.Len(t, notis, 2) // booking_new + cancellation
	assert.Equal(t, models.NotificationTypeBookingCancelled, notis[1].Type)
}

func TestCustomerMayTriggerWorkerTransitions(t *testing.T) {
	_, svc, _, customerID, workerID := newBookingFixture(t)

	booking, err := svc.Create(customerID, validCreateInput(&workerID))
	require.NoError(t, err)

	// The graph constrains edges, not actors: the customer may accept on the
	// worker's behalf, and no estimated arrival is demanded of them.
	accepted, err := svc.UpdateStatus(booking.ID, customerID, StatusUpdateInput{
		Status: models.BookingStatusAccepted,
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusAccepted, accepted.Status)
}

func TestListForUserScopedByRole(t *testing.T) {
	db, svc, _, customerID, workerID := newBookingFixture(t)
	otherCustomerID := createUser(t, db, "other-customer", models.RoleCustomer)

	_, err := svc.Create(customerID, validCreateInput(&workerID))
	require.NoError(t, err)
	_, err = svc.Create(otherCustomerID, validCreateInput(&workerID))
	require.NoError(t, err)

	mine, err := svc.ListForUser(customerID, models.RoleCustomer)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	workers, err := svc.ListForUser(workerID, models.RoleWorker)
	require.NoError(t, err)
	assert.Len(t, workers, 2)
}

func TestGetRestrictedToParties(t *testing.T) {
	db, svc, _, customerID, workerID := newBookingFixture(t)
	strangerID := createUser(t, db, "stranger", models.RoleCustomer)

	booking, err := svc.Create(customerID, validCreateInput(&workerID))
	require.NoError(t, err)

	_, err = svc.Get(booking.ID, customerID)
	assert.NoError(t, err)
	_, err = svc.Get(booking.ID, workerID)
	assert.NoError(t, err)
	_, err = svc.Get(booking.ID, strangerID)
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestAdminSetStatusBypassesGraph(t *testing.T) {
	db, svc, broadcaster, customerID, workerID := newBookingFixture(t)

	booking, err := svc.Create(customerID, validCreateInput(&workerID))
	require.NoError(t, err)
	eventsBefore := len(broadcaster.Events())

	// pending -> completed has no edge, but the override does not care
	forced, err := svc.AdminSetStatus(booking.ID, models.BookingStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, forced.Status)

	// Unknown values are still rejected
	_, err = svc.AdminSetStatus(booking.ID, "limbo")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	// No notification, no event
	var count int64
	db.Model(&models.Notification{}).Count(&count)
	assert.Equal(t, int64(1), count) // only the booking_new from create
	assert.Len(t, broadcaster.Events(), eventsBefore)
}
