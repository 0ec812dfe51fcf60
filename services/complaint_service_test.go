package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local-services-server/models"
)

func newComplaintFixture(t *testing.T) (*ComplaintService, uint) {
	t.Helper()

	db := testDB(t)
	svc := NewComplaintService(db)
	userID := createUser(t, db, "complainer", models.RoleCustomer)
	return svc, userID
}

func TestCreateComplaint(t *testing.T) {
	svc, userID := newComplaintFixture(t)

	complaint, err := svc.Create(userID, "Worker no-show", "Nobody arrived at the scheduled time")
	require.NoError(t, err)
	assert.Equal(t, userID, complaint.UserID)
	assert.Equal(t, models.ComplaintStatusPending, complaint.Status)
	assert.Empty(t, complaint.AdminResponse)
}

func TestCreateComplaintRequiresSubjectAndDescription(t *testing.T) {
	svc, userID := newComplaintFixture(t)

	_, err := svc.Create(userID, "", "Some description")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(userID, "Subject only", "   ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListComplaintsForUserIsScoped(t *testing.T) {
	db := testDB(t)
	svc := NewComplaintService(db)
	alice := createUser(t, db, "alice", models.RoleCustomer)
	bob := createUser(t, db, "bob", models.RoleWorker)

	_, err := svc.Create(alice, "Billing issue", "Charged twice for one booking")
	require.NoError(t, err)
	_, err = svc.Create(bob, "Abusive customer", "Customer used offensive language")
	require.NoError(t, err)

	mine, err := svc.ListForUser(alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Billing issue", mine[0].Subject)

	all, err := svc.AdminList()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAdminUpdateComplaint(t *testing.T) {
	svc, userID := newComplaintFixture(t)

	complaint, err := svc.Create(userID, "Worker no-show", "Nobody arrived")
	require.NoError(t, err)

	updated, err := svc.AdminUpdate(complaint.ID, models.ComplaintStatusResolved, "Booking refunded")
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintStatusResolved, updated.Status)
	assert.Equal(t, "Booking refunded", updated.AdminResponse)
}

func TestAdminUpdateComplaintKeepsResponseWhenOmitted(t *testing.T) {
	svc, userID := newComplaintFixture(t)

	complaint, err := svc.Create(userID, "Worker no-show", "Nobody arrived")
	require.NoError(t, err)

	_, err = svc.AdminUpdate(complaint.ID, models.ComplaintStatusResolved, "Booking refunded")
	require.NoError(t, err)

	updated, err := svc.AdminUpdate(complaint.ID, models.ComplaintStatusDismissed, "")
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintStatusDismissed, updated.Status)
	assert.Equal(t, "Booking refunded", updated.AdminResponse)
}

func TestAdminUpdateComplaintValidation(t *testing.T) {
	svc, userID := newComplaintFixture(t)

	complaint, err := svc.Create(userID, "Worker no-show", "Nobody arrived")
	require.NoError(t, err)

	_, err = svc.AdminUpdate(complaint.ID, "escalated", "")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.AdminUpdate(complaint.ID+100, models.ComplaintStatusResolved, "")
	assert.ErrorIs(t, err, ErrNotFound)
}
