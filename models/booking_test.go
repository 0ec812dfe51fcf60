package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func uintPtr(v uint) *uint { return &v }

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{BookingStatusPending, BookingStatusAccepted, true},
		{BookingStatusPending, BookingStatusRejected, true},
		{BookingStatusPending, BookingStatusCancelled, true},
		{BookingStatusPending, BookingStatusWorkDone, false},
		{BookingStatusPending, BookingStatusCompleted, false},

		{BookingStatusAccepted, BookingStatusWorkDone, true},
		{BookingStatusAccepted, BookingStatusCancelled, true},
		{BookingStatusAccepted, BookingStatusRejected, false},
		{BookingStatusAccepted, BookingStatusCompleted, false},
		{BookingStatusAccepted, BookingStatusPending, false},

		{BookingStatusWorkDone, BookingStatusCompleted, true},
		{BookingStatusWorkDone, BookingStatusCancelled, true},
		{BookingStatusWorkDone, BookingStatusAccepted, false},

		// Terminal states have no outgoing edges
		{BookingStatusRejected, BookingStatusAccepted, false},
		{BookingStatusRejected, BookingStatusCancelled, false},
		{BookingStatusCompleted, BookingStatusCancelled, false},
		{BookingStatusCancelled, BookingStatusPending, false},
		{BookingStatusCancelled, BookingStatusCancelled, false},

		// Self transitions are never edges
		{BookingStatusPending, BookingStatusPending, false},
		{BookingStatusAccepted, BookingStatusAccepted, false},
	}

	for _, tc := range cases {
		got := CanTransition(tc.from, tc.to)
		assert.Equalf(t, tc.allowed, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, BookingStatusPending.IsTerminal())
	assert.False(t, BookingStatusAccepted.IsTerminal())
	assert.False(t, BookingStatusWorkDone.IsTerminal())
	assert.True(t, BookingStatusRejected.IsTerminal())
	assert.True(t, BookingStatusCompleted.IsTerminal())
	assert.True(t, BookingStatusCancelled.IsTerminal())
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []BookingStatus{
		BookingStatusPending, BookingStatusAccepted, BookingStatusRejected,
		BookingStatusWorkDone, BookingStatusCompleted, BookingStatusCancelled,
	} {
		assert.Truef(t, IsValidStatus(s), "%s", s)
	}
	assert.False(t, IsValidStatus("in_progress"))
	assert.False(t, IsValidStatus(""))

	// pending is a valid value but never a valid transition target
	assert.False(t, IsValidTargetStatus(BookingStatusPending))
	assert.True(t, IsValidTargetStatus(BookingStatusCancelled))
}

func TestOtherParty(t *testing.T) {
	booking := Booking{CustomerID: 1, WorkerID: uintPtr(2)}

	assert.Equal(t, uint(2), *booking.OtherParty(1))
	assert.Equal(t, uint(1), *booking.OtherParty(2))

	// Actor outside the booking resolves against no one
	assert.Nil(t, booking.OtherParty(3))
}

func TestOtherPartyUnassigned(t *testing.T) {
	booking := Booking{CustomerID: 1}

	// Customer has no counterparty until a worker is assigned
	assert.Nil(t, booking.OtherParty(1))
	assert.Nil(t, booking.OtherParty(2))
}

func TestIsParty(t *testing.T) {
	booking := Booking{CustomerID: 1, WorkerID: uintPtr(2)}
	assert.True(t, booking.IsParty(1))
	assert.True(t, booking.IsParty(2))
	assert.False(t, booking.IsParty(3))

	unassigned := Booking{CustomerID: 1}
	assert.True(t, unassigned.IsParty(1))
	assert.False(t, unassigned.IsParty(2))
}
