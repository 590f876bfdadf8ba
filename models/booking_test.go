package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTransition(t *testing.T) {
	tests := []struct {
		from, to BookingStatus
		ok       bool
	}{
		{BookingPending, BookingConfirmed, true},
		{BookingPending, BookingCancelled, true},
		{BookingConfirmed, BookingCancelled, true},
		{BookingCancelled, BookingPending, false},
		{BookingCancelled, BookingConfirmed, false},
		{BookingConfirmed, BookingPending, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, ValidTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestBookingActive(t *testing.T) {
	assert.True(t, (&Booking{Status: BookingPending}).Active())
	assert.True(t, (&Booking{Status: BookingConfirmed}).Active())
	assert.False(t, (&Booking{Status: BookingCancelled}).Active())
}

func TestMemoryStateMerge(t *testing.T) {
	mem := MemoryState{LastServiceID: "A", LastClientName: "Ayşe"}

	merged := mem.Merge(IntentData{ServiceID: "B", ClientPhone: "+90555"})
	assert.Equal(t, "B", merged.LastServiceID)
	assert.Equal(t, "Ayşe", merged.LastClientName)
	assert.Equal(t, "+90555", merged.LastClientPhone)

	// An empty turn changes nothing.
	assert.Equal(t, merged, merged.Merge(IntentData{}))

	// The receiver is never mutated.
	assert.Equal(t, "A", mem.LastServiceID)
}
