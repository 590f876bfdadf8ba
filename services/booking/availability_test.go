package booking

import (
	"context"
	"testing"
	"time"

	"belissimo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlaps(t *testing.T) {
	base := time.Date(2025, 11, 20, 14, 0, 0, 0, time.UTC)
	hour := time.Hour

	tests := []struct {
		name           string
		aStart, aEnd   time.Time
		bStart, bEnd   time.Time
		expectsOverlap bool
	}{
		{"identical windows", base, base.Add(hour), base, base.Add(hour), true},
		{"partial overlap", base, base.Add(hour), base.Add(30 * time.Minute), base.Add(90 * time.Minute), true},
		{"contained window", base, base.Add(2 * hour), base.Add(30 * time.Minute), base.Add(hour), true},
		{"touching at end is free", base, base.Add(hour), base.Add(hour), base.Add(2 * hour), false},
		{"touching at start is free", base.Add(hour), base.Add(2 * hour), base, base.Add(hour), false},
		{"disjoint", base, base.Add(hour), base.Add(3 * hour), base.Add(4 * hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectsOverlap, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// The predicate is symmetric.
			assert.Equal(t, tt.expectsOverlap, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestResolveDuration(t *testing.T) {
	svc := &models.Service{DurationMinutes: 45}

	tests := []struct {
		name     string
		explicit int
		svc      *models.Service
		fallback int
		want     int
	}{
		{"explicit wins", 30, svc, 120, 30},
		{"service duration next", 0, svc, 120, 45},
		{"configured fallback", 0, &models.Service{}, 90, 90},
		{"fixed fallback last", 0, &models.Service{}, 0, FallbackDurationMinutes},
		{"nil service", 0, nil, 0, FallbackDurationMinutes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveDuration(tt.explicit, tt.svc, tt.fallback))
		})
	}
}

func TestCheckAvailability(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 11, 20, 14, 0, 0, 0, time.UTC)

	t.Run("open slot", func(t *testing.T) {
		svc := newTestService(newFakeBookingRepo(), &fakeNotifier{})

		res, err := svc.CheckAvailability(ctx, "haircut", "", start, 0)
		require.NoError(t, err)
		assert.True(t, res.Available)
		assert.Empty(t, res.Reason)
		assert.Equal(t, 60, res.DurationMinutes)
		assert.Equal(t, start.Add(60*time.Minute), res.EndAt)
	})

	t.Run("unknown service", func(t *testing.T) {
		svc := newTestService(newFakeBookingRepo(), &fakeNotifier{})

		res, err := svc.CheckAvailability(ctx, "massage", "", start, 0)
		require.NoError(t, err)
		assert.False(t, res.Available)
		assert.Equal(t, ReasonServiceNotFound, res.Reason)
	})

	t.Run("sub-service taken", func(t *testing.T) {
		repo := newFakeBookingRepo()
		svc := newTestService(repo, &fakeNotifier{})

		_, err := svc.Create(ctx, CreateBookingInput{
			ServiceID:      "haircut",
			SubServiceName: "fade",
			ClientName:     "Ayşe",
			ClientPhone:    "+905551112233",
			StartAt:        start,
		})
		require.NoError(t, err)

		res, err := svc.CheckAvailability(ctx, "haircut", "fade", start.Add(15*time.Minute), 0)
		require.NoError(t, err)
		assert.False(t, res.Available)
		assert.Equal(t, ReasonSubServiceTaken, res.Reason)
		assert.EqualValues(t, 1, res.SameSubService)

		// A different sub-service in the same window is still open.
		res, err = svc.CheckAvailability(ctx, "haircut", "trim", start.Add(15*time.Minute), 0)
		require.NoError(t, err)
		assert.True(t, res.Available)
	})

	t.Run("at capacity", func(t *testing.T) {
		repo := newFakeBookingRepo()
		svc := newTestService(repo, &fakeNotifier{})

		for _, sub := range []string{"fade", "trim", "layers"} {
			_, err := svc.Create(ctx, CreateBookingInput{
				ServiceID:      "haircut",
				SubServiceName: sub,
				ClientName:     "Ayşe",
				ClientPhone:    "+905551112233",
				StartAt:        start,
			})
			require.NoError(t, err)
		}

		res, err := svc.CheckAvailability(ctx, "haircut", "perm", start.Add(15*time.Minute), 0)
		require.NoError(t, err)
		assert.False(t, res.Available)
		assert.Equal(t, ReasonAtCapacity, res.Reason)
		assert.EqualValues(t, 3, res.Total)
	})

	t.Run("explicit duration widens the window", func(t *testing.T) {
		repo := newFakeBookingRepo()
		svc := newTestService(repo, &fakeNotifier{})

		_, err := svc.Create(ctx, CreateBookingInput{
			ServiceID:   "haircut",
			ClientName:  "Ayşe",
			ClientPhone: "+905551112233",
			StartAt:     start.Add(60 * time.Minute),
		})
		require.NoError(t, err)

		// A 60-minute check ending exactly at the existing start is free.
		res, err := svc.CheckAvailability(ctx, "haircut", "", start, 60)
		require.NoError(t, err)
		assert.True(t, res.Available)

		// Stretching to 90 minutes reaches into the booked window.
		res, err = svc.CheckAvailability(ctx, "haircut", "", start, 90)
		require.NoError(t, err)
		assert.False(t, res.Available)
	})
}
