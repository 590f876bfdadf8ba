package booking

import (
	"context"
	"errors"
	"time"

	serviceRepo "belissimo/database/repository/service"
	"belissimo/models"
)

// FallbackDurationMinutes applies when neither the request nor the catalog
// entry carries a duration, so a missing catalog field degrades the estimate
// instead of failing the check.
const FallbackDurationMinutes = 120

// AvailabilityResult is the outcome of an advisory availability check.
type AvailabilityResult struct {
	Available       bool      `json:"available"`
	Reason          string    `json:"reason,omitempty"`
	ServiceName     string    `json:"serviceName,omitempty"`
	SubServiceName  string    `json:"subServiceName,omitempty"`
	StartAt         time.Time `json:"requestedStart"`
	EndAt           time.Time `json:"requestedEnd"`
	DurationMinutes int       `json:"durationMinutes"`
	SameSubService  int64     `json:"conflictingSameSubService"`
	Total           int64     `json:"conflictingTotal"`
}

// Human-readable reasons, distinguishing the rule that was hit.
const (
	ReasonServiceNotFound = "service not found"
	ReasonSubServiceTaken = "This specific service is already booked at this time"
	ReasonAtCapacity      = "Time slot has reached maximum capacity"
)

// Overlaps is the canonical interval predicate: half-open [start, end), so a
// booking ending exactly when another starts is not a conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// resolveDuration picks the explicit duration, else the service's, else the
// fixed fallback.
func resolveDuration(explicit int, svc *models.Service, fallback int) int {
	if explicit > 0 {
		return explicit
	}
	if svc != nil && svc.DurationMinutes > 0 {
		return svc.DurationMinutes
	}
	if fallback > 0 {
		return fallback
	}
	return FallbackDurationMinutes
}

// CheckAvailability decides whether the proposed window can be booked under
// the two-tier capacity rules. It is side-effect free and advisory only: the
// same predicate is re-evaluated inside the creating transaction, because
// this result can go stale between check and write.
func (s *DefaultBookingService) CheckAvailability(ctx context.Context, serviceID, subServiceName string, startAt time.Time, durationMinutes int) (*AvailabilityResult, error) {
	svc, err := s.ServiceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrNotFound) {
			return &AvailabilityResult{Available: false, Reason: ReasonServiceNotFound, StartAt: startAt}, nil
		}
		return nil, err
	}

	duration := resolveDuration(durationMinutes, svc, s.DefaultDuration)
	endAt := startAt.Add(time.Duration(duration) * time.Minute)

	counts, err := s.Repo.CountOverlapping(ctx, serviceID, subServiceName, startAt, endAt)
	if err != nil {
		return nil, err
	}

	res := &AvailabilityResult{
		ServiceName:     svc.Name,
		SubServiceName:  subServiceName,
		StartAt:         startAt,
		EndAt:           endAt,
		DurationMinutes: duration,
		SameSubService:  counts.SameSubService,
		Total:           counts.Total,
	}

	switch {
	case counts.SameSubService >= int64(s.Limits.MaxSameSubService):
		res.Reason = ReasonSubServiceTaken
	case counts.Total >= int64(s.Limits.MaxTotalCapacity):
		res.Reason = ReasonAtCapacity
	default:
		res.Available = true
	}
	return res, nil
}
