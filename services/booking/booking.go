package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	bookingRepo "belissimo/database/repository/booking"
	serviceRepo "belissimo/database/repository/service"
	"belissimo/models"
	"belissimo/utils"

	"go.uber.org/zap"
)

// Create runs the whole create path under one atomic operation: load the
// service, compute the end instant, re-run the overlap rules against the
// transaction's view and insert. Either the booking row lands with
// status=pending or nothing is written.
func (s *DefaultBookingService) Create(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	if err := validateCreateInput(in); err != nil {
		return nil, err
	}

	svc, err := s.ServiceRepo.GetByID(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrNotFound) {
			return nil, NewNotFound("Service not found")
		}
		return nil, err
	}

	duration := resolveDuration(in.DurationMinutes, svc, s.DefaultDuration)
	price := in.PriceCents
	if price <= 0 {
		price = svc.PriceCents
	}

	b := &models.Booking{
		ServiceID:       in.ServiceID,
		SubServiceName:  in.SubServiceName,
		ClientName:      in.ClientName,
		ClientPhone:     in.ClientPhone,
		StartAt:         in.StartAt,
		EndAt:           in.StartAt.Add(time.Duration(duration) * time.Minute),
		DurationMinutes: duration,
		PriceCents:      price,
	}

	if err := s.Repo.CreateGuarded(ctx, b, s.Limits); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrSubServiceTaken):
			return nil, NewConflict(ReasonSubServiceTaken)
		case errors.Is(err, bookingRepo.ErrCapacityReached):
			return nil, NewConflict(ReasonAtCapacity)
		default:
			return nil, err
		}
	}

	s.notifyOwner(ctx, "booking created", b)
	s.scheduleReminder(ctx, b)

	return b, nil
}

// Cancel transitions any non-cancelled booking to cancelled. Cancelling an
// already-cancelled booking re-confirms the cancellation rather than erroring;
// that keeps the conversational cancel flow simple and is intended behavior.
func (s *DefaultBookingService) Cancel(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Repo.Cancel(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, NewNotFound("Booking not found")
		}
		return nil, err
	}

	s.notifyOwner(ctx, "booking cancelled", b)
	return b, nil
}

// ConfirmPayment moves a pending booking to confirmed once the deposit
// checkout completes.
func (s *DefaultBookingService) ConfirmPayment(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Repo.Confirm(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrNotFound):
			return nil, NewNotFound("Booking not found")
		case errors.Is(err, bookingRepo.ErrInvalidTransition):
			return nil, NewConflict("Booking is no longer pending")
		default:
			return nil, err
		}
	}
	return b, nil
}

func (s *DefaultBookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, NewNotFound("Booking not found")
		}
		return nil, err
	}
	return b, nil
}

func (s *DefaultBookingService) ListByDate(ctx context.Context, day time.Time) ([]models.Booking, error) {
	return s.Repo.ListByDate(ctx, day)
}

func (s *DefaultBookingService) AttachPayment(ctx context.Context, id, paymentID string) error {
	if err := s.Repo.SetPaymentID(ctx, id, paymentID); err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return NewNotFound("Booking not found")
		}
		return err
	}
	return nil
}

// notifyOwner fires the owner alert side effect. Failures are logged and
// swallowed; they must never fail the booking operation itself.
func (s *DefaultBookingService) notifyOwner(ctx context.Context, event string, b *models.Booking) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.NotifyOwner(ctx, event, b); err != nil {
		utils.GetLogger().Warn("owner notification failed",
			zap.String("event", event),
			zap.String("bookingId", b.ID),
			zap.Error(err))
	}
}

func (s *DefaultBookingService) scheduleReminder(ctx context.Context, b *models.Booking) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.ScheduleReminder(ctx, b); err != nil {
		utils.GetLogger().Warn("reminder scheduling failed",
			zap.String("bookingId", b.ID),
			zap.Error(err))
	}
}

func validateCreateInput(in CreateBookingInput) error {
	switch {
	case strings.TrimSpace(in.ServiceID) == "":
		return NewValidation("serviceId is required")
	case strings.TrimSpace(in.ClientName) == "":
		return NewValidation("clientName is required")
	case strings.TrimSpace(in.ClientPhone) == "":
		return NewValidation("clientPhone is required")
	case in.StartAt.IsZero():
		return NewValidation("startAt is required")
	}
	return nil
}
