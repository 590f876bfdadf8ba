// File: services/intelligence/interface.go
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	serviceRepo "belissimo/database/repository/service"
	"belissimo/models"
	"belissimo/services/booking"
	"belissimo/services/payment"
	"belissimo/utils"

	"go.uber.org/zap"
)

const anonymousUserID = "anonymous"

// AIService turns a free-form client message into a reply plus, when the
// conversation has gathered enough detail, a real booking action.
type AIService interface {
	HandleMessage(ctx context.Context, req models.AIRequest) (*models.AIResponse, error)
}

// DefaultAIService wires the intent resolver, the per-user memory and the
// booking domain together. The resolver only proposes; every side effect goes
// through the booking service and its own validation.
type DefaultAIService struct {
	Resolver Resolver
	Memory   MemoryStore
	Bookings booking.BookingService
	Services serviceRepo.ServiceRepository
	Payments payment.PaymentService
}

func (s *DefaultAIService) HandleMessage(ctx context.Context, req models.AIRequest) (*models.AIResponse, error) {
	logger := utils.GetLogger()

	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		userID = anonymousUserID
	}

	mem, err := s.Memory.Get(ctx, userID)
	if err != nil {
		// Memory is an accelerator, not a dependency: degrade to a blank
		// slate and keep the conversation going.
		logger.Warn("conversation memory unavailable", zap.String("userId", userID), zap.Error(err))
		mem = &models.MemoryState{}
	}

	services, err := s.Services.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load service catalog: %w", err)
	}

	intent := s.Resolver.Resolve(ctx, services, *mem, req.Message)

	// Merge before branching so partial details survive even when this turn
	// dispatches no action.
	merged := mem.Merge(intent.Data)
	s.saveMemory(ctx, userID, &merged)

	switch intent.Action {
	case models.ActionCreateBooking:
		return s.handleCreate(ctx, userID, intent, merged)
	case models.ActionCancelBooking:
		return s.handleCancel(ctx, userID, intent, merged)
	default:
		reply := intent.Reply
		if reply == "" {
			reply = "Okay, let me know what you'd like to do next."
		}
		return &models.AIResponse{Reply: reply, Action: models.ActionNone}, nil
	}
}

func (s *DefaultAIService) handleCreate(ctx context.Context, userID string, intent models.ResolvedIntent, merged models.MemoryState) (*models.AIResponse, error) {
	logger := utils.GetLogger()

	if missing := missingBookingFields(merged); len(missing) > 0 {
		reply := "To book that, I still need: " + strings.Join(missing, ", ") + "."
		return &models.AIResponse{Reply: reply, Action: models.ActionNone}, nil
	}

	startAt, err := time.Parse(time.RFC3339, merged.LastStartAt)
	if err != nil {
		return nil, booking.NewValidation("could not understand the requested time")
	}

	// Advisory pre-check so near-miss requests get the specific reason back
	// in conversation. The create below is still the only authority.
	if avail, err := s.Bookings.CheckAvailability(ctx, merged.LastServiceID, "", startAt, 0); err != nil {
		logger.Warn("availability pre-check failed", zap.Error(err))
	} else if !avail.Available {
		reply := "Sorry, that time isn't available. " + avail.Reason
		return &models.AIResponse{Reply: reply, Action: models.ActionNone}, nil
	}

	b, err := s.Bookings.Create(ctx, booking.CreateBookingInput{
		ServiceID:   merged.LastServiceID,
		ClientName:  merged.LastClientName,
		ClientPhone: merged.LastClientPhone,
		StartAt:     startAt,
	})
	if err != nil {
		if booking.IsConflict(err) || booking.IsNotFound(err) {
			return &models.AIResponse{Reply: "Sorry, I couldn't book that. " + err.Error(), Action: models.ActionNone}, nil
		}
		return nil, err
	}

	merged.LastBookingID = b.ID
	s.saveMemory(ctx, userID, &merged)

	reply := intent.Reply
	if reply == "" {
		reply = "Your booking is in."
	}
	reply += "\n\nBooking ID: " + b.ID

	resp := &models.AIResponse{Reply: reply, Action: models.ActionCreateBooking, BookingID: b.ID}

	if s.Payments != nil {
		if sess, err := s.Payments.CreateCheckoutSession(ctx, b.ID); err != nil {
			// The booking stands even when the deposit link can't be made.
			logger.Warn("deposit checkout creation failed",
				zap.String("bookingId", b.ID), zap.Error(err))
		} else {
			resp.PaymentURL = sess.URL
			resp.Reply += "\nDeposit link: " + sess.URL
		}
	}

	return resp, nil
}

func (s *DefaultAIService) handleCancel(ctx context.Context, userID string, intent models.ResolvedIntent, merged models.MemoryState) (*models.AIResponse, error) {
	id := intent.Data.BookingID
	if id == "" {
		id = merged.LastBookingID
	}
	if id == "" {
		return &models.AIResponse{
			Reply:  "I need your booking ID to cancel. Could you share it?",
			Action: models.ActionNone,
		}, nil
	}

	b, err := s.Bookings.Cancel(ctx, id)
	if err != nil {
		if booking.IsNotFound(err) {
			return &models.AIResponse{
				Reply:  "I couldn't find that booking. Could you double-check the ID?",
				Action: models.ActionNone,
			}, nil
		}
		return nil, err
	}

	merged.LastBookingID = b.ID
	s.saveMemory(ctx, userID, &merged)

	reply := intent.Reply
	if reply == "" {
		reply = "Done, your booking is cancelled."
	}
	return &models.AIResponse{Reply: reply, Action: models.ActionCancelBooking, BookingID: b.ID}, nil
}

func (s *DefaultAIService) saveMemory(ctx context.Context, userID string, state *models.MemoryState) {
	if err := s.Memory.Set(ctx, userID, state); err != nil {
		utils.GetLogger().Warn("failed to persist conversation memory",
			zap.String("userId", userID), zap.Error(err))
	}
}

func missingBookingFields(m models.MemoryState) []string {
	var missing []string
	if m.LastServiceID == "" {
		missing = append(missing, "which service you'd like")
	}
	if m.LastClientName == "" {
		missing = append(missing, "your name")
	}
	if m.LastClientPhone == "" {
		missing = append(missing, "your phone number")
	}
	if m.LastStartAt == "" {
		missing = append(missing, "the date and time")
	}
	return missing
}
