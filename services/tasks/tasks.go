package tasks

import (
	"encoding/json"
	"time"

	"belissimo/models"

	"github.com/hibiken/asynq"
)

const (
	TypeOwnerAlert   = "owner:alert"
	TypeReminderSend = "reminder:send"
)

// OwnerAlertPayload is the owner-facing alert for a booking lifecycle event.
type OwnerAlertPayload struct {
	Event   string         `json:"event"` // "booking created" / "booking cancelled"
	Booking models.Booking `json:"booking"`
}

// ReminderPayload schedules a client reminder ahead of the appointment. The
// worker re-fetches the booking before sending, so a cancellation between
// scheduling and firing silently drops the reminder.
type ReminderPayload struct {
	BookingID string    `json:"bookingId"`
	StartAt   time.Time `json:"startAt"`
}

func NewOwnerAlertTask(payload OwnerAlertPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeOwnerAlert, b), nil
}

func NewReminderTask(payload ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeReminderSend, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}
