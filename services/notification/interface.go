package notification

import (
	"context"
	"time"

	"belissimo/models"
	"belissimo/services/tasks"

	"github.com/hibiken/asynq"
)

// NotificationService fires the booking side effects: owner alerts on
// create/cancel and scheduled client reminders. Callers treat every method
// as best-effort; failures are logged at the call site and never fail the
// booking operation.
type NotificationService interface {
	NotifyOwner(ctx context.Context, event string, b *models.Booking) error
	ScheduleReminder(ctx context.Context, b *models.Booking) error
}

// AsynqNotificationService enqueues alerts onto the Redis-backed task queue;
// the worker in cron/ handles delivery.
type AsynqNotificationService struct {
	client   *asynq.Client
	leadTime time.Duration
}

func NewAsynqNotificationService(redisOpt asynq.RedisClientOpt, reminderLeadHours int) *AsynqNotificationService {
	return &AsynqNotificationService{
		client:   asynq.NewClient(redisOpt),
		leadTime: time.Duration(reminderLeadHours) * time.Hour,
	}
}

func (s *AsynqNotificationService) NotifyOwner(ctx context.Context, event string, b *models.Booking) error {
	task, err := tasks.NewOwnerAlertTask(tasks.OwnerAlertPayload{Event: event, Booking: *b})
	if err != nil {
		return err
	}
	_, err = s.client.EnqueueContext(ctx, task)
	return err
}

func (s *AsynqNotificationService) ScheduleReminder(ctx context.Context, b *models.Booking) error {
	fireAt := b.StartAt.Add(-s.leadTime)
	if !fireAt.After(time.Now()) {
		// Appointment is closer than the lead window; no reminder.
		return nil
	}
	task, opts, err := tasks.NewReminderTask(tasks.ReminderPayload{BookingID: b.ID, StartAt: b.StartAt}, fireAt)
	if err != nil {
		return err
	}
	_, err = s.client.EnqueueContext(ctx, task, opts...)
	return err
}

// Close releases the underlying queue client.
func (s *AsynqNotificationService) Close() error {
	return s.client.Close()
}
