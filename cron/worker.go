package cron

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"belissimo/config"
	bookingRepo "belissimo/database/repository/booking"
	"belissimo/services/tasks"

	"github.com/hibiken/asynq"
)

// webhook delivery client for owner alerts.
var alertHTTPClient = &http.Client{Timeout: 10 * time.Second}

// InitNotificationWorker runs the async worker in background. It drains the
// owner-alert and reminder queues; delivery goes to the configured owner
// webhook, or to the log when none is set.
func InitNotificationWorker(bookings bookingRepo.BookingRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeOwnerAlert, handleOwnerAlertTask)
	mux.HandleFunc(tasks.TypeReminderSend, handleReminderTask(bookings))

	go func() {
		log.Println("[NotificationWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[NotificationWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[NotificationWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleOwnerAlertTask(ctx context.Context, t *asynq.Task) error {
	var payload tasks.OwnerAlertPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal owner alert payload: %w", err)
	}

	body := map[string]interface{}{
		"event":   payload.Event,
		"booking": payload.Booking,
	}
	return deliver(ctx, body, fmt.Sprintf("owner alert: %s booking %s", payload.Event, payload.Booking.ID))
}

// handleReminderTask re-fetches the booking before sending so a booking
// cancelled after scheduling never produces a reminder.
func handleReminderTask(bookings bookingRepo.BookingRepository) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload tasks.ReminderPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("unmarshal reminder payload: %w", err)
		}

		b, err := bookings.GetByID(ctx, payload.BookingID)
		if err != nil {
			// Unknown id: nothing to remind about, drop the task.
			log.Printf("[NotificationWorker] reminder for unknown booking %s dropped", payload.BookingID)
			return nil
		}
		if !b.Active() {
			return nil
		}

		body := map[string]interface{}{
			"event":   "appointment reminder",
			"booking": b,
		}
		return deliver(ctx, body, fmt.Sprintf("reminder: booking %s at %s", b.ID, b.StartAt.Format(time.RFC3339)))
	}
}

func deliver(ctx context.Context, body map[string]interface{}, logLine string) error {
	url := config.AppConfig.OwnerAlertWebhookURL
	if url == "" {
		log.Printf("[NotificationWorker] %s (no webhook configured)", logLine)
		return nil
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := alertHTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("deliver alert: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("alert webhook returned status %d", resp.StatusCode)
	}
	return nil
}
