package tasks

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"consultify/config"
	"consultify/models"
	"consultify/services/scheduling"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeSendReminder = "reminder:send"

// ReminderLeadTime is how long before session start reminders fire.
const ReminderLeadTime = time.Hour

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	// A stable task id makes enqueueing idempotent: the confirm handler and
	// the periodic sweep can both schedule the same reminder safely.
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(fmt.Sprintf("%s:%s:%s", TypeSendReminder, payload.BookingID, payload.Target)),
	}

	return task, opts, nil
}

// ReminderScheduler enqueues session reminders for both participants when a
// booking is confirmed.
type ReminderScheduler struct {
	Client *asynq.Client
	Logger *zap.Logger
}

// NewReminderScheduler connects an asynq client against the reminder queue.
func NewReminderScheduler(logger *zap.Logger) *ReminderScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	return &ReminderScheduler{Client: client, Logger: logger}
}

// ScheduleSessionReminders queues one reminder per participant, firing an
// hour before the session starts. Reminders for sessions starting sooner
// than the lead time fire immediately.
func (s *ReminderScheduler) ScheduleSessionReminders(booking *models.Booking) error {
	day, err := scheduling.ParseDate(booking.ScheduledDate)
	if err != nil {
		return fmt.Errorf("cannot schedule reminders for booking %s: %w", booking.ID, err)
	}
	t, err := time.Parse(scheduling.TimeLayout, booking.ScheduledTime)
	if err != nil {
		return fmt.Errorf("cannot schedule reminders for booking %s: %w", booking.ID, err)
	}
	start := day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
	fireAt := start.Add(-ReminderLeadTime)

	when, err := scheduling.FormatSessionTime(booking.ScheduledDate, booking.ScheduledTime)
	if err != nil {
		return fmt.Errorf("cannot schedule reminders for booking %s: %w", booking.ID, err)
	}

	payloads := []models.ReminderPayload{
		{
			BookingID:   booking.ID,
			RecipientID: booking.ClientID,
			Target:      "client",
			Title:       "Upcoming consultation",
			Body:        fmt.Sprintf("Your session on %s starts in an hour.", when),
			SessionLink: booking.SessionLink,
			FireDate:    fireAt.Format(time.RFC3339),
		},
		{
			BookingID:   booking.ID,
			RecipientID: booking.AdvisorID,
			Target:      "advisor",
			Title:       "Upcoming consultation",
			Body:        fmt.Sprintf("Your session with %s on %s starts in an hour.", booking.ClientContact.Name, when),
			SessionLink: booking.SessionLink,
			FireDate:    fireAt.Format(time.RFC3339),
		},
	}

	for _, p := range payloads {
		task, opts, err := NewReminderTask(p, fireAt)
		if err != nil {
			return err
		}
		if _, err := s.Client.Enqueue(task, opts...); err != nil {
			if errors.Is(err, asynq.ErrTaskIDConflict) {
				continue
			}
			s.Logger.Error("failed to enqueue reminder",
				zap.String("bookingID", booking.ID),
				zap.String("target", p.Target),
				zap.Error(err))
			return err
		}
	}
	return nil
}
