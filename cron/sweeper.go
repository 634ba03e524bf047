package cron

import (
	"context"
	"time"

	bookingRepo "consultify/database/repository/booking"
	"consultify/models"
	"consultify/services/scheduling"
	"consultify/services/tasks"

	"go.uber.org/zap"
)

const sweepInterval = 10 * time.Minute

// StartReminderSweep periodically re-enqueues reminders for confirmed
// sessions starting soon. Reminders are normally queued when a booking is
// confirmed; the sweep catches bookings confirmed while the queue was
// unreachable. Task ids keep re-enqueueing idempotent.
func StartReminderSweep(repo bookingRepo.BookingRepository, scheduler *tasks.ReminderScheduler, logger *zap.Logger) {
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()

		for range ticker.C {
			sweepOnce(repo, scheduler, logger)
		}
	}()
}

func sweepOnce(repo bookingRepo.BookingRepository, scheduler *tasks.ReminderScheduler, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now().In(scheduling.NepalTime)
	date := now.Format(scheduling.DateLayout)
	from := now.Add(tasks.ReminderLeadTime)
	to := from.Add(sweepInterval + time.Minute)

	fromTime := from.Format(scheduling.TimeLayout)
	toTime := to.Format(scheduling.TimeLayout)
	if toTime < fromTime { // window crosses midnight
		toTime = "23:59"
	}

	bookings, err := repo.ListLiveByDate(ctx, date, fromTime, toTime)
	if err != nil {
		logger.Warn("reminder sweep failed to list bookings", zap.Error(err))
		return
	}

	for i := range bookings {
		b := &bookings[i]
		if b.Status != models.StatusConfirmed {
			continue
		}
		if err := scheduler.ScheduleSessionReminders(b); err != nil {
			logger.Warn("reminder sweep failed to schedule",
				zap.String("bookingID", b.ID), zap.Error(err))
		}
	}
}
