package worker

import (
	"context"
	"time"

	"github.com/jobgate/jobgate-backend/internal/service"

	"github.com/sirupsen/logrus"
)

// ReminderWorker periodically scans for appointments entering the reminder
// windows and hands them to the task queue. Two windows run per tick: the
// day-ahead reminder and the short-notice urgent one.
type ReminderWorker struct {
	participationService service.ParticipationService
	interval             time.Duration
}

func NewReminderWorker(participationService service.ParticipationService, interval time.Duration) *ReminderWorker {
	return &ReminderWorker{
		participationService: participationService,
		interval:             interval,
	}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Info("Reminder worker started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Reminder worker stopped")
			return
		case <-ticker.C:
			w.scan(ctx)
		}
	}
}

func (w *ReminderWorker) scan(ctx context.Context) {
	regular, err := w.participationService.ScanReminders(ctx, false)
	if err != nil {
		logrus.Errorf("Failed to scan upcoming appointments: %v", err)
	}

	select {
	case <-ctx.Done():
		logrus.Info("Reminder scan interrupted by context cancellation")
		return
	default:
	}

	urgent, err := w.participationService.ScanReminders(ctx, true)
	if err != nil {
		logrus.Errorf("Failed to scan urgent appointments: %v", err)
	}

	if regular > 0 || urgent > 0 {
		logrus.Infof("Reminder scan completed: %d regular, %d urgent", regular, urgent)
	}
}

// GetStats returns worker state for diagnostics
func (w *ReminderWorker) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"worker_type": "rdv_reminder",
		"interval":    w.interval.String(),
		"status":      "running",
	}
}
