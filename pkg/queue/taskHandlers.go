package queue

import (
	"fmt"
	"log"
	"time"
)

// Mailer delivers outbound mail for task handlers.
type Mailer interface {
	Send(to, subject, body string) error
}

// ReminderMarker flips the sent flag once a reminder email went out, so the
// next scan does not pick the participation up again.
type ReminderMarker interface {
	MarkSent(participationID int64, urgent bool) error
}

// TaskHandler processes tasks from the queue
type TaskHandler struct {
	mailer Mailer
	marker ReminderMarker
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(mailer Mailer, marker ReminderMarker) *TaskHandler {
	return &TaskHandler{
		mailer: mailer,
		marker: marker,
	}
}

// HandleTask dispatches a task to its handler
func (h *TaskHandler) HandleTask(task *Task) error {
	log.Printf("Processing task %s of type %s (attempt %d/%d)",
		task.ID, task.Type, task.Attempts, task.MaxRetries)

	switch task.Type {
	case TaskTypeSendConfirmation:
		return h.handleSendConfirmation(task)
	case TaskTypeRDVReminder:
		return h.handleRDVReminder(task, false)
	case TaskTypeUrgentReminder:
		return h.handleRDVReminder(task, true)
	default:
		return fmt.Errorf("unknown task type: %s", task.Type)
	}
}

// handleSendConfirmation sends the registration confirmation email
func (h *TaskHandler) handleSendConfirmation(task *Task) error {
	email := task.GetString("talent_email")
	if email == "" {
		return fmt.Errorf("invalid talent_email in task data")
	}

	eventTitle := task.GetString("event_title")
	talentName := task.GetString("talent_name")

	var body string
	if rdv := task.GetTime("rdv"); !rdv.IsZero() {
		body = fmt.Sprintf(
			"Hello %s,\n\n"+
				"Your registration for %s is confirmed.\n"+
				"Your interview is scheduled on %s.\n\n"+
				"%s\n\n"+
				"See you there!",
			talentName,
			eventTitle,
			rdv.Format("02.01.2006 at 15:04"),
			venueLine(task),
		)
	} else {
		body = fmt.Sprintf(
			"Hello %s,\n\n"+
				"Your registration for %s is confirmed.\n\n"+
				"%s\n\n"+
				"See you there!",
			talentName,
			eventTitle,
			venueLine(task),
		)
	}

	subject := fmt.Sprintf("Registration confirmed: %s", eventTitle)
	if err := h.mailer.Send(email, subject, body); err != nil {
		return fmt.Errorf("failed to send confirmation email: %v", err)
	}

	log.Printf("Sent confirmation email for participation %d to %s",
		task.GetInt64("participation_id"), email)
	return nil
}

// handleRDVReminder sends a reminder email ahead of the appointment and
// marks the participation so the scan does not enqueue it twice.
func (h *TaskHandler) handleRDVReminder(task *Task, urgent bool) error {
	email := task.GetString("talent_email")
	if email == "" {
		return fmt.Errorf("invalid talent_email in task data")
	}

	rdv := task.GetTime("rdv")
	if rdv.IsZero() {
		return fmt.Errorf("invalid rdv in task data")
	}

	// An appointment already in the past needs no reminder.
	if time.Until(rdv) <= 0 {
		log.Printf("Skipping reminder for participation %d, appointment already passed",
			task.GetInt64("participation_id"))
		return h.markSent(task, urgent)
	}

	eventTitle := task.GetString("event_title")
	talentName := task.GetString("talent_name")

	var subject string
	if urgent {
		subject = fmt.Sprintf("Your interview for %s starts soon", eventTitle)
	} else {
		subject = fmt.Sprintf("Reminder: interview for %s", eventTitle)
	}

	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"This is a reminder of your interview for %s.\n"+
			"Scheduled on %s (in about %s).\n\n"+
			"%s\n\n"+
			"Good luck!",
		talentName,
		eventTitle,
		rdv.Format("02.01.2006 at 15:04"),
		time.Until(rdv).Round(time.Minute),
		venueLine(task),
	)

	if err := h.mailer.Send(email, subject, body); err != nil {
		return fmt.Errorf("failed to send reminder email: %v", err)
	}

	log.Printf("Sent %s reminder for participation %d to %s",
		reminderKind(urgent), task.GetInt64("participation_id"), email)

	return h.markSent(task, urgent)
}

func (h *TaskHandler) markSent(task *Task, urgent bool) error {
	if h.marker == nil {
		return nil
	}

	id := task.GetInt64("participation_id")
	if id == 0 {
		return fmt.Errorf("invalid participation_id in task data")
	}

	if err := h.marker.MarkSent(id, urgent); err != nil {
		return fmt.Errorf("failed to mark reminder sent for participation %d: %v", id, err)
	}
	return nil
}

func venueLine(task *Task) string {
	if task.GetBool("is_online") {
		if link := task.GetString("meeting_link"); link != "" {
			return fmt.Sprintf("The event is online, join here: %s", link)
		}
		return "The event is online, the meeting link will follow."
	}
	if location := task.GetString("event_location"); location != "" {
		return fmt.Sprintf("Location: %s", location)
	}
	return ""
}

func reminderKind(urgent bool) string {
	if urgent {
		return "urgent"
	}
	return "regular"
}
