package service

import (
	"context"
	"time"

	"github.com/jobgate/jobgate-backend/config"
	repository "github.com/jobgate/jobgate-backend/internal/database/postgres"
	"github.com/jobgate/jobgate-backend/internal/entity"
	"github.com/jobgate/jobgate-backend/pkg/queue"
	"github.com/sirupsen/logrus"
)

type participationService struct {
	participationRepo repository.ParticipationRepository
	taskQueue         queue.Queue
	workerCfg         *config.WorkerConfig
}

func NewParticipationService(
	participationRepo repository.ParticipationRepository,
	taskQueue queue.Queue,
	workerCfg *config.WorkerConfig,
) ParticipationService {
	return &participationService{
		participationRepo: participationRepo,
		taskQueue:         taskQueue,
		workerCfg:         workerCfg,
	}
}

func (s *participationService) GetParticipation(ctx context.Context, id int64) (*entity.Participation, error) {
	return s.participationRepo.GetByID(ctx, id)
}

func (s *participationService) GetEventParticipations(ctx context.Context, eventID int64) ([]*entity.Participation, error) {
	return s.participationRepo.GetByEventID(ctx, eventID)
}

func (s *participationService) GetTalentParticipations(ctx context.Context, talentID int64) ([]*entity.Participation, error) {
	return s.participationRepo.GetByTalentID(ctx, talentID)
}

func (s *participationService) CancelParticipation(ctx context.Context, id int64) error {
	if err := s.participationRepo.Delete(ctx, id); err != nil {
		return err
	}

	logrus.WithField("participation_id", id).Info("Participation cancelled")
	return nil
}

func (s *participationService) SetAttendance(ctx context.Context, id int64, attended bool) error {
	return s.participationRepo.SetAttendance(ctx, id, attended)
}

func (s *participationService) SetReview(ctx context.Context, id int64, req *ReviewRequest) error {
	if req.Note < 0 || req.Note > 5 {
		return entity.ErrInvalidNote
	}
	return s.participationRepo.SetReview(ctx, id, req.Note, req.Comment)
}

func (s *participationService) SetSelected(ctx context.Context, id int64, selected bool) error {
	return s.participationRepo.SetSelected(ctx, id, selected)
}

// ScanReminders finds appointments entering the reminder window and enqueues
// one reminder task per participation. The sent flag is flipped only after
// the email goes out, so a crashed worker re-enqueues on the next scan.
func (s *participationService) ScanReminders(ctx context.Context, urgent bool) (int, error) {
	now := time.Now()
	from := now.Add(-s.workerCfg.ReminderGracePeriod)

	window := s.workerCfg.ReminderWindow
	if urgent {
		window = s.workerCfg.UrgentWindow
	}
	to := now.Add(window)

	reminders, err := s.participationRepo.GetUpcomingRDVs(ctx, from, to, urgent)
	if err != nil {
		return 0, err
	}

	taskType := queue.TaskTypeRDVReminder
	if urgent {
		taskType = queue.TaskTypeUrgentReminder
	}

	enqueued := 0
	for _, rem := range reminders {
		task := &queue.Task{
			Type: taskType,
			Data: map[string]interface{}{
				"participation_id": rem.ParticipationID,
				"talent_name":      rem.TalentName,
				"talent_email":     rem.TalentEmail,
				"event_title":      rem.EventTitle,
				"event_location":   rem.EventLocation,
				"is_online":        rem.IsOnline,
				"meeting_link":     rem.MeetingLink,
				"rdv":              rem.RDV.Format(time.RFC3339),
			},
		}

		if err := s.taskQueue.Publish(ctx, task); err != nil {
			logrus.WithError(err).WithField("participation_id", rem.ParticipationID).
				Error("Failed to enqueue reminder")
			continue
		}
		enqueued++
	}

	return enqueued, nil
}

func (s *participationService) MarkReminderSent(ctx context.Context, id int64, urgent bool) error {
	return s.participationRepo.MarkReminderSent(ctx, id, urgent)
}
