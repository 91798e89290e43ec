package service

import (
	"context"
	"time"

	"github.com/jobgate/jobgate-backend/config"
	repository "github.com/jobgate/jobgate-backend/internal/database/postgres"
	"github.com/jobgate/jobgate-backend/internal/entity"
	"github.com/jobgate/jobgate-backend/internal/scheduling"
	"github.com/sirupsen/logrus"
)

type eventService struct {
	eventRepo         repository.EventRepository
	timeSlotRepo      repository.TimeSlotRepository
	participationRepo repository.ParticipationRepository
	allocatorCfg      *config.AllocatorConfig
}

func NewEventService(
	eventRepo repository.EventRepository,
	timeSlotRepo repository.TimeSlotRepository,
	participationRepo repository.ParticipationRepository,
	allocatorCfg *config.AllocatorConfig,
) EventService {
	return &eventService{
		eventRepo:         eventRepo,
		timeSlotRepo:      timeSlotRepo,
		participationRepo: participationRepo,
		allocatorCfg:      allocatorCfg,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *entity.Event) error {
	if err := validateEventDates(event); err != nil {
		return err
	}

	if event.RecruitersNumber < 1 {
		event.RecruitersNumber = s.allocatorCfg.DefaultRecruiters
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"event_id": event.ID,
		"title":    event.Title,
	}).Info("Event created")
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, id int64) (*entity.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

func (s *eventService) GetAllEvents(ctx context.Context) ([]*entity.Event, error) {
	return s.eventRepo.GetAll(ctx)
}

func (s *eventService) UpdateEvent(ctx context.Context, event *entity.Event) error {
	if err := validateEventDates(event); err != nil {
		return err
	}
	return s.eventRepo.Update(ctx, event)
}

func (s *eventService) DeleteEvent(ctx context.Context, id int64) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return err
	}

	logrus.WithField("event_id", id).Info("Event deleted")
	return nil
}

func (s *eventService) SearchEvents(ctx context.Context, title string) ([]*entity.Event, error) {
	return s.eventRepo.SearchByTitle(ctx, title)
}

func (s *eventService) GetEventsByDateRange(ctx context.Context, from, to time.Time) ([]*entity.Event, error) {
	return s.eventRepo.GetByDateRange(ctx, from, to)
}

func (s *eventService) GetEventStats(ctx context.Context, eventID int64) (*entity.EventParticipationStats, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.participationRepo.GetStatsByEvent(ctx, eventID)
}

// AddTimeSlot validates the slot window before persisting it: a slot that
// cannot produce a single candidate appointment is rejected up front rather
// than failing every registration later.
func (s *eventService) AddTimeSlot(ctx context.Context, slot *entity.TimeSlot) error {
	event, err := s.eventRepo.GetByID(ctx, slot.EventID)
	if err != nil {
		return err
	}

	if slot.DurationMinutes <= 0 {
		slot.DurationMinutes = s.allocatorCfg.DefaultDurationMinutes
	}
	if slot.CapacityHint < 0 {
		return entity.ErrInvalidSlotConfig
	}

	recruiters := event.RecruitersNumber
	if recruiters < 1 {
		recruiters = s.allocatorCfg.DefaultRecruiters
	}

	grid, err := scheduling.GenerateSlots(event.StartDate, slot.StartTime, slot.EndTime, slot.DurationMinutes, recruiters)
	if err != nil {
		return err
	}
	if len(grid) == 0 {
		return entity.ErrInvalidSlotConfig
	}

	if err := s.timeSlotRepo.Create(ctx, slot); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"event_id":   slot.EventID,
		"slot_id":    slot.ID,
		"start_time": slot.StartTime.String(),
		"end_time":   slot.EndTime.String(),
		"capacity":   len(grid),
	}).Info("Time slot added")
	return nil
}

func (s *eventService) GetTimeSlots(ctx context.Context, eventID int64) ([]*entity.TimeSlot, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.timeSlotRepo.GetByEventID(ctx, eventID)
}

func (s *eventService) DeleteTimeSlot(ctx context.Context, id int64) error {
	return s.timeSlotRepo.Delete(ctx, id)
}

func validateEventDates(event *entity.Event) error {
	if event.StartDate.IsZero() || event.EndDate.IsZero() {
		return entity.ErrEventDates
	}
	if !event.EndDate.After(event.StartDate) {
		return entity.ErrEventDates
	}
	return nil
}
