package service

import (
	"context"
	"errors"
	"time"

	"github.com/jobgate/jobgate-backend/config"
	repository "github.com/jobgate/jobgate-backend/internal/database/postgres"
	"github.com/jobgate/jobgate-backend/internal/entity"
	"github.com/jobgate/jobgate-backend/internal/scheduling"
	"github.com/jobgate/jobgate-backend/pkg/queue"
	"github.com/sirupsen/logrus"
)

type registrationService struct {
	eventRepo         repository.EventRepository
	timeSlotRepo      repository.TimeSlotRepository
	talentRepo        repository.TalentRepository
	participationRepo repository.ParticipationRepository
	taskQueue         queue.Queue
	allocatorCfg      *config.AllocatorConfig
}

func NewRegistrationService(
	eventRepo repository.EventRepository,
	timeSlotRepo repository.TimeSlotRepository,
	talentRepo repository.TalentRepository,
	participationRepo repository.ParticipationRepository,
	taskQueue queue.Queue,
	allocatorCfg *config.AllocatorConfig,
) RegistrationService {
	return &registrationService{
		eventRepo:         eventRepo,
		timeSlotRepo:      timeSlotRepo,
		talentRepo:        talentRepo,
		participationRepo: participationRepo,
		taskQueue:         taskQueue,
		allocatorCfg:      allocatorCfg,
	}
}

// Register commits a talent's registration for an event. When the event has
// interview slots enabled, the earliest free appointment of the chosen time
// slot is allocated atomically against the committed ledger.
func (s *registrationService) Register(ctx context.Context, req *RegisterRequest) (*RegistrationResult, error) {
	event, err := s.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	if event.IsArchived(time.Now()) {
		return nil, entity.ErrEventArchived
	}

	talent, err := s.resolveTalent(ctx, req)
	if err != nil {
		return nil, err
	}

	participation := &entity.Participation{
		TalentID: talent.ID,
		EventID:  event.ID,
	}

	if !event.IsTimeSlotEnabled {
		if err := s.participationRepo.Create(ctx, participation); err != nil {
			return nil, err
		}
		s.enqueueConfirmation(participation, talent, event)

		return &RegistrationResult{
			Participation: participation,
			Talent:        talent,
		}, nil
	}

	slot, err := s.selectTimeSlot(ctx, event.ID, req.TimeSlotID)
	if err != nil {
		return nil, err
	}

	grid, capacity, err := s.buildGrid(event, slot)
	if err != nil {
		return nil, err
	}

	participation.TimeSlotID = &slot.ID
	if err := s.participationRepo.CreateWithAppointment(ctx, participation, grid, capacity); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"event_id":  event.ID,
		"talent_id": talent.ID,
		"slot_id":   slot.ID,
		"rdv":       participation.RDV,
	}).Info("Registration committed with appointment")

	s.enqueueConfirmation(participation, talent, event)

	return &RegistrationResult{
		Participation: participation,
		Talent:        talent,
		RDV:           participation.RDV,
	}, nil
}

// resolveTalent finds or creates the talent profile for the request. Matching
// tries the account ID first, then the email address. On a match, non-empty
// incoming fields overwrite the stored profile; empty fields leave it alone.
func (s *registrationService) resolveTalent(ctx context.Context, req *RegisterRequest) (*entity.Talent, error) {
	var talent *entity.Talent
	var err error

	if req.UserID != nil {
		talent, err = s.talentRepo.GetByUserID(ctx, *req.UserID)
		if err != nil && !errors.Is(err, entity.ErrTalentNotFound) {
			return nil, err
		}
	}

	if talent == nil && req.Email != "" {
		talent, err = s.talentRepo.GetByEmail(ctx, req.Email)
		if err != nil && !errors.Is(err, entity.ErrTalentNotFound) {
			return nil, err
		}
	}

	if talent == nil {
		talent = &entity.Talent{
			UserID:    req.UserID,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
			School:    req.School,
			Program:   req.Program,
			ResumeURL: req.ResumeURL,
		}
		if err := s.talentRepo.Create(ctx, talent); err != nil {
			return nil, err
		}
		return talent, nil
	}

	if mergeTalentFields(talent, req) {
		if err := s.talentRepo.Update(ctx, talent); err != nil {
			return nil, err
		}
	}

	return talent, nil
}

// mergeTalentFields applies incoming non-empty fields to the stored profile
// and reports whether anything changed.
func mergeTalentFields(talent *entity.Talent, req *RegisterRequest) bool {
	changed := false

	apply := func(dst *string, src string) {
		if src != "" && *dst != src {
			*dst = src
			changed = true
		}
	}

	apply(&talent.FirstName, req.FirstName)
	apply(&talent.LastName, req.LastName)
	apply(&talent.Email, req.Email)
	apply(&talent.Phone, req.Phone)
	apply(&talent.School, req.School)
	apply(&talent.Program, req.Program)
	apply(&talent.ResumeURL, req.ResumeURL)

	return changed
}

// selectTimeSlot resolves which of the event's slots the appointment should
// come from: the requested one, or the earliest when no preference was given.
func (s *registrationService) selectTimeSlot(ctx context.Context, eventID int64, requested *int64) (*entity.TimeSlot, error) {
	slots, err := s.timeSlotRepo.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, entity.ErrNoTimeSlotsConfigured
	}

	if requested == nil {
		return slots[0], nil
	}

	for _, slot := range slots {
		if slot.ID == *requested {
			return slot, nil
		}
	}
	return nil, entity.ErrTimeSlotNotFound
}

func (s *registrationService) buildGrid(event *entity.Event, slot *entity.TimeSlot) ([]scheduling.CandidateSlot, int, error) {
	duration := slot.DurationMinutes
	if duration <= 0 {
		duration = s.allocatorCfg.DefaultDurationMinutes
	}

	recruiters := event.RecruitersNumber
	if recruiters < 1 {
		recruiters = s.allocatorCfg.DefaultRecruiters
	}

	grid, err := scheduling.GenerateSlots(event.StartDate, slot.StartTime, slot.EndTime, duration, recruiters)
	if err != nil {
		return nil, 0, err
	}
	if len(grid) == 0 {
		return nil, 0, entity.ErrInvalidSlotConfig
	}

	return grid, recruiters, nil
}

// enqueueConfirmation publishes the confirmation email task. Failures are
// logged and swallowed: the registration is already committed, mail is best
// effort.
func (s *registrationService) enqueueConfirmation(p *entity.Participation, talent *entity.Talent, event *entity.Event) {
	if s.taskQueue == nil || talent.Email == "" {
		return
	}

	data := map[string]interface{}{
		"participation_id": p.ID,
		"talent_name":      talent.FullName(),
		"talent_email":     talent.Email,
		"event_title":      event.Title,
		"event_location":   event.Location,
		"is_online":        event.IsOnline,
		"meeting_link":     event.MeetingLink,
	}
	if p.RDV != nil {
		data["rdv"] = p.RDV.Format(time.RFC3339)
	}

	task := &queue.Task{
		Type: queue.TaskTypeSendConfirmation,
		Data: data,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.taskQueue.Publish(ctx, task); err != nil {
		logrus.WithError(err).WithField("participation_id", p.ID).
			Error("Failed to enqueue confirmation email")
	}
}
