package service

import (
	"context"
	"testing"
	"time"

	"github.com/jobgate/jobgate-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEventService(event *entity.Event) (EventService, *fakeTimeSlotRepo) {
	eventRepo := newFakeEventRepo(event)
	timeSlotRepo := &fakeTimeSlotRepo{}
	return NewEventService(eventRepo, timeSlotRepo, &fakeParticipationRepo{}, allocatorCfg), timeSlotRepo
}

func TestCreateEventValidatesDates(t *testing.T) {
	svc, _ := newTestEventService(futureEvent(1, true))
	ctx := context.Background()

	start := time.Now().Add(24 * time.Hour)

	tests := []struct {
		name    string
		event   *entity.Event
		wantErr error
	}{
		{
			name:  "valid dates",
			event: &entity.Event{Title: "Job Fair", StartDate: start, EndDate: start.Add(4 * time.Hour)},
		},
		{
			name:    "end before start",
			event:   &entity.Event{Title: "Job Fair", StartDate: start, EndDate: start.Add(-time.Hour)},
			wantErr: entity.ErrEventDates,
		},
		{
			name:    "equal dates",
			event:   &entity.Event{Title: "Job Fair", StartDate: start, EndDate: start},
			wantErr: entity.ErrEventDates,
		},
		{
			name:    "missing dates",
			event:   &entity.Event{Title: "Job Fair"},
			wantErr: entity.ErrEventDates,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.CreateEvent(ctx, tt.event)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAddTimeSlotRejectsBrokenWindows(t *testing.T) {
	svc, _ := newTestEventService(futureEvent(2, true))
	ctx := context.Background()

	tests := []struct {
		name string
		slot *entity.TimeSlot
	}{
		{
			name: "start after end",
			slot: &entity.TimeSlot{
				EventID:         1,
				StartTime:       entity.NewTimeOfDay(12, 0),
				EndTime:         entity.NewTimeOfDay(9, 0),
				DurationMinutes: 10,
			},
		},
		{
			name: "window shorter than one interview",
			slot: &entity.TimeSlot{
				EventID:         1,
				StartTime:       entity.NewTimeOfDay(9, 0),
				EndTime:         entity.NewTimeOfDay(9, 15),
				DurationMinutes: 30,
			},
		},
		{
			name: "negative capacity hint",
			slot: &entity.TimeSlot{
				EventID:         1,
				StartTime:       entity.NewTimeOfDay(9, 0),
				EndTime:         entity.NewTimeOfDay(10, 0),
				DurationMinutes: 10,
				CapacityHint:    -1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.AddTimeSlot(ctx, tt.slot)
			assert.ErrorIs(t, err, entity.ErrInvalidSlotConfig)
		})
	}
}

func TestAddTimeSlotAppliesDefaultDuration(t *testing.T) {
	svc, repo := newTestEventService(futureEvent(2, true))

	slot := &entity.TimeSlot{
		EventID:   1,
		StartTime: entity.NewTimeOfDay(9, 0),
		EndTime:   entity.NewTimeOfDay(10, 0),
	}

	require.NoError(t, svc.AddTimeSlot(context.Background(), slot))
	assert.Equal(t, allocatorCfg.DefaultDurationMinutes, slot.DurationMinutes)
	require.Len(t, repo.slots, 1)
}

func TestAddTimeSlotUnknownEvent(t *testing.T) {
	svc, _ := newTestEventService(futureEvent(1, true))

	slot := &entity.TimeSlot{
		EventID:         42,
		StartTime:       entity.NewTimeOfDay(9, 0),
		EndTime:         entity.NewTimeOfDay(10, 0),
		DurationMinutes: 10,
	}

	err := svc.AddTimeSlot(context.Background(), slot)
	assert.ErrorIs(t, err, entity.ErrEventNotFound)
}
