package scheduling

import (
	"testing"
	"time"

	"github.com/jobgate/jobgate-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

func TestGenerateSlots(t *testing.T) {
	tests := []struct {
		name          string
		start         entity.TimeOfDay
		end           entity.TimeOfDay
		duration      int
		recruiters    int
		wantSlots     int
		wantTimes     int
		wantFirst     string
		wantLastStart string
	}{
		{
			name:          "one hour of ten minute slots with two recruiters",
			start:         entity.NewTimeOfDay(9, 0),
			end:           entity.NewTimeOfDay(10, 0),
			duration:      10,
			recruiters:    2,
			wantSlots:     12,
			wantTimes:     6,
			wantFirst:     "09:00",
			wantLastStart: "09:50",
		},
		{
			name:          "single recruiter half hour slots",
			start:         entity.NewTimeOfDay(14, 0),
			end:           entity.NewTimeOfDay(16, 0),
			duration:      30,
			recruiters:    1,
			wantSlots:     4,
			wantTimes:     4,
			wantFirst:     "14:00",
			wantLastStart: "15:30",
		},
		{
			name:          "partial trailing interval is dropped",
			start:         entity.NewTimeOfDay(9, 0),
			end:           entity.NewTimeOfDay(9, 45),
			duration:      20,
			recruiters:    3,
			wantSlots:     6,
			wantTimes:     2,
			wantFirst:     "09:00",
			wantLastStart: "09:20",
		},
		{
			name:       "duration longer than the window yields nothing",
			start:      entity.NewTimeOfDay(9, 0),
			end:        entity.NewTimeOfDay(9, 30),
			duration:   45,
			recruiters: 2,
			wantSlots:  0,
			wantTimes:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := GenerateSlots(testDay, tt.start, tt.end, tt.duration, tt.recruiters)
			require.NoError(t, err)
			assert.Len(t, slots, tt.wantSlots)

			distinct := make(map[int64][]CandidateSlot)
			for _, s := range slots {
				distinct[s.Start.Unix()] = append(distinct[s.Start.Unix()], s)
			}
			assert.Len(t, distinct, tt.wantTimes)

			// Every timestamp carries exactly one slot per recruiter.
			for _, group := range distinct {
				assert.Len(t, group, tt.recruiters)
			}

			if tt.wantSlots > 0 {
				assert.Equal(t, tt.wantFirst, slots[0].Start.Format("15:04"))
				assert.Equal(t, tt.wantLastStart, slots[len(slots)-1].Start.Format("15:04"))
				assert.Equal(t, testDay.Day(), slots[0].Start.Day())
			}
		})
	}
}

func TestGenerateSlotsOrdering(t *testing.T) {
	slots, err := GenerateSlots(testDay, entity.NewTimeOfDay(9, 0), entity.NewTimeOfDay(11, 0), 15, 3)
	require.NoError(t, err)

	for i := 1; i < len(slots); i++ {
		assert.False(t, slots[i].Start.Before(slots[i-1].Start), "slots must be chronological")
		if slots[i].Start.Equal(slots[i-1].Start) {
			assert.Equal(t, slots[i-1].Recruiter+1, slots[i].Recruiter)
		}
	}

	// Each slot spans exactly the configured duration.
	for _, s := range slots {
		assert.Equal(t, 15*time.Minute, s.End.Sub(s.Start))
	}
}

func TestGenerateSlotsInvalidConfig(t *testing.T) {
	tests := []struct {
		name       string
		start      entity.TimeOfDay
		end        entity.TimeOfDay
		duration   int
		recruiters int
	}{
		{"start equals end", entity.NewTimeOfDay(9, 0), entity.NewTimeOfDay(9, 0), 10, 1},
		{"start after end", entity.NewTimeOfDay(17, 0), entity.NewTimeOfDay(9, 0), 10, 1},
		{"zero duration", entity.NewTimeOfDay(9, 0), entity.NewTimeOfDay(10, 0), 0, 1},
		{"negative duration", entity.NewTimeOfDay(9, 0), entity.NewTimeOfDay(10, 0), -5, 1},
		{"zero recruiters", entity.NewTimeOfDay(9, 0), entity.NewTimeOfDay(10, 0), 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := GenerateSlots(testDay, tt.start, tt.end, tt.duration, tt.recruiters)
			assert.ErrorIs(t, err, entity.ErrInvalidSlotConfig)
			assert.Nil(t, slots)
		})
	}
}

func TestGridCapacity(t *testing.T) {
	assert.Equal(t, 12, GridCapacity(entity.NewTimeOfDay(9, 0), entity.NewTimeOfDay(10, 0), 10, 2))
	assert.Equal(t, 2, GridCapacity(entity.NewTimeOfDay(9, 0), entity.NewTimeOfDay(9, 45), 20, 1))
	assert.Equal(t, 0, GridCapacity(entity.NewTimeOfDay(10, 0), entity.NewTimeOfDay(9, 0), 10, 2))
	assert.Equal(t, 0, GridCapacity(entity.NewTimeOfDay(9, 0), entity.NewTimeOfDay(10, 0), 10, 0))
}
