package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{input: "09:30", want: NewTimeOfDay(9, 30)},
		{input: "00:00", want: NewTimeOfDay(0, 0)},
		{input: "23:59", want: NewTimeOfDay(23, 59)},
		{input: "9:30", wantErr: true},
		{input: "24:00", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeOfDayJSONRoundTrip(t *testing.T) {
	type payload struct {
		Start TimeOfDay `json:"start"`
	}

	data, err := json.Marshal(payload{Start: NewTimeOfDay(14, 5)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"14:05"}`, string(data))

	var decoded payload
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, NewTimeOfDay(14, 5), decoded.Start)
}

func TestTimeOfDayScan(t *testing.T) {
	var tod TimeOfDay

	require.NoError(t, tod.Scan([]byte("09:15:00")))
	assert.Equal(t, NewTimeOfDay(9, 15), tod)

	require.NoError(t, tod.Scan("17:45:00"))
	assert.Equal(t, NewTimeOfDay(17, 45), tod)

	require.NoError(t, tod.Scan(time.Date(2025, 1, 1, 8, 20, 0, 0, time.UTC)))
	assert.Equal(t, NewTimeOfDay(8, 20), tod)

	assert.Error(t, tod.Scan(42))
}

func TestTimeOfDayOn(t *testing.T) {
	day := time.Date(2025, 6, 10, 17, 30, 0, 0, time.UTC)

	got := NewTimeOfDay(9, 45).On(day)
	assert.Equal(t, time.Date(2025, 6, 10, 9, 45, 0, 0, time.UTC), got)
}

func TestEventIsArchived(t *testing.T) {
	now := time.Now()

	past := Event{EndDate: now.Add(-time.Hour)}
	assert.True(t, past.IsArchived(now))

	running := Event{EndDate: now.Add(time.Hour)}
	assert.False(t, running.IsArchived(now))
}
