package service

import (
	"context"
	"time"
)

// ReminderMarkerAdapter bridges the queue's callback contract to the
// participation service. Task handlers run outside any request, so a short
// background context bounds the database call.
type ReminderMarkerAdapter struct {
	participations ParticipationService
}

func NewReminderMarkerAdapter(participations ParticipationService) *ReminderMarkerAdapter {
	return &ReminderMarkerAdapter{participations: participations}
}

func (a *ReminderMarkerAdapter) MarkSent(participationID int64, urgent bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return a.participations.MarkReminderSent(ctx, participationID, urgent)
}
