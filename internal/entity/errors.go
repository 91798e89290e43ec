package entity

import "errors"

var (
	// Event errors
	ErrEventNotFound = errors.New("event not found")
	ErrEventArchived = errors.New("event is archived")
	ErrEventDates    = errors.New("event end date cannot precede start date")

	// Time slot errors
	ErrTimeSlotNotFound      = errors.New("time slot not found")
	ErrTimeSlotExists        = errors.New("time slot already exists for this interval")
	ErrNoTimeSlotsConfigured = errors.New("event has time slots enabled but none configured")
	ErrInvalidSlotConfig     = errors.New("invalid time slot configuration")

	// Registration errors
	ErrDuplicateRegistration = errors.New("talent already registered for this event")
	ErrSlotsExhausted        = errors.New("no appointment slots available")

	// Talent errors
	ErrTalentNotFound = errors.New("talent not found")

	// Participation errors
	ErrParticipationNotFound = errors.New("participation not found")
	ErrInvalidNote           = errors.New("note must be between 0 and 5")

	// General errors
	ErrConcurrentUpdate = errors.New("concurrent update detected")
)
