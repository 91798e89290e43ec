package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jobgate/jobgate-backend/config"
	"github.com/jobgate/jobgate-backend/internal/entity"
	"github.com/jobgate/jobgate-backend/internal/scheduling"
	"github.com/jobgate/jobgate-backend/pkg/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory fakes. The participation fake serializes its allocation under a
// mutex the same way the database serializes the transaction, which lets the
// concurrency test drive real goroutines against it.

type fakeEventRepo struct {
	mu     sync.Mutex
	events map[int64]*entity.Event
}

func newFakeEventRepo(events ...*entity.Event) *fakeEventRepo {
	r := &fakeEventRepo{events: make(map[int64]*entity.Event)}
	for _, e := range events {
		r.events[e.ID] = e
	}
	return r
}

func (r *fakeEventRepo) Create(ctx context.Context, event *entity.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event.ID = int64(len(r.events) + 1)
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) GetByID(ctx context.Context, id int64) (*entity.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return nil, entity.ErrEventNotFound
	}
	return event, nil
}

func (r *fakeEventRepo) GetAll(ctx context.Context) ([]*entity.Event, error) { return nil, nil }
func (r *fakeEventRepo) Update(ctx context.Context, event *entity.Event) error {
	return nil
}
func (r *fakeEventRepo) Delete(ctx context.Context, id int64) error { return nil }
func (r *fakeEventRepo) GetByDateRange(ctx context.Context, from, to time.Time) ([]*entity.Event, error) {
	return nil, nil
}
func (r *fakeEventRepo) SearchByTitle(ctx context.Context, title string) ([]*entity.Event, error) {
	return nil, nil
}

type fakeTimeSlotRepo struct {
	slots []*entity.TimeSlot
}

func (r *fakeTimeSlotRepo) Create(ctx context.Context, slot *entity.TimeSlot) error {
	slot.ID = int64(len(r.slots) + 1)
	r.slots = append(r.slots, slot)
	return nil
}

func (r *fakeTimeSlotRepo) GetByID(ctx context.Context, id int64) (*entity.TimeSlot, error) {
	for _, slot := range r.slots {
		if slot.ID == id {
			return slot, nil
		}
	}
	return nil, entity.ErrTimeSlotNotFound
}

func (r *fakeTimeSlotRepo) GetByEventID(ctx context.Context, eventID int64) ([]*entity.TimeSlot, error) {
	var out []*entity.TimeSlot
	for _, slot := range r.slots {
		if slot.EventID == eventID {
			out = append(out, slot)
		}
	}
	return out, nil
}

func (r *fakeTimeSlotRepo) Delete(ctx context.Context, id int64) error { return nil }

type fakeTalentRepo struct {
	mu      sync.Mutex
	talents map[int64]*entity.Talent
	nextID  int64
}

func newFakeTalentRepo() *fakeTalentRepo {
	return &fakeTalentRepo{talents: make(map[int64]*entity.Talent)}
}

func (r *fakeTalentRepo) Create(ctx context.Context, talent *entity.Talent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	talent.ID = r.nextID
	cp := *talent
	r.talents[talent.ID] = &cp
	return nil
}

func (r *fakeTalentRepo) GetByID(ctx context.Context, id int64) (*entity.Talent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	talent, ok := r.talents[id]
	if !ok {
		return nil, entity.ErrTalentNotFound
	}
	cp := *talent
	return &cp, nil
}

func (r *fakeTalentRepo) GetByUserID(ctx context.Context, userID int64) (*entity.Talent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, talent := range r.talents {
		if talent.UserID != nil && *talent.UserID == userID {
			cp := *talent
			return &cp, nil
		}
	}
	return nil, entity.ErrTalentNotFound
}

func (r *fakeTalentRepo) GetByEmail(ctx context.Context, email string) (*entity.Talent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, talent := range r.talents {
		if talent.Email == email {
			cp := *talent
			return &cp, nil
		}
	}
	return nil, entity.ErrTalentNotFound
}

func (r *fakeTalentRepo) Update(ctx context.Context, talent *entity.Talent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.talents[talent.ID]; !ok {
		return entity.ErrTalentNotFound
	}
	cp := *talent
	r.talents[talent.ID] = &cp
	return nil
}

func (r *fakeTalentRepo) GetAll(ctx context.Context) ([]*entity.Talent, error) { return nil, nil }

type fakeParticipationRepo struct {
	mu        sync.Mutex
	parts     []*entity.Participation
	nextID    int64
	reminders []*entity.RDVReminder
	marked    map[int64]bool
}

func (r *fakeParticipationRepo) Create(ctx context.Context, p *entity.Participation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.isRegistered(p.EventID, p.TalentID) {
		return entity.ErrDuplicateRegistration
	}
	r.insert(p)
	return nil
}

func (r *fakeParticipationRepo) CreateWithAppointment(ctx context.Context, p *entity.Participation, grid []scheduling.CandidateSlot, capacity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isRegistered(p.EventID, p.TalentID) {
		return entity.ErrDuplicateRegistration
	}

	var booked []time.Time
	for _, existing := range r.parts {
		if existing.EventID == p.EventID && existing.RDV != nil &&
			existing.TimeSlotID != nil && p.TimeSlotID != nil &&
			*existing.TimeSlotID == *p.TimeSlotID {
			booked = append(booked, *existing.RDV)
		}
	}

	slot, ok := scheduling.FindAvailableSlot(grid, booked, capacity)
	if !ok {
		return entity.ErrSlotsExhausted
	}

	rdv := slot.Start
	p.RDV = &rdv
	r.insert(p)
	return nil
}

func (r *fakeParticipationRepo) isRegistered(eventID, talentID int64) bool {
	for _, existing := range r.parts {
		if existing.EventID == eventID && existing.TalentID == talentID {
			return true
		}
	}
	return false
}

func (r *fakeParticipationRepo) insert(p *entity.Participation) {
	r.nextID++
	p.ID = r.nextID
	p.DateInscription = time.Now()
	cp := *p
	r.parts = append(r.parts, &cp)
}

func (r *fakeParticipationRepo) GetByID(ctx context.Context, id int64) (*entity.Participation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.parts {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, entity.ErrParticipationNotFound
}

func (r *fakeParticipationRepo) GetByEventAndTalent(ctx context.Context, eventID, talentID int64) (*entity.Participation, error) {
	return nil, entity.ErrParticipationNotFound
}

func (r *fakeParticipationRepo) GetByEventID(ctx context.Context, eventID int64) ([]*entity.Participation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Participation
	for _, p := range r.parts {
		if p.EventID == eventID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeParticipationRepo) GetByTalentID(ctx context.Context, talentID int64) ([]*entity.Participation, error) {
	return nil, nil
}
func (r *fakeParticipationRepo) Delete(ctx context.Context, id int64) error { return nil }
func (r *fakeParticipationRepo) SetAttendance(ctx context.Context, id int64, attended bool) error {
	return nil
}
func (r *fakeParticipationRepo) SetReview(ctx context.Context, id int64, note int, comment string) error {
	return nil
}
func (r *fakeParticipationRepo) SetSelected(ctx context.Context, id int64, selected bool) error {
	return nil
}
func (r *fakeParticipationRepo) GetUpcomingRDVs(ctx context.Context, from, to time.Time, urgent bool) ([]*entity.RDVReminder, error) {
	var due []*entity.RDVReminder
	for _, rem := range r.reminders {
		if !rem.RDV.Before(from) && !rem.RDV.After(to) {
			due = append(due, rem)
		}
	}
	return due, nil
}
func (r *fakeParticipationRepo) MarkReminderSent(ctx context.Context, id int64, urgent bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.marked == nil {
		r.marked = make(map[int64]bool)
	}
	r.marked[id] = urgent
	return nil
}
func (r *fakeParticipationRepo) GetStatsByEvent(ctx context.Context, eventID int64) (*entity.EventParticipationStats, error) {
	return &entity.EventParticipationStats{}, nil
}

type fakeQueue struct {
	mu    sync.Mutex
	tasks []*queue.Task
}

func (q *fakeQueue) Publish(ctx context.Context, task *queue.Task) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, task)
	return nil
}

func (q *fakeQueue) Subscribe(ctx context.Context, handler func(*queue.Task) error) error { return nil }
func (q *fakeQueue) Close() error                                                         { return nil }

// Test fixtures

var allocatorCfg = &config.AllocatorConfig{
	DefaultDurationMinutes: 10,
	DefaultRecruiters:      1,
}

func futureEvent(recruiters int, slotsEnabled bool) *entity.Event {
	start := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	return &entity.Event{
		ID:                1,
		Title:             "Campus Recruiting Day",
		StartDate:         start,
		EndDate:           start.Add(8 * time.Hour),
		Location:          "Building A",
		RecruitersNumber:  recruiters,
		IsTimeSlotEnabled: slotsEnabled,
	}
}

func slotForEvent(id, eventID int64, startHour, endHour, durationMinutes int) *entity.TimeSlot {
	return &entity.TimeSlot{
		ID:              id,
		EventID:         eventID,
		StartTime:       entity.NewTimeOfDay(startHour, 0),
		EndTime:         entity.NewTimeOfDay(endHour, 0),
		DurationMinutes: durationMinutes,
	}
}

func registerRequest(email string) *RegisterRequest {
	return &RegisterRequest{
		EventID:   1,
		FirstName: "Amine",
		LastName:  "Benali",
		Email:     email,
	}
}

func newTestRegistrationService(event *entity.Event, slots ...*entity.TimeSlot) (RegistrationService, *fakeParticipationRepo, *fakeQueue) {
	eventRepo := newFakeEventRepo(event)
	timeSlotRepo := &fakeTimeSlotRepo{slots: slots}
	talentRepo := newFakeTalentRepo()
	participationRepo := &fakeParticipationRepo{}
	taskQueue := &fakeQueue{}

	svc := NewRegistrationService(eventRepo, timeSlotRepo, talentRepo, participationRepo, taskQueue, allocatorCfg)
	return svc, participationRepo, taskQueue
}

func TestRegisterAssignsEarliestFreeAppointment(t *testing.T) {
	event := futureEvent(2, true)
	svc, _, _ := newTestRegistrationService(event, slotForEvent(1, 1, 9, 10, 30))
	ctx := context.Background()

	first, err := svc.Register(ctx, registerRequest("first@example.com"))
	require.NoError(t, err)
	require.NotNil(t, first.RDV)

	// The appointment is anchored to the slot window on the event day.
	wantFirst := time.Date(event.StartDate.Year(), event.StartDate.Month(), event.StartDate.Day(), 9, 0, 0, 0, event.StartDate.Location())
	assert.Equal(t, wantFirst, *first.RDV)

	// Second registration shares the timestamp with the second recruiter.
	second, err := svc.Register(ctx, registerRequest("second@example.com"))
	require.NoError(t, err)
	assert.Equal(t, wantFirst, *second.RDV)

	// Third rolls over to the next timestamp.
	third, err := svc.Register(ctx, registerRequest("third@example.com"))
	require.NoError(t, err)
	assert.Equal(t, wantFirst.Add(30*time.Minute), *third.RDV)
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _, _ := newTestRegistrationService(futureEvent(1, true), slotForEvent(1, 1, 9, 10, 10))
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest("talent@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerRequest("talent@example.com"))
	assert.ErrorIs(t, err, entity.ErrDuplicateRegistration)
}

func TestRegisterNoTimeSlotsConfigured(t *testing.T) {
	svc, _, _ := newTestRegistrationService(futureEvent(1, true))

	_, err := svc.Register(context.Background(), registerRequest("talent@example.com"))
	assert.ErrorIs(t, err, entity.ErrNoTimeSlotsConfigured)
}

func TestRegisterSlotsExhausted(t *testing.T) {
	// 09:00-10:00 with 30 minute interviews and one recruiter: two seats.
	svc, _, _ := newTestRegistrationService(futureEvent(1, true), slotForEvent(1, 1, 9, 10, 30))
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest("one@example.com"))
	require.NoError(t, err)
	_, err = svc.Register(ctx, registerRequest("two@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerRequest("three@example.com"))
	assert.ErrorIs(t, err, entity.ErrSlotsExhausted)
}

func TestRegisterArchivedEvent(t *testing.T) {
	event := futureEvent(1, true)
	event.StartDate = time.Now().Add(-48 * time.Hour)
	event.EndDate = time.Now().Add(-24 * time.Hour)

	svc, _, _ := newTestRegistrationService(event, slotForEvent(1, 1, 9, 10, 10))

	_, err := svc.Register(context.Background(), registerRequest("late@example.com"))
	assert.ErrorIs(t, err, entity.ErrEventArchived)
}

func TestRegisterWithoutTimeSlotsEnabled(t *testing.T) {
	svc, repo, taskQueue := newTestRegistrationService(futureEvent(1, false))

	result, err := svc.Register(context.Background(), registerRequest("walkin@example.com"))
	require.NoError(t, err)

	assert.Nil(t, result.RDV)
	assert.Nil(t, result.Participation.RDV)
	assert.Len(t, repo.parts, 1)

	// Confirmation email still goes out.
	require.Len(t, taskQueue.tasks, 1)
	assert.Equal(t, queue.TaskTypeSendConfirmation, taskQueue.tasks[0].Type)
}

func TestRegisterRequestedSlotSelection(t *testing.T) {
	event := futureEvent(1, true)
	morning := slotForEvent(1, 1, 9, 10, 30)
	afternoon := slotForEvent(2, 1, 14, 15, 30)

	svc, _, _ := newTestRegistrationService(event, morning, afternoon)
	ctx := context.Background()

	afternoonID := int64(2)
	req := registerRequest("picky@example.com")
	req.TimeSlotID = &afternoonID

	result, err := svc.Register(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, result.RDV)
	assert.Equal(t, 14, result.RDV.Hour())

	// Unknown slot is rejected.
	unknown := int64(99)
	req2 := registerRequest("lost@example.com")
	req2.TimeSlotID = &unknown

	_, err = svc.Register(ctx, req2)
	assert.ErrorIs(t, err, entity.ErrTimeSlotNotFound)
}

func TestRegisterDefaultsToEarliestSlot(t *testing.T) {
	event := futureEvent(1, true)
	afternoon := slotForEvent(2, 1, 14, 15, 30)
	morning := slotForEvent(1, 1, 9, 10, 30)

	// Repository returns slots ordered by start time.
	svc, _, _ := newTestRegistrationService(event, morning, afternoon)

	result, err := svc.Register(context.Background(), registerRequest("default@example.com"))
	require.NoError(t, err)
	require.NotNil(t, result.RDV)
	assert.Equal(t, 9, result.RDV.Hour())
}

func TestRegisterMergesTalentProfile(t *testing.T) {
	event := futureEvent(2, true)
	eventRepo := newFakeEventRepo(event)
	timeSlotRepo := &fakeTimeSlotRepo{slots: []*entity.TimeSlot{slotForEvent(1, 1, 9, 10, 10)}}
	talentRepo := newFakeTalentRepo()
	participationRepo := &fakeParticipationRepo{}

	existing := &entity.Talent{
		FirstName: "Amine",
		LastName:  "Benali",
		Email:     "amine@example.com",
		Phone:     "0600000000",
		School:    "ENSA",
	}
	require.NoError(t, talentRepo.Create(context.Background(), existing))

	svc := NewRegistrationService(eventRepo, timeSlotRepo, talentRepo, participationRepo, &fakeQueue{}, allocatorCfg)

	req := registerRequest("amine@example.com")
	req.Phone = "0611111111" // non-empty incoming field wins
	req.School = ""          // empty incoming field keeps the stored value
	req.Program = "Software Engineering"

	result, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, existing.ID, result.Talent.ID)
	assert.Equal(t, "0611111111", result.Talent.Phone)
	assert.Equal(t, "ENSA", result.Talent.School)
	assert.Equal(t, "Software Engineering", result.Talent.Program)

	stored, err := talentRepo.GetByID(context.Background(), existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "0611111111", stored.Phone)
	assert.Equal(t, "ENSA", stored.School)
}

// TestConcurrentRegistrations drives more registrations than the grid can
// hold through parallel goroutines. Exactly capacity-many must win, every
// winner must hold a distinct seat, and all losers must see the exhaustion
// error.
func TestConcurrentRegistrations(t *testing.T) {
	const recruiters = 2
	const capacity = 6
	const contenders = 20

	event := futureEvent(recruiters, true)
	// 09:00-12:00 with 60 minute interviews: 3 timestamps x 2 recruiters.
	svc, repo, _ := newTestRegistrationService(event, slotForEvent(1, 1, 9, 12, 60))

	var wg sync.WaitGroup
	errs := make([]error, contenders)

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := registerRequest(fmt.Sprintf("talent%d@example.com", i))
			_, errs[i] = svc.Register(context.Background(), req)
		}(i)
	}
	wg.Wait()

	succeeded, exhausted := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, entity.ErrSlotsExhausted):
			exhausted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, capacity, succeeded)
	assert.Equal(t, contenders-capacity, exhausted)

	// No timestamp may hold more interviews than there are recruiters.
	perTimestamp := make(map[int64]int)
	for _, p := range repo.parts {
		require.NotNil(t, p.RDV)
		perTimestamp[p.RDV.Unix()]++
	}
	for ts, count := range perTimestamp {
		assert.LessOrEqualf(t, count, recruiters, "timestamp %d over capacity", ts)
	}
}
