package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"culturalevents/internal/clock"
	"culturalevents/internal/domain"
	"culturalevents/internal/observability"
)

var (
	testLogger  = slog.New(slog.NewTextHandler(io.Discard, nil))
	testTimeout = 5 * time.Second
	testNow     = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	testToday   = domain.DateOf(testNow)
	testClock   = clock.NewFixed(testNow)
	errDB       = errors.New("db down")
)

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID      map[string]*domain.Event
	nextID    int
	err       error // returned by every call when set
	statusErr map[string]error
	parts     *fakeParticipationRepo
	lastCall  string
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:      make(map[string]*domain.Event),
		nextID:    1,
		statusErr: make(map[string]error),
	}
}

func (f *fakeEventRepo) put(e *domain.Event) *domain.Event {
	if e.ID == "" {
		e.ID = fmt.Sprintf("ev-%d", f.nextID)
		f.nextID++
	}
	cp := *e
	f.byID[e.ID] = &cp
	return e
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	f.put(e)
	return nil
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	stored, ok := f.byID[e.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *e
	cp.Status, cp.AllowRegistration = stored.Status, stored.AllowRegistration
	f.byID[e.ID] = &cp
	return nil
}

func (f *fakeEventRepo) UpdateStatus(ctx context.Context, e *domain.Event, from domain.EventStatus) error {
	if err := f.statusErr[e.ID]; err != nil {
		return err
	}
	stored, ok := f.byID[e.ID]
	if !ok || stored.Status != from {
		return domain.ErrStaleEvent
	}
	stored.Status = e.Status
	stored.AllowRegistration = e.AllowRegistration
	stored.UpdatedAt = e.UpdatedAt
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeEventRepo) Find(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	f.lastCall = "Find"
	return f.match(func(e *domain.Event) bool {
		if filter.Name != "" && !strings.Contains(strings.ToLower(e.Name), strings.ToLower(filter.Name)) {
			return false
		}
		if filter.Status != "" && e.Status != filter.Status {
			return false
		}
		if !filter.From.IsZero() && e.EndDate().Before(filter.From) {
			return false
		}
		if !filter.To.IsZero() && e.StartDate.After(filter.To) {
			return false
		}
		if filter.ParticipantID != "" && !f.participates(e.ID, filter.ParticipantID) {
			return false
		}
		return true
	})
}

func (f *fakeEventRepo) FindAll(ctx context.Context) ([]*domain.Event, error) {
	f.lastCall = "FindAll"
	return f.match(func(*domain.Event) bool { return true })
}

func (f *fakeEventRepo) FindByName(ctx context.Context, text string) ([]*domain.Event, error) {
	f.lastCall = "FindByName"
	return f.match(func(e *domain.Event) bool {
		return strings.Contains(strings.ToLower(e.Name), strings.ToLower(text))
	})
}

func (f *fakeEventRepo) FindByStatus(ctx context.Context, status domain.EventStatus) ([]*domain.Event, error) {
	f.lastCall = "FindByStatus"
	return f.match(func(e *domain.Event) bool { return e.Status == status })
}

func (f *fakeEventRepo) FindByDateRange(ctx context.Context, from, to domain.Date) ([]*domain.Event, error) {
	f.lastCall = "FindByDateRange"
	return f.match(func(e *domain.Event) bool { return e.OverlapsRange(from, to) })
}

func (f *fakeEventRepo) FindByParticipant(ctx context.Context, personID string) ([]*domain.Event, error) {
	f.lastCall = "FindByParticipant"
	return f.match(func(e *domain.Event) bool { return f.participates(e.ID, personID) })
}

func (f *fakeEventRepo) FindNonTerminal(ctx context.Context) ([]*domain.Event, error) {
	return f.match(func(e *domain.Event) bool { return !e.Status.IsTerminal() })
}

func (f *fakeEventRepo) participates(eventID, personID string) bool {
	if f.parts == nil {
		return false
	}
	for _, p := range f.parts.items {
		if p.EventID == eventID && p.PersonID == personID {
			return true
		}
	}
	return false
}

func (f *fakeEventRepo) match(keep func(*domain.Event) bool) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Event
	for _, e := range f.byID {
		if keep(e) {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// fakePersonRepo is an in-memory PersonRepository for tests.
type fakePersonRepo struct {
	byID   map[string]*domain.Person
	nextID int
	err    error
}

func newFakePersonRepo() *fakePersonRepo {
	return &fakePersonRepo{byID: make(map[string]*domain.Person), nextID: 1}
}

func (f *fakePersonRepo) put(p *domain.Person) *domain.Person {
	if p.ID == "" {
		p.ID = fmt.Sprintf("p-%d", f.nextID)
		f.nextID++
	}
	cp := *p
	f.byID[p.ID] = &cp
	return p
}

func (f *fakePersonRepo) Create(ctx context.Context, p *domain.Person) error {
	if f.err != nil {
		return f.err
	}
	f.put(p)
	return nil
}

func (f *fakePersonRepo) Update(ctx context.Context, p *domain.Person) error {
	if _, ok := f.byID[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakePersonRepo) GetByID(ctx context.Context, id string) (*domain.Person, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePersonRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakePersonRepo) List(ctx context.Context) ([]*domain.Person, error) {
	return f.Search(ctx, "")
}

func (f *fakePersonRepo) Search(ctx context.Context, text string) ([]*domain.Person, error) {
	if f.err != nil {
		return nil, f.err
	}
	text = strings.ToLower(text)
	var out []*domain.Person
	for _, p := range f.byID {
		if strings.Contains(strings.ToLower(p.FirstName), text) || strings.Contains(strings.ToLower(p.LastName), text) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastName+out[i].FirstName < out[j].LastName+out[j].FirstName })
	return out, nil
}

func (f *fakePersonRepo) ExistsNationalID(ctx context.Context, nationalID, excludeID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, p := range f.byID {
		if p.NationalID == nationalID && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// fakeParticipationRepo is an in-memory ParticipationRepository for tests.
type fakeParticipationRepo struct {
	items  []*domain.Participation
	nextID int
	err    error
}

func newFakeParticipationRepo() *fakeParticipationRepo {
	return &fakeParticipationRepo{nextID: 1}
}

func (f *fakeParticipationRepo) add(eventID, personID string, role domain.Role) {
	f.items = append(f.items, &domain.Participation{
		ID:           fmt.Sprintf("pa-%d", f.nextID),
		EventID:      eventID,
		PersonID:     personID,
		Role:         role,
		RegisteredAt: testNow,
	})
	f.nextID++
}

func (f *fakeParticipationRepo) Create(ctx context.Context, p *domain.Participation) error {
	if f.err != nil {
		return f.err
	}
	for _, q := range f.items {
		if q.EventID == p.EventID && q.PersonID == p.PersonID && q.Role == p.Role {
			return domain.ErrDuplicateParticipation
		}
	}
	p.ID = fmt.Sprintf("pa-%d", f.nextID)
	f.nextID++
	cp := *p
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakeParticipationRepo) Delete(ctx context.Context, eventID, personID string, role *domain.Role) (int64, error) {
	return f.remove(func(p *domain.Participation) bool {
		return p.EventID == eventID && p.PersonID == personID && (role == nil || p.Role == *role)
	}), nil
}

func (f *fakeParticipationRepo) DeleteByEvent(ctx context.Context, eventID string) error {
	if f.err != nil {
		return f.err
	}
	f.remove(func(p *domain.Participation) bool { return p.EventID == eventID })
	return nil
}

func (f *fakeParticipationRepo) DeleteByPerson(ctx context.Context, personID string) error {
	if f.err != nil {
		return f.err
	}
	f.remove(func(p *domain.Participation) bool { return p.PersonID == personID })
	return nil
}

func (f *fakeParticipationRepo) remove(match func(*domain.Participation) bool) int64 {
	kept := f.items[:0]
	var n int64
	for _, p := range f.items {
		if match(p) {
			n++
			continue
		}
		kept = append(kept, p)
	}
	f.items = kept
	return n
}

func (f *fakeParticipationRepo) ListByEvent(ctx context.Context, eventID string) ([]*domain.Participation, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Participation
	for _, p := range f.items {
		if p.EventID == eventID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeParticipationRepo) ListByEventAndRole(ctx context.Context, eventID string, role domain.Role) ([]*domain.Participation, error) {
	ps, err := f.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	var out []*domain.Participation
	for _, p := range ps {
		if p.Role == role {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeParticipationRepo) Exists(ctx context.Context, eventID, personID string, role domain.Role) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, p := range f.items {
		if p.EventID == eventID && p.PersonID == personID && p.Role == role {
			return true, nil
		}
	}
	return false, nil
}

// fakeTx runs fn directly and counts calls.
type fakeTx struct {
	calls int
}

func (f *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

// fakeEmailService records status change emails.
type fakeEmailService struct {
	sent []*domain.StatusChangeEmailData
	err  error
}

func (f *fakeEmailService) SendStatusChange(ctx context.Context, data *domain.StatusChangeEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

// recordingMetrics captures what services report.
type recordingMetrics struct {
	observability.NoopMetrics
	statusChanges []string
	sweeps        [][2]int
	ledger        []string
}

func (m *recordingMetrics) RecordStatusChange(_ context.Context, from, to domain.EventStatus, automatic bool) {
	m.statusChanges = append(m.statusChanges, fmt.Sprintf("%s->%s auto=%t", from, to, automatic))
}

func (m *recordingMetrics) RecordSweep(_ context.Context, changed, failed int, _ time.Duration) {
	m.sweeps = append(m.sweeps, [2]int{changed, failed})
}

func (m *recordingMetrics) RecordParticipation(_ context.Context, op string, role domain.Role, err error) {
	m.ledger = append(m.ledger, fmt.Sprintf("%s %s ok=%t", op, role, err == nil))
}

// fixture wires every fake repository together.
type fixture struct {
	events  *fakeEventRepo
	persons *fakePersonRepo
	parts   *fakeParticipationRepo
	tx      *fakeTx
	emails  *fakeEmailService
	metrics *recordingMetrics
}

func newFixture() *fixture {
	f := &fixture{
		events:  newFakeEventRepo(),
		persons: newFakePersonRepo(),
		parts:   newFakeParticipationRepo(),
		tx:      &fakeTx{},
		emails:  &fakeEmailService{},
		metrics: &recordingMetrics{},
	}
	f.events.parts = f.parts
	return f
}

func (f *fixture) eventService() domain.EventService {
	return NewEventService(f.events, f.parts, f.persons, f.tx, testClock, domain.EventRules{MaxDurationDays: 31}, testTimeout)
}

func (f *fixture) lifecycleService() domain.LifecycleService {
	return NewLifecycleService(f.events, f.parts, f.persons, f.tx, f.emails, testClock, f.metrics, testLogger, testTimeout)
}

func (f *fixture) participationService() domain.ParticipationService {
	return NewParticipationService(f.events, f.persons, f.parts, f.tx, testClock, f.metrics, testTimeout)
}

func (f *fixture) personService() domain.PersonService {
	return NewPersonService(f.persons, f.parts, f.events, f.tx, testClock, testTimeout)
}

func (f *fixture) schedulerService() domain.SchedulerService {
	return NewSchedulerService(f.events, testClock, f.metrics, testLogger, testTimeout)
}

func (f *fixture) person(first, last, nationalID string) *domain.Person {
	return f.persons.put(&domain.Person{
		FirstName:  first,
		LastName:   last,
		NationalID: nationalID,
		Email:      strings.ToLower(first) + "@mail.com",
		CreatedAt:  testNow,
		UpdatedAt:  testNow,
	})
}

// event stores an event of kind with valid details starting at start.
func (f *fixture) event(kind domain.EventKind, status domain.EventStatus, start domain.Date, days int) *domain.Event {
	e := domain.NewEvent(kind, string(kind)+" event", start, days, testNow, testNow)
	switch kind {
	case domain.KindScreening:
		e.Screening = &domain.ScreeningDetails{ProjectionOrder: 1, Title: "Nine Queens"}
	case domain.KindWorkshop:
		e.Workshop = &domain.WorkshopDetails{Capacity: 12, Modality: domain.ModalityInPerson}
	case domain.KindConcert:
		e.Concert = &domain.ConcertDetails{TicketType: domain.TicketFree}
	case domain.KindExhibition:
		e.Exhibition = &domain.ExhibitionDetails{ArtType: domain.ArtPainting}
	case domain.KindFair:
		e.Fair = &domain.FairDetails{StandCount: 20, LocationType: domain.LocationOutdoor}
	}
	e.ForceStatus(status)
	return f.events.put(e)
}

func (f *fixture) stored(id string) *domain.Event {
	return f.events.byID[id]
}
