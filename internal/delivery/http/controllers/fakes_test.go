package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"culturalevents/internal/delivery/http/helpers"
	"culturalevents/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var testNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	err             error
	event           *domain.Event
	participants    []*domain.Participant
	events          []*domain.Event
	lastCreateEvent *domain.Event
	lastID          string
	lastUpdate      domain.EventUpdate
	lastFilter      domain.EventFilter
	lastDay         domain.Date
	lastYear        int
	lastMonth       time.Month
}

func (f *fakeEventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	f.lastCreateEvent = event
	if f.err != nil {
		return f.err
	}
	event.ID = "ev-created"
	return nil
}

func (f *fakeEventService) GetEvent(ctx context.Context, id string) (*domain.Event, []*domain.Participant, error) {
	f.lastID = id
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.event, f.participants, nil
}

func (f *fakeEventService) UpdateEvent(ctx context.Context, id string, update domain.EventUpdate) (*domain.Event, error) {
	f.lastID, f.lastUpdate = id, update
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeEventService) DeleteEvent(ctx context.Context, id string) error {
	f.lastID = id
	return f.err
}

func (f *fakeEventService) ListEvents(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

func (f *fakeEventService) EventsOnDay(ctx context.Context, day domain.Date) ([]*domain.Event, error) {
	f.lastDay = day
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

func (f *fakeEventService) EventsInMonth(ctx context.Context, year int, month time.Month) ([]*domain.Event, error) {
	f.lastYear, f.lastMonth = year, month
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

// fakeLifecycleService implements domain.LifecycleService for handler tests.
type fakeLifecycleService struct {
	err        error
	event      *domain.Event
	issues     []*domain.ValidationError
	lastID     string
	lastTarget domain.EventStatus
}

func (f *fakeLifecycleService) ChangeStatus(ctx context.Context, eventID string, target domain.EventStatus) (*domain.Event, error) {
	f.lastID, f.lastTarget = eventID, target
	if f.err != nil {
		return nil, f.err
	}
	e := *f.event
	e.Status = target
	return &e, nil
}

func (f *fakeLifecycleService) ValidateForConfirmation(ctx context.Context, eventID string) error {
	if f.err != nil {
		return f.err
	}
	if len(f.issues) > 0 {
		return f.issues[0]
	}
	return nil
}

func (f *fakeLifecycleService) ConfirmationIssues(ctx context.Context, eventID string) ([]*domain.ValidationError, error) {
	f.lastID = eventID
	if f.err != nil {
		return nil, f.err
	}
	return f.issues, nil
}

// fakeParticipationService implements domain.ParticipationService for handler tests.
type fakeParticipationService struct {
	err          error
	participants []*domain.Participant
	lastEventID  string
	lastPersonID string
	lastRole     domain.Role
	lastRemove   *domain.Role
	removeCalled bool
}

func (f *fakeParticipationService) AddParticipation(ctx context.Context, eventID, personID string, role domain.Role) (*domain.Participation, error) {
	f.lastEventID, f.lastPersonID, f.lastRole = eventID, personID, role
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Participation{ID: "pa-1", EventID: eventID, PersonID: personID, Role: role, RegisteredAt: testNow}, nil
}

func (f *fakeParticipationService) RemoveParticipation(ctx context.Context, eventID, personID string, role *domain.Role) error {
	f.lastEventID, f.lastPersonID, f.lastRemove, f.removeCalled = eventID, personID, role, true
	return f.err
}

func (f *fakeParticipationService) RolesOf(ctx context.Context, eventID string) (domain.RoleCounts, error) {
	if f.err != nil {
		return nil, f.err
	}
	ps := make([]*domain.Participation, 0, len(f.participants))
	for _, p := range f.participants {
		ps = append(ps, &p.Participation)
	}
	return domain.CountRoles(ps), nil
}

func (f *fakeParticipationService) HasRole(ctx context.Context, eventID, personID string, role domain.Role) (bool, error) {
	return false, f.err
}

func (f *fakeParticipationService) ParticipantsOf(ctx context.Context, eventID string) ([]*domain.Participant, error) {
	f.lastEventID = eventID
	if f.err != nil {
		return nil, f.err
	}
	return f.participants, nil
}

// fakePersonService implements domain.PersonService for handler tests.
type fakePersonService struct {
	err        error
	person     *domain.Person
	persons    []*domain.Person
	events     []*domain.Event
	lastPerson *domain.Person
	lastID     string
	lastQuery  string
}

func (f *fakePersonService) CreatePerson(ctx context.Context, p *domain.Person) error {
	f.lastPerson = p
	if f.err != nil {
		return f.err
	}
	p.ID = "p-created"
	return nil
}

func (f *fakePersonService) UpdatePerson(ctx context.Context, p *domain.Person) error {
	f.lastPerson = p
	return f.err
}

func (f *fakePersonService) GetPerson(ctx context.Context, id string) (*domain.Person, error) {
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	return f.person, nil
}

func (f *fakePersonService) DeletePerson(ctx context.Context, id string) error {
	f.lastID = id
	return f.err
}

func (f *fakePersonService) SearchPersons(ctx context.Context, text string) ([]*domain.Person, error) {
	f.lastQuery = text
	if f.err != nil {
		return nil, f.err
	}
	return f.persons, nil
}

func (f *fakePersonService) EventsOf(ctx context.Context, personID string) ([]*domain.Event, error) {
	f.lastID = personID
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

// fakeSchedulerService implements domain.SchedulerService for handler tests.
type fakeSchedulerService struct {
	err     error
	changed []*domain.Event
	calls   int
}

func (f *fakeSchedulerService) RunAutoTransitionSweep(ctx context.Context) ([]*domain.Event, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.changed, nil
}

func sampleEvent(id string) *domain.Event {
	e := domain.NewEvent(domain.KindConcert, "Jazz Night", domain.NewDate(2025, 3, 20), 1, testNow, testNow)
	e.ID = id
	e.Concert = &domain.ConcertDetails{TicketType: domain.TicketPaid}
	return e
}

// serve routes req through a mux with the given pattern so path values are populated.
func serve(pattern string, h http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, h)
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

// decodeEnvelope decodes the API envelope and, when data is non-nil, its data into data.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, data any) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
	if data != nil && envelope.Data != nil {
		raw, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, data))
	}
	return envelope
}
