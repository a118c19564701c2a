package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"culturalevents/internal/domain"
)

const eventsTable = "events"

var json = jsoniter.ConfigFastest

var eventColumns = []any{
	"id", "kind", "name", "start_date", "end_date", "duration_days",
	"status", "allow_registration", "details", "created_at", "updated_at",
}

// eventRow is the storage shape of an event. Kind-specific fields live in details as JSON.
// Status columns are written only through UpdateStatus.
type eventRow struct {
	ID                string      `db:"id" goqu:"skipupdate"`
	Kind              string      `db:"kind" goqu:"skipupdate"`
	Name              string      `db:"name"`
	StartDate         domain.Date `db:"start_date"`
	EndDate           domain.Date `db:"end_date"`
	DurationDays      int         `db:"duration_days"`
	Status            string      `db:"status" goqu:"skipupdate"`
	AllowRegistration bool        `db:"allow_registration" goqu:"skipupdate"`
	Details           string      `db:"details"`
	CreatedAt         time.Time   `db:"created_at" goqu:"skipupdate"`
	UpdatedAt         time.Time   `db:"updated_at"`
}

type eventRepository struct {
	store *Store
}

func NewEventRepository(store *Store) domain.EventRepository {
	return &eventRepository{store: store}
}

func toEventRow(e *domain.Event) (*eventRow, error) {
	details, err := encodeDetails(e)
	if err != nil {
		return nil, err
	}
	return &eventRow{
		ID:                e.ID,
		Kind:              string(e.Kind),
		Name:              e.Name,
		StartDate:         e.StartDate,
		EndDate:           e.EndDate(),
		DurationDays:      e.DurationDays,
		Status:            string(e.Status),
		AllowRegistration: e.AllowRegistration,
		Details:           details,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}, nil
}

func (r *eventRow) toEvent() (*domain.Event, error) {
	e := &domain.Event{
		ID:                r.ID,
		Kind:              domain.EventKind(r.Kind),
		Name:              r.Name,
		StartDate:         r.StartDate,
		DurationDays:      r.DurationDays,
		Status:            domain.EventStatus(r.Status),
		AllowRegistration: r.AllowRegistration,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
	if err := decodeDetails(e, r.Details); err != nil {
		return nil, fmt.Errorf("event %s: %w", r.ID, err)
	}
	return e, nil
}

func encodeDetails(e *domain.Event) (string, error) {
	var v any
	switch e.Kind {
	case domain.KindScreening:
		v = e.Screening
	case domain.KindWorkshop:
		v = e.Workshop
	case domain.KindConcert:
		v = e.Concert
	case domain.KindExhibition:
		v = e.Exhibition
	case domain.KindFair:
		v = e.Fair
	default:
		return "", fmt.Errorf("encode details: unknown event kind %q", e.Kind)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode details: %w", err)
	}
	return string(b), nil
}

func decodeDetails(e *domain.Event, raw string) error {
	if raw == "" || raw == "null" {
		return nil
	}
	var target any
	switch e.Kind {
	case domain.KindScreening:
		e.Screening = &domain.ScreeningDetails{}
		target = e.Screening
	case domain.KindWorkshop:
		e.Workshop = &domain.WorkshopDetails{}
		target = e.Workshop
	case domain.KindConcert:
		e.Concert = &domain.ConcertDetails{}
		target = e.Concert
	case domain.KindExhibition:
		e.Exhibition = &domain.ExhibitionDetails{}
		target = e.Exhibition
	case domain.KindFair:
		e.Fair = &domain.FairDetails{}
		target = e.Fair
	default:
		return fmt.Errorf("decode details: unknown event kind %q", e.Kind)
	}
	if err := json.UnmarshalFromString(raw, target); err != nil {
		return fmt.Errorf("decode details: %w", err)
	}
	return nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	row, err := toEventRow(e)
	if err != nil {
		return err
	}
	query, args, err := r.store.dialect.Insert(eventsTable).Prepared(true).Rows(row).ToSQL()
	if err != nil {
		return fmt.Errorf("build insert event: %w", err)
	}
	if _, err := r.store.ext(ctx).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	row, err := toEventRow(e)
	if err != nil {
		return err
	}
	query, args, err := r.store.dialect.Update(eventsTable).Prepared(true).
		Set(row).
		Where(goqu.Ex{"id": e.ID}).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update event: %w", err)
	}
	return r.execAffectingOne(ctx, query, args, domain.ErrNotFound)
}

func (r *eventRepository) UpdateStatus(ctx context.Context, e *domain.Event, from domain.EventStatus) error {
	query, args, err := r.store.dialect.Update(eventsTable).Prepared(true).
		Set(goqu.Record{
			"status":             string(e.Status),
			"allow_registration": e.AllowRegistration,
			"updated_at":         e.UpdatedAt,
		}).
		Where(goqu.Ex{"id": e.ID, "status": string(from)}).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update status: %w", err)
	}
	return r.execAffectingOne(ctx, query, args, domain.ErrStaleEvent)
}

func (r *eventRepository) execAffectingOne(ctx context.Context, query string, args []any, none error) error {
	res, err := r.store.ext(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return none
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query, args, err := r.selectEvents().Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get event: %w", err)
	}
	var row eventRow
	if err := sqlx.GetContext(ctx, r.store.ext(ctx), &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return row.toEvent()
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query, args, err := r.store.dialect.Delete(eventsTable).Prepared(true).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete event: %w", err)
	}
	res, err := r.store.ext(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Find(ctx context.Context, f domain.EventFilter) ([]*domain.Event, error) {
	var where []exp.Expression
	if f.Name != "" {
		where = append(where, r.store.contains("name", strings.TrimSpace(f.Name)))
	}
	if f.Status != "" {
		where = append(where, goqu.Ex{"status": string(f.Status)})
	}
	if !f.From.IsZero() {
		where = append(where, goqu.C("end_date").Gte(f.From))
	}
	if !f.To.IsZero() {
		where = append(where, goqu.C("start_date").Lte(f.To))
	}
	if f.ParticipantID != "" {
		where = append(where, r.participatedBy(f.ParticipantID))
	}
	return r.list(ctx, where...)
}

func (r *eventRepository) FindAll(ctx context.Context) ([]*domain.Event, error) {
	return r.list(ctx)
}

func (r *eventRepository) FindByName(ctx context.Context, text string) ([]*domain.Event, error) {
	return r.list(ctx, r.store.contains("name", strings.TrimSpace(text)))
}

func (r *eventRepository) FindByStatus(ctx context.Context, status domain.EventStatus) ([]*domain.Event, error) {
	return r.list(ctx, goqu.Ex{"status": string(status)})
}

// FindByDateRange returns events whose window intersects [from, to], both ends inclusive.
func (r *eventRepository) FindByDateRange(ctx context.Context, from, to domain.Date) ([]*domain.Event, error) {
	return r.list(ctx, goqu.C("start_date").Lte(to), goqu.C("end_date").Gte(from))
}

func (r *eventRepository) FindByParticipant(ctx context.Context, personID string) ([]*domain.Event, error) {
	return r.list(ctx, r.participatedBy(personID))
}

func (r *eventRepository) FindNonTerminal(ctx context.Context) ([]*domain.Event, error) {
	return r.list(ctx, goqu.C("status").NotIn(string(domain.StatusFinished), string(domain.StatusCancelled)))
}

func (r *eventRepository) selectEvents() *goqu.SelectDataset {
	return r.store.dialect.From(eventsTable).Prepared(true).Select(eventColumns...)
}

func (r *eventRepository) participatedBy(personID string) exp.Expression {
	sub := r.store.dialect.From(participationsTable).
		Select("event_id").
		Where(goqu.Ex{"person_id": personID})
	return goqu.C("id").In(sub)
}

// contains matches rows whose col holds text as a substring, ignoring case.
// Wildcards in text match literally.
func (s *Store) contains(col, text string) exp.Expression {
	return goqu.L("(? "+s.likeOp+" ? ESCAPE '\\')", goqu.C(col), "%"+escapeLike(text)+"%")
}

// escapeLike escapes the LIKE wildcards and the escape character itself.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *eventRepository) list(ctx context.Context, where ...exp.Expression) ([]*domain.Event, error) {
	ds := r.selectEvents()
	if len(where) > 0 {
		ds = ds.Where(where...)
	}
	query, args, err := ds.Order(goqu.C("start_date").Asc(), goqu.C("name").Asc()).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list events: %w", err)
	}
	var rows []eventRow
	if err := sqlx.SelectContext(ctx, r.store.ext(ctx), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	events := make([]*domain.Event, 0, len(rows))
	for i := range rows {
		e, err := rows[i].toEvent()
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}
