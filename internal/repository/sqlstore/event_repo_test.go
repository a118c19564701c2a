package sqlstore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"culturalevents/internal/domain"
)

var (
	testTime     = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	eventRowCols = []string{
		"id", "kind", "name", "start_date", "end_date", "duration_days",
		"status", "allow_registration", "details", "created_at", "updated_at",
	}
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(sqlx.NewDb(db, "postgres")), mock
}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		event   *domain.Event
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name: "success",
			event: &domain.Event{
				ID:           "ev-1",
				Kind:         domain.KindFair,
				Name:         "Book Fair",
				StartDate:    domain.NewDate(2025, 3, 10),
				DurationDays: 3,
				Status:       domain.StatusPlanning,
				Fair:         &domain.FairDetails{StandCount: 20, LocationType: domain.LocationOutdoor},
				CreatedAt:    testTime,
				UpdatedAt:    testTime,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO "events" \("id", "kind", "name", "start_date", "end_date", "duration_days", "status", "allow_registration", "details", "created_at", "updated_at"\)`).
					WithArgs("ev-1", "FAIR", "Book Fair", "2025-03-10", "2025-03-12", 3, "PLANNING", false,
						`{"stand_count":20,"location_type":"OUTDOOR"}`, testTime, testTime).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "db error",
			event: &domain.Event{
				ID:           "ev-2",
				Kind:         domain.KindConcert,
				Name:         "Jazz Night",
				StartDate:    domain.NewDate(2025, 3, 10),
				DurationDays: 1,
				Status:       domain.StatusPlanning,
				Concert:      &domain.ConcertDetails{TicketType: domain.TicketFree},
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO "events"`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockStore(t)
			tt.mock(mock)

			err := NewEventRepository(store).Create(ctx, tt.event)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_Create_AssignsID(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(`INSERT INTO "events"`).WillReturnResult(sqlmock.NewResult(0, 1))

	e := &domain.Event{
		Kind:         domain.KindScreening,
		Name:         "Cinema",
		StartDate:    domain.NewDate(2025, 3, 10),
		DurationDays: 1,
		Status:       domain.StatusPlanning,
		Screening:    &domain.ScreeningDetails{ProjectionOrder: 1, Title: "Nine Queens"},
	}
	require.NoError(t, NewEventRepository(store).Create(context.Background(), e))
	assert.NotEmpty(t, e.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		id      string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Event
		wantErr string
	}{
		{
			name: "success",
			id:   "ev-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT "id", "kind", "name", .* FROM "events" WHERE \("id" = \$1\)`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows(eventRowCols).
						AddRow("ev-1", "EXHIBITION", "Colors", "2025-03-10", "2025-03-16", 7, "CONFIRMED", true,
							`{"art_type":"PAINTING"}`, testTime, testTime))
			},
			want: &domain.Event{
				ID:                "ev-1",
				Kind:              domain.KindExhibition,
				Name:              "Colors",
				StartDate:         domain.NewDate(2025, 3, 10),
				DurationDays:      7,
				Status:            domain.StatusConfirmed,
				AllowRegistration: true,
				Exhibition:        &domain.ExhibitionDetails{ArtType: domain.ArtPainting},
				CreatedAt:         testTime,
				UpdatedAt:         testTime,
			},
		},
		{
			name: "not found",
			id:   "ev-missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM "events"`).WithArgs("ev-missing").WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound.Error(),
		},
		{
			name: "corrupt details",
			id:   "ev-2",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM "events"`).
					WithArgs("ev-2").
					WillReturnRows(sqlmock.NewRows(eventRowCols).
						AddRow("ev-2", "WORKSHOP", "Clay", "2025-03-10", "2025-03-10", 1, "PLANNING", false,
							`{"capacity":`, testTime, testTime))
			},
			wantErr: "decode details",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockStore(t)
			tt.mock(mock)

			got, err := NewEventRepository(store).GetByID(ctx, tt.id)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				require.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	event := &domain.Event{ID: "ev-1", Status: domain.StatusConfirmed, AllowRegistration: true, UpdatedAt: testTime}

	tests := []struct {
		name    string
		result  driverResult
		wantErr error
	}{
		{name: "applied", result: driverResult{rows: 1}},
		{name: "stale", result: driverResult{rows: 0}, wantErr: domain.ErrStaleEvent},
		{name: "db error", result: driverResult{err: sql.ErrConnDone}, wantErr: sql.ErrConnDone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockStore(t)
			exp := mock.ExpectExec(`UPDATE "events" SET .* WHERE \(\("id" = \$4\) AND \("status" = \$5\)\)`).
				WithArgs(true, "CONFIRMED", testTime, "ev-1", "PLANNING")
			if tt.result.err != nil {
				exp.WillReturnError(tt.result.err)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tt.result.rows))
			}

			err := NewEventRepository(store).UpdateStatus(ctx, event, domain.StatusPlanning)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

type driverResult struct {
	rows int64
	err  error
}

func TestEventRepository_Update(t *testing.T) {
	ctx := context.Background()
	event := &domain.Event{
		ID:           "ev-1",
		Kind:         domain.KindWorkshop,
		Name:         "Clay",
		StartDate:    domain.NewDate(2025, 3, 10),
		DurationDays: 2,
		Status:       domain.StatusPlanning,
		Workshop:     &domain.WorkshopDetails{Capacity: 12, Modality: domain.ModalityInPerson},
		UpdatedAt:    testTime,
	}

	t.Run("success", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectExec(`UPDATE "events" SET .* WHERE \("id" = \$\d+\)`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		require.NoError(t, NewEventRepository(store).Update(ctx, event))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectExec(`UPDATE "events"`).WillReturnResult(sqlmock.NewResult(0, 0))
		require.ErrorIs(t, NewEventRepository(store).Update(ctx, event), domain.ErrNotFound)
	})
}

func TestEventRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectExec(`DELETE FROM "events" WHERE \("id" = \$1\)`).
			WithArgs("ev-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		require.NoError(t, NewEventRepository(store).Delete(ctx, "ev-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectExec(`DELETE FROM "events"`).
			WithArgs("ev-missing").
			WillReturnResult(sqlmock.NewResult(0, 0))
		require.ErrorIs(t, NewEventRepository(store).Delete(ctx, "ev-missing"), domain.ErrNotFound)
	})
}

func TestEventRepository_Finders(t *testing.T) {
	ctx := context.Background()
	from := domain.NewDate(2025, 3, 1)
	to := domain.NewDate(2025, 3, 31)

	tests := []struct {
		name  string
		query string
		args  []driver.Value
		call  func(r domain.EventRepository) ([]*domain.Event, error)
	}{
		{
			name:  "all",
			query: `SELECT .* FROM "events" ORDER BY "start_date" ASC, "name" ASC`,
			call:  func(r domain.EventRepository) ([]*domain.Event, error) { return r.FindAll(ctx) },
		},
		{
			name:  "by name",
			query: `FROM "events" WHERE \("name" ILIKE \$1 ESCAPE '\\'\) ORDER BY`,
			args:  []driver.Value{"%jazz%"},
			call:  func(r domain.EventRepository) ([]*domain.Event, error) { return r.FindByName(ctx, " jazz ") },
		},
		{
			name:  "by name with wildcards",
			query: `FROM "events" WHERE \("name" ILIKE \$1 ESCAPE '\\'\) ORDER BY`,
			args:  []driver.Value{`%100\% y\_C%`},
			call:  func(r domain.EventRepository) ([]*domain.Event, error) { return r.FindByName(ctx, "100% y_C") },
		},
		{
			name:  "by status",
			query: `FROM "events" WHERE \("status" = \$1\)`,
			args:  []driver.Value{"CONFIRMED"},
			call: func(r domain.EventRepository) ([]*domain.Event, error) {
				return r.FindByStatus(ctx, domain.StatusConfirmed)
			},
		},
		{
			name:  "by date range",
			query: `FROM "events" WHERE \(\("start_date" <= \$1\) AND \("end_date" >= \$2\)\)`,
			args:  []driver.Value{"2025-03-31", "2025-03-01"},
			call: func(r domain.EventRepository) ([]*domain.Event, error) {
				return r.FindByDateRange(ctx, from, to)
			},
		},
		{
			name:  "by participant",
			query: `FROM "events" WHERE \("id" IN \(SELECT "event_id" FROM "participations" WHERE \("person_id" = \$1\)\)\)`,
			args:  []driver.Value{"p-1"},
			call: func(r domain.EventRepository) ([]*domain.Event, error) {
				return r.FindByParticipant(ctx, "p-1")
			},
		},
		{
			name:  "non terminal",
			query: `FROM "events" WHERE \("status" NOT IN \(\$1, \$2\)\)`,
			args:  []driver.Value{"FINISHED", "CANCELLED"},
			call:  func(r domain.EventRepository) ([]*domain.Event, error) { return r.FindNonTerminal(ctx) },
		},
		{
			name:  "filter",
			query: `FROM "events" WHERE \(\("status" = \$1\) AND \("end_date" >= \$2\) AND \("start_date" <= \$3\)\)`,
			args:  []driver.Value{"PLANNING", "2025-03-01", "2025-03-31"},
			call: func(r domain.EventRepository) ([]*domain.Event, error) {
				return r.Find(ctx, domain.EventFilter{Status: domain.StatusPlanning, From: from, To: to})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockStore(t)
			mock.ExpectQuery(tt.query).
				WithArgs(tt.args...).
				WillReturnRows(sqlmock.NewRows(eventRowCols).
					AddRow("ev-1", "CONCERT", "Jazz Night", "2025-03-10", "2025-03-10", 1, "CONFIRMED", true,
						`{"ticket_type":"PAID"}`, testTime, testTime))

			got, err := tt.call(NewEventRepository(store))
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, domain.KindConcert, got[0].Kind)
			require.NotNil(t, got[0].Concert)
			assert.Equal(t, domain.TicketPaid, got[0].Concert.TicketType)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDetailsRoundTrip(t *testing.T) {
	events := []*domain.Event{
		{Kind: domain.KindScreening, Screening: &domain.ScreeningDetails{ProjectionOrder: 2, Title: "Zama"}},
		{Kind: domain.KindWorkshop, Workshop: &domain.WorkshopDetails{Capacity: 10, Modality: domain.ModalityHybrid}},
		{Kind: domain.KindConcert, Concert: &domain.ConcertDetails{TicketType: domain.TicketPaid}},
		{Kind: domain.KindExhibition, Exhibition: &domain.ExhibitionDetails{ArtType: domain.ArtDigital}},
		{Kind: domain.KindFair, Fair: &domain.FairDetails{StandCount: 40, LocationType: domain.LocationCovered}},
	}
	for _, e := range events {
		t.Run(string(e.Kind), func(t *testing.T) {
			raw, err := encodeDetails(e)
			require.NoError(t, err)

			got := &domain.Event{Kind: e.Kind}
			require.NoError(t, decodeDetails(got, raw))
			assert.Equal(t, e, got)
		})
	}

	_, err := encodeDetails(&domain.Event{Kind: "PARADE"})
	require.Error(t, err)
}
