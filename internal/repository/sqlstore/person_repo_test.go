package sqlstore

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"culturalevents/internal/domain"
)

var personRowCols = []string{"id", "first_name", "last_name", "national_id", "phone", "email", "created_at", "updated_at"}

func TestPersonRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO "persons" \("id", "first_name", "last_name", "national_id", "phone", "email", "created_at", "updated_at"\)`).
					WithArgs("p-1", "Ana", "Pérez", "12345678", "", "ana@mail.com", testTime, testTime).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "duplicate national id",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO "persons"`).
					WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})
			},
			wantErr: domain.ErrDuplicateNationalID,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO "persons"`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockStore(t)
			tt.mock(mock)

			p := &domain.Person{
				ID: "p-1", FirstName: "Ana", LastName: "Pérez", NationalID: "12345678",
				Email: "ana@mail.com", CreatedAt: testTime, UpdatedAt: testTime,
			}
			err := NewPersonRepository(store).Create(ctx, p)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPersonRepository_Update(t *testing.T) {
	ctx := context.Background()
	p := &domain.Person{ID: "p-1", FirstName: "Ana", LastName: "Pérez", NationalID: "12345678", Email: "ana@mail.com"}

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE "persons" SET .* WHERE \("id" = \$\d+\)`).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE "persons"`).WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "duplicate national id",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE "persons"`).WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})
			},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockStore(t)
			tt.mock(mock)

			err := NewPersonRepository(store).Update(ctx, p)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPersonRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(`SELECT .* FROM "persons" WHERE \("id" = \$1\)`).
			WithArgs("p-1").
			WillReturnRows(sqlmock.NewRows(personRowCols).
				AddRow("p-1", "Ana", "Pérez", "12345678", "555-1234", "ana@mail.com", testTime, testTime))

		got, err := NewPersonRepository(store).GetByID(ctx, "p-1")
		require.NoError(t, err)
		assert.Equal(t, &domain.Person{
			ID: "p-1", FirstName: "Ana", LastName: "Pérez", NationalID: "12345678", Phone: "555-1234",
			Email: "ana@mail.com", CreatedAt: testTime, UpdatedAt: testTime,
		}, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(`FROM "persons"`).WithArgs("p-x").WillReturnError(sql.ErrNoRows)

		got, err := NewPersonRepository(store).GetByID(ctx, "p-x")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.Nil(t, got)
	})
}

func TestPersonRepository_Delete(t *testing.T) {
	ctx := context.Background()

	store, mock := newMockStore(t)
	mock.ExpectExec(`DELETE FROM "persons" WHERE \("id" = \$1\)`).
		WithArgs("p-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, NewPersonRepository(store).Delete(ctx, "p-1"), domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPersonRepository_Search(t *testing.T) {
	ctx := context.Background()

	store, mock := newMockStore(t)
	mock.ExpectQuery(`FROM "persons" WHERE \(\("first_name" ILIKE \$1 ESCAPE '\\'\) OR \("last_name" ILIKE \$2 ESCAPE '\\'\)\) ORDER BY "last_name" ASC, "first_name" ASC`).
		WithArgs("%pér%", "%pér%").
		WillReturnRows(sqlmock.NewRows(personRowCols).
			AddRow("p-1", "Ana", "Pérez", "12345678", "", "ana@mail.com", testTime, testTime).
			AddRow("p-2", "Luis", "Pérez", "7654321", "", "luis@mail.com", testTime, testTime))

	got, err := NewPersonRepository(store).Search(ctx, "pér")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Luis", got[1].FirstName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Ana", want: "Ana"},
		{in: "100%", want: `100\%`},
		{in: "o_brien", want: `o\_brien`},
		{in: `a\b`, want: `a\\b`},
		{in: `\%_`, want: `\\\%\_`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeLike(tt.in))
		})
	}
}

func TestPersonRepository_ExistsNationalID(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		excludeID string
		query     string
		count     int
		want      bool
	}{
		{
			name:  "taken",
			query: `SELECT COUNT\(\*\) FROM "persons" WHERE \("national_id" = \$1\)`,
			count: 1,
			want:  true,
		},
		{
			name:      "only held by the excluded person",
			excludeID: "p-1",
			query:     `WHERE \(\("id" != \$1\) AND \("national_id" = \$2\)\)`,
			count:     0,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockStore(t)
			mock.ExpectQuery(tt.query).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))

			got, err := NewPersonRepository(store).ExistsNationalID(ctx, "12345678", tt.excludeID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
