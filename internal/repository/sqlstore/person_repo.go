package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"culturalevents/internal/domain"
)

const personsTable = "persons"

var personColumns = []any{
	"id", "first_name", "last_name", "national_id", "phone", "email", "created_at", "updated_at",
}

// personRow mirrors domain.Person; the goqu tags keep identity columns out of updates.
type personRow struct {
	ID         string    `db:"id" goqu:"skipupdate"`
	FirstName  string    `db:"first_name"`
	LastName   string    `db:"last_name"`
	NationalID string    `db:"national_id"`
	Phone      string    `db:"phone"`
	Email      string    `db:"email"`
	CreatedAt  time.Time `db:"created_at" goqu:"skipupdate"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type personRepository struct {
	store *Store
}

func NewPersonRepository(store *Store) domain.PersonRepository {
	return &personRepository{store: store}
}

func toPersonRow(p *domain.Person) *personRow {
	return &personRow{
		ID:         p.ID,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		NationalID: p.NationalID,
		Phone:      p.Phone,
		Email:      p.Email,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func (r *personRepository) Create(ctx context.Context, p *domain.Person) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	query, args, err := r.store.dialect.Insert(personsTable).Prepared(true).
		Rows(toPersonRow(p)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert person: %w", err)
	}
	if _, err := r.store.ext(ctx).ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.DuplicateNationalIDError(p.NationalID)
		}
		return fmt.Errorf("insert person: %w", err)
	}
	return nil
}

func (r *personRepository) Update(ctx context.Context, p *domain.Person) error {
	query, args, err := r.store.dialect.Update(personsTable).Prepared(true).
		Set(toPersonRow(p)).
		Where(goqu.Ex{"id": p.ID}).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update person: %w", err)
	}
	res, err := r.store.ext(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.DuplicateNationalIDError(p.NationalID)
		}
		return fmt.Errorf("update person: %w", err)
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

func (r *personRepository) GetByID(ctx context.Context, id string) (*domain.Person, error) {
	query, args, err := r.store.dialect.From(personsTable).Prepared(true).
		Select(personColumns...).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build get person: %w", err)
	}
	var p domain.Person
	if err := sqlx.GetContext(ctx, r.store.ext(ctx), &p, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *personRepository) Delete(ctx context.Context, id string) error {
	query, args, err := r.store.dialect.Delete(personsTable).Prepared(true).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete person: %w", err)
	}
	res, err := r.store.ext(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete person: %w", err)
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

func (r *personRepository) List(ctx context.Context) ([]*domain.Person, error) {
	return r.list(ctx, nil)
}

func (r *personRepository) Search(ctx context.Context, text string) ([]*domain.Person, error) {
	return r.list(ctx, goqu.Or(
		r.store.contains("first_name", text),
		r.store.contains("last_name", text),
	))
}

func (r *personRepository) list(ctx context.Context, where exp.Expression) ([]*domain.Person, error) {
	ds := r.store.dialect.From(personsTable).Prepared(true).Select(personColumns...)
	if where != nil {
		ds = ds.Where(where)
	}
	query, args, err := ds.Order(goqu.C("last_name").Asc(), goqu.C("first_name").Asc()).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list persons: %w", err)
	}
	var persons []*domain.Person
	if err := sqlx.SelectContext(ctx, r.store.ext(ctx), &persons, query, args...); err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	return persons, nil
}

func (r *personRepository) ExistsNationalID(ctx context.Context, nationalID, excludeID string) (bool, error) {
	cond := goqu.Ex{"national_id": nationalID}
	if excludeID != "" {
		cond["id"] = goqu.Op{"neq": excludeID}
	}
	query, args, err := r.store.dialect.From(personsTable).Prepared(true).
		Select(goqu.COUNT("*")).
		Where(cond).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build national id check: %w", err)
	}
	var n int
	if err := sqlx.GetContext(ctx, r.store.ext(ctx), &n, query, args...); err != nil {
		return false, fmt.Errorf("national id check: %w", err)
	}
	return n > 0, nil
}
