package sqlstore

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"culturalevents/internal/domain"
)

const participationsTable = "participations"

var participationColumns = []any{"id", "event_id", "person_id", "role", "registered_at"}

type participationRepository struct {
	store *Store
}

func NewParticipationRepository(store *Store) domain.ParticipationRepository {
	return &participationRepository{store: store}
}

func (r *participationRepository) Create(ctx context.Context, p *domain.Participation) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	query, args, err := r.store.dialect.Insert(participationsTable).Prepared(true).
		Cols("id", "event_id", "person_id", "role", "registered_at").
		Vals(goqu.Vals{p.ID, p.EventID, p.PersonID, string(p.Role), p.RegisteredAt}).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert participation: %w", err)
	}
	if _, err := r.store.ext(ctx).ExecContext(ctx, query, args...); err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicateParticipation
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert participation: %w", err)
	}
	return nil
}

func (r *participationRepository) Delete(ctx context.Context, eventID, personID string, role *domain.Role) (int64, error) {
	cond := goqu.Ex{"event_id": eventID, "person_id": personID}
	if role != nil {
		cond["role"] = string(*role)
	}
	return r.delete(ctx, cond)
}

func (r *participationRepository) DeleteByEvent(ctx context.Context, eventID string) error {
	_, err := r.delete(ctx, goqu.Ex{"event_id": eventID})
	return err
}

func (r *participationRepository) DeleteByPerson(ctx context.Context, personID string) error {
	_, err := r.delete(ctx, goqu.Ex{"person_id": personID})
	return err
}

func (r *participationRepository) delete(ctx context.Context, cond goqu.Ex) (int64, error) {
	query, args, err := r.store.dialect.Delete(participationsTable).Prepared(true).
		Where(cond).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete participations: %w", err)
	}
	res, err := r.store.ext(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete participations: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func (r *participationRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Participation, error) {
	return r.list(ctx, goqu.Ex{"event_id": eventID})
}

func (r *participationRepository) ListByEventAndRole(ctx context.Context, eventID string, role domain.Role) ([]*domain.Participation, error) {
	return r.list(ctx, goqu.Ex{"event_id": eventID, "role": string(role)})
}

func (r *participationRepository) list(ctx context.Context, cond goqu.Ex) ([]*domain.Participation, error) {
	query, args, err := r.store.dialect.From(participationsTable).Prepared(true).
		Select(participationColumns...).
		Where(cond).
		Order(goqu.C("registered_at").Asc(), goqu.C("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list participations: %w", err)
	}
	var ps []*domain.Participation
	if err := sqlx.SelectContext(ctx, r.store.ext(ctx), &ps, query, args...); err != nil {
		return nil, fmt.Errorf("list participations: %w", err)
	}
	return ps, nil
}

func (r *participationRepository) Exists(ctx context.Context, eventID, personID string, role domain.Role) (bool, error) {
	query, args, err := r.store.dialect.From(participationsTable).Prepared(true).
		Select(goqu.COUNT("*")).
		Where(goqu.Ex{"event_id": eventID, "person_id": personID, "role": string(role)}).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build participation check: %w", err)
	}
	var n int
	if err := sqlx.GetContext(ctx, r.store.ext(ctx), &n, query, args...); err != nil {
		return false, fmt.Errorf("participation check: %w", err)
	}
	return n > 0, nil
}
