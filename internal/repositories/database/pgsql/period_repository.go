package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/halverson/farmbooks/internal/apperrors"
	"github.com/halverson/farmbooks/internal/core/domain"
	portsrepo "github.com/halverson/farmbooks/internal/core/ports/repositories"
	"github.com/halverson/farmbooks/internal/models"
	"github.com/halverson/farmbooks/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const periodColumns = `period_id, entity_id, name, start_date, end_date, status, created_at, created_by, last_updated_at, last_updated_by`

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for fiscal period data.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

// SavePeriod inserts a new fiscal period row.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	m := mapping.ToModelFiscalPeriod(period)
	query := `
		INSERT INTO fiscal_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PeriodID, m.EntityID, m.Name, m.StartDate, m.EndDate, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert period "+m.PeriodID, err)
	}
	return nil
}

// FindPeriodByID retrieves a fiscal period by its ID.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods WHERE period_id = $1;`
	return r.scanOne(ctx, query, periodID)
}

// FindPeriodForDate retrieves the period whose date range contains the date.
func (r *PgxPeriodRepository) FindPeriodForDate(ctx context.Context, entityID string, date time.Time) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods WHERE entity_id = $1 AND start_date <= $2 AND end_date >= $2;`
	return r.scanOne(ctx, query, entityID, date)
}

// ListPeriods retrieves every period of an entity, oldest first.
func (r *PgxPeriodRepository) ListPeriods(ctx context.Context, entityID string) ([]domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods WHERE entity_id = $1 ORDER BY start_date;`
	rows, err := r.Pool.Query(ctx, query, entityID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query periods for entity "+entityID, err)
	}
	defer rows.Close()

	periods := []domain.FiscalPeriod{}
	for rows.Next() {
		var m models.FiscalPeriod
		if err := rows.Scan(
			&m.PeriodID, &m.EntityID, &m.Name, &m.StartDate, &m.EndDate, &m.Status,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan period row", err)
		}
		periods = append(periods, mapping.ToDomainFiscalPeriod(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating period rows", err)
	}
	return periods, nil
}

// UpdatePeriodStatus transitions a period with compare-and-set semantics.
func (r *PgxPeriodRepository) UpdatePeriodStatus(ctx context.Context, periodID string, from, to domain.PeriodStatus, userID string, at time.Time) error {
	query := `
		UPDATE fiscal_periods
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE period_id = $1 AND status = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, periodID, string(from), string(to), at, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of period "+periodID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

func (r *PgxPeriodRepository) scanOne(ctx context.Context, query string, args ...interface{}) (*domain.FiscalPeriod, error) {
	var m models.FiscalPeriod
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&m.PeriodID, &m.EntityID, &m.Name, &m.StartDate, &m.EndDate, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find period", err)
	}
	period := mapping.ToDomainFiscalPeriod(m)
	return &period, nil
}
