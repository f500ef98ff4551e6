package pgsql

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/halverson/farmbooks/internal/apperrors"
	"github.com/halverson/farmbooks/internal/core/domain"
	portsrepo "github.com/halverson/farmbooks/internal/core/ports/repositories"
	"github.com/halverson/farmbooks/internal/models"
	"github.com/halverson/farmbooks/internal/utils/mapping"
	"github.com/halverson/farmbooks/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `entry_id, entity_id, period_id, entry_date, memo, status, source_kind, source_ref, reversed_by_id, reversal_of_id, idempotency_key, total_debits_cents, created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for the posted entry log.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// SaveEntry persists the entry, its lines and the cached balance updates in
// one database transaction. The period row is locked first so a concurrent
// close cannot slip in between the check and the insert; account rows are
// locked in sorted order to avoid deadlocks between concurrent postings.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, balanceChanges map[string]int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertEntryInTx(ctx, tx, entry, balanceChanges); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SaveReversal persists the reversal and flips the original entry to
// REVERSED in the same transaction. The flip is compare-and-set on the
// original still being POSTED and unreversed, so a concurrent or repeated
// reversal fails with ErrAlreadyReversed and persists nothing.
func (r *PgxJournalRepository) SaveReversal(ctx context.Context, reversal domain.JournalEntry, originalEntryID string, balanceChanges map[string]int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	flipQuery := `
		UPDATE journal_entries
		SET status = 'REVERSED', reversed_by_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $1 AND status = 'POSTED' AND reversed_by_id IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, flipQuery, originalEntryID, reversal.EntryID, reversal.LastUpdatedAt, reversal.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to flip original entry "+originalEntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAlreadyReversed
	}

	if err := r.insertEntryInTx(ctx, tx, reversal, balanceChanges); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxJournalRepository) insertEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, balanceChanges map[string]int64) error {
	// Lock the period row; reject anything but OPEN even if the service
	// already checked, because the close may have landed since.
	var periodStatus string
	lockPeriod := `SELECT status FROM fiscal_periods WHERE period_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockPeriod, entry.PeriodID).Scan(&periodStatus); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock period "+entry.PeriodID, err)
	}
	if periodStatus != string(domain.PeriodOpen) {
		return apperrors.ErrClosedPeriod
	}

	m := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10, NULLIF($11, ''), $12, $13, $14, $15, $16);
	`
	_, err := tx.Exec(ctx, entryQuery,
		m.EntryID, m.EntityID, m.PeriodID, m.EntryDate, m.Memo, m.Status,
		m.SourceKind, m.SourceRef, m.ReversedByID, m.ReversalOfID, m.IdempotencyKey,
		m.TotalDebitsCents, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
	}

	// Lock affected accounts in sorted order, then apply balance deltas.
	accountIDs := make([]string, 0, len(balanceChanges))
	for id := range balanceChanges {
		accountIDs = append(accountIDs, id)
	}
	sort.Strings(accountIDs)

	lockAccounts := `SELECT account_id FROM accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE;`
	rows, err := tx.Query(ctx, lockAccounts, accountIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock accounts for entry "+m.EntryID, err)
	}
	locked := 0
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return apperrors.NewAppError(500, "failed to scan locked account row", err)
		}
		locked++
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(500, "error iterating locked account rows", err)
	}
	if locked != len(accountIDs) {
		return apperrors.ErrNotFound
	}

	balanceQuery := `
		UPDATE accounts
		SET balance_cents = balance_cents + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	for _, id := range accountIDs {
		if _, err := tx.Exec(ctx, balanceQuery, id, balanceChanges[id], m.LastUpdatedAt, m.LastUpdatedBy); err != nil {
			return apperrors.NewAppError(500, "failed to update balance of account "+id, err)
		}
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (line_id, entry_id, account_id, debit_cents, credit_cents, class_tag, cleared, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10, $11);
	`
	for _, line := range entry.Lines {
		ml := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			ml.LineID, ml.EntryID, ml.AccountID, ml.DebitCents, ml.CreditCents,
			ml.ClassTag, ml.Cleared, ml.CreatedAt, ml.CreatedBy, ml.LastUpdatedAt, ml.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute line batch for entry "+m.EntryID, err)
	}
	return nil
}

// FindEntryByID retrieves a journal entry by its ID, without lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	return r.scanOneEntry(ctx, query, entryID)
}

// FindEntryByIdempotencyKey retrieves the entry previously posted with the
// given key, if any.
func (r *PgxJournalRepository) FindEntryByIdempotencyKey(ctx context.Context, entityID string, key string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entity_id = $1 AND idempotency_key = $2;`
	return r.scanOneEntry(ctx, query, entityID, key)
}

// FindLinesByEntryID retrieves all lines of one entry, in insertion order.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, entry_id, account_id, debit_cents, credit_cents, COALESCE(class_tag, ''), cleared,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		var l models.JournalLine
		if err := rows.Scan(
			&l.LineID, &l.EntryID, &l.AccountID, &l.DebitCents, &l.CreditCents, &l.ClassTag, &l.Cleared,
			&l.CreatedAt, &l.CreatedBy, &l.LastUpdatedAt, &l.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for entry "+entryID, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for entry "+entryID, err)
	}
	return mapping.ToDomainJournalLineSlice(lines), nil
}

// ListEntries retrieves a paginated list of entries for an entity using
// token-based pagination, newest first.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, entityID string, limit int, nextToken *string, includeReversals bool) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + entryColumns + ` FROM journal_entries`
	filterClause := `WHERE entity_id = $1`
	if !includeReversals {
		filterClause += ` AND status != 'REVERSED' AND reversal_of_id IS NULL`
	}
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	args := []interface{}{entityID}
	query := baseQuery + " " + filterClause
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (entry_date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries for entity "+entityID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row", err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows", err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		last := modelEntries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		nextTokenVal = &token
		results = modelEntries[:limit]
	}

	entries := make([]domain.JournalEntry, len(results))
	for i, m := range results {
		entries[i] = mapping.ToDomainJournalEntry(m)
	}
	return entries, nextTokenVal, nil
}

// ListLinesByAccount retrieves a paginated list of posted lines touching one
// account, newest first, with entry date and memo joined in.
func (r *PgxJournalRepository) ListLinesByAccount(ctx context.Context, entityID string, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT l.line_id, l.entry_id, l.account_id, l.debit_cents, l.credit_cents, COALESCE(l.class_tag, ''), l.cleared,
		       l.created_at, l.created_by, l.last_updated_at, l.last_updated_by, e.entry_date, e.memo
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE l.account_id = $1 AND e.entity_id = $2 AND e.status = 'POSTED'
	`
	orderByClause := `ORDER BY e.entry_date DESC, l.created_at DESC`

	args := []interface{}{accountID, entityID}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (e.entry_date, l.created_at) < ($3, $4)`
		args = append(args, lastDate, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query lines for account "+accountID, err)
	}
	defer rows.Close()

	modelLines := make([]models.JournalLine, 0, fetchLimit)
	for rows.Next() {
		var l models.JournalLine
		if err := rows.Scan(
			&l.LineID, &l.EntryID, &l.AccountID, &l.DebitCents, &l.CreditCents, &l.ClassTag, &l.Cleared,
			&l.CreatedAt, &l.CreatedBy, &l.LastUpdatedAt, &l.LastUpdatedBy, &l.EntryDate, &l.EntryMemo,
		); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan line row for account "+accountID, err)
		}
		modelLines = append(modelLines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating line rows for account "+accountID, err)
	}

	var nextTokenVal *string
	results := modelLines
	if len(modelLines) > limit {
		last := modelLines[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		nextTokenVal = &token
		results = modelLines[:limit]
	}
	return mapping.ToDomainJournalLineSlice(results), nextTokenVal, nil
}

// CountDraftEntries returns the number of DRAFT entries in a period.
func (r *PgxJournalRepository) CountDraftEntries(ctx context.Context, periodID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM journal_entries WHERE period_id = $1 AND status = 'DRAFT';`
	if err := r.Pool.QueryRow(ctx, query, periodID).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count draft entries in period "+periodID, err)
	}
	return count, nil
}

// ListCashLines returns posted lines of a cash account in a date range,
// signed from the bank's perspective: debits to the cash account (deposits)
// positive, credits (withdrawals) negative. Oldest first.
func (r *PgxJournalRepository) ListCashLines(ctx context.Context, entityID string, ledgerAccountID string, from time.Time, to time.Time, onlyUncleared bool) ([]domain.CashLine, error) {
	query := `
		SELECT l.line_id, l.entry_id, e.entry_date, l.debit_cents - l.credit_cents, e.memo, l.cleared
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE l.account_id = $1 AND e.entity_id = $2 AND e.status = 'POSTED'
		  AND e.entry_date >= $3 AND e.entry_date <= $4
	`
	if onlyUncleared {
		query += ` AND l.cleared = FALSE`
	}
	query += ` ORDER BY e.entry_date, l.created_at;`

	rows, err := r.Pool.Query(ctx, query, ledgerAccountID, entityID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query cash lines for account "+ledgerAccountID, err)
	}
	defer rows.Close()

	lines := []domain.CashLine{}
	for rows.Next() {
		var l domain.CashLine
		if err := rows.Scan(&l.LineID, &l.EntryID, &l.EntryDate, &l.AmountCents, &l.Memo, &l.Cleared); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan cash line row", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating cash line rows", err)
	}
	return lines, nil
}

// ControlBalanceAsOf derives the control account's balance on its normal
// side from the posted log as of a date.
func (r *PgxJournalRepository) ControlBalanceAsOf(ctx context.Context, accountID string, asOf time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN a.normal_side = 'DEBIT'
		                         THEN l.debit_cents - l.credit_cents
		                         ELSE l.credit_cents - l.debit_cents END), 0)
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		JOIN accounts a ON l.account_id = a.account_id
		WHERE l.account_id = $1 AND e.status = 'POSTED' AND e.entry_date <= $2;
	`
	var balance int64
	if err := r.Pool.QueryRow(ctx, query, accountID, asOf).Scan(&balance); err != nil {
		return 0, apperrors.NewAppError(500, "failed to derive control balance for account "+accountID, err)
	}
	return balance, nil
}

func (r *PgxJournalRepository) scanOneEntry(ctx context.Context, query string, args ...interface{}) (*domain.JournalEntry, error) {
	row := r.Pool.QueryRow(ctx, query, args...)
	m, err := scanEntryRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry", err)
	}
	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

func scanEntryRow(row rowScanner) (models.JournalEntry, error) {
	var m models.JournalEntry
	var sourceRef, idempotencyKey *string
	err := row.Scan(
		&m.EntryID, &m.EntityID, &m.PeriodID, &m.EntryDate, &m.Memo, &m.Status,
		&m.SourceKind, &sourceRef, &m.ReversedByID, &m.ReversalOfID, &idempotencyKey,
		&m.TotalDebitsCents, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return m, err
	}
	if sourceRef != nil {
		m.SourceRef = *sourceRef
	}
	if idempotencyKey != nil {
		m.IdempotencyKey = *idempotencyKey
	}
	return m, nil
}

func scanEntry(rows pgx.Rows) (models.JournalEntry, error) {
	return scanEntryRow(rows)
}
