package pgsql

import (
	portsrepo "github.com/halverson/farmbooks/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider constructs every Postgres-backed repository on one
// shared connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		Account:   newPgxAccountRepository(pool),
		Journal:   newPgxJournalRepository(pool),
		Period:    newPgxPeriodRepository(pool),
		Payable:   newPgxPayableRepository(pool),
		Bank:      newPgxBankRepository(pool),
		Payment:   newPgxPaymentRepository(pool),
		Reporting: newPgxReportingRepository(pool),
	}
}
