package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/willbanks/load-coordinator/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LoadRepo:      newPgxLoadRepository(dbPool),
		DetailRepo:    newPgxLoadDetailRepository(dbPool),
		StopRepo:      newPgxStopDetailRepository(dbPool),
		AuditRepo:     newPgxAuditRepository(dbPool),
		UserRepo:      newPgxUserRepository(dbPool),
		APITokenRepo:  newPgxAPITokenRepository(dbPool),
		ReportingRepo: newPgxReportingRepository(dbPool),
	}
}
