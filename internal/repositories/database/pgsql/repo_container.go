package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/contaflux/contaflux_backend/internal/core/ports/repositories"
)

// NewRepositories wires every pgx-backed repository onto a shared pool.
func NewRepositories(dbPool *pgxpool.Pool) portsrepo.Repositories {
	return portsrepo.Repositories{
		Obligation: newPgxObligationRepository(dbPool),
		CashFlow:   newPgxCashFlowRepository(dbPool),
		Category:   newPgxCategoryRepository(dbPool),
		Account:    newPgxAccountRepository(dbPool),
		Card:       newPgxCardRepository(dbPool),
		Task:       newPgxTaskRepository(dbPool),
		User:       newPgxUserRepository(dbPool),
		Reporting:  newReportingRepository(dbPool),
	}
}
