package services

import (
	portsrepo "github.com/contaflux/contaflux_backend/internal/core/ports/repositories"
	portssvc "github.com/contaflux/contaflux_backend/internal/core/ports/services"
	"github.com/contaflux/contaflux_backend/internal/platform/config"
)

// NewServiceContainer creates a service container with fully wired dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.Repositories) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.CashFlow = NewCashFlowService(repos.CashFlow)

	// The settlement coordinator writes through the cash flow service so that
	// settlement ledger entries follow the same path as manual entries.
	container.Obligation = NewObligationService(repos.Obligation)
	container.Settlement = NewSettlementService(repos.Obligation, container.CashFlow)

	container.Category = NewCategoryService(repos.Category)
	container.Account = NewAccountService(repos.Account)
	container.Card = NewCardService(repos.Card)
	container.Task = NewTaskService(repos.Task)

	container.User = NewUserService(repos.User)
	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	container.Reporting = NewReportingService(repos.Reporting, repos.Obligation)

	return container
}
