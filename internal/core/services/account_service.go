package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/contaflux/contaflux_backend/internal/apperrors"
	"github.com/contaflux/contaflux_backend/internal/core/domain"
	portsrepo "github.com/contaflux/contaflux_backend/internal/core/ports/repositories"
	portssvc "github.com/contaflux/contaflux_backend/internal/core/ports/services"
	"github.com/contaflux/contaflux_backend/internal/dto"
	"github.com/contaflux/contaflux_backend/internal/middleware"
)

// ErrNegativeBalance indicates a wallet balance below zero was supplied.
var ErrNegativeBalance = errors.New("balance cannot be negative")

// accountService implements wallet management.
type accountService struct {
	accountRepo portsrepo.FinancialAccountRepository
}

// NewAccountService creates a new FinancialAccountService.
func NewAccountService(accountRepo portsrepo.FinancialAccountRepository) portssvc.FinancialAccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.FinancialAccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateFinancialAccountRequest, creatorUserID string) (*domain.FinancialAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	balance := decimal.Zero
	if req.Balance != nil {
		if req.Balance.IsNegative() {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrNegativeBalance)
		}
		balance = *req.Balance
	}

	account := domain.FinancialAccount{
		AccountID:   uuid.NewString(),
		Name:        req.Name,
		Kind:        req.Kind,
		Balance:     balance,
		AuditFields: domain.NewAuditFields(creatorUserID, time.Now().UTC()),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.FinancialAccount, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context) ([]domain.FinancialAccount, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateFinancialAccountRequest, updaterUserID string) (*domain.FinancialAccount, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Kind != nil {
		account.Kind = *req.Kind
		updated = true
	}
	if req.Balance != nil {
		if req.Balance.IsNegative() {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrNegativeBalance)
		}
		account.Balance = *req.Balance
		updated = true
	}
	if !updated {
		return account, nil
	}

	account.Touch(updaterUserID, time.Now().UTC())
	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return nil, fmt.Errorf("failed to update account %s: %w", accountID, err)
	}
	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, accountID string) error {
	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	return nil
}
