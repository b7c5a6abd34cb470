package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/contaflux/contaflux_backend/internal/apperrors"
	"github.com/contaflux/contaflux_backend/internal/core/domain"
	portsrepo "github.com/contaflux/contaflux_backend/internal/core/ports/repositories"
	portssvc "github.com/contaflux/contaflux_backend/internal/core/ports/services"
	"github.com/contaflux/contaflux_backend/internal/dto"
	"github.com/contaflux/contaflux_backend/internal/middleware"
)

// Card validation errors.
var (
	ErrNegativeLimit = errors.New("card limit cannot be negative")
	ErrNegativeUsage = errors.New("used amount cannot be negative")
)

// cardService implements credit-card management.
type cardService struct {
	cardRepo portsrepo.CardRepository
}

// NewCardService creates a new CardService.
func NewCardService(cardRepo portsrepo.CardRepository) portssvc.CardSvcFacade {
	return &cardService{cardRepo: cardRepo}
}

var _ portssvc.CardSvcFacade = (*cardService)(nil)

func (s *cardService) CreateCard(ctx context.Context, req dto.CreateCardRequest, creatorUserID string) (*domain.Card, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.TotalLimit.IsNegative() {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrNegativeLimit)
	}
	if req.UsedAmount.IsNegative() {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrNegativeUsage)
	}

	card := domain.Card{
		CardID:      uuid.NewString(),
		DisplayName: req.DisplayName,
		Nickname:    req.Nickname,
		Brand:       req.Brand,
		Issuer:      req.Issuer,
		LastFour:    req.LastFour,
		TotalLimit:  req.TotalLimit,
		UsedAmount:  req.UsedAmount,
		IsPrimary:   req.IsPrimary,
		AuditFields: domain.NewAuditFields(creatorUserID, time.Now().UTC()),
	}

	if err := s.cardRepo.SaveCard(ctx, card); err != nil {
		logger.Error("Failed to save card", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save card: %w", err)
	}
	return &card, nil
}

func (s *cardService) GetCardByID(ctx context.Context, cardID string) (*domain.Card, error) {
	card, err := s.cardRepo.FindCardByID(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to find card %s: %w", cardID, err)
	}
	return card, nil
}

func (s *cardService) ListCards(ctx context.Context) ([]domain.Card, error) {
	cards, err := s.cardRepo.ListCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

func (s *cardService) UpdateCard(ctx context.Context, cardID string, req dto.UpdateCardRequest, updaterUserID string) (*domain.Card, error) {
	card, err := s.cardRepo.FindCardByID(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to find card %s: %w", cardID, err)
	}

	updated := false
	if req.DisplayName != nil {
		card.DisplayName = *req.DisplayName
		updated = true
	}
	if req.Nickname != nil {
		card.Nickname = *req.Nickname
		updated = true
	}
	if req.TotalLimit != nil {
		if req.TotalLimit.IsNegative() {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrNegativeLimit)
		}
		card.TotalLimit = *req.TotalLimit
		updated = true
	}
	if req.UsedAmount != nil {
		if req.UsedAmount.IsNegative() {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrNegativeUsage)
		}
		card.UsedAmount = *req.UsedAmount
		updated = true
	}
	if req.IsPrimary != nil {
		card.IsPrimary = *req.IsPrimary
		updated = true
	}
	if !updated {
		return card, nil
	}

	card.Touch(updaterUserID, time.Now().UTC())
	if err := s.cardRepo.UpdateCard(ctx, *card); err != nil {
		return nil, fmt.Errorf("failed to update card %s: %w", cardID, err)
	}
	return card, nil
}

func (s *cardService) DeleteCard(ctx context.Context, cardID string) error {
	if err := s.cardRepo.DeleteCard(ctx, cardID); err != nil {
		return fmt.Errorf("failed to delete card %s: %w", cardID, err)
	}
	return nil
}
