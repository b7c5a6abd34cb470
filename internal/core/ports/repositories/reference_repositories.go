package repositories

import (
	"context"

	"github.com/contaflux/contaflux_backend/internal/core/domain"
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	// ListCategories returns all categories, or only those of one direction
	// when direction is non-nil.
	ListCategories(ctx context.Context, direction *domain.FlowDirection) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, categoryID string) error
}

// FinancialAccountRepository defines persistence operations for wallets.
type FinancialAccountRepository interface {
	SaveAccount(ctx context.Context, account domain.FinancialAccount) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.FinancialAccount, error)
	ListAccounts(ctx context.Context) ([]domain.FinancialAccount, error)
	UpdateAccount(ctx context.Context, account domain.FinancialAccount) error
	DeleteAccount(ctx context.Context, accountID string) error
}

// CardRepository defines persistence operations for credit cards.
type CardRepository interface {
	SaveCard(ctx context.Context, card domain.Card) error
	FindCardByID(ctx context.Context, cardID string) (*domain.Card, error)
	ListCards(ctx context.Context) ([]domain.Card, error)
	UpdateCard(ctx context.Context, card domain.Card) error
	DeleteCard(ctx context.Context, cardID string) error
}

// TaskRepository defines persistence operations for task-board cards.
type TaskRepository interface {
	SaveTask(ctx context.Context, task domain.Task) error
	FindTaskByID(ctx context.Context, taskID string) (*domain.Task, error)
	ListTasks(ctx context.Context, status *domain.TaskStatus) ([]domain.Task, error)
	UpdateTask(ctx context.Context, task domain.Task) error
	DeleteTask(ctx context.Context, taskID string) error
}
