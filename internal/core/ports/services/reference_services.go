package services

import (
	"context"

	"github.com/contaflux/contaflux_backend/internal/core/domain"
	"github.com/contaflux/contaflux_backend/internal/dto"
)

// CategorySvcFacade defines category management operations.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, direction *domain.FlowDirection) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, updaterUserID string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}

// FinancialAccountSvcFacade defines wallet management operations.
type FinancialAccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateFinancialAccountRequest, creatorUserID string) (*domain.FinancialAccount, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.FinancialAccount, error)
	ListAccounts(ctx context.Context) ([]domain.FinancialAccount, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateFinancialAccountRequest, updaterUserID string) (*domain.FinancialAccount, error)
	DeleteAccount(ctx context.Context, accountID string) error
}

// CardSvcFacade defines credit-card management operations.
type CardSvcFacade interface {
	CreateCard(ctx context.Context, req dto.CreateCardRequest, creatorUserID string) (*domain.Card, error)
	GetCardByID(ctx context.Context, cardID string) (*domain.Card, error)
	ListCards(ctx context.Context) ([]domain.Card, error)
	UpdateCard(ctx context.Context, cardID string, req dto.UpdateCardRequest, updaterUserID string) (*domain.Card, error)
	DeleteCard(ctx context.Context, cardID string) error
}

// TaskSvcFacade defines task-board operations.
type TaskSvcFacade interface {
	CreateTask(ctx context.Context, req dto.CreateTaskRequest, creatorUserID string) (*domain.Task, error)
	GetTaskByID(ctx context.Context, taskID string) (*domain.Task, error)
	ListTasks(ctx context.Context, status *domain.TaskStatus) ([]domain.Task, error)
	UpdateTask(ctx context.Context, taskID string, req dto.UpdateTaskRequest, updaterUserID string) (*domain.Task, error)
	// AdvanceTask moves a task to its next board column (TODO -> IN_PROGRESS -> DONE).
	AdvanceTask(ctx context.Context, taskID string, updaterUserID string) (*domain.Task, error)
	DeleteTask(ctx context.Context, taskID string) error
}
