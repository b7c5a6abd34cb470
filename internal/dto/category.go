package dto

import (
	"time"

	"github.com/contaflux/contaflux_backend/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a category.
type CreateCategoryRequest struct {
	Name        string               `json:"name" binding:"required"`
	Direction   domain.FlowDirection `json:"direction" binding:"required,oneof=INCOME EXPENSE"`
	Description string               `json:"description"`
	ColorHex    string               `json:"colorHex" binding:"omitempty,hexcolor"`
}

// UpdateCategoryRequest defines the fields of a category that can change.
// Direction is fixed for the category's lifetime.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ColorHex    *string `json:"colorHex" binding:"omitempty,hexcolor"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID  string               `json:"categoryID"`
	Name        string               `json:"name"`
	Direction   domain.FlowDirection `json:"direction"`
	Description string               `json:"description,omitempty"`
	ColorHex    string               `json:"colorHex,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// ToCategoryResponse converts a domain.Category to its response DTO.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:  c.CategoryID,
		Name:        c.Name,
		Direction:   c.Direction,
		Description: c.Description,
		ColorHex:    c.ColorHex,
		CreatedAt:   c.CreatedAt,
	}
}

// ToCategoryResponses converts a slice of categories.
func ToCategoryResponses(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i := range categories {
		res[i] = ToCategoryResponse(&categories[i])
	}
	return res
}
