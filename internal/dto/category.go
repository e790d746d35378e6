package dto

import (
	"time"

	"github.com/yukikurage/category-task-api/internal/models"
)

// CreateCategoryRequest is the body of POST /api/categories
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// CategoryDTO represents a category in API responses
type CategoryDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	UserID    uint64    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DeleteCategoryResponse confirms a cascade delete
type DeleteCategoryResponse struct {
	Message      string `json:"message"`
	DeletedTasks int64  `json:"deletedTasks"`
}

// ToCategoryDTO converts a Category model to CategoryDTO
func ToCategoryDTO(category models.Category) CategoryDTO {
	return CategoryDTO{
		ID:        category.ID,
		Name:      category.Name,
		UserID:    category.UserID,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

// ToCategoryDTOs converts a slice of categories, never returning nil
func ToCategoryDTOs(categories []models.Category) []CategoryDTO {
	items := make([]CategoryDTO, len(categories))
	for i, category := range categories {
		items[i] = ToCategoryDTO(category)
	}
	return items
}
