package dto

import (
	"time"

	"github.com/yukikurage/category-task-api/internal/models"
)

// CategoryRef is the category summary embedded in task responses
type CategoryRef struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	DueDate     *time.Time      `json:"dueDate"`
	Priority    models.Priority `json:"priority"`
	CategoryID  uint64          `json:"categoryId"`
	Category    *CategoryRef    `json:"category,omitempty"`
	UserID      uint64          `json:"userId"`
	Completed   bool            `json:"completed"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// CreateTaskRequest is the body of POST /api/tasks. The category may be sent
// as either "categoryId" or "category".
type CreateTaskRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	DueDate     OptionalTime    `json:"dueDate"`
	Priority    models.Priority `json:"priority"`
	CategoryID  *ID             `json:"categoryId"`
	Category    *ID             `json:"category"`
}

// CategoryRef returns the referenced category ID, or 0 when none was sent.
func (r CreateTaskRequest) CategoryRef() uint64 {
	return firstID(r.CategoryID, r.Category)
}

// UpdateTaskRequest is the body of PUT/PATCH /api/tasks/:id. Absent fields are
// left unchanged.
type UpdateTaskRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	DueDate     OptionalTime     `json:"dueDate"`
	Priority    *models.Priority `json:"priority"`
	CategoryID  *ID              `json:"categoryId"`
	Category    *ID              `json:"category"`
	Completed   *bool            `json:"completed"`
}

// CategoryRef returns the referenced category ID and whether one was sent.
func (r UpdateTaskRequest) CategoryRef() (uint64, bool) {
	if r.CategoryID == nil && r.Category == nil {
		return 0, false
	}
	return firstID(r.CategoryID, r.Category), true
}

// GenerateTasksRequest is the body of POST /api/tasks/generate
type GenerateTasksRequest struct {
	Text string `json:"text" binding:"required"`
}

// GeneratedTaskDTO is an AI-suggested task. Suggestions are not stored.
type GeneratedTaskDTO struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	DueDate     *time.Time      `json:"dueDate"`
	Priority    models.Priority `json:"priority"`
}

// GenerateTasksResponse wraps the suggestions
type GenerateTasksResponse struct {
	Tasks []GeneratedTaskDTO `json:"tasks"`
}

// Conversion functions

// ToCategoryRef converts a Category model to CategoryRef
func ToCategoryRef(category models.Category) CategoryRef {
	return CategoryRef{
		ID:   category.ID,
		Name: category.Name,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Priority:    task.Priority,
		CategoryID:  task.CategoryID,
		UserID:      task.UserID,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	// Include category if preloaded
	if task.Category.ID != 0 {
		ref := ToCategoryRef(task.Category)
		dto.Category = &ref
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks, never returning nil
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}
