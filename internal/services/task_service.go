package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yukikurage/category-task-api/internal/constants"
	"github.com/yukikurage/category-task-api/internal/models"
	"github.com/yukikurage/category-task-api/internal/query"
	"github.com/yukikurage/category-task-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound           = errors.New("task not found")
	ErrTitleRequired          = errors.New("title is required")
	ErrTitleTooLong           = errors.New("title too long")
	ErrCategoryRequired       = errors.New("category is required")
	ErrInvalidCategory        = errors.New("category not found or not owned by user")
	ErrInvalidPriority        = errors.New("priority must be one of Low, Medium, High")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAITextRequired         = errors.New("text is required")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
	ErrAINoValidTasks         = errors.New("no valid tasks could be created from AI output")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo     repository.TaskRepository
	categoryRepo repository.CategoryRepository
	aiService    *AIService
	now          func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, categoryRepo repository.CategoryRepository, aiService *AIService) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		categoryRepo: categoryRepo,
		aiService:    aiService,
		now:          time.Now,
	}
}

// WithClock replaces the time source used for due-date buckets.
func (s *TaskService) WithClock(now func() time.Time) *TaskService {
	s.now = now
	return s
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	UserID  uint64
	Search  string
	DueDate query.DueDateBucket
	Order   query.Order
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    models.Priority
	CategoryID  uint64
}

// UpdateTaskInput represents a partial update. Nil fields are left unchanged;
// ClearDueDate removes the due date.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	DueDate      *time.Time
	ClearDueDate bool
	Priority     *models.Priority
	CategoryID   *uint64
	Completed    *bool
}

// ListTasks returns the caller's tasks matching the search text and due-date bucket
func (s *TaskService) ListTasks(ctx context.Context, input ListTasksInput) ([]models.Task, error) {
	filter := repository.TaskFilter{
		UserID:    input.UserID,
		Predicate: query.BuildPredicate(input.Search, input.DueDate, s.now()),
		Order:     input.Order,
	}

	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// GetTask returns an owned task with its category
func (s *TaskService) GetTask(ctx context.Context, ownerID, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByIDForUser(ctx, taskID, ownerID, "Category")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// CreateTask validates the input, checks the category belongs to ownerID and
// stores the task as not completed.
func (s *TaskService) CreateTask(ctx context.Context, ownerID uint64, input CreateTaskInput) (*models.Task, error) {
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}
	if input.CategoryID == 0 {
		return nil, ErrCategoryRequired
	}

	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	if !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}

	if err := s.ensureCategoryOwned(ctx, input.CategoryID, ownerID); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     normalizeDueDate(input.DueDate),
		Priority:    input.Priority,
		CategoryID:  input.CategoryID,
		UserID:      ownerID,
		Completed:   false,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.GetTask(ctx, ownerID, task.ID)
}

// UpdateTask applies a partial update to an owned task. Every field is
// validated before anything is written.
func (s *TaskService) UpdateTask(ctx context.Context, ownerID, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByIDForUser(ctx, taskID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Title != nil {
		if err := validateTitle(*input.Title); err != nil {
			return nil, err
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.CategoryID != nil {
		if *input.CategoryID == 0 {
			return nil, ErrCategoryRequired
		}
		if err := s.ensureCategoryOwned(ctx, *input.CategoryID, ownerID); err != nil {
			return nil, err
		}
		task.CategoryID = *input.CategoryID
	}
	if input.Completed != nil {
		task.Completed = *input.Completed
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = normalizeDueDate(input.DueDate)
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.GetTask(ctx, ownerID, task.ID)
}

// DeleteTask deletes an owned task
func (s *TaskService) DeleteTask(ctx context.Context, ownerID, taskID uint64) error {
	if err := s.taskRepo.DeleteForUser(ctx, taskID, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// GenerateTasks uses AI to suggest tasks from free text. Nothing is stored.
func (s *TaskService) GenerateTasks(ctx context.Context, text string) ([]GeneratedTask, error) {
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrAITextRequired
	}

	aiTasks, err := s.aiService.GenerateTasksFromText(ctx, text, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	if len(aiTasks) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(aiTasks) > constants.MaxAIGeneratedTasks {
		aiTasks = aiTasks[:constants.MaxAIGeneratedTasks]
	}

	validTasks := make([]GeneratedTask, 0, len(aiTasks))
	cutoff := s.now().Add(-24 * time.Hour)
	for _, aiTask := range aiTasks {
		if validateTitle(aiTask.Title) != nil {
			continue
		}

		if aiTask.DueDate != nil && aiTask.DueDate.Before(cutoff) {
			aiTask.DueDate = nil
		}
		aiTask.DueDate = normalizeDueDate(aiTask.DueDate)

		if !aiTask.Priority.Valid() {
			aiTask.Priority = models.PriorityMedium
		}

		validTasks = append(validTasks, aiTask)
	}

	if len(validTasks) == 0 {
		return nil, ErrAINoValidTasks
	}

	return validTasks, nil
}

// ensureCategoryOwned verifies that the category exists and belongs to ownerID
func (s *TaskService) ensureCategoryOwned(ctx context.Context, categoryID, ownerID uint64) error {
	if _, err := s.categoryRepo.FindByIDForUser(ctx, categoryID, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCategory
		}
		return fmt.Errorf("failed to verify category: %w", err)
	}
	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > constants.MaxTaskTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

// normalizeDueDate stores due dates in UTC so bucket boundaries compare consistently.
func normalizeDueDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
