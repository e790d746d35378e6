package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/category-task-api/internal/constants"
	"github.com/yukikurage/category-task-api/internal/metrics"
	"github.com/yukikurage/category-task-api/internal/models"
	"github.com/yukikurage/category-task-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrCategoryNameTooLong  = errors.New("category name too long")
	ErrCategoryExists       = errors.New("category with this name already exists")
	ErrCategoryNotFound     = errors.New("category not found")
)

// CategoryService provides business logic for category operations.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	metrics      metrics.Recorder
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo repository.CategoryRepository, recorder metrics.Recorder) *CategoryService {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &CategoryService{
		categoryRepo: categoryRepo,
		metrics:      recorder,
	}
}

// CreateCategory creates a category for ownerID. Names are trimmed and must be
// unique per owner.
func (s *CategoryService) CreateCategory(ctx context.Context, ownerID uint64, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}
	if utf8.RuneCountInString(name) > constants.MaxCategoryNameLength {
		return nil, ErrCategoryNameTooLong
	}

	if _, err := s.categoryRepo.FindByName(ctx, ownerID, name); err == nil {
		return nil, ErrCategoryExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}

	category := &models.Category{
		UserID: ownerID,
		Name:   name,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		// The unique index rejects the loser of a concurrent create.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// ListCategories returns the owner's categories, oldest first.
func (s *CategoryService) ListCategories(ctx context.Context, ownerID uint64) ([]models.Category, error) {
	categories, err := s.categoryRepo.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// DeleteCategory removes an owned category together with the owner's tasks in
// it and returns how many tasks were removed.
func (s *CategoryService) DeleteCategory(ctx context.Context, ownerID, categoryID uint64) (int64, error) {
	deleted, err := s.categoryRepo.DeleteWithTasks(ctx, categoryID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrCategoryNotFound
		}
		return 0, fmt.Errorf("failed to delete category: %w", err)
	}

	s.metrics.RecordCascadeDelete(deleted)
	slog.InfoContext(ctx, "category deleted",
		slog.Uint64("user_id", ownerID),
		slog.Uint64("category_id", categoryID),
		slog.Int64("deleted_tasks", deleted),
	)

	return deleted, nil
}
