package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/yukikurage/category-task-api/internal/models"
	"github.com/yukikurage/category-task-api/internal/query"
)

// ErrOwnerRequired is returned when a task listing is attempted without an owner scope.
var ErrOwnerRequired = errors.New("repository: owner scope is required")

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByIDForUser finds a task owned by userID with optional preloading
	FindByIDForUser(ctx context.Context, id, userID uint64, preload ...string) (*models.Task, error)

	// List retrieves the tasks of one owner matching the filter
	List(ctx context.Context, filter TaskFilter) ([]models.Task, error)

	// Update writes every mutable column of an owned task
	Update(ctx context.Context, task *models.Task) error

	// DeleteForUser deletes a task owned by userID
	DeleteForUser(ctx context.Context, id, userID uint64) error

	// DeleteOrphans deletes tasks whose category is missing or has another owner
	DeleteOrphans(ctx context.Context) (int64, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	UserID    uint64
	Predicate sq.Sqlizer
	Order     query.Order
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	// Create creates a new category
	Create(ctx context.Context, category *models.Category) error

	// FindByIDForUser finds a category owned by userID
	FindByIDForUser(ctx context.Context, id, userID uint64) (*models.Category, error)

	// FindByName finds a category by its owner and exact name
	FindByName(ctx context.Context, userID uint64, name string) (*models.Category, error)

	// ListByUser lists the categories of userID, oldest first
	ListByUser(ctx context.Context, userID uint64) ([]models.Category, error)

	// DeleteWithTasks deletes an owned category and its tasks in one transaction
	// and returns the number of tasks removed
	DeleteWithTasks(ctx context.Context, id, userID uint64) (int64, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}
