package repository

import (
	"context"

	"github.com/yukikurage/category-task-api/internal/database"
	"github.com/yukikurage/category-task-api/internal/models"
	"github.com/yukikurage/category-task-api/internal/query"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Omit("Category").Create(task).Error
}

// FindByIDForUser finds a task owned by userID with optional preloading
func (r *GormTaskRepository) FindByIDForUser(ctx context.Context, id, userID uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	q := r.db.WithContext(ctx).Scopes(database.OwnedBy("tasks", userID))

	for _, p := range preload {
		q = q.Preload(p)
	}

	if err := q.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves the tasks of filter.UserID matching filter.Predicate
func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	if filter.UserID == 0 {
		return nil, ErrOwnerRequired
	}

	q := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Scopes(database.OwnedBy("tasks", filter.UserID))

	if filter.Predicate != nil {
		sql, args, err := filter.Predicate.ToSql()
		if err != nil {
			return nil, err
		}
		q = q.Where(sql, args...)
	}

	order := filter.Order
	if order == "" {
		order = query.OrderCreatedDesc
	}

	tasks := []models.Task{}
	if err := q.Order(order.Clause()).Preload("Category").Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// Update writes every mutable column of an owned task. gorm.ErrRecordNotFound
// is returned when no row owned by task.UserID matched.
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	result := r.db.WithContext(ctx).
		Model(task).
		Where("user_id = ?", task.UserID).
		Select("title", "description", "due_date", "priority", "category_id", "completed", "updated_at").
		Updates(task)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteForUser deletes a task owned by userID
func (r *GormTaskRepository) DeleteForUser(ctx context.Context, id, userID uint64) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteOrphans removes tasks whose category reference does not resolve to a
// category of the same owner. It is idempotent.
func (r *GormTaskRepository) DeleteOrphans(ctx context.Context) (int64, error) {
	owningCategory := r.db.Model(&models.Category{}).
		Select("1").
		Where("categories.id = tasks.category_id AND categories.user_id = tasks.user_id")

	result := r.db.WithContext(ctx).
		Where("NOT EXISTS (?)", owningCategory).
		Delete(&models.Task{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
