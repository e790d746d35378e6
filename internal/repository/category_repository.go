package repository

import (
	"context"

	"github.com/yukikurage/category-task-api/internal/database"
	"github.com/yukikurage/category-task-api/internal/models"
	"gorm.io/gorm"
)

// GormCategoryRepository is a GORM implementation of CategoryRepository
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &GormCategoryRepository{db: db}
}

// Create creates a new category
func (r *GormCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// FindByIDForUser finds a category owned by userID
func (r *GormCategoryRepository) FindByIDForUser(ctx context.Context, id, userID uint64) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).
		Scopes(database.OwnedBy("categories", userID)).
		First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByName finds a category by its owner and exact name
func (r *GormCategoryRepository) FindByName(ctx context.Context, userID uint64, name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).
		Scopes(database.OwnedBy("categories", userID)).
		Where("categories.name = ?", name).
		First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ListByUser lists the categories of userID, oldest first
func (r *GormCategoryRepository) ListByUser(ctx context.Context, userID uint64) ([]models.Category, error) {
	categories := []models.Category{}
	if err := r.db.WithContext(ctx).
		Scopes(database.OwnedBy("categories", userID)).
		Order("categories.created_at ASC, categories.id ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// DeleteWithTasks deletes an owned category and all of that owner's tasks in it
// within a single transaction. gorm.ErrRecordNotFound is returned when the
// category does not exist or belongs to someone else.
func (r *GormCategoryRepository) DeleteWithTasks(ctx context.Context, id, userID uint64) (int64, error) {
	var deletedTasks int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Category{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		result = tx.Where("category_id = ? AND user_id = ?", id, userID).Delete(&models.Task{})
		if result.Error != nil {
			return result.Error
		}
		deletedTasks = result.RowsAffected

		return nil
	})
	if err != nil {
		return 0, err
	}

	return deletedTasks, nil
}
