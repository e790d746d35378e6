package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/category-task-api/internal/models"
	"github.com/yukikurage/category-task-api/internal/repository"
	"github.com/yukikurage/category-task-api/internal/testutil"
)

func newCategoryService(t *testing.T) (*CategoryService, *TaskService, *fakeRecorder) {
	t.Helper()
	db := testutil.NewTestDB(t)
	categoryRepo := repository.NewCategoryRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	rec := &fakeRecorder{}
	return NewCategoryService(categoryRepo, rec), NewTaskService(taskRepo, categoryRepo, nil), rec
}

func TestCategoryService_Create(t *testing.T) {
	svc, _, _ := newCategoryService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, 1, "  Work  ")
	require.NoError(t, err)
	assert.Equal(t, "Work", category.Name)
	assert.Equal(t, uint64(1), category.UserID)
	assert.NotZero(t, category.ID)

	_, err = svc.CreateCategory(ctx, 1, "Work")
	assert.ErrorIs(t, err, ErrCategoryExists)

	// Same name, different owner.
	_, err = svc.CreateCategory(ctx, 2, "Work")
	assert.NoError(t, err)
}

func TestCategoryService_CreateValidation(t *testing.T) {
	svc, _, _ := newCategoryService(t)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, 1, "   ")
	assert.ErrorIs(t, err, ErrCategoryNameRequired)

	_, err = svc.CreateCategory(ctx, 1, strings.Repeat("x", 101))
	assert.ErrorIs(t, err, ErrCategoryNameTooLong)
}

func TestCategoryService_ListIsOwnerScoped(t *testing.T) {
	svc, _, _ := newCategoryService(t)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, 1, "Work")
	require.NoError(t, err)
	_, err = svc.CreateCategory(ctx, 1, "Home")
	require.NoError(t, err)
	_, err = svc.CreateCategory(ctx, 2, "Other")
	require.NoError(t, err)

	list, err := svc.ListCategories(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Work", list[0].Name)
	assert.Equal(t, "Home", list[1].Name)

	empty, err := svc.ListCategories(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCategoryService_DeleteCascades(t *testing.T) {
	svc, tasks, rec := newCategoryService(t)
	ctx := context.Background()

	work, err := svc.CreateCategory(ctx, 1, "Work")
	require.NoError(t, err)
	home, err := svc.CreateCategory(ctx, 1, "Home")
	require.NoError(t, err)

	for _, title := range []string{"one", "two"} {
		_, err := tasks.CreateTask(ctx, 1, CreateTaskInput{Title: title, CategoryID: work.ID})
		require.NoError(t, err)
	}
	_, err = tasks.CreateTask(ctx, 1, CreateTaskInput{Title: "stays", CategoryID: home.ID})
	require.NoError(t, err)

	// Another user cannot delete it.
	_, err = svc.DeleteCategory(ctx, 2, work.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	deleted, err := svc.DeleteCategory(ctx, 1, work.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	assert.Equal(t, []int64{2}, rec.cascades)

	remaining, err := tasks.ListTasks(ctx, ListTasksInput{UserID: 1})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "stays", remaining[0].Title)

	_, err = svc.DeleteCategory(ctx, 1, work.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	list, err := svc.ListCategories(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint64{home.ID}, categoryIDs(list))
}

func categoryIDs(categories []models.Category) []uint64 {
	ids := make([]uint64, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	return ids
}
