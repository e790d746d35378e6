package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/category-task-api/internal/constants"
	"github.com/yukikurage/category-task-api/internal/dto"
	apierrors "github.com/yukikurage/category-task-api/internal/errors"
	"github.com/yukikurage/category-task-api/internal/middleware"
	"github.com/yukikurage/category-task-api/internal/services"
)

// CategoryHandler serves the category endpoints.
type CategoryHandler struct {
	categoryService *services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// ListCategories returns the caller's categories, oldest first
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context(), userID)
	if err != nil {
		respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTOs(categories))
}

// CreateCategory creates a category for the caller
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), userID, req.Name)
	if err != nil {
		respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryDTO(*category))
}

// DeleteCategory deletes an owned category and every task in it
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	categoryID, ok := middleware.GetIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid category ID")
		return
	}

	deleted, err := h.categoryService.DeleteCategory(c.Request.Context(), userID, categoryID)
	if err != nil {
		respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteCategoryResponse{
		Message:      "Category and associated tasks deleted",
		DeletedTasks: deleted,
	})
}

func respondCategoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCategoryNameRequired):
		apierrors.BadRequest(c, "Category name is required")
	case errors.Is(err, services.ErrCategoryNameTooLong):
		apierrors.BadRequest(c, fmt.Sprintf("Category name must be at most %d characters", constants.MaxCategoryNameLength))
	case errors.Is(err, services.ErrCategoryExists):
		apierrors.Conflict(c, "Category already exists")
	case errors.Is(err, services.ErrCategoryNotFound):
		apierrors.NotFound(c, "Category not found")
	default:
		respondUnexpected(c, err)
	}
}
