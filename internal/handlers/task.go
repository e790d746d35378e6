package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/category-task-api/internal/constants"
	"github.com/yukikurage/category-task-api/internal/dto"
	apierrors "github.com/yukikurage/category-task-api/internal/errors"
	"github.com/yukikurage/category-task-api/internal/middleware"
	"github.com/yukikurage/category-task-api/internal/query"
	"github.com/yukikurage/category-task-api/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns the caller's tasks.
// Supports search, dueDate (today, this-week, upcoming, overdue, all) and sort=due_date.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), services.ListTasksInput{
		UserID:  userID,
		Search:  c.Query("search"),
		DueDate: query.ParseBucket(c.Query("dueDate")),
		Order:   query.ParseOrder(c.Query("sort")),
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns a specific owned task
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := middleware.GetIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), userID, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), userID, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate.Ptr(),
		Priority:    req.Priority,
		CategoryID:  req.CategoryRef(),
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update. Serves both PUT and PATCH.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := middleware.GetIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	input := services.UpdateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      req.DueDate.Ptr(),
		ClearDueDate: req.DueDate.Set && req.DueDate.Null,
		Priority:     req.Priority,
		Completed:    req.Completed,
	}
	if categoryID, sent := req.CategoryRef(); sent {
		input.CategoryID = &categoryID
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), userID, taskID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes an owned task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := middleware.GetIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), userID, taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Task deleted successfully"})
}

// GenerateTasks suggests tasks from free text using AI. Nothing is stored.
func (h *TaskHandler) GenerateTasks(c *gin.Context) {
	if _, exists := middleware.GetUserID(c); !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.GenerateTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Text is required")
		return
	}

	generated, err := h.taskService.GenerateTasks(c.Request.Context(), req.Text)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	resp := dto.GenerateTasksResponse{Tasks: make([]dto.GeneratedTaskDTO, len(generated))}
	for i, t := range generated {
		resp.Tasks[i] = dto.GeneratedTaskDTO{
			Title:       t.Title,
			Description: t.Description,
			DueDate:     t.DueDate,
			Priority:    t.Priority,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// respondBindError reports body decoding failures with per-field details
// where the failing field is known.
func respondBindError(c *gin.Context, err error) {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, dto.ErrInvalidDate):
		apierrors.BadRequestWithDetails(c, "Invalid due date", map[string]string{
			"dueDate": "must be an RFC3339 timestamp or YYYY-MM-DD",
		})
	case errors.Is(err, dto.ErrInvalidID):
		apierrors.BadRequestWithDetails(c, "Invalid category ID", map[string]string{
			"categoryId": "must be a positive integer id",
		})
	case errors.As(err, &typeErr) && typeErr.Field != "":
		apierrors.BadRequestWithDetails(c, "Invalid request body", map[string]string{
			typeErr.Field: "must be a " + typeErr.Type.Kind().String(),
		})
	default:
		apierrors.BadRequest(c, "Invalid request body")
	}
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrTitleRequired):
		apierrors.BadRequest(c, "Title is required")
	case errors.Is(err, services.ErrTitleTooLong):
		apierrors.BadRequest(c, fmt.Sprintf("Title must be at most %d characters", constants.MaxTaskTitleLength))
	case errors.Is(err, services.ErrCategoryRequired):
		apierrors.BadRequest(c, "Category is required")
	case errors.Is(err, services.ErrInvalidCategory):
		apierrors.BadRequest(c, "Invalid category")
	case errors.Is(err, services.ErrInvalidPriority):
		apierrors.BadRequest(c, "Priority must be one of Low, Medium, High")
	case errors.Is(err, services.ErrAITextRequired):
		apierrors.BadRequest(c, "Text is required")
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "AI service is not configured")
	case errors.Is(err, services.ErrAINoTasksGenerated),
		errors.Is(err, services.ErrAINoValidTasks):
		apierrors.RespondWithError(c, http.StatusUnprocessableEntity,
			apierrors.NewAPIError(apierrors.ErrCodeInvalidInput, "No tasks could be extracted from the text"))
	default:
		respondUnexpected(c, err)
	}
}
