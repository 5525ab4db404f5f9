package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avelichko/taskdeck/internal/domain"
	"github.com/avelichko/taskdeck/internal/dto"
	"github.com/avelichko/taskdeck/internal/service"
)

// TaskHandler handles task requests. All routes sit behind RequireAuth, so
// a principal is always present.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// Create handles task creation
func (h *TaskHandler) Create(c *gin.Context) {
	principal, _ := CurrentPrincipal(c)

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), principal, &req)
	if err != nil {
		writeTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, taskResponse(task))
}

// Get handles fetching a single task
func (h *TaskHandler) Get(c *gin.Context) {
	principal, _ := CurrentPrincipal(c)

	task, err := h.taskService.Get(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		writeTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, taskResponse(task))
}

// List handles listing the principal's tasks with pagination
func (h *TaskHandler) List(c *gin.Context) {
	principal, _ := CurrentPrincipal(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, offset = service.NormalizePage(limit, offset)

	tasks, total, err := h.taskService.List(c.Request.Context(), principal, limit, offset)
	if err != nil {
		writeTaskError(c, err)
		return
	}

	items := make([]dto.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, taskResponse(task))
	}

	c.JSON(http.StatusOK, dto.TaskListResponse{
		Tasks:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// Update handles partial task updates
func (h *TaskHandler) Update(c *gin.Context) {
	principal, _ := CurrentPrincipal(c)

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), principal, c.Param("id"), &req)
	if err != nil {
		writeTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, taskResponse(task))
}

// Delete handles task deletion
func (h *TaskHandler) Delete(c *gin.Context) {
	principal, _ := CurrentPrincipal(c)

	if err := h.taskService.Delete(c.Request.Context(), principal, c.Param("id")); err != nil {
		writeTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "Task deleted",
	})
}

func taskResponse(task *domain.Task) dto.TaskResponse {
	resp := dto.TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt.Format(time.RFC3339),
	}

	if task.DueDate != nil {
		due := task.DueDate.Format(time.RFC3339)
		resp.DueDate = &due
	}

	return resp
}
