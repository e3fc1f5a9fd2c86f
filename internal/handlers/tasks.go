package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"tasktrack/internal/middleware"
	"tasktrack/internal/models"
	"tasktrack/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TaskHandler struct {
	db          *gorm.DB
	taskService services.TaskService
}

// TaskInput is the full updatable field set. PUT replaces all of it;
// there is no partial-update variant, so description must be present
// on every submission. The pointer lets an explicit empty string
// through while a missing field fails binding.
type TaskInput struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description" binding:"required"`
	Status      string  `json:"status"`
}

func NewTaskHandler(db *gorm.DB, taskService services.TaskService) *TaskHandler {
	return &TaskHandler{db: db, taskService: taskService}
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	var input TaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	task := models.Task{
		OwnerID:     user.ID,
		Title:       input.Title,
		Description: *input.Description,
		Status:      input.Status,
	}
	if err := h.taskService.CreateTask(h.db, &task); err != nil {
		slog.Error("task creation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not create task"})
		return
	}

	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) GetTasks(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	tasks, err := h.taskService.GetTasks(h.db, user.ID)
	if err != nil {
		slog.Error("task listing failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not list tasks"})
		return
	}

	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) GetTaskByID(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTaskByID(h.db, user.ID, id)
	if err != nil {
		handleTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	var input TaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	task, err := h.taskService.UpdateTask(h.db, user.ID, id, models.Task{
		Title:       input.Title,
		Description: *input.Description,
		Status:      input.Status,
	})
	if err != nil {
		handleTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(h.db, user.ID, id); err != nil {
		handleTaskError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// parseTaskID reads the id path parameter. A non-numeric id can never
// match a row, so it reports the same not-found outcome.
func parseTaskID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Task not found"})
		return 0, false
	}
	return uint(id), true
}

// handleTaskError maps absent and not-owned tasks to one outcome so the
// API never reveals whether a foreign task exists.
func handleTaskError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Task not found"})
		return
	}
	slog.Error("task request failed", slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not process task request"})
}
