package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/taskhive/task-service/internal/adapters/transport/http/dto"
	"github.com/taskhive/task-service/internal/adapters/transport/http/middleware"
	"github.com/taskhive/task-service/internal/app/task"
	customErrors "github.com/taskhive/task-service/internal/domain/errors"
)

type TaskHandler struct {
	svc task.Service
}

func NewTaskHandler(svc task.Service) *TaskHandler {
	return &TaskHandler{svc: svc}
}

func (h *TaskHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	// Absent or non-numeric paging falls back to page 1, 10 per page.
	page := intQuery(c, "page", 1)
	perPage := intQuery(c, "per_page", 10)

	tasks, err := h.svc.List(c.Request.Context(), user.UserID, page, perPage)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"tasks": tasks},
	})
}

func (h *TaskHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body dto.CreateTaskDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.svc.Create(c.Request.Context(), user.UserID, body)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"task": created},
	})
}

func (h *TaskHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	var body dto.UpdateTaskDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), user.UserID, id, body)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"task": updated},
	})
}

func (h *TaskHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	deleted, err := h.svc.Delete(c.Request.Context(), user.UserID, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"task": deleted},
	})
}

// handleError deviates from the shared mapper in one place: a missing (or
// foreign-owned, which looks the same) task answers 400 rather than 404.
func (h *TaskHandler) handleError(c *gin.Context, err error) {
	if customErrors.IsNotFound(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "task not found"})
		return
	}
	handleError(c, err)
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
