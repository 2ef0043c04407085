package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mytodo/mytodo-api/internal/constants"
	"github.com/mytodo/mytodo-api/internal/dto"
	apierrors "github.com/mytodo/mytodo-api/internal/errors"
	"github.com/mytodo/mytodo-api/internal/middleware"
	"github.com/mytodo/mytodo-api/internal/models"
	"github.com/mytodo/mytodo-api/internal/services"
	"github.com/mytodo/mytodo-api/internal/utils"
)

// TodoHandler coordinates todo-management HTTP handlers. Ownership is
// enforced by the RequireTodoOwner middleware for record-scoped routes
// and by the service layer below it.
type TodoHandler struct {
	todoService *services.TodoService
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(todoService *services.TodoService) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
	}
}

// ListTodos returns the caller's todos, newest first, narrowed by the
// filter query parameter (all, completed, pending), along with counts
// over the caller's full set.
func (h *TodoHandler) ListTodos(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	filter := c.DefaultQuery("filter", services.FilterAll)
	params := utils.GetPaginationParams(c)

	result, err := h.todoService.List(userID, filter, params.Page, params.Limit)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoListResponse(result.Todos, filter, result.Counts, params, result.Total))
}

// CreateTodo adds a new pending todo for the caller.
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTodoRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	todo, err := h.todoService.Add(userID, req.Content)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTodoDTO(*todo))
}

// GetTodo returns a single todo. The record is already loaded and
// ownership-checked by the RequireTodoOwner middleware.
func (h *TodoHandler) GetTodo(c *gin.Context) {
	todo, ok := todoFromContext(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTO(todo))
}

// UpdateTodo replaces the content of a todo.
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	todo, ok := todoFromContext(c)
	if !ok {
		return
	}

	type UpdateTodoRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.todoService.Edit(userID, todo.ID, req.Content)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTO(*updated))
}

// CompleteTodo marks a todo as done.
func (h *TodoHandler) CompleteTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	todo, ok := todoFromContext(c)
	if !ok {
		return
	}

	updated, err := h.todoService.Complete(userID, todo.ID)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTO(*updated))
}

// UncompleteTodo marks a todo as pending again.
func (h *TodoHandler) UncompleteTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	todo, ok := todoFromContext(c)
	if !ok {
		return
	}

	updated, err := h.todoService.Uncomplete(userID, todo.ID)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTO(*updated))
}

// DeleteTodo permanently removes a todo.
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	todo, ok := todoFromContext(c)
	if !ok {
		return
	}

	if err := h.todoService.Delete(userID, todo.ID); err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Todo deleted successfully",
	})
}

func todoFromContext(c *gin.Context) (models.Todo, bool) {
	todoInterface, exists := c.Get("todo")
	if !exists {
		apierrors.InternalError(c, "Todo not found in context")
		return models.Todo{}, false
	}

	todo, ok := todoInterface.(models.Todo)
	if !ok {
		apierrors.InternalError(c, "Invalid todo data")
		return models.Todo{}, false
	}

	return todo, true
}

func respondTodoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyContent):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrContentTooLong):
		apierrors.BadRequest(c, fmt.Sprintf("Content must be at most %d characters", constants.MaxContentLength))
	case errors.Is(err, services.ErrInvalidFilter):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTodoNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		// Store failures keep their detail in the server log only
		log.Printf("todo handler: %v", err)
		apierrors.InternalError(c, "")
	}
}
