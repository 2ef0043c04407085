package dto

import (
	"time"

	"github.com/mytodo/mytodo-api/internal/models"
	"github.com/mytodo/mytodo-api/internal/repository"
	"github.com/mytodo/mytodo-api/internal/utils"
)

// TodoDTO represents a todo in API responses
type TodoDTO struct {
	ID          uint64     `json:"id"`
	Content     string     `json:"content"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// TodoListResponse represents the dashboard listing: a filtered page of
// todos plus counts over the caller's full set
type TodoListResponse struct {
	Todos      []TodoDTO                `json:"todos"`
	Filter     string                   `json:"filter"`
	Counts     repository.TodoCounts    `json:"counts"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToTodoDTO converts a Todo model to TodoDTO
func ToTodoDTO(todo models.Todo) TodoDTO {
	return TodoDTO{
		ID:          todo.ID,
		Content:     todo.Content,
		Completed:   todo.Completed,
		CreatedAt:   todo.CreatedAt,
		CompletedAt: todo.CompletedAt,
	}
}

// ToTodoListResponse converts a page of todos to TodoListResponse
func ToTodoListResponse(todos []models.Todo, filter string, counts repository.TodoCounts, params utils.PaginationParams, total int64) TodoListResponse {
	items := make([]TodoDTO, len(todos))
	for i, todo := range todos {
		items[i] = ToTodoDTO(todo)
	}

	return TodoListResponse{
		Todos:  items,
		Filter: filter,
		Counts: counts,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	}
}
