package repository

import (
	"github.com/mytodo/mytodo-api/internal/models"
)

// TodoFilter holds filtering options for listing todos
type TodoFilter struct {
	OwnerID   uint64
	Completed *bool
	Page      int
	PageSize  int
}

// TodoCounts holds aggregate counts over a user's full todo set
type TodoCounts struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
	Pending   int64 `json:"pending"`
}

// TodoRepository defines the interface for todo data access
type TodoRepository interface {
	// Create creates a new todo
	Create(todo *models.Todo) error

	// FindByID finds a todo by ID
	FindByID(id uint64) (*models.Todo, error)

	// List retrieves an owner's todos, newest first, with optional
	// completion filtering and pagination
	List(filter TodoFilter) ([]models.Todo, int64, error)

	// CountsByOwner computes total/completed/pending over the owner's
	// full (unfiltered) todo set
	CountsByOwner(ownerID uint64) (TodoCounts, error)

	// Update updates a todo
	Update(todo *models.Todo) error

	// Delete permanently removes a todo
	Delete(id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// DeleteWithTodos removes a user and all owned todos within a
	// single transaction
	DeleteWithTodos(id uint64) error
}
