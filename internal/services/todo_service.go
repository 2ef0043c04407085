package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mytodo/mytodo-api/internal/constants"
	"github.com/mytodo/mytodo-api/internal/models"
	"github.com/mytodo/mytodo-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTodoNotFound      = errors.New("todo not found")
	ErrEmptyContent      = errors.New("content must not be empty")
	ErrContentTooLong    = errors.New("content too long")
	ErrInvalidFilter     = errors.New("invalid filter")
	ErrFailedToSaveTodo  = errors.New("failed to save todo")
	ErrFailedToListTodos = errors.New("failed to list todos")
)

// Filter values accepted by List.
const (
	FilterAll       = "all"
	FilterCompleted = "completed"
	FilterPending   = "pending"
)

// TodoService handles todo business logic. Every method is scoped to
// the owner identity passed in; a todo owned by someone else behaves
// exactly like a missing one.
type TodoService struct {
	todoRepo repository.TodoRepository
}

// NewTodoService creates a new TodoService.
func NewTodoService(todoRepo repository.TodoRepository) *TodoService {
	return &TodoService{
		todoRepo: todoRepo,
	}
}

// ListResult bundles a filtered page of todos with aggregate counts
// computed over the owner's full todo set.
type ListResult struct {
	Todos  []models.Todo
	Counts repository.TodoCounts
	Total  int64
}

// List returns the owner's todos, newest first, narrowed by filter.
func (s *TodoService) List(ownerID uint64, filter string, page, pageSize int) (*ListResult, error) {
	todoFilter := repository.TodoFilter{
		OwnerID:  ownerID,
		Page:     page,
		PageSize: pageSize,
	}

	switch filter {
	case "", FilterAll:
	case FilterCompleted:
		completed := true
		todoFilter.Completed = &completed
	case FilterPending:
		completed := false
		todoFilter.Completed = &completed
	default:
		return nil, ErrInvalidFilter
	}

	todos, total, err := s.todoRepo.List(todoFilter)
	if err != nil {
		return nil, ErrFailedToListTodos
	}

	counts, err := s.todoRepo.CountsByOwner(ownerID)
	if err != nil {
		return nil, ErrFailedToListTodos
	}

	return &ListResult{
		Todos:  todos,
		Counts: counts,
		Total:  total,
	}, nil
}

// Add creates a new pending todo for the owner.
func (s *TodoService) Add(ownerID uint64, content string) (*models.Todo, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}

	todo := &models.Todo{
		UserID:  ownerID,
		Content: content,
	}

	if err := s.todoRepo.Create(todo); err != nil {
		return nil, ErrFailedToSaveTodo
	}

	return todo, nil
}

// Get returns a single owned todo.
func (s *TodoService) Get(ownerID, id uint64) (*models.Todo, error) {
	return s.findOwned(ownerID, id)
}

// Edit replaces the content of an owned todo. Completion state and
// creation time are untouched.
func (s *TodoService) Edit(ownerID, id uint64, content string) (*models.Todo, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}

	todo, err := s.findOwned(ownerID, id)
	if err != nil {
		return nil, err
	}

	todo.Content = content
	if err := s.todoRepo.Update(todo); err != nil {
		return nil, ErrFailedToSaveTodo
	}

	return todo, nil
}

// Complete marks an owned todo as done and stamps completed_at.
// Completing an already-completed todo succeeds and re-stamps.
func (s *TodoService) Complete(ownerID, id uint64) (*models.Todo, error) {
	todo, err := s.findOwned(ownerID, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	todo.Completed = true
	todo.CompletedAt = &now
	if err := s.todoRepo.Update(todo); err != nil {
		return nil, ErrFailedToSaveTodo
	}

	return todo, nil
}

// Uncomplete marks an owned todo as pending and clears completed_at.
func (s *TodoService) Uncomplete(ownerID, id uint64) (*models.Todo, error) {
	todo, err := s.findOwned(ownerID, id)
	if err != nil {
		return nil, err
	}

	todo.Completed = false
	todo.CompletedAt = nil
	if err := s.todoRepo.Update(todo); err != nil {
		return nil, ErrFailedToSaveTodo
	}

	return todo, nil
}

// Delete permanently removes an owned todo.
func (s *TodoService) Delete(ownerID, id uint64) error {
	if _, err := s.findOwned(ownerID, id); err != nil {
		return err
	}

	if err := s.todoRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTodoNotFound
		}
		return ErrFailedToSaveTodo
	}

	return nil
}

func (s *TodoService) findOwned(ownerID, id uint64) (*models.Todo, error) {
	todo, err := s.todoRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}

	// A foreign todo is reported as missing, not forbidden, so ids
	// cannot be probed across accounts.
	if todo.UserID != ownerID {
		return nil, ErrTodoNotFound
	}

	return todo, nil
}

func validateContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > constants.MaxContentLength {
		return "", ErrContentTooLong
	}
	return content, nil
}
