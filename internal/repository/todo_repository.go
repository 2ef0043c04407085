package repository

import (
	"github.com/mytodo/mytodo-api/internal/database"
	"github.com/mytodo/mytodo-api/internal/models"
	"github.com/mytodo/mytodo-api/internal/utils"
	"gorm.io/gorm"
)

// GormTodoRepository is a GORM implementation of TodoRepository
type GormTodoRepository struct {
	db *gorm.DB
}

// NewTodoRepository creates a new TodoRepository
func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &GormTodoRepository{db: db}
}

// Create creates a new todo
func (r *GormTodoRepository) Create(todo *models.Todo) error {
	return r.db.Create(todo).Error
}

// FindByID finds a todo by ID
func (r *GormTodoRepository) FindByID(id uint64) (*models.Todo, error) {
	var todo models.Todo
	if err := r.db.First(&todo, id).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

// List retrieves an owner's todos with filtering and pagination
func (r *GormTodoRepository) List(filter TodoFilter) ([]models.Todo, int64, error) {
	var todos []models.Todo

	query := r.db.Model(&models.Todo{}).Where("user_id = ?", filter.OwnerID)

	if filter.Completed != nil {
		query = query.Where("completed = ?", *filter.Completed)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("created_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}))
	}

	if err := listQuery.Find(&todos).Error; err != nil {
		return nil, 0, err
	}

	return todos, total, nil
}

// CountsByOwner computes aggregate counts over the owner's full todo set
func (r *GormTodoRepository) CountsByOwner(ownerID uint64) (TodoCounts, error) {
	var counts TodoCounts

	if err := r.db.Model(&models.Todo{}).
		Where("user_id = ?", ownerID).
		Count(&counts.Total).Error; err != nil {
		return TodoCounts{}, err
	}

	if err := r.db.Model(&models.Todo{}).
		Where("user_id = ? AND completed = ?", ownerID, true).
		Count(&counts.Completed).Error; err != nil {
		return TodoCounts{}, err
	}

	counts.Pending = counts.Total - counts.Completed
	return counts, nil
}

// Update updates a todo
func (r *GormTodoRepository) Update(todo *models.Todo) error {
	return r.db.Save(todo).Error
}

// Delete permanently removes a todo
func (r *GormTodoRepository) Delete(id uint64) error {
	res := r.db.Delete(&models.Todo{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
