package services

import (
	"testing"
	"time"

	"github.com/mytodo/mytodo-api/internal/models"
	"github.com/mytodo/mytodo-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTodoService(t *testing.T) (*TodoService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.Todo{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewTodoService(repository.NewTodoRepository(db)), db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// completed and completed_at must agree after every mutation
func requireCompletionInvariant(t *testing.T, db *gorm.DB, id uint64) {
	t.Helper()

	var todo models.Todo
	require.NoError(t, db.First(&todo, id).Error)
	if todo.Completed {
		require.NotNil(t, todo.CompletedAt)
	} else {
		require.Nil(t, todo.CompletedAt)
	}
}

func TestTodoService_CompletionInvariant(t *testing.T) {
	svc, db := setupTodoService(t)
	user := createUser(t, db, "alice")

	todo, err := svc.Add(user.ID, "write tests")
	require.NoError(t, err)
	require.False(t, todo.Completed)
	requireCompletionInvariant(t, db, todo.ID)

	completed, err := svc.Complete(user.ID, todo.ID)
	require.NoError(t, err)
	require.True(t, completed.Completed)
	requireCompletionInvariant(t, db, todo.ID)

	pending, err := svc.Uncomplete(user.ID, todo.ID)
	require.NoError(t, err)
	require.False(t, pending.Completed)
	require.Nil(t, pending.CompletedAt)
	requireCompletionInvariant(t, db, todo.ID)
}

func TestTodoService_Complete_RestampsWhenAlreadyCompleted(t *testing.T) {
	svc, db := setupTodoService(t)
	user := createUser(t, db, "alice")

	todo, err := svc.Add(user.ID, "repeat after me")
	require.NoError(t, err)

	first, err := svc.Complete(user.ID, todo.ID)
	require.NoError(t, err)
	require.NotNil(t, first.CompletedAt)

	time.Sleep(10 * time.Millisecond)

	second, err := svc.Complete(user.ID, todo.ID)
	require.NoError(t, err)
	require.True(t, second.Completed)
	require.NotNil(t, second.CompletedAt)
	require.False(t, second.CompletedAt.Before(*first.CompletedAt))
}

func TestTodoService_OwnershipIsolation(t *testing.T) {
	svc, db := setupTodoService(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	todo, err := svc.Add(alice.ID, "alice's plans")
	require.NoError(t, err)

	_, err = svc.Get(bob.ID, todo.ID)
	require.ErrorIs(t, err, ErrTodoNotFound)

	_, err = svc.Edit(bob.ID, todo.ID, "hijacked")
	require.ErrorIs(t, err, ErrTodoNotFound)

	_, err = svc.Complete(bob.ID, todo.ID)
	require.ErrorIs(t, err, ErrTodoNotFound)

	err = svc.Delete(bob.ID, todo.ID)
	require.ErrorIs(t, err, ErrTodoNotFound)

	// Bob's list never includes Alice's todo
	result, err := svc.List(bob.ID, FilterAll, 0, 0)
	require.NoError(t, err)
	require.Empty(t, result.Todos)

	// And Alice's record is unchanged
	stored, err := svc.Get(alice.ID, todo.ID)
	require.NoError(t, err)
	require.Equal(t, "alice's plans", stored.Content)
	require.False(t, stored.Completed)
}

func TestTodoService_List_OrderAndCounts(t *testing.T) {
	svc, db := setupTodoService(t)
	user := createUser(t, db, "alice")

	// Insert with explicit creation times so ordering is deterministic
	base := time.Now().Add(-time.Hour)
	for i, content := range []string{"oldest", "middle", "newest"} {
		todo := &models.Todo{
			UserID:    user.ID,
			Content:   content,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(todo).Error)
	}

	result, err := svc.List(user.ID, FilterAll, 0, 0)
	require.NoError(t, err)
	require.Len(t, result.Todos, 3)
	require.Equal(t, "newest", result.Todos[0].Content)
	require.Equal(t, "oldest", result.Todos[2].Content)

	_, err = svc.Complete(user.ID, result.Todos[0].ID)
	require.NoError(t, err)

	result, err = svc.List(user.ID, FilterPending, 0, 0)
	require.NoError(t, err)
	require.Len(t, result.Todos, 2)
	require.EqualValues(t, 3, result.Counts.Total)
	require.EqualValues(t, 1, result.Counts.Completed)
	require.EqualValues(t, 2, result.Counts.Pending)
	require.Equal(t, result.Counts.Total, result.Counts.Completed+result.Counts.Pending)
}

func TestTodoService_List_Pagination(t *testing.T) {
	svc, db := setupTodoService(t)
	user := createUser(t, db, "alice")

	base := time.Now().Add(-time.Hour)
	for i, content := range []string{"first", "second", "third", "fourth", "fifth"} {
		todo := &models.Todo{
			UserID:    user.ID,
			Content:   content,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(todo).Error)
	}

	page1, err := svc.List(user.ID, FilterAll, 1, 2)
	require.NoError(t, err)
	require.Len(t, page1.Todos, 2)
	require.Equal(t, "fifth", page1.Todos[0].Content)
	require.Equal(t, "fourth", page1.Todos[1].Content)
	require.EqualValues(t, 5, page1.Total)

	page3, err := svc.List(user.ID, FilterAll, 3, 2)
	require.NoError(t, err)
	require.Len(t, page3.Todos, 1)
	require.Equal(t, "first", page3.Todos[0].Content)

	// Counts still cover the whole set, not the page
	require.EqualValues(t, 5, page3.Counts.Total)
}

func TestTodoService_List_InvalidFilter(t *testing.T) {
	svc, db := setupTodoService(t)
	user := createUser(t, db, "alice")

	_, err := svc.List(user.ID, "finished", 0, 0)
	require.ErrorIs(t, err, ErrInvalidFilter)
}

func TestTodoService_Edit_PreservesCompletionAndCreation(t *testing.T) {
	svc, db := setupTodoService(t)
	user := createUser(t, db, "alice")

	todo, err := svc.Add(user.ID, "original")
	require.NoError(t, err)
	_, err = svc.Complete(user.ID, todo.ID)
	require.NoError(t, err)

	edited, err := svc.Edit(user.ID, todo.ID, "rewritten")
	require.NoError(t, err)
	require.Equal(t, "rewritten", edited.Content)
	require.True(t, edited.Completed)
	require.NotNil(t, edited.CompletedAt)
	require.Equal(t, todo.CreatedAt.Unix(), edited.CreatedAt.Unix())
}

func TestTodoService_DeleteTwice(t *testing.T) {
	svc, db := setupTodoService(t)
	user := createUser(t, db, "alice")

	todo, err := svc.Add(user.ID, "ephemeral")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(user.ID, todo.ID))

	err = svc.Delete(user.ID, todo.ID)
	require.ErrorIs(t, err, ErrTodoNotFound)

	var count int64
	db.Model(&models.Todo{}).Count(&count)
	require.EqualValues(t, 0, count)
}
