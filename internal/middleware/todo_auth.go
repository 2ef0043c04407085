package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mytodo/mytodo-api/internal/database"
	apierrors "github.com/mytodo/mytodo-api/internal/errors"
	"github.com/mytodo/mytodo-api/internal/models"
)

// RequireTodoOwner checks that the todo in the URL exists and belongs
// to the current user, and stores it in the context for the handler.
func RequireTodoOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		todoIDStr := c.Param("id")
		todoID, err := strconv.ParseUint(todoIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid todo ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var todo models.Todo
		if err := database.GetDB().First(&todo, todoID).Error; err != nil {
			apierrors.NotFound(c, "Todo not found")
			c.Abort()
			return
		}

		// Return 404 instead of 403 to avoid leaking todo existence
		if todo.UserID != userID {
			apierrors.NotFound(c, "Todo not found")
			c.Abort()
			return
		}

		c.Set("todo", todo)
		c.Next()
	}
}
