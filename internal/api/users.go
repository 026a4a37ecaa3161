package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v4"

	"github.com/avoronova/postmirror/internal/storage/entity"
)

// registerGetUsers GET /api/users
func (a *API) registerGetUsers() {
	a.router.GET("/api/users", func(c *gin.Context) {
		var users []*entity.User
		if err := a.storage.Begin(a.ctx, func(tx pgx.Tx) error {
			var err error
			users, err = entity.FindUsers(a.ctx, tx)
			return err
		}); err != nil {
			a.logger.Errorf("Failed to list users: %s.", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error listing users"})
			return
		}

		c.JSON(http.StatusOK, wrapUsers(users))
	})
}

// registerCreateUser POST /api/users
func (a *API) registerCreateUser() {
	type createUserRequest struct {
		Name     string `json:"name" binding:"required"`
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required"`
	}

	a.router.POST("/api/users", func(c *gin.Context) {
		var req createUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var u *entity.User
		if err := a.storage.Begin(a.ctx, func(tx pgx.Tx) error {
			maxID, err := entity.MaxUserID(a.ctx, tx)
			if err != nil {
				return err
			}

			u = entity.NewUser(maxID+1, req.Name, req.Username, req.Email)
			return entity.CreateUser(a.ctx, tx, u)
		}); err != nil {
			a.logger.Errorf("Failed to create user: %s.", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error creating user"})
			return
		}

		c.JSON(http.StatusCreated, wrapUser(u))
	})
}
