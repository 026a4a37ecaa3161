package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v4"

	"github.com/avoronova/postmirror/internal/storage/entity"
)

var errUserNotFound = errors.New("user not found")

// registerGetPosts GET /api/posts
func (a *API) registerGetPosts() {
	a.router.GET("/api/posts", func(c *gin.Context) {
		var posts []*entity.Post
		if err := a.storage.Begin(a.ctx, func(tx pgx.Tx) error {
			var err error
			posts, err = entity.FindPosts(a.ctx, tx)
			return err
		}); err != nil {
			a.logger.Errorf("Failed to list posts: %s.", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error listing posts"})
			return
		}

		c.JSON(http.StatusOK, wrapPosts(posts))
	})
}

// registerCreatePost POST /api/posts
func (a *API) registerCreatePost() {
	type createPostRequest struct {
		UserID entity.ID `json:"user_id" binding:"required"`
		Title  string    `json:"title" binding:"required"`
		Body   string    `json:"body" binding:"required"`
	}

	a.router.POST("/api/posts", func(c *gin.Context) {
		var req createPostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var p *entity.Post
		err := a.storage.Begin(a.ctx, func(tx pgx.Tx) error {
			exists, err := entity.UserExists(a.ctx, tx, req.UserID)
			if err != nil {
				return err
			}
			if !exists {
				return errUserNotFound
			}

			maxID, err := entity.MaxPostID(a.ctx, tx)
			if err != nil {
				return err
			}

			p = entity.NewPost(maxID+1, req.UserID, req.Title, req.Body)
			return entity.CreatePost(a.ctx, tx, p)
		})
		if errors.Is(err, errUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		if err != nil {
			a.logger.Errorf("Failed to create post: %s.", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error creating post"})
			return
		}

		c.JSON(http.StatusCreated, wrapPost(p))
	})
}

// registerGetUserPosts GET /api/users/:id/posts
func (a *API) registerGetUserPosts() {
	a.router.GET("/api/users/:id/posts", func(c *gin.Context) {
		var param struct {
			ID entity.ID `uri:"id" binding:"required"`
		}
		if err := c.ShouldBindUri(&param); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var posts []*entity.Post
		err := a.storage.Begin(a.ctx, func(tx pgx.Tx) error {
			exists, err := entity.UserExists(a.ctx, tx, param.ID)
			if err != nil {
				return err
			}
			if !exists {
				return errUserNotFound
			}

			posts, err = entity.FindUserPosts(a.ctx, tx, param.ID)
			return err
		})
		if errors.Is(err, errUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		if err != nil {
			a.logger.Errorf("Failed to list posts for user %d: %s.", param.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error listing posts"})
			return
		}

		c.JSON(http.StatusOK, wrapPosts(posts))
	})
}
