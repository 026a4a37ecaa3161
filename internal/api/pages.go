package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v4"

	"github.com/avoronova/postmirror/internal/storage/entity"
)

// registerPages serves the HTML listings. Both listing pages use the
// eager-joined queries so rendering never triggers follow-up lookups.
func (a *API) registerPages() {
	a.router.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{})
	})

	a.router.GET("/users", func(c *gin.Context) {
		var users []*entity.UserWithPostCount
		if err := a.storage.Begin(a.ctx, func(tx pgx.Tx) error {
			var err error
			users, err = entity.FindUsersWithPostCounts(a.ctx, tx)
			return err
		}); err != nil {
			a.logger.Errorf("Failed to render users page: %s.", err)
			c.String(http.StatusInternalServerError, "error listing users")
			return
		}

		c.HTML(http.StatusOK, "users.html", gin.H{"users": users})
	})

	a.router.GET("/posts", func(c *gin.Context) {
		var posts []*entity.PostWithAuthor
		if err := a.storage.Begin(a.ctx, func(tx pgx.Tx) error {
			var err error
			posts, err = entity.FindPostsWithAuthors(a.ctx, tx)
			return err
		}); err != nil {
			a.logger.Errorf("Failed to render posts page: %s.", err)
			c.String(http.StatusInternalServerError, "error listing posts")
			return
		}

		c.HTML(http.StatusOK, "posts.html", gin.H{"posts": posts})
	})
}
