package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// registerLoadData POST /api/load-data
func (a *API) registerLoadData() {
	a.router.POST("/api/load-data", func(c *gin.Context) {
		rep, err := a.loader.LoadAll(a.ctx)
		if err != nil {
			a.logger.Errorf("Failed to load data: %s.", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error loading data from remote source"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "data loaded successfully",
			"users":   rep.Users,
			"posts":   rep.Posts,
		})
	})
}
