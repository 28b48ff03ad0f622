package handlers

import (
	"net/http"

	"deskhive/utils"

	"github.com/gin-gonic/gin"
)

// Health handles GET /health with the latest stored dependency snapshot.
func Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Mongo {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
