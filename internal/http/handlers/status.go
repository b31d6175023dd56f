package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Status is the unauthenticated heartbeat of one API area
func Status(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": service, "status": "ok"})
	}
}
