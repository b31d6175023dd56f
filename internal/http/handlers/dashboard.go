package handlers

import (
	"net/http"

	"lending_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// GetDashboard returns the reporting snapshot of the current user
func (h *Handler) GetDashboard(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	snap, err := h.Dashboard.Snapshot(c.Request.Context(), user)
	if err != nil {
		logger.WithContext(c.Request.Context()).Error("dashboard snapshot failed", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard"})
		return
	}
	c.JSON(http.StatusOK, snap)
}
