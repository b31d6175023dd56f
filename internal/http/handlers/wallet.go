package handlers

import (
	"errors"
	"net/http"

	"lending_backend/internal/logger"
	"lending_backend/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) WalletOverview(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	overview, err := h.Wallets.Overview(c.Request.Context(), user)
	if err != nil {
		if errors.Is(err, service.ErrWalletNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found for user"})
			return
		}
		logger.WithContext(c.Request.Context()).Error("wallet overview failed", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wallet"})
		return
	}
	c.JSON(http.StatusOK, overview)
}
