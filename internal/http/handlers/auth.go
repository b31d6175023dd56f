package handlers

import (
	"errors"
	"net/http"

	"lending_backend/internal/domain"
	"lending_backend/internal/logger"
	"lending_backend/internal/service"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
		return
	}

	ctx := c.Request.Context()
	user, token, err := h.Auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.Audit.LogLoginFailed(ctx, req.Email, c.ClientIP(), c.Request.UserAgent())
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		logger.WithContext(ctx).Error("login failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	h.Audit.LogLogin(ctx, user.ID, c.ClientIP(), c.Request.UserAgent())
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  userJSON(user),
	})
}

func userJSON(u *domain.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"email":     u.Email,
		"firstName": u.FirstName,
		"lastName":  u.LastName,
		"fullName":  u.DisplayName(),
		"role":      u.Role,
		"roleLabel": u.Role.Label(),
		"createdAt": u.CreatedAt,
	}
}
