package handlers

import (
	"net/http"
	"time"

	"lending_backend/internal/domain"
	"lending_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

const recentNotificationsLimit = 10

type NotificationResponse struct {
	ID           int64                      `json:"id"`
	Channel      domain.NotificationChannel `json:"channel"`
	ChannelLabel string                     `json:"channelLabel"`
	Status       domain.NotificationStatus  `json:"status"`
	StatusLabel  string                     `json:"statusLabel"`
	Message      string                     `json:"message"`
	CreatedAt    time.Time                  `json:"createdAt"`
}

func (h *Handler) RecentNotifications(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	items, err := h.Notifications.RecentForUser(c.Request.Context(), user.ID, recentNotificationsLimit)
	if err != nil {
		logger.WithContext(c.Request.Context()).Error("recent notifications failed", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load notifications"})
		return
	}

	out := make([]NotificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, NotificationResponse{
			ID:           n.ID,
			Channel:      n.Channel,
			ChannelLabel: n.Channel.Label(),
			Status:       n.Status,
			StatusLabel:  n.Status.Label(),
			Message:      n.Message,
			CreatedAt:    n.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}
