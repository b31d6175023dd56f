package ws

import (
	"context"
	"net/http"

	"lending_backend/internal/http/middleware"
	"lending_backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// HandleDashboard upgrades an authenticated request (see middleware.QueryJWT)
// and streams the user's dashboard until the connection ends.
func HandleDashboard(hub *Hub, allowedOrigin string) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}

	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token required"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.WithContext(c.Request.Context()).Warn("ws upgrade error", "error", err)
			return
		}

		NewClient(user, conn, hub).Run(context.WithoutCancel(c.Request.Context()))
	}
}
