package handlers

import (
	"net/http"
	"time"

	"lending_backend/internal/domain"
	"lending_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

type TicketResponse struct {
	ID          int64               `json:"id"`
	AssetName   string              `json:"assetName"`
	Status      domain.TicketStatus `json:"status"`
	StatusLabel string              `json:"statusLabel"`
	Borrower    string              `json:"borrower"`
	Lender      string              `json:"lender"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// ListTickets returns every ticket the user borrows or lends, most recently updated first
func (h *Handler) ListTickets(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	tickets, err := h.Tickets.ListForUser(c.Request.Context(), user.ID)
	if err != nil {
		logger.WithContext(c.Request.Context()).Error("list tickets failed", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tickets"})
		return
	}

	out := make([]TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, TicketResponse{
			ID:          t.ID,
			AssetName:   t.AssetName,
			Status:      t.Status,
			StatusLabel: t.Status.Label(),
			Borrower:    t.Borrower.DisplayName(),
			Lender:      t.Lender.DisplayName(),
			UpdatedAt:   t.UpdatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}
