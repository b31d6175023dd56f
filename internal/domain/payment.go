package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents gateway payment state
type PaymentStatus string

const (
	PaymentStatusInitiated PaymentStatus = "initiated"
	PaymentStatusVerified  PaymentStatus = "verified"
	PaymentStatusFailed    PaymentStatus = "failed"
)

func (s PaymentStatus) Label() string {
	switch s {
	case PaymentStatusInitiated:
		return "Initiated"
	case PaymentStatusVerified:
		return "Verified"
	case PaymentStatusFailed:
		return "Failed"
	default:
		return string(s)
	}
}

// Payment is the gateway payment of a ticket (one per ticket).
// Authority is the gateway token and is globally unique.
type Payment struct {
	ID         int64           `db:"id" json:"id"`
	TicketID   int64           `db:"ticket_id" json:"ticket_id"`
	Authority  string          `db:"authority" json:"authority"`
	RefID      *int64          `db:"ref_id" json:"ref_id,omitempty"`
	Amount     decimal.Decimal `db:"amount" json:"amount"`
	Status     PaymentStatus   `db:"status" json:"status"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
	VerifiedAt *time.Time      `db:"verified_at" json:"verified_at,omitempty"`

	// TicketAsset is filled by queries that join the ticket
	TicketAsset string `db:"ticket_asset" json:"ticket_asset,omitempty"`
}

// DailyTotal is a summed amount for one calendar day
type DailyTotal struct {
	Day   time.Time
	Total decimal.Decimal
}
