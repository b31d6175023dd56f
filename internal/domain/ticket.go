package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TicketStatus is the lifecycle state of a lending ticket
type TicketStatus string

const (
	TicketStatusPending   TicketStatus = "pending"
	TicketStatusAccepted  TicketStatus = "accepted"
	TicketStatusActive    TicketStatus = "active"
	TicketStatusCompleted TicketStatus = "completed"
	TicketStatusCancelled TicketStatus = "cancelled"
)

func (s TicketStatus) Label() string {
	switch s {
	case TicketStatusPending:
		return "Pending"
	case TicketStatusAccepted:
		return "Accepted"
	case TicketStatusActive:
		return "Active"
	case TicketStatusCompleted:
		return "Completed"
	case TicketStatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// Ticket is a lending agreement between a borrower and a lender.
// Borrower and lender are expected to differ but it is not enforced here.
type Ticket struct {
	ID           int64            `db:"id" json:"id"`
	AssetName    string           `db:"asset_name" json:"asset_name"`
	BorrowerID   int64            `db:"borrower_id" json:"borrower_id"`
	LenderID     int64            `db:"lender_id" json:"lender_id"`
	Price        *decimal.Decimal `db:"price" json:"price,omitempty"`
	DurationDays *int32           `db:"duration_days" json:"duration_days,omitempty"`
	Status       TicketStatus     `db:"status" json:"status"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time        `db:"updated_at" json:"updated_at"`
}

// TicketWithParties is a ticket joined with both users, used for listings
type TicketWithParties struct {
	Ticket
	Borrower User `json:"borrower"`
	Lender   User `json:"lender"`
}
