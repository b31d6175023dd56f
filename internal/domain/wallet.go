package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is used for wallets and for users without a wallet
const DefaultCurrency = "IRR"

// WalletStatus represents whether a wallet can move funds
type WalletStatus string

const (
	WalletStatusActive WalletStatus = "active"
	WalletStatusFrozen WalletStatus = "frozen"
)

func (s WalletStatus) Label() string {
	switch s {
	case WalletStatusActive:
		return "Active"
	case WalletStatusFrozen:
		return "Frozen"
	default:
		return string(s)
	}
}

// Wallet holds a user's balance. A user has at most one wallet.
type Wallet struct {
	ID        int64           `db:"id" json:"id"`
	UserID    int64           `db:"user_id" json:"user_id"`
	Balance   decimal.Decimal `db:"balance" json:"balance"`
	Currency  string          `db:"currency" json:"currency"`
	Status    WalletStatus    `db:"status" json:"status"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// WalletSummary is the wallet block of the wallet overview
type WalletSummary struct {
	Balance          float64      `json:"balance"`
	Currency         string       `json:"currency"`
	Status           WalletStatus `json:"status"`
	SettlementBuffer int          `json:"settlementBuffer"`
	UpcomingPayouts  float64      `json:"upcomingPayouts"`
}

// WalletTransaction is a payment shown in the wallet overview
type WalletTransaction struct {
	ID          int64         `json:"id"`
	Reference   string        `json:"reference"`
	TicketID    int64         `json:"ticketId"`
	TicketAsset string        `json:"ticketAsset"`
	Type        string        `json:"type"`
	Amount      float64       `json:"amount"`
	Status      PaymentStatus `json:"status"`
	StatusLabel string        `json:"statusLabel"`
	CreatedAt   time.Time     `json:"createdAt"`
}

type WalletOverview struct {
	Wallet       WalletSummary       `json:"wallet"`
	Transactions []WalletTransaction `json:"transactions"`
}
