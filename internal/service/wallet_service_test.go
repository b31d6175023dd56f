package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"lending_backend/internal/domain"
)

func TestSettlementBuffer(t *testing.T) {
	cases := []struct {
		total, verified int64
		want            int
	}{
		{0, 0, 0},
		{3, 1, 33},
		{3, 2, 67},
		{8, 1, 12}, // 12.5 rounds to even
		{8, 3, 38}, // 37.5 rounds to even
		{4, 4, 100},
	}
	for _, tc := range cases {
		if got := settlementBuffer(tc.total, tc.verified); got != tc.want {
			t.Fatalf("settlementBuffer(%d,%d) = %d; want %d", tc.total, tc.verified, got, tc.want)
		}
	}
}

func TestWalletOverview_NoWallet(t *testing.T) {
	m := &memLedger{}
	s := NewWalletService(memWallets{m}, memPayments{m})

	if _, err := s.Overview(context.Background(), user); !errors.Is(err, ErrWalletNotFound) {
		t.Fatalf("expected ErrWalletNotFound, got %v", err)
	}
}

func TestWalletOverview(t *testing.T) {
	now := time.Now()
	m := &memLedger{
		wallets: []domain.Wallet{{ID: 1, UserID: 1, Balance: dec("3620000.00"), Currency: "IRR", Status: domain.WalletStatusActive}},
		tickets: []domain.Ticket{
			{ID: 1, AssetName: "Dell XPS 15", BorrowerID: 1, LenderID: 2},
			{ID: 2, AssetName: "Canon EOS R6", BorrowerID: 1, LenderID: 2},
			{ID: 3, AssetName: "MacBook Pro 14", BorrowerID: 2, LenderID: 1},
		},
		payments: []domain.Payment{
			{ID: 1, TicketID: 1, Authority: "AUTH-0001", Amount: dec("550000.00"), Status: domain.PaymentStatusVerified, CreatedAt: now.Add(-3 * time.Hour), TicketAsset: "Dell XPS 15"},
			{ID: 2, TicketID: 2, Authority: "AUTH-0002", Amount: dec("820000.00"), Status: domain.PaymentStatusInitiated, CreatedAt: now.Add(-2 * time.Hour), TicketAsset: "Canon EOS R6"},
			{ID: 3, TicketID: 3, Authority: "AUTH-0003", Amount: dec("960000.00"), Status: domain.PaymentStatusFailed, CreatedAt: now.Add(-1 * time.Hour), TicketAsset: "MacBook Pro 14"},
		},
	}
	s := NewWalletService(memWallets{m}, memPayments{m})

	ov, err := s.Overview(context.Background(), user)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}

	w := ov.Wallet
	if w.Balance != 3620000 || w.Currency != "IRR" || w.Status != domain.WalletStatusActive {
		t.Fatalf("unexpected wallet summary: %+v", w)
	}
	if w.SettlementBuffer != 33 {
		t.Fatalf("expected settlement buffer 33, got %d", w.SettlementBuffer)
	}
	if w.UpcomingPayouts != 820000 {
		t.Fatalf("expected upcoming 820000, got %v", w.UpcomingPayouts)
	}

	if len(ov.Transactions) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(ov.Transactions))
	}
	wantTypes := []string{"Payout", "Top-up", "Settlement"}
	for i, tx := range ov.Transactions {
		if tx.Type != wantTypes[i] {
			t.Fatalf("transaction %d type = %s; want %s", i, tx.Type, wantTypes[i])
		}
	}
	first := ov.Transactions[0]
	if first.Reference != "AUTH-0003" || first.TicketAsset != "MacBook Pro 14" || first.StatusLabel != "Failed" {
		t.Fatalf("unexpected newest transaction: %+v", first)
	}
}
