package service

import (
	"context"
	"errors"
	"math"

	"lending_backend/internal/domain"

	"github.com/shopspring/decimal"
)

const walletTransactionsLimit = 10

var ErrWalletNotFound = errors.New("wallet not found for user")

// PaymentLedger is the part of the payment repository the wallet overview reads
type PaymentLedger interface {
	SumByStatus(ctx context.Context, userID int64, status domain.PaymentStatus) (decimal.Decimal, error)
	RecentForUser(ctx context.Context, userID int64, limit int) ([]domain.Payment, error)
	CountForUser(ctx context.Context, userID int64) (total, verified int64, err error)
}

type WalletService struct {
	wallets  WalletReader
	payments PaymentLedger
}

func NewWalletService(wallets WalletReader, payments PaymentLedger) *WalletService {
	return &WalletService{wallets: wallets, payments: payments}
}

// Overview returns the wallet summary and the latest payments of user.
// Unlike the dashboard, a missing wallet is reported as ErrWalletNotFound.
func (s *WalletService) Overview(ctx context.Context, user *domain.User) (*domain.WalletOverview, error) {
	wallet, err := s.wallets.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, wrap("load wallet", err)
	}
	if wallet == nil {
		return nil, ErrWalletNotFound
	}

	total, verified, err := s.payments.CountForUser(ctx, user.ID)
	if err != nil {
		return nil, wrap("count payments", err)
	}

	upcoming, err := s.payments.SumByStatus(ctx, user.ID, domain.PaymentStatusInitiated)
	if err != nil {
		return nil, wrap("sum upcoming payouts", err)
	}

	payments, err := s.payments.RecentForUser(ctx, user.ID, walletTransactionsLimit)
	if err != nil {
		return nil, wrap("load payments", err)
	}

	transactions := make([]domain.WalletTransaction, 0, len(payments))
	for _, p := range payments {
		transactions = append(transactions, domain.WalletTransaction{
			ID:          p.ID,
			Reference:   p.Authority,
			TicketID:    p.TicketID,
			TicketAsset: p.TicketAsset,
			Type:        transactionType(p.Status),
			Amount:      p.Amount.InexactFloat64(),
			Status:      p.Status,
			StatusLabel: p.Status.Label(),
			CreatedAt:   p.CreatedAt,
		})
	}

	return &domain.WalletOverview{
		Wallet: domain.WalletSummary{
			Balance:          wallet.Balance.InexactFloat64(),
			Currency:         wallet.Currency,
			Status:           wallet.Status,
			SettlementBuffer: settlementBuffer(total, verified),
			UpcomingPayouts:  upcoming.InexactFloat64(),
		},
		Transactions: transactions,
	}, nil
}

// settlementBuffer is the verified share of payments in percent, rounded half to even
func settlementBuffer(total, verified int64) int {
	if total == 0 {
		return 0
	}
	return int(math.RoundToEven(float64(verified) / float64(total) * 100))
}

func transactionType(status domain.PaymentStatus) string {
	switch status {
	case domain.PaymentStatusInitiated:
		return "Top-up"
	case domain.PaymentStatusVerified:
		return "Settlement"
	default:
		return "Payout"
	}
}
