package repository

import (
	"context"
	"errors"

	"lending_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type WalletRepository struct {
	db *pgxpool.Pool
}

func NewWalletRepository(db *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{db: db}
}

// GetByUserID retrieves wallet by user ID. Returns nil, nil when the user has no wallet.
func (r *WalletRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Wallet, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, user_id, balance, currency, status, created_at
		FROM wallets
		WHERE user_id = $1
	`, userID)

	var w domain.Wallet
	if err := row.Scan(&w.ID, &w.UserID, &w.Balance, &w.Currency, &w.Status, &w.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &w, nil
}

// GetOrCreate inserts w unless the user already has a wallet, in which case the
// stored wallet is returned untouched. The bool reports whether a row was inserted.
func (r *WalletRepository) GetOrCreate(ctx context.Context, w *domain.Wallet) (*domain.Wallet, bool, error) {
	if w.Currency == "" {
		w.Currency = domain.DefaultCurrency
	}
	if w.Status == "" {
		w.Status = domain.WalletStatusActive
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO wallets (user_id, balance, currency, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING id, created_at
	`, w.UserID, w.Balance, w.Currency, string(w.Status)).Scan(&w.ID, &w.CreatedAt)
	if err == nil {
		return w, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	existing, err := r.GetByUserID(ctx, w.UserID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// AdjustBalance adds delta (may be negative) to the wallet balance
func (r *WalletRepository) AdjustBalance(ctx context.Context, walletID int64, delta decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.db.QueryRow(ctx, `
		UPDATE wallets SET balance = balance + $2 WHERE id = $1 RETURNING balance
	`, walletID, delta).Scan(&balance)
	return balance, err
}
