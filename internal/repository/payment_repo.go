package repository

import (
	"context"
	"time"

	"lending_backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Payments are scoped to a user through their ticket (borrower or lender)
const paymentScope = `payments p JOIN tickets t ON t.id = p.ticket_id WHERE ` + userScope

type PaymentRepository struct {
	db *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// SumByStatus sums amounts of the user's payments in status; 0 when there are none
func (r *PaymentRepository) SumByStatus(ctx context.Context, userID int64, status domain.PaymentStatus) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(p.amount), 0) FROM `+paymentScope+` AND p.status = $2`,
		userID, string(status),
	).Scan(&total)
	return total, err
}

// DailyTotals sums the user's payments in status per calendar day (in loc),
// for days on or after since. Days without payments are absent.
func (r *PaymentRepository) DailyTotals(ctx context.Context, userID int64, status domain.PaymentStatus, since time.Time, loc *time.Location) ([]domain.DailyTotal, error) {
	rows, err := r.db.Query(ctx,
		`SELECT (p.created_at AT TIME ZONE $3)::date AS day, COALESCE(SUM(p.amount), 0)
		 FROM `+paymentScope+`
		   AND p.status = $2
		   AND (p.created_at AT TIME ZONE $3)::date >= $4::date
		 GROUP BY day
		 ORDER BY day`,
		userID, string(status), loc.String(), since.Format(time.DateOnly),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DailyTotal
	for rows.Next() {
		var d domain.DailyTotal
		if err := rows.Scan(&d.Day, &d.Total); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

// RecentForUser returns the user's newest payments with the ticket asset name
func (r *PaymentRepository) RecentForUser(ctx context.Context, userID int64, limit int) ([]domain.Payment, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT p.id, p.ticket_id, p.authority, p.ref_id, p.amount, p.status, p.created_at, p.verified_at, t.asset_name
		 FROM `+paymentScope+`
		 ORDER BY p.created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.TicketID, &p.Authority, &p.RefID, &p.Amount, &p.Status, &p.CreatedAt, &p.VerifiedAt, &p.TicketAsset); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// CountForUser returns how many payments the user has in total and how many are verified
func (r *PaymentRepository) CountForUser(ctx context.Context, userID int64) (total, verified int64, err error) {
	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE p.status = $2) FROM `+paymentScope,
		userID, string(domain.PaymentStatusVerified),
	).Scan(&total, &verified)
	return total, verified, err
}

// UpsertByTicket inserts the ticket's payment or overwrites the existing one
func (r *PaymentRepository) UpsertByTicket(ctx context.Context, p *domain.Payment) error {
	if p.Status == "" {
		p.Status = domain.PaymentStatusInitiated
	}
	return r.db.QueryRow(ctx,
		`INSERT INTO payments (ticket_id, authority, ref_id, amount, status, verified_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (ticket_id) DO UPDATE
		 SET authority = EXCLUDED.authority,
		     ref_id = EXCLUDED.ref_id,
		     amount = EXCLUDED.amount,
		     status = EXCLUDED.status,
		     verified_at = EXCLUDED.verified_at
		 RETURNING id, created_at`,
		p.TicketID, p.Authority, p.RefID, p.Amount, string(p.Status), p.VerifiedAt,
	).Scan(&p.ID, &p.CreatedAt)
}
