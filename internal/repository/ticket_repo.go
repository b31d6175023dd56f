package repository

import (
	"context"
	"errors"

	"lending_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ticketColumns = `t.id, t.asset_name, t.borrower_id, t.lender_id, t.price, t.duration_days, t.status, t.created_at, t.updated_at`

// userScope matches tickets where the user takes either role
const userScope = `(t.borrower_id = $1 OR t.lender_id = $1)`

type TicketRepository struct {
	db *pgxpool.Pool
}

func NewTicketRepository(db *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{db: db}
}

// CountByStatus counts the user's tickets (either role) in the given status
func (r *TicketRepository) CountByStatus(ctx context.Context, userID int64, status domain.TicketStatus) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM tickets t WHERE `+userScope+` AND t.status = $2`,
		userID, string(status),
	).Scan(&n)
	return n, err
}

// RecentForUser returns the user's most recently updated tickets
func (r *TicketRepository) RecentForUser(ctx context.Context, userID int64, limit int) ([]domain.Ticket, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+ticketColumns+`
		 FROM tickets t
		 WHERE `+userScope+`
		 ORDER BY t.updated_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Ticket
	for rows.Next() {
		var t domain.Ticket
		if err := scanTicket(rows, &t); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// ListForUser returns every ticket of the user with both parties, newest update first
func (r *TicketRepository) ListForUser(ctx context.Context, userID int64) ([]domain.TicketWithParties, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+ticketColumns+`,
		        b.id, b.email, b.first_name, b.last_name,
		        l.id, l.email, l.first_name, l.last_name
		 FROM tickets t
		 JOIN users b ON b.id = t.borrower_id
		 JOIN users l ON l.id = t.lender_id
		 WHERE `+userScope+`
		 ORDER BY t.updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketWithParties
	for rows.Next() {
		var t domain.TicketWithParties
		if err := rows.Scan(
			&t.ID, &t.AssetName, &t.BorrowerID, &t.LenderID, &t.Price, &t.DurationDays, &t.Status, &t.CreatedAt, &t.UpdatedAt,
			&t.Borrower.ID, &t.Borrower.Email, &t.Borrower.FirstName, &t.Borrower.LastName,
			&t.Lender.ID, &t.Lender.Email, &t.Lender.FirstName, &t.Lender.LastName,
		); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// GetOrCreate looks a ticket up by (asset, borrower, lender) and inserts t when missing.
// The bool reports whether a row was inserted.
func (r *TicketRepository) GetOrCreate(ctx context.Context, t *domain.Ticket) (*domain.Ticket, bool, error) {
	var existing domain.Ticket
	err := scanTicket(r.db.QueryRow(ctx,
		`SELECT `+ticketColumns+`
		 FROM tickets t
		 WHERE t.asset_name = $1 AND t.borrower_id = $2 AND t.lender_id = $3
		 ORDER BY t.id
		 LIMIT 1`,
		t.AssetName, t.BorrowerID, t.LenderID,
	), &existing)
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	if t.Status == "" {
		t.Status = domain.TicketStatusPending
	}
	err = r.db.QueryRow(ctx,
		`INSERT INTO tickets (asset_name, borrower_id, lender_id, price, duration_days, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		t.AssetName, t.BorrowerID, t.LenderID, t.Price, t.DurationDays, string(t.Status),
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, false, err
	}
	return t, true, nil
}

func scanTicket(row pgx.Row, t *domain.Ticket) error {
	return row.Scan(&t.ID, &t.AssetName, &t.BorrowerID, &t.LenderID, &t.Price, &t.DurationDays, &t.Status, &t.CreatedAt, &t.UpdatedAt)
}
