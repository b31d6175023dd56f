package repository

import (
	"context"
	"errors"

	"lending_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const notificationColumns = `id, user_id, channel, message, status, created_at, sent_at, error_log`

type NotificationRepository struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// RecentForUser returns the user's newest notifications
func (r *NotificationRepository) RecentForUser(ctx context.Context, userID int64, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+notificationColumns+`
		 FROM notifications
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := scanNotification(rows, &n); err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, rows.Err()
}

// GetOrCreate looks a notification up by (user, message) and inserts n when missing
func (r *NotificationRepository) GetOrCreate(ctx context.Context, n *domain.Notification) (*domain.Notification, bool, error) {
	var existing domain.Notification
	err := scanNotification(r.db.QueryRow(ctx,
		`SELECT `+notificationColumns+`
		 FROM notifications
		 WHERE user_id = $1 AND message = $2
		 ORDER BY id
		 LIMIT 1`,
		n.UserID, n.Message,
	), &existing)
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	if n.Status == "" {
		n.Status = domain.NotificationStatusQueued
	}
	err = r.db.QueryRow(ctx,
		`INSERT INTO notifications (user_id, channel, message, status, sent_at, error_log)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		n.UserID, string(n.Channel), n.Message, string(n.Status), n.SentAt, n.ErrorLog,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return nil, false, err
	}
	return n, true, nil
}

func scanNotification(row pgx.Row, n *domain.Notification) error {
	return row.Scan(&n.ID, &n.UserID, &n.Channel, &n.Message, &n.Status, &n.CreatedAt, &n.SentAt, &n.ErrorLog)
}
