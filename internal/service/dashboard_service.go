package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"lending_backend/internal/domain"
	"lending_backend/internal/logger"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	performanceDays   = 5
	activityPerSource = 3
	activityLimit     = 5
)

type WalletReader interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Wallet, error)
}

type TicketReader interface {
	CountByStatus(ctx context.Context, userID int64, status domain.TicketStatus) (int64, error)
	RecentForUser(ctx context.Context, userID int64, limit int) ([]domain.Ticket, error)
}

type PaymentReader interface {
	SumByStatus(ctx context.Context, userID int64, status domain.PaymentStatus) (decimal.Decimal, error)
	DailyTotals(ctx context.Context, userID int64, status domain.PaymentStatus, since time.Time, loc *time.Location) ([]domain.DailyTotal, error)
	RecentForUser(ctx context.Context, userID int64, limit int) ([]domain.Payment, error)
}

type NotificationReader interface {
	RecentForUser(ctx context.Context, userID int64, limit int) ([]domain.Notification, error)
}

// DashboardService builds the read-only dashboard snapshot of a user
type DashboardService struct {
	wallets       WalletReader
	tickets       TicketReader
	payments      PaymentReader
	notifications NotificationReader
	loc           *time.Location
	now           func() time.Time
}

func NewDashboardService(wallets WalletReader, tickets TicketReader, payments PaymentReader, notifications NotificationReader, loc *time.Location) *DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardService{
		wallets:       wallets,
		tickets:       tickets,
		payments:      payments,
		notifications: notifications,
		loc:           loc,
		now:           time.Now,
	}
}

// Snapshot computes metrics, the 5-day performance series and the merged
// recent activity feed for user. All reads are independent and run concurrently;
// the first failing read fails the whole snapshot.
func (s *DashboardService) Snapshot(ctx context.Context, user *domain.User) (*domain.DashboardSnapshot, error) {
	started := time.Now()
	defer func() {
		DashboardBuildSeconds.Observe(time.Since(started).Seconds())
	}()

	today := startOfDay(s.now().In(s.loc))
	since := today.AddDate(0, 0, -(performanceDays - 1))

	var (
		wallet        *domain.Wallet
		activeTickets int64
		pending       decimal.Decimal
		daily         []domain.DailyTotal
		tickets       []domain.Ticket
		payments      []domain.Payment
		notifications []domain.Notification
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		wallet, err = s.wallets.GetByUserID(gctx, user.ID)
		return wrap("load wallet", err)
	})
	g.Go(func() (err error) {
		activeTickets, err = s.tickets.CountByStatus(gctx, user.ID, domain.TicketStatusActive)
		return wrap("count active tickets", err)
	})
	g.Go(func() (err error) {
		pending, err = s.payments.SumByStatus(gctx, user.ID, domain.PaymentStatusInitiated)
		return wrap("sum pending payouts", err)
	})
	g.Go(func() (err error) {
		daily, err = s.payments.DailyTotals(gctx, user.ID, domain.PaymentStatusVerified, since, s.loc)
		return wrap("load daily totals", err)
	})
	g.Go(func() (err error) {
		tickets, err = s.tickets.RecentForUser(gctx, user.ID, activityPerSource)
		return wrap("load recent tickets", err)
	})
	g.Go(func() (err error) {
		payments, err = s.payments.RecentForUser(gctx, user.ID, activityPerSource)
		return wrap("load recent payments", err)
	})
	g.Go(func() (err error) {
		notifications, err = s.notifications.RecentForUser(gctx, user.ID, activityPerSource)
		return wrap("load recent notifications", err)
	})
	if err := g.Wait(); err != nil {
		logger.WithContext(ctx).Error("dashboard snapshot failed", "user_id", user.ID, "error", err)
		return nil, err
	}

	// A missing wallet is not an error: the dashboard shows zero in the default currency
	currency := domain.DefaultCurrency
	balance := decimal.Zero
	if wallet != nil {
		currency = wallet.Currency
		balance = wallet.Balance
	}

	return &domain.DashboardSnapshot{
		Metrics: []domain.Metric{
			{Label: "Active Tickets", Value: float64(activeTickets), Unit: nil},
			{Label: "Wallet Balance", Value: balance.InexactFloat64(), Unit: &currency},
			{Label: "Pending Payouts", Value: pending.InexactFloat64(), Unit: &currency},
		},
		Performance:    performanceSeries(today, daily),
		RecentActivity: mergeActivity(tickets, payments, notifications),
	}, nil
}

// performanceSeries returns one point per day from 4 days before today through
// today, oldest first. Days missing from daily are zero.
func performanceSeries(today time.Time, daily []domain.DailyTotal) []domain.PerformancePoint {
	totals := make(map[string]decimal.Decimal, len(daily))
	for _, d := range daily {
		key := d.Day.Format(time.DateOnly)
		totals[key] = totals[key].Add(d.Total)
	}

	points := make([]domain.PerformancePoint, 0, performanceDays)
	for offset := performanceDays - 1; offset >= 0; offset-- {
		day := today.AddDate(0, 0, -offset)
		points = append(points, domain.PerformancePoint{
			Label: day.Format("Mon"),
			Value: totals[day.Format(time.DateOnly)].InexactFloat64(),
		})
	}
	return points
}

type rankedActivity struct {
	domain.Activity
	rowID int64
}

// mergeActivity interleaves the three sources by timestamp, newest first, and
// keeps the 5 most recent. Equal timestamps order by category, then newer row first.
func mergeActivity(tickets []domain.Ticket, payments []domain.Payment, notifications []domain.Notification) []domain.Activity {
	items := make([]rankedActivity, 0, len(tickets)+len(payments)+len(notifications))

	for _, t := range tickets {
		items = append(items, rankedActivity{rowID: t.ID, Activity: domain.Activity{
			ID:        fmt.Sprintf("ticket-%d", t.ID),
			Message:   fmt.Sprintf("Ticket %s marked %s", t.AssetName, strings.ToLower(t.Status.Label())),
			Category:  domain.ActivityTicket,
			Timestamp: t.UpdatedAt,
		}})
	}
	for _, p := range payments {
		items = append(items, rankedActivity{rowID: p.ID, Activity: domain.Activity{
			ID:        fmt.Sprintf("payment-%d", p.ID),
			Message:   fmt.Sprintf("Payment %s %s", p.Authority, strings.ToLower(p.Status.Label())),
			Category:  domain.ActivityPayment,
			Timestamp: p.CreatedAt,
		}})
	}
	for _, n := range notifications {
		items = append(items, rankedActivity{rowID: n.ID, Activity: domain.Activity{
			ID:        fmt.Sprintf("notification-%d", n.ID),
			Message:   n.Message,
			Category:  domain.ActivityNotification,
			Timestamp: n.CreatedAt,
		}})
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.After(b.Timestamp)
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.rowID > b.rowID
	})

	if len(items) > activityLimit {
		items = items[:activityLimit]
	}

	result := make([]domain.Activity, 0, len(items))
	for _, it := range items {
		result = append(result, it.Activity)
	}
	return result
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
