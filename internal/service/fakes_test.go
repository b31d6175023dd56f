package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"lending_backend/internal/domain"

	"github.com/shopspring/decimal"
)

// memLedger is an in-memory Ledger Store with the same filtering and ordering
// rules as the pgx repositories.
type memLedger struct {
	mu            sync.Mutex
	wallets       []domain.Wallet
	tickets       []domain.Ticket
	payments      []domain.Payment
	notifications []domain.Notification
	err           error
	reads         int
}

func (m *memLedger) read() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	return m.err
}

func (m *memLedger) ticketInScope(ticketID, userID int64) bool {
	for _, t := range m.tickets {
		if t.ID == ticketID {
			return t.BorrowerID == userID || t.LenderID == userID
		}
	}
	return false
}

type memWallets struct{ *memLedger }

func (f memWallets) GetByUserID(_ context.Context, userID int64) (*domain.Wallet, error) {
	if err := f.read(); err != nil {
		return nil, err
	}
	for _, w := range f.wallets {
		if w.UserID == userID {
			w := w
			return &w, nil
		}
	}
	return nil, nil
}

type memTickets struct{ *memLedger }

func (f memTickets) CountByStatus(_ context.Context, userID int64, status domain.TicketStatus) (int64, error) {
	if err := f.read(); err != nil {
		return 0, err
	}
	var n int64
	for _, t := range f.tickets {
		if (t.BorrowerID == userID || t.LenderID == userID) && t.Status == status {
			n++
		}
	}
	return n, nil
}

func (f memTickets) RecentForUser(_ context.Context, userID int64, limit int) ([]domain.Ticket, error) {
	if err := f.read(); err != nil {
		return nil, err
	}
	var res []domain.Ticket
	for _, t := range f.tickets {
		if t.BorrowerID == userID || t.LenderID == userID {
			res = append(res, t)
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].UpdatedAt.After(res[j].UpdatedAt) })
	if len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

type memPayments struct{ *memLedger }

func (f memPayments) scoped(userID int64) []domain.Payment {
	var res []domain.Payment
	for _, p := range f.payments {
		if f.ticketInScope(p.TicketID, userID) {
			res = append(res, p)
		}
	}
	return res
}

func (f memPayments) SumByStatus(_ context.Context, userID int64, status domain.PaymentStatus) (decimal.Decimal, error) {
	if err := f.read(); err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, p := range f.scoped(userID) {
		if p.Status == status {
			total = total.Add(p.Amount)
		}
	}
	return total, nil
}

func (f memPayments) DailyTotals(_ context.Context, userID int64, status domain.PaymentStatus, since time.Time, loc *time.Location) ([]domain.DailyTotal, error) {
	if err := f.read(); err != nil {
		return nil, err
	}
	sinceKey := since.Format(time.DateOnly)
	byDay := map[string]decimal.Decimal{}
	for _, p := range f.scoped(userID) {
		if p.Status != status {
			continue
		}
		key := p.CreatedAt.In(loc).Format(time.DateOnly)
		if key < sinceKey {
			continue
		}
		byDay[key] = byDay[key].Add(p.Amount)
	}

	var res []domain.DailyTotal
	for key, total := range byDay {
		day, _ := time.Parse(time.DateOnly, key)
		res = append(res, domain.DailyTotal{Day: day, Total: total})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Day.Before(res[j].Day) })
	return res, nil
}

func (f memPayments) RecentForUser(_ context.Context, userID int64, limit int) ([]domain.Payment, error) {
	if err := f.read(); err != nil {
		return nil, err
	}
	res := f.scoped(userID)
	sort.SliceStable(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	if len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (f memPayments) CountForUser(_ context.Context, userID int64) (int64, int64, error) {
	if err := f.read(); err != nil {
		return 0, 0, err
	}
	var total, verified int64
	for _, p := range f.scoped(userID) {
		total++
		if p.Status == domain.PaymentStatusVerified {
			verified++
		}
	}
	return total, verified, nil
}

type memNotifications struct{ *memLedger }

func (f memNotifications) RecentForUser(_ context.Context, userID int64, limit int) ([]domain.Notification, error) {
	if err := f.read(); err != nil {
		return nil, err
	}
	var res []domain.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			res = append(res, n)
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	if len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
