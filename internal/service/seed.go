package service

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"lending_backend/internal/db"
	"lending_backend/internal/domain"
	"lending_backend/internal/logger"
	"lending_backend/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures/dev_seed.yaml
var devSeedYAML []byte

// SeedTables must all exist before seeding
var SeedTables = []string{"users", "wallets", "tickets", "payments", "notifications"}

// balanceAlignDivisor scales pending payouts into the seeded wallet balance
var balanceAlignDivisor = decimal.NewFromInt(20)

type SeedFixtures struct {
	Users         []SeedUser         `yaml:"users"`
	Tickets       []SeedTicket       `yaml:"tickets"`
	Notifications []SeedNotification `yaml:"notifications"`
}

type SeedUser struct {
	Key       string `yaml:"key"`
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Role      string `yaml:"role"`
	Wallet    *struct {
		Balance  string `yaml:"balance"`
		Currency string `yaml:"currency"`
	} `yaml:"wallet"`
}

type SeedTicket struct {
	Asset        string       `yaml:"asset"`
	Borrower     string       `yaml:"borrower"`
	Lender       string       `yaml:"lender"`
	Price        string       `yaml:"price"`
	DurationDays *int32       `yaml:"duration_days"`
	Status       string       `yaml:"status"`
	Payment      *SeedPayment `yaml:"payment"`
}

type SeedPayment struct {
	Authority   string `yaml:"authority"`
	RefID       *int64 `yaml:"ref_id"`
	Amount      string `yaml:"amount"`
	Status      string `yaml:"status"`
	VerifiedAgo string `yaml:"verified_ago"`
}

type SeedNotification struct {
	User    string `yaml:"user"`
	Channel string `yaml:"channel"`
	Message string `yaml:"message"`
	Status  string `yaml:"status"`
	SentAgo string `yaml:"sent_ago"`
}

// DevSeedFixtures parses the embedded development fixtures
func DevSeedFixtures() (*SeedFixtures, error) {
	return ParseSeedFixtures(devSeedYAML)
}

// ParseSeedFixtures decodes fixtures and checks that every reference resolves
func ParseSeedFixtures(data []byte) (*SeedFixtures, error) {
	var f SeedFixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode seed fixtures: %w", err)
	}

	keys := make(map[string]bool, len(f.Users))
	for _, u := range f.Users {
		if u.Key == "" || u.Email == "" {
			return nil, fmt.Errorf("seed user needs key and email: %+v", u)
		}
		keys[u.Key] = true
	}
	for _, t := range f.Tickets {
		if !keys[t.Borrower] || !keys[t.Lender] {
			return nil, fmt.Errorf("ticket %q references unknown user", t.Asset)
		}
	}
	for _, n := range f.Notifications {
		if !keys[n.User] {
			return nil, fmt.Errorf("notification %q references unknown user %q", n.Message, n.User)
		}
	}
	return &f, nil
}

type SeedUserStore interface {
	GetOrCreate(ctx context.Context, u *domain.User) (*domain.User, bool, error)
}

type SeedWalletStore interface {
	GetOrCreate(ctx context.Context, w *domain.Wallet) (*domain.Wallet, bool, error)
	AdjustBalance(ctx context.Context, walletID int64, delta decimal.Decimal) (decimal.Decimal, error)
}

type SeedTicketStore interface {
	GetOrCreate(ctx context.Context, t *domain.Ticket) (*domain.Ticket, bool, error)
}

type SeedPaymentStore interface {
	UpsertByTicket(ctx context.Context, p *domain.Payment) error
	SumByStatus(ctx context.Context, userID int64, status domain.PaymentStatus) (decimal.Decimal, error)
}

type SeedNotificationStore interface {
	GetOrCreate(ctx context.Context, n *domain.Notification) (*domain.Notification, bool, error)
}

// Seeder upserts development data. Running it repeatedly leaves the store unchanged.
type Seeder struct {
	Users         SeedUserStore
	Wallets       SeedWalletStore
	Tickets       SeedTicketStore
	Payments      SeedPaymentStore
	Notifications SeedNotificationStore
	Audit         *AuditService
	Now           func() time.Time
}

func NewSeeder(db *pgxpool.Pool) *Seeder {
	return &Seeder{
		Users:         repository.NewUserRepository(db),
		Wallets:       repository.NewWalletRepository(db),
		Tickets:       repository.NewTicketRepository(db),
		Payments:      repository.NewPaymentRepository(db),
		Notifications: repository.NewNotificationRepository(db),
		Audit:         NewAuditService(repository.NewAuditRepository(db)),
		Now:           time.Now,
	}
}

// SeedResult reports what a run inserted
type SeedResult struct {
	Users          map[string]int64
	UsersCreated   int
	WalletsCreated int
	TicketsCreated int
	Payments       int
	Notifications  int
}

func (s *Seeder) Run(ctx context.Context, f *SeedFixtures) (*SeedResult, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	res := &SeedResult{Users: make(map[string]int64, len(f.Users))}
	var newWallets []*domain.Wallet

	for _, su := range f.Users {
		hash, err := HashPassword(su.Password)
		if err != nil {
			return nil, err
		}
		u, created, err := s.Users.GetOrCreate(ctx, &domain.User{
			Email:        su.Email,
			FirstName:    su.FirstName,
			LastName:     su.LastName,
			PasswordHash: hash,
			Role:         domain.UserRole(su.Role),
		})
		if err != nil {
			return nil, fmt.Errorf("seed user %s: %w", su.Email, err)
		}
		res.Users[su.Key] = u.ID
		if created {
			res.UsersCreated++
		}

		if su.Wallet == nil {
			continue
		}
		balance, err := decimal.NewFromString(su.Wallet.Balance)
		if err != nil {
			return nil, fmt.Errorf("seed wallet balance for %s: %w", su.Email, err)
		}
		w, created, err := s.Wallets.GetOrCreate(ctx, &domain.Wallet{
			UserID:   u.ID,
			Balance:  balance,
			Currency: su.Wallet.Currency,
			Status:   domain.WalletStatusActive,
		})
		if err != nil {
			return nil, fmt.Errorf("seed wallet for %s: %w", su.Email, err)
		}
		if created {
			res.WalletsCreated++
			newWallets = append(newWallets, w)
		}
	}

	for _, st := range f.Tickets {
		t := &domain.Ticket{
			AssetName:    st.Asset,
			BorrowerID:   res.Users[st.Borrower],
			LenderID:     res.Users[st.Lender],
			DurationDays: st.DurationDays,
			Status:       domain.TicketStatus(st.Status),
		}
		if st.Price != "" {
			price, err := decimal.NewFromString(st.Price)
			if err != nil {
				return nil, fmt.Errorf("seed ticket %s price: %w", st.Asset, err)
			}
			t.Price = &price
		}
		ticket, created, err := s.Tickets.GetOrCreate(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("seed ticket %s: %w", st.Asset, err)
		}
		if created {
			res.TicketsCreated++
		}

		if st.Payment == nil {
			continue
		}
		p, err := buildSeedPayment(ticket.ID, st.Payment, now())
		if err != nil {
			return nil, fmt.Errorf("seed payment %s: %w", st.Payment.Authority, err)
		}
		if err := s.Payments.UpsertByTicket(ctx, p); err != nil {
			return nil, fmt.Errorf("seed payment %s: %w", p.Authority, err)
		}
		res.Payments++
	}

	for _, sn := range f.Notifications {
		n := &domain.Notification{
			UserID:  res.Users[sn.User],
			Channel: domain.NotificationChannel(sn.Channel),
			Message: sn.Message,
			Status:  domain.NotificationStatus(sn.Status),
		}
		if sn.SentAgo != "" {
			ago, err := time.ParseDuration(sn.SentAgo)
			if err != nil {
				return nil, fmt.Errorf("seed notification sent_ago: %w", err)
			}
			sent := now().Add(-ago)
			n.SentAt = &sent
		}
		if _, created, err := s.Notifications.GetOrCreate(ctx, n); err != nil {
			return nil, fmt.Errorf("seed notification: %w", err)
		} else if created {
			res.Notifications++
		}
	}

	// Keep fresh wallet balances roughly aligned with payment activity
	for _, w := range newWallets {
		pending, err := s.Payments.SumByStatus(ctx, w.UserID, domain.PaymentStatusInitiated)
		if err != nil {
			return nil, fmt.Errorf("seed balance alignment: %w", err)
		}
		if pending.IsZero() {
			continue
		}
		if _, err := s.Wallets.AdjustBalance(ctx, w.ID, pending.Div(balanceAlignDivisor).Neg()); err != nil {
			return nil, fmt.Errorf("seed balance alignment: %w", err)
		}
	}

	if s.Audit != nil {
		s.Audit.LogSeed(ctx, map[string]interface{}{
			"users_created":   res.UsersCreated,
			"wallets_created": res.WalletsCreated,
			"tickets_created": res.TicketsCreated,
		})
	}

	logger.WithContext(ctx).Info("seeded development data for wallets, tickets, payments, and notifications",
		"admin_id", res.Users["admin"], "user_id", res.Users["user"])
	return res, nil
}

func buildSeedPayment(ticketID int64, sp *SeedPayment, now time.Time) (*domain.Payment, error) {
	amount, err := decimal.NewFromString(sp.Amount)
	if err != nil {
		return nil, err
	}
	p := &domain.Payment{
		TicketID:  ticketID,
		Authority: sp.Authority,
		RefID:     sp.RefID,
		Amount:    amount,
		Status:    domain.PaymentStatus(sp.Status),
	}
	if sp.VerifiedAgo != "" {
		ago, err := time.ParseDuration(sp.VerifiedAgo)
		if err != nil {
			return nil, err
		}
		verified := now.Add(-ago)
		p.VerifiedAt = &verified
	}
	return p, nil
}

// SeedDevelopment loads the embedded fixtures once the schema is in place.
// Missing tables skip seeding with a warning.
func SeedDevelopment(ctx context.Context, pool *pgxpool.Pool) (*SeedResult, error) {
	ok, err := db.TablesExist(ctx, pool, SeedTables...)
	if err != nil {
		return nil, fmt.Errorf("seed: check tables: %w", err)
	}
	if !ok {
		logger.Warn("skipping development seed, tables missing", "tables", SeedTables)
		return nil, nil
	}

	f, err := DevSeedFixtures()
	if err != nil {
		return nil, fmt.Errorf("seed: fixtures: %w", err)
	}
	return NewSeeder(pool).Run(ctx, f)
}
