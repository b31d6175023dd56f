package domain

import "time"

// Activity categories in the recent activity feed
const (
	ActivityTicket       = "ticket"
	ActivityPayment      = "payment"
	ActivityNotification = "notification"
)

// Metric is a headline number on the dashboard. Unit is null for plain counts.
type Metric struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Unit  *string `json:"unit"`
}

// PerformancePoint is one day of verified payment volume
type PerformancePoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type Activity struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
}

// DashboardSnapshot is the complete dashboard for one user at one point in time
type DashboardSnapshot struct {
	Metrics        []Metric           `json:"metrics"`
	Performance    []PerformancePoint `json:"performance"`
	RecentActivity []Activity         `json:"recentActivity"`
}
