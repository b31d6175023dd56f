package domain

import "time"

// NotificationChannel is the delivery channel of a notification
type NotificationChannel string

const (
	ChannelSMS      NotificationChannel = "sms"
	ChannelWhatsApp NotificationChannel = "whatsapp"
	ChannelEmail    NotificationChannel = "email"
)

func (c NotificationChannel) Label() string {
	switch c {
	case ChannelSMS:
		return "SMS"
	case ChannelWhatsApp:
		return "WhatsApp"
	case ChannelEmail:
		return "Email"
	default:
		return string(c)
	}
}

// NotificationStatus represents outbound delivery state
type NotificationStatus string

const (
	NotificationStatusQueued NotificationStatus = "queued"
	NotificationStatusSent   NotificationStatus = "sent"
	NotificationStatusFailed NotificationStatus = "failed"
)

func (s NotificationStatus) Label() string {
	switch s {
	case NotificationStatusQueued:
		return "Queued"
	case NotificationStatusSent:
		return "Sent"
	case NotificationStatusFailed:
		return "Failed"
	default:
		return string(s)
	}
}

type Notification struct {
	ID        int64               `db:"id" json:"id"`
	UserID    int64               `db:"user_id" json:"user_id"`
	Channel   NotificationChannel `db:"channel" json:"channel"`
	Message   string              `db:"message" json:"message"`
	Status    NotificationStatus  `db:"status" json:"status"`
	CreatedAt time.Time           `db:"created_at" json:"created_at"`
	SentAt    *time.Time          `db:"sent_at" json:"sent_at,omitempty"`
	ErrorLog  string              `db:"error_log" json:"error_log,omitempty"`
}
