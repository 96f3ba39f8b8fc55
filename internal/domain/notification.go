package domain

import "time"

type NotificationLevel string

const (
	NotifyInfo    NotificationLevel = "info"
	NotifySuccess NotificationLevel = "success"
	NotifyWarning NotificationLevel = "warning"
	NotifyError   NotificationLevel = "error"
)

// Notification is a fire-and-forget message shown until it expires or is dismissed.
type Notification struct {
	ID        string
	Level     NotificationLevel
	Title     string
	Message   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the notification is past its expiry at now.
func (n Notification) Expired(now time.Time) bool {
	return !now.Before(n.ExpiresAt)
}
