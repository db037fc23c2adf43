package ports

import "context"

// Notification is an email queued for best-effort delivery.
type Notification struct {
	To      string
	Subject string
	HTML    string
	// DedupKey identifies the notification; repeats with the same key are sent once.
	DedupKey string
	// Kind labels the notification for metrics (e.g. "rsvp", "welcome").
	Kind string
}

// Notifier accepts notifications without blocking the caller. Delivery
// failures are never reported back.
type Notifier interface {
	Notify(n Notification)
}

// MailSender delivers a single email.
type MailSender interface {
	Send(ctx context.Context, to, subject, html string) error
}
