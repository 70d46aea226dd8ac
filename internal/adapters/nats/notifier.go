package natsadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// SubjectNotifications carries outbound booking notifications for
// downstream delivery workers (email, SMS).
const SubjectNotifications = "touring.notifications"

type notification struct {
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	SentAt    time.Time `json:"sent_at"`
}

// Notifier implements ports.NotificationService by publishing
// notifications onto NATS. With no connection it degrades to logging.
type Notifier struct {
	conn *nats.Conn
}

// NewNotifier creates a notifier over an existing NATS connection.
// conn may be nil.
func NewNotifier(conn *nats.Conn) *Notifier {
	return &Notifier{conn: conn}
}

// Notify publishes a notification for a booking contact.
func (n *Notifier) Notify(ctx context.Context, recipient, subject, body string) error {
	if n.conn == nil {
		slog.Info("notification (no broker)", "recipient", recipient, "subject", subject)
		return nil
	}

	data, err := json.Marshal(notification{
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
		SentAt:    time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return n.conn.Publish(SubjectNotifications, data)
}
