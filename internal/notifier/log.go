package notifier

import (
	"log/slog"

	"jobboard-backend/internal/model"
)

// Ensure LogNotifier implements Notifier.
var _ Notifier = (*LogNotifier)(nil)

// LogNotifier writes notifications to the given logger instead of sending
// mail. Used when no SMTP configuration is present.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each event via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// ApplicationReceived logs the application confirmation. Returns nil.
func (n *LogNotifier) ApplicationReceived(applicant model.User, job model.Job) error {
	n.logger.Info("application received",
		"applicant", applicant.Username,
		"email", applicant.Email,
		"job", job.Title,
	)
	return nil
}

// ContactMessage logs the contact-form submission. Returns nil.
func (n *LogNotifier) ContactMessage(name, email, body string) error {
	n.logger.Info("contact message",
		"name", name,
		"email", email,
		"body", body,
	)
	return nil
}
