// Package notifier delivers best-effort mail for application and contact
// events. Callers invoke it after the primary write commits and only log
// failures; delivery is never retried and never fails the request.
package notifier

import "jobboard-backend/internal/model"

// Notifier sends confirmation messages for job-board events.
type Notifier interface {
	// ApplicationReceived confirms to the applicant that their application
	// for the job was received.
	ApplicationReceived(applicant model.User, job model.Job) error
	// ContactMessage forwards a contact-form submission to the site operator.
	ContactMessage(name, email, body string) error
}
