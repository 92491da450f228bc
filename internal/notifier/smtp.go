package notifier

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"jobboard-backend/internal/model"
)

var _ Notifier = (*SMTPNotifier)(nil)

// SMTPNotifier sends notifications through an SMTP server. The configured
// account is both the sender and the recipient of contact-form mail.
type SMTPNotifier struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPNotifier creates a notifier for the given SMTP server and account.
func NewSMTPNotifier(host string, port int, username, password string) *SMTPNotifier {
	return &SMTPNotifier{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   username,
	}
}

// ApplicationReceived mails a confirmation to the applicant.
func (n *SMTPNotifier) ApplicationReceived(applicant model.User, job model.Job) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", applicant.Email)
	m.SetHeader("Subject", "Job Application Received")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nYour application for '%s' has been successfully received.",
		applicant.Username, job.Title,
	))

	return n.dialer.DialAndSend(m)
}

// ContactMessage mails a contact-form submission to the site operator.
func (n *SMTPNotifier) ContactMessage(name, email, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.from)
	m.SetHeader("Subject", fmt.Sprintf("Contact Form Submission from %s", name))
	m.SetBody("text/plain", fmt.Sprintf(
		"Name: %s\nEmail: %s\n\nMessage:\n%s",
		name, email, body,
	))

	return n.dialer.DialAndSend(m)
}
