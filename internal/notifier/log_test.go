package notifier

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"jobboard-backend/internal/model"
)

func newCapturedLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewTextHandler(buf, nil)), buf
}

func TestLogNotifierApplicationReceived(t *testing.T) {
	logger, buf := newCapturedLogger()
	n := NewLogNotifier(logger)

	applicant := model.User{Username: "alice", Email: "alice@example.com"}
	job := model.Job{EditableJobInfo: model.EditableJobInfo{Title: "Backend Engineer"}}

	err := n.ApplicationReceived(applicant, job)
	assert.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "application received")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "Backend Engineer")
}

func TestLogNotifierContactMessage(t *testing.T) {
	logger, buf := newCapturedLogger()
	n := NewLogNotifier(logger)

	err := n.ContactMessage("Bob", "bob@example.com", "Hello there")
	assert.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "contact message")
	assert.Contains(t, out, "bob@example.com")
	assert.Contains(t, out, "Hello there")
}
