package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v3"
	"github.com/sirupsen/logrus"
	"github.com/whopu/challenge/pkg/domain/submission"
)

const (
	CompletionSubject = "You completed the 5 Day Challenge!"
	sendTimeout       = 10 * time.Second
)

//go:generate mockery --name=Mailer --dir=. --output=./mocks --filename=mailer_mock.go --case=underscore --with-expecter
type Mailer interface {
	SendCompletion(ctx context.Context, sub *submission.Submission) error
}

// sender is the part of mailgun.Mailgun we use.
type sender interface {
	NewMessage(from, subject, text string, to ...string) *mailgun.Message
	Send(ctx context.Context, m *mailgun.Message) (string, string, error)
}

type mailgunMailer struct {
	logger *logrus.Logger
	mg     sender
	from   string
}

func NewMailgunMailer(logger *logrus.Logger, domain, apiKey, from string) Mailer {
	return &mailgunMailer{
		logger: logger,
		mg:     mailgun.NewMailgun(domain, apiKey),
		from:   from,
	}
}

func (m *mailgunMailer) SendCompletion(ctx context.Context, sub *submission.Submission) error {
	body := fmt.Sprintf(
		"Hey %s!\n\nYou finished all five days of the challenge. Your submission id is %s.\n\nKeep building,\nThe Challenge Team",
		sub.Username, sub.ID,
	)
	msg := m.mg.NewMessage(m.from, CompletionSubject, body, sub.Email)

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	_, id, err := m.mg.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to send completion email: %w", err)
	}
	m.logger.WithFields(logrus.Fields{
		"submissionId": sub.ID,
		"messageId":    id,
	}).Info("completion email sent")
	return nil
}

type noopMailer struct{}

// NewNoopMailer is used when mail delivery is disabled.
func NewNoopMailer() Mailer {
	return noopMailer{}
}

func (noopMailer) SendCompletion(context.Context, *submission.Submission) error {
	return nil
}
