package mail

import (
	"context"
	"errors"
	"testing"

	"github.com/mailgun/mailgun-go/v3"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whopu/challenge/pkg/domain/submission"
)

type fakeSender struct {
	*mailgun.MailgunImpl
	from, subject, text string
	to                  []string
	err                 error
}

func (f *fakeSender) NewMessage(from, subject, text string, to ...string) *mailgun.Message {
	f.from, f.subject, f.text, f.to = from, subject, text, to
	return f.MailgunImpl.NewMessage(from, subject, text, to...)
}

func (f *fakeSender) Send(context.Context, *mailgun.Message) (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	return "Queued. Thank you.", "<msg-1@mg.example.com>", nil
}

func completion() *submission.Submission {
	return &submission.Submission{
		ID:       "sub_1769461200000_a1b2c3",
		Day:      5,
		Kind:     submission.KindProfileLink,
		Username: "jane_doe",
		Email:    "jane@example.com",
	}
}

func TestSendCompletion(t *testing.T) {
	logger, hook := test.NewNullLogger()
	fake := &fakeSender{MailgunImpl: mailgun.NewMailgun("mg.example.com", "key")}
	m := &mailgunMailer{logger: logger, mg: fake, from: "Team <hello@example.com>"}

	require.NoError(t, m.SendCompletion(context.Background(), completion()))
	assert.Equal(t, []string{"jane@example.com"}, fake.to)
	assert.Equal(t, CompletionSubject, fake.subject)
	assert.Contains(t, fake.text, "jane_doe")
	assert.Equal(t, "<msg-1@mg.example.com>", hook.LastEntry().Data["messageId"])
}

func TestSendCompletion_Error(t *testing.T) {
	logger, _ := test.NewNullLogger()
	fake := &fakeSender{
		MailgunImpl: mailgun.NewMailgun("mg.example.com", "key"),
		err:         errors.New("401 unauthorized"),
	}
	m := &mailgunMailer{logger: logger, mg: fake, from: "Team <hello@example.com>"}

	err := m.SendCompletion(context.Background(), completion())
	assert.ErrorContains(t, err, "failed to send completion email")
}

func TestNoopMailer(t *testing.T) {
	assert.NoError(t, NewNoopMailer().SendCompletion(context.Background(), completion()))
}
