package usecase

import (
	"context"
	"fmt"
	"testing"

	"mailgate/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMailFixture() (MailService, *testRepos, *fakeMailer) {
	repo, repos := newTestRepos()
	mailer := &fakeMailer{}
	sender := NewSenderService(repo, testLogger())
	return NewMailService(sender, mailer, testLogger()), repos, mailer
}

func TestSendEmailUnresolvableSender(t *testing.T) {
	service, _, mailer := newMailFixture()

	envelope, err := service.Send(context.Background(), &request.SendEmailRequest{
		From:    "ghost@example.com",
		To:      "dest@example.com",
		Subject: "Hello",
		Body:    "Hi there",
	})
	require.NoError(t, err)
	assert.Equal(t, "error", envelope.Status)
	assert.Equal(t, "Sender account or alias not found or inactive", envelope.Message)
	assert.Empty(t, mailer.sent)
}

func TestSendEmailSMTPFailure(t *testing.T) {
	service, repos, mailer := newMailFixture()
	seedAccount(repos, "box@example.com", "Box", "pw", true)
	mailer.fail = fmt.Errorf("connection refused")

	envelope, err := service.Send(context.Background(), &request.SendEmailRequest{
		From:    "box@example.com",
		To:      "dest@example.com",
		Subject: "Hello",
		Body:    "Hi there",
	})
	require.NoError(t, err)
	assert.Equal(t, "error", envelope.Status)
	// Detail kegagalan SMTP tidak bocor ke klien
	assert.Equal(t, "Failed to send email", envelope.Message)
}

func TestSendEmailViaAlias(t *testing.T) {
	service, repos, mailer := newMailFixture()
	account := seedAccount(repos, "box@example.com", "Box", "smtp-pass", true)
	seedAlias(repos, "sales@example.com", nil, true, account.ID)

	cc := "copy@example.com"
	envelope, err := service.Send(context.Background(), &request.SendEmailRequest{
		From:    " sales@example.com ",
		To:      "dest@example.com",
		Subject: "Quote",
		Body:    "See attached",
		CC:      &cc,
	})
	require.NoError(t, err)
	assert.Equal(t, "sent", envelope.Status)
	assert.Equal(t, "Email sent successfully", envelope.Message)

	require.Len(t, mailer.sent, 1)
	msg := mailer.sent[0]
	// From di-trim dan dipakai sebagai header; login tetap mailbox asli
	assert.Equal(t, "sales@example.com", msg.HeaderFrom)
	assert.Equal(t, "box@example.com", msg.AuthEmail)
	assert.Equal(t, "smtp-pass", msg.AuthPassword)
	assert.Equal(t, "dest@example.com", msg.To)
	require.NotNil(t, msg.CC)
	assert.Equal(t, "copy@example.com", *msg.CC)
	assert.False(t, msg.HTML)
}
