package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/akeren/sunday-signup/internal/log"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSendClient struct {
	sent     []*mail.SGMailV3
	response *rest.Response
	err      error
}

func (f *fakeSendClient) SendWithContext(_ context.Context, email *mail.SGMailV3) (*rest.Response, error) {
	f.sent = append(f.sent, email)
	return f.response, f.err
}

func newTestSender(client sendClient) *SendGridSender {
	return &SendGridSender{
		client:    client,
		fromEmail: "games@example.com",
		fromName:  "Sunday Game",
		logger:    log.NewLoggerWithJSONOutput(),
	}
}

func TestNewSendGridSender_NilWhenUnconfigured(t *testing.T) {
	assert.Nil(t, NewSendGridSender(SendGridConfig{}, nil))
	assert.Nil(t, NewSendGridSender(SendGridConfig{APIKey: "key"}, nil))
	assert.NotNil(t, NewSendGridSender(SendGridConfig{APIKey: "key", FromEmail: "games@example.com"}, nil))
}

func TestSendGridSender_Send(t *testing.T) {
	client := &fakeSendClient{response: &rest.Response{StatusCode: 202}}
	sender := newTestSender(client)

	err := sender.Send(context.Background(), EmailMessage{
		To:      "jamie@example.com",
		ToName:  "Jamie",
		Subject: "You're in",
		Body:    "See you Sunday",
	})
	require.NoError(t, err)
	require.Len(t, client.sent, 1)
	assert.Equal(t, "You're in", client.sent[0].Subject)
	assert.Equal(t, "games@example.com", client.sent[0].From.Address)
}

func TestSendGridSender_RejectedStatus(t *testing.T) {
	sender := newTestSender(&fakeSendClient{response: &rest.Response{StatusCode: 401, Body: "unauthorized"}})

	err := sender.Send(context.Background(), EmailMessage{To: "jamie@example.com"})
	assert.Error(t, err)
}

func TestSendGridSender_TransportError(t *testing.T) {
	sender := newTestSender(&fakeSendClient{err: errors.New("dial tcp: timeout")})

	err := sender.Send(context.Background(), EmailMessage{To: "jamie@example.com"})
	assert.ErrorContains(t, err, "sendgrid send failed")
}
