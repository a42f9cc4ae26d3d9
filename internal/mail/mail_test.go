package mail

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review_system/internal/config"
)

func TestSMTPSenderFormatsMessage(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	s := newSMTPSender("mail:25", "noreply@example.com", nil, func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	})

	err := s.Send(context.Background(), Message{To: "ann@example.com", Subject: "Code", Body: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "mail:25", gotAddr)
	assert.Equal(t, "noreply@example.com", gotFrom)
	assert.Equal(t, []string{"ann@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Code\r\n")
	assert.Contains(t, string(gotMsg), "\r\n\r\nabc")
}

func TestSMTPSenderOpensBreaker(t *testing.T) {
	calls := 0
	s := newSMTPSender("mail:25", "noreply@example.com", nil, func(string, smtp.Auth, string, []string, []byte) error {
		calls++
		return errors.New("connection refused")
	})

	for i := 0; i < 3; i++ {
		require.Error(t, s.Send(context.Background(), Message{To: "ann@example.com"}))
	}
	err := s.Send(context.Background(), Message{To: "ann@example.com"})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 3, calls)
}

func TestSMTPSenderHonorsCanceledContext(t *testing.T) {
	s := newSMTPSender("mail:25", "noreply@example.com", nil, func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send called with canceled context")
		return nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Send(ctx, Message{To: "ann@example.com"}), context.Canceled)
}

func TestNewFallsBackToLogSender(t *testing.T) {
	assert.IsType(t, LogSender{}, New(&config.Config{}))
	assert.IsType(t, &SMTPSender{}, New(&config.Config{SMTPHost: "mail", SMTPPort: 25}))
}

func TestOutbox(t *testing.T) {
	o := &Outbox{}
	require.NoError(t, o.Send(context.Background(), Message{To: "a", Body: "1"}))
	require.NoError(t, o.Send(context.Background(), Message{To: "b", Body: "2"}))
	require.NoError(t, o.Send(context.Background(), Message{To: "a", Body: "3"}))

	m, ok := o.Last("a")
	require.True(t, ok)
	assert.Equal(t, "3", m.Body)
	_, ok = o.Last("c")
	assert.False(t, ok)
	assert.Len(t, o.Messages(), 3)

	o.Err = errors.New("down")
	assert.Error(t, o.Send(context.Background(), Message{To: "a"}))
}
