// Package mail delivers confirmation codes.
package mail

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	gobreaker "github.com/sony/gobreaker/v2"

	"review_system/internal/config"
	"review_system/internal/metrics"
)

// Message is a plain text mail.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// New returns an SMTP sender, or a LogSender when no SMTP host is configured.
func New(cfg *config.Config) Sender {
	if cfg.SMTPHost == "" {
		logrus.Warn("SMTP_HOST is empty, confirmation codes will be logged")
		return LogSender{}
	}
	return NewSMTPSender(cfg)
}

// LogSender writes messages to the log instead of sending them.
type LogSender struct{}

func (LogSender) Send(_ context.Context, m Message) error {
	logrus.WithFields(logrus.Fields{
		"to":      m.To,
		"subject": m.Subject,
	}).Info(m.Body)
	metrics.MailSent.WithLabelValues("ok").Inc()
	return nil
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender sends through an SMTP relay behind a circuit breaker. Three
// consecutive failures open the breaker for 30 seconds.
type SMTPSender struct {
	addr    string
	from    string
	auth    smtp.Auth
	breaker *gobreaker.CircuitBreaker[struct{}]
	send    sendFunc
}

func NewSMTPSender(cfg *config.Config) *SMTPSender {
	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	}
	return newSMTPSender(cfg.SMTPHost+":"+strconv.Itoa(cfg.SMTPPort), cfg.MailFrom, auth, smtp.SendMail)
}

func newSMTPSender(addr, from string, auth smtp.Auth, send sendFunc) *SMTPSender {
	settings := gobreaker.Settings{
		Name:        "smtp",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logrus.WithFields(logrus.Fields{"breaker": name, "from": from.String(), "to": to.String()}).Warn("Circuit breaker state changed")
		},
	}
	return &SMTPSender{
		addr:    addr,
		from:    from,
		auth:    auth,
		breaker: gobreaker.NewCircuitBreaker[struct{}](settings),
		send:    send,
	}
}

// Send delivers m, or fails immediately while the breaker is open.
func (s *SMTPSender) Send(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, s.send(s.addr, s.auth, s.from, []string{m.To}, s.format(m))
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.MailSent.WithLabelValues("rejected").Inc()
		return fmt.Errorf("smtp unavailable: %w", err)
	case err != nil:
		metrics.MailSent.WithLabelValues("error").Inc()
		return fmt.Errorf("send mail to %s: %w", m.To, err)
	}
	metrics.MailSent.WithLabelValues("ok").Inc()
	return nil
}

func (s *SMTPSender) format(m Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + s.from + "\r\n")
	b.WriteString("To: " + m.To + "\r\n")
	b.WriteString("Subject: " + m.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	b.WriteString(m.Body)
	return []byte(b.String())
}

// Outbox keeps messages in memory. Tests read confirmation codes from it.
type Outbox struct {
	mu       sync.Mutex
	messages []Message
	Err      error // returned by Send when set
}

func (o *Outbox) Send(_ context.Context, m Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Err != nil {
		return o.Err
	}
	o.messages = append(o.messages, m)
	return nil
}

// Messages returns a copy of everything sent so far.
func (o *Outbox) Messages() []Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Message(nil), o.messages...)
}

// Last returns the latest message sent to addr.
func (o *Outbox) Last(addr string) (Message, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := len(o.messages) - 1; i >= 0; i-- {
		if o.messages[i].To == addr {
			return o.messages[i], true
		}
	}
	return Message{}, false
}
