// Package notification delivers SMS and email out of band of the request
// that triggered them.
package notification

import (
	"context"
	"sync"
	"time"

	"github.com/go-api-signup/internal/pkg/id"
	"go.uber.org/zap"
)

type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// Dispatcher runs each delivery in its own goroutine with a detached context
// bounded by timeout. Failures are logged and never reach the caller.
type Dispatcher struct {
	sms     SMSSender
	email   EmailSender
	timeout time.Duration
	log     *zap.Logger
	wg      sync.WaitGroup
}

// NewDispatcher builds a Dispatcher. Either sender may be nil, in which case
// that channel is logged and skipped.
func NewDispatcher(sms SMSSender, email EmailSender, timeout time.Duration, log *zap.Logger) *Dispatcher {
	return &Dispatcher{sms: sms, email: email, timeout: timeout, log: log}
}

// SendSMS queues an SMS and returns the dispatch id used in the logs.
func (d *Dispatcher) SendSMS(to, message string) string {
	if d.sms == nil {
		d.log.Warn("sms sender not configured, dropping message", zap.String("to", to))
		return ""
	}
	return d.dispatch("sms", to, func(ctx context.Context) error {
		return d.sms.SendSMS(ctx, to, message)
	})
}

// SendEmail queues an email and returns the dispatch id used in the logs.
func (d *Dispatcher) SendEmail(to, subject, body string) string {
	if d.email == nil {
		d.log.Warn("email sender not configured, dropping message", zap.String("to", to))
		return ""
	}
	return d.dispatch("email", to, func(ctx context.Context) error {
		return d.email.SendEmail(ctx, to, subject, body)
	})
}

// Wait blocks until every queued delivery has finished.
func (d *Dispatcher) Wait() { d.wg.Wait() }

func (d *Dispatcher) dispatch(channel, to string, send func(context.Context) error) string {
	dispatchID := id.New()
	log := d.log.With(zap.String("dispatch_id", dispatchID), zap.String("channel", channel), zap.String("to", to))

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Error("notification panicked", zap.Any("panic", r))
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		start := time.Now()
		if err := send(ctx); err != nil {
			log.Warn("notification failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
			return
		}
		log.Info("notification sent", zap.Duration("duration", time.Since(start)))
	}()
	return dispatchID
}
