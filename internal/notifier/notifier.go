package notifier

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"homeworkbot/internal/observability/metrics"
	kit "homeworkbot/internal/transport"
	logx "homeworkbot/pkg/logx"
)

type Config struct {
	Target kit.ChatTarget
	// RatePerSec limits sends; <= 0 disables limiting.
	RatePerSec int
	// Timeout bounds a single send (rate wait included). Default 30s.
	Timeout time.Duration
}

// DeliveryError wraps a failed send. It is only ever logged.
type DeliveryError struct {
	ChatID int64
	Err    error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver to chat %d: %v", e.ChatID, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

type Notifier struct {
	cfg     Config
	sender  kit.Sender
	limiter *rate.Limiter
	log     logx.Logger
	metrics *metrics.Metrics
}

func New(cfg Config, sender kit.Sender, log logx.Logger, m *metrics.Metrics) *Notifier {
	if log.IsZero() {
		log = logx.Nop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	n := &Notifier{cfg: cfg, sender: sender, log: log, metrics: m}
	if cfg.RatePerSec > 0 {
		n.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.RatePerSec)
	}
	return n
}

// Notify sends message to the configured chat. Failures are logged at error
// level and swallowed; there is no retry.
func (n *Notifier) Notify(ctx context.Context, message string) {
	if err := n.send(ctx, message); err != nil {
		n.metrics.ObserveNotification(false)
		n.log.Error("failed to send message", logx.Err(err), logx.Int64("chat_id", n.cfg.Target.ChatID))
		return
	}
	n.metrics.ObserveNotification(true)
	n.log.Debug("message sent", logx.String("text", message))
}

func (n *Notifier) send(ctx context.Context, message string) (err error) {
	defer func() {
		// Sender panics count as delivery failures.
		if r := recover(); r != nil {
			err = fmt.Errorf("sender panic: %v", r)
		}
		if err != nil {
			err = &DeliveryError{ChatID: n.cfg.Target.ChatID, Err: err}
		}
	}()

	if n.sender == nil {
		return fmt.Errorf("no sender configured")
	}
	ctx, cancel := context.WithTimeout(ctx, n.cfg.Timeout)
	defer cancel()

	if n.limiter != nil {
		if err := n.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	_, err = n.sender.SendText(ctx, n.cfg.Target, message, &kit.SendOptions{DisablePreview: true})
	return err
}
