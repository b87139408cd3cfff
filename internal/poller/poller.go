// Package poller runs the fetch → validate → interpret → compare → notify
// cycle on a fixed cadence.
//
// The loop owns all mutable state (the query cursor and the last notified
// status). Every failure inside a cycle is classified, logged and, when
// enabled, reported to the chat; none of them stops the loop.
package poller

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"homeworkbot/internal/homework"
	"homeworkbot/internal/observability/metrics"
	logx "homeworkbot/pkg/logx"
)

const DefaultInterval = 600 * time.Second

// Fetcher is the status fetch capability. It returns the JSON-decoded body.
type Fetcher interface {
	Fetch(ctx context.Context, from int64) (any, error)
}

// Notifier is the best-effort send capability. It never reports failure.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// StatusReporter receives a one-line summary after every cycle
// (systemd STATUS= in production). Optional.
type StatusReporter interface {
	Status(line string)
}

type Config struct {
	Interval time.Duration
	// AdvanceCursor moves the cursor to the response's current_date after
	// every successful cycle instead of re-scanning from the epoch.
	AdvanceCursor bool
	// ReportErrors also sends cycle failures to the chat.
	ReportErrors bool
}

// State is the loop's memory. It lives for the process lifetime only.
type State struct {
	// Cursor is the from_date of the next request (unix seconds).
	Cursor int64
	// LastStatus is the last status a notification was attempted for
	// ("" until the first one).
	LastStatus homework.StatusCode
	// LastReported is the text of the last failure sent to the chat.
	LastReported string
}

type Loop struct {
	cfg      Config
	fetcher  Fetcher
	notifier Notifier
	reporter StatusReporter
	log      logx.Logger
	metrics  *metrics.Metrics

	state State

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

type Option func(*Loop)

func WithMetrics(m *metrics.Metrics) Option { return func(l *Loop) { l.metrics = m } }

func WithStatusReporter(r StatusReporter) Option { return func(l *Loop) { l.reporter = r } }

func New(cfg Config, f Fetcher, n Notifier, log logx.Logger, opts ...Option) *Loop {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if log.IsZero() {
		log = logx.Nop()
	}
	l := &Loop{
		cfg:      cfg,
		fetcher:  f,
		notifier: n,
		log:      log,
		now:      time.Now,
		sleep:    sleepCtx,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// State returns a copy of the loop state.
func (l *Loop) State() State { return l.state }

// Run executes cycles until ctx is canceled, sleeping the fixed interval
// after every cycle whatever its outcome.
func (l *Loop) Run(ctx context.Context) error {
	l.log.Info("poll loop started", logx.Duration("interval", l.cfg.Interval), logx.Bool("advance_cursor", l.cfg.AdvanceCursor))
	for {
		res := l.RunCycle(ctx)
		if l.reporter != nil {
			l.reporter.Status(res.Summary())
		}
		if err := l.sleep(ctx, l.cfg.Interval); err != nil {
			l.log.Info("poll loop stopped")
			return nil
		}
	}
}

// RunCycle performs one cycle and returns its classified outcome.
// It never panics: a panic inside the cycle is recovered as OutcomePanic.
func (l *Loop) RunCycle(ctx context.Context) (res CycleResult) {
	id := uuid.NewString()
	log := l.log.With(logx.String("cycle", id))
	started := l.now()

	defer func() {
		if r := recover(); r != nil {
			res = CycleResult{ID: id, Outcome: OutcomePanic, Err: fmt.Errorf("cycle panic: %v", r)}
			log.Error("cycle panicked", logx.Any("panic", r), logx.Stack(string(debug.Stack())))
			l.reportFailure(ctx, log, res)
		}
		res.ID = id
		res.Took = l.now().Sub(started)
		l.metrics.ObserveCycle(string(res.Outcome), l.now())
	}()

	res = l.cycle(ctx, log)
	if res.Failed() {
		if errors.Is(res.Err, context.Canceled) {
			log.Debug("cycle interrupted", logx.String("outcome", string(res.Outcome)), logx.Err(res.Err))
			return res
		}
		log.Error("cycle failed", logx.String("outcome", string(res.Outcome)), logx.Err(res.Err))
		l.reportFailure(ctx, log, res)
		return res
	}
	// A clean cycle re-arms failure reporting.
	l.state.LastReported = ""
	return res
}

func (l *Loop) cycle(ctx context.Context, log logx.Logger) CycleResult {
	body, err := l.fetcher.Fetch(ctx, l.state.Cursor)
	if err != nil {
		return CycleResult{Outcome: OutcomeFetchFailed, Err: err}
	}

	resp, err := homework.ValidateResponse(body)
	if err != nil {
		return CycleResult{Outcome: OutcomeInvalidResponse, Err: err}
	}

	items := homework.Homeworks(resp)
	if len(items) == 0 {
		log.Debug("no homeworks in window", logx.Int64("from_date", l.state.Cursor))
		return CycleResult{Outcome: OutcomeEmpty}
	}

	// The API returns the most recent homework first.
	st, err := homework.ParseStatus(items[0])
	if err != nil {
		return CycleResult{Outcome: OutcomeInvalidItem, Err: err}
	}

	res := CycleResult{Outcome: OutcomeUnchanged, Status: st}
	if st.Code == l.state.LastStatus {
		log.Debug("no status change", logx.String("homework", st.Name), logx.String("status", string(st.Code)))
	} else {
		log.Info("status changed",
			logx.String("homework", st.Name),
			logx.String("from", string(l.state.LastStatus)),
			logx.String("to", string(st.Code)),
		)
		l.notifier.Notify(ctx, st.Message())
		l.state.LastStatus = st.Code
		res.Outcome = OutcomeNotified
	}
	l.advance(resp)
	return res
}

func (l *Loop) advance(resp map[string]any) {
	if !l.cfg.AdvanceCursor {
		return
	}
	if ts, ok := homework.CurrentDate(resp); ok && ts > l.state.Cursor {
		l.state.Cursor = ts
	}
}

// reportFailure sends a failure notice to the chat, once per distinct error
// text until a clean cycle happens.
func (l *Loop) reportFailure(ctx context.Context, log logx.Logger, res CycleResult) {
	if !l.cfg.ReportErrors || !res.Failed() || errors.Is(res.Err, context.Canceled) {
		return
	}
	msg := "Сбой в работе программы: " + res.Err.Error()
	if msg == l.state.LastReported {
		log.Debug("failure already reported", logx.String("outcome", string(res.Outcome)))
		return
	}
	l.notifier.Notify(ctx, msg)
	l.state.LastReported = msg
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
