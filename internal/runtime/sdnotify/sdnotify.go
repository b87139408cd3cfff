// Package sdnotify reports service state to systemd over NOTIFY_SOCKET.
// Outside systemd every call is a no-op.
package sdnotify

import (
	"context"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"

	logx "homeworkbot/pkg/logx"
)

type notifyFunc func(unsetEnvironment bool, state string) (bool, error)

type Notifier struct {
	log    logx.Logger
	notify notifyFunc
}

func New(log logx.Logger) *Notifier {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Notifier{log: log, notify: daemon.SdNotify}
}

func (n *Notifier) send(state string) {
	if n == nil {
		return
	}
	sent, err := n.notify(false, state)
	if err != nil {
		n.log.Warn("sd_notify failed", logx.String("state", state), logx.Err(err))
		return
	}
	if sent {
		n.log.Trace("sd_notify", logx.String("state", state))
	}
}

func (n *Notifier) Ready() { n.send(daemon.SdNotifyReady) }

func (n *Notifier) Stopping() { n.send(daemon.SdNotifyStopping) }

// Status implements poller.StatusReporter.
func (n *Notifier) Status(line string) { n.send("STATUS=" + line) }

// Watchdog pings the systemd watchdog at half the configured interval until
// ctx is canceled. It returns at once when the unit has no WatchdogSec.
func (n *Notifier) Watchdog(ctx context.Context) error {
	every, err := daemon.SdWatchdogEnabled(false)
	if err != nil || every <= 0 {
		return err
	}
	t := time.NewTicker(every / 2)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			n.send(daemon.SdNotifyWatchdog)
		}
	}
}
