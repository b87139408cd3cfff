package sdnotify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	logx "homeworkbot/pkg/logx"
)

func TestStates(t *testing.T) {
	var got []string
	n := New(logx.Nop())
	n.notify = func(_ bool, state string) (bool, error) {
		got = append(got, state)
		return true, nil
	}

	n.Ready()
	n.Status("last cycle notified: proj1 is approved")
	n.Stopping()

	assert.Equal(t, []string{"READY=1", "STATUS=last cycle notified: proj1 is approved", "STOPPING=1"}, got)
}

func TestSendErrorIsNotFatal(t *testing.T) {
	n := New(logx.Nop())
	n.notify = func(bool, string) (bool, error) { return false, errors.New("socket gone") }
	assert.NotPanics(t, n.Ready)

	var nilNotifier *Notifier
	assert.NotPanics(t, func() { nilNotifier.Status("x") })
}

func TestWatchdogOutsideSystemd(t *testing.T) {
	t.Setenv("WATCHDOG_USEC", "")
	t.Setenv("WATCHDOG_PID", "")
	assert.NoError(t, New(logx.Nop()).Watchdog(context.Background()))
}
