package poller

import (
	"fmt"
	"time"

	"homeworkbot/internal/homework"
)

// Outcome classifies how a cycle ended.
type Outcome string

const (
	OutcomeFetchFailed     Outcome = "fetch_failed"
	OutcomeInvalidResponse Outcome = "invalid_response"
	OutcomeEmpty           Outcome = "empty"
	OutcomeInvalidItem     Outcome = "invalid_item"
	OutcomeUnchanged       Outcome = "unchanged"
	OutcomeNotified        Outcome = "notified"
	OutcomePanic           Outcome = "panic"
)

// CycleResult describes one finished cycle. Err is set for the failure
// outcomes only; Status is set when a homework was interpreted.
type CycleResult struct {
	ID      string
	Outcome Outcome
	Status  homework.Status
	Err     error
	Took    time.Duration
}

func (r CycleResult) Failed() bool { return r.Err != nil }

// Summary is a short human-readable line, e.g. for systemd STATUS=.
func (r CycleResult) Summary() string {
	switch {
	case r.Err != nil:
		return fmt.Sprintf("last cycle %s: %v", r.Outcome, r.Err)
	case r.Status.Code != "":
		return fmt.Sprintf("last cycle %s: %s is %s", r.Outcome, r.Status.Name, r.Status.Code)
	default:
		return fmt.Sprintf("last cycle %s", r.Outcome)
	}
}
