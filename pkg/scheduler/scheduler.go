package scheduler

import (
	"context"
	"time"
)

// TurnCheck is the watchdog message enqueued when a turn submission starts.
// The watchdog reverts the turn only if the same submission is still
// pending when the message is delivered.
type TurnCheck struct {
	BattleID    string    `json:"battle_id"`
	Player      string    `json:"player"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Scheduler defines the interface for deferring a turn check until the
// watchdog grace period has elapsed.
type Scheduler interface {
	// ScheduleTurnCheck enqueues a turn check delivered after delay.
	ScheduleTurnCheck(ctx context.Context, check TurnCheck, delay time.Duration) error
}
