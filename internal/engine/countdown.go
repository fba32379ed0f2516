package engine

import (
	"log"
	"time"
)

// StartCountdown arms the quick timer against an absolute deadline and
// mirrors it to the stats service so other devices see the same one.
func (e *Engine) StartCountdown(duration time.Duration) {
	endAt := e.clock().Add(duration).UnixMilli()
	seconds := int(duration / time.Second)

	e.mu.Lock()
	e.state.Countdown = Countdown{EndAt: endAt, Duration: seconds}
	e.emit(Event{Kind: EventCountdown, Remaining: seconds})
	e.mu.Unlock()

	e.pushTimerAsync(endAt, seconds)
}

// CancelCountdown clears the deadline locally and remotely.
func (e *Engine) CancelCountdown() {
	e.mu.Lock()
	armed := e.state.Countdown.EndAt != 0
	e.state.Countdown = Countdown{}
	e.mu.Unlock()

	if armed {
		e.pushTimerAsync(0, 0)
	}
}

// CountdownRemaining derives the seconds left; 0 means idle or expired.
func (e *Engine) CountdownRemaining() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Countdown.EndAt == 0 {
		return 0
	}
	remaining := countdownRemaining(e.state.Countdown.EndAt, e.clock())
	if remaining < 0 {
		return 0
	}
	return remaining
}

func countdownRemaining(endAt int64, now time.Time) int {
	return int((endAt - now.UnixMilli()) / 1000)
}

// pushTimerAsync may be called with the mutex held; UserID is immutable
// after construction so no lock is taken here.
func (e *Engine) pushTimerAsync(endAt int64, durationSec int) {
	userID := e.state.UserID

	go func() {
		if err := e.stats.PushTimer(e.ctx, userID, endAt, durationSec); err != nil {
			log.Printf("engine %s: timer push failed: %v", userID, err)
		}
	}()
}
