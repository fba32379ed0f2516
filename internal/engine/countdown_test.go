package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountdownDerivedFromDeadline(t *testing.T) {
	stats := &fakeStats{}
	e := newTestEngine(t, newFakeStore(), stats)

	e.StartCountdown(10 * time.Minute)
	assert.Equal(t, 600, e.CountdownRemaining())

	// Remaining is derived from the absolute deadline, so a suspension gap
	// shows up immediately instead of drifting.
	e.clock = func() time.Time { return baseTime.Add(4 * time.Minute) }
	assert.Equal(t, 360, e.CountdownRemaining())

	require.Eventually(t, func() bool { return stats.timerPushCount() == 1 }, time.Second, 5*time.Millisecond)
}

func TestCountdownFinishesExactlyOnce(t *testing.T) {
	stats := &fakeStats{}
	e := newTestEngine(t, newFakeStore(), stats)

	e.StartCountdown(10 * time.Minute)

	e.clock = func() time.Time { return baseTime.Add(601 * time.Second) }
	assert.Equal(t, 0, e.CountdownRemaining())

	// Drain events armed so far.
	for len(e.events) > 0 {
		<-e.events
	}

	// Repeated ticks past expiry fire the done event once and only once.
	for i := 0; i < 5; i++ {
		e.step(e.clock())
	}

	done := 0
	for len(e.events) > 0 {
		if ev := <-e.events; ev.Kind == EventCountdownDone {
			done++
		}
	}
	assert.Equal(t, 1, done)
	assert.Equal(t, int64(0), e.Snapshot().Countdown.EndAt)

	// Arm + clear both mirrored to the service.
	require.Eventually(t, func() bool { return stats.timerPushCount() == 2 }, time.Second, 5*time.Millisecond)
}

func TestCancelCountdown(t *testing.T) {
	stats := &fakeStats{}
	e := newTestEngine(t, newFakeStore(), stats)

	e.StartCountdown(5 * time.Minute)
	e.CancelCountdown()

	assert.Equal(t, 0, e.CountdownRemaining())
	assert.Equal(t, int64(0), e.Snapshot().Countdown.EndAt)

	require.Eventually(t, func() bool { return stats.timerPushCount() == 2 }, time.Second, 5*time.Millisecond)

	// Cancelling an idle countdown does not push again.
	e.CancelCountdown()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 2, stats.timerPushCount())
}
