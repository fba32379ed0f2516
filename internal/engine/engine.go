// Package engine holds the sedentary session engine: the count-up clock,
// DND suppression, the quick countdown and reconciliation against the stats
// service. One engine exists per authenticated user session; everything it
// shares goes through a single mutex, so loops and callers are all writers
// of last resort to one state container.
package engine

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/moveease/sitclock/internal/domain"
	"github.com/moveease/sitclock/internal/statsapi"
	"github.com/moveease/sitclock/internal/storage"
)

// StatsClient is the slice of the stats service contract the engine uses.
type StatsClient interface {
	FetchStats(ctx context.Context, userID string) (*statsapi.StatsResponse, error)
	PushStats(ctx context.Context, req statsapi.PushStatsRequest) error
	PushTimer(ctx context.Context, userID string, endAt int64, durationSec int) error
	UpdateProfile(ctx context.Context, userID, name, avatar string) error
}

// Intervals groups the periodic cadences so tests can shrink them.
type Intervals struct {
	Tick time.Duration
	DND  time.Duration
	Poll time.Duration
}

func DefaultIntervals() Intervals {
	return Intervals{
		Tick: time.Second,
		DND:  10 * time.Second,
		Poll: 30 * time.Second,
	}
}

type Engine struct {
	mu    sync.Mutex
	state State

	store storage.SnapshotStore
	stats StatsClient
	loc   *time.Location

	intervals Intervals
	clock     func() time.Time

	events chan Event

	ctx     context.Context
	cancel  context.CancelFunc
	running bool

	migrated bool // the one-shot legacy migration already fired
}

// NewEngine seeds state from the snapshot store. The persisted counter is
// taken verbatim: wall-clock time that passed while no engine was running is
// deliberately not added back, so a long absence never shows up as a
// monster sitting session. Absent or undecodable snapshots fall back to a
// zeroed counter with monitoring on.
func NewEngine(userID string, store storage.SnapshotStore, stats StatsClient, loc *time.Location, intervals Intervals) *Engine {
	ctx, cancel := context.WithCancel(context.Background())

	e := &Engine{
		store:     store,
		stats:     stats,
		loc:       loc,
		intervals: intervals,
		clock:     time.Now,
		events:    make(chan Event, 64),
		ctx:       ctx,
		cancel:    cancel,
	}

	e.state = State{
		UserID:     userID,
		Monitoring: true,
		Foreground: true,
		Settings:   domain.DefaultSettings(),
	}

	snap, found, err := store.LoadTimer(userID)
	if err != nil {
		log.Printf("engine %s: unreadable timer snapshot, starting fresh: %v", userID, err)
	} else if found {
		e.state.ElapsedSeconds = snap.Time
		e.state.Monitoring = snap.Monitoring
	}

	settings, found, err := store.LoadSettings(userID)
	if err != nil {
		log.Printf("engine %s: unreadable settings snapshot, using defaults: %v", userID, err)
	} else if found {
		e.state.Settings = settings
	}

	e.state.AlertLevel = domain.AlertLevel(e.state.ElapsedSeconds, e.state.Settings.SedentaryThresholdMin)

	return e
}

// Run starts the periodic loops and the initial pull. It returns immediately
// and is not restartable after Close.
func (e *Engine) Run() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.mu.Unlock()

	e.evaluateDND(e.clock())

	go e.pull()
	go e.tickLoop()
	go e.dndLoop()
	go e.pollLoop()
}

// Close tears down all periodic tasks. Used on logout.
func (e *Engine) Close() {
	e.cancel()
}

func (e *Engine) Events() <-chan Event {
	return e.events
}

func (e *Engine) tickLoop() {
	ticker := time.NewTicker(e.intervals.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			e.step(e.clock())
		case <-e.ctx.Done():
			return
		}
	}
}

func (e *Engine) dndLoop() {
	ticker := time.NewTicker(e.intervals.DND)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			e.evaluateDND(e.clock())
		case <-e.ctx.Done():
			return
		}
	}
}

func (e *Engine) pollLoop() {
	ticker := time.NewTicker(e.intervals.Poll)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			e.mu.Lock()
			foreground := e.state.Foreground
			e.mu.Unlock()
			if foreground {
				e.pull()
			}
		case <-e.ctx.Done():
			return
		}
	}
}

// step advances both clocks by one cadence. Each call adds at most one
// second to the sedentary counter no matter how much wall time passed, which
// is what keeps reloads and suspended processes from overcounting.
func (e *Engine) step(now time.Time) {
	e.mu.Lock()

	if e.state.Countdown.EndAt != 0 {
		remaining := countdownRemaining(e.state.Countdown.EndAt, now)
		if remaining <= 0 {
			e.state.Countdown = Countdown{}
			e.emit(Event{Kind: EventCountdownDone})
			e.pushTimerAsync(0, 0)
		} else {
			e.emit(Event{Kind: EventCountdown, Remaining: remaining})
		}
	}

	if e.canTickLocked() {
		e.state.ElapsedSeconds++
		e.emit(Event{Kind: EventTick, Elapsed: e.state.ElapsedSeconds})
		e.refreshAlertLocked()
	}

	// Persist the full snapshot every cadence, ticking or not, so pause
	// flips and external writes never leave a stale value on disk.
	e.persistTimerLocked()
	e.mu.Unlock()
}

func (e *Engine) canTickLocked() bool {
	return e.state.Monitoring && !e.state.DNDActive && !e.state.Exercising
}

func (e *Engine) refreshAlertLocked() {
	level := domain.AlertLevel(e.state.ElapsedSeconds, e.state.Settings.SedentaryThresholdMin)
	if level != e.state.AlertLevel {
		e.state.AlertLevel = level
		e.emit(Event{Kind: EventAlert, Level: level})
	}
}

func (e *Engine) evaluateDND(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	active, label := domain.EvaluateDND(
		now,
		e.state.Settings.DoNotDisturb.Schedules,
		e.state.Settings.DoNotDisturb.SmartDetection,
	)

	if active != e.state.DNDActive || label != e.state.DNDLabel {
		e.state.DNDActive = active
		e.state.DNDLabel = label
		e.emit(Event{Kind: EventDND, Label: label})
	}
}

// Pause stops the count-up clock without losing the counter.
func (e *Engine) Pause() {
	e.setMonitoring(false)
}

func (e *Engine) Resume() {
	e.setMonitoring(true)
}

func (e *Engine) setMonitoring(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Monitoring = on
	e.persistTimerLocked()
}

// StartExercise marks a foreground workout session, which gates the
// sedentary clock. EndExercise lifts it again.
func (e *Engine) StartExercise() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Exercising = true
}

func (e *Engine) EndExercise() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Exercising = false
}

// SetVisibility gates polling and pulls immediately when the app comes back
// to the foreground.
func (e *Engine) SetVisibility(foreground bool) {
	e.mu.Lock()
	regained := foreground && !e.state.Foreground
	e.state.Foreground = foreground
	e.mu.Unlock()

	if regained {
		go e.pull()
	}
}

// UpdateSettings replaces the settings snapshot and re-evaluates DND right
// away rather than waiting for the next cadence. Schedules arriving without
// an ID get one minted here.
func (e *Engine) UpdateSettings(s domain.Settings) {
	for i := range s.DoNotDisturb.Schedules {
		if s.DoNotDisturb.Schedules[i].ID == "" {
			s.DoNotDisturb.Schedules[i].ID = uuid.New().String()
		}
	}

	e.mu.Lock()
	e.state.Settings = s
	if err := e.store.SaveSettings(e.state.UserID, s); err != nil {
		log.Printf("engine %s: persist settings: %v", e.state.UserID, err)
	}
	e.refreshAlertLocked()
	e.emit(Event{Kind: EventSettings})
	e.mu.Unlock()

	e.evaluateDND(e.clock())
}

// UpdateProfile applies a profile edit locally first, then mirrors it.
func (e *Engine) UpdateProfile(name, avatar string) {
	e.mu.Lock()
	e.state.Profile = Profile{Name: name, Avatar: avatar}
	userID := e.state.UserID
	e.mu.Unlock()

	go func() {
		if err := e.stats.UpdateProfile(e.ctx, userID, name, avatar); err != nil {
			log.Printf("engine %s: profile push failed: %v", userID, err)
		}
	}()
}

// Snapshot returns a copy of the state for the presentation layer.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := e.state.clone()
	out.TodayTotalMinutes = e.todayTotalMinutesLocked(e.clock())
	return out
}

// TodayTotalMinutes is committed minutes plus the in-flight session.
func (e *Engine) TodayTotalMinutes() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.todayTotalMinutesLocked(e.clock())
}

func (e *Engine) todayTotalMinutesLocked(now time.Time) int {
	today := domain.DayKey(now, e.loc)
	committed := 0
	for _, day := range e.state.Week {
		if day.Date == today {
			committed = day.SedentaryMinutes
			break
		}
	}
	return committed + e.state.ElapsedSeconds/60
}

func (e *Engine) persistTimerLocked() {
	snap := storage.TimerSnapshot{
		Time:       e.state.ElapsedSeconds,
		Monitoring: e.state.Monitoring,
	}
	if err := e.store.SaveTimer(e.state.UserID, snap); err != nil {
		log.Printf("engine %s: persist timer: %v", e.state.UserID, err)
	}
}

func (e *Engine) emit(ev Event) {
	select {
	case e.events <- ev:
	default:
	}
}
