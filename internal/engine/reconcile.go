package engine

import (
	"log"
	"time"

	"github.com/moveease/sitclock/internal/domain"
	"github.com/moveease/sitclock/internal/statsapi"
)

// Break is the "I moved" action: commit the session and count it as an
// active break.
func (e *Engine) Break() {
	e.Commit(true)
}

// CompleteWorkout folds a finished workout into the gamification stats, then
// commits the session like a break.
func (e *Engine) CompleteWorkout() {
	e.mu.Lock()
	e.state.Stats = domain.ApplyWorkout(e.state.Stats, e.clock(), e.loc)
	e.mu.Unlock()

	e.Commit(true)
}

// Commit banks the current session into today's accumulation, pushes the new
// totals and zeroes the timer. Local state is updated before the push is
// even attempted and the whole fold happens under one lock, so the displayed
// today-total can never regress mid-commit. The push itself is
// fire-and-forget: a failure is logged and the next successful commit or
// pull squares things up.
func (e *Engine) Commit(countBreak bool) {
	now := e.clock()

	e.mu.Lock()
	minutes := e.state.ElapsedSeconds / 60
	today := domain.DayKey(now, e.loc)

	acc := e.ensureTodayLocked(today)
	acc.SedentaryMinutes += minutes
	if countBreak {
		acc.ActiveBreaks++
	}

	payload := statsapi.PushStatsRequest{
		UserID:                e.state.UserID,
		TotalWorkouts:         e.state.Stats.TotalWorkouts,
		CurrentStreak:         e.state.Stats.CurrentStreak,
		LastWorkoutDate:       e.state.Stats.LastWorkoutDate,
		TodaySedentaryMinutes: acc.SedentaryMinutes,
		TodayBreaks:           acc.ActiveBreaks,
	}

	e.state.ElapsedSeconds = 0
	e.state.AlertLevel = 0
	e.persistTimerLocked()
	e.emit(Event{Kind: EventCommitted})
	e.mu.Unlock()

	go e.pushStats(payload)
}

// ensureTodayLocked returns the week entry for today, rotating the window
// forward when the calendar day has moved on since the last pull.
func (e *Engine) ensureTodayLocked(today string) *domain.DailyAccumulation {
	if n := len(e.state.Week); n > 0 && e.state.Week[n-1].Date == today {
		return &e.state.Week[n-1]
	}

	e.state.Week = append(e.state.Week, domain.DailyAccumulation{Date: today})
	if len(e.state.Week) > 7 {
		e.state.Week = e.state.Week[len(e.state.Week)-7:]
	}
	return &e.state.Week[len(e.state.Week)-1]
}

func (e *Engine) pushStats(payload statsapi.PushStatsRequest) {
	if err := e.stats.PushStats(e.ctx, payload); err != nil {
		log.Printf("engine %s: stats push failed: %v", payload.UserID, err)
	}
}

// pull fetches remote state and folds it back in. Remote is authoritative
// for committed totals; the in-flight counter is local-only and untouched.
func (e *Engine) pull() {
	e.mu.Lock()
	userID := e.state.UserID
	e.mu.Unlock()

	resp, err := e.stats.FetchStats(e.ctx, userID)
	if err != nil {
		log.Printf("engine %s: pull failed, keeping local state: %v", userID, err)
		return
	}

	now := e.clock()

	e.mu.Lock()
	defer e.mu.Unlock()

	// Migration guard: a zero remote total with local history means this
	// device predates the server record. Push local once and skip the
	// merge, otherwise a stale response would wipe real progress. A user
	// who legitimately zeroed their stats trips this too; known edge,
	// kept as-is.
	if resp.Stats.TotalWorkouts == 0 && e.state.Stats.TotalWorkouts > 0 {
		if !e.migrated {
			e.migrated = true
			today := domain.DayKey(now, e.loc)
			acc := e.ensureTodayLocked(today)
			go e.pushStats(statsapi.PushStatsRequest{
				UserID:                userID,
				TotalWorkouts:         e.state.Stats.TotalWorkouts,
				CurrentStreak:         e.state.Stats.CurrentStreak,
				LastWorkoutDate:       e.state.Stats.LastWorkoutDate,
				TodaySedentaryMinutes: acc.SedentaryMinutes,
				TodayBreaks:           acc.ActiveBreaks,
			})
		}
		return
	}

	e.state.Stats = domain.UserStats{
		TotalWorkouts:   resp.Stats.TotalWorkouts,
		CurrentStreak:   resp.Stats.CurrentStreak,
		LastWorkoutDate: resp.Stats.LastWorkoutDate,
	}

	e.state.Week = mergeWeek(resp.Activity, now, e.loc)

	// Only touch the countdown when the remote deadline actually moved;
	// rewriting an identical value every poll just causes display jitter.
	if resp.Stats.TimerEndAt != e.state.Countdown.EndAt {
		e.state.Countdown = Countdown{
			EndAt:    resp.Stats.TimerEndAt,
			Duration: resp.Stats.TimerDuration,
		}
	}

	if resp.Stats.Username != "" && resp.Stats.Username != e.state.Profile.Name {
		e.state.Profile.Name = resp.Stats.Username
	}
	if resp.Stats.AvatarURL != "" && resp.Stats.AvatarURL != e.state.Profile.Avatar {
		e.state.Profile.Avatar = resp.Stats.AvatarURL
	}

	e.refreshAlertLocked()
	e.emit(Event{Kind: EventPulled})
}

// mergeWeek projects the remote activity rows onto the last seven calendar
// days, matched by day key in the service timezone. Days the service has no
// row for come back zeroed.
func mergeWeek(activity []statsapi.ActivityEntry, now time.Time, loc *time.Location) []domain.DailyAccumulation {
	byDate := make(map[string]statsapi.ActivityEntry, len(activity))
	for _, a := range activity {
		byDate[a.Date] = a
	}

	keys := domain.LastNDayKeys(now, loc, 7)
	week := make([]domain.DailyAccumulation, len(keys))
	for i, key := range keys {
		week[i] = domain.DailyAccumulation{Date: key}
		if a, ok := byDate[key]; ok {
			week[i].SedentaryMinutes = a.SedentaryMinutes
			week[i].ActiveBreaks = a.ActiveBreaks
		}
	}
	return week
}
