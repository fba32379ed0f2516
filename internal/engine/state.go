package engine

import "github.com/moveease/sitclock/internal/domain"

// Countdown is the quick break timer. The deadline is absolute so missed
// ticks and process suspension cannot drift it; remaining time is always
// derived, never counted down.
type Countdown struct {
	EndAt    int64 `json:"endAt"`    // epoch millis, 0 when idle
	Duration int   `json:"duration"` // seconds the countdown was started with
}

type Profile struct {
	Name   string `json:"name,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// State is the single shared state container behind an engine. All mutation
// goes through engine operations under one mutex; the presentation layer
// only ever sees copies.
type State struct {
	UserID string `json:"userId"`

	ElapsedSeconds int  `json:"elapsedSeconds"`
	Monitoring     bool `json:"isMonitoring"`
	Exercising     bool `json:"exercising"`
	Foreground     bool `json:"foreground"`

	DNDActive  bool   `json:"dndActive"`
	DNDLabel   string `json:"dndLabel,omitempty"`
	AlertLevel int    `json:"alertLevel"`

	Settings domain.Settings  `json:"settings"`
	Stats    domain.UserStats `json:"stats"`

	// Week holds the last seven days of committed accumulation, oldest
	// first, the final entry being today.
	Week []domain.DailyAccumulation `json:"week"`

	Countdown Countdown `json:"countdown"`
	Profile   Profile   `json:"profile"`

	// TodayTotalMinutes is committed minutes plus the in-flight session,
	// filled in on snapshot. This is the number a display must never see
	// regress across a commit.
	TodayTotalMinutes int `json:"todayTotalMinutes"`
}

func (s State) clone() State {
	out := s
	out.Week = append([]domain.DailyAccumulation(nil), s.Week...)
	out.Settings.DoNotDisturb.Schedules = append(
		[]domain.DNDSchedule(nil), s.Settings.DoNotDisturb.Schedules...)
	return out
}
