package engine

type EventKind string

const (
	// One second of sedentary time was recorded.
	EventTick EventKind = "tick"
	// DND suppression flipped on or off.
	EventDND EventKind = "dnd"
	// The alert level crossed a threshold.
	EventAlert EventKind = "alert"
	// A break or workout committed the session into the day total.
	EventCommitted EventKind = "committed"
	// A pull folded remote state back in.
	EventPulled EventKind = "pulled"
	// The quick countdown advanced.
	EventCountdown EventKind = "countdown"
	// The quick countdown reached zero. Fires exactly once per run.
	EventCountdownDone EventKind = "countdown_done"
	// Settings were replaced.
	EventSettings EventKind = "settings"
)

// Event is a state-change notification for the presentation boundary.
// The core never depends on who is listening; sends are non-blocking and a
// slow consumer just misses ticks.
type Event struct {
	Kind      EventKind `json:"kind"`
	Elapsed   int       `json:"elapsed,omitempty"`
	Remaining int       `json:"remaining,omitempty"`
	Level     int       `json:"level,omitempty"`
	Label     string    `json:"label,omitempty"`
}
