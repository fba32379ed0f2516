package domain

// Badge is derived state, never persisted.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"unlocked"`
	Description string `json:"description"`
}

// Badges evaluates the achievement wall for the given stats. The order is
// fixed. Night Owl, Weekend Warrior and Focus Master are placeholders for
// criteria that do not exist yet and stay locked unconditionally;
// todaySedentaryMinutes is accepted so Focus Master can light up in a later
// revision without changing the signature.
func Badges(stats UserStats, todaySedentaryMinutes int) []Badge {
	_ = todaySedentaryMinutes

	return []Badge{
		{
			ID:          "1",
			Name:        "First Step",
			Icon:        "🚀",
			Unlocked:    stats.TotalWorkouts >= 1,
			Description: "Complete your 1st micro-workout.",
		},
		{
			ID:          "2",
			Name:        "3-Day Streak",
			Icon:        "🔥",
			Unlocked:    stats.CurrentStreak >= 3,
			Description: "Complete at least 1 workout for 3 days in a row.",
		},
		{
			ID:          "3",
			Name:        "Fitness Pro",
			Icon:        "💪",
			Unlocked:    stats.TotalWorkouts >= 20,
			Description: "Accumulate 20 completed workouts.",
		},
		{
			ID:          "4",
			Name:        "Neck Saver",
			Icon:        "🦒",
			Unlocked:    stats.TotalWorkouts >= 50,
			Description: "Accumulate 50 completed workouts.",
		},
		{
			ID:          "5",
			Name:        "Night Owl",
			Icon:        "🦉",
			Unlocked:    false,
			Description: "Complete a session after 10 PM (in dev).",
		},
		{
			ID:          "6",
			Name:        "Weekend Warrior",
			Icon:        "⚔️",
			Unlocked:    false,
			Description: "Hit goals on Sat & Sun (in dev).",
		},
		{
			ID:          "7",
			Name:        "Focus Master",
			Icon:        "🧘",
			Unlocked:    false,
			Description: "Log 50+ hours of sedentary time (in dev).",
		},
		{
			ID:          "8",
			Name:        "7-Day Streak",
			Icon:        "🏆",
			Unlocked:    stats.CurrentStreak >= 7,
			Description: "Complete at least 1 workout for 7 days in a row.",
		},
	}
}
