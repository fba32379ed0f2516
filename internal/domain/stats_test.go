package domain

import (
	"testing"
	"time"
)

func TestApplyWorkoutStreakTransitions(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 6, 10, 15, 0, 0, 0, loc)

	tests := []struct {
		name       string
		last       string
		streak     int
		wantStreak int
	}{
		{name: "day after last workout", last: "2025-06-09", streak: 4, wantStreak: 5},
		{name: "same day again", last: "2025-06-10", streak: 4, wantStreak: 4},
		{name: "three day gap", last: "2025-06-07", streak: 4, wantStreak: 1},
		{name: "never worked out", last: "", streak: 0, wantStreak: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := UserStats{TotalWorkouts: 12, CurrentStreak: tt.streak, LastWorkoutDate: tt.last}
			got := ApplyWorkout(s, now, loc)

			if got.CurrentStreak != tt.wantStreak {
				t.Fatalf("streak = %d, want %d", got.CurrentStreak, tt.wantStreak)
			}
			if got.TotalWorkouts != 13 {
				t.Fatalf("totalWorkouts = %d, want 13", got.TotalWorkouts)
			}
			if got.LastWorkoutDate != "2025-06-10" {
				t.Fatalf("lastWorkoutDate = %q, want 2025-06-10", got.LastWorkoutDate)
			}
		})
	}
}

func TestDayKeyUsesLocation(t *testing.T) {
	shanghai, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// 23:30 UTC on the 9th is already the 10th in Shanghai.
	now := time.Date(2025, 6, 9, 23, 30, 0, 0, time.UTC)

	if got := DayKey(now, time.UTC); got != "2025-06-09" {
		t.Fatalf("DayKey(UTC) = %q, want 2025-06-09", got)
	}
	if got := DayKey(now, shanghai); got != "2025-06-10" {
		t.Fatalf("DayKey(Shanghai) = %q, want 2025-06-10", got)
	}
}

func TestLastNDayKeys(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	keys := LastNDayKeys(now, time.UTC, 7)
	if len(keys) != 7 {
		t.Fatalf("expected 7 keys, got %d", len(keys))
	}
	if keys[0] != "2025-06-04" {
		t.Fatalf("first key = %q, want 2025-06-04", keys[0])
	}
	if keys[6] != "2025-06-10" {
		t.Fatalf("last key = %q, want 2025-06-10", keys[6])
	}
}
