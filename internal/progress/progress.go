// Package progress derives streaks, completion aggregates and the accountability severity tier
// from a history of daily check-ins. Every function is pure: "today" is always passed in.
package progress

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/growthdash/internal/constants"
	"github.com/julianstephens/growthdash/internal/models"
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrDuplicateDate    = errors.New("duplicate entry date")
	ErrInvalidSprint    = errors.New("invalid sprint length")
	ErrInvalidThreshold = errors.New("invalid streak threshold")
)

const (
	// DefaultThreshold is the completion percentage a day needs to count toward a streak
	DefaultThreshold = 100

	WeekDays  = 7
	MonthDays = 30
	YearDays  = 365

	// MaxRangeDays bounds heatmap and trend lengths
	MaxRangeDays = YearDays * 10
)

// Options configures Compute. The zero value means a strict 100% threshold,
// no sprint, and a sprint start at the first entry.
type Options struct {
	SprintStart      string // YYYY-MM-DD; empty means the earliest entry date
	SprintLengthDays int
	Threshold        int // 1-100; 0 means DefaultThreshold
}

// RatingAverages holds the mean of each 1-10 rating over the trailing week.
// A nil field means no valid sample existed in the window.
type RatingAverages struct {
	Focus          *float64 `json:"focus"`
	Energy         *float64 `json:"energy"`
	Health         *float64 `json:"health"`
	EmotionalState *float64 `json:"emotional_state"`
}

// CounterTotals sums the daily counters over the trailing week
type CounterTotals struct {
	JobApplications int     `json:"job_applications"`
	StudyHours      float64 `json:"study_hours"`
	GymDays         int     `json:"gym_days"`
}

// Snapshot is the derived progress view of a history as of one date.
type Snapshot struct {
	AsOf                string         `json:"as_of"`
	TodayCompletion     int            `json:"today_completion"`
	CurrentStreak       int            `json:"current_streak"`
	LongestStreak       int            `json:"longest_streak"`
	TotalActiveDays     int            `json:"total_active_days"`
	WeeklyPercentage    int            `json:"weekly_percentage"`
	MonthlyPercentage   int            `json:"monthly_percentage"`
	YearlyPercentage    int            `json:"yearly_percentage"`
	MissedDays          int            `json:"missed_days"`
	SeverityTier        Tier           `json:"severity_tier"`
	GoalProgress        int            `json:"goal_progress"`
	SprintStart         string         `json:"sprint_start,omitempty"`
	SprintLengthDays    int            `json:"sprint_length_days"`
	SprintDay           int            `json:"sprint_day"`
	SprintDaysRemaining int            `json:"sprint_days_remaining"`
	WeeklyRatings       RatingAverages `json:"weekly_ratings"`
	WeeklyCounters      CounterTotals  `json:"weekly_counters"`
	Milestones          []int          `json:"milestones"`
	NextMilestone       int            `json:"next_milestone,omitempty"`
}

// ComputeSnapshot derives a Snapshot with the strict 100% streak threshold and
// a sprint that starts at the first entry.
func ComputeSnapshot(history []models.DailyEntry, asOf string, sprintLengthDays int) (Snapshot, error) {
	return Compute(history, asOf, Options{SprintLengthDays: sprintLengthDays})
}

// Compute derives a Snapshot of history as of asOf. Entries dated after asOf are ignored.
// It fails only on invalid input and never returns a partial result.
func Compute(history []models.DailyEntry, asOf string, opts Options) (Snapshot, error) {
	if opts.SprintLengthDays < 0 {
		return Snapshot{}, fmt.Errorf("%w: %d", ErrInvalidSprint, opts.SprintLengthDays)
	}
	threshold := opts.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	if threshold < 1 || threshold > 100 {
		return Snapshot{}, fmt.Errorf("%w: %d", ErrInvalidThreshold, opts.Threshold)
	}

	cal, err := newCalendar(history, asOf)
	if err != nil {
		return Snapshot{}, err
	}

	sprintStart := int64(0)
	hasSprintStart := false
	if opts.SprintStart != "" {
		sprintStart, err = parseDay(opts.SprintStart)
		if err != nil {
			return Snapshot{}, fmt.Errorf("sprint start: %w", err)
		}
		hasSprintStart = true
	} else if cal.hasEntries {
		sprintStart = cal.first
		hasSprintStart = true
	}

	snap := Snapshot{
		AsOf:             asOf,
		TodayCompletion:  cal.completion(cal.asOf),
		SprintLengthDays: opts.SprintLengthDays,
		Milestones:       []int{},
	}

	snap.CurrentStreak = cal.trailingRun(cal.asOf, cal.first, func(c int) bool { return c >= threshold }, cal.hasEntries)
	snap.LongestStreak = cal.longestRun(threshold)

	// Missed days are bounded by the start of the history so that a brand new user is not punished
	lowerBound, bounded := cal.first, cal.hasEntries
	if hasSprintStart && (!bounded || sprintStart < lowerBound) {
		lowerBound, bounded = sprintStart, true
	}
	snap.MissedDays = cal.trailingRun(cal.asOf, lowerBound, func(c int) bool { return c < threshold }, bounded)
	snap.SeverityTier = TierFor(snap.MissedDays)

	for _, e := range cal.inRange(math.MinInt64, cal.asOf) {
		if e.CompletedSessions() > 0 {
			snap.TotalActiveDays++
		}
	}

	snap.WeeklyPercentage = cal.windowMean(WeekDays)
	snap.MonthlyPercentage = cal.windowMean(MonthDays)
	snap.YearlyPercentage = cal.windowMean(YearDays)

	if hasSprintStart {
		snap.SprintStart = formatDay(sprintStart)
		elapsed := 0
		if cal.asOf >= sprintStart {
			elapsed = int(cal.asOf-sprintStart) + 1
		}
		snap.SprintDay = elapsed
		snap.GoalProgress = goalProgress(elapsed, opts.SprintLengthDays)
		if remaining := opts.SprintLengthDays - elapsed; remaining > 0 {
			snap.SprintDaysRemaining = remaining
		}
	} else {
		snap.SprintDaysRemaining = opts.SprintLengthDays
	}

	week := cal.inRange(cal.asOf-WeekDays+1, cal.asOf)
	snap.WeeklyRatings = averageRatings(week)
	snap.WeeklyCounters = sumCounters(week)

	snap.Milestones = Milestones(snap.LongestStreak)
	snap.NextMilestone = NextMilestone(snap.CurrentStreak)

	return snap, nil
}

// CompletionPercentage is the share of the four sessions completed, as a rounded 0-100 integer.
func CompletionPercentage(entry models.DailyEntry) int {
	return int(math.Round(float64(entry.CompletedSessions()) * 100 / models.SessionCount))
}

func goalProgress(elapsed, sprintLength int) int {
	if sprintLength == 0 {
		return 0
	}
	pct := int(math.Round(float64(elapsed) * 100 / float64(sprintLength)))
	if pct > 100 {
		return 100
	}
	return pct
}

func parseDay(date string) (int64, error) {
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return 0, fmt.Errorf("%w %q: expected YYYY-MM-DD", ErrInvalidDate, date)
	}
	// UTC midnights are exact multiples of a day, so the division never truncates
	return t.Unix() / secondsPerDay, nil
}

func formatDay(day int64) string {
	return time.Unix(day*secondsPerDay, 0).UTC().Format(constants.DateFormat)
}

const secondsPerDay = 24 * 60 * 60
