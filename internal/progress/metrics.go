package progress

import (
	"math"

	"github.com/julianstephens/growthdash/internal/models"
)

func averageRatings(entries []models.DailyEntry) RatingAverages {
	return RatingAverages{
		Focus:          meanRating(entries, func(e models.DailyEntry) *int { return e.Focus }),
		Energy:         meanRating(entries, func(e models.DailyEntry) *int { return e.Energy }),
		Health:         meanRating(entries, func(e models.DailyEntry) *int { return e.Health }),
		EmotionalState: meanRating(entries, func(e models.DailyEntry) *int { return e.EmotionalState }),
	}
}

// meanRating skips absent and out-of-range values rather than counting them as zero
func meanRating(entries []models.DailyEntry, field func(models.DailyEntry) *int) *float64 {
	sum, n := 0, 0
	for _, e := range entries {
		v := field(e)
		if v == nil || !models.ValidRating(*v) {
			continue
		}
		sum += *v
		n++
	}
	if n == 0 {
		return nil
	}
	mean := float64(sum) / float64(n)
	return &mean
}

func sumCounters(entries []models.DailyEntry) CounterTotals {
	var totals CounterTotals
	for _, e := range entries {
		if e.JobApplications > 0 {
			totals.JobApplications += e.JobApplications
		}
		if e.StudyHours > 0 && !math.IsInf(e.StudyHours, 0) {
			totals.StudyHours += e.StudyHours
		}
		if e.Gym {
			totals.GymDays++
		}
	}
	return totals
}
