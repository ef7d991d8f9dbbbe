package progress

import (
	"fmt"
	"math"

	"github.com/julianstephens/growthdash/internal/models"
)

// HeatmapCell is one day of the completion heatmap
type HeatmapCell struct {
	Date       string `json:"date"`
	Completion int    `json:"completion"`
	HasEntry   bool   `json:"has_entry"`
}

// WeekBucket aggregates seven consecutive days of completion
type WeekBucket struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	Percentage  int    `json:"percentage"`
	PerfectDays int    `json:"perfect_days"`
}

// Heatmap returns one cell per day for the n days ending at asOf, oldest first.
func Heatmap(history []models.DailyEntry, asOf string, days int) ([]HeatmapCell, error) {
	if days < 0 || days > MaxRangeDays {
		return nil, fmt.Errorf("heatmap length must be between 0 and %d days: %d", MaxRangeDays, days)
	}
	cal, err := newCalendar(history, asOf)
	if err != nil {
		return nil, err
	}

	cells := make([]HeatmapCell, 0, days)
	for day := cal.asOf - int64(days) + 1; day <= cal.asOf; day++ {
		_, ok := cal.entries[day]
		cells = append(cells, HeatmapCell{
			Date:       formatDay(day),
			Completion: cal.completion(day),
			HasEntry:   ok,
		})
	}
	return cells, nil
}

// WeeklyTrend splits the weeks*7 days ending at asOf into week buckets, oldest first.
func WeeklyTrend(history []models.DailyEntry, asOf string, weeks int) ([]WeekBucket, error) {
	if weeks < 0 || weeks > MaxRangeDays/WeekDays {
		return nil, fmt.Errorf("trend length must be between 0 and %d weeks: %d", MaxRangeDays/WeekDays, weeks)
	}
	cal, err := newCalendar(history, asOf)
	if err != nil {
		return nil, err
	}

	buckets := make([]WeekBucket, 0, weeks)
	for w := weeks - 1; w >= 0; w-- {
		end := cal.asOf - int64(w*WeekDays)
		start := end - WeekDays + 1
		sum, perfect := 0, 0
		for day := start; day <= end; day++ {
			c := cal.completion(day)
			sum += c
			if c == 100 {
				perfect++
			}
		}
		buckets = append(buckets, WeekBucket{
			Start:       formatDay(start),
			End:         formatDay(end),
			Percentage:  int(math.Round(float64(sum) / WeekDays)),
			PerfectDays: perfect,
		})
	}
	return buckets, nil
}
