package progress

import (
	"fmt"
	"math"
	"sort"

	"github.com/julianstephens/growthdash/internal/models"
)

// calendar indexes a validated history by day number (days since the Unix epoch)
type calendar struct {
	asOf       int64
	first      int64 // earliest entry on or before asOf
	hasEntries bool
	days       []int64 // sorted day numbers on or before asOf
	entries    map[int64]models.DailyEntry
}

func newCalendar(history []models.DailyEntry, asOf string) (*calendar, error) {
	asOfDay, err := parseDay(asOf)
	if err != nil {
		return nil, fmt.Errorf("as-of date: %w", err)
	}

	cal := &calendar{
		asOf:    asOfDay,
		entries: make(map[int64]models.DailyEntry, len(history)),
	}
	seen := make(map[int64]bool, len(history))
	for _, e := range history {
		day, err := parseDay(e.Date)
		if err != nil {
			return nil, fmt.Errorf("entry date: %w", err)
		}
		if seen[day] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDate, e.Date)
		}
		seen[day] = true
		if day > asOfDay {
			continue
		}
		cal.entries[day] = e
		cal.days = append(cal.days, day)
	}

	sort.Slice(cal.days, func(i, j int) bool { return cal.days[i] < cal.days[j] })
	if len(cal.days) > 0 {
		cal.first = cal.days[0]
		cal.hasEntries = true
	}
	return cal, nil
}

// completion returns the completion percentage of a day; missing days are 0
func (c *calendar) completion(day int64) int {
	e, ok := c.entries[day]
	if !ok {
		return 0
	}
	return CompletionPercentage(e)
}

// trailingRun walks backward from start, counting days that satisfy match,
// and stops at the first day that does not or when it passes the lower bound.
func (c *calendar) trailingRun(start, lowerBound int64, match func(int) bool, bounded bool) int {
	if !bounded {
		return 0
	}
	run := 0
	for day := start; day >= lowerBound; day-- {
		if !match(c.completion(day)) {
			break
		}
		run++
	}
	return run
}

// longestRun scans every calendar day from the first entry through asOf
func (c *calendar) longestRun(threshold int) int {
	if !c.hasEntries {
		return 0
	}
	longest, run := 0, 0
	for day := c.first; day <= c.asOf; day++ {
		if c.completion(day) >= threshold {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}

// windowMean is the mean completion over the n days ending at asOf, missing days contributing 0
func (c *calendar) windowMean(n int) int {
	sum := 0
	for day := c.asOf - int64(n) + 1; day <= c.asOf; day++ {
		sum += c.completion(day)
	}
	return int(math.Round(float64(sum) / float64(n)))
}

// inRange returns the entries dated within [from, to] in chronological order
func (c *calendar) inRange(from, to int64) []models.DailyEntry {
	var out []models.DailyEntry
	for _, day := range c.days {
		if day >= from && day <= to {
			out = append(out, c.entries[day])
		}
	}
	return out
}
