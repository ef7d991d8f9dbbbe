package progress

// StreakMilestones are the streak lengths that earn a badge
var StreakMilestones = []int{3, 7, 14, 21, 30, 60, 90, 180, 365}

// Milestones returns every milestone reached by a streak of the given length
func Milestones(streak int) []int {
	earned := []int{}
	for _, m := range StreakMilestones {
		if streak >= m {
			earned = append(earned, m)
		}
	}
	return earned
}

// NextMilestone returns the first milestone above streak, or 0 once all are reached
func NextMilestone(streak int) int {
	for _, m := range StreakMilestones {
		if m > streak {
			return m
		}
	}
	return 0
}

// IsMilestone reports whether a streak of exactly this length is a milestone
func IsMilestone(streak int) bool {
	for _, m := range StreakMilestones {
		if m == streak {
			return true
		}
	}
	return false
}
