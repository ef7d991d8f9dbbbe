package entries

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/growthdash/internal/cli"
	"github.com/julianstephens/growthdash/internal/tui"
)

type StatsCmd struct {
	JSON bool `name:"json" help:"Print the progress snapshot as JSON."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	out := ctx.Out()
	snap, err := ctx.Journal.Snapshot(ctx.Ctx(), ctx.Now())
	if err != nil {
		return err
	}

	if c.JSON {
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal snapshot: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintf(out, "Progress as of %s  %s\n\n", snap.AsOf, tui.TierBadge(snap.SeverityTier))
	fmt.Fprintf(out, "  Today:            %d%%\n", snap.TodayCompletion)
	fmt.Fprintf(out, "  Current streak:   %d days\n", snap.CurrentStreak)
	fmt.Fprintf(out, "  Longest streak:   %d days\n", snap.LongestStreak)
	fmt.Fprintf(out, "  Missed days:      %d\n", snap.MissedDays)
	fmt.Fprintf(out, "  Active days:      %d\n", snap.TotalActiveDays)
	if snap.NextMilestone > 0 {
		fmt.Fprintf(out, "  Next milestone:   %d days\n", snap.NextMilestone)
	}

	fmt.Fprintln(out, "\nCompletion:")
	fmt.Fprintf(out, "  Last 7 days:      %d%%\n", snap.WeeklyPercentage)
	fmt.Fprintf(out, "  Last 30 days:     %d%%\n", snap.MonthlyPercentage)
	fmt.Fprintf(out, "  Last 365 days:    %d%%\n", snap.YearlyPercentage)

	if snap.SprintLengthDays > 0 {
		fmt.Fprintln(out, "\nSprint:")
		fmt.Fprintf(out, "  Started:          %s\n", orDash(snap.SprintStart))
		fmt.Fprintf(out, "  Day:              %d of %d (%d%%)\n", snap.SprintDay, snap.SprintLengthDays, snap.GoalProgress)
		fmt.Fprintf(out, "  Remaining:        %d days\n", snap.SprintDaysRemaining)
	}

	fmt.Fprintln(out, "\nThis week:")
	fmt.Fprintf(out, "  Focus:            %s\n", cli.FormatAverage(snap.WeeklyRatings.Focus))
	fmt.Fprintf(out, "  Energy:           %s\n", cli.FormatAverage(snap.WeeklyRatings.Energy))
	fmt.Fprintf(out, "  Health:           %s\n", cli.FormatAverage(snap.WeeklyRatings.Health))
	fmt.Fprintf(out, "  Emotional state:  %s\n", cli.FormatAverage(snap.WeeklyRatings.EmotionalState))
	fmt.Fprintf(out, "  Job applications: %d\n", snap.WeeklyCounters.JobApplications)
	fmt.Fprintf(out, "  Study hours:      %.1f\n", snap.WeeklyCounters.StudyHours)
	fmt.Fprintf(out, "  Gym days:         %d\n", snap.WeeklyCounters.GymDays)
	return nil
}
