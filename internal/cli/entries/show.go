package entries

import (
	"errors"
	"fmt"
	"io"

	"github.com/julianstephens/growthdash/internal/cli"
	"github.com/julianstephens/growthdash/internal/models"
	"github.com/julianstephens/growthdash/internal/progress"
	"github.com/julianstephens/growthdash/internal/storage"
	"github.com/julianstephens/growthdash/internal/utils"
)

type ShowCmd struct {
	Date string `arg:"" optional:"" help:"Date to show (YYYY-MM-DD); defaults to today."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	date := c.Date
	if date == "" || date == "today" {
		today, _, err := ctx.Journal.Today(ctx.Ctx(), ctx.Now())
		if err != nil {
			return err
		}
		date = today
	} else if !utils.ValidateDateFormat(date) {
		return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", date)
	}

	entry, err := ctx.Store.GetEntry(ctx.Ctx(), date)
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Fprintf(ctx.Out(), "No check-ins recorded for %s.\n", date)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get entry: %w", err)
	}

	settings, err := ctx.Store.GetSettings(ctx.Ctx())
	if err != nil {
		return err
	}
	printEntry(ctx.Out(), entry, settings)
	return nil
}

func printEntry(out io.Writer, e models.DailyEntry, settings models.Settings) {
	fmt.Fprintf(out, "%s  (%d%% complete)\n\n", e.Date, progress.CompletionPercentage(e))
	for _, s := range models.AllSessions {
		mark := "○"
		if e.Sessions[s] {
			mark = "✓"
		}
		fmt.Fprintf(out, "  %s %-8s %s", mark, s, settings.SessionTime(s))
		if e.Notes[s] != "" {
			fmt.Fprintf(out, "  %s", e.Notes[s])
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "\nRatings:")
	fmt.Fprintf(out, "  Focus:            %s\n", cli.FormatRating(e.Focus))
	fmt.Fprintf(out, "  Energy:           %s\n", cli.FormatRating(e.Energy))
	fmt.Fprintf(out, "  Health:           %s\n", cli.FormatRating(e.Health))
	fmt.Fprintf(out, "  Emotional state:  %s\n", cli.FormatRating(e.EmotionalState))

	fmt.Fprintln(out, "\nWellbeing:")
	fmt.Fprintf(out, "  Burnout:          %s\n", orDash(string(e.Burnout)))
	fmt.Fprintf(out, "  Anger:            %s\n", orDash(string(e.AngerFrequency)))
	fmt.Fprintf(out, "  Mood swings:      %s\n", orDash(string(e.MoodSwings)))
	fmt.Fprintf(out, "  Money stress:     %s\n", orDash(string(e.MoneyStress)))

	fmt.Fprintln(out, "\nCounters:")
	fmt.Fprintf(out, "  Job applications: %d\n", e.JobApplications)
	fmt.Fprintf(out, "  Study hours:      %.1f\n", e.StudyHours)
	fmt.Fprintf(out, "  Gym:              %v\n", e.Gym)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
