package entries

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/growthdash/internal/cli"
	"github.com/julianstephens/growthdash/internal/constants"
	"github.com/julianstephens/growthdash/internal/journal"
	"github.com/julianstephens/growthdash/internal/models"
	"github.com/julianstephens/growthdash/internal/progress"
	"github.com/julianstephens/growthdash/internal/tui"
)

// runFormFunc is replaced in tests
var runFormFunc = func(f *huh.Form) error { return f.Run() }

type CheckinCmd struct {
	Session     string   `arg:"" optional:"" help:"Session to record: morning, midday, evening, bedtime (or 1-4). Omit for the interactive form."`
	Undo        bool     `help:"Mark the session as not done."`
	Note        *string  `help:"Reflection note for the session (empty clears it)."`
	Focus       string   `help:"Focus rating (1-10)."`
	Energy      string   `help:"Energy rating (1-10)."`
	Health      string   `help:"Health rating (1-10)."`
	Emotional   string   `help:"Emotional state rating (1-10)."`
	Burnout     string   `help:"Burnout level: Low, Medium, High."`
	Anger       string   `help:"Anger frequency: None, 1x, 2x, Often."`
	MoodSwings  string   `help:"Mood swings: None, Mild, Strong."`
	MoneyStress string   `help:"Money stress: None, Moderate, High."`
	Apps        *int     `name:"applications" help:"Job applications sent today."`
	Study       *float64 `help:"Hours studied today."`
	Gym         *bool    `help:"Went to the gym today."`
	Interactive bool     `short:"i" help:"Fill in the check-in form."`
}

func (c *CheckinCmd) Run(ctx *cli.Context) error {
	var (
		in  journal.SessionInput
		err error
	)
	if c.Session == "" || c.Interactive {
		in, err = c.interactiveInput(ctx)
	} else {
		in, err = c.flagInput()
	}
	if err != nil {
		return err
	}

	entry, err := ctx.Journal.RecordSession(ctx.Ctx(), in, ctx.Now())
	if err != nil {
		return err
	}
	snap, err := ctx.Journal.Snapshot(ctx.Ctx(), ctx.Now())
	if err != nil {
		return err
	}

	state := "done"
	if !in.Done {
		state = "not done"
	}
	fmt.Fprintf(ctx.Out(), "✓ %s marked %s for %s\n", in.Session, state, entry.Date)
	fmt.Fprintf(ctx.Out(), "  Today %d%% · Streak %d · Missed %d · %s\n",
		progress.CompletionPercentage(entry), snap.CurrentStreak, snap.MissedDays, tui.TierBadge(snap.SeverityTier))
	return nil
}

func (c *CheckinCmd) flagInput() (journal.SessionInput, error) {
	session, err := models.ParseSession(c.Session)
	if err != nil {
		return journal.SessionInput{}, err
	}
	in := journal.SessionInput{
		Session: session,
		Done:    !c.Undo,
		Source:  constants.SourceCLI,
	}
	if c.Note != nil {
		note := strings.TrimSpace(*c.Note)
		in.Note = &note
	}

	d := &in.Details
	ratings := []struct {
		name  string
		value string
		dst   **int
	}{
		{"focus", c.Focus, &d.Focus},
		{"energy", c.Energy, &d.Energy},
		{"health", c.Health, &d.Health},
		{"emotional", c.Emotional, &d.EmotionalState},
	}
	for _, r := range ratings {
		v, err := cli.ParseRating(r.value)
		if err != nil {
			return in, fmt.Errorf("invalid %s rating %q", r.name, r.value)
		}
		*r.dst = v
	}
	d.Burnout = models.BurnoutLevel(c.Burnout)
	d.AngerFrequency = models.AngerFrequency(c.Anger)
	d.MoodSwings = models.MoodSwings(c.MoodSwings)
	d.MoneyStress = models.MoneyStress(c.MoneyStress)
	d.JobApplications = c.Apps
	d.StudyHours = c.Study
	d.Gym = c.Gym
	return in, nil
}

func (c *CheckinCmd) interactiveInput(ctx *cli.Context) (journal.SessionInput, error) {
	o, err := ctx.Journal.Overview(ctx.Ctx(), ctx.Now(), 0, 0)
	if err != nil {
		return journal.SessionInput{}, err
	}

	session := firstOpenSession(o.Today)
	if c.Session != "" {
		if session, err = models.ParseSession(c.Session); err != nil {
			return journal.SessionInput{}, err
		}
	}

	fm := tui.NewCheckinFormModel(o.Today, session)
	if err := runFormFunc(tui.NewCheckinForm(fm)); err != nil {
		return journal.SessionInput{}, fmt.Errorf("check-in cancelled: %w", err)
	}
	return fm.ToInput(constants.SourceInteractive)
}

func firstOpenSession(entry models.DailyEntry) models.Session {
	for _, s := range models.AllSessions {
		if !entry.Sessions[s] {
			return s
		}
	}
	return models.SessionBedtime
}
