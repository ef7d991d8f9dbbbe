package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/growthdash/internal/constants"
	"github.com/julianstephens/growthdash/internal/journal"
	"github.com/julianstephens/growthdash/internal/models"
)

// CheckinFormModel backs the check-in form. Numeric fields are strings so that blank means "leave as is".
type CheckinFormModel struct {
	Session         models.Session
	Done            bool
	Note            string
	Focus           string
	Energy          string
	Health          string
	EmotionalState  string
	Burnout         models.BurnoutLevel
	AngerFrequency  models.AngerFrequency
	MoodSwings      models.MoodSwings
	MoneyStress     models.MoneyStress
	JobApplications string
	StudyHours      string
	Gym             bool
}

// NewCheckinFormModel pre-fills the form from the stored entry for today
func NewCheckinFormModel(entry models.DailyEntry, session models.Session) *CheckinFormModel {
	fm := &CheckinFormModel{
		Session:        session,
		Done:           true,
		Note:           entry.Notes[session],
		Focus:          ratingString(entry.Focus),
		Energy:         ratingString(entry.Energy),
		Health:         ratingString(entry.Health),
		EmotionalState: ratingString(entry.EmotionalState),
		Burnout:        entry.Burnout,
		AngerFrequency: entry.AngerFrequency,
		MoodSwings:     entry.MoodSwings,
		MoneyStress:    entry.MoneyStress,
		Gym:            entry.Gym,
	}
	if entry.JobApplications > 0 {
		fm.JobApplications = strconv.Itoa(entry.JobApplications)
	}
	if entry.StudyHours > 0 {
		fm.StudyHours = strconv.FormatFloat(entry.StudyHours, 'f', -1, 64)
	}
	return fm
}

// NewCheckinForm creates the form for recording one session
func NewCheckinForm(fm *CheckinFormModel) *huh.Form {
	sessionOptions := make([]huh.Option[models.Session], 0, models.SessionCount)
	for _, s := range models.AllSessions {
		sessionOptions = append(sessionOptions, huh.NewOption(strings.ToUpper(s.String()[:1])+s.String()[1:], s))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[models.Session]().
				Title("Session").
				Options(sessionOptions...).
				Value(&fm.Session),
			huh.NewConfirm().
				Title("Completed?").
				Value(&fm.Done),
			huh.NewText().
				Title("Note").
				Description("Optional reflection for this session").
				Value(&fm.Note),
		),
		huh.NewGroup(
			ratingInput("Focus (1-10)", &fm.Focus),
			ratingInput("Energy (1-10)", &fm.Energy),
			ratingInput("Health (1-10)", &fm.Health),
			ratingInput("Emotional state (1-10)", &fm.EmotionalState),
		).Title("Ratings").Description("Leave blank to skip"),
		huh.NewGroup(
			huh.NewSelect[models.BurnoutLevel]().
				Title("Burnout").
				Options(
					huh.NewOption("Skip", models.BurnoutLevel("")),
					huh.NewOption("Low", models.BurnoutLow),
					huh.NewOption("Medium", models.BurnoutMedium),
					huh.NewOption("High", models.BurnoutHigh),
				).
				Value(&fm.Burnout),
			huh.NewSelect[models.AngerFrequency]().
				Title("Anger").
				Options(
					huh.NewOption("Skip", models.AngerFrequency("")),
					huh.NewOption("None", models.AngerNone),
					huh.NewOption("Once", models.AngerOnce),
					huh.NewOption("Twice", models.AngerTwice),
					huh.NewOption("Often", models.AngerOften),
				).
				Value(&fm.AngerFrequency),
			huh.NewSelect[models.MoodSwings]().
				Title("Mood swings").
				Options(
					huh.NewOption("Skip", models.MoodSwings("")),
					huh.NewOption("None", models.MoodSwingsNone),
					huh.NewOption("Mild", models.MoodSwingsMild),
					huh.NewOption("Strong", models.MoodSwingsStrong),
				).
				Value(&fm.MoodSwings),
			huh.NewSelect[models.MoneyStress]().
				Title("Money stress").
				Options(
					huh.NewOption("Skip", models.MoneyStress("")),
					huh.NewOption("None", models.MoneyStressNone),
					huh.NewOption("Moderate", models.MoneyStressModerate),
					huh.NewOption("High", models.MoneyStressHigh),
				).
				Value(&fm.MoneyStress),
		).Title("Wellbeing"),
		huh.NewGroup(
			huh.NewInput().
				Title("Job applications").
				Value(&fm.JobApplications).
				Validate(validateCount),
			huh.NewInput().
				Title("Study hours").
				Value(&fm.StudyHours).
				Validate(validateHours),
			huh.NewConfirm().
				Title("Went to the gym?").
				Value(&fm.Gym),
		).Title("Counters"),
	).WithTheme(huh.ThemeDracula())
}

func ratingInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Value(value).
		Validate(func(s string) error {
			_, err := parseRating(s)
			return err
		})
}

// ToInput converts the filled form into a journal write for today
func (fm *CheckinFormModel) ToInput(source constants.RecordSource) (journal.SessionInput, error) {
	note := strings.TrimSpace(fm.Note)
	in := journal.SessionInput{
		Session: fm.Session,
		Done:    fm.Done,
		Note:    &note,
		Source:  source,
	}

	var err error
	d := &in.Details
	if d.Focus, err = parseRating(fm.Focus); err != nil {
		return in, fmt.Errorf("focus: %w", err)
	}
	if d.Energy, err = parseRating(fm.Energy); err != nil {
		return in, fmt.Errorf("energy: %w", err)
	}
	if d.Health, err = parseRating(fm.Health); err != nil {
		return in, fmt.Errorf("health: %w", err)
	}
	if d.EmotionalState, err = parseRating(fm.EmotionalState); err != nil {
		return in, fmt.Errorf("emotional state: %w", err)
	}
	d.Burnout = fm.Burnout
	d.AngerFrequency = fm.AngerFrequency
	d.MoodSwings = fm.MoodSwings
	d.MoneyStress = fm.MoneyStress

	if s := strings.TrimSpace(fm.JobApplications); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return in, fmt.Errorf("job applications: %w", err)
		}
		d.JobApplications = &n
	}
	if s := strings.TrimSpace(fm.StudyHours); s != "" {
		h, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return in, fmt.Errorf("study hours: %w", err)
		}
		d.StudyHours = &h
	}
	gym := fm.Gym
	d.Gym = &gym
	return in, nil
}

func parseRating(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("rating must be a number")
	}
	if !models.ValidRating(v) {
		return nil, fmt.Errorf("rating must be between %d and %d", models.MinRating, models.MaxRating)
	}
	return &v, nil
}

func validateCount(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf("count cannot be negative")
	}
	return nil
}

func validateHours(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return err
	}
	if h < 0 || h > 24 {
		return fmt.Errorf("hours must be between 0 and 24")
	}
	return nil
}

func ratingString(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
