package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/growthdash/internal/constants"
)

// Session is one of the four fixed daily check-in slots
type Session int

const (
	SessionMorning Session = iota
	SessionMidday
	SessionEvening
	SessionBedtime
)

// SessionCount is the number of check-in slots in a day
const SessionCount = 4

// AllSessions lists the sessions in the order they are filled in during the day
var AllSessions = [SessionCount]Session{SessionMorning, SessionMidday, SessionEvening, SessionBedtime}

func (s Session) String() string {
	switch s {
	case SessionMorning:
		return "morning"
	case SessionMidday:
		return "midday"
	case SessionEvening:
		return "evening"
	case SessionBedtime:
		return "bedtime"
	default:
		return fmt.Sprintf("session(%d)", int(s))
	}
}

// Valid reports whether s is one of the four known sessions
func (s Session) Valid() bool {
	return s >= SessionMorning && s <= SessionBedtime
}

// ParseSession accepts a session name or its 1-based number
func ParseSession(value string) (Session, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "morning", "1":
		return SessionMorning, nil
	case "midday", "noon", "2":
		return SessionMidday, nil
	case "evening", "3":
		return SessionEvening, nil
	case "bedtime", "night", "4":
		return SessionBedtime, nil
	}
	return 0, fmt.Errorf("invalid session %q (expected morning, midday, evening or bedtime)", value)
}

type BurnoutLevel string

type AngerFrequency string

type MoodSwings string

type MoneyStress string

const (
	BurnoutLow    BurnoutLevel = "Low"
	BurnoutMedium BurnoutLevel = "Medium"
	BurnoutHigh   BurnoutLevel = "High"

	AngerNone  AngerFrequency = "None"
	AngerOnce  AngerFrequency = "1x"
	AngerTwice AngerFrequency = "2x"
	AngerOften AngerFrequency = "Often"

	MoodSwingsNone   MoodSwings = "None"
	MoodSwingsMild   MoodSwings = "Mild"
	MoodSwingsStrong MoodSwings = "Strong"

	MoneyStressNone     MoneyStress = "None"
	MoneyStressModerate MoneyStress = "Moderate"
	MoneyStressHigh     MoneyStress = "High"
)

const (
	MinRating = 1
	MaxRating = 10
)

// DailyEntry is the check-in record for one calendar day.
// Optional ratings are nil when absent and enum fields are empty when absent.
type DailyEntry struct {
	ID              string                 `json:"id"`
	Date            string                 `json:"date"` // YYYY-MM-DD
	Sessions        [SessionCount]bool     `json:"sessions"`
	Focus           *int                   `json:"focus,omitempty"`
	Energy          *int                   `json:"energy,omitempty"`
	Health          *int                   `json:"health,omitempty"`
	EmotionalState  *int                   `json:"emotional_state,omitempty"`
	Burnout         BurnoutLevel           `json:"burnout,omitempty"`
	AngerFrequency  AngerFrequency         `json:"anger_frequency,omitempty"`
	MoodSwings      MoodSwings             `json:"mood_swings,omitempty"`
	MoneyStress     MoneyStress            `json:"money_stress,omitempty"`
	JobApplications int                    `json:"job_applications"`
	StudyHours      float64                `json:"study_hours"`
	Gym             bool                   `json:"gym"`
	Notes           [SessionCount]string   `json:"notes"`
	Source          constants.RecordSource `json:"source,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// CompletedSessions counts the sessions marked complete
func (e DailyEntry) CompletedSessions() int {
	count := 0
	for _, done := range e.Sessions {
		if done {
			count++
		}
	}
	return count
}

// Validate checks the entry before it is written. The progress engine never calls it:
// reads tolerate malformed optional fields.
func (e *DailyEntry) Validate() error {
	if _, err := time.Parse(constants.DateFormat, e.Date); err != nil {
		return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
	}

	ratings := []struct {
		name  string
		value *int
	}{
		{"focus", e.Focus},
		{"energy", e.Energy},
		{"health", e.Health},
		{"emotional state", e.EmotionalState},
	}
	for _, r := range ratings {
		if r.value != nil && !ValidRating(*r.value) {
			return fmt.Errorf("%s rating must be between %d and %d, got %d", r.name, MinRating, MaxRating, *r.value)
		}
	}

	if e.Burnout != "" && !e.Burnout.Valid() {
		return fmt.Errorf("invalid burnout level %q", e.Burnout)
	}
	if e.AngerFrequency != "" && !e.AngerFrequency.Valid() {
		return fmt.Errorf("invalid anger frequency %q", e.AngerFrequency)
	}
	if e.MoodSwings != "" && !e.MoodSwings.Valid() {
		return fmt.Errorf("invalid mood swings value %q", e.MoodSwings)
	}
	if e.MoneyStress != "" && !e.MoneyStress.Valid() {
		return fmt.Errorf("invalid money stress value %q", e.MoneyStress)
	}

	if e.JobApplications < 0 {
		return fmt.Errorf("job applications cannot be negative")
	}
	if e.StudyHours < 0 {
		return fmt.Errorf("study hours cannot be negative")
	}
	if e.StudyHours > 24 {
		return fmt.Errorf("study hours cannot exceed 24")
	}

	return nil
}

// ValidRating reports whether v is inside the 1-10 rating scale
func ValidRating(v int) bool {
	return v >= MinRating && v <= MaxRating
}

func (b BurnoutLevel) Valid() bool {
	switch b {
	case BurnoutLow, BurnoutMedium, BurnoutHigh:
		return true
	}
	return false
}

func (a AngerFrequency) Valid() bool {
	switch a {
	case AngerNone, AngerOnce, AngerTwice, AngerOften:
		return true
	}
	return false
}

func (m MoodSwings) Valid() bool {
	switch m {
	case MoodSwingsNone, MoodSwingsMild, MoodSwingsStrong:
		return true
	}
	return false
}

func (m MoneyStress) Valid() bool {
	switch m {
	case MoneyStressNone, MoneyStressModerate, MoneyStressHigh:
		return true
	}
	return false
}

// ParseBurnout matches a burnout level case-insensitively
func ParseBurnout(value string) (BurnoutLevel, error) {
	for _, v := range []BurnoutLevel{BurnoutLow, BurnoutMedium, BurnoutHigh} {
		if strings.EqualFold(string(v), strings.TrimSpace(value)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid burnout level %q (expected Low, Medium or High)", value)
}

// ParseAngerFrequency matches an anger frequency case-insensitively
func ParseAngerFrequency(value string) (AngerFrequency, error) {
	for _, v := range []AngerFrequency{AngerNone, AngerOnce, AngerTwice, AngerOften} {
		if strings.EqualFold(string(v), strings.TrimSpace(value)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid anger frequency %q (expected None, 1x, 2x or Often)", value)
}

// ParseMoodSwings matches a mood swings value case-insensitively
func ParseMoodSwings(value string) (MoodSwings, error) {
	for _, v := range []MoodSwings{MoodSwingsNone, MoodSwingsMild, MoodSwingsStrong} {
		if strings.EqualFold(string(v), strings.TrimSpace(value)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid mood swings value %q (expected None, Mild or Strong)", value)
}

// ParseMoneyStress matches a money stress value case-insensitively
func ParseMoneyStress(value string) (MoneyStress, error) {
	for _, v := range []MoneyStress{MoneyStressNone, MoneyStressModerate, MoneyStressHigh} {
		if strings.EqualFold(string(v), strings.TrimSpace(value)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid money stress value %q (expected None, Moderate or High)", value)
}
