// Package accountability turns a progress snapshot into the message every notification channel sends.
// The tone is chosen here and only here; channels decide layout, never severity.
package accountability

import (
	"fmt"
	"strings"

	"github.com/julianstephens/growthdash/internal/models"
	"github.com/julianstephens/growthdash/internal/progress"
)

// Message is the channel-independent notification content
type Message struct {
	Kind         models.NotificationKind `json:"kind"`
	Session      string                  `json:"session,omitempty"`
	Date         string                  `json:"date"`
	Title        string                  `json:"title"`
	Body         string                  `json:"body"` // may contain **bold** markdown
	Tier         progress.Tier           `json:"tier"`
	Completion   int                     `json:"completion"`
	Streak       int                     `json:"streak"`
	MissedDays   int                     `json:"missed_days"`
	GoalProgress int                     `json:"goal_progress"`
	Milestone    int                     `json:"milestone,omitempty"`
	Notes        []string                `json:"notes,omitempty"`
}

// LedgerKind is the key the dispatch ledger stores for this message.
// Session reminders are tracked per session so each fires once a day.
func (m Message) LedgerKind() string {
	if m.Kind == models.KindSessionReminder && m.Session != "" {
		return string(m.Kind) + ":" + m.Session
	}
	if m.Kind == models.KindMilestone && m.Milestone > 0 {
		return fmt.Sprintf("%s:%d", m.Kind, m.Milestone)
	}
	return string(m.Kind)
}

// Summary is the one-line stats footer shared by every channel
func (m Message) Summary() string {
	return fmt.Sprintf("Today %d%% · Streak %d · Missed %d · Sprint %d%%",
		m.Completion, m.Streak, m.MissedDays, m.GoalProgress)
}

// PlainBody strips markdown emphasis for channels that render raw text
func (m Message) PlainBody() string {
	return strings.ReplaceAll(m.Body, "**", "")
}

// WithNotes attaches the non-empty session notes of an entry, in session order
func (m Message) WithNotes(entry models.DailyEntry) Message {
	m.Notes = nil
	for _, s := range models.AllSessions {
		if note := strings.TrimSpace(entry.Notes[s]); note != "" {
			m.Notes = append(m.Notes, fmt.Sprintf("%s: %s", s, note))
		}
	}
	return m
}

// Compose builds the message for kind from a snapshot. The tier is always snap.SeverityTier
// recomputed through progress.TierFor so no caller can drift from the shared rule.
func Compose(kind models.NotificationKind, snap progress.Snapshot, session models.Session) Message {
	tier := progress.TierFor(snap.MissedDays)
	msg := Message{
		Kind:         kind,
		Date:         snap.AsOf,
		Tier:         tier,
		Completion:   snap.TodayCompletion,
		Streak:       snap.CurrentStreak,
		MissedDays:   snap.MissedDays,
		GoalProgress: snap.GoalProgress,
	}

	switch kind {
	case models.KindSessionReminder:
		msg.Session = session.String()
		msg.Title, msg.Body = sessionReminder(tier, session, snap)
	case models.KindMilestone:
		msg.Milestone = snap.CurrentStreak
		msg.Title, msg.Body = milestone(snap)
	default:
		msg.Kind = models.KindAccountability
		msg.Title, msg.Body = accountabilityCheck(tier, snap)
	}
	return msg
}

func sessionReminder(tier progress.Tier, session models.Session, snap progress.Snapshot) (string, string) {
	name := session.String()
	title := strings.ToUpper(name[:1]) + name[1:] + " check-in"

	var body string
	switch tier {
	case progress.TierBrutal:
		body = fmt.Sprintf("**%d days** without a full day. Log your %s session now.", snap.MissedDays, name)
	case progress.TierHarsh:
		body = fmt.Sprintf("You have missed **%d days**. The %s session is due, do it now.", snap.MissedDays, name)
	case progress.TierFirm:
		body = fmt.Sprintf("%s session due. You are **%d days** off track.", title, snap.MissedDays)
	default:
		if snap.CurrentStreak > 0 {
			body = fmt.Sprintf("Time for your %s check-in. Keep the **%d-day** streak alive.", name, snap.CurrentStreak)
		} else {
			body = fmt.Sprintf("Time for your %s check-in.", name)
		}
	}
	return title, body
}

// accountabilityVariants is the rule table keyed by tier
var accountabilityVariants = map[progress.Tier]struct {
	title string
	body  string // %d: missed days
}{
	progress.TierGentle: {"Daily check", "Finish today's sessions to keep your momentum."},
	progress.TierFirm:   {"You are slipping", "**%d days** in a row below 100%%. Get back on track tonight."},
	progress.TierHarsh:  {"No more excuses", "**%d days** without a complete day. Your sprint will not finish itself."},
	progress.TierBrutal: {"Accountability alert", "**%d straight days** missed. The streak is gone. Do all four sessions today, no negotiation."},
}

func accountabilityCheck(tier progress.Tier, snap progress.Snapshot) (string, string) {
	v := accountabilityVariants[tier]
	body := v.body
	if strings.Contains(body, "%d") {
		body = fmt.Sprintf(body, snap.MissedDays)
	}

	// Tone only: a partly done day reads as "in progress" but never changes the tier
	if snap.TodayCompletion > 0 && snap.TodayCompletion < 100 {
		body += fmt.Sprintf(" You are at **%d%%** today, finish what you started.", snap.TodayCompletion)
	} else if snap.TodayCompletion == 0 {
		body += " Nothing logged yet today."
	}
	return v.title, body
}

func milestone(snap progress.Snapshot) (string, string) {
	title := fmt.Sprintf("%d-day streak!", snap.CurrentStreak)
	body := fmt.Sprintf("You completed every session for **%d days** in a row.", snap.CurrentStreak)
	if snap.NextMilestone > 0 {
		body += fmt.Sprintf(" Next milestone: %d days.", snap.NextMilestone)
	}
	return title, body
}

// Badge is the tier label every channel prints
func Badge(t progress.Tier) string {
	return strings.ToUpper(string(t))
}

// Emoji decorates the tier on chat channels
func Emoji(t progress.Tier) string {
	switch t {
	case progress.TierFirm:
		return "⚠️"
	case progress.TierHarsh:
		return "🔥"
	case progress.TierBrutal:
		return "🚨"
	default:
		return "🌱"
	}
}

// Color is the embed/accent colour for a tier as 0xRRGGBB
func Color(t progress.Tier) int {
	switch t {
	case progress.TierFirm:
		return 0xFEE75C
	case progress.TierHarsh:
		return 0xE67E22
	case progress.TierBrutal:
		return 0xED4245
	default:
		return 0x57F287
	}
}

// Urgent reports whether a tier should interrupt (sticky push, high priority mail)
func Urgent(t progress.Tier) bool {
	return t.Rank() >= progress.TierHarsh.Rank()
}
