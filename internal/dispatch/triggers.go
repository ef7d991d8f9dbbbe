package dispatch

import (
	"time"

	"github.com/julianstephens/growthdash/internal/models"
	"github.com/julianstephens/growthdash/internal/progress"
	"github.com/julianstephens/growthdash/internal/utils"
)

// Trigger is a notification that is due
type Trigger struct {
	Kind    models.NotificationKind
	Session models.Session // only for session reminders
}

// DueTriggers returns what should fire at local time, given today's entry and snapshot.
// A timed trigger fires from its configured minute until the grace period has passed;
// the ledger keeps repeated runs inside that window from sending twice.
func DueTriggers(settings models.Settings, local time.Time, today models.DailyEntry, snap progress.Snapshot) []Trigger {
	current := local.Hour()*60 + local.Minute()
	grace := settings.NotificationGracePeriodMin
	if grace < 0 {
		grace = 0
	}

	var due []Trigger
	for _, s := range models.AllSessions {
		if today.Sessions[s] {
			continue
		}
		if withinWindow(settings.SessionTime(s), current, grace) {
			due = append(due, Trigger{Kind: models.KindSessionReminder, Session: s})
		}
	}

	if snap.TodayCompletion < 100 && withinWindow(settings.AccountabilityTime, current, grace) {
		due = append(due, Trigger{Kind: models.KindAccountability})
	}

	// Only celebrate a streak that today's full day just extended
	if snap.TodayCompletion == 100 && progress.IsMilestone(snap.CurrentStreak) {
		due = append(due, Trigger{Kind: models.KindMilestone})
	}
	return due
}

func withinWindow(hhmm string, current, grace int) bool {
	if hhmm == "" {
		return false
	}
	at, err := utils.ParseTimeToMinutes(hhmm)
	if err != nil {
		return false
	}
	late := current - at
	return late >= 0 && late <= grace
}
