package models

import "testing"

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"defaults", func(*Settings) {}, false},
		{"local timezone", func(s *Settings) { s.Timezone = "Local" }, false},
		{"bad timezone", func(s *Settings) { s.Timezone = "Mars/Olympus" }, true},
		{"bad sprint start", func(s *Settings) { s.SprintStart = "03/01/2025" }, true},
		{"negative sprint", func(s *Settings) { s.SprintLengthDays = -1 }, true},
		{"bad session time", func(s *Settings) { s.EveningTime = "25:00" }, true},
		{"bad accountability time", func(s *Settings) { s.AccountabilityTime = "soon" }, true},
		{"negative grace", func(s *Settings) { s.NotificationGracePeriodMin = -5 }, true},
		{"window ends before midnight", func(s *Settings) { s.BedtimeTime = "23:49" }, false},
		{"window crosses midnight", func(s *Settings) { s.BedtimeTime = "23:55" }, true},
		{"grace longer than the day", func(s *Settings) { s.NotificationGracePeriodMin = 24 * 60 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			s.Timezone = "UTC"
			tt.mutate(&s)
			if err := s.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSettingsSessionTime(t *testing.T) {
	s := DefaultSettings()
	for _, session := range AllSessions {
		if s.SessionTime(session) == "" {
			t.Errorf("no default time for %s", session)
		}
	}
	if s.SessionTime(Session(9)) != "" {
		t.Error("unknown session should have no time")
	}
}
