// file: internals/features/questionnaire/campaigns/service/sweeper_test.go
package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	model "moobee_backend/internals/features/questionnaire/campaigns/model"
	notifService "moobee_backend/internals/features/questionnaire/notifications/service"
)

// dryRunDB opens a gorm handle that only renders SQL; nothing ever
// reaches a server.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.Open(""), &gorm.Config{
		DryRun:                 true,
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	require.NoError(t, err)
	return db
}

// A cohort that finishes before the deadline completes its campaign on
// the same sweep: the drained scope must not wait for the deadline.
func TestDrainedCampaignsIgnoresDeadline(t *testing.T) {
	db := dryRunDB(t)

	stmt := drainedCampaigns(db).Update("campaign_status", model.StatusCompleted).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "campaign_status = ")
	assert.Contains(t, sql, "NOT EXISTS")
	assert.Contains(t, sql, "assignment_status NOT IN")
	assert.NotContains(t, sql, "campaign_deadline_at", "early finishers must not wait for the deadline")
}

func TestReminderReason(t *testing.T) {
	cases := []struct {
		name     string
		status   string
		timeLeft time.Duration
		want     string
	}{
		{"untouched assignment", "assigned", 72 * time.Hour, notifService.ReasonNotStarted},
		{"partially answered", "in_progress", 72 * time.Hour, notifService.ReasonInProgress},
		{"deadline imminent", "assigned", 12 * time.Hour, notifService.ReasonDeadlineNear},
		{"deadline trumps progress", "in_progress", 12 * time.Hour, notifService.ReasonDeadlineNear},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, reminderReason(tc.status, tc.timeLeft))
		})
	}
}

func TestParseReminderPolicy(t *testing.T) {
	p := parseReminderPolicy([]byte(`{"days_before":3,"repeat_hours":24}`))
	require.NotNil(t, p)
	assert.Equal(t, 3.0, p.DaysBefore)
	assert.Equal(t, 24.0, p.RepeatHours)

	assert.Nil(t, parseReminderPolicy(nil))
	assert.Nil(t, parseReminderPolicy([]byte(`{}`)), "days_before is mandatory")
	assert.Nil(t, parseReminderPolicy([]byte(`not json`)))
}

func TestReminderDueWindow(t *testing.T) {
	p := &reminderPolicy{DaysBefore: 3, RepeatHours: 24}
	deadline := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

	early := deadline.Add(-5 * 24 * time.Hour)
	assert.False(t, p.due(early, deadline, nil), "window not open yet")

	inWindow := deadline.Add(-2 * 24 * time.Hour)
	assert.True(t, p.due(inWindow, deadline, nil), "first reminder fires in window")

	past := deadline.Add(time.Hour)
	assert.False(t, p.due(past, deadline, nil), "no reminders after the deadline")
}

func TestReminderDueRepeat(t *testing.T) {
	deadline := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	now := deadline.Add(-24 * time.Hour)

	repeating := &reminderPolicy{DaysBefore: 3, RepeatHours: 12}
	recent := now.Add(-6 * time.Hour)
	stale := now.Add(-13 * time.Hour)
	assert.False(t, repeating.due(now, deadline, &recent))
	assert.True(t, repeating.due(now, deadline, &stale))

	oneShot := &reminderPolicy{DaysBefore: 3}
	assert.False(t, oneShot.due(now, deadline, &stale), "no repeat interval means fire once")
}
