// file: internals/features/questionnaire/campaigns/service/sweeper.go
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"moobee_backend/internals/configs"
	assignmentModel "moobee_backend/internals/features/questionnaire/assignments/model"
	model "moobee_backend/internals/features/questionnaire/campaigns/model"
	notifService "moobee_backend/internals/features/questionnaire/notifications/service"
)

// StartCampaignSweeper runs the lifecycle maintenance loop: activating
// scheduled campaigns, expiring overdue assignments, completing drained
// campaigns and firing reminder ticks. Every pass is idempotent, so a
// missed or doubled tick never corrupts state.
func StartCampaignSweeper(db *gorm.DB, dispatcher notifService.Dispatcher) {
	go func() {
		for {
			SweepOnce(db, dispatcher, time.Now())
			time.Sleep(configs.SweeperInterval)
		}
	}()
}

// SweepOnce executes a single maintenance pass at the given instant.
func SweepOnce(db *gorm.DB, dispatcher notifService.Dispatcher, now time.Time) {
	activateScheduled(db, now)
	expireOverdue(db, now)
	completeDrained(db)
	sendReminders(db, dispatcher, now)
}

func activateScheduled(db *gorm.DB, now time.Time) {
	res := db.Model(&model.CampaignModel{}).
		Where("campaign_status = ? AND campaign_start_at <= ?", model.StatusScheduled, now).
		Update("campaign_status", model.StatusActive)
	if res.Error != nil {
		log.Printf("[SWEEPER ERROR] activate scheduled campaigns: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("[SWEEPER] %d campaign(s) activated", res.RowsAffected)
	}
}

func expireOverdue(db *gorm.DB, now time.Time) {
	res := db.Model(&assignmentModel.AssignmentModel{}).
		Where("assignment_status NOT IN ?", assignmentModel.TerminalStatuses).
		Where("assignment_campaign_id IN (?)",
			db.Model(&model.CampaignModel{}).Select("campaign_id").
				Where("campaign_deadline_at < ? AND campaign_status <> ?", now, model.StatusCancelled)).
		Update("assignment_status", assignmentModel.StatusExpired)
	if res.Error != nil {
		log.Printf("[SWEEPER ERROR] expire overdue assignments: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("[SWEEPER] %d assignment(s) expired", res.RowsAffected)
	}
}

// drainedCampaigns scopes active campaigns whose every assignment has
// reached a terminal status. The deadline plays no part here: a cohort
// that finishes early completes its campaign right away, and overdue
// campaigns drain through expireOverdue on the same pass.
func drainedCampaigns(db *gorm.DB) *gorm.DB {
	return db.Model(&model.CampaignModel{}).
		Where("campaign_status = ?", model.StatusActive).
		Where("NOT EXISTS (?)",
			db.Model(&assignmentModel.AssignmentModel{}).Select("1").
				Where("assignment_campaign_id = questionnaire_campaigns.campaign_id").
				Where("assignment_status NOT IN ?", assignmentModel.TerminalStatuses))
}

func completeDrained(db *gorm.DB) {
	res := drainedCampaigns(db).Update("campaign_status", model.StatusCompleted)
	if res.Error != nil {
		log.Printf("[SWEEPER ERROR] complete drained campaigns: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("[SWEEPER] %d campaign(s) completed", res.RowsAffected)
	}
}

// reminderPolicy mirrors the campaign_reminder_policy JSONB document:
// {"days_before": N, "repeat_hours": H}.
type reminderPolicy struct {
	DaysBefore  float64 `json:"days_before"`
	RepeatHours float64 `json:"repeat_hours"`
}

func parseReminderPolicy(raw []byte) *reminderPolicy {
	if len(raw) == 0 {
		return nil
	}
	var p reminderPolicy
	if err := json.Unmarshal(raw, &p); err != nil || p.DaysBefore <= 0 {
		return nil
	}
	return &p
}

// due reports whether a reminder should fire now: the reminder window
// has opened and either no reminder was sent yet or the repeat interval
// has elapsed since the last one.
func (p *reminderPolicy) due(now, deadline time.Time, last *time.Time) bool {
	windowOpen := deadline.Sub(now) <= time.Duration(p.DaysBefore*24)*time.Hour
	if !windowOpen || now.After(deadline) {
		return false
	}
	if last == nil {
		return true
	}
	if p.RepeatHours <= 0 {
		return false
	}
	return now.Sub(*last) >= time.Duration(p.RepeatHours)*time.Hour
}

// reminderReason picks the notification reason for one candidate. An
// imminent deadline trumps the status-based reasons.
func reminderReason(status string, timeLeft time.Duration) string {
	if timeLeft <= 24*time.Hour {
		return notifService.ReasonDeadlineNear
	}
	if status == assignmentModel.StatusInProgress {
		return notifService.ReasonInProgress
	}
	return notifService.ReasonNotStarted
}

func sendReminders(db *gorm.DB, dispatcher notifService.Dispatcher, now time.Time) {
	var rows []struct {
		AssignmentID     string
		AssignmentStatus string
		DeadlineAt       time.Time
		ReminderPolicy   []byte
		LastReminderAt   *time.Time
	}
	err := db.Table("questionnaire_assignments AS a").
		Select(`a.assignment_id, a.assignment_status,
		        c.campaign_deadline_at AS deadline_at,
		        c.campaign_reminder_policy AS reminder_policy,
		        a.assignment_last_reminder_at AS last_reminder_at`).
		Joins("JOIN questionnaire_campaigns c ON c.campaign_id = a.assignment_campaign_id").
		Where("c.campaign_status = ?", model.StatusActive).
		Where("a.assignment_status IN ?", []string{assignmentModel.StatusAssigned, assignmentModel.StatusInProgress}).
		Where("c.campaign_reminder_policy IS NOT NULL").
		Limit(500).
		Scan(&rows).Error
	if err != nil {
		log.Printf("[SWEEPER ERROR] load reminder candidates: %v", err)
		return
	}

	for _, r := range rows {
		policy := parseReminderPolicy(r.ReminderPolicy)
		if policy == nil {
			continue
		}
		if !policy.due(now, r.DeadlineAt, r.LastReminderAt) {
			continue
		}

		reason := reminderReason(r.AssignmentStatus, r.DeadlineAt.Sub(now))

		id, err := uuid.Parse(r.AssignmentID)
		if err != nil {
			continue
		}
		if err := dispatcher.Remind(context.Background(), id, reason); err != nil {
			log.Printf("[SWEEPER ERROR] remind assignment %s: %v", r.AssignmentID, err)
			continue
		}
		if err := db.Model(&assignmentModel.AssignmentModel{}).
			Where("assignment_id = ?", id).
			Update("assignment_last_reminder_at", now).Error; err != nil {
			log.Printf("[SWEEPER ERROR] mark reminder for %s: %v", r.AssignmentID, err)
		}
	}
}
