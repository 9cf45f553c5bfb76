// file: internals/features/questionnaire/campaigns/dto/campaign_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "moobee_backend/internals/features/questionnaire/campaigns/model"
)

/* =========================================================
   1) REQUEST DTO
   ========================================================= */

type ReminderPolicyRequest struct {
	DaysBefore  int `json:"days_before" validate:"omitempty,min=0,max=30"`
	RepeatHours int `json:"repeat_hours" validate:"omitempty,min=1,max=168"`
}

type CreateCampaignRequest struct {
	TemplateID  uuid.UUID   `json:"campaign_template_id" validate:"required"`
	Name        string      `json:"campaign_name" validate:"required,max=180"`
	EmployeeIDs []uuid.UUID `json:"campaign_employee_ids" validate:"required,min=1,dive,required"`

	StartAt    time.Time `json:"campaign_start_at" validate:"required"`
	DeadlineAt time.Time `json:"campaign_deadline_at" validate:"required"`

	Frequency      string  `json:"campaign_frequency" validate:"omitempty,oneof=once recurring pulse"`
	RecurrenceRule *string `json:"campaign_recurrence_rule" validate:"omitempty,max=120"`

	IsMandatory bool `json:"campaign_is_mandatory"`
	IsAnonymous bool `json:"campaign_is_anonymous"`
	MaxAttempts *int `json:"campaign_max_attempts" validate:"omitempty,min=1,max=10"`

	ReminderPolicy *ReminderPolicyRequest `json:"campaign_reminder_policy" validate:"omitempty"`
	Channels       []string               `json:"campaign_channels" validate:"omitempty,dive,oneof=email slack in_app"`
}

type ConflictCheckRequest struct {
	EmployeeIDs []uuid.UUID `json:"employeeIds" validate:"required,min=1,dive,required"`
	StartDate   time.Time   `json:"startDate" validate:"required"`
	Deadline    time.Time   `json:"deadline" validate:"required"`
}

type ListCampaignQuery struct {
	Limit  *int    `query:"limit" validate:"omitempty,min=1,max=200"`
	Page   *int    `query:"page" validate:"omitempty,min=1"`
	Status *string `query:"status" validate:"omitempty,oneof=draft scheduled active completed cancelled"`
}

/* =========================================================
   2) RESPONSE DTO
   ========================================================= */

type CampaignResponse struct {
	CampaignID      uuid.UUID         `json:"campaign_id"`
	TenantID        uuid.UUID         `json:"campaign_tenant_id"`
	TemplateID      uuid.UUID         `json:"campaign_template_id"`
	Name            string            `json:"campaign_name"`
	StartAt         time.Time         `json:"campaign_start_at"`
	DeadlineAt      time.Time         `json:"campaign_deadline_at"`
	Frequency       string            `json:"campaign_frequency"`
	RecurrenceRule  *string           `json:"campaign_recurrence_rule"`
	Status          string            `json:"campaign_status"`
	IsMandatory     bool              `json:"campaign_is_mandatory"`
	IsAnonymous     bool              `json:"campaign_is_anonymous"`
	MaxAttempts     int               `json:"campaign_max_attempts"`
	ReminderPolicy  map[string]any    `json:"campaign_reminder_policy,omitempty"`
	Channels        []string          `json:"campaign_channels"`
	AssignmentCount int64             `json:"campaign_assignment_count"`
	CreatedAt       time.Time         `json:"campaign_created_at"`
}

type ConflictEntry struct {
	EmployeeID   uuid.UUID `json:"employee_id"`
	CampaignID   uuid.UUID `json:"campaign_id"`
	CampaignName string    `json:"campaign_name"`
	DeadlineAt   time.Time `json:"deadline_at"`
}

type ConflictCheckResponse struct {
	HasConflicts bool            `json:"hasConflicts"`
	Conflicts    []ConflictEntry `json:"conflicts"`
	Warnings     []string        `json:"warnings"`
}

type CampaignStatsResponse struct {
	CampaignID       uuid.UUID          `json:"campaign_id"`
	Total            int64              `json:"total"`
	ByStatus         map[string]int64   `json:"by_status"`
	CompletionRate   float64            `json:"completion_rate"`
	AvgTimeSeconds   *float64           `json:"avg_time_seconds"`
	CategoryAverages map[string]float64 `json:"category_averages"`
}

/* =========================================================
   3) Converters
   ========================================================= */

func (r *CreateCampaignRequest) ToModel(tenantID, createdBy uuid.UUID) model.CampaignModel {
	m := model.CampaignModel{
		CampaignTenantID:       tenantID,
		CampaignTemplateID:     r.TemplateID,
		CampaignName:           r.Name,
		CampaignStartAt:        r.StartAt,
		CampaignDeadlineAt:     r.DeadlineAt,
		CampaignFrequency:      r.Frequency,
		CampaignRecurrenceRule: r.RecurrenceRule,
		CampaignIsMandatory:    r.IsMandatory,
		CampaignIsAnonymous:    r.IsAnonymous,
		CampaignMaxAttempts:    1,
		CampaignChannels:       r.Channels,
		CampaignCreatedBy:      createdBy,
	}
	if m.CampaignFrequency == "" {
		m.CampaignFrequency = model.FrequencyOnce
	}
	if r.MaxAttempts != nil {
		m.CampaignMaxAttempts = *r.MaxAttempts
	}
	if r.ReminderPolicy != nil {
		m.CampaignReminderPolicy = datatypes.JSONMap{
			"days_before":  r.ReminderPolicy.DaysBefore,
			"repeat_hours": r.ReminderPolicy.RepeatHours,
		}
	}
	return m
}

func ToCampaignResponse(m *model.CampaignModel, assignmentCount int64) CampaignResponse {
	return CampaignResponse{
		CampaignID:      m.CampaignID,
		TenantID:        m.CampaignTenantID,
		TemplateID:      m.CampaignTemplateID,
		Name:            m.CampaignName,
		StartAt:         m.CampaignStartAt,
		DeadlineAt:      m.CampaignDeadlineAt,
		Frequency:       m.CampaignFrequency,
		RecurrenceRule:  m.CampaignRecurrenceRule,
		Status:          m.CampaignStatus,
		IsMandatory:     m.CampaignIsMandatory,
		IsAnonymous:     m.CampaignIsAnonymous,
		MaxAttempts:     m.CampaignMaxAttempts,
		ReminderPolicy:  map[string]any(m.CampaignReminderPolicy),
		Channels:        []string(m.CampaignChannels),
		AssignmentCount: assignmentCount,
		CreatedAt:       m.CampaignCreatedAt,
	}
}
