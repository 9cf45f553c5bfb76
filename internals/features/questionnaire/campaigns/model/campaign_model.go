// file: internals/features/questionnaire/campaigns/model/campaign_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Campaign statuses.
const (
	StatusDraft     = "draft"
	StatusScheduled = "scheduled"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Campaign frequencies.
const (
	FrequencyOnce      = "once"
	FrequencyRecurring = "recurring"
	FrequencyPulse     = "pulse"
)

// CampaignModel maps the `questionnaire_campaigns` table. The natural
// key (tenant, template, name, start, deadline) absorbs create retries.
type CampaignModel struct {
	CampaignID       uuid.UUID `json:"campaign_id" gorm:"column:campaign_id;type:uuid;default:gen_random_uuid();primaryKey"`
	CampaignTenantID uuid.UUID `json:"campaign_tenant_id" gorm:"column:campaign_tenant_id;type:uuid;not null;uniqueIndex:uq_campaigns_natural,priority:1;index:idx_campaigns_tenant_created,priority:1"`

	CampaignTemplateID uuid.UUID `json:"campaign_template_id" gorm:"column:campaign_template_id;type:uuid;not null;uniqueIndex:uq_campaigns_natural,priority:2;index:idx_campaigns_template"`

	CampaignName string `json:"campaign_name" gorm:"column:campaign_name;type:varchar(180);not null;uniqueIndex:uq_campaigns_natural,priority:3"`

	CampaignStartAt    time.Time `json:"campaign_start_at" gorm:"column:campaign_start_at;type:timestamptz;not null;uniqueIndex:uq_campaigns_natural,priority:4"`
	CampaignDeadlineAt time.Time `json:"campaign_deadline_at" gorm:"column:campaign_deadline_at;type:timestamptz;not null;uniqueIndex:uq_campaigns_natural,priority:5;index:idx_campaigns_deadline"`

	CampaignFrequency      string  `json:"campaign_frequency" gorm:"column:campaign_frequency;type:varchar(16);not null;default:'once'"`
	CampaignRecurrenceRule *string `json:"campaign_recurrence_rule" gorm:"column:campaign_recurrence_rule;type:varchar(120)"`

	CampaignStatus string `json:"campaign_status" gorm:"column:campaign_status;type:varchar(16);not null;default:'draft';index:idx_campaigns_status"`

	CampaignIsMandatory bool `json:"campaign_is_mandatory" gorm:"column:campaign_is_mandatory;not null;default:false"`
	CampaignIsAnonymous bool `json:"campaign_is_anonymous" gorm:"column:campaign_is_anonymous;not null;default:false"`
	CampaignMaxAttempts int  `json:"campaign_max_attempts" gorm:"column:campaign_max_attempts;not null;default:1"`

	// {days_before:int, repeat_hours:int}
	CampaignReminderPolicy datatypes.JSONMap `json:"campaign_reminder_policy,omitempty" gorm:"column:campaign_reminder_policy;type:jsonb"`
	CampaignChannels       pq.StringArray    `json:"campaign_channels" gorm:"column:campaign_channels;type:text[]"`

	CampaignCreatedBy uuid.UUID `json:"campaign_created_by" gorm:"column:campaign_created_by;type:uuid;not null"`

	CampaignCreatedAt time.Time `json:"campaign_created_at" gorm:"column:campaign_created_at;not null;autoCreateTime;index:idx_campaigns_tenant_created,priority:2,sort:desc"`
	CampaignUpdatedAt time.Time `json:"campaign_updated_at" gorm:"column:campaign_updated_at;not null;autoUpdateTime"`
}

func (CampaignModel) TableName() string {
	return "questionnaire_campaigns"
}
