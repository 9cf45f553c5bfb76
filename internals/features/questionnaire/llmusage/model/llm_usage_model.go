// file: internals/features/questionnaire/llmusage/model/llm_usage_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Call outcome statuses.
const (
	StatusSuccess  = "success"
	StatusError    = "error"
	StatusTimeout  = "timeout"
	StatusFallback = "fallback"
)

// Operation kinds recorded by the ledger.
const (
	OpGenerateQuestions = "generate_questions"
)

// LLMUsageModel maps the `llm_usage_records` table: one row per AI call,
// successful or not.
type LLMUsageModel struct {
	UsageID       uuid.UUID `json:"usage_id" gorm:"column:usage_id;type:uuid;default:gen_random_uuid();primaryKey"`
	UsageTenantID uuid.UUID `json:"usage_tenant_id" gorm:"column:usage_tenant_id;type:uuid;not null;index:idx_llm_usage_tenant_created,priority:1"`
	UsageUserID   uuid.UUID `json:"usage_user_id" gorm:"column:usage_user_id;type:uuid;not null"`

	UsageOperation string `json:"usage_operation" gorm:"column:usage_operation;type:varchar(40);not null"`
	UsageProvider  string `json:"usage_provider" gorm:"column:usage_provider;type:varchar(40);not null"`
	UsageModel     string `json:"usage_model" gorm:"column:usage_model;type:varchar(80);not null"`

	UsagePromptTokens     int `json:"usage_prompt_tokens" gorm:"column:usage_prompt_tokens;not null;default:0"`
	UsageCompletionTokens int `json:"usage_completion_tokens" gorm:"column:usage_completion_tokens;not null;default:0"`
	UsageTotalTokens      int `json:"usage_total_tokens" gorm:"column:usage_total_tokens;not null;default:0"`

	UsageEstimatedCost  float64 `json:"usage_estimated_cost" gorm:"column:usage_estimated_cost;type:numeric(10,6);not null;default:0"`
	UsageCostUnpriced   bool    `json:"usage_cost_unpriced" gorm:"column:usage_cost_unpriced;not null;default:false"`
	UsageElapsedMs      int64   `json:"usage_elapsed_ms" gorm:"column:usage_elapsed_ms;not null;default:0"`
	UsageStatus         string  `json:"usage_status" gorm:"column:usage_status;type:varchar(16);not null"`
	UsageErrorMessage   *string `json:"usage_error_message" gorm:"column:usage_error_message;type:text"`

	UsageEntityKind *string    `json:"usage_entity_kind" gorm:"column:usage_entity_kind;type:varchar(32)"`
	UsageEntityID   *uuid.UUID `json:"usage_entity_id" gorm:"column:usage_entity_id;type:uuid"`

	UsageCreatedAt time.Time `json:"usage_created_at" gorm:"column:usage_created_at;not null;autoCreateTime;index:idx_llm_usage_tenant_created,priority:2,sort:desc"`
}

func (LLMUsageModel) TableName() string {
	return "llm_usage_records"
}
