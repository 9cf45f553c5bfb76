// file: internals/features/questionnaire/templates/model/template_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TemplateModel maps the `questionnaire_templates` table.
type TemplateModel struct {
	// =========================
	// Primary Key
	// =========================
	TemplateID uuid.UUID `json:"template_id" gorm:"column:template_id;type:uuid;default:gen_random_uuid();primaryKey"`

	// =========================
	// Tenant
	// =========================
	TemplateTenantID uuid.UUID `json:"template_tenant_id" gorm:"column:template_tenant_id;type:uuid;not null;index:idx_templates_tenant_created_at,priority:1"`

	// =========================
	// Core data
	// =========================
	TemplateName        string  `json:"template_name" gorm:"column:template_name;type:varchar(180);not null"`
	TemplateKind        string  `json:"template_kind" gorm:"column:template_kind;type:varchar(32);not null;index:idx_templates_kind"`
	TemplateLanguage    string  `json:"template_language" gorm:"column:template_language;type:varchar(8);not null;default:'en'"`
	TemplateDescription *string `json:"template_description" gorm:"column:template_description;type:text"`

	TemplateIsActive bool `json:"template_is_active" gorm:"column:template_is_active;not null;default:true"`
	TemplateVersion  int  `json:"template_version" gorm:"column:template_version;not null;default:1"`

	TemplateSuggestedRoles     pq.StringArray `json:"template_suggested_roles" gorm:"column:template_suggested_roles;type:text[]"`
	TemplateSuggestedFrequency *string        `json:"template_suggested_frequency" gorm:"column:template_suggested_frequency;type:varchar(32)"`

	// AI generation metadata (provider, model, temperature, max_tokens, prompt)
	TemplateAIConfig datatypes.JSONMap `json:"template_ai_config,omitempty" gorm:"column:template_ai_config;type:jsonb"`

	TemplateUsageCount int `json:"template_usage_count" gorm:"column:template_usage_count;not null;default:0"`

	// =========================
	// Timestamps
	// =========================
	TemplateCreatedAt time.Time      `json:"template_created_at" gorm:"column:template_created_at;not null;autoCreateTime;index:idx_templates_tenant_created_at,priority:2,sort:desc"`
	TemplateUpdatedAt time.Time      `json:"template_updated_at" gorm:"column:template_updated_at;not null;autoUpdateTime"`
	TemplateDeletedAt gorm.DeletedAt `json:"template_deleted_at" gorm:"column:template_deleted_at;index"`

	// =========================
	// Relations
	// =========================
	TemplateQuestions []QuestionModel       `json:"template_questions,omitempty" gorm:"foreignKey:QuestionTemplateID;references:TemplateID"`
	TemplateWeights   []QuestionWeightModel `json:"template_weights,omitempty" gorm:"foreignKey:WeightTemplateID;references:TemplateID"`
}

func (TemplateModel) TableName() string {
	return "questionnaire_templates"
}

// QuestionModel maps the `questionnaire_questions` table.
type QuestionModel struct {
	QuestionID         uuid.UUID `json:"question_id" gorm:"column:question_id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuestionTemplateID uuid.UUID `json:"question_template_id" gorm:"column:question_template_id;type:uuid;not null;index:idx_questions_template"`

	QuestionText     string `json:"question_text" gorm:"column:question_text;type:text;not null"`
	QuestionCategory string `json:"question_category" gorm:"column:question_category;type:varchar(40);not null;default:'GENERAL'"`
	QuestionKind     string `json:"question_kind" gorm:"column:question_kind;type:varchar(20);not null;default:'likert'"`

	QuestionScaleMin int `json:"question_scale_min" gorm:"column:question_scale_min;not null;default:1"`
	QuestionScaleMax int `json:"question_scale_max" gorm:"column:question_scale_max;not null;default:5"`

	QuestionWeight     float64 `json:"question_weight" gorm:"column:question_weight;type:numeric(6,3);not null;default:1"`
	QuestionIsRequired bool    `json:"question_is_required" gorm:"column:question_is_required;not null;default:true"`
	QuestionIsReversed bool    `json:"question_is_reversed" gorm:"column:question_is_reversed;not null;default:false"`
	QuestionPosition   int     `json:"question_position" gorm:"column:question_position;not null;default:0"`

	QuestionCreatedAt time.Time `json:"question_created_at" gorm:"column:question_created_at;not null;autoCreateTime"`
	QuestionUpdatedAt time.Time `json:"question_updated_at" gorm:"column:question_updated_at;not null;autoUpdateTime"`

	QuestionOptions []QuestionOptionModel `json:"question_options,omitempty" gorm:"foreignKey:OptionQuestionID;references:QuestionID"`
}

func (QuestionModel) TableName() string {
	return "questionnaire_questions"
}

// QuestionOptionModel maps the `question_options` table.
type QuestionOptionModel struct {
	OptionID         uuid.UUID `json:"option_id" gorm:"column:option_id;type:uuid;default:gen_random_uuid();primaryKey"`
	OptionQuestionID uuid.UUID `json:"option_question_id" gorm:"column:option_question_id;type:uuid;not null;index:idx_options_question"`

	OptionText     string  `json:"option_text" gorm:"column:option_text;type:text;not null"`
	OptionValue    float64 `json:"option_value" gorm:"column:option_value;type:numeric(6,3);not null"`
	OptionPosition int     `json:"option_position" gorm:"column:option_position;not null;default:0"`
}

func (QuestionOptionModel) TableName() string {
	return "question_options"
}

// QuestionWeightModel maps the `question_weights` table: one row per
// (question, target) mapping. Target is either an engagement area code or
// a soft-skill id, multiplicatively applied to the normalized response.
type QuestionWeightModel struct {
	WeightID         uuid.UUID `json:"weight_id" gorm:"column:weight_id;type:uuid;default:gen_random_uuid();primaryKey"`
	WeightTemplateID uuid.UUID `json:"weight_template_id" gorm:"column:weight_template_id;type:uuid;not null;index:idx_weights_template"`
	WeightQuestionID uuid.UUID `json:"weight_question_id" gorm:"column:weight_question_id;type:uuid;not null;index:idx_weights_question"`

	WeightTargetKind string `json:"weight_target_kind" gorm:"column:weight_target_kind;type:varchar(12);not null"` // area | soft_skill
	WeightTargetCode string `json:"weight_target_code" gorm:"column:weight_target_code;type:varchar(64);not null"`

	WeightValue      float64 `json:"weight_value" gorm:"column:weight_value;type:numeric(6,3);not null;default:1"`
	WeightIsReversed bool    `json:"weight_is_reversed" gorm:"column:weight_is_reversed;not null;default:false"`
}

func (QuestionWeightModel) TableName() string {
	return "question_weights"
}
