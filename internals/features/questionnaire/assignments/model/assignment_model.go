// file: internals/features/questionnaire/assignments/model/assignment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Assignment statuses.
const (
	StatusAssigned   = "assigned"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusExpired    = "expired"
	StatusSkipped    = "skipped"
)

// TerminalStatuses are the states the sweeper and cancel leave alone.
var TerminalStatuses = []string{StatusCompleted, StatusExpired, StatusSkipped}

// AssignmentModel maps the `questionnaire_assignments` table. One row
// per (campaign, employee, attempt).
type AssignmentModel struct {
	AssignmentID       uuid.UUID `json:"assignment_id" gorm:"column:assignment_id;type:uuid;default:gen_random_uuid();primaryKey"`
	AssignmentTenantID uuid.UUID `json:"assignment_tenant_id" gorm:"column:assignment_tenant_id;type:uuid;not null;index"`

	AssignmentCampaignID uuid.UUID `json:"assignment_campaign_id" gorm:"column:assignment_campaign_id;type:uuid;not null;uniqueIndex:uq_assignments_campaign_employee_attempt,priority:1"`
	AssignmentEmployeeID uuid.UUID `json:"assignment_employee_id" gorm:"column:assignment_employee_id;type:uuid;not null;uniqueIndex:uq_assignments_campaign_employee_attempt,priority:2;index:idx_assignments_employee"`

	AssignmentAttemptNumber int `json:"assignment_attempt_number" gorm:"column:assignment_attempt_number;not null;default:1;uniqueIndex:uq_assignments_campaign_employee_attempt,priority:3"`

	AssignmentStatus string `json:"assignment_status" gorm:"column:assignment_status;type:varchar(16);not null;default:'assigned';index:idx_assignments_status"`

	AssignmentAssignedAt  time.Time  `json:"assignment_assigned_at" gorm:"column:assignment_assigned_at;not null;autoCreateTime"`
	AssignmentStartedAt   *time.Time `json:"assignment_started_at" gorm:"column:assignment_started_at;type:timestamptz"`
	AssignmentCompletedAt *time.Time `json:"assignment_completed_at" gorm:"column:assignment_completed_at;type:timestamptz"`

	AssignmentTimeTakenSeconds *int    `json:"assignment_time_taken_seconds" gorm:"column:assignment_time_taken_seconds"`
	AssignmentCompletionRate   float64 `json:"assignment_completion_rate" gorm:"column:assignment_completion_rate;type:numeric(4,3);not null;default:0"`

	AssignmentLastReminderAt *time.Time `json:"assignment_last_reminder_at" gorm:"column:assignment_last_reminder_at;type:timestamptz"`
}

func (AssignmentModel) TableName() string {
	return "questionnaire_assignments"
}

// ResponseModel maps the `questionnaire_responses` table: the raw
// submission for one assignment attempt, stored verbatim.
type ResponseModel struct {
	ResponseID           uuid.UUID `json:"response_id" gorm:"column:response_id;type:uuid;default:gen_random_uuid();primaryKey"`
	ResponseTenantID     uuid.UUID `json:"response_tenant_id" gorm:"column:response_tenant_id;type:uuid;not null;index"`
	ResponseAssignmentID uuid.UUID `json:"response_assignment_id" gorm:"column:response_assignment_id;type:uuid;not null;uniqueIndex:uq_responses_assignment"`

	ResponseStartedAt   *time.Time `json:"response_started_at" gorm:"column:response_started_at;type:timestamptz"`
	ResponseCompletedAt *time.Time `json:"response_completed_at" gorm:"column:response_completed_at;type:timestamptz"`

	// sha256 over the canonical answer payload; the submit idempotency key
	ResponseHash string `json:"response_hash" gorm:"column:response_hash;type:varchar(64);not null"`

	ResponseClientMeta datatypes.JSONMap `json:"response_client_meta,omitempty" gorm:"column:response_client_meta;type:jsonb"`

	ResponseCreatedAt time.Time `json:"response_created_at" gorm:"column:response_created_at;not null;autoCreateTime"`

	ResponseAnswers []AnswerModel `json:"response_answers,omitempty" gorm:"foreignKey:AnswerResponseID;references:ResponseID"`
}

func (ResponseModel) TableName() string {
	return "questionnaire_responses"
}

// AnswerModel maps the `response_answers` table: one raw answer, tagged
// by kind, with a category snapshot for audit.
type AnswerModel struct {
	AnswerID         uuid.UUID `json:"answer_id" gorm:"column:answer_id;type:uuid;default:gen_random_uuid();primaryKey"`
	AnswerResponseID uuid.UUID `json:"answer_response_id" gorm:"column:answer_response_id;type:uuid;not null;index:idx_answers_response"`
	AnswerQuestionID uuid.UUID `json:"answer_question_id" gorm:"column:answer_question_id;type:uuid;not null"`

	AnswerKind string `json:"answer_kind" gorm:"column:answer_kind;type:varchar(20);not null"`

	AnswerValue     *float64       `json:"answer_value" gorm:"column:answer_value;type:numeric(8,3)"`
	AnswerOptionID  *uuid.UUID     `json:"answer_option_id" gorm:"column:answer_option_id;type:uuid"`
	AnswerOptionIDs pq.StringArray `json:"answer_option_ids" gorm:"column:answer_option_ids;type:text[]"`
	AnswerText      *string        `json:"answer_text" gorm:"column:answer_text;type:text"`

	// category assignment frozen at submission time
	AnswerCategorySnapshot *string `json:"answer_category_snapshot" gorm:"column:answer_category_snapshot;type:varchar(40)"`

	AnswerPosition int `json:"answer_position" gorm:"column:answer_position;not null;default:0"`
}

func (AnswerModel) TableName() string {
	return "response_answers"
}
