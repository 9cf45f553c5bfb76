// file: internals/features/questionnaire/results/model/result_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ResultModel maps the `questionnaire_results` table: the immutable
// scoring artifact for one completed assignment attempt. Recomputation
// writes a new row with a later computed_at, never an update.
type ResultModel struct {
	ResultID       uuid.UUID `json:"result_id" gorm:"column:result_id;type:uuid;default:gen_random_uuid();primaryKey"`
	ResultTenantID uuid.UUID `json:"result_tenant_id" gorm:"column:result_tenant_id;type:uuid;not null;index:idx_results_tenant_template,priority:1"`

	ResultAssignmentID  uuid.UUID `json:"result_assignment_id" gorm:"column:result_assignment_id;type:uuid;not null;uniqueIndex:uq_results_assignment"`
	ResultEmployeeID    uuid.UUID `json:"result_employee_id" gorm:"column:result_employee_id;type:uuid;not null;index:idx_results_employee"`
	ResultTemplateID    uuid.UUID `json:"result_template_id" gorm:"column:result_template_id;type:uuid;not null;index:idx_results_tenant_template,priority:2"`
	ResultAttemptNumber int       `json:"result_attempt_number" gorm:"column:result_attempt_number;not null;default:1"`

	ResultOverallScore float64  `json:"result_overall_score" gorm:"column:result_overall_score;type:numeric(5,2);not null"`
	ResultPercentile   *float64 `json:"result_percentile" gorm:"column:result_percentile;type:numeric(5,2)"`
	ResultRoleFit      *float64 `json:"result_role_fit" gorm:"column:result_role_fit;type:numeric(5,2)"`
	ResultSentiment    *string  `json:"result_sentiment" gorm:"column:result_sentiment;type:varchar(10)"`

	// {code → {average, weighted, count, weight, level}}
	ResultCategories datatypes.JSON `json:"result_categories" gorm:"column:result_categories;type:jsonb"`
	// {skill → {raw, weighted, percentile, level, ...}}
	ResultSoftSkills datatypes.JSON `json:"result_soft_skills,omitempty" gorm:"column:result_soft_skills;type:jsonb"`

	ResultStrengths       datatypes.JSON `json:"result_strengths" gorm:"column:result_strengths;type:jsonb"`
	ResultImprovements    datatypes.JSON `json:"result_improvements" gorm:"column:result_improvements;type:jsonb"`
	ResultRecommendations datatypes.JSON `json:"result_recommendations" gorm:"column:result_recommendations;type:jsonb"`

	// the frozen scoring inputs: template questions, weights, role policy
	ResultWeightSnapshot datatypes.JSON `json:"result_weight_snapshot" gorm:"column:result_weight_snapshot;type:jsonb"`

	// matches the response hash the result was computed from
	ResultResponseHash string `json:"result_response_hash" gorm:"column:result_response_hash;type:varchar(64);not null"`

	ResultComputedAt time.Time `json:"result_computed_at" gorm:"column:result_computed_at;not null;autoCreateTime;index"`
}

func (ResultModel) TableName() string {
	return "questionnaire_results"
}
