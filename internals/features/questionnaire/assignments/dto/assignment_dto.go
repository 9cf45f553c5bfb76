// file: internals/features/questionnaire/assignments/dto/assignment_dto.go
package dto

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	model "moobee_backend/internals/features/questionnaire/assignments/model"
	resultModel "moobee_backend/internals/features/questionnaire/results/model"
)

/* =========================================================
   1) Requests
   ========================================================= */

// SubmitAnswerRequest carries one raw answer. Exactly one of value,
// optionId, optionIds or text is expected, matching the question kind.
type SubmitAnswerRequest struct {
	QuestionID uuid.UUID   `json:"questionId" validate:"required"`
	Value      *float64    `json:"value,omitempty"`
	OptionID   *uuid.UUID  `json:"optionId,omitempty"`
	OptionIDs  []uuid.UUID `json:"optionIds,omitempty"`
	Text       *string     `json:"text,omitempty"`
	Category   *string     `json:"category,omitempty"`
}

type SubmitRequest struct {
	Responses        []SubmitAnswerRequest `json:"responses" validate:"required,min=1,dive"`
	StartedAt        *time.Time            `json:"startedAt,omitempty"`
	TimeTakenSeconds *int                  `json:"timeTakenSeconds,omitempty" validate:"omitempty,min=0"`
	ClientMeta       map[string]any        `json:"clientMeta,omitempty"`
}

// Hash returns the canonical sha256 fingerprint of the answer payload.
// Answers are sorted by question id and option lists are sorted, so two
// submissions with the same content always hash identically regardless
// of wire ordering.
func (r *SubmitRequest) Hash() string {
	lines := make([]string, 0, len(r.Responses))
	for _, a := range r.Responses {
		var b strings.Builder
		b.WriteString(a.QuestionID.String())
		if a.Value != nil {
			fmt.Fprintf(&b, "|v=%.6f", *a.Value)
		}
		if a.OptionID != nil {
			b.WriteString("|o=" + a.OptionID.String())
		}
		if len(a.OptionIDs) > 0 {
			ids := make([]string, 0, len(a.OptionIDs))
			for _, id := range a.OptionIDs {
				ids = append(ids, id.String())
			}
			sort.Strings(ids)
			b.WriteString("|m=" + strings.Join(ids, ","))
		}
		if a.Text != nil {
			b.WriteString("|t=" + *a.Text)
		}
		lines = append(lines, b.String())
	}
	sort.Strings(lines)
	sum := sha256.Sum256([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(sum[:])
}

/* =========================================================
   2) Responses
   ========================================================= */

type MyAssignmentResponse struct {
	AssignmentID  uuid.UUID  `json:"assignment_id"`
	Status        string     `json:"assignment_status"`
	AttemptNumber int        `json:"assignment_attempt_number"`
	AssignedAt    time.Time  `json:"assignment_assigned_at"`
	StartedAt     *time.Time `json:"assignment_started_at,omitempty"`

	CampaignID       uuid.UUID `json:"campaign_id"`
	CampaignName     string    `json:"campaign_name"`
	CampaignDeadline time.Time `json:"campaign_deadline_at"`
	IsMandatory      bool      `json:"campaign_is_mandatory"`
	IsAnonymous      bool      `json:"campaign_is_anonymous"`

	TemplateID   uuid.UUID `json:"template_id"`
	TemplateName string    `json:"template_name"`
	TemplateKind string    `json:"template_kind"`
}

type ResultResponse struct {
	ResultID      uuid.UUID `json:"result_id"`
	AssignmentID  uuid.UUID `json:"assignment_id"`
	TemplateID    uuid.UUID `json:"template_id"`
	AttemptNumber int       `json:"attempt_number"`

	OverallScore float64  `json:"overall_score"`
	Percentile   *float64 `json:"percentile"`
	RoleFit      *float64 `json:"role_fit,omitempty"`
	Sentiment    *string  `json:"sentiment,omitempty"`

	Categories      any `json:"categories"`
	SoftSkills      any `json:"soft_skills,omitempty"`
	Strengths       any `json:"strengths"`
	Improvements    any `json:"improvements"`
	Recommendations any `json:"recommendations"`

	ComputedAt time.Time `json:"computed_at"`
}

/* =========================================================
   3) Converters
   ========================================================= */

func ToResultResponse(m *resultModel.ResultModel) ResultResponse {
	return ResultResponse{
		ResultID:        m.ResultID,
		AssignmentID:    m.ResultAssignmentID,
		TemplateID:      m.ResultTemplateID,
		AttemptNumber:   m.ResultAttemptNumber,
		OverallScore:    m.ResultOverallScore,
		Percentile:      m.ResultPercentile,
		RoleFit:         m.ResultRoleFit,
		Sentiment:       m.ResultSentiment,
		Categories:      rawJSON(m.ResultCategories),
		SoftSkills:      rawJSON(m.ResultSoftSkills),
		Strengths:       rawJSON(m.ResultStrengths),
		Improvements:    rawJSON(m.ResultImprovements),
		Recommendations: rawJSON(m.ResultRecommendations),
		ComputedAt:      m.ResultComputedAt,
	}
}

// rawJSON passes a stored JSONB document through untouched, keeping
// nulls instead of empty byte slices.
func rawJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return json.RawMessage(b)
}

// ToAnswerModels maps the wire answers onto storage rows, tagging each
// with the resolved kind and the category snapshot.
func ToAnswerModels(req *SubmitRequest, responseID uuid.UUID, kinds map[uuid.UUID]string, categories map[uuid.UUID]string) []model.AnswerModel {
	out := make([]model.AnswerModel, 0, len(req.Responses))
	for i, a := range req.Responses {
		row := model.AnswerModel{
			AnswerResponseID: responseID,
			AnswerQuestionID: a.QuestionID,
			AnswerKind:       kinds[a.QuestionID],
			AnswerValue:      a.Value,
			AnswerOptionID:   a.OptionID,
			AnswerText:       a.Text,
			AnswerPosition:   i,
		}
		for _, id := range a.OptionIDs {
			row.AnswerOptionIDs = append(row.AnswerOptionIDs, id.String())
		}
		if a.Category != nil {
			row.AnswerCategorySnapshot = a.Category
		} else if cat, ok := categories[a.QuestionID]; ok {
			row.AnswerCategorySnapshot = &cat
		}
		out = append(out, row)
	}
	return out
}
