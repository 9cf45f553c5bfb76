// file: internals/features/questionnaire/templates/dto/template_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	model "moobee_backend/internals/features/questionnaire/templates/model"
)

/* =========================================================
   0) helpers
   ========================================================= */

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

/* =========================================================
   1) REQUEST DTO
   ========================================================= */

type QuestionOptionRequest struct {
	Text     string  `json:"option_text" validate:"required"`
	Value    float64 `json:"option_value"`
	Position int     `json:"option_position" validate:"omitempty,min=0"`
}

type QuestionWeightRequest struct {
	TargetKind string  `json:"weight_target_kind" validate:"required,oneof=area soft_skill"`
	TargetCode string  `json:"weight_target_code" validate:"required,max=64"`
	Value      float64 `json:"weight_value" validate:"omitempty,min=0"`
	IsReversed bool    `json:"weight_is_reversed"`
}

type QuestionRequest struct {
	Text       string  `json:"question_text" validate:"required"`
	Category   string  `json:"question_category" validate:"omitempty,max=40"`
	Kind       string  `json:"question_kind" validate:"omitempty,oneof=likert single_choice multiple_choice open_text"`
	ScaleMin   *int    `json:"question_scale_min" validate:"omitempty,min=1"`
	ScaleMax   *int    `json:"question_scale_max" validate:"omitempty,min=3,max=10"`
	Weight     *float64 `json:"question_weight" validate:"omitempty,min=0"`
	IsRequired *bool   `json:"question_is_required"`
	IsReversed *bool   `json:"question_is_reversed"`
	Position   int     `json:"question_position" validate:"omitempty,min=0"`

	Options []QuestionOptionRequest `json:"question_options" validate:"omitempty,dive"`
	Weights []QuestionWeightRequest `json:"question_weights" validate:"omitempty,dive"`
}

type CreateTemplateRequest struct {
	Name               string   `json:"template_name" validate:"required,max=180"`
	Kind               string   `json:"template_kind" validate:"required,oneof=big_five disc belbin competency custom uwes gallup_q12 engagement_custom"`
	Language           *string  `json:"template_language" validate:"omitempty,max=8"`
	Description        *string  `json:"template_description" validate:"omitempty"`
	SuggestedRoles     []string `json:"template_suggested_roles" validate:"omitempty,dive,max=80"`
	SuggestedFrequency *string  `json:"template_suggested_frequency" validate:"omitempty,oneof=once monthly quarterly biannual annual"`
	IsActive           *bool    `json:"template_is_active"`

	Questions []QuestionRequest      `json:"template_questions" validate:"omitempty,dive"`
	AIConfig  map[string]interface{} `json:"template_ai_config" validate:"omitempty"`
}

type UpdateTemplateRequest struct {
	Name               *string  `json:"template_name" validate:"omitempty,max=180"`
	Language           *string  `json:"template_language" validate:"omitempty,max=8"`
	Description        *string  `json:"template_description" validate:"omitempty"`
	SuggestedRoles     []string `json:"template_suggested_roles" validate:"omitempty,dive,max=80"`
	SuggestedFrequency *string  `json:"template_suggested_frequency" validate:"omitempty,oneof=once monthly quarterly biannual annual"`
	IsActive           *bool    `json:"template_is_active"`

	// replaces the question set wholesale when present
	Questions []QuestionRequest `json:"template_questions" validate:"omitempty,dive"`
}

type ListTemplateQuery struct {
	Limit  *int    `query:"limit" validate:"omitempty,min=1,max=200"`
	Page   *int    `query:"page" validate:"omitempty,min=1"`
	Type   *string `query:"type" validate:"omitempty,max=32"`
	Active *bool   `query:"active" validate:"omitempty"`
	Search *string `query:"search" validate:"omitempty,max=100"`
}

/* =========================================================
   2) RESPONSE DTO
   ========================================================= */

type QuestionOptionResponse struct {
	OptionID uuid.UUID `json:"option_id"`
	Text     string    `json:"option_text"`
	Value    float64   `json:"option_value"`
	Position int       `json:"option_position"`
}

type QuestionWeightResponse struct {
	WeightID   uuid.UUID `json:"weight_id"`
	QuestionID uuid.UUID `json:"weight_question_id"`
	TargetKind string    `json:"weight_target_kind"`
	TargetCode string    `json:"weight_target_code"`
	Value      float64   `json:"weight_value"`
	IsReversed bool      `json:"weight_is_reversed"`
}

type QuestionResponse struct {
	QuestionID uuid.UUID `json:"question_id"`
	Text       string    `json:"question_text"`
	Category   string    `json:"question_category"`
	Kind       string    `json:"question_kind"`
	ScaleMin   int       `json:"question_scale_min"`
	ScaleMax   int       `json:"question_scale_max"`
	Weight     float64   `json:"question_weight"`
	IsRequired bool      `json:"question_is_required"`
	IsReversed bool      `json:"question_is_reversed"`
	Position   int       `json:"question_position"`

	Options []QuestionOptionResponse `json:"question_options,omitempty"`
}

type TemplateResponse struct {
	TemplateID         uuid.UUID `json:"template_id"`
	TenantID           uuid.UUID `json:"template_tenant_id"`
	Name               string    `json:"template_name"`
	Kind               string    `json:"template_kind"`
	Family             string    `json:"template_family"`
	Language           string    `json:"template_language"`
	Description        *string   `json:"template_description"`
	IsActive           bool      `json:"template_is_active"`
	Version            int       `json:"template_version"`
	SuggestedRoles     []string  `json:"template_suggested_roles"`
	SuggestedFrequency *string   `json:"template_suggested_frequency"`
	UsageCount         int       `json:"template_usage_count"`
	CreatedAt          time.Time `json:"template_created_at"`
	UpdatedAt          time.Time `json:"template_updated_at"`

	Questions []QuestionResponse       `json:"template_questions,omitempty"`
	Weights   []QuestionWeightResponse `json:"template_weights,omitempty"`
}

/* =========================================================
   3) Converters
   ========================================================= */

func (r *QuestionRequest) ToModel(templateID uuid.UUID) model.QuestionModel {
	q := model.QuestionModel{
		QuestionTemplateID: templateID,
		QuestionText:       strings.TrimSpace(r.Text),
		QuestionCategory:   strings.ToUpper(strings.TrimSpace(r.Category)),
		QuestionKind:       r.Kind,
		QuestionScaleMin:   valueOr(r.ScaleMin, 1),
		QuestionScaleMax:   valueOr(r.ScaleMax, 5),
		QuestionWeight:     valueOr(r.Weight, 1),
		QuestionIsRequired: valueOr(r.IsRequired, true),
		QuestionIsReversed: valueOr(r.IsReversed, false),
		QuestionPosition:   r.Position,
	}
	if q.QuestionKind == "" {
		q.QuestionKind = model.QuestionKindLikert
	}
	if q.QuestionCategory == "" {
		q.QuestionCategory = model.CategoryGeneral
	}
	for _, o := range r.Options {
		q.QuestionOptions = append(q.QuestionOptions, model.QuestionOptionModel{
			OptionText:     strings.TrimSpace(o.Text),
			OptionValue:    o.Value,
			OptionPosition: o.Position,
		})
	}
	return q
}

func (r *CreateTemplateRequest) ToModel(tenantID uuid.UUID) model.TemplateModel {
	m := model.TemplateModel{
		TemplateTenantID:           tenantID,
		TemplateName:               strings.TrimSpace(r.Name),
		TemplateKind:               r.Kind,
		TemplateLanguage:           valueOr(trimPtr(r.Language), "en"),
		TemplateDescription:        trimPtr(r.Description),
		TemplateIsActive:           valueOr(r.IsActive, true),
		TemplateVersion:            1,
		TemplateSuggestedRoles:     pq.StringArray(r.SuggestedRoles),
		TemplateSuggestedFrequency: trimPtr(r.SuggestedFrequency),
	}
	if r.AIConfig != nil {
		m.TemplateAIConfig = datatypes.JSONMap(r.AIConfig)
	}
	for _, q := range r.Questions {
		m.TemplateQuestions = append(m.TemplateQuestions, q.ToModel(uuid.Nil))
	}
	return m
}

func ToQuestionResponse(q *model.QuestionModel) QuestionResponse {
	resp := QuestionResponse{
		QuestionID: q.QuestionID,
		Text:       q.QuestionText,
		Category:   q.QuestionCategory,
		Kind:       q.QuestionKind,
		ScaleMin:   q.QuestionScaleMin,
		ScaleMax:   q.QuestionScaleMax,
		Weight:     q.QuestionWeight,
		IsRequired: q.QuestionIsRequired,
		IsReversed: q.QuestionIsReversed,
		Position:   q.QuestionPosition,
	}
	for _, o := range q.QuestionOptions {
		resp.Options = append(resp.Options, QuestionOptionResponse{
			OptionID: o.OptionID,
			Text:     o.OptionText,
			Value:    o.OptionValue,
			Position: o.OptionPosition,
		})
	}
	return resp
}

func ToTemplateResponse(m *model.TemplateModel, withQuestions bool) TemplateResponse {
	resp := TemplateResponse{
		TemplateID:         m.TemplateID,
		TenantID:           m.TemplateTenantID,
		Name:               m.TemplateName,
		Kind:               m.TemplateKind,
		Family:             model.FamilyOf(m.TemplateKind),
		Language:           m.TemplateLanguage,
		Description:        m.TemplateDescription,
		IsActive:           m.TemplateIsActive,
		Version:            m.TemplateVersion,
		SuggestedRoles:     []string(m.TemplateSuggestedRoles),
		SuggestedFrequency: m.TemplateSuggestedFrequency,
		UsageCount:         m.TemplateUsageCount,
		CreatedAt:          m.TemplateCreatedAt,
		UpdatedAt:          m.TemplateUpdatedAt,
	}
	if withQuestions {
		for i := range m.TemplateQuestions {
			resp.Questions = append(resp.Questions, ToQuestionResponse(&m.TemplateQuestions[i]))
		}
		for _, w := range m.TemplateWeights {
			resp.Weights = append(resp.Weights, QuestionWeightResponse{
				WeightID:   w.WeightID,
				QuestionID: w.WeightQuestionID,
				TargetKind: w.WeightTargetKind,
				TargetCode: w.WeightTargetCode,
				Value:      w.WeightValue,
				IsReversed: w.WeightIsReversed,
			})
		}
	}
	return resp
}
