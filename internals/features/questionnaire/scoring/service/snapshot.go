// file: internals/features/questionnaire/scoring/service/snapshot.go
package service

import (
	"github.com/google/uuid"

	templateModel "moobee_backend/internals/features/questionnaire/templates/model"
)

/* =========================================================
   Weight snapshot
   =========================================================
   The snapshot is captured at completion time and persisted next to the
   Result, so recomputation never reads the live template tables.
*/

type SnapshotOption struct {
	OptionID uuid.UUID `json:"option_id"`
	Value    float64   `json:"value"`
}

type SnapshotQuestion struct {
	QuestionID uuid.UUID        `json:"question_id"`
	Kind       string           `json:"kind"`
	Category   string           `json:"category"`
	ScaleMin   int              `json:"scale_min"`
	ScaleMax   int              `json:"scale_max"`
	Weight     float64          `json:"weight"`
	Required   bool             `json:"required"`
	Reversed   bool             `json:"reversed"`
	Options    []SnapshotOption `json:"options,omitempty"`
}

// SnapshotWeight is one (question → target) mapping. TargetKind is
// "area" for engagement axes or "soft_skill" for assessment skills.
type SnapshotWeight struct {
	QuestionID uuid.UUID `json:"question_id"`
	TargetKind string    `json:"target_kind"`
	TargetCode string    `json:"target_code"`
	Value      float64   `json:"value"`
	Reversed   bool      `json:"reversed"`
}

type WeightSnapshot struct {
	TemplateID      uuid.UUID          `json:"template_id"`
	TemplateKind    string             `json:"template_kind"`
	TemplateVersion int                `json:"template_version"`
	Questions       []SnapshotQuestion `json:"questions"`
	Weights         []SnapshotWeight   `json:"weights,omitempty"`
}

// Family returns "assessment" or "engagement" for the snapshotted kind.
func (s *WeightSnapshot) Family() string {
	return templateModel.FamilyOf(s.TemplateKind)
}

// Question looks up a snapshotted question by id.
func (s *WeightSnapshot) Question(id uuid.UUID) *SnapshotQuestion {
	for i := range s.Questions {
		if s.Questions[i].QuestionID == id {
			return &s.Questions[i]
		}
	}
	return nil
}

// BuildSnapshot freezes a loaded template (questions, options, weights)
// into the shape the scoring engine consumes.
func BuildSnapshot(tpl *templateModel.TemplateModel) WeightSnapshot {
	snap := WeightSnapshot{
		TemplateID:      tpl.TemplateID,
		TemplateKind:    tpl.TemplateKind,
		TemplateVersion: tpl.TemplateVersion,
	}
	for _, q := range tpl.TemplateQuestions {
		sq := SnapshotQuestion{
			QuestionID: q.QuestionID,
			Kind:       q.QuestionKind,
			Category:   q.QuestionCategory,
			ScaleMin:   q.QuestionScaleMin,
			ScaleMax:   q.QuestionScaleMax,
			Weight:     q.QuestionWeight,
			Required:   q.QuestionIsRequired,
			Reversed:   q.QuestionIsReversed,
		}
		for _, o := range q.QuestionOptions {
			sq.Options = append(sq.Options, SnapshotOption{OptionID: o.OptionID, Value: o.OptionValue})
		}
		snap.Questions = append(snap.Questions, sq)
	}
	for _, w := range tpl.TemplateWeights {
		snap.Weights = append(snap.Weights, SnapshotWeight{
			QuestionID: w.WeightQuestionID,
			TargetKind: w.WeightTargetKind,
			TargetCode: w.WeightTargetCode,
			Value:      w.WeightValue,
			Reversed:   w.WeightIsReversed,
		})
	}
	return snap
}
