// file: internals/features/questionnaire/templates/model/validate.go
package model

import (
	"fmt"
)

// QuestionIssue is one field-level validation finding for a question.
type QuestionIssue struct {
	Position int    `json:"position"`
	Field    string `json:"field"`
	Message  string `json:"message"`
}

// ValidateQuestion checks a question against the registry rules for the
// given template kind. Returns nil when the question is acceptable.
func ValidateQuestion(kind string, q *QuestionModel) []QuestionIssue {
	var issues []QuestionIssue
	add := func(field, msg string) {
		issues = append(issues, QuestionIssue{Position: q.QuestionPosition, Field: field, Message: msg})
	}

	if q.QuestionText == "" {
		add("question_text", "text is required")
	}
	if q.QuestionWeight < 0 {
		add("question_weight", "weight must be >= 0")
	}
	if !CategoryAllowed(kind, q.QuestionCategory) {
		add("question_category", fmt.Sprintf("category %q is not allowed for kind %q", q.QuestionCategory, kind))
	}

	switch q.QuestionKind {
	case QuestionKindLikert:
		if q.QuestionScaleMin < 1 {
			add("question_scale_min", "likert scale min must be >= 1")
		}
		if q.QuestionScaleMax < 3 || q.QuestionScaleMax > 10 {
			add("question_scale_max", "likert scale max must be within [3..10]")
		}
		if q.QuestionScaleMax <= q.QuestionScaleMin {
			add("question_scale_max", "likert scale max must be greater than min")
		}
		// likert options, when present, must span [min..max]
		if n := len(q.QuestionOptions); n > 0 {
			if n != q.QuestionScaleMax-q.QuestionScaleMin+1 {
				add("question_options", "likert options must span the whole scale or be omitted")
			}
		}
	case QuestionKindSingleChoice, QuestionKindMultipleChoice:
		if len(q.QuestionOptions) < 2 {
			add("question_options", "choice questions need at least two options")
		}
		seen := map[float64]bool{}
		for _, opt := range q.QuestionOptions {
			if q.QuestionKind == QuestionKindSingleChoice && seen[opt.OptionValue] {
				add("question_options", fmt.Sprintf("duplicate option value %v", opt.OptionValue))
			}
			seen[opt.OptionValue] = true
		}
	case QuestionKindOpenText:
		// free text, nothing numeric to check
	default:
		add("question_kind", fmt.Sprintf("unknown question kind %q", q.QuestionKind))
	}

	return issues
}

// ValidateQuestions runs ValidateQuestion over a whole set.
func ValidateQuestions(kind string, questions []QuestionModel) []QuestionIssue {
	var issues []QuestionIssue
	for i := range questions {
		issues = append(issues, ValidateQuestion(kind, &questions[i])...)
	}
	return issues
}
