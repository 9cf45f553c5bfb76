// file: internals/features/questionnaire/templates/model/validate_test.go
package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLikert(category string) QuestionModel {
	return QuestionModel{
		QuestionText:     "I feel energized by my work",
		QuestionKind:     QuestionKindLikert,
		QuestionCategory: category,
		QuestionScaleMin: 1,
		QuestionScaleMax: 5,
		QuestionWeight:   1,
	}
}

func TestValidateQuestionLikertScale(t *testing.T) {
	cases := []struct {
		name     string
		min, max int
		wantBad  bool
	}{
		{"classic 1-5", 1, 5, false},
		{"widest 1-10", 1, 10, false},
		{"min below one", 0, 5, true},
		{"max below three", 1, 2, true},
		{"max above ten", 1, 11, true},
		{"max not above min", 3, 3, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			q := validLikert("MOTIVATION")
			q.QuestionScaleMin = c.min
			q.QuestionScaleMax = c.max
			issues := ValidateQuestion(KindGallupQ12, &q)
			if c.wantBad {
				assert.NotEmpty(t, issues)
			} else {
				assert.Empty(t, issues)
			}
		})
	}
}

func TestValidateQuestionRequiredText(t *testing.T) {
	q := validLikert("MOTIVATION")
	q.QuestionText = ""
	issues := ValidateQuestion(KindGallupQ12, &q)
	require.NotEmpty(t, issues)
	assert.Equal(t, "question_text", issues[0].Field)
}

func TestValidateQuestionNegativeWeight(t *testing.T) {
	q := validLikert("MOTIVATION")
	q.QuestionWeight = -0.5
	issues := ValidateQuestion(KindGallupQ12, &q)
	require.Len(t, issues, 1)
	assert.Equal(t, "question_weight", issues[0].Field)
}

func TestValidateQuestionClosedCategorySets(t *testing.T) {
	q := validLikert("OPENNESS")
	assert.Empty(t, ValidateQuestion(KindBigFive, &q))

	q.QuestionCategory = "MOTIVATION" // engagement area, not a Big Five dimension
	assert.NotEmpty(t, ValidateQuestion(KindBigFive, &q))

	// competency accepts any non-empty category
	q.QuestionCategory = "NEGOTIATION"
	assert.Empty(t, ValidateQuestion(KindCompetency, &q))
}

func TestValidateQuestionChoiceOptions(t *testing.T) {
	q := QuestionModel{
		QuestionText:     "Preferred working mode",
		QuestionKind:     QuestionKindSingleChoice,
		QuestionCategory: "GENERAL",
		QuestionWeight:   1,
		QuestionOptions: []QuestionOptionModel{
			{OptionText: "Remote", OptionValue: 1},
		},
	}
	issues := ValidateQuestion(KindEngagementCustom, &q)
	require.NotEmpty(t, issues, "one option is not a choice")

	q.QuestionOptions = append(q.QuestionOptions, QuestionOptionModel{OptionText: "Office", OptionValue: 1})
	issues = ValidateQuestion(KindEngagementCustom, &q)
	require.NotEmpty(t, issues, "duplicate option values rejected for single choice")

	q.QuestionOptions[1].OptionValue = 2
	assert.Empty(t, ValidateQuestion(KindEngagementCustom, &q))
}

func TestValidateQuestionLikertOptionSpan(t *testing.T) {
	q := validLikert("MOTIVATION")
	q.QuestionOptions = []QuestionOptionModel{
		{OptionText: "Never", OptionValue: 1},
		{OptionText: "Always", OptionValue: 5},
	}
	issues := ValidateQuestion(KindGallupQ12, &q)
	require.NotEmpty(t, issues, "partial label sets rejected")

	q.QuestionOptions = nil
	assert.Empty(t, ValidateQuestion(KindGallupQ12, &q), "omitting labels is fine")
}

func TestValidateQuestionsAggregates(t *testing.T) {
	ok := validLikert("MOTIVATION")
	bad := validLikert("MOTIVATION")
	bad.QuestionText = ""
	bad.QuestionPosition = 1

	issues := ValidateQuestions(KindUWES, []QuestionModel{ok, bad})
	require.Len(t, issues, 1)
	assert.Equal(t, 1, issues[0].Position)
}

func TestFamilyOf(t *testing.T) {
	assert.Equal(t, FamilyAssessment, FamilyOf(KindBigFive))
	assert.Equal(t, FamilyAssessment, FamilyOf(KindCustom))
	assert.Equal(t, FamilyEngagement, FamilyOf(KindUWES))
	assert.Equal(t, "", FamilyOf("astrology"))
}

func TestKindsOfCoversEveryKind(t *testing.T) {
	total := len(KindsOf(FamilyAssessment)) + len(KindsOf(FamilyEngagement))
	assert.Equal(t, 8, total)
	assert.Contains(t, KindsOf(FamilyEngagement), KindGallupQ12)
	assert.NotContains(t, KindsOf(FamilyEngagement), KindBelbin)
}
