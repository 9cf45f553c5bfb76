// file: internals/features/questionnaire/ai/service/generator_test.go
package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moobee_backend/internals/configs"
	templateModel "moobee_backend/internals/features/questionnaire/templates/model"
)

func TestFallbackQuestionsBigFive(t *testing.T) {
	qs := FallbackQuestions(templateModel.KindBigFive, 10)
	require.Len(t, qs, 10)

	reversed := 0
	for _, q := range qs {
		assert.Equal(t, templateModel.QuestionKindLikert, q.Kind)
		assert.Equal(t, 1, q.ScaleMin)
		assert.Equal(t, 5, q.ScaleMax)
		assert.True(t, templateModel.CategoryAllowed(templateModel.KindBigFive, q.Category), q.Category)
		if q.IsReversed {
			reversed++
		}
	}
	assert.Greater(t, reversed, 0, "bank includes reverse-scored items")
}

// Asking for more than the bank holds cycles through it.
func TestFallbackQuestionsCycles(t *testing.T) {
	qs := FallbackQuestions(templateModel.KindDISC, 20)
	require.Len(t, qs, 20)
	assert.Equal(t, qs[0].Text, qs[8].Text, "8-item bank wraps")
}

func TestFallbackQuestionsUnknownKind(t *testing.T) {
	qs := FallbackQuestions("made_up", 3)
	require.Len(t, qs, 3)
	for _, q := range qs {
		assert.NotEmpty(t, q.Text)
	}
}

// Fallback output must survive registry validation untouched.
func TestFallbackQuestionsPassValidation(t *testing.T) {
	for _, kind := range []string{
		templateModel.KindBigFive,
		templateModel.KindDISC,
		templateModel.KindGallupQ12,
		templateModel.KindUWES,
	} {
		qs := FallbackQuestions(kind, 8)
		assert.Len(t, validateGenerated(kind, qs), 8, kind)
	}
}

func TestParseQuestionSetPlain(t *testing.T) {
	qs, err := parseQuestionSet(`{"questions":[{"text":"I like my team","category":"BELONGING","kind":"likert","scale_min":1,"scale_max":5}]}`)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "BELONGING", qs[0].Category)
}

func TestParseQuestionSetMarkdownFences(t *testing.T) {
	raw := "```json\n{\"questions\":[{\"text\":\"Q1\",\"category\":\"GROWTH\"}]}\n```"
	qs, err := parseQuestionSet(raw)
	require.NoError(t, err)
	require.Len(t, qs, 1)
}

func TestParseQuestionSetGarbage(t *testing.T) {
	_, err := parseQuestionSet("sorry, I cannot help with that")
	assert.Error(t, err)
}

func TestValidateGeneratedDropsInvalid(t *testing.T) {
	qs := []GeneratedQuestion{
		{Text: "Fine item", Category: "OPENNESS"},      // defaults fill likert 1-5
		{Text: "", Category: "OPENNESS"},               // no text
		{Text: "Off-kind item", Category: "MOTIVATION"}, // not a Big Five dimension
	}
	out := validateGenerated(templateModel.KindBigFive, qs)
	require.Len(t, out, 1)
	assert.Equal(t, "Fine item", out[0].Text)
	assert.Equal(t, templateModel.QuestionKindLikert, out[0].Kind)
	assert.Equal(t, 5, out[0].ScaleMax)
	assert.Equal(t, 1.0, out[0].Weight)
}

func TestBuildPromptClosedCategories(t *testing.T) {
	prompt := BuildPrompt(GenerationRequest{Kind: templateModel.KindDISC, Count: 8})
	assert.Contains(t, prompt, "8 questionnaire questions")
	assert.Contains(t, prompt, "DOMINANCE")
	assert.Contains(t, prompt, "STEADINESS")
}

func TestBuildPromptFreeCategories(t *testing.T) {
	prompt := BuildPrompt(GenerationRequest{
		Kind:        templateModel.KindCustom,
		Count:       5,
		Areas:       []string{"NEGOTIATION", "PLANNING"},
		TargetRoles: []string{"Account Manager"},
		Description: "sales onboarding cohort",
	})
	assert.Contains(t, prompt, "NEGOTIATION, PLANNING")
	assert.Contains(t, prompt, "Account Manager")
	assert.Contains(t, prompt, "sales onboarding cohort")
	assert.False(t, strings.Contains(prompt, "Allowed categories: GENERAL"), "custom kinds are not forced onto a closed set")
}

func TestTimeoutScalesWithCount(t *testing.T) {
	configs.LoadEnv()
	assert.Less(t, Timeout(10), Timeout(40))
	assert.Equal(t, Timeout(20), Timeout(1))
}

// The HTTP layer caps every request context at a few seconds; the
// provider budget must come from the call size, not from that guard.
func TestCallContextOutlivesRequestGuard(t *testing.T) {
	configs.LoadEnv()
	parent, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ctx, stop := callContext(parent, 40)
	defer stop()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.Greater(t, time.Until(deadline), time.Minute, "large batches keep their 90s budget")
}

func TestCallContextPropagatesCancel(t *testing.T) {
	configs.LoadEnv()
	parent, cancel := context.WithCancel(context.Background())
	ctx, stop := callContext(parent, 5)
	defer stop()

	cancel()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("caller cancellation did not reach the provider context")
	}
}
