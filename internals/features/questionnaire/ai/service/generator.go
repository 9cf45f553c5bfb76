// file: internals/features/questionnaire/ai/service/generator.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	llmusageModel "moobee_backend/internals/features/questionnaire/llmusage/model"
	ledgerService "moobee_backend/internals/features/questionnaire/llmusage/service"
	templateModel "moobee_backend/internals/features/questionnaire/templates/model"

	"moobee_backend/internals/configs"
)

// ErrGenerationIncomplete is returned when the provider answered but the
// validated set falls short of the requested count.
var ErrGenerationIncomplete = errors.New("generation incomplete")

// GenerationResult is what the controller hands back to the caller; the
// registry persists nothing until the caller accepts the set.
type GenerationResult struct {
	Questions []GeneratedQuestion `json:"questions"`
	AIConfig  map[string]any      `json:"aiConfig"`
	Usage     Usage               `json:"usage"`
	Fallback  bool                `json:"fallback"`
}

type Generator struct {
	Client *ProviderClient
	Ledger *ledgerService.Ledger
}

func NewGenerator(client *ProviderClient, ledger *ledgerService.Ledger) *Generator {
	return &Generator{Client: client, Ledger: ledger}
}

// callContext derives the provider deadline from the requested count
// alone. The HTTP layer wraps every request context in a short latency
// guard, which must not cap a long-running generation, so the parent
// deadline is stripped while its cancellation still propagates.
func callContext(parent context.Context, count int) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), Timeout(count))
	stop := context.AfterFunc(parent, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// Generate runs one provider call with a hard deadline, validates the
// emitted set against the registry rules, and falls back to the built-in
// bank on provider failure. Every invocation writes a ledger record
// before returning.
func (g *Generator) Generate(ctx context.Context, tenantID, userID uuid.UUID, req GenerationRequest) (*GenerationResult, error) {
	modelName := req.Model
	if modelName == "" {
		modelName = configs.AIDefaultModel
	}
	provider := req.Provider
	if provider == "" {
		provider = "gemini"
	}
	temperature := 0.7
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	maxTokens := 4096
	if req.MaxTokens != nil {
		maxTokens = *req.MaxTokens
	}

	callCtx, cancel := callContext(ctx, req.Count)
	defer cancel()

	start := time.Now()
	prompt := BuildPrompt(req)
	questions, usage, err := g.Client.Generate(callCtx, modelName, temperature, maxTokens, prompt)
	elapsed := time.Since(start)

	call := ledgerService.Call{
		TenantID:         tenantID,
		UserID:           userID,
		Operation:        llmusageModel.OpGenerateQuestions,
		Provider:         provider,
		Model:            modelName,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		Elapsed:          elapsed,
	}

	if err != nil {
		// provider failure is masked: serve the fallback bank
		call.Status = llmusageModel.StatusError
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			call.Status = llmusageModel.StatusTimeout
		}
		call.ErrorMessage = err.Error()
		if lerr := g.Ledger.Record(call); lerr != nil {
			return nil, lerr
		}
		log.Printf("[AI] provider call failed (%v), serving fallback bank", err)

		return &GenerationResult{
			Questions: FallbackQuestions(req.Kind, req.Count),
			AIConfig: map[string]any{
				"provider":    ProviderFallback,
				"model":       modelName,
				"temperature": temperature,
				"max_tokens":  maxTokens,
			},
			Fallback: true,
		}, nil
	}

	valid := validateGenerated(req.Kind, questions)

	if len(valid) < req.Count {
		call.Status = llmusageModel.StatusError
		call.ErrorMessage = fmt.Sprintf("requested %d questions, got %d valid", req.Count, len(valid))
		if lerr := g.Ledger.Record(call); lerr != nil {
			return nil, lerr
		}
		return nil, fmt.Errorf("%w: requested %d, got %d valid", ErrGenerationIncomplete, req.Count, len(valid))
	}

	call.Status = llmusageModel.StatusSuccess
	if lerr := g.Ledger.Record(call); lerr != nil {
		return nil, lerr
	}

	return &GenerationResult{
		Questions: valid[:req.Count],
		AIConfig: map[string]any{
			"provider":    provider,
			"model":       modelName,
			"temperature": temperature,
			"max_tokens":  maxTokens,
			"prompt":      prompt,
		},
		Usage: usage,
	}, nil
}

// validateGenerated drops entries that break the registry rules; the
// shortfall is the caller's problem (GENERATION_INCOMPLETE).
func validateGenerated(kind string, questions []GeneratedQuestion) []GeneratedQuestion {
	out := make([]GeneratedQuestion, 0, len(questions))
	for i, gq := range questions {
		q := templateModel.QuestionModel{
			QuestionText:       gq.Text,
			QuestionCategory:   gq.Category,
			QuestionKind:       gq.Kind,
			QuestionScaleMin:   gq.ScaleMin,
			QuestionScaleMax:   gq.ScaleMax,
			QuestionWeight:     gq.Weight,
			QuestionIsReversed: gq.IsReversed,
			QuestionPosition:   i,
		}
		if q.QuestionKind == "" {
			q.QuestionKind = templateModel.QuestionKindLikert
		}
		if q.QuestionKind == templateModel.QuestionKindLikert && q.QuestionScaleMax == 0 {
			q.QuestionScaleMin, q.QuestionScaleMax = 1, 5
		}
		if q.QuestionWeight == 0 {
			q.QuestionWeight = 1
		}
		for _, o := range gq.Options {
			q.QuestionOptions = append(q.QuestionOptions, templateModel.QuestionOptionModel{
				OptionText:  o.Text,
				OptionValue: o.Value,
			})
		}
		if issues := templateModel.ValidateQuestion(kind, &q); len(issues) > 0 {
			continue
		}
		gq.Kind = q.QuestionKind
		gq.ScaleMin = q.QuestionScaleMin
		gq.ScaleMax = q.QuestionScaleMax
		gq.Weight = q.QuestionWeight
		out = append(out, gq)
	}
	return out
}
