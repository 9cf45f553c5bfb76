// file: internals/features/questionnaire/ai/service/prompt.go
package service

import (
	"fmt"
	"sort"
	"strings"

	templateModel "moobee_backend/internals/features/questionnaire/templates/model"
)

// generateSystemPrompt instructs the model to emit a strict JSON question set.
const generateSystemPrompt = `You are a questionnaire designer for an HR platform called Moobee.
Your task is to produce questionnaire questions as strict JSON.

You must output ONLY a JSON object with this exact shape:
{
  "questions": [
    {
      "text": string,
      "category": string,
      "kind": "likert" | "single_choice" | "multiple_choice" | "open_text",
      "scale_min": number,
      "scale_max": number,
      "weight": number,
      "is_reversed": boolean,
      "options": [{"text": string, "value": number}]
    }
  ]
}

CRITICAL RULES:
1. Emit exactly the requested number of questions, no more, no fewer
2. Every category MUST come from the allowed category list
3. likert questions use scale_min >= 1 and scale_max between 3 and 10
4. weight is >= 0; default to 1 when unsure
5. Output ONLY the JSON object, no markdown, no explanation`

// GenerationRequest is the typed prompt input.
type GenerationRequest struct {
	Kind        string   `json:"type" validate:"required,oneof=big_five disc belbin competency custom uwes gallup_q12 engagement_custom"`
	Count       int      `json:"count" validate:"required,min=1,max=60"`
	Language    string   `json:"language" validate:"omitempty,max=8"`
	TargetRoles []string `json:"suggestedRoles" validate:"omitempty,dive,max=80"`
	Description string   `json:"description" validate:"omitempty,max=2000"`
	Areas       []string `json:"areas" validate:"omitempty,dive,max=40"`

	Provider    string   `json:"provider" validate:"omitempty,max=40"`
	Model       string   `json:"model" validate:"omitempty,max=80"`
	Temperature *float64 `json:"temperature" validate:"omitempty,min=0,max=2"`
	MaxTokens   *int     `json:"maxTokens" validate:"omitempty,min=256,max=32768"`
}

// BuildPrompt renders the user prompt for a generation request.
func BuildPrompt(req GenerationRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate %d questionnaire questions of kind %q", req.Count, req.Kind)
	lang := req.Language
	if lang == "" {
		lang = "en"
	}
	fmt.Fprintf(&b, " in language %q.\n", lang)

	if allowed := templateModel.AllowedCategories(req.Kind); allowed != nil {
		codes := make([]string, 0, len(allowed))
		for c := range allowed {
			codes = append(codes, c)
		}
		fmt.Fprintf(&b, "Allowed categories: %s.\n", strings.Join(sortStrings(codes), ", "))
	} else if len(req.Areas) > 0 {
		fmt.Fprintf(&b, "Allowed categories: %s.\n", strings.Join(req.Areas, ", "))
	} else {
		b.WriteString("Categories are free-form, uppercase snake case.\n")
	}

	if len(req.TargetRoles) > 0 {
		fmt.Fprintf(&b, "Target roles: %s.\n", strings.Join(req.TargetRoles, ", "))
	}
	if strings.TrimSpace(req.Description) != "" {
		fmt.Fprintf(&b, "Context from the requester: %s\n", strings.TrimSpace(req.Description))
	}

	switch req.Kind {
	case templateModel.KindBigFive:
		b.WriteString("Distribute questions evenly over the five dimensions; include some reverse-scored items.\n")
	case templateModel.KindDISC:
		b.WriteString("Distribute questions evenly over the four DISC dimensions.\n")
	case templateModel.KindBelbin:
		b.WriteString("Cover the nine Belbin team roles.\n")
	case templateModel.KindGallupQ12:
		b.WriteString("Follow the Gallup Q12 engagement item style, likert 1-5.\n")
	case templateModel.KindUWES:
		b.WriteString("Follow the UWES work engagement item style (vigor, dedication, absorption), likert 1-5.\n")
	}

	return b.String()
}

func sortStrings(s []string) []string {
	out := append([]string(nil), s...)
	sort.Strings(out)
	return out
}
