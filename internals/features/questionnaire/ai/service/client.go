// file: internals/features/questionnaire/ai/service/client.go
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"moobee_backend/internals/configs"
)

// GeneratedQuestion is one candidate question as emitted by the provider.
type GeneratedQuestion struct {
	Text       string            `json:"text"`
	Category   string            `json:"category"`
	Kind       string            `json:"kind"`
	ScaleMin   int               `json:"scale_min"`
	ScaleMax   int               `json:"scale_max"`
	Weight     float64           `json:"weight"`
	IsReversed bool              `json:"is_reversed"`
	Options    []GeneratedOption `json:"options,omitempty"`
}

type GeneratedOption struct {
	Text  string  `json:"text"`
	Value float64 `json:"value"`
}

// Usage is the provider-reported token accounting for one call.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ProviderClient talks to a generateContent-style endpoint.
type ProviderClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewProviderClient() *ProviderClient {
	return &ProviderClient{
		BaseURL: configs.AIProviderURL,
		APIKey:  configs.AIProviderKey,
		HTTP:    &http.Client{},
	}
}

// gemini-style wire shapes
type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// Generate performs one provider call and parses the emitted JSON
// question set. ctx carries the hard deadline.
func (p *ProviderClient) Generate(ctx context.Context, modelName string, temperature float64, maxTokens int, prompt string) ([]GeneratedQuestion, Usage, error) {
	if p.APIKey == "" {
		return nil, Usage{}, fmt.Errorf("AI provider key not configured")
	}

	body := generateContentRequest{
		Contents: []content{{Parts: []part{
			{Text: generateSystemPrompt},
			{Text: prompt},
		}}},
		GenerationConfig: generationConfig{
			Temperature:     temperature,
			MaxOutputTokens: maxTokens,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, Usage{}, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", strings.TrimRight(p.BaseURL, "/"), modelName, p.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, Usage{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.HTTP.Do(req)
	if err != nil {
		return nil, Usage{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Usage{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, Usage{}, fmt.Errorf("provider returned status %d: %s", resp.StatusCode, truncate(string(raw), 300))
	}

	var apiResp generateContentResponse
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return nil, Usage{}, fmt.Errorf("decode provider response: %w", err)
	}
	usage := Usage{
		PromptTokens:     apiResp.UsageMetadata.PromptTokenCount,
		CompletionTokens: apiResp.UsageMetadata.CandidatesTokenCount,
		TotalTokens:      apiResp.UsageMetadata.TotalTokenCount,
	}

	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return nil, usage, fmt.Errorf("provider returned no candidates")
	}

	text := apiResp.Candidates[0].Content.Parts[0].Text
	questions, err := parseQuestionSet(text)
	if err != nil {
		return nil, usage, err
	}
	return questions, usage, nil
}

// parseQuestionSet tolerates markdown fences around the JSON body.
func parseQuestionSet(text string) ([]GeneratedQuestion, error) {
	text = strings.TrimSpace(text)
	if i := strings.Index(text, "{"); i > 0 {
		text = text[i:]
	}
	if i := strings.LastIndex(text, "}"); i >= 0 && i < len(text)-1 {
		text = text[:i+1]
	}

	var wrapper struct {
		Questions []GeneratedQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(text), &wrapper); err != nil {
		return nil, fmt.Errorf("parse question set: %w", err)
	}
	return wrapper.Questions, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Timeout returns the hard deadline for a call of the given size.
func Timeout(count int) time.Duration {
	if count <= 20 {
		return configs.AITimeoutSmall
	}
	return configs.AITimeoutLarge
}
