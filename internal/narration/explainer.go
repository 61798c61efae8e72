package narration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"procurement-service/internal/models"
	"procurement-service/internal/util"

	"go.uber.org/zap"
)

// ExplainContext carries the decision context handed to the explainer
type ExplainContext struct {
	RemainingBudget float64
	DeadlineDays    float64
}

// Explainer produces a one-sentence rationale for a selection. It must
// always return usable text; implementations swallow their own failures.
type Explainer interface {
	ExplainChoice(ctx context.Context, selected models.CatalogItem, rejected []models.CatalogItem, ec ExplainContext) string
}

const explainerPersona = `You are a Logistics Officer. Explain why you picked Item A over Item B. Example: 'Chose the expensive cables because the cheap ones arrive after the hackathon starts.'`

// StubExplainer returns deterministic templated sentences without any
// network calls. Used when no LLM credentials are configured.
type StubExplainer struct{}

// NewStubExplainer creates a stub explainer
func NewStubExplainer() *StubExplainer {
	return &StubExplainer{}
}

// ExplainChoice renders the deterministic fallback sentence
func (e *StubExplainer) ExplainChoice(_ context.Context, selected models.CatalogItem, rejected []models.CatalogItem, ec ExplainContext) string {
	if len(rejected) == 0 {
		return fmt.Sprintf("Chose %s as it was the only viable option.", selected.Name)
	}
	return fallbackText(selected, ec)
}

// OpenAIExplainer asks an OpenAI chat model for the rationale. Any
// failure resolves to the deterministic fallback, never an error.
type OpenAIExplainer struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewOpenAIExplainer creates a live explainer bound by the given timeout
func NewOpenAIExplainer(apiKey, model, baseURL string, timeout time.Duration) *OpenAIExplainer {
	if model == "" {
		model = "gpt-4o"
	}
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &OpenAIExplainer{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  util.GetLogger(),
	}
}

// ExplainChoice delegates to the chat completions API with the fixed
// persona prompt, falling back to templated text on any failure.
func (e *OpenAIExplainer) ExplainChoice(ctx context.Context, selected models.CatalogItem, rejected []models.CatalogItem, ec ExplainContext) string {
	if len(rejected) == 0 {
		return fmt.Sprintf("Chose %s as it was the only viable option.", selected.Name)
	}
	if e.apiKey == "" {
		util.NarrationFallbacksTotal.Inc()
		return fallbackText(selected, ec)
	}

	text, err := e.complete(ctx, buildUserPrompt(selected, rejected, ec))
	if err != nil {
		util.NarrationFallbacksTotal.Inc()
		e.logger.Warn("Explanation call failed, using fallback",
			zap.String("item_id", selected.ID),
			zap.Error(err))
		return fmt.Sprintf("Selected %s. (explanation unavailable)", selected.Name)
	}
	return text
}

// complete performs a single chat completion request, no retries
func (e *OpenAIExplainer) complete(ctx context.Context, userPrompt string) (string, error) {
	payload := map[string]any{
		"model": e.model,
		"messages": []map[string]string{
			{"role": "system", "content": explainerPersona},
			{"role": "user", "content": userPrompt},
		},
		"max_tokens":  60,
		"temperature": 0.7,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		e.baseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream status %d: %s", resp.StatusCode, string(raw))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 || strings.TrimSpace(result.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("empty completion")
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}

// buildUserPrompt formats the comparison handed to the model
func buildUserPrompt(selected models.CatalogItem, rejected []models.CatalogItem, ec ExplainContext) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Context:\n- Deadline: %s days from now.\n- Budget Remaining: $%s.\n\n",
		formatNumber(ec.DeadlineDays), formatNumber(ec.RemainingBudget))
	fmt.Fprintf(&sb, "Selected Item:\n- Name: %s\n- Price: $%s\n- Delivery Time: %s days\n\n",
		selected.Name, formatNumber(selected.Price), formatNumber(selected.DeliveryDays))
	sb.WriteString("Rejected Items (and reasons):\n")
	for _, item := range rejected {
		fmt.Fprintf(&sb, "- %s ($%s, %s days)\n",
			item.Name, formatNumber(item.Price), formatNumber(item.DeliveryDays))
	}
	sb.WriteString("\nExplain the decision in one concise sentence.")
	return sb.String()
}

// fallbackText is the deterministic sentence citing delivery time and deadline
func fallbackText(selected models.CatalogItem, ec ExplainContext) string {
	return fmt.Sprintf("Selected %s. Reason: it arrives in %s days, within the %s day deadline. Rejected items were slower or pricier.",
		selected.Name, formatNumber(selected.DeliveryDays), formatNumber(ec.DeadlineDays))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
