package structurer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/rohmanhakim/liondine-api/internal/menu"
	"github.com/rohmanhakim/liondine-api/pkg/failure"
)

/*
Responsibilities

- Send extracted menu text to the text-understanding service
- Request strict JSON output (response_format json_object, low temperature)
- Validate the returned record's top-level shape

Failure split

- Transport or API errors, empty content, unparsable JSON -> structuring failure
- Parsable JSON whose diningHalls field is missing or not a sequence -> schema violation

The structurer performs no retries; a failed call surfaces immediately.
*/

const (
	// DefaultModel matches the model the extraction prompt was tuned on.
	DefaultModel = openai.GPT4o

	completionTemperature = 0.1
)

type OpenAIStructurer struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewOpenAIStructurer builds a structurer against the real OpenAI API.
// timeout bounds each completion call so a hung upstream cannot stall a
// request indefinitely.
func NewOpenAIStructurer(apiKey string, model string, timeout time.Duration, logger *zap.Logger) *OpenAIStructurer {
	cfg := openai.DefaultConfig(apiKey)
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return newStructurer(cfg, model, logger)
}

// NewOpenAIStructurerWithBaseURL builds a structurer against a custom
// endpoint. Tests point this at an httptest server.
func NewOpenAIStructurerWithBaseURL(apiKey string, model string, baseURL string, logger *zap.Logger) *OpenAIStructurer {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return newStructurer(cfg, model, logger)
}

func newStructurer(cfg openai.ClientConfig, model string, logger *zap.Logger) *OpenAIStructurer {
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenAIStructurer{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger,
	}
}

func (o *OpenAIStructurer) Structure(ctx context.Context, text string, meal menu.MealType) (menu.MenuData, failure.ClassifiedError) {
	startTime := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: completionTemperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(text, meal, startTime)},
		},
	})
	if err != nil {
		o.logger.Warn("completion request failed",
			zap.String("meal", meal.String()),
			zap.Error(err))
		return menu.MenuData{}, &StructureError{
			Message:   fmt.Sprintf("completion request failed: %v", err),
			Retryable: true,
			Cause:     ErrCauseCompletionFailed,
		}
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return menu.MenuData{}, &StructureError{
			Message:   "no content returned from completion",
			Retryable: true,
			Cause:     ErrCauseEmptyResponse,
		}
	}

	record, structErr := parseRecord(resp.Choices[0].Message.Content, meal, startTime)
	if structErr != nil {
		o.logger.Warn("completion content rejected",
			zap.String("meal", meal.String()),
			zap.String("cause", string(structErr.Cause)),
			zap.Error(structErr))
		return menu.MenuData{}, structErr
	}

	o.logger.Info("menu text structured",
		zap.String("meal", meal.String()),
		zap.Int("diningHalls", len(record.DiningHalls)),
		zap.Duration("duration", time.Since(startTime)))

	return record, nil
}

// parseRecord decodes the completion content and enforces the one shape
// guarantee the pipeline depends on: diningHalls exists and is a sequence.
// Deeper policy (closed halls, hours text) stays the provider's contract.
func parseRecord(content string, meal menu.MealType, now time.Time) (menu.MenuData, *StructureError) {
	var probe struct {
		DiningHalls json.RawMessage `json:"diningHalls"`
	}
	if err := json.Unmarshal([]byte(content), &probe); err != nil {
		return menu.MenuData{}, &StructureError{
			Message:   fmt.Sprintf("response is not valid JSON: %v", err),
			Retryable: true,
			Cause:     ErrCauseMalformedJSON,
		}
	}

	// A JSON null passes both the presence check and a sequence unmarshal
	// (nil slice), so it must be rejected explicitly.
	if len(probe.DiningHalls) == 0 || string(probe.DiningHalls) == "null" {
		return menu.MenuData{}, &StructureError{
			Message:   "diningHalls field is missing",
			Retryable: true,
			Cause:     ErrCauseSchemaViolation,
		}
	}
	var halls []json.RawMessage
	if err := json.Unmarshal(probe.DiningHalls, &halls); err != nil {
		return menu.MenuData{}, &StructureError{
			Message:   "diningHalls field is not a sequence",
			Retryable: true,
			Cause:     ErrCauseSchemaViolation,
		}
	}

	var record menu.MenuData
	if err := json.Unmarshal([]byte(content), &record); err != nil {
		return menu.MenuData{}, &StructureError{
			Message:   fmt.Sprintf("response does not parse into a menu record: %v", err),
			Retryable: true,
			Cause:     ErrCauseMalformedJSON,
		}
	}

	// The record identifies itself; fill the fields the model occasionally
	// omits rather than failing an otherwise usable extraction.
	if record.MealType == "" {
		record.MealType = meal
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = now.UTC()
	}

	return record, nil
}
