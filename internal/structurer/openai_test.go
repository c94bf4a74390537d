package structurer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rohmanhakim/liondine-api/internal/menu"
)

// completionResponse mirrors the subset of the chat completion payload the
// structurer reads.
func completionResponse(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": time.Now().Unix(),
		"model":   "gpt-4o",
		"choices": []map[string]any{
			{
				"index": 0,
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
	}
}

func newFakeCompletionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(completionResponse(content)); err != nil {
			t.Errorf("failed to encode fake completion: %v", err)
		}
	}))
}

func newTestStructurer(baseURL string) *OpenAIStructurer {
	return NewOpenAIStructurerWithBaseURL("test-key", "gpt-4o", baseURL+"/v1", nil)
}

func asStructureError(t *testing.T, err error) *StructureError {
	t.Helper()
	var structErr *StructureError
	if !errors.As(err, &structErr) {
		t.Fatalf("expected a *StructureError, got %T", err)
	}
	return structErr
}

const validRecord = `{
  "mealType": "lunch",
  "diningHalls": [
    {
      "name": "John Jay",
      "hours": "11:00 AM to 2:00 PM",
      "status": "open",
      "stations": [
        {"name": "Main Line", "items": ["Roasted Chicken", "Rice Pilaf"]}
      ]
    },
    {
      "name": "Ferris",
      "hours": "Closed for lunch",
      "status": "closed",
      "stations": []
    }
  ]
}`

func TestOpenAIStructurer_Structure_ValidRecord(t *testing.T) {
	ts := newFakeCompletionServer(t, validRecord)
	defer ts.Close()

	s := newTestStructurer(ts.URL)
	record, err := s.Structure(context.Background(), "John Jay menu text", menu.MealLunch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if record.MealType != menu.MealLunch {
		t.Errorf("expected lunch, got %s", record.MealType)
	}
	if len(record.DiningHalls) != 2 {
		t.Fatalf("expected 2 halls, got %d", len(record.DiningHalls))
	}
	if record.DiningHalls[0].Stations[0].Items[0] != "Roasted Chicken" {
		t.Errorf("unexpected first item: %s", record.DiningHalls[0].Stations[0].Items[0])
	}
	if record.DiningHalls[1].Status != menu.StatusClosed {
		t.Errorf("expected Ferris closed, got %s", record.DiningHalls[1].Status)
	}
	if record.Timestamp.IsZero() {
		t.Error("expected the timestamp to be backfilled")
	}
}

func TestOpenAIStructurer_Structure_BackfillsMealType(t *testing.T) {
	ts := newFakeCompletionServer(t, `{"diningHalls": [{"name": "Ferris", "hours": "5 PM to 8 PM", "status": "open", "stations": []}]}`)
	defer ts.Close()

	s := newTestStructurer(ts.URL)
	record, err := s.Structure(context.Background(), "menu text", menu.MealDinner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.MealType != menu.MealDinner {
		t.Errorf("expected the requested meal to be backfilled, got %s", record.MealType)
	}
}

func TestOpenAIStructurer_Structure_MalformedJSON(t *testing.T) {
	ts := newFakeCompletionServer(t, "Here are the dining halls: John Jay is open")
	defer ts.Close()

	s := newTestStructurer(ts.URL)
	_, err := s.Structure(context.Background(), "menu text", menu.MealLunch)
	if err == nil {
		t.Fatal("expected an error for non-JSON content")
	}
	if cause := asStructureError(t, err).Cause; cause != ErrCauseMalformedJSON {
		t.Errorf("expected malformed JSON cause, got %s", cause)
	}
}

func TestOpenAIStructurer_Structure_MissingDiningHalls(t *testing.T) {
	ts := newFakeCompletionServer(t, `{"halls": []}`)
	defer ts.Close()

	s := newTestStructurer(ts.URL)
	_, err := s.Structure(context.Background(), "menu text", menu.MealLunch)
	if err == nil {
		t.Fatal("expected an error when diningHalls is missing")
	}
	if cause := asStructureError(t, err).Cause; cause != ErrCauseSchemaViolation {
		t.Errorf("expected schema violation cause, got %s", cause)
	}
}

func TestOpenAIStructurer_Structure_NullDiningHalls(t *testing.T) {
	ts := newFakeCompletionServer(t, `{"mealType": "lunch", "diningHalls": null}`)
	defer ts.Close()

	s := newTestStructurer(ts.URL)
	_, err := s.Structure(context.Background(), "menu text", menu.MealLunch)
	if err == nil {
		t.Fatal("expected an error when diningHalls is null")
	}
	if cause := asStructureError(t, err).Cause; cause != ErrCauseSchemaViolation {
		t.Errorf("expected schema violation cause, got %s", cause)
	}
}

func TestOpenAIStructurer_Structure_DiningHallsNotASequence(t *testing.T) {
	ts := newFakeCompletionServer(t, `{"diningHalls": {"name": "John Jay"}}`)
	defer ts.Close()

	s := newTestStructurer(ts.URL)
	_, err := s.Structure(context.Background(), "menu text", menu.MealLunch)
	if err == nil {
		t.Fatal("expected an error when diningHalls is an object")
	}
	if cause := asStructureError(t, err).Cause; cause != ErrCauseSchemaViolation {
		t.Errorf("expected schema violation cause, got %s", cause)
	}
}

func TestOpenAIStructurer_Structure_EmptyContent(t *testing.T) {
	ts := newFakeCompletionServer(t, "")
	defer ts.Close()

	s := newTestStructurer(ts.URL)
	_, err := s.Structure(context.Background(), "menu text", menu.MealLunch)
	if err == nil {
		t.Fatal("expected an error for empty completion content")
	}
	if cause := asStructureError(t, err).Cause; cause != ErrCauseEmptyResponse {
		t.Errorf("expected empty response cause, got %s", cause)
	}
}

func TestOpenAIStructurer_Structure_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "rate limited", "type": "requests"}}`))
	}))
	defer ts.Close()

	s := newTestStructurer(ts.URL)
	_, err := s.Structure(context.Background(), "menu text", menu.MealLunch)
	if err == nil {
		t.Fatal("expected an error when the API rejects the request")
	}
	structErr := asStructureError(t, err)
	if structErr.Cause != ErrCauseCompletionFailed {
		t.Errorf("expected completion failed cause, got %s", structErr.Cause)
	}
	if !structErr.Retryable {
		t.Error("expected a failed completion to be retryable")
	}
}

func TestOpenAIStructurer_Structure_SendsJSONModeRequest(t *testing.T) {
	var gotRequest struct {
		Model          string  `json:"model"`
		Temperature    float64 `json:"temperature"`
		ResponseFormat struct {
			Type string `json:"type"`
		} `json:"response_format"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionResponse(validRecord))
	}))
	defer ts.Close()

	s := newTestStructurer(ts.URL)
	if _, err := s.Structure(context.Background(), "menu text", menu.MealLunch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotRequest.Model != "gpt-4o" {
		t.Errorf("expected gpt-4o, got %s", gotRequest.Model)
	}
	if gotRequest.ResponseFormat.Type != "json_object" {
		t.Errorf("expected json_object response format, got %s", gotRequest.ResponseFormat.Type)
	}
	if gotRequest.Temperature != 0.1 {
		t.Errorf("expected temperature 0.1, got %v", gotRequest.Temperature)
	}
	if len(gotRequest.Messages) != 2 || gotRequest.Messages[0].Role != "system" {
		t.Errorf("expected a system message followed by a user message, got %+v", gotRequest.Messages)
	}
}
