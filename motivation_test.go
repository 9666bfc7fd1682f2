package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// openAIChatResponse builds the minimal chat completions response body the
// client parses.
func openAIChatResponse(content string) string {
	body := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	b, _ := json.Marshal(body)
	return string(b)
}

// mockOpenAI spins up a chat completions endpoint returning the given
// content, and captures the last request body.
func mockOpenAI(t *testing.T, content string, lastBody *openAIRequest) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want Bearer test-key", got)
		}
		if lastBody != nil {
			if err := json.NewDecoder(r.Body).Decode(lastBody); err != nil {
				t.Errorf("decode request body: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(openAIChatResponse(content)))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestGenerateMotivation_UsesModelResponse(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	var req openAIRequest
	server := mockOpenAI(t, "  Three days straight, Alex! Keep that fire going!  ", &req)

	got := generateMotivation(context.Background(), server.URL, motivationInput{
		Name:           "Alex",
		WorkoutsToday:  1,
		Streak:         3,
		CaloriesBurned: 420,
	})

	if got != "Three days straight, Alex! Keep that fire going!" {
		t.Errorf("motivation = %q", got)
	}
	if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
		t.Fatalf("unexpected message shape: %+v", req.Messages)
	}
	if !strings.Contains(req.Messages[1].Content, "Streak: 3 days") {
		t.Errorf("prompt missing streak: %q", req.Messages[1].Content)
	}
}

func TestGenerateMotivation_FallsBackOnServerError(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	got := generateMotivation(context.Background(), server.URL, motivationInput{Name: "Alex"})
	if got != fallbackMotivation {
		t.Errorf("motivation = %q, want fallback", got)
	}
}

func TestGenerateMotivation_FallsBackOnEmptyContent(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	server := mockOpenAI(t, "   ", nil)

	got := generateMotivation(context.Background(), server.URL, motivationInput{Name: "Alex"})
	if got != fallbackMotivation {
		t.Errorf("motivation = %q, want fallback", got)
	}
}

func TestGenerateMotivation_FallsBackWithoutAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	got := generateMotivation(context.Background(), "http://127.0.0.1:0", motivationInput{Name: "Alex"})
	if got != fallbackMotivation {
		t.Errorf("motivation = %q, want fallback", got)
	}
}

func TestEstimateWorkoutCalories_ParsesInteger(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	var req openAIRequest
	server := mockOpenAI(t, "350", &req)

	burned, err := estimateWorkoutCalories(context.Background(), server.URL, createWorkoutRequest{
		Title:     "Morning run",
		StartTime: "2026-03-15T07:00:00Z",
		Exercises: json.RawMessage(`[{"name": "Running", "duration_minutes": 30}]`),
	})
	if err != nil {
		t.Fatalf("estimateWorkoutCalories failed: %v", err)
	}
	if burned != 350 {
		t.Errorf("burned = %d, want 350", burned)
	}
	if !strings.Contains(req.Messages[1].Content, "Morning run") {
		t.Errorf("prompt missing workout data: %q", req.Messages[1].Content)
	}
}

func TestEstimateWorkoutCalories_TrimsWhitespace(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	server := mockOpenAI(t, "\n 275 \n", nil)

	burned, err := estimateWorkoutCalories(context.Background(), server.URL, createWorkoutRequest{Title: "Lift"})
	if err != nil {
		t.Fatalf("estimateWorkoutCalories failed: %v", err)
	}
	if burned != 275 {
		t.Errorf("burned = %d, want 275", burned)
	}
}

func TestEstimateWorkoutCalories_RejectsNonInteger(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	server := mockOpenAI(t, "around 300 calories", nil)

	if _, err := estimateWorkoutCalories(context.Background(), server.URL, createWorkoutRequest{Title: "Lift"}); err == nil {
		t.Error("expected error for non-integer response")
	}
}

func TestEstimateWorkoutCalories_RejectsNegative(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	server := mockOpenAI(t, "-50", nil)

	if _, err := estimateWorkoutCalories(context.Background(), server.URL, createWorkoutRequest{Title: "Lift"}); err == nil {
		t.Error("expected error for negative estimate")
	}
}
