package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// fallbackMotivation is returned whenever the AI call fails or is not
// configured. The dashboard always has something to show.
const fallbackMotivation = "Ready to crush your goals today? You're doing great! Keep up the momentum."

const motivationSystemPrompt = `You are a fitness coach. Create a short, punchy, 1-sentence motivational welcome message for the user. Max 20 words, casual and friendly. If they have a streak, celebrate it. If they worked out today, congratulate them. If not, encourage them to start.`

const estimateSystemPrompt = `You are a calories estimation engine. Based ONLY on the workout data provided, estimate the total calories burned for the full session. Return ONLY a single integer with no words.`

/* ─── OpenAI HTTP client ─────────────────────────────────────────────── */

// openAIMessage is a single message in the OpenAI chat completions request.
type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// openAIRequest is the request body for the OpenAI chat completions API.
type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
}

// callOpenAI sends a chat completions request and returns the raw content
// string from the first choice. Uses raw net/http to avoid pulling in the
// OpenAI SDK.
func callOpenAI(ctx context.Context, messages []openAIMessage, baseURL string) (string, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY not set")
	}

	reqBody := openAIRequest{
		Model:       "gpt-4o-mini",
		Messages:    messages,
		Temperature: 0,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", baseURL+"/v1/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai returned status %d: %s", resp.StatusCode, string(respBytes))
	}

	// Parse the response to extract choices[0].message.content
	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBytes, &result); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return result.Choices[0].Message.Content, nil
}

/* ─── Dashboard motivation ───────────────────────────────────────────── */

// motivationInput carries the day's headline numbers into the prompt.
type motivationInput struct {
	Name           string
	WorkoutsToday  int
	Streak         int
	CaloriesBurned int
}

// generateMotivation asks the AI for a one-liner built from the user's day.
// Any failure — missing key, network, empty response — falls back to the
// static message rather than surfacing an error.
func generateMotivation(ctx context.Context, baseURL string, in motivationInput) string {
	prompt := fmt.Sprintf(
		"User: %s\nWorkouts today: %d\nStreak: %d days\nCalories burned today: %d",
		in.Name, in.WorkoutsToday, in.Streak, in.CaloriesBurned)

	messages := []openAIMessage{
		{Role: "system", Content: motivationSystemPrompt},
		{Role: "user", Content: prompt},
	}

	text, err := callOpenAI(ctx, messages, baseURL)
	if err != nil || strings.TrimSpace(text) == "" {
		return fallbackMotivation
	}
	return strings.TrimSpace(text)
}

/* ─── Workout calorie estimation ─────────────────────────────────────── */

// estimateWorkoutCalories asks the AI for a burn estimate of the full
// session. Returns an error (caller logs and uses 0) when the call fails or
// the model returns anything but an integer.
func estimateWorkoutCalories(ctx context.Context, baseURL string, w createWorkoutRequest) (int, error) {
	payload, err := json.Marshal(w)
	if err != nil {
		return 0, fmt.Errorf("marshal workout: %w", err)
	}

	messages := []openAIMessage{
		{Role: "system", Content: estimateSystemPrompt},
		{Role: "user", Content: "Workout:\n" + string(payload)},
	}

	content, err := callOpenAI(ctx, messages, baseURL)
	if err != nil {
		return 0, err
	}

	burned, err := strconv.Atoi(strings.TrimSpace(content))
	if err != nil {
		return 0, fmt.Errorf("non-integer estimate %q: %w", content, err)
	}
	if burned < 0 {
		return 0, fmt.Errorf("negative estimate %d", burned)
	}
	return burned, nil
}
