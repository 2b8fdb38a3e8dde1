package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"taskbot/internal/model"
)

const defaultBaseURL = "https://api.openai.com/v1"

var systemPrompt = fmt.Sprintf(
	"Ты — классификатор задач. На вход приходит краткое описание задачи.\n"+
		"Верни строго JSON в формате:\n"+
		`{"category": "<одна из: %s>", "priority": "<одна из: %s>"}.`+"\n"+
		`Если не уверен, используй "other" для category и "low" для priority.`+"\n"+
		"Ничего больше, только валидный JSON.",
	joinCategories(), joinPriorities(),
)

// OpenAIClient calls the chat-completions API to classify a task
// description. It implements Remote.
type OpenAIClient struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	return &OpenAIClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Classify sends the task text to the model and validates the reply
// against the closed category/priority sets. Out-of-set values are
// coerced rather than rejected; anything unparseable is an error so the
// caller can fall back.
func (c *OpenAIClient) Classify(ctx context.Context, text string) (Result, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: text},
		},
	})
	if err != nil {
		return Result{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return Result{}, fmt.Errorf("classification api status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Result{}, fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return Result{}, fmt.Errorf("classification api returned no choices")
	}

	var raw struct {
		Category string `json:"category"`
		Priority string `json:"priority"`
	}
	content := strings.TrimSpace(decoded.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return Result{}, fmt.Errorf("parse model output %q: %w", content, err)
	}

	return Result{
		Category: model.CoerceCategory(raw.Category),
		Priority: model.CoercePriority(raw.Priority),
	}, nil
}

func joinCategories() string {
	names := make([]string, 0, len(model.Categories))
	for _, c := range model.Categories {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

func joinPriorities() string {
	names := make([]string, 0, len(model.Priorities))
	for _, p := range model.Priorities {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}
