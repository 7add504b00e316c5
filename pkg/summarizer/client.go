package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Summarizer condenses a report body. Implementations may fail freely:
// callers treat an error as "no summary", never as a navigation failure.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

type completionMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type completionOptions struct {
	Stream      bool    `json:"stream"`
	Temperature float64 `json:"temperature"`
	MaxTokens   string  `json:"maxTokens"`
}

type completionRequest struct {
	ModelURI          string              `json:"modelUri"`
	CompletionOptions completionOptions   `json:"completionOptions"`
	Messages          []completionMessage `json:"messages"`
}

type completionResponse struct {
	Result struct {
		Alternatives []struct {
			Message completionMessage `json:"message"`
		} `json:"alternatives"`
	} `json:"result"`
}

type Client struct {
	endpoint   string
	apiKey     string
	folderID   string
	prompt     string
	httpClient *http.Client
}

// NewClient builds a completion-API summarizer. prompt must contain one %s
// verb for the report body.
func NewClient(endpoint, apiKey, folderID, prompt string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		folderID:   folderID,
		prompt:     prompt,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	payload := completionRequest{
		ModelURI: fmt.Sprintf("gpt://%s/yandexgpt", c.folderID),
		CompletionOptions: completionOptions{
			Stream:      false,
			Temperature: 0.3,
			MaxTokens:   "500",
		},
		Messages: []completionMessage{
			{Role: "user", Text: fmt.Sprintf(c.prompt, text)},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Api-Key "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("summarizer: status %d", res.StatusCode)
	}

	var parsed completionResponse
	if err := json.Unmarshal(resBody, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Result.Alternatives) == 0 {
		return "", fmt.Errorf("summarizer: empty completion")
	}
	return strings.TrimSpace(parsed.Result.Alternatives[0].Message.Text), nil
}
