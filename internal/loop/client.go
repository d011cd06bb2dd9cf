package loop

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/1broseidon/deskloop/internal/config"
)

// Client produces the next model reply for a story plus screenshot.
type Client interface {
	Complete(ctx context.Context, story, screenshotB64 string) (string, error)
}

// HTTPClient talks to an OpenAI-compatible chat completions endpoint.
type HTTPClient struct {
	API      string
	Model    string
	Prompt   string
	Sampling config.Sampling

	// HTTP is the underlying client; nil uses a 2 minute timeout.
	HTTP *http.Client

	// Attempts is the total number of tries per call; zero means 3.
	// Backoff doubles from one second between tries.
	Attempts int
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *HTTPClient) buildRequest(story, screenshotB64 string) chatRequest {
	return chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: c.Prompt},
			{Role: "user", Content: []contentPart{
				{Type: "text", Text: story},
				{Type: "image_url", ImageURL: &imageURL{
					URL: "data:image/png;base64," + screenshotB64,
				}},
			}},
		},
		Temperature: c.Sampling.Temperature,
		TopP:        c.Sampling.TopP,
		MaxTokens:   c.Sampling.MaxTokens,
	}
}

// Complete sends one inference request, retrying transient failures with
// doubling backoff before giving up.
func (c *HTTPClient) Complete(ctx context.Context, story, screenshotB64 string) (string, error) {
	body, err := json.Marshal(c.buildRequest(story, screenshotB64))
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	attempts := c.Attempts
	if attempts <= 0 {
		attempts = 3
	}
	backoff := time.Second

	var lastErr error
	for try := 0; try < attempts; try++ {
		if try > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		reply, err := c.send(ctx, body)
		if err == nil {
			return reply, nil
		}
		if ctx.Err() != nil {
			return "", err
		}
		lastErr = err
	}
	return "", fmt.Errorf("inference failed after %d attempts: %w", attempts, lastErr)
}

func (c *HTTPClient) send(ctx context.Context, body []byte) (string, error) {
	httpc := c.HTTP
	if httpc == nil {
		httpc = &http.Client{Timeout: 2 * time.Minute}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.API, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("endpoint returned %s: %s", resp.Status, data)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat response has no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
