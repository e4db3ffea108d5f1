// Package gemini wraps the Gemini REST API for the consultancy: single-shot
// and streaming consultation replies, CV extraction and profile assessment.
// The client is a stateless adapter; retry and fallback policy belongs to
// callers.
package gemini

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"eduglobal/internal/logging"
	"eduglobal/internal/prompt"
)

var errNoAPIKey = errors.New("API key not configured")

// Config holds configuration for the Gemini client.
type Config struct {
	APIKey            string
	BaseURL           string
	Model             string
	SystemInstruction string
	Timeout           time.Duration
	MaxOutputTokens   int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:          apiKey,
		BaseURL:         "https://generativelanguage.googleapis.com/v1beta",
		Model:           "gemini-3-flash-preview",
		Timeout:         2 * time.Minute,
		MaxOutputTokens: 8192,
	}
}

// Client talks to the Gemini generateContent endpoints.
type Client struct {
	apiKey            string
	baseURL           string
	model             string
	systemInstruction string
	maxOutputTokens   int
	httpClient        *http.Client
}

// NewClient creates a client with default config.
func NewClient(apiKey string) *Client {
	return NewClientWithConfig(DefaultConfig(apiKey))
}

// NewClientWithConfig creates a client with custom config.
func NewClientWithConfig(config Config) *Client {
	defaults := DefaultConfig(config.APIKey)
	if strings.TrimSpace(config.BaseURL) == "" {
		config.BaseURL = defaults.BaseURL
	}
	if strings.TrimSpace(config.Model) == "" {
		config.Model = defaults.Model
	}
	// Without an explicit instruction the client falls back to the full
	// consultant instruction covering every destination.
	if strings.TrimSpace(config.SystemInstruction) == "" {
		config.SystemInstruction = prompt.ConsultantInstruction("")
	}
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}
	if config.MaxOutputTokens <= 0 {
		config.MaxOutputTokens = defaults.MaxOutputTokens
	}

	return &Client{
		apiKey:            config.APIKey,
		baseURL:           config.BaseURL,
		model:             config.Model,
		systemInstruction: config.SystemInstruction,
		maxOutputTokens:   config.MaxOutputTokens,
		httpClient:        &http.Client{Timeout: config.Timeout},
	}
}

// Model returns the configured model.
func (c *Client) Model() string { return c.model }

// Converse sends the new user utterance with the prior turns flattened into
// the transcript and returns the full generated reply.
func (c *Client) Converse(ctx context.Context, userText string, prior []Turn) (string, error) {
	req := c.conversationRequest(userText, prior)

	resp, err := c.generate(ctx, "converse", req)
	if err != nil {
		return "", err
	}

	text := responseText(resp)
	if text == "" {
		return "", &BackendError{Op: "converse", Err: errors.New("empty candidate response")}
	}
	return text, nil
}

// ConverseStream is the streaming variant of Converse. Fragments arrive on
// the content channel in generation order and concatenate to the full
// reply. Both channels are closed once the stream settles; on mid-stream
// failure the content channel closes early and the error channel carries
// the cause. The stream is not restartable.
func (c *Client) ConverseStream(ctx context.Context, userText string, prior []Turn) (<-chan string, <-chan error) {
	contentChan := make(chan string, 8)
	errorChan := make(chan error, 1)

	logging.APIDebug("[Gemini] ConverseStream: starting model=%s turns=%d", c.model, len(prior))

	go func() {
		defer close(contentChan)
		defer close(errorChan)

		startTime := time.Now()

		if c.apiKey == "" {
			errorChan <- &BackendError{Op: "stream", Err: errNoAPIKey}
			return
		}

		reqBody := c.conversationRequest(userText, prior)
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			errorChan <- &BackendError{Op: "stream", Err: fmt.Errorf("failed to marshal request: %w", err)}
			return
		}

		url := fmt.Sprintf("%s/models/%s:streamGenerateContent?alt=sse&key=%s", c.baseURL, c.model, c.apiKey)
		req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonData))
		if err != nil {
			errorChan <- &BackendError{Op: "stream", Err: fmt.Errorf("failed to create request: %w", err)}
			return
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "text/event-stream")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			logging.APIError("[Gemini] ConverseStream: request failed after %v: %v", time.Since(startTime), err)
			errorChan <- &BackendError{Op: "stream", Err: err}
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			errorChan <- &BackendError{
				Op:         "stream",
				StatusCode: resp.StatusCode,
				Err:        fmt.Errorf("%s", strings.TrimSpace(string(body))),
			}
			return
		}

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, "data:") {
				continue
			}
			data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			if data == "" {
				continue
			}
			if data == "[DONE]" {
				break
			}

			var chunk geminiResponse
			if err := json.Unmarshal([]byte(data), &chunk); err != nil {
				continue
			}
			if chunk.Error != nil {
				errorChan <- &BackendError{Op: "stream", StatusCode: chunk.Error.Code, Err: errors.New(chunk.Error.Message)}
				return
			}
			if len(chunk.Candidates) == 0 {
				continue
			}
			for _, part := range chunk.Candidates[0].Content.Parts {
				if part.Text == "" {
					continue
				}
				select {
				case contentChan <- part.Text:
				case <-ctx.Done():
					errorChan <- &BackendError{Op: "stream", Err: ctx.Err()}
					return
				}
			}
		}

		if err := scanner.Err(); err != nil {
			logging.APIError("[Gemini] ConverseStream: stream error after %v: %v", time.Since(startTime), err)
			errorChan <- &BackendError{Op: "stream", Err: err}
			return
		}

		logging.APIDebug("[Gemini] ConverseStream: completed in %v", time.Since(startTime))
	}()

	return contentChan, errorChan
}

// conversationRequest flattens the prior turns into the transcript format
// the backend contract expects: role-tagged lines followed by the new user
// text and an open consultant line.
func (c *Client) conversationRequest(userText string, prior []Turn) geminiRequest {
	var transcript strings.Builder
	for _, turn := range prior {
		switch turn.Role {
		case RoleAssistant:
			transcript.WriteString("Consultant: ")
		default:
			transcript.WriteString("User: ")
		}
		transcript.WriteString(turn.Text)
		transcript.WriteString("\n")
	}
	transcript.WriteString("User: ")
	transcript.WriteString(userText)
	transcript.WriteString("\nConsultant:")

	return geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: transcript.String()}}},
		},
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: c.systemInstruction}},
		},
		GenerationConfig: geminiGenerationConfig{
			MaxOutputTokens: c.maxOutputTokens,
			ThinkingConfig:  &geminiThinkingConfig{ThinkingBudget: 0},
		},
	}
}

// generate issues a single generateContent call and returns the parsed
// response. All transport and API failures surface as *BackendError.
func (c *Client) generate(ctx context.Context, op string, reqBody geminiRequest) (*geminiResponse, error) {
	if c.apiKey == "" {
		return nil, &BackendError{Op: op, Err: errNoAPIKey}
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &BackendError{Op: op, Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, &BackendError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.APIError("[Gemini] %s: request failed: %v", op, err)
		return nil, &BackendError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &BackendError{Op: op, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &BackendError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s", strings.TrimSpace(string(body))),
		}
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &BackendError{Op: op, Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	if parsed.Error != nil {
		return nil, &BackendError{Op: op, StatusCode: parsed.Error.Code, Err: errors.New(parsed.Error.Message)}
	}

	logging.APIDebug("[Gemini] %s: completed in %v", op, time.Since(startTime))
	return &parsed, nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *geminiResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		out.WriteString(part.Text)
	}
	return strings.TrimSpace(out.String())
}
