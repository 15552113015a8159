// Package wiki is a narrow client for the Wikipedia summary endpoint, used by
// the summary command. It resolves a topic to a plain-text extract trimmed to
// a sentence count.
package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"
)

// Errors surfaced for unresolved topics.
var (
	ErrNotFound       = errors.New("topic not found")
	ErrDisambiguation = errors.New("topic is ambiguous")
)

const defaultBaseURL = "https://en.wikipedia.org/api/rest_v1"

// Client fetches page summaries from the Wikipedia REST API.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
	UserAgent  string
}

type summaryPayload struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Extract string `json:"extract"`
}

// Summarize returns up to sentences sentences of the topic's summary.
func (c *Client) Summarize(ctx context.Context, topic string, sentences int) (string, error) {
	value := strings.TrimSpace(topic)
	if value == "" {
		return "", errors.New("topic is required")
	}
	if sentences < 1 {
		sentences = 1
	}
	if ctx == nil {
		ctx = context.Background()
	}

	base := c.baseURL()
	endpoint := base.ResolveReference(&url.URL{
		Path: base.Path + "/page/summary/" + url.PathEscape(strings.ReplaceAll(value, " ", "_")),
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")
	if c != nil && c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch summary: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup on HTTP response body

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusNotFound:
		return "", fmt.Errorf("%w: %s", ErrNotFound, value)
	default:
		return "", fmt.Errorf("unexpected wikipedia response: %d", resp.StatusCode)
	}

	var payload summaryPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode summary: %w", err)
	}

	if payload.Type == "disambiguation" {
		return "", fmt.Errorf("%w: %s", ErrDisambiguation, value)
	}
	if strings.TrimSpace(payload.Extract) == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, value)
	}

	return TrimSentences(payload.Extract, sentences), nil
}

func (c *Client) baseURL() *url.URL {
	if c != nil && c.BaseURL != "" {
		if parsed, err := url.Parse(c.BaseURL); err == nil {
			return parsed
		}
	}
	parsed, _ := url.Parse(defaultBaseURL)
	return parsed
}

// TrimSentences truncates text after n sentence boundaries. A boundary is a
// terminal punctuation mark followed by whitespace and an upper-case letter,
// which is enough for encyclopedia prose.
func TrimSentences(text string, n int) string {
	trimmed := strings.TrimSpace(text)
	if n < 1 || trimmed == "" {
		return trimmed
	}

	runes := []rune(trimmed)
	count := 0
	for i := 0; i < len(runes); i++ {
		if runes[i] != '.' && runes[i] != '!' && runes[i] != '?' {
			continue
		}
		boundary := i == len(runes)-1
		if !boundary && i+2 < len(runes) &&
			unicode.IsSpace(runes[i+1]) && unicode.IsUpper(runes[i+2]) {
			boundary = true
		}
		if !boundary {
			continue
		}
		count++
		if count == n {
			return strings.TrimSpace(string(runes[:i+1]))
		}
	}
	return trimmed
}
