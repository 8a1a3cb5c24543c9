// Package genai is a minimal client for the Gemini generateContent endpoint.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/logger"
	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
)

const (
	// DefaultURL is the generateContent endpoint used when none is configured.
	DefaultURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash-preview-05-20:generateContent"

	// DefaultTimeout bounds a single generateContent call
	DefaultTimeout = 60 * time.Second

	generativeLanguageScope = "https://www.googleapis.com/auth/generative-language"

	maxErrorBody = 512
)

// Config configures a Client.
type Config struct {
	URL     string
	APIKey  string
	Timeout time.Duration
	// RateLimit caps outbound calls per second. Zero disables limiting.
	RateLimit float64
	RateBurst int
	Metrics   *Metrics
	// HTTPClient overrides the default client. Its Timeout is left as is.
	HTTPClient *http.Client
}

// Client sends single-prompt generateContent requests
type Client struct {
	url     string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
	metrics *Metrics
}

// New creates a client authenticated with an API key (which may be empty).
func New(cfg Config) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Client{
		url:     cfg.URL,
		apiKey:  cfg.APIKey,
		http:    httpClient,
		limiter: limiter,
		metrics: cfg.Metrics,
	}
}

// NewWithDefaultCredentials creates a client that authenticates with Google
// Application Default Credentials instead of an API key.
func NewWithDefaultCredentials(ctx context.Context, cfg Config) (*Client, error) {
	httpClient, err := google.DefaultClient(ctx, generativeLanguageScope)
	if err != nil {
		return nil, fmt.Errorf("google default credentials: %w", err)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	httpClient.Timeout = cfg.Timeout
	cfg.HTTPClient = httpClient
	cfg.APIKey = ""
	return New(cfg), nil
}

// Generate sends prompt as a single user turn and returns the reply text.
// Errors are *CallError values; see IsTransient and IsFormat.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	log := logger.New(ctx)
	start := time.Now()

	text, err := c.generate(ctx, prompt)
	duration := time.Since(start)
	c.metrics.record(duration, err)
	if err != nil {
		log.LogWarnf("generate_content", "failed after %s: %v", duration, err)
		return "", err
	}
	log.LogInfof("generate_content", "ok in %s (%d chars)", duration, len(text))
	return text, nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", &CallError{Kind: KindTransport, Err: fmt.Errorf("rate limit wait: %w", err)}
		}
	}

	body, err := json.Marshal(GenerateRequest{
		Contents: []Content{{Role: "user", Parts: []Part{{Text: prompt}}}},
	})
	if err != nil {
		return "", &CallError{Kind: KindFormat, Err: fmt.Errorf("marshal request: %w", err)}
	}

	reqURL, err := c.endpoint()
	if err != nil {
		return "", &CallError{Kind: KindTransport, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return "", &CallError{Kind: KindTransport, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &CallError{Kind: KindTransport, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &CallError{
			Kind:   KindTransport,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("%s: %s", resp.Status, bytes.TrimSpace(msg)),
		}
	}

	var out GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &CallError{Kind: KindFormat, Status: resp.StatusCode, Err: fmt.Errorf("decode JSON: %w", err)}
	}
	text, ok := out.Text()
	if !ok {
		return "", &CallError{Kind: KindFormat, Status: resp.StatusCode, Err: errors.New("response has no candidate text")}
	}
	return text, nil
}

func (c *Client) endpoint() (string, error) {
	if c.apiKey == "" {
		return c.url, nil
	}
	u, err := url.Parse(c.url)
	if err != nil {
		return "", fmt.Errorf("parse base URL: %w", err)
	}
	q := u.Query()
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
