// Package backend provides a typed client for the compliance backend REST
// API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kyraongithub/compliance-gateway/internal/models"
)

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend: unexpected status %d: %s", e.Code, e.Body)
}

// Config holds backend API configuration.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client // optional, defaults to a 30s-timeout client
	Logger     *zap.Logger  // optional, defaults to zap.NewNop()
}

// Validate ensures all required fields are present.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("backend base URL is required")
	}
	return nil
}

// Client implements the API interface against a real backend.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *zap.Logger
}

func NewClient(cfg Config, tokens TokenSource) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		tokens:  tokens,
		logger:  logger.With(zap.String("component", "backend")),
	}, nil
}

func (c *Client) ListAssessments(ctx context.Context) ([]models.Assessment, error) {
	var out []models.Assessment
	if err := c.do(ctx, http.MethodGet, "/assessments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAssessment(ctx context.Context, templateID string) (*models.Assessment, error) {
	body := map[string]string{"templateId": templateID}
	out := &models.Assessment{}
	if err := c.do(ctx, http.MethodPost, "/assessments", body, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetAssessment(ctx context.Context, id string) (*models.Assessment, error) {
	out := &models.Assessment{}
	if err := c.do(ctx, http.MethodGet, "/assessments/"+id, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpsertSubmission(ctx context.Context, req SubmissionRequest) (*models.Submission, error) {
	out := &models.Submission{}
	if err := c.do(ctx, http.MethodPut, "/submissions", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ReviewSubmission(ctx context.Context, submissionID string, status models.SubmissionStatus, reviewNote string) (*models.Submission, error) {
	body := struct {
		Status     models.SubmissionStatus `json:"status"`
		ReviewNote string                  `json:"reviewNote,omitempty"`
	}{Status: status, ReviewNote: reviewNote}
	out := &models.Submission{}
	if err := c.do(ctx, http.MethodPut, "/submissions/"+submissionID+"/review", body, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListTemplates(ctx context.Context) ([]models.Template, error) {
	var out []models.Template
	if err := c.do(ctx, http.MethodGet, "/templates", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTemplate(ctx context.Context, id string) (*models.TemplateDetail, error) {
	out := &models.TemplateDetail{}
	if err := c.do(ctx, http.MethodGet, "/templates/"+id, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadTemplate posts file + title as multipart form data. The backend
// answers 202 and processes the document asynchronously; the returned
// template starts out in PROCESSING status.
func (c *Client) UploadTemplate(ctx context.Context, fileName, title string, contents io.Reader) (*models.Template, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("backend: build multipart: %w", err)
	}
	if _, err := io.Copy(part, contents); err != nil {
		return nil, fmt.Errorf("backend: read file: %w", err)
	}
	if err := mw.WriteField("title", title); err != nil {
		return nil, fmt.Errorf("backend: build multipart: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("backend: build multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/templates/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend: POST /templates/upload: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.statusError(resp)
	}
	out := &models.Template{}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return nil, fmt.Errorf("backend: decode upload response: %w", err)
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("backend: decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.tokens == nil {
		return
	}
	if tok := c.tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
}

func (c *Client) statusError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	err := &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	c.logger.Warn("backend request rejected",
		zap.String("url", resp.Request.URL.Path),
		zap.Int("status", resp.StatusCode))
	return err
}
