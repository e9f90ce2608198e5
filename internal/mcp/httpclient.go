package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/claude/gymtrack/internal/models"
)

// HTTPClient implements DataSource by calling the GymTrack REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// the session lives on the remote server.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL. apiKey
// is sent as X-API-Key on every request.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// apiError is the JSON error body written by the server.
type apiError struct {
	Error string `json:"error"`
}

// errorForStatus maps the server's status codes back onto the model errors,
// so remote failures read the same as local ones.
func errorForStatus(code int, msg string) error {
	var kind error
	switch code {
	case http.StatusBadRequest:
		kind = models.ErrInvalidArgument
	case http.StatusConflict:
		kind = models.ErrEmptyCollection
	case http.StatusUnprocessableEntity:
		kind = models.ErrUnsupportedOperation
	case http.StatusInternalServerError:
		kind = models.ErrPersistence
	default:
		return fmt.Errorf("httpclient: server returned %d: %s", code, msg)
	}
	return fmt.Errorf("%w: %s", kind, msg)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e apiError
		if json.Unmarshal(data, &e) != nil || e.Error == "" {
			e.Error = strings.TrimSpace(string(data))
		}
		return errorForStatus(resp.StatusCode, e.Error)
	}

	switch out := out.(type) {
	case nil:
		return nil
	case *string:
		*out = string(data)
		return nil
	default:
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("httpclient: decode %s: %w", path, err)
		}
		return nil
	}
}

func (c *HTTPClient) LogExercise(ctx context.Context, entry models.LogEntry) (models.LogResult, error) {
	var res models.LogResult
	err := c.do(ctx, http.MethodPost, "/api/v1/workout/exercises", entry, &res)
	return res, err
}

func (c *HTTPClient) RemoveLastLoggedItem(ctx context.Context) (models.RemoveResult, error) {
	var res models.RemoveResult
	err := c.do(ctx, http.MethodDelete, "/api/v1/workout/last", nil, &res)
	return res, err
}

func (c *HTTPClient) SetTitle(ctx context.Context, title string) error {
	return c.do(ctx, http.MethodPut, "/api/v1/workout/title", map[string]string{"title": title}, nil)
}

func (c *HTTPClient) CurrentWorkout(ctx context.Context) (models.WorkoutRecord, error) {
	var rec models.WorkoutRecord
	err := c.do(ctx, http.MethodGet, "/api/v1/workout", nil, &rec)
	return rec, err
}

func (c *HTTPClient) WorkoutReport(ctx context.Context) (string, error) {
	var report string
	err := c.do(ctx, http.MethodGet, "/api/v1/workout/report", nil, &report)
	return report, err
}

func (c *HTTPClient) SaveWorkout(ctx context.Context) (models.WorkoutRecord, error) {
	var resp struct {
		Saved models.WorkoutRecord `json:"saved"`
	}
	err := c.do(ctx, http.MethodPost, "/api/v1/workout/save", nil, &resp)
	return resp.Saved, err
}

func (c *HTTPClient) History(ctx context.Context) ([]models.WorkoutRecord, error) {
	var resp struct {
		Workouts []models.WorkoutRecord `json:"workouts"`
	}
	err := c.do(ctx, http.MethodGet, "/api/v1/history", nil, &resp)
	return resp.Workouts, err
}

func (c *HTTPClient) HistoryReport(ctx context.Context) (string, error) {
	var report string
	err := c.do(ctx, http.MethodGet, "/api/v1/history/report", nil, &report)
	return report, err
}
