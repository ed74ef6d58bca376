// Package client talks to the capacity planner REST API. Client implements
// session.Saver so an edit session can persist cells through the API.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/YusovID/capacity-planner-service/internal/apperrors"
	"github.com/YusovID/capacity-planner-service/internal/capacity"
	"github.com/YusovID/capacity-planner-service/internal/domain"
	"github.com/YusovID/capacity-planner-service/internal/service"
	"github.com/YusovID/capacity-planner-service/internal/session"
	"github.com/YusovID/capacity-planner-service/pkg/api"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	defaultTimeout  = 30 * time.Second
	requestIDHeader = "X-Request-ID"
	dateLayout      = "2006-01-02"
)

var _ session.Saver = (*Client)(nil)

// APIError is a non-2xx answer of the API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Is lets callers match API errors against the shared sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case apperrors.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case apperrors.ErrValidation:
		return e.StatusCode == http.StatusBadRequest
	case apperrors.ErrAllocationNotActive:
		return e.StatusCode == http.StatusConflict && e.Code == "ALLOCATION_NOT_ACTIVE"
	case apperrors.ErrAlreadyExists:
		return e.StatusCode == http.StatusConflict && e.Code == "ALREADY_EXISTS"
	}

	return false
}

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	log        *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	const op = "internal.client.New"

	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%s: invalid base url %q", op, baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *Client) Allocations(ctx context.Context, resourceID string) ([]domain.ResourceAllocation, error) {
	const op = "internal.client.Allocations"

	var out api.AllocationsResponse

	if err := c.doJSON(ctx, http.MethodGet, "/resources/"+resourceID+"/allocations", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out.Allocations, nil
}

func (c *Client) Activities(ctx context.Context, resourceID string) ([]domain.NonProjectActivity, error) {
	const op = "internal.client.Activities"

	var out api.ActivitiesResponse

	if err := c.doJSON(ctx, http.MethodGet, "/resources/"+resourceID+"/non-project-activities", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out.Activities, nil
}

func (c *Client) Capacity(ctx context.Context, resourceID string, year int) (*service.ResourceCapacity, error) {
	const op = "internal.client.Capacity"

	var out service.ResourceCapacity

	q := url.Values{"year": {strconv.Itoa(year)}}
	if err := c.doJSON(ctx, http.MethodGet, "/resources/"+resourceID+"/capacity", q, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (c *Client) ProjectWeeklyTotals(ctx context.Context, projectID string, year int) (*service.ProjectWeeklyTotals, error) {
	const op = "internal.client.ProjectWeeklyTotals"

	var out service.ProjectWeeklyTotals

	q := url.Values{"year": {strconv.Itoa(year)}}
	if err := c.doJSON(ctx, http.MethodGet, "/projects/"+projectID+"/weekly-totals", q, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (c *Client) Alerts(ctx context.Context, period service.Period) (*service.AlertReport, error) {
	const op = "internal.client.Alerts"

	q := url.Values{
		"start": {period.Start.Format(dateLayout)},
		"end":   {period.End.Format(dateLayout)},
	}
	if period.Label != "" {
		q.Set("label", period.Label)
	}
	if period.Filter != "" {
		q.Set("period", period.Filter)
	}

	var out service.AlertReport
	if err := c.doJSON(ctx, http.MethodGet, "/alerts", q, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (c *Client) Weeks(ctx context.Context, year int) ([]capacity.WeekColumn, error) {
	const op = "internal.client.Weeks"

	var out api.WeeksResponse

	if err := c.doJSON(ctx, http.MethodGet, "/weeks", url.Values{"year": {strconv.Itoa(year)}}, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out.Weeks, nil
}

// Snapshot loads what an edit session needs: the allocations and the
// effective capacity of the resource.
func (c *Client) Snapshot(ctx context.Context, resourceID string, year int) (session.Snapshot, error) {
	const op = "internal.client.Snapshot"

	allocations, err := c.Allocations(ctx, resourceID)
	if err != nil {
		return session.Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	view, err := c.Capacity(ctx, resourceID, year)
	if err != nil {
		return session.Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	return session.Snapshot{Allocations: allocations, EffectiveCapacity: view.EffectiveCapacity}, nil
}

// SaveWeeklyAllocation writes one cell through the API.
func (c *Client) SaveWeeklyAllocation(ctx context.Context, resourceID string, change domain.PendingChange) error {
	const op = "internal.client.SaveWeeklyAllocation"

	hours := change.Hours
	body := api.PutWeeklyAllocationJSONRequestBody{ProjectId: change.ProjectID, WeekKey: change.WeekKey, Hours: &hours}

	if err := c.doJSON(ctx, http.MethodPut, "/resources/"+resourceID+"/weekly-allocations", nil, body, nil); err != nil {
		return fmt.Errorf("%s: %s/%s: %w", op, change.ProjectID, change.WeekKey, err)
	}

	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, reqBody, out any) error {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	requestID := uuid.NewString()

	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("api request",
		slog.String("method", method),
		slog.String("path", u.Path),
		slog.String("request_id", requestID),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call api: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp.StatusCode, respBody)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func decodeAPIError(status int, body []byte) error {
	var payload api.ErrorResponse

	apiErr := &APIError{StatusCode: status}

	if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Code != "" {
		apiErr.Code = payload.Error.Code
		apiErr.Message = payload.Error.Message

		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(body))
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}

	return apiErr
}
