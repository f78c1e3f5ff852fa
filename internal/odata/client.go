package odata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"odatatable/internal/model"
	"odatatable/internal/query"

	json "github.com/bytedance/sonic"
	"github.com/google/uuid"
)

// DefaultEndpoint is the public TripPin people collection.
const DefaultEndpoint = "https://services.odata.org/TripPinRESTierService/People"

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error: status %d (%s)", e.StatusCode, e.Status)
}

// Page is one decoded page of the people collection.
type Page struct {
	Count int            `json:"@odata.count"`
	Value []model.Person `json:"value"`
}

// Client wraps an OData list endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for endpoint. A nil logger discards output.
func NewClient(endpoint string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Endpoint returns the collection URL the client queries.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// logFailure logs err, at debug level when the request was cancelled.
func logFailure(ctx context.Context, log *slog.Logger, url string, err error) {
	if errors.Is(err, context.Canceled) {
		log.DebugContext(ctx, "fetch cancelled", "url", url)
		return
	}
	log.ErrorContext(ctx, "fetch failed", "url", url, "error", err)
}

// FetchPeople performs exactly one GET for the requested page.
func (c *Client) FetchPeople(ctx context.Context, req query.Request) (*Page, error) {
	reqURL, err := req.URL(c.endpoint)
	if err != nil {
		return nil, err
	}
	requestID := uuid.NewString()
	log := c.logger.With("request_id", requestID)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("request creation failed: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("OData-MaxVersion", "4.0")
	httpReq.Header.Set("X-Request-ID", requestID)

	log.DebugContext(ctx, "fetching page", "url", reqURL, "top", req.Top, "skip", req.Skip)
	start := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logFailure(ctx, log, reqURL, err)
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
		log.ErrorContext(ctx, "fetch failed", "url", reqURL, "error", err)
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logFailure(ctx, log, reqURL, err)
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var page Page
	if err := json.Unmarshal(body, &page); err != nil {
		log.ErrorContext(ctx, "fetch failed", "url", reqURL, "error", err)
		return nil, fmt.Errorf("JSON decode error: %w", err)
	}
	if page.Value == nil {
		page.Value = []model.Person{}
	}

	log.DebugContext(ctx, "page fetched",
		"count", page.Count,
		"rows", len(page.Value),
		"elapsed", time.Since(start),
	)
	return &page, nil
}
