package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"clinic-site-api/config"
	domainRepo "clinic-site-api/internal/domain/repository"
	"clinic-site-api/internal/infrastructure/metrics"

	"github.com/sirupsen/logrus"
)

const (
	defaultBackendTimeout = 15 * time.Second
	maxLoggedBody         = 300
)

// Backend function names.
const (
	endpointWebsite = "get-medical-group-website"
	endpointSlots   = "get-available-slots"
	endpointBooking = "create-public-booking"
)

// GemaClient calls the practice-management backend functions.
type GemaClient struct {
	httpClient *http.Client
	baseURL    string
	anonKey    string
	log        *logrus.Logger
	metrics    *metrics.SiteMetrics
}

func NewGemaClient(cfg config.BackendConfig, log *logrus.Logger, m *metrics.SiteMetrics) *GemaClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultBackendTimeout
	}
	return &GemaClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		anonKey:    cfg.AnonKey,
		log:        log,
		metrics:    m,
	}
}

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned %d: %s", e.Endpoint, e.Status, e.Body)
}

func (e *StatusError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return domainRepo.ErrNotFound
	}
	return nil
}

// envelope covers the {error}, {data} and bare payload shapes.
type envelope struct {
	Error   json.RawMessage `json:"error"`
	Data    json.RawMessage `json:"data"`
	Group   json.RawMessage `json:"group"`
	Website json.RawMessage `json:"website"`
}

// errorMessage returns "" for an absent or null error field.
func (e *envelope) errorMessage() string {
	return rawMessage(e.Error)
}

func rawMessage(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || bytes.Equal(raw, []byte("false")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func present(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

// rejection maps an {error} envelope to a sentinel the usecases can match.
func rejection(endpoint, message string) error {
	if strings.Contains(strings.ToLower(message), "not found") {
		return fmt.Errorf("%s: %s: %w", endpoint, message, domainRepo.ErrNotFound)
	}
	return fmt.Errorf("%s: %s: %w", endpoint, message, domainRepo.ErrRejected)
}

// do performs the call and returns the raw answer whatever its status.
func (c *GemaClient) do(ctx context.Context, method, endpoint, query string, body interface{}) (int, []byte, error) {
	target := c.baseURL + "/" + endpoint
	if query != "" {
		target += "?" + query
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.anonKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.anonKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveBackendLatency(endpoint, "error", time.Since(start).Seconds())
		return 0, nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()
	c.metrics.ObserveBackendLatency(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

// doJSON is do plus 2xx enforcement.
func (c *GemaClient) doJSON(ctx context.Context, method, endpoint, query string, body interface{}) ([]byte, error) {
	status, respBody, err := c.do(ctx, method, endpoint, query, body)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		msg := truncate(string(respBody))
		c.log.WithFields(logrus.Fields{
			"endpoint": endpoint,
			"status":   status,
			"body":     msg,
		}).Warn("Backend returned non-2xx response")
		return nil, &StatusError{Endpoint: endpoint, Status: status, Body: msg}
	}
	return respBody, nil
}

func truncate(s string) string {
	if len(s) > maxLoggedBody {
		return s[:maxLoggedBody]
	}
	return s
}

var errEmptyResponse = errors.New("empty response body")
