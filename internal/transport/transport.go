package transport

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	DefaultAPIURL = "http://localhost:8000"
	userAgent     = "spigell/hr-assistant"

	chatPath      = "/api/chat"
	healthPath    = "/api/health"
	positionsPath = "/api/job-positions"

	positionsCacheKey = "job-positions"
	positionsCacheTTL = 10 * time.Minute
)

// Source is a supporting citation returned with an answer.
type Source struct {
	Question string `json:"question"`
	Content  string `json:"content"`
}

// ChatRequest is the body of a chat call.
type ChatRequest struct {
	Message   string `json:"message"`
	Language  string `json:"language"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse is the body of a successful chat call.
type ChatResponse struct {
	Answer          string   `json:"answer"`
	SourceDocuments []Source `json:"source_documents,omitempty"`
	FunctionCalls   []string `json:"function_calls,omitempty"`
}

// Error is a failed exchange with the backend. Detail carries the backend's
// own explanation when it sent one, otherwise the transport error text.
type Error struct {
	Op     string
	Status int
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: bad status: %d %s", e.Op, e.Status, http.StatusText(e.Status))
	}
	return e.Op + ": failed"
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Client talks to the HR assistant backend over HTTP.
type Client struct {
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string

	cache *cache.Cache
}

// New returns a client for apiURL. A zero timeout leaves requests bounded only
// by their context.
func New(logger *zap.Logger, apiURL string, timeout time.Duration) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		logger:     logger,
		APIURL:     apiURL,
		HTTPClient: &http.Client{Timeout: timeout},
		UserAgent:  userAgent,
		cache:      cache.New(positionsCacheTTL, 2*positionsCacheTTL),
	}
}

// Chat sends one message and returns the backend's answer.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var resp ChatResponse
	if err := c.postJSON(ctx, c.APIURL+chatPath, req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// HealthStatus is reported by the backend health endpoint.
type HealthStatus struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	RAGReady bool   `json:"rag_ready"`
}

func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.getJSON(ctx, c.APIURL+healthPath, &status); err != nil {
		return nil, err
	}

	return &status, nil
}
