package transport

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/hr-assistant/internal/utils"
)

const (
	contentType     = "application/json"
	contentEncoding = "gzip"

	maxLoggedBody = 200
)

func (c *Client) postJSON(ctx context.Context, url string, body, target any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &Error{Op: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return &Error{Op: "build request", Err: err}
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)

	return c.do(req, target)
}

func (c *Client) getJSON(ctx context.Context, url string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &Error{Op: "build request", Err: err}
	}

	return c.do(c.setHeaders(req), target)
}

func (c *Client) do(req *http.Request, target any) error {
	op := req.Method + " " + req.URL.Path

	c.logger.Debug("make request", zap.String("url", req.URL.String()))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := readBody(resp)
	if err != nil {
		return &Error{Op: op, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug("bad status from backend",
			zap.Int("status", resp.StatusCode),
			zap.String("body_preview", utils.TruncateForLog(string(data), maxLoggedBody)),
		)
		return &Error{Op: op, Status: resp.StatusCode, Detail: errorDetail(data)}
	}

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}

	return nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", contentType)
	req.Header.Set("Accept-Encoding", contentEncoding)

	return req
}

func readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		reader = gz
	}

	return io.ReadAll(reader)
}

// errorDetail pulls the "detail" field out of an error body. Validation
// errors carry a list of objects there instead of a string.
func errorDetail(data []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil || len(body.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(body.Detail, &text); err == nil {
		return strings.TrimSpace(text)
	}

	return strings.TrimSpace(string(body.Detail))
}
