// Package httpapi implements the Transport boundary over the collector's
// HTTP ingestion API. One batch maps to one POST of a JSON array; failure
// classification (transient vs. permanent) happens here so the dispatcher
// stays protocol-agnostic.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hyp3rd/ewrap"

	"github.com/neurallog/neurallog-go"
	"github.com/neurallog/neurallog-go/internal/constants"
)

// maxErrorBodyBytes caps how much of an error response body is read for
// diagnostics.
const maxErrorBodyBytes = 4096

// Client ships record payloads to the collector over HTTP.
type Client struct {
	baseURL    string
	namespace  string
	headers    map[string]string
	httpClient *http.Client
}

// NewClient creates a transport client from the SDK configuration. The
// configuration must already be validated.
func NewClient(config *neurallog.Config) (*Client, error) {
	if config == nil {
		return nil, neurallog.ErrNilConfig
	}

	headers := map[string]string{
		constants.ContentTypeHeader: constants.ContentTypeJSON,
		constants.AcceptHeader:      constants.ContentTypeJSON,
	}

	if config.APIKey != "" {
		headers[constants.APIKeyHeader] = config.APIKey
	}

	for key, value := range config.Headers {
		headers[key] = value
	}

	return &Client{
		baseURL:   strings.TrimRight(config.ServerURL, "/"),
		namespace: config.Namespace,
		headers:   headers,
		httpClient: &http.Client{
			Timeout: config.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        config.MaxConnections,
				MaxIdleConnsPerHost: config.MaxConnections,
			},
		},
	}, nil
}

// Send delivers a batch as one request body containing the records in
// insertion order.
func (c *Client) Send(ctx context.Context, batch *neurallog.Batch) error {
	body, err := json.Marshal(batch.Records)
	if err != nil {
		return neurallog.NewPermanentError("encoding batch payload", err)
	}

	return c.post(ctx, c.batchURL(batch.LoggerName), body)
}

// SendRecord delivers a single record to the per-record endpoint. It is used
// when asynchronous delivery is disabled.
func (c *Client) SendRecord(ctx context.Context, loggerName string, record neurallog.Record) error {
	body, err := json.Marshal(record)
	if err != nil {
		return neurallog.NewPermanentError("encoding record payload", err)
	}

	return c.post(ctx, c.logURL(loggerName), body)
}

// logURL returns the single-record ingestion endpoint for a log stream. The
// default namespace is omitted from the path.
func (c *Client) logURL(loggerName string) string {
	segments := []string{constants.LogsPathSegment, url.PathEscape(loggerName)}
	if c.namespace != "" && c.namespace != neurallog.DefaultNamespace {
		segments = append([]string{url.PathEscape(c.namespace)}, segments...)
	}

	return c.baseURL + "/" + strings.Join(segments, "/")
}

// batchURL returns the batch ingestion endpoint for a log stream.
func (c *Client) batchURL(loggerName string) string {
	return c.logURL(loggerName) + "/" + constants.BatchPathSegment
}

func (c *Client) post(ctx context.Context, endpoint string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return neurallog.NewPermanentError("building request", err)
	}

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return neurallog.NewTransientError("request cancelled", ctx.Err())
		}

		return neurallog.NewTransientError("sending request", err)
	}

	defer resp.Body.Close()

	return classifyResponse(resp)
}

// classifyResponse maps an HTTP response to a delivery outcome: 2xx is
// success, 5xx and retriable 4xx are transient, everything else permanent.
func classifyResponse(resp *http.Response) error {
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)

		return nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	reason := "collector returned status " + strconv.Itoa(resp.StatusCode)

	var cause error
	if body := strings.TrimSpace(string(snippet)); body != "" {
		cause = ewrap.New(body)
	}

	transportErr := neurallog.NewPermanentError(reason, cause)
	if isRetriableStatus(resp.StatusCode) {
		transportErr = neurallog.NewTransientError(reason, cause)
	}

	transportErr.Status = resp.StatusCode

	return transportErr
}

func isRetriableStatus(status int) bool {
	switch {
	case status >= http.StatusInternalServerError:
		return true
	case status == http.StatusRequestTimeout, status == http.StatusTooManyRequests:
		return true
	default:
		return false
	}
}
