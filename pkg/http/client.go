package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"

	"github.com/kobopay/bvn-bulk-service/internal/log"
)

// NewClientWithRetry returns a client with retry behavior and an overall
// request timeout covering all attempts.
func NewClientWithRetry(timeout time.Duration) *Client {
	return NewClient(http.Client{
		Timeout: timeout,
		Transport: &retryablehttp.RoundTripper{
			Client: retryablehttp.NewClient(),
		},
	})
}

// Response carries the status code and raw body of an http exchange. Callers
// that need to branch on the status code use DoPost instead of Post.
type Response struct {
	StatusCode int
	Body       []byte
}

// Client represents default http client that can be used to send requests to third party services
type Client struct {
	base http.Client
}

// NewClient returns new instance of custom client
func NewClient(c http.Client) *Client {
	return &Client{
		base: c,
	}
}

// Post sends a post request to url with additional headers. Any response with a
// status other than 200 is returned as an error.
func (c *Client) Post(ctx context.Context, url string, req []byte, headers map[string]string) ([]byte, error) {
	resp, err := c.DoPost(ctx, url, req, headers)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("http request failed with status %v, error: %v", resp.StatusCode, string(resp.Body))
	}
	return resp.Body, nil
}

// DoPost sends a post request to url and returns the status code and body
// untouched, so callers can classify non-200 replies themselves.
func (c *Client) DoPost(ctx context.Context, url string, req []byte, headers map[string]string) (*Response, error) {
	reqBody := bytes.NewBuffer(req)

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, reqBody)
	if err != nil {
		return nil, err
	}

	addRequestIDToHeader(ctx, request)
	for k, v := range headers {
		request.Header.Set(k, v)
	}

	return executeRequest(ctx, c, request)
}

// Get sends a request to url with requestID headers
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url,
		http.NoBody)
	if err != nil {
		return nil, err
	}

	addRequestIDToHeader(ctx, req)

	resp, err := executeRequest(ctx, c, req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("http request failed with status %v, error: %v", resp.StatusCode, string(resp.Body))
	}
	return resp.Body, nil
}

// addRequestIDToHeader adds headers to request
func addRequestIDToHeader(ctx context.Context, r *http.Request) {
	requestID := middleware.GetReqID(ctx)

	r.Header.Add("Content-Type", "application/json")
	r.Header.Add(middleware.RequestIDHeader, requestID)
}

// executeRequest contains common logic of request execution
func executeRequest(ctx context.Context, c *Client, r *http.Request) (*Response, error) {
	resp, err := c.base.Do(r)
	if err != nil {
		return nil, err
	}

	defer func() {
		err := resp.Body.Close()
		if err != nil {
			log.Error(ctx, "can not close body", "err", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}
