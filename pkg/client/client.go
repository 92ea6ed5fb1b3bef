package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HttpClient talks to a running wachat service. Redirects are never
// followed so callers can inspect the deep link in Location.
type HttpClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewHttpClient(baseURL string) *HttpClient {
	return &HttpClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

type Response struct {
	*http.Response
	Body []byte
}

func (r *Response) DecodeJSON(target any) error {
	return json.Unmarshal(r.Body, target)
}

// Location is the redirect target, empty for non-redirect responses.
func (r *Response) Location() string {
	return r.Header.Get("Location")
}

func (c *HttpClient) GET(path string) (*Response, error) {
	return c.do(context.Background(), http.MethodGet, path, nil, "")
}

// Open requests the auto-dispatch redirect for a raw number and timezone.
// Empty values are left out of the query.
func (c *HttpClient) Open(phoneNumber, timezone string) (*Response, error) {
	query := url.Values{}
	if phoneNumber != "" {
		query.Set("phoneNumber", phoneNumber)
	}
	if timezone != "" {
		query.Set("timezone", timezone)
	}
	return c.GET("/open?" + query.Encode())
}

// SubmitChat posts the manual chat form.
func (c *HttpClient) SubmitChat(phone string) (*Response, error) {
	form := url.Values{"phone": {phone}}
	return c.do(context.Background(), http.MethodPost, "/chat", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
}

func (c *HttpClient) do(ctx context.Context, method, path string, reqBody io.Reader, contentType string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		Response: resp,
		Body:     respBody,
	}, nil
}

func (c *HttpClient) WaitForReady(maxWait time.Duration) error {
	deadline := time.Now().Add(maxWait)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for time.Now().Before(deadline) {
		resp, err := c.HTTPClient.Get(c.BaseURL + "/ready")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return nil
		}
		if resp != nil {
			resp.Body.Close()
		}
		<-ticker.C
	}

	return fmt.Errorf("service did not become ready within %v", maxWait)
}

func GetErrorMessage(resp *Response) string {
	var errResp struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := resp.DecodeJSON(&errResp); err != nil {
		return fmt.Sprintf("failed to unmarshal error: %v", err)
	}

	if errResp.Error != "" {
		return errResp.Error
	}
	return errResp.Code
}
