// Package client provides an HTTP client for the VMS REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/phawaaz/vmsync/internal/visit"
)

// ErrMalformedResponse indicates the server answered 2xx but the body did
// not contain the expected shape. Treated as a hard error so integration
// breakage is not masked as an empty account.
var ErrMalformedResponse = errors.New("malformed server response")

// Client is an HTTP client for the VMS API. The bearer token is supplied
// per call because it lives in the session store, not in the client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetTransport replaces the underlying transport. Used to install the
// request-logging round tripper in debug mode.
func (c *Client) SetTransport(rt http.RoundTripper) {
	c.httpClient.Transport = rt
}

// Summary is the decoded payload of GET /api/visitors/summary.
type Summary struct {
	VisitSummary       []visit.RawVisit
	UpcomingVisitsList []visit.RawVisit
}

// summaryEnvelope covers both envelope variants the backend sends: the
// collections either sit under a "data" key or at the top level.
type summaryEnvelope struct {
	Data               json.RawMessage `json:"data"`
	VisitSummary       json.RawMessage `json:"visitSummary"`
	UpcomingVisitsList json.RawMessage `json:"upcomingVisitsList"`
}

// FetchSummary retrieves the authenticated user's visit summary.
// A 2xx response without a visitSummary array is ErrMalformedResponse.
func (c *Client) FetchSummary(ctx context.Context, token string) (*Summary, error) {
	body, err := c.do(ctx, token, http.MethodGet, "/api/visitors/summary", nil)
	if err != nil {
		return nil, err
	}

	var env summaryEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(env.Data) > 0 && string(env.Data) != "null" {
		var nested summaryEnvelope
		if err := json.Unmarshal(env.Data, &nested); err != nil {
			return nil, fmt.Errorf("%w: decoding data envelope: %v", ErrMalformedResponse, err)
		}
		env = nested
	}

	if len(env.VisitSummary) == 0 || string(env.VisitSummary) == "null" {
		return nil, fmt.Errorf("%w: missing visitSummary array", ErrMalformedResponse)
	}

	var summary Summary
	if err := json.Unmarshal(env.VisitSummary, &summary.VisitSummary); err != nil {
		return nil, fmt.Errorf("%w: visitSummary is not an array: %v", ErrMalformedResponse, err)
	}
	if len(env.UpcomingVisitsList) > 0 && string(env.UpcomingVisitsList) != "null" {
		if err := json.Unmarshal(env.UpcomingVisitsList, &summary.UpcomingVisitsList); err != nil {
			return nil, fmt.Errorf("%w: upcomingVisitsList is not an array: %v", ErrMalformedResponse, err)
		}
	}

	return &summary, nil
}

// VisitRequester is the identity snapshot embedded in a visit creation
// payload, matching what the backend stores on the visit record.
type VisitRequester struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Phone     string `json:"phone"`
	Photo     string `json:"photo"`
	IsActive  bool   `json:"isActive"`
	LastLogin string `json:"lastLogin"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt"`
}

// CreateVisitRequest is the body of POST /api/visitors.
type CreateVisitRequest struct {
	User             VisitRequester `json:"user"`
	Purpose          string         `json:"purpose"`
	VisitDate        string         `json:"visitDate"`
	ExpectedDuration int            `json:"expectedDuration"`
	Company          string         `json:"company"`
	Notes            string         `json:"notes"`
	Status           string         `json:"status"`
}

// CreateVisit submits a new visit request.
func (c *Client) CreateVisit(ctx context.Context, token string, req CreateVisitRequest) error {
	_, err := c.do(ctx, token, http.MethodPost, "/api/visitors", req)
	return err
}

// do executes a request with the bearer token and returns the raw body.
// Non-2xx responses surface the server's message verbatim when present.
func (c *Client) do(ctx context.Context, token, method, path string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			fmt.Printf("warning: closing response body: %v\n", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, decodeServerError(respBody, resp.StatusCode)
	}

	return respBody, nil
}

// decodeServerError extracts the failure envelope {message} or the
// validation envelope {errors: [{msg}]}, falling back to HTTP status text.
func decodeServerError(body []byte, status int) error {
	var errResp struct {
		Message string `json:"message"`
		Errors  []struct {
			Msg string `json:"msg"`
		} `json:"errors"`
	}
	if json.Unmarshal(body, &errResp) == nil {
		if len(errResp.Errors) > 0 {
			msgs := make([]string, 0, len(errResp.Errors))
			for _, e := range errResp.Errors {
				if e.Msg != "" {
					msgs = append(msgs, e.Msg)
				}
			}
			if len(msgs) > 0 {
				return fmt.Errorf("%s", strings.Join(msgs, "; "))
			}
		}
		if errResp.Message != "" {
			return fmt.Errorf("%s", errResp.Message)
		}
	}
	return fmt.Errorf("server error: %s", http.StatusText(status))
}
