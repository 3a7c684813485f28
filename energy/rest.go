package energy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL points at the Materials Project legacy REST API.
	DefaultBaseURL = "https://legacy.materialsproject.org/rest/v2"

	// DefaultTimeout bounds a single lookup request.
	DefaultTimeout = 30 * time.Second
)

// RESTClientOption configures a RESTClient.
type RESTClientOption func(*RESTClient)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(httpClient *http.Client) RESTClientOption {
	return func(c *RESTClient) {
		c.httpClient = httpClient
	}
}

// WithBaseURL points the client at a different endpoint, e.g. a mirror or a
// test server.
func WithBaseURL(baseURL string) RESTClientOption {
	return func(c *RESTClient) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithRateLimit replaces the default request rate limit.
func WithRateLimit(requestsPerSecond float64, burst int) RESTClientOption {
	return func(c *RESTClient) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

// RESTClient implements Client against a Materials-Project-style REST API.
//
// Requests are rate limited client-side. Each lookup is a single attempt;
// there is no retry policy.
type RESTClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
}

var _ Client = (*RESTClient)(nil)

// NewRESTClient creates a client authenticating with apiKey.
func NewRESTClient(apiKey string, optFns ...RESTClientOption) *RESTClient {
	c := &RESTClient{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Limit(5), 5),
	}

	for _, fn := range optFns {
		fn(c)
	}

	return c
}

type lookupResponse struct {
	Valid    bool        `json:"valid_response"`
	Error    string      `json:"error"`
	Response []Candidate `json:"response"`
}

// Lookup implements the Client interface. An empty candidate list is a valid
// result, not an error.
func (c *RESTClient) Lookup(ctx context.Context, formula string) ([]Candidate, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/materials/%s/vasp", c.baseURL, url.PathEscape(formula))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		return nil, &ErrUnexpectedStatus{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var parsed lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	if !parsed.Valid {
		return nil, &ErrInvalidResponse{Message: parsed.Error}
	}

	return parsed.Response, nil
}
