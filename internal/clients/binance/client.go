// Package binance provides a client for the Binance REST API
package binance

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/cryptofolio/internal/common"
	"github.com/bobmcallan/cryptofolio/internal/interfaces"
)

const (
	DefaultBaseURL        = "https://api.binance.com"
	DefaultFuturesBaseURL = "https://fapi.binance.com"
	DefaultTimeout        = 30 * time.Second
	DefaultRateLimit      = 10 // requests per second

	apiKeyHeader = "X-MBX-APIKEY"
)

// stringFloat handles JSON values that may be either a number or a
// decimal string. Binance quantity and price fields arrive as strings.
type stringFloat float64

func (f *stringFloat) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = stringFloat(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			*f = 0
			return nil
		}
		num, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = stringFloat(num)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into float64", string(data))
}

// Client implements the BinanceClient interface
type Client struct {
	baseURL        string
	futuresBaseURL string
	apiKey         string
	apiSecret      string
	httpClient     *http.Client
	logger         *common.Logger
	limiter        *rate.Limiter

	// now is swapped out in tests to pin the signing timestamp.
	now func() time.Time
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the spot-market base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithFuturesBaseURL sets the derivatives-market base URL
func WithFuturesBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.futuresBaseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Binance client. Empty credentials produce a
// client limited to public market-data endpoints.
func NewClient(apiKey, apiSecret string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:        DefaultBaseURL,
		futuresBaseURL: DefaultFuturesBaseURL,
		apiKey:         apiKey,
		apiSecret:      apiSecret,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// HasCredentials reports whether signed endpoints are usable.
func (c *Client) HasCredentials() bool {
	return c.apiKey != "" && c.apiSecret != ""
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Binance API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// ErrNoCredentials is returned when a signed endpoint is called on a
// client constructed without API credentials.
var ErrNoCredentials = fmt.Errorf("binance: no API credentials configured")

// sign computes the HMAC-SHA256 signature over the raw query string.
func (c *Client) sign(queryString string) string {
	mac := hmac.New(sha256.New, []byte(c.apiSecret))
	mac.Write([]byte(queryString))
	return hex.EncodeToString(mac.Sum(nil))
}

// get performs a rate-limited GET against a base URL and decodes the
// JSON response. When signed is true, a millisecond timestamp is added
// and the query string is HMAC-signed with the shared secret.
func (c *Client) get(ctx context.Context, base, path string, params url.Values, signed bool, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}

	query := params.Encode()
	if signed {
		if !c.HasCredentials() {
			return ErrNoCredentials
		}
		timestamp := strconv.FormatInt(c.now().UnixMilli(), 10)
		if query != "" {
			query += "&"
		}
		query += "timestamp=" + timestamp
		query += "&signature=" + c.sign(query)
	}

	reqURL := base + path
	if query != "" {
		reqURL += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if signed {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	c.logger.Debug().Str("path", path).Bool("signed", signed).Msg("Binance API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// Ensure Client implements BinanceClient
var _ interfaces.BinanceClient = (*Client)(nil)
