package diario

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/coolbeans/gazeta/pkg/logger"
	"github.com/coolbeans/gazeta/pkg/normalize"
)

// DefaultUserAgent is the default User-Agent header sent with archive requests.
const DefaultUserAgent = "gazeta-diario-client/1.0"

// ClientConfig holds configuration for a Client.
type ClientConfig struct {
	// BaseURL is the root of the gazette archive.
	// Default: DefaultBaseURL.
	BaseURL string

	// RequestsPerSecond caps the request rate against the archive.
	// Default: 1.
	RequestsPerSecond float64

	// MaxRetries is the number of additional attempts after a transient
	// failure (network error or 5xx). Default: 3.
	MaxRetries int

	// RetryDelay is the base delay between retries, doubled per attempt.
	// Default: 2 seconds.
	RetryDelay time.Duration

	// HTTPClient is the underlying HTTP client used for requests.
	// If nil, a client with a 60 second timeout is used.
	HTTPClient *http.Client

	// UserAgent is the User-Agent header sent with requests.
	// Default: "gazeta-diario-client/1.0".
	UserAgent string

	// Cache stores fetched editions, including negative results for dates
	// without a published edition. If nil, no caching is done.
	Cache *DiskCache
}

// DefaultConfig returns a ClientConfig with sensible defaults.
func DefaultConfig() ClientConfig {
	return ClientConfig{
		BaseURL:           DefaultBaseURL,
		RequestsPerSecond: 1,
		MaxRetries:        3,
		RetryDelay:        2 * time.Second,
		UserAgent:         DefaultUserAgent,
	}
}

// Client fetches daily editions from the gazette archive with rate limiting,
// retries, and optional disk caching.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxRetries int
	retryDelay time.Duration
	userAgent  string
	cache      *DiskCache
}

// NewClient creates a new archive client with the given configuration.
func NewClient(config ClientConfig) *Client {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}

	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	maxRetries := config.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	retryDelay := config.RetryDelay
	if retryDelay <= 0 {
		retryDelay = 2 * time.Second
	}

	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		userAgent:  userAgent,
		cache:      config.Cache,
	}
}

// FetchEdition fetches the edition for the given date and returns its
// normalized text. The second return value reports whether an edition was
// published for the date: a 404 from the archive means "no edition" and is
// not an error. A downloaded edition whose PDF cannot be parsed is reported
// as absent, with a warning, rather than failing the run.
func (client *Client) FetchEdition(ctx context.Context, date time.Time) (string, bool, error) {
	editionURL := EditionURL(client.baseURL, date)

	if client.cache != nil {
		if cached, ok := client.cache.Get(editionURL); ok {
			logger.Debug("cache hit for %s", editionURL)
			return cached.Text, cached.Found, nil
		}
	}

	content, found, err := client.download(ctx, editionURL)
	if err != nil {
		return "", false, err
	}
	if !found {
		logger.Debug("no edition published at %s", editionURL)
		client.store(editionURL, EditionResult{Found: false})
		return "", false, nil
	}

	text, err := ExtractText(content)
	if err != nil {
		logger.Warn("unreadable PDF at %s: %v", editionURL, err)
		client.store(editionURL, EditionResult{Found: false})
		return "", false, nil
	}
	text = normalize.Text(text)

	client.store(editionURL, EditionResult{Found: true, Text: text})
	return text, true, nil
}

// download performs the rate-limited GET with retries. Network errors and
// 5xx responses are retried with exponential backoff; a 404 is a definitive
// negative answer and returns immediately.
func (client *Client) download(ctx context.Context, editionURL string) ([]byte, bool, error) {
	var lastErr error

	for attempt := 0; attempt <= client.maxRetries; attempt++ {
		if attempt > 0 {
			delay := client.retryDelay * time.Duration(1<<(attempt-1))
			logger.Debug("retrying %s in %s (attempt %d/%d)",
				editionURL, delay, attempt, client.maxRetries)
			select {
			case <-ctx.Done():
				return nil, false, ctx.Err()
			case <-time.After(delay):
			}
		}

		if err := client.limiter.Wait(ctx); err != nil {
			return nil, false, err
		}

		request, err := http.NewRequestWithContext(ctx, http.MethodGet, editionURL, nil)
		if err != nil {
			return nil, false, fmt.Errorf("creating request for %s: %w", editionURL, err)
		}
		request.Header.Set("User-Agent", client.userAgent)

		response, err := client.httpClient.Do(request)
		if err != nil {
			lastErr = fmt.Errorf("fetching %s: %w", editionURL, err)
			continue
		}

		switch {
		case response.StatusCode == http.StatusNotFound:
			response.Body.Close()
			return nil, false, nil

		case response.StatusCode >= 500:
			response.Body.Close()
			lastErr = fmt.Errorf("fetching %s: server returned %d", editionURL, response.StatusCode)
			continue

		case response.StatusCode != http.StatusOK:
			response.Body.Close()
			return nil, false, fmt.Errorf("fetching %s: unexpected status %d", editionURL, response.StatusCode)
		}

		content, err := io.ReadAll(response.Body)
		response.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("reading %s: %w", editionURL, err)
			continue
		}

		return content, true, nil
	}

	return nil, false, fmt.Errorf("all %d attempts failed: %w", client.maxRetries+1, lastErr)
}

func (client *Client) store(editionURL string, result EditionResult) {
	if client.cache == nil {
		return
	}
	if err := client.cache.Set(editionURL, result); err != nil {
		logger.Warn("caching %s: %v", editionURL, err)
	}
}
