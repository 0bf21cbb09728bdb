package secrets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	kerrors "github.com/PolarWolf314/envault/internal/errors"
	logger "github.com/PolarWolf314/envault/internal/logging"

	"github.com/hashicorp/go-cleanhttp"
)

const (
	// DefaultUserAgent identifies the client explicitly. Services fronted by
	// bot protection reject the Go default user agent.
	DefaultUserAgent = "Envault-CLI/v0.1.0"

	// MissingAPIKey is sent when the API key environment variable is unset.
	MissingAPIKey = "unknown"

	maxResponseBody = 10 * 1024 * 1024
)

// FetchError describes a non-2xx response from the variable service.
type FetchError struct {
	StatusCode int
	Body       string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("http error: %d", e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return kerrors.ErrFetchFailed
}

// Result is the outcome of a fetch started with Start.
type Result struct {
	Vars map[string]string
	Err  error
}

// Client requests variable values from an envault service.
type Client struct {
	HTTP      *http.Client
	UserAgent string
	Logger    logger.Logger

	// LookupEnv resolves the API key variable; os.LookupEnv when nil.
	LookupEnv func(string) (string, bool)
}

// NewClient returns a Client using a pooled cleanhttp client. A zero
// timeout leaves the client without a deadline.
func NewClient(timeout time.Duration, log logger.Logger) *Client {
	httpClient := cleanhttp.DefaultPooledClient()
	if timeout > 0 {
		httpClient.Timeout = timeout
	}
	return &Client{
		HTTP:      httpClient,
		UserAgent: DefaultUserAgent,
		Logger:    log,
	}
}

// LoadURL returns the load endpoint for a config URL by appending "load"
// to its path, adding a separating slash only when one is missing.
func LoadURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", raw, err)
	}

	path := u.Path
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	u.Path = path + "load"
	u.RawPath = ""

	return u.String(), nil
}

// Fetch posts the config's variable specs to the service and returns the
// resulting variables. The returned keys need not match the specs.
func (c *Client) Fetch(ctx context.Context, cfg *Config) (map[string]string, error) {
	endpoint, err := LoadURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrFetchFailed, err)
	}

	c.Logger.Debugf("Making key request with '%s' via '%s'", cfg.APIKeyName, endpoint)
	c.Logger.Debugf("Keys requested: %s", strings.Join(cfg.Vars, ", "))

	apiKey, ok := c.lookupEnv(cfg.APIKeyName)
	if !ok {
		c.Logger.WarnfAlways("environment variable %s is not set; using '%s' as the API key", cfg.APIKeyName, MissingAPIKey)
		apiKey = MissingAPIKey
	}

	vars := cfg.Vars
	if vars == nil {
		vars = []string{}
	}
	body, err := json.Marshal(vars)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding request: %v", kerrors.ErrFetchFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrFetchFailed, err)
	}
	req.Header.Set("api-key", apiKey)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("User-Agent", c.userAgent())

	resp, err := c.httpClient().Do(req)
	if err != nil {
		c.Logger.Errorf("url error: %v", err)
		return nil, fmt.Errorf("%w: %v", kerrors.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", kerrors.ErrFetchFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.Logger.Errorf("http error: %d", resp.StatusCode)
		// The error body is sometimes but not always JSON; keep it verbatim.
		c.Logger.Errorf("%s", string(respBody))
		return nil, &FetchError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	result, err := decodeVariables(respBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrFetchFailed, err)
	}
	return result, nil
}

// Start runs Fetch on its own goroutine. Exactly one Result is delivered on
// the returned channel, which never blocks the worker.
func (c *Client) Start(ctx context.Context, cfg *Config) <-chan Result {
	results := make(chan Result, 1)
	go func() {
		vars, err := c.Fetch(ctx, cfg)
		results <- Result{Vars: vars, Err: err}
	}()
	return results
}

func (c *Client) lookupEnv(name string) (string, bool) {
	if c.LookupEnv != nil {
		return c.LookupEnv(name)
	}
	return os.LookupEnv(name)
}

func (c *Client) userAgent() string {
	if c.UserAgent == "" {
		return DefaultUserAgent
	}
	return c.UserAgent
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		return cleanhttp.DefaultPooledClient()
	}
	return c.HTTP
}

// decodeVariables decodes a JSON object of variable names to values.
// Non-string scalars are formatted, null becomes "", and nested values are
// kept as their JSON encoding.
func decodeVariables(data []byte) (map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("response is not a JSON object: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("response is not a JSON object")
	}

	vars := make(map[string]string, len(raw))
	for name, value := range raw {
		switch v := value.(type) {
		case string:
			vars[name] = v
		case json.Number:
			vars[name] = v.String()
		case bool:
			vars[name] = strconv.FormatBool(v)
		case nil:
			vars[name] = ""
		default:
			encoded, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("variable %s: %w", name, err)
			}
			vars[name] = string(encoded)
		}
	}
	return vars, nil
}
