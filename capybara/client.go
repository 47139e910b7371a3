package capybara

import (
	"net/http"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Client is the entry point for talking to CapybaraDB.
// Client is safe for concurrent use.
type Client struct {
	config Config
}

// New creates a new client with the given API key, project ID, and options.
func New(apiKey, projectID string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyRequired
	}
	if projectID == "" {
		return nil, ErrProjectIDRequired
	}

	cfg := Config{
		APIKey:     NewSecret(apiKey),
		ProjectID:  projectID,
		BaseURL:    DefaultBaseURL,
		HTTPClient: http.DefaultClient,
		Telemetry:  NoopTelemetryHook{},
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return &Client{config: cfg}, nil
}

// envConfig maps the CAPYBARA_* environment variables.
type envConfig struct {
	APIKey    string        `envconfig:"CAPYBARA_API_KEY"`
	ProjectID string        `envconfig:"CAPYBARA_PROJECT_ID"`
	BaseURL   string        `envconfig:"CAPYBARA_BASE_URL"`
	Timeout   time.Duration `envconfig:"CAPYBARA_TIMEOUT"`
}

// NewFromEnv creates a new client from the CAPYBARA_API_KEY and
// CAPYBARA_PROJECT_ID environment variables. CAPYBARA_BASE_URL and
// CAPYBARA_TIMEOUT are honored when set; explicit options take
// precedence over the environment.
//
//	client, err := capybara.NewFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewFromEnv(opts ...Option) (*Client, error) {
	var env envConfig
	if err := envconfig.Process("", &env); err != nil {
		return nil, err
	}
	if env.APIKey == "" {
		return nil, ErrAPIKeyNotFound
	}
	if env.ProjectID == "" {
		return nil, ErrProjectIDNotFound
	}

	var envOpts []Option
	if env.BaseURL != "" {
		envOpts = append(envOpts, WithBaseURL(env.BaseURL))
	}
	if env.Timeout > 0 {
		envOpts = append(envOpts, WithTimeout(env.Timeout))
	}

	return New(env.APIKey, env.ProjectID, append(envOpts, opts...)...)
}

// ProjectID returns the configured project ID.
func (c *Client) ProjectID() string {
	return c.config.ProjectID
}

// Database returns a handle on the named database. No request is made;
// CapybaraDB creates databases lazily on first write.
func (c *Client) Database(name string) *Database {
	return &Database{client: c, name: name}
}

// buildHeaders constructs the HTTP headers for an API request.
func (c *Client) buildHeaders() http.Header {
	headers := make(http.Header)

	// Required headers
	headers.Set("Authorization", "Bearer "+c.config.APIKey.Expose())
	headers.Set("Content-Type", "application/json")

	// Copy any extra headers
	for key, values := range c.config.Headers {
		for _, v := range values {
			headers.Add(key, v)
		}
	}

	return headers
}

// Database is a handle on a named CapybaraDB database.
type Database struct {
	client *Client
	name   string
}

// Name returns the database name.
func (d *Database) Name() string {
	return d.name
}

// Collection returns a handle on the named collection. No request is
// made; collections are created lazily on first write.
func (d *Database) Collection(name string) *Collection {
	return &Collection{client: d.client, database: d.name, name: name}
}
