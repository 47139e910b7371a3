package capybara

import "errors"

// Construction errors returned by [New].
var (
	ErrAPIKeyRequired    = errors.New("capybara: API key is required")
	ErrProjectIDRequired = errors.New("capybara: project ID is required")
)

// Environment errors returned by [NewFromEnv].
var (
	ErrAPIKeyNotFound    = errors.New("capybara: CAPYBARA_API_KEY environment variable not set")
	ErrProjectIDNotFound = errors.New("capybara: CAPYBARA_PROJECT_ID environment variable not set")
)

// Request validation errors returned by collection operations.
var (
	ErrNoDocuments = errors.New("capybara: insert requires at least one document")
	ErrEmptyQuery  = errors.New("capybara: query text cannot be empty")
)
