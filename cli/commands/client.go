package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/capybaradb/capybaradb-go/capybara"
	"github.com/capybaradb/capybaradb-go/cli/keystore"
	"github.com/capybaradb/capybaradb-go/core"
)

// Exit codes
const (
	ExitSuccess    = 0
	ExitValidation = 1
	ExitAPI        = 2
	ExitNetwork    = 3
)

// defaultKeyName is the keystore entry used when no name is given.
const defaultKeyName = "default"

// newClient builds a capybara client from the loaded config, the
// environment, and the keystore.
func newClient() (*capybara.Client, error) {
	apiKey, err := resolveAPIKey()
	if err != nil {
		return nil, exitWithCode(ExitValidation, err)
	}

	projectID := os.Getenv("CAPYBARA_PROJECT_ID")
	if c := GetConfig(); c != nil && c.ProjectID != "" {
		projectID = c.ProjectID
	}
	if projectID == "" {
		return nil, exitWithCode(ExitValidation,
			fmt.Errorf("project ID required: set project_id in config or CAPYBARA_PROJECT_ID"))
	}

	var opts []capybara.Option
	if c := GetConfig(); c != nil && c.BaseURL != "" {
		opts = append(opts, capybara.WithBaseURL(c.BaseURL))
	}

	client, err := capybara.New(apiKey, projectID, opts...)
	if err != nil {
		return nil, exitWithCode(ExitValidation, err)
	}

	if IsVerbose() {
		fmt.Fprintf(os.Stderr, "project: %s, db: %s, collection: %s\n",
			projectID, GetDatabase(), GetCollection())
	}

	return client, nil
}

// resolveAPIKey looks up the API key: a config-named environment
// variable first, then CAPYBARA_API_KEY, then the keystore.
func resolveAPIKey() (string, error) {
	if c := GetConfig(); c != nil && c.APIKeyEnv != "" {
		if key := os.Getenv(c.APIKeyEnv); key != "" {
			return key, nil
		}
	}

	if key := os.Getenv("CAPYBARA_API_KEY"); key != "" {
		return key, nil
	}

	ks, err := keystore.NewKeystore()
	if err != nil {
		return "", fmt.Errorf("failed to open keystore: %w", err)
	}

	key, err := ks.Get(defaultKeyName)
	if err != nil {
		if _, ok := err.(*keystore.ErrKeyNotFound); ok {
			return "", fmt.Errorf("no API key found: run 'capy keys set' or set CAPYBARA_API_KEY")
		}
		return "", fmt.Errorf("failed to get API key: %w", err)
	}
	return key, nil
}

// requireTarget validates that --db and --collection are set, directly
// or via config defaults.
func requireTarget() error {
	if GetDatabase() == "" {
		return exitWithCode(ExitValidation,
			fmt.Errorf("database required: use --db flag or set default_database in config"))
	}
	if GetCollection() == "" {
		return exitWithCode(ExitValidation,
			fmt.Errorf("collection required: use --collection flag or set default_collection in config"))
	}
	return nil
}

func handleAPIError(err error) error {
	var apiErr *core.APIError
	if errors.As(err, &apiErr) {
		if IsJSONOutput() {
			outputErrorJSON(apiErr)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s (status %d)\n", apiErr.Message, apiErr.StatusCode)
		}

		// Determine exit code based on error type
		if errors.Is(err, core.ErrNetwork) {
			return exitWithCode(ExitNetwork, err)
		}
		return exitWithCode(ExitAPI, err)
	}

	// Network errors
	if errors.Is(err, core.ErrNetwork) {
		if IsJSONOutput() {
			outputSimpleErrorJSON("network_error", err.Error())
		} else {
			fmt.Fprintf(os.Stderr, "Error: network error: %v\n", err)
		}
		return exitWithCode(ExitNetwork, err)
	}

	// Validation errors
	var valErr *core.ValidationError
	if errors.As(err, &valErr) || errors.Is(err, capybara.ErrNoDocuments) || errors.Is(err, capybara.ErrEmptyQuery) {
		if IsJSONOutput() {
			outputSimpleErrorJSON("validation_error", err.Error())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return exitWithCode(ExitValidation, err)
	}

	// Generic error
	if IsJSONOutput() {
		outputSimpleErrorJSON("error", err.Error())
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return exitWithCode(ExitAPI, err)
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func outputErrorJSON(apiErr *core.APIError) {
	output := map[string]interface{}{
		"error": map[string]interface{}{
			"status":  apiErr.StatusCode,
			"message": apiErr.Message,
		},
	}

	enc := json.NewEncoder(os.Stderr)
	enc.SetIndent("", "  ")
	enc.Encode(output)
}

func outputSimpleErrorJSON(errType, message string) {
	output := map[string]interface{}{
		"error": map[string]interface{}{
			"type":    errType,
			"message": message,
		},
	}

	enc := json.NewEncoder(os.Stderr)
	enc.SetIndent("", "  ")
	enc.Encode(output)
}

// exitError wraps an error with an exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) ExitCode() int {
	return e.code
}

func exitWithCode(code int, err error) error {
	return &exitError{code: code, err: err}
}
