// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// ErrMissingToken is returned by RequireToken when no GitHub token is configured.
var ErrMissingToken = errors.New("github token is not set (STACKREPORT_GITHUB_TOKEN or GITHUB_TOKEN)")

// Config holds the application configuration loaded from environment variables.
type Config struct {
	GitHubToken  string
	GitHubAPIURL string // Empty for github.com.

	Command     string
	StackName   string
	EditComment bool
	OutputFile  string // Empty or "-" reads the report from stdin.
	PRNumber    int    // Overrides the event payload when > 0.
	LogLevel    slog.Level

	// GitHub Actions runner context.
	Repository string
	EventName  string
	EventPath  string

	// postErrs holds parse failures for settings only post consumes, so that
	// version and preview still run with a bad value in the environment.
	postErrs []error
}

// RequireToken returns ErrMissingToken when GitHubToken is empty. Only
// commands that call the GitHub API need a token.
func (c *Config) RequireToken() error {
	if c.GitHubToken == "" {
		return ErrMissingToken
	}
	return nil
}

// ValidatePost reports invalid STACKREPORT_EDIT_COMMENT or
// STACKREPORT_PR_NUMBER values found by Load.
func (c *Config) ValidatePost() error {
	return errors.Join(c.postErrs...)
}

// Load reads configuration from environment variables.
// The token comes from STACKREPORT_GITHUB_TOKEN, falling back to GITHUB_TOKEN.
// Optional variables with defaults: STACKREPORT_EDIT_COMMENT (true),
// STACKREPORT_LOG_LEVEL (info). Runner context is read from GITHUB_REPOSITORY,
// GITHUB_EVENT_NAME, GITHUB_EVENT_PATH and GITHUB_API_URL.
//
// An invalid log level fails Load. Invalid edit-comment or PR number values
// leave the defaults in place and are returned later by ValidatePost.
func Load() (*Config, error) {
	token := os.Getenv("STACKREPORT_GITHUB_TOKEN")
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}

	var postErrs []error

	editComment := true
	if v, ok := os.LookupEnv("STACKREPORT_EDIT_COMMENT"); ok && v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			postErrs = append(postErrs, fmt.Errorf("STACKREPORT_EDIT_COMMENT has invalid boolean %q: %w", v, err))
		} else {
			editComment = parsed
		}
	}

	var prNumber int
	if v, ok := os.LookupEnv("STACKREPORT_PR_NUMBER"); ok && v != "" {
		parsed, err := strconv.Atoi(v)
		switch {
		case err != nil:
			postErrs = append(postErrs, fmt.Errorf("STACKREPORT_PR_NUMBER has invalid number %q: %w", v, err))
		case parsed <= 0:
			postErrs = append(postErrs, fmt.Errorf("STACKREPORT_PR_NUMBER must be positive, got %d", parsed))
		default:
			prNumber = parsed
		}
	}

	logLevel := slog.LevelInfo
	if v, ok := os.LookupEnv("STACKREPORT_LOG_LEVEL"); ok && v != "" {
		if err := logLevel.UnmarshalText([]byte(strings.TrimSpace(v))); err != nil {
			return nil, fmt.Errorf("STACKREPORT_LOG_LEVEL has invalid level %q: %w", v, err)
		}
	}

	return &Config{
		GitHubToken:  token,
		GitHubAPIURL: os.Getenv("GITHUB_API_URL"),
		Command:      os.Getenv("STACKREPORT_COMMAND"),
		StackName:    os.Getenv("STACKREPORT_STACK_NAME"),
		EditComment:  editComment,
		OutputFile:   os.Getenv("STACKREPORT_OUTPUT_FILE"),
		PRNumber:     prNumber,
		LogLevel:     logLevel,
		Repository:   os.Getenv("GITHUB_REPOSITORY"),
		EventName:    os.Getenv("GITHUB_EVENT_NAME"),
		EventPath:    os.Getenv("GITHUB_EVENT_PATH"),
		postErrs:     postErrs,
	}, nil
}
