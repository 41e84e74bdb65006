package config

import (
	"errors"
	"strings"
)

// Config holds the process-wide settings for one run. It is populated
// from the YAML config file and overridden by command-line flags.
type Config struct {
	GitHub   GitHubConfig   `mapstructure:"github"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	Notifier NotifierConfig `mapstructure:"notifier"`
}

// GitHubConfig describes the repositories to check and the merge
// eligibility rules.
type GitHubConfig struct {
	// Token is an optional personal access token. Without a token
	// requests are unauthenticated and heavily rate limited.
	Token string `mapstructure:"token"`

	// Namespace is the GitHub owner (user or organization) all
	// repositories belong to.
	Namespace string `mapstructure:"namespace"`

	// Repositories are the repository names checked per pass.
	Repositories []string `mapstructure:"repositories"`

	// MergeMethod is "merge", "squash" or "rebase".
	MergeMethod string `mapstructure:"merge_method"`

	// RequiredLabels must all be present for a PR to be eligible.
	RequiredLabels []string `mapstructure:"required_labels"`

	// BlockingLabels exclude a PR regardless of approvals.
	BlockingLabels []string `mapstructure:"blocking_labels"`

	// Approvals is the minimum approval count. Zero means the default.
	Approvals int `mapstructure:"approvals"`
}

// GetMergeMethod returns the configured merge method, defaulting to
// "merge".
func (g GitHubConfig) GetMergeMethod() string {
	if g.MergeMethod == "" {
		return "merge"
	}
	return g.MergeMethod
}

// GetApprovals returns the configured approval threshold, defaulting
// to 2.
func (g GitHubConfig) GetApprovals() int {
	if g.Approvals <= 0 {
		return 2
	}
	return g.Approvals
}

// SMTPConfig describes the mail relay used for summary emails.
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// GetPort returns the configured SMTP port, defaulting to 25.
func (s SMTPConfig) GetPort() int {
	if s.Port <= 0 {
		return 25
	}
	return s.Port
}

// NotifierConfig configures the optional Apprise webhook transport.
type NotifierConfig struct {
	AppriseAPIURL     string `mapstructure:"apprise_api_url"`
	AppriseServiceURL string `mapstructure:"apprise_service_url"`
}

func (n NotifierConfig) GetServiceURLs() []string {
	if n.AppriseServiceURL == "" {
		return []string{}
	}
	parts := strings.Split(n.AppriseServiceURL, ",")
	urls := []string{}
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}
	return urls
}

// Validate checks the configuration before a pass runs.
func (c Config) Validate() error {
	if c.GitHub.Namespace == "" {
		return errors.New("github.namespace must be set")
	}
	if len(c.GitHub.Repositories) == 0 {
		return errors.New("github.repositories must name at least one repository")
	}
	if len(c.GitHub.RequiredLabels) == 0 {
		return errors.New("at least one required label must be specified")
	}
	if c.GitHub.Approvals < 0 {
		return errors.New("approvals must not be negative")
	}
	return nil
}
