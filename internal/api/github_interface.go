package api

import "context"

// GitHubClient defines the interface for GitHub API operations.
// This allows for easy mocking in tests.
type GitHubClient interface {
	ListOpenPullRequests(ctx context.Context, owner, repo string) ([]PullRequest, error)
	MergePullRequest(ctx context.Context, owner, repo string, number int) error
}

// Ensure GitHubAPI implements GitHubClient interface
var _ GitHubClient = (*GitHubAPI)(nil)
