package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v68/github"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// PullRequest is an immutable snapshot of the pull request fields the
// merge checker cares about, rebuilt fresh on every pass.
type PullRequest struct {
	// Repository is the "owner/name" slug the pull request belongs to.
	Repository string

	// Number is the PR number (e.g., #123)
	Number int

	// Title is the PR title
	Title string

	// Labels holds the names of all labels currently attached.
	Labels []string

	// Approvals is the number of reviews in state APPROVED.
	Approvals int

	// SourceBranch and TargetBranch are the head and base refs.
	SourceBranch string
	TargetBranch string

	// HTMLURL is the web URL to view the PR
	HTMLURL string
}

// Slug returns the "owner/name#number" identifier used in logs and
// reports.
func (p PullRequest) Slug() string {
	return fmt.Sprintf("%s#%d", p.Repository, p.Number)
}

// GitHubAPI is a client for the GitHub REST API built on go-github.
// It handles authentication via personal access tokens and provides the
// pull request listing and merge operations the checker needs.
type GitHubAPI struct {
	client      *github.Client
	mergeMethod string
	logger      zerolog.Logger
}

// NewGitHubAPI creates a GitHub API client. The token is optional; with
// an empty token the client makes unauthenticated requests and is
// limited to 60 requests/hour instead of 5000.
func NewGitHubAPI(ctx context.Context, token, mergeMethod string, logger zerolog.Logger) *GitHubAPI {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, ts)
	}

	if mergeMethod == "" {
		mergeMethod = "merge"
	}

	return &GitHubAPI{
		client:      github.NewClient(httpClient),
		mergeMethod: mergeMethod,
		logger:      logger,
	}
}

// WithBaseURL points the client at a different API endpoint, e.g. a
// GitHub Enterprise instance or a test server.
func (g *GitHubAPI) WithBaseURL(baseURL string) (*GitHubAPI, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	g.client.BaseURL = parsed
	return g, nil
}

// ListOpenPullRequests fetches all open pull requests for a repository
// together with their labels and approval counts. Draft pull requests
// are skipped. Results preserve the order GitHub returned them in.
func (g *GitHubAPI) ListOpenPullRequests(ctx context.Context, owner, repo string) ([]PullRequest, error) {
	opt := &github.PullRequestListOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var prs []PullRequest
	for {
		page, resp, err := g.client.PullRequests.List(ctx, owner, repo, opt)
		if err != nil {
			return nil, &FetchError{Repository: owner + "/" + repo, Err: err}
		}

		for _, pr := range page {
			if pr.GetDraft() {
				g.logger.Debug().Int("number", pr.GetNumber()).Msg("skipping draft pull request")
				continue
			}

			approvals, err := g.countApprovals(ctx, owner, repo, pr.GetNumber())
			if err != nil {
				return nil, err
			}

			prs = append(prs, PullRequest{
				Repository:   owner + "/" + repo,
				Number:       pr.GetNumber(),
				Title:        pr.GetTitle(),
				Labels:       labelNames(pr.Labels),
				Approvals:    approvals,
				SourceBranch: pr.GetHead().GetRef(),
				TargetBranch: pr.GetBase().GetRef(),
				HTMLURL:      pr.GetHTMLURL(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}

	return prs, nil
}

// countApprovals counts the reviews in state APPROVED for a pull
// request.
func (g *GitHubAPI) countApprovals(ctx context.Context, owner, repo string, number int) (int, error) {
	opt := &github.ListOptions{PerPage: 100}

	approvals := 0
	for {
		reviews, resp, err := g.client.PullRequests.ListReviews(ctx, owner, repo, number, opt)
		if err != nil {
			return 0, &FetchError{Repository: owner + "/" + repo, Err: err}
		}

		for _, review := range reviews {
			if review.GetState() == "APPROVED" {
				approvals++
			}
		}

		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}

	return approvals, nil
}

// MergePullRequest merges a pull request by number using the configured
// merge method.
func (g *GitHubAPI) MergePullRequest(ctx context.Context, owner, repo string, number int) error {
	opts := &github.PullRequestOptions{MergeMethod: g.mergeMethod}

	result, _, err := g.client.PullRequests.Merge(ctx, owner, repo, number, "", opts)
	if err != nil {
		return &MergeError{Repository: owner + "/" + repo, Number: number, Err: err}
	}
	if !result.GetMerged() {
		return &MergeError{
			Repository: owner + "/" + repo,
			Number:     number,
			Err:        fmt.Errorf("github refused merge: %s", result.GetMessage()),
		}
	}

	g.logger.Info().Str("repository", owner+"/"+repo).Int("number", number).Msg("merged pull request")
	return nil
}

func labelNames(labels []*github.Label) []string {
	names := make([]string, 0, len(labels))
	for _, label := range labels {
		names = append(names, label.GetName())
	}
	return names
}
