package tasks

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"automerger/internal/api"
	"automerger/internal/checker"
	"automerger/internal/config"
)

// AutoMergeTask runs one check-and-merge pass: it fetches the open pull
// requests of every configured repository, classifies them against the
// criteria and, when merging is enabled, merges the eligible ones.
type AutoMergeTask struct {
	config    config.GitHubConfig
	criteria  checker.Criteria
	apiClient api.GitHubClient
	merge     bool
	logger    zerolog.Logger
}

// NewAutoMergeTask creates a pass over the repositories in cfg. With
// merge set to false the pass only reports, it never merges.
func NewAutoMergeTask(ctx context.Context, cfg config.GitHubConfig, merge bool, logger zerolog.Logger) *AutoMergeTask {
	return &AutoMergeTask{
		config: cfg,
		criteria: checker.Criteria{
			RequiredLabels: cfg.RequiredLabels,
			BlockingLabels: cfg.BlockingLabels,
			MinApprovals:   cfg.GetApprovals(),
		},
		apiClient: api.NewGitHubAPI(ctx, cfg.Token, cfg.GetMergeMethod(), logger),
		merge:     merge,
		logger:    logger,
	}
}

// Run executes the pass. One repository fetch failure or one merge
// failure does not abort the rest; all failures are aggregated into the
// returned error. The summary is returned in either case.
func (t *AutoMergeTask) Run(ctx context.Context) (*checker.RunSummary, error) {
	summary := &checker.RunSummary{Criteria: t.criteria}
	var errs []error

	for _, repo := range t.config.Repositories {
		t.logger.Info().Str("repository", t.config.Namespace+"/"+repo).Msg("checking repository")

		prs, err := t.apiClient.ListOpenPullRequests(ctx, t.config.Namespace, repo)
		if err != nil {
			t.logger.Error().Err(err).Str("repository", t.config.Namespace+"/"+repo).Msg("failed to fetch pull requests")
			errs = append(errs, err)
			continue
		}

		for _, pr := range prs {
			result := checker.Evaluate(pr, t.criteria)
			t.logger.Debug().
				Str("pull_request", pr.Slug()).
				Stringer("state", result.State).
				Str("reason", result.Reason).
				Msg("checked pull request")
			summary.Add(result)
		}
	}

	if t.merge {
		errs = append(errs, t.mergeEligible(ctx, summary)...)
	}

	return summary, errors.Join(errs...)
}

// mergeEligible merges each eligible pull request independently, so one
// failed merge does not stop the remaining ones.
func (t *AutoMergeTask) mergeEligible(ctx context.Context, summary *checker.RunSummary) []error {
	var errs []error
	for _, result := range summary.Eligible() {
		owner, repo, ok := strings.Cut(result.PR.Repository, "/")
		if !ok {
			t.logger.Error().Str("repository", result.PR.Repository).Msg("malformed repository slug")
			continue
		}

		if err := t.apiClient.MergePullRequest(ctx, owner, repo, result.PR.Number); err != nil {
			t.logger.Error().Err(err).Str("pull_request", result.PR.Slug()).Msg("failed to merge pull request")
			errs = append(errs, err)
		}
	}
	return errs
}
