package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"automerger/internal/api"
)

func TestEvaluate(t *testing.T) {
	criteria := Criteria{
		RequiredLabels: []string{"lgtm"},
		BlockingLabels: []string{},
		MinApprovals:   2,
	}

	tests := []struct {
		name          string
		pr            api.PullRequest
		expectedState State
	}{
		{
			name:          "required label and enough approvals",
			pr:            api.PullRequest{Number: 1, Labels: []string{"lgtm"}, Approvals: 2},
			expectedState: StateEligible,
		},
		{
			name:          "required label but too few approvals",
			pr:            api.PullRequest{Number: 2, Labels: []string{"lgtm"}, Approvals: 1},
			expectedState: StateIgnored,
		},
		{
			name:          "missing required label",
			pr:            api.PullRequest{Number: 3, Labels: []string{"bug"}, Approvals: 5},
			expectedState: StateIgnored,
		},
		{
			name:          "no labels at all",
			pr:            api.PullRequest{Number: 4, Approvals: 5},
			expectedState: StateIgnored,
		},
		{
			name:          "extra labels do not hurt",
			pr:            api.PullRequest{Number: 5, Labels: []string{"lgtm", "bug", "docs"}, Approvals: 3},
			expectedState: StateEligible,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Evaluate(tt.pr, criteria)
			assert.Equal(t, tt.expectedState, result.State)
			assert.Equal(t, tt.pr, result.PR)
			assert.NotEmpty(t, result.Reason)
		})
	}
}

func TestEvaluate_BlockingLabelWinsOverApprovals(t *testing.T) {
	criteria := Criteria{
		RequiredLabels: []string{"lgtm"},
		BlockingLabels: []string{"do-not-merge"},
		MinApprovals:   2,
	}

	pr := api.PullRequest{
		Number:    42,
		Labels:    []string{"lgtm", "do-not-merge"},
		Approvals: 5,
	}

	result := Evaluate(pr, criteria)

	assert.Equal(t, StateBlocked, result.State)
	assert.Contains(t, result.Reason, "do-not-merge")
}

func TestEvaluate_BlockingLabelWithZeroApprovals(t *testing.T) {
	criteria := Criteria{
		BlockingLabels: []string{"wip"},
		MinApprovals:   2,
	}

	pr := api.PullRequest{Number: 7, Labels: []string{"wip"}, Approvals: 0}

	result := Evaluate(pr, criteria)

	assert.Equal(t, StateBlocked, result.State)
}

func TestEvaluate_LabelInBothSets(t *testing.T) {
	// Blocking takes precedence when the same label is required and
	// blocking at once.
	criteria := Criteria{
		RequiredLabels: []string{"hold"},
		BlockingLabels: []string{"hold"},
		MinApprovals:   0,
	}

	pr := api.PullRequest{Number: 8, Labels: []string{"hold"}, Approvals: 3}

	result := Evaluate(pr, criteria)

	assert.Equal(t, StateBlocked, result.State)
}

func TestEvaluate_EmptyRequiredLabels(t *testing.T) {
	// Any non-blocked, sufficiently approved pull request qualifies.
	criteria := Criteria{
		RequiredLabels: []string{},
		BlockingLabels: []string{"do-not-merge"},
		MinApprovals:   2,
	}

	tests := []struct {
		name          string
		pr            api.PullRequest
		expectedState State
	}{
		{
			name:          "no labels, enough approvals",
			pr:            api.PullRequest{Number: 1, Approvals: 2},
			expectedState: StateEligible,
		},
		{
			name:          "no labels, too few approvals",
			pr:            api.PullRequest{Number: 2, Approvals: 1},
			expectedState: StateIgnored,
		},
		{
			name:          "blocked despite approvals",
			pr:            api.PullRequest{Number: 3, Labels: []string{"do-not-merge"}, Approvals: 4},
			expectedState: StateBlocked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Evaluate(tt.pr, criteria)
			assert.Equal(t, tt.expectedState, result.State)
		})
	}
}

func TestEvaluate_ApprovalThresholdIsInclusive(t *testing.T) {
	criteria := Criteria{MinApprovals: 2}

	tests := []struct {
		name          string
		approvals     int
		expectedState State
	}{
		{"below threshold", 1, StateIgnored},
		{"exactly at threshold", 2, StateEligible},
		{"above threshold", 3, StateEligible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Evaluate(api.PullRequest{Number: 1, Approvals: tt.approvals}, criteria)
			assert.Equal(t, tt.expectedState, result.State)
		})
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "blocked", StateBlocked.String())
	assert.Equal(t, "eligible", StateEligible.String())
	assert.Equal(t, "ignored", StateIgnored.String())
}
