package checker

import (
	"fmt"

	"automerger/internal/api"
)

// Criteria holds the merge eligibility rules for a single run.
// RequiredLabels must all be present on a pull request, BlockingLabels
// must all be absent, and MinApprovals is an inclusive lower bound.
type Criteria struct {
	RequiredLabels []string
	BlockingLabels []string
	MinApprovals   int
}

// State classifies a pull request after filtering.
type State int

const (
	// StateIgnored means the pull request neither qualifies for merge
	// nor carries a blocking label.
	StateIgnored State = iota

	// StateBlocked means a blocking label is present. Blocking takes
	// precedence over the required-label and approval checks.
	StateBlocked

	// StateEligible means all required labels are present and the
	// approval count meets the threshold.
	StateEligible
)

func (s State) String() string {
	switch s {
	case StateBlocked:
		return "blocked"
	case StateEligible:
		return "eligible"
	default:
		return "ignored"
	}
}

// CheckResult is the classification of one pull request plus the label
// or approval count that triggered it.
type CheckResult struct {
	PR     api.PullRequest
	State  State
	Reason string
}

// Evaluate classifies a pull request against the criteria. It is a pure
// function of its inputs.
func Evaluate(pr api.PullRequest, criteria Criteria) CheckResult {
	for _, blocking := range criteria.BlockingLabels {
		if hasLabel(pr, blocking) {
			return CheckResult{
				PR:     pr,
				State:  StateBlocked,
				Reason: fmt.Sprintf("blocked by label %q", blocking),
			}
		}
	}

	for _, required := range criteria.RequiredLabels {
		if !hasLabel(pr, required) {
			return CheckResult{
				PR:     pr,
				State:  StateIgnored,
				Reason: fmt.Sprintf("missing label %q", required),
			}
		}
	}

	if pr.Approvals < criteria.MinApprovals {
		return CheckResult{
			PR:     pr,
			State:  StateIgnored,
			Reason: fmt.Sprintf("%d of %d required approvals", pr.Approvals, criteria.MinApprovals),
		}
	}

	return CheckResult{
		PR:     pr,
		State:  StateEligible,
		Reason: fmt.Sprintf("%d approvals", pr.Approvals),
	}
}

func hasLabel(pr api.PullRequest, name string) bool {
	for _, label := range pr.Labels {
		if label == name {
			return true
		}
	}
	return false
}
