package checker

import (
	"fmt"
	"html"
	"strings"

	"automerger/internal/api"
)

// RunSummary is the ordered sequence of check results from one pass,
// in the order the pull requests were fetched.
type RunSummary struct {
	Criteria Criteria
	Results  []CheckResult
}

// Add appends a result, preserving fetch order.
func (s *RunSummary) Add(result CheckResult) {
	s.Results = append(s.Results, result)
}

// Blocked returns the results carrying a blocking label, in fetch order.
func (s *RunSummary) Blocked() []CheckResult {
	return s.filter(StateBlocked)
}

// Eligible returns the results approved for merge, in fetch order.
func (s *RunSummary) Eligible() []CheckResult {
	return s.filter(StateEligible)
}

func (s *RunSummary) filter(state State) []CheckResult {
	var results []CheckResult
	for _, result := range s.Results {
		if result.State == state {
			results = append(results, result)
		}
	}
	return results
}

// BlockedReport renders the blocked pull requests as human-readable
// text. It returns an empty string when nothing is blocked.
func (s *RunSummary) BlockedReport() string {
	blocked := s.Blocked()
	if len(blocked) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Pull requests blocked by labels [%s]:\n", strings.Join(s.Criteria.BlockingLabels, ", "))
	for _, result := range blocked {
		fmt.Fprintf(&b, "  %s %q - %s\n    %s\n", result.PR.Slug(), result.PR.Title, result.Reason, result.PR.HTMLURL)
	}
	return b.String()
}

// EligibleReport renders the pull requests ready to merge as
// human-readable text. It returns an empty string when nothing is
// eligible.
func (s *RunSummary) EligibleReport() string {
	eligible := s.Eligible()
	if len(eligible) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Pull requests ready to merge (%d approvals required):\n", s.Criteria.MinApprovals)
	for _, result := range eligible {
		fmt.Fprintf(&b, "  %s %q - %s\n    %s\n", result.PR.Slug(), result.PR.Title, result.Reason, result.PR.HTMLURL)
	}
	return b.String()
}

// HTMLReport renders the blocked and eligible pull requests as HTML
// tables for the summary email.
func (s *RunSummary) HTMLReport() string {
	var b strings.Builder

	if blocked := s.Blocked(); len(blocked) > 0 {
		fmt.Fprintf(&b, "Pull requests that are blocked by labels <b>[%s]</b><br><br>",
			html.EscapeString(strings.Join(s.Criteria.BlockingLabels, ", ")))
		b.WriteString("<table><tr><th>Pull request URL</th><th>Title</th><th>Blocking label</th></tr>")
		for _, result := range blocked {
			writeRow(&b, result)
		}
		b.WriteString("</table><br><br>")
	}

	if eligible := s.Eligible(); len(eligible) > 0 {
		fmt.Fprintf(&b, "Pull requests that can be merged with %d approvals<br><br>", s.Criteria.MinApprovals)
		b.WriteString("<table><tr><th>Pull request URL</th><th>Title</th><th>Approval status</th></tr>")
		for _, result := range eligible {
			writeRow(&b, result)
		}
		b.WriteString("</table><br>")
	}

	return b.String()
}

func writeRow(b *strings.Builder, result CheckResult) {
	fmt.Fprintf(b, "<tr><td>%s</td><td>%s</td><td>%s</td></tr>",
		html.EscapeString(result.PR.HTMLURL),
		html.EscapeString(result.PR.Title),
		html.EscapeString(result.Reason))
}

// Check applies the filter to every fetched pull request and returns
// the summary, preserving fetch order.
func Check(prs []api.PullRequest, criteria Criteria) *RunSummary {
	summary := &RunSummary{Criteria: criteria}
	for _, pr := range prs {
		summary.Add(Evaluate(pr, criteria))
	}
	return summary
}
