package tui

import (
	"fmt"
	"strings"

	"platcheck/pkg/domain"
)

// SummaryMarkdown renders a run summary as markdown, suitable for the
// glamour renderer or for raw piped output.
func SummaryMarkdown(summary *domain.Summary) string {
	var b strings.Builder

	switch summary.Status {
	case domain.StatusPassed:
		fmt.Fprintf(&b, "# Round-trip property held\n\n")
	case domain.StatusExhausted:
		fmt.Fprintf(&b, "# Generator exhausted\n\n")
	default:
		fmt.Fprintf(&b, "# Round-trip property falsified\n\n")
	}

	fmt.Fprintf(&b, "| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Trials | %d |\n", summary.Trials)
	fmt.Fprintf(&b, "| Discarded | %d |\n", summary.Discarded)
	fmt.Fprintf(&b, "| Seed | %d |\n", summary.Seed)
	fmt.Fprintf(&b, "| Elapsed | %s |\n", summary.Elapsed)

	if f := summary.Failure; f != nil {
		fmt.Fprintf(&b, "\n## Failure\n\n")
		fmt.Fprintf(&b, "- Candidate: `%q`\n", f.Candidate)
		fmt.Fprintf(&b, "- Shrunk: `%q` (%d reductions)\n", f.Shrunk, f.Shrinks)
		fmt.Fprintf(&b, "- %s\n", f.Message)
		if f.FirstString != "" || f.SecondString != "" {
			fmt.Fprintf(&b, "\nFirst parse: `%s` %s\n\n", f.FirstString, f.FirstDebug)
			fmt.Fprintf(&b, "Second parse: `%s` %s\n", f.SecondString, f.SecondDebug)
		}
		fmt.Fprintf(&b, "\nReplay with `platcheck run --seed %d`.\n", f.Seed)
	}

	return b.String()
}
