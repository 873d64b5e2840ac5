// Package scan applies the deprecation rule table to Svelte sources and
// aggregates per-file results into a batch summary.
package scan

import "svelte-scan/pkg/rules"

// Finding is one rule match on one line of one file.
type Finding struct {
	// Line is 1-based.
	Line int `json:"line"`
	// Column is reserved and currently always 0.
	Column     int            `json:"column,omitempty"`
	RuleID     string         `json:"rule_id"`
	Severity   rules.Severity `json:"severity"`
	Message    string         `json:"message"`
	Suggestion string         `json:"suggestion,omitempty"`
}

// FileResult holds all findings for a single scanned file, partitioned by the
// declared severity of the matching rule. Ordering is line order, ties broken
// by rule table order.
type FileResult struct {
	Path     string    `json:"path"`
	Errors   []Finding `json:"errors"`
	Warnings []Finding `json:"warnings"`
	// AISuggestions is present only when augmentation ran and succeeded.
	AISuggestions []string `json:"ai_suggestions,omitempty"`
}

// HasFindings reports whether the file produced at least one finding.
func (r *FileResult) HasFindings() bool {
	return len(r.Errors) > 0 || len(r.Warnings) > 0
}

// Summary is a pure projection over a set of file results.
type Summary struct {
	Files    int `json:"files"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// HasIssues reports whether any error or warning was found in the batch.
func (s Summary) HasIssues() bool {
	return s.Errors > 0 || s.Warnings > 0
}

// Summarize reduces file results into batch totals.
func Summarize(results []*FileResult) Summary {
	s := Summary{Files: len(results)}
	for _, r := range results {
		s.Errors += len(r.Errors)
		s.Warnings += len(r.Warnings)
	}
	return s
}
