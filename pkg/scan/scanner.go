package scan

import (
	"strings"

	"github.com/rs/zerolog"

	"svelte-scan/pkg/rules"
)

// Scanner applies the rule table to file contents, line by line. It performs
// no I/O and is deterministic: identical input yields an identical,
// identically ordered result.
type Scanner struct {
	rules  []rules.Rule
	logger zerolog.Logger
}

// NewScanner returns a Scanner over the default rule table.
func NewScanner(logger zerolog.Logger) *Scanner {
	return NewScannerWithRules(logger, rules.Default())
}

// NewScannerWithRules returns a Scanner over a custom rule table.
func NewScannerWithRules(logger zerolog.Logger, table []rules.Rule) *Scanner {
	return &Scanner{rules: table, logger: logger}
}

// ScanContent scans one file's content and returns its findings. Lines are
// separated by '\n'; a trailing partial line counts as a line; empty content
// produces zero findings. Every rule is evaluated against every line, so a
// single line may yield multiple findings.
func (s *Scanner) ScanContent(path, content string) *FileResult {
	result := &FileResult{Path: path}
	if content == "" {
		return result
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		for _, rule := range s.rules {
			if !rule.Matches(line) {
				continue
			}
			finding := Finding{
				Line:       i + 1,
				RuleID:     rule.ID,
				Severity:   rule.Severity,
				Message:    rule.Message,
				Suggestion: rule.Suggestion,
			}
			if rule.Severity == rules.SeverityError {
				result.Errors = append(result.Errors, finding)
			} else {
				result.Warnings = append(result.Warnings, finding)
			}
		}
	}

	s.logger.Debug().
		Str("path", path).
		Int("lines", len(lines)).
		Int("errors", len(result.Errors)).
		Int("warnings", len(result.Warnings)).
		Msg("scanned file")

	return result
}
