package ai

import (
	"regexp"
	"strings"
)

// Model output is free-form text; everything in this file is the one boundary
// that knows how to pick structure out of it. Prompt changes only need to
// stay in sync with these markers.
const (
	rewrittenMarker = "### Rewritten Component"
	stepsMarker     = "### Migration Steps"

	// minSuggestionLength guards against empty or near-empty artifacts from
	// malformed model output. Units at or below this trimmed length are dropped.
	minSuggestionLength = 10
)

var (
	listMarkerRe = regexp.MustCompile(`^\s*(?:\d+\.|[-*])\s*`)
	numberedRe   = regexp.MustCompile(`^\s*\d+\.\s*`)
	codeFenceRe  = regexp.MustCompile("(?s)```[a-zA-Z]*\n(.*?)```")
)

// ParseSuggestionList splits a remediation narrative into discrete
// suggestions. A line starting with a numbered-list marker ("1.") or a bullet
// ("-" or "*") opens a new unit; subsequent non-empty lines are appended to
// the current unit until the next marker. Units whose trimmed length is at
// most minSuggestionLength characters are discarded.
func ParseSuggestionList(text string) []string {
	var units []string
	var current strings.Builder
	inUnit := false

	flush := func() {
		if !inUnit {
			return
		}
		unit := strings.TrimSpace(current.String())
		if len(unit) > minSuggestionLength {
			units = append(units, unit)
		}
		current.Reset()
		inUnit = false
	}

	for _, line := range strings.Split(text, "\n") {
		if listMarkerRe.MatchString(line) {
			flush()
			current.WriteString(strings.TrimSpace(listMarkerRe.ReplaceAllString(line, "")))
			inUnit = true
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || !inUnit {
			continue
		}
		current.WriteString(" ")
		current.WriteString(trimmed)
	}
	flush()

	return units
}

// ParseModernisation extracts the rewritten component and the migration steps
// from a marker-structured response. Either section defaults to empty when
// its marker is absent.
func ParseModernisation(text string) *Modernisation {
	m := &Modernisation{}

	rewrittenSection, stepsSection := splitSections(text)

	if fence := codeFenceRe.FindStringSubmatch(rewrittenSection); len(fence) > 1 {
		m.RewrittenContent = strings.TrimSpace(fence[1])
	}

	for _, line := range strings.Split(stepsSection, "\n") {
		if !numberedRe.MatchString(line) {
			continue
		}
		step := strings.TrimSpace(numberedRe.ReplaceAllString(line, ""))
		if step != "" {
			m.MigrationSteps = append(m.MigrationSteps, step)
		}
	}

	return m
}

// splitSections returns the text following each marker, with the rewritten
// section truncated at the steps marker when both are present in order.
func splitSections(text string) (rewritten, steps string) {
	if idx := strings.Index(text, rewrittenMarker); idx >= 0 {
		rewritten = text[idx+len(rewrittenMarker):]
	}
	if idx := strings.Index(text, stepsMarker); idx >= 0 {
		steps = text[idx+len(stepsMarker):]
	}
	if idx := strings.Index(rewritten, stepsMarker); idx >= 0 {
		rewritten = rewritten[:idx]
	}
	return rewritten, steps
}
