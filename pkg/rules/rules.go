// Package rules defines the table of Svelte 4 syntax patterns that are
// deprecated or removed in Svelte 5. The table is declarative: each entry is a
// compiled pattern plus metadata, and the scanner iterates it per line.
package rules

import "regexp"

// Severity classifies how urgent a rule violation is.
type Severity string

const (
	// SeverityError marks syntax that is removed in Svelte 5 and must be fixed.
	SeverityError Severity = "error"
	// SeverityWarning marks syntax that is deprecated and should be migrated.
	SeverityWarning Severity = "warning"
)

// Rule is a single deprecated-syntax detection pattern. Rules are defined once
// at startup and never mutated.
type Rule struct {
	// ID is the stable identifier reported with every finding.
	ID string
	// Pattern is evaluated against a single source line.
	Pattern *regexp.Regexp
	// Severity decides whether a match is reported as an error or a warning.
	Severity Severity
	// Message describes the detected condition.
	Message string
	// Suggestion is an optional remediation hint copied into findings.
	Suggestion string
	// ExcludeIdents drops matches whose first capture group equals one of
	// these names. RE2 has no negative lookahead, so the store-subscription
	// rule filters out Svelte 5 rune names here instead of in the pattern.
	ExcludeIdents []string
}

// Matches reports whether the rule fires on the given line. A rule with an
// exclusion list fires only if at least one match survives the filter.
func (r *Rule) Matches(line string) bool {
	if len(r.ExcludeIdents) == 0 {
		return r.Pattern.MatchString(line)
	}
	for _, m := range r.Pattern.FindAllStringSubmatch(line, -1) {
		ident := m[0]
		if len(m) > 1 {
			ident = m[1]
		}
		if !r.excluded(ident) {
			return true
		}
	}
	return false
}

func (r *Rule) excluded(ident string) bool {
	for _, e := range r.ExcludeIdents {
		if ident == e {
			return true
		}
	}
	return false
}

// runeNames are the Svelte 5 reactive primitives. A `$`-prefixed identifier
// with one of these names is current syntax, not a legacy store subscription.
// This list is heuristic: a future rune not listed here will misfire.
var runeNames = []string{"state", "derived", "effect", "props", "bindable", "inspect", "host"}

// Default returns the ordered rule table covering known Svelte 4 patterns.
// Order matters only for output ordering; every rule is evaluated
// independently against every line.
func Default() []Rule {
	return []Rule{
		{
			ID:         "svelte4-event-dispatcher",
			Pattern:    regexp.MustCompile(`createEventDispatcher`),
			Severity:   SeverityError,
			Message:    "createEventDispatcher is removed in Svelte 5",
			Suggestion: "Accept callback props via $props() and invoke them directly, e.g. `let { onsubmit } = $props();`",
		},
		{
			ID:         "svelte4-export-let",
			Pattern:    regexp.MustCompile(`\bexport\s+let\s+`),
			Severity:   SeverityWarning,
			Message:    "`export let` prop declarations are replaced by the $props() rune in Svelte 5",
			Suggestion: "Declare props with `let { name } = $props();`",
		},
		{
			ID:         "svelte4-reactive-statement",
			Pattern:    regexp.MustCompile(`^\s*\$:`),
			Severity:   SeverityWarning,
			Message:    "`$:` reactive statements are replaced by runes in Svelte 5",
			Suggestion: "Use $derived(...) for computed values and $effect(() => { ... }) for side effects",
		},
		{
			ID:         "svelte4-lifecycle-hook",
			Pattern:    regexp.MustCompile(`\b(?:beforeUpdate|afterUpdate)\b`),
			Severity:   SeverityError,
			Message:    "beforeUpdate/afterUpdate lifecycle hooks are removed in Svelte 5",
			Suggestion: "Use $effect.pre(...) instead of beforeUpdate and $effect(...) instead of afterUpdate",
		},
		{
			ID:         "svelte4-slot",
			Pattern:    regexp.MustCompile(`<slot\b`),
			Severity:   SeverityWarning,
			Message:    "<slot> elements are deprecated in Svelte 5",
			Suggestion: "Use snippet props and render them with {@render children()}",
		},
		{
			ID:         "svelte4-fragment",
			Pattern:    regexp.MustCompile(`<svelte:fragment\b`),
			Severity:   SeverityWarning,
			Message:    "<svelte:fragment> is deprecated in Svelte 5",
			Suggestion: "Replace named fragments with {#snippet ...} blocks",
		},
		{
			ID:         "svelte4-imperative-api",
			Pattern:    regexp.MustCompile(`\.\$(?:set|on|destroy)\s*\(`),
			Severity:   SeverityError,
			Message:    "Imperative component methods $set/$on/$destroy are removed in Svelte 5",
			Suggestion: "Use mount()/unmount(), pass $state-backed props, and use event callback props",
		},
		{
			ID:         "svelte4-tick",
			Pattern:    regexp.MustCompile(`\btick\s*\(`),
			Severity:   SeverityWarning,
			Message:    "tick() calls scheduled around DOM updates often become unnecessary in Svelte 5",
			Suggestion: "Re-check whether awaiting tick() is still required with fine-grained $state updates",
		},
		{
			ID:         "svelte4-dollar-dollar",
			Pattern:    regexp.MustCompile(`\$\$(?:props|restProps|slots)\b`),
			Severity:   SeverityWarning,
			Message:    "$$props, $$restProps and $$slots are deprecated in Svelte 5",
			Suggestion: "Use rest props from $props(), e.g. `let { children, ...rest } = $props();`",
		},
		{
			ID:         "svelte4-event-modifier",
			Pattern:    regexp.MustCompile(`\bon:\w+\|\w+`),
			Severity:   SeverityError,
			Message:    "Event modifiers (on:event|modifier) are removed in Svelte 5",
			Suggestion: "Call event.preventDefault()/stopPropagation() inside the handler instead",
		},
		{
			ID:         "svelte4-component-instantiation",
			Pattern:    regexp.MustCompile(`\bnew\s+[A-Z]\w*\s*\(\s*\{\s*target\b`),
			Severity:   SeverityError,
			Message:    "Instantiating components with `new Component({ target })` is removed in Svelte 5",
			Suggestion: "Use mount(Component, { target }) from 'svelte'",
		},
		{
			ID:            "svelte4-store-subscription",
			Pattern:       regexp.MustCompile(`(?:^|[^\w$])\$([a-zA-Z_]\w*)`),
			Severity:      SeverityWarning,
			Message:       "`$store` auto-subscription detected; stores are often better modeled as $state in Svelte 5 (heuristic match)",
			Suggestion:    "Consider replacing writable/readable stores with $state or $derived where the store is component-local",
			ExcludeIdents: runeNames,
		},
	}
}
