package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"svelte-scan/pkg/scan"
)

// Augmenter asks the model for human-readable remediation guidance. It is
// only consulted for files that already have at least one finding.
type Augmenter struct {
	client CompletionClient
	logger zerolog.Logger
}

// NewAugmenter wires an Augmenter around a completion client.
func NewAugmenter(client CompletionClient, logger zerolog.Logger) *Augmenter {
	return &Augmenter{client: client, logger: logger}
}

// SuggestFixes requests a remediation narrative for the file and parses it
// into discrete suggestion strings. Callers treat any error as non-fatal.
func (a *Augmenter) SuggestFixes(ctx context.Context, path, content string, result *scan.FileResult) ([]string, error) {
	prompt := buildSuggestionPrompt(path, content, result)

	a.logger.Debug().Str("path", path).Msg("requesting AI suggestions")
	response, err := a.client.GetChatCompletion(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("getting suggestions for %s: %w", path, err)
	}

	suggestions := ParseSuggestionList(response)
	a.logger.Debug().Str("path", path).Int("suggestions", len(suggestions)).Msg("parsed AI suggestions")
	return suggestions, nil
}

func buildSuggestionPrompt(path, content string, result *scan.FileResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are helping migrate a Svelte 4 component to Svelte 5.

File: %s

Component source:
%s

The following deprecated patterns were detected:
`, path, content)

	for _, f := range result.Errors {
		fmt.Fprintf(&b, "- line %d (error): %s\n", f.Line, f.Message)
	}
	for _, f := range result.Warnings {
		fmt.Fprintf(&b, "- line %d (warning): %s\n", f.Line, f.Message)
	}

	b.WriteString(`
Please provide a numbered list of concrete migration suggestions for this
component. Each suggestion should name the construct to change and the
Svelte 5 replacement. Do not rewrite the whole file.`)

	return b.String()
}

// Modernisation is a best-effort full rewrite of a component. It is never
// applied to files automatically.
type Modernisation struct {
	RewrittenContent string
	MigrationSteps   []string
}

// ProposeModernisation asks the model for a complete Svelte 5 rewrite of the
// component plus a step list. Missing sections in the response degrade to
// empty values, not errors.
func (a *Augmenter) ProposeModernisation(ctx context.Context, content string) (*Modernisation, error) {
	prompt := fmt.Sprintf(`Rewrite the following Svelte 4 component using Svelte 5 runes and
current syntax.

Component source:
%s

Structure your answer exactly as follows:

%s
A fenced code block containing the full rewritten component.

%s
A numbered list of the migration steps you applied.`, content, rewrittenMarker, stepsMarker)

	response, err := a.client.GetChatCompletion(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("requesting modernisation: %w", err)
	}

	return ParseModernisation(response), nil
}
