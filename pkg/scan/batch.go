package scan

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"svelte-scan/pkg/rules"
)

// ReadErrorRuleID is the synthetic rule identifier attached to a file whose
// content could not be read.
const ReadErrorRuleID = "file-read-error"

// ContentReader supplies file contents to the batch. The filesystem
// implementation lives in pkg/filesystem; tests inject fakes.
type ContentReader interface {
	ReadText(path string) (string, error)
}

// SuggestionProvider enriches a scanned file with remediation suggestions.
// A nil provider disables augmentation entirely.
type SuggestionProvider interface {
	SuggestFixes(ctx context.Context, path, content string, result *FileResult) ([]string, error)
}

// Batch drives the scanner over a set of files. One file's read or
// augmentation failure never prevents analysis of the remaining files.
type Batch struct {
	scanner   *Scanner
	reader    ContentReader
	augmenter SuggestionProvider
	logger    zerolog.Logger

	// AugmentTimeout bounds each augmentation call. Zero means no bound;
	// the action entry point sets one so a hung service call cannot stall
	// the whole batch.
	AugmentTimeout time.Duration
}

// NewBatch wires a batch coordinator. augmenter may be nil.
func NewBatch(scanner *Scanner, reader ContentReader, augmenter SuggestionProvider, logger zerolog.Logger) *Batch {
	return &Batch{scanner: scanner, reader: reader, augmenter: augmenter, logger: logger}
}

// AnalyzeAll scans every path sequentially, in input order, returning exactly
// one result per path in the same order. A path whose read fails yields a
// synthetic result containing a single error finding with ReadErrorRuleID.
func (b *Batch) AnalyzeAll(ctx context.Context, paths []string) []*FileResult {
	results := make([]*FileResult, 0, len(paths))
	for _, path := range paths {
		results = append(results, b.analyzeOne(ctx, path))
	}
	return results
}

func (b *Batch) analyzeOne(ctx context.Context, path string) *FileResult {
	content, err := b.reader.ReadText(path)
	if err != nil {
		b.logger.Warn().Str("path", path).Err(err).Msg("could not read file")
		return &FileResult{
			Path: path,
			Errors: []Finding{{
				Line:     1,
				RuleID:   ReadErrorRuleID,
				Severity: rules.SeverityError,
				Message:  fmt.Sprintf("could not read file: %v", err),
			}},
		}
	}

	result := b.scanner.ScanContent(path, content)

	if b.augmenter != nil && result.HasFindings() {
		augCtx := ctx
		if b.AugmentTimeout > 0 {
			var cancel context.CancelFunc
			augCtx, cancel = context.WithTimeout(ctx, b.AugmentTimeout)
			defer cancel()
		}
		suggestions, err := b.augmenter.SuggestFixes(augCtx, path, content, result)
		if err != nil {
			// Augmentation is best effort; the pattern findings stand.
			b.logger.Warn().Str("path", path).Err(err).Msg("suggestion augmentation failed")
		} else {
			result.AISuggestions = suggestions
		}
	}

	return result
}
