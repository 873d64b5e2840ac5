package scan

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	files map[string]string
}

func (f *fakeReader) ReadText(path string) (string, error) {
	content, ok := f.files[path]
	if !ok {
		return "", errors.New("permission denied")
	}
	return content, nil
}

type fakeAugmenter struct {
	suggestions []string
	err         error
	calls       []string
}

func (f *fakeAugmenter) SuggestFixes(_ context.Context, path, _ string, _ *FileResult) ([]string, error) {
	f.calls = append(f.calls, path)
	return f.suggestions, f.err
}

func TestAnalyzeAllPreservesOrder(t *testing.T) {
	reader := &fakeReader{files: map[string]string{
		"a.svelte": "export let a;",
		"b.svelte": "<p>clean</p>",
		"c.svelte": "createEventDispatcher();",
	}}
	batch := NewBatch(testScanner(), reader, nil, zerolog.Nop())

	results := batch.AnalyzeAll(context.Background(), []string{"c.svelte", "a.svelte", "b.svelte"})

	require.Len(t, results, 3)
	assert.Equal(t, "c.svelte", results[0].Path)
	assert.Equal(t, "a.svelte", results[1].Path)
	assert.Equal(t, "b.svelte", results[2].Path)
}

func TestAnalyzeAllIsolatesReadFailures(t *testing.T) {
	reader := &fakeReader{files: map[string]string{
		"ok1.svelte": "export let x;",
		"ok2.svelte": "<div />",
	}}
	batch := NewBatch(testScanner(), reader, nil, zerolog.Nop())

	results := batch.AnalyzeAll(context.Background(), []string{"ok1.svelte", "missing.svelte", "ok2.svelte"})

	require.Len(t, results, 3)

	failed := results[1]
	assert.Equal(t, "missing.svelte", failed.Path)
	require.Len(t, failed.Errors, 1)
	assert.Equal(t, ReadErrorRuleID, failed.Errors[0].RuleID)
	assert.Contains(t, failed.Errors[0].Message, "permission denied")
	assert.Empty(t, failed.Warnings)

	// Neighbors are unaffected.
	assert.Len(t, results[0].Warnings, 1)
	assert.False(t, results[2].HasFindings())
}

func TestAnalyzeAllAugmentsOnlyFilesWithFindings(t *testing.T) {
	reader := &fakeReader{files: map[string]string{
		"dirty.svelte": "export let x;",
		"clean.svelte": "<div />",
	}}
	aug := &fakeAugmenter{suggestions: []string{"Replace export let with $props()."}}
	batch := NewBatch(testScanner(), reader, aug, zerolog.Nop())

	results := batch.AnalyzeAll(context.Background(), []string{"dirty.svelte", "clean.svelte"})

	assert.Equal(t, []string{"dirty.svelte"}, aug.calls)
	assert.Equal(t, []string{"Replace export let with $props()."}, results[0].AISuggestions)
	assert.Nil(t, results[1].AISuggestions)
}

func TestAnalyzeAllToleratesAugmentationFailure(t *testing.T) {
	reader := &fakeReader{files: map[string]string{
		"a.svelte": "export let x;",
		"b.svelte": "createEventDispatcher();",
	}}
	aug := &fakeAugmenter{err: errors.New("service unavailable")}
	batch := NewBatch(testScanner(), reader, aug, zerolog.Nop())

	results := batch.AnalyzeAll(context.Background(), []string{"a.svelte", "b.svelte"})

	require.Len(t, results, 2)
	// Findings stand even though augmentation failed for both files.
	assert.Len(t, results[0].Warnings, 1)
	assert.Len(t, results[1].Errors, 1)
	assert.Nil(t, results[0].AISuggestions)
	assert.Nil(t, results[1].AISuggestions)
	assert.Len(t, aug.calls, 2)
}

func TestSummarize(t *testing.T) {
	results := []*FileResult{
		{Path: "a", Errors: []Finding{{}, {}}, Warnings: []Finding{{}}},
		{Path: "b"},
		{Path: "c", Warnings: []Finding{{}, {}}},
	}

	s := Summarize(results)
	assert.Equal(t, Summary{Files: 3, Errors: 2, Warnings: 3}, s)
	assert.True(t, s.HasIssues())
	assert.False(t, Summarize(nil).HasIssues())
}
