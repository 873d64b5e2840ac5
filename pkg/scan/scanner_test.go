package scan

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svelte-scan/pkg/rules"
)

func testScanner() *Scanner {
	return NewScanner(zerolog.Nop())
}

func TestScanContentEmptyFile(t *testing.T) {
	result := testScanner().ScanContent("Empty.svelte", "")
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
	assert.False(t, result.HasFindings())
}

func TestScanContentCleanFile(t *testing.T) {
	content := `<script>
	let count = $state(0);
	let doubled = $derived(count * 2);
</script>

<button onclick={() => count++}>{count}</button>
`
	result := testScanner().ScanContent("Clean.svelte", content)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestScanContentExportLet(t *testing.T) {
	result := testScanner().ScanContent("Props.svelte", "export let name;")

	require.Len(t, result.Warnings, 1)
	assert.Empty(t, result.Errors)
	f := result.Warnings[0]
	assert.Equal(t, "svelte4-export-let", f.RuleID)
	assert.Equal(t, 1, f.Line)
	assert.Contains(t, f.Message, "$props()")
}

func TestScanContentEventDispatcher(t *testing.T) {
	result := testScanner().ScanContent("Dispatch.svelte", "const dispatch = createEventDispatcher();")

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "svelte4-event-dispatcher", result.Errors[0].RuleID)
	assert.Equal(t, rules.SeverityError, result.Errors[0].Severity)
}

func TestScanContentReactiveVsRune(t *testing.T) {
	content := "$: doubled = count * 2;\nlet x = $state(0);"
	result := testScanner().ScanContent("Mixed.svelte", content)

	require.Len(t, result.Warnings, 1)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "svelte4-reactive-statement", result.Warnings[0].RuleID)
	assert.Equal(t, 1, result.Warnings[0].Line)
}

func TestScanContentMultipleRulesPerLine(t *testing.T) {
	// One line triggering a warning rule and an error rule: both findings are
	// recorded, neither short-circuits the other.
	result := testScanner().ScanContent("Both.svelte", "$: dispatch = createEventDispatcher();")

	require.Len(t, result.Errors, 1)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "svelte4-event-dispatcher", result.Errors[0].RuleID)
	assert.Equal(t, "svelte4-reactive-statement", result.Warnings[0].RuleID)
	assert.Equal(t, result.Errors[0].Line, result.Warnings[0].Line)
}

func TestScanContentLineNumbers(t *testing.T) {
	content := "<script>\nimport { beforeUpdate } from 'svelte';\nexport let title;\n</script>\n<slot />"
	result := testScanner().ScanContent("App.svelte", content)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Line)

	require.Len(t, result.Warnings, 2)
	assert.Equal(t, 3, result.Warnings[0].Line)
	assert.Equal(t, "svelte4-export-let", result.Warnings[0].RuleID)
	assert.Equal(t, 5, result.Warnings[1].Line)
	assert.Equal(t, "svelte4-slot", result.Warnings[1].RuleID)
}

func TestScanContentDeterministic(t *testing.T) {
	content := "export let a;\nexport let b;\n$: c = a + b;\ncomponent.$destroy();\n"
	first := testScanner().ScanContent("Det.svelte", content)
	second := testScanner().ScanContent("Det.svelte", content)
	require.Equal(t, first, second)
}

func TestScanContentSeverityPartition(t *testing.T) {
	content := "const d = createEventDispatcher();\nexport let value;\n<form on:submit|preventDefault={go}>\n"
	result := testScanner().ScanContent("Part.svelte", content)

	for _, f := range result.Errors {
		assert.Equal(t, rules.SeverityError, f.Severity)
	}
	for _, f := range result.Warnings {
		assert.Equal(t, rules.SeverityWarning, f.Severity)
	}
}

func TestScanContentSuggestionCopiedFromRule(t *testing.T) {
	result := testScanner().ScanContent("S.svelte", "export let name;")
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0].Suggestion, "$props()")
}
