package scan

import (
	"fmt"
	"strings"
)

// referenceLinks closes every non-empty report.
const referenceLinks = `---
📚 **References**
- [Svelte 5 migration guide](https://svelte.dev/docs/svelte/v5-migration-guide)
- [What are runes?](https://svelte.dev/docs/svelte/what-are-runes)
- [svelte-migrate](https://www.npmjs.com/package/svelte-migrate)
`

// RenderSummary renders the batch results as a markdown report. It is pure:
// the same results always produce the same text.
func RenderSummary(results []*FileResult) string {
	summary := Summarize(results)
	if !summary.HasIssues() {
		return "✅ **No Svelte 4 migration issues found.** All scanned components look ready for Svelte 5.\n"
	}

	var b strings.Builder
	b.WriteString("## 🔍 Svelte 5 Migration Scan\n\n")
	fmt.Fprintf(&b, "**%d file(s) analyzed** — %d error(s), %d warning(s)\n\n", summary.Files, summary.Errors, summary.Warnings)

	if summary.Errors > 0 {
		fmt.Fprintf(&b, "### Issues (%d)\n\n", summary.Errors)
		for _, r := range results {
			if len(r.Errors) == 0 {
				continue
			}
			writeFileSection(&b, r.Path, r.Errors, "issue")
		}
	}

	if summary.Warnings > 0 {
		fmt.Fprintf(&b, "### Warnings (%d)\n\n", summary.Warnings)
		for _, r := range results {
			if len(r.Warnings) == 0 {
				continue
			}
			writeFileSection(&b, r.Path, r.Warnings, "warning")
		}
	}

	if hasSuggestions(results) {
		b.WriteString("### 🤖 AI Suggestions\n\n")
		for _, r := range results {
			if len(r.AISuggestions) == 0 {
				continue
			}
			fmt.Fprintf(&b, "<details>\n<summary><code>%s</code></summary>\n\n", r.Path)
			for _, s := range r.AISuggestions {
				fmt.Fprintf(&b, "- %s\n", s)
			}
			b.WriteString("\n</details>\n\n")
		}
	}

	b.WriteString(referenceLinks)
	return b.String()
}

func writeFileSection(b *strings.Builder, path string, findings []Finding, noun string) {
	fmt.Fprintf(b, "<details>\n<summary><code>%s</code> — %s</summary>\n\n", path, pluralize(len(findings), noun))
	for _, f := range findings {
		fmt.Fprintf(b, "- line %d: %s\n", f.Line, f.Message)
		if f.Suggestion != "" {
			fmt.Fprintf(b, "  - 💡 %s\n", f.Suggestion)
		}
	}
	b.WriteString("\n</details>\n\n")
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func hasSuggestions(results []*FileResult) bool {
	for _, r := range results {
		if len(r.AISuggestions) > 0 {
			return true
		}
	}
	return false
}
