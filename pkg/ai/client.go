// Package ai enriches scan results with remediation suggestions produced by
// an Azure OpenAI deployment. The service is strictly optional: every failure
// here is recoverable and the pattern-matched findings always stand on their
// own.
package ai

import "context"

// CompletionClient is the single capability this package needs from a model
// endpoint: one prompt in, free-form text out. Implemented by AzOpenAIClient
// and by fakes in tests.
type CompletionClient interface {
	GetChatCompletion(ctx context.Context, prompt string) (string, error)
}
