package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"svelte-scan/pkg/ai"
	"svelte-scan/pkg/config"
	"svelte-scan/pkg/filesystem"
	"svelte-scan/pkg/gh"
	"svelte-scan/pkg/scan"
)

// augmentTimeout bounds each per-file suggestion call so a hung service
// request cannot stall the batch.
const augmentTimeout = 60 * time.Second

func Execute() {
	rootCmd := &cobra.Command{
		Use:           "svelte-scan",
		Short:         "Scan Svelte components for syntax deprecated in Svelte 5",
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newActionCmd())
	rootCmd.AddCommand(newModernizeCmd())
	rootCmd.AddCommand(newTestCmd())

	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var (
		exclude       []string
		enableAI      bool
		outputFormat  string
		failOnError   bool
		failOnWarning bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [paths...]",
		Short: "Scan the given paths and print a report",
		Long:  `The analyze command scans Svelte components under the given paths (default: current directory) for Svelte 4 syntax deprecated in Svelte 5.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cwd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("error getting current directory: %w", err)
				}
				args = append(args, cwd)
			}

			cfg := &config.Config{
				Paths:         args,
				Exclude:       exclude,
				EnableAI:      enableAI,
				FailOnError:   failOnError,
				FailOnWarning: failOnWarning,
				OpenAIKey:     os.Getenv(config.AzureOpenAIKey),
			}
			cfg.OpenAIEndpoint = os.Getenv(config.AzureOpenAIEndpoint)
			cfg.OpenAIDeployment = os.Getenv(config.AzureOpenAIDeploymentID)
			if err := cfg.Validate(); err != nil {
				return err
			}

			results, err := runScan(cmd.Context(), cfg, nil)
			if err != nil {
				return err
			}

			switch strings.ToLower(outputFormat) {
			case "json":
				encoded, err := json.MarshalIndent(results, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding results: %w", err)
				}
				fmt.Println(string(encoded))
			default:
				fmt.Println(scan.RenderSummary(results))
			}

			return failureFromSummary(cfg, scan.Summarize(results))
		},
	}

	cmd.Flags().StringSliceVarP(&exclude, "exclude", "e", nil, "gitignore-style patterns to exclude")
	cmd.Flags().BoolVar(&enableAI, "ai", false, "enable AI remediation suggestions (requires Azure OpenAI env vars)")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "markdown", "output format (markdown, json)")
	cmd.Flags().BoolVar(&failOnError, "fail-on-error", false, "exit non-zero when error-severity findings exist")
	cmd.Flags().BoolVar(&failOnWarning, "fail-on-warning", false, "exit non-zero when warning-severity findings exist")
	return cmd
}

func newActionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "action",
		Short: "Run as a GitHub Action using INPUT_* environment variables",
		Long:  `The action command reads its configuration from the GitHub Actions environment, scans the repository (or only the pull request's changed files), writes action outputs, and posts the summary to the pull request.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnvironment()
			if err != nil {
				return err
			}
			return runAction(cmd.Context(), cfg)
		},
	}
}

func newModernizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modernize <file>",
		Short: "Ask the AI service for a best-effort Svelte 5 rewrite of one component",
		Long:  `The modernize command prints a proposed Svelte 5 rewrite plus migration steps for a single component. Nothing is written back to disk.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := initClient()
			if err != nil {
				return err
			}

			content, err := filesystem.Reader{}.ReadText(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			augmenter := ai.NewAugmenter(client, logger)
			proposal, err := augmenter.ProposeModernisation(cmd.Context(), content)
			if err != nil {
				return fmt.Errorf("error proposing modernisation: %w", err)
			}

			if proposal.RewrittenContent == "" {
				fmt.Println("The model did not return a rewritten component.")
			} else {
				fmt.Println("Proposed Svelte 5 component:")
				fmt.Println()
				fmt.Println(proposal.RewrittenContent)
			}
			if len(proposal.MigrationSteps) > 0 {
				fmt.Println()
				fmt.Println("Migration steps:")
				for i, step := range proposal.MigrationSteps {
					fmt.Printf("%d. %s\n", i+1, step)
				}
			}
			return nil
		},
	}
}

func newTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Test the Azure OpenAI connection",
		Long:  `The test command verifies the Azure OpenAI connection based on the environment variables set and prints a response.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := initClient()
			if err != nil {
				return err
			}
			response, err := client.GetChatCompletion(cmd.Context(), "Hello Azure OpenAI! Tell me this is working in one short sentence.")
			if err != nil {
				return fmt.Errorf("failed to get chat completion: %w", err)
			}
			fmt.Println("Azure OpenAI Test")
			fmt.Printf("Response: %s\n", response)
			return nil
		},
	}
}

// runScan discovers files (unless an explicit list is given) and runs the
// batch over them.
func runScan(ctx context.Context, cfg *config.Config, explicitFiles []string) ([]*scan.FileResult, error) {
	files := explicitFiles
	if files == nil {
		discovered, err := filesystem.Discover(cfg.Paths, nil, cfg.Exclude)
		if err != nil {
			return nil, fmt.Errorf("discovering files: %w", err)
		}
		files = discovered
	}
	logger.Info().Int("files", len(files)).Msg("scanning files")

	var augmenter scan.SuggestionProvider
	if cfg.EnableAI {
		client, err := ai.NewAzOpenAIClient(cfg.OpenAIEndpoint, cfg.OpenAIKey, cfg.OpenAIDeployment)
		if err != nil {
			return nil, fmt.Errorf("error initializing Azure OpenAI client: %w", err)
		}
		augmenter = ai.NewAugmenter(client, logger)
	}

	batch := scan.NewBatch(scan.NewScanner(logger), filesystem.Reader{}, augmenter, logger)
	batch.AugmentTimeout = augmentTimeout
	return batch.AnalyzeAll(ctx, files), nil
}

// runAction is the GitHub Action entry point: resolve the file set, scan,
// publish outputs/summary/comment, and fail the build per configuration.
func runAction(ctx context.Context, cfg *config.Config) error {
	repoSlug := os.Getenv("GITHUB_REPOSITORY")
	prNumber, inPR := prNumberFromRef(os.Getenv("GITHUB_REF"))

	var ghClient *gh.Client
	if cfg.GitHubToken != "" && repoSlug != "" {
		client, err := gh.NewClient(cfg.GitHubToken, repoSlug, logger)
		if err != nil {
			return err
		}
		ghClient = client
	}

	var explicitFiles []string
	if cfg.OnlyChanged {
		if ghClient == nil || !inPR {
			logger.Warn().Msg("only-changed-files requested outside a pull request context, scanning configured paths instead")
		} else {
			changed, err := ghClient.ChangedFiles(ctx, prNumber)
			if err != nil {
				return fmt.Errorf("listing changed files: %w", err)
			}
			explicitFiles = filesystem.FilterExisting(changed, nil)
			if explicitFiles == nil {
				explicitFiles = []string{}
			}
		}
	}

	results, err := runScan(ctx, cfg, explicitFiles)
	if err != nil {
		return err
	}

	summary := scan.Summarize(results)
	report := scan.RenderSummary(results)

	outputs := []struct{ key, value string }{
		{"files-analyzed", strconv.Itoa(summary.Files)},
		{"errors-found", strconv.Itoa(summary.Errors)},
		{"warnings-found", strconv.Itoa(summary.Warnings)},
		{"has-issues", strconv.FormatBool(summary.HasIssues())},
	}
	for _, out := range outputs {
		if err := gh.WriteOutput(out.key, out.value); err != nil {
			return err
		}
	}
	if err := gh.WriteStepSummary(report); err != nil {
		return err
	}

	if ghClient != nil && inPR {
		if err := ghClient.UpsertSummaryComment(ctx, prNumber, report); err != nil {
			// The scan itself succeeded; a comment failure should not mask
			// its results.
			logger.Warn().Err(err).Msg("could not post summary comment")
		}
	}

	logger.Info().
		Int("files", summary.Files).
		Int("errors", summary.Errors).
		Int("warnings", summary.Warnings).
		Msg("scan complete")

	return failureFromSummary(cfg, summary)
}

func failureFromSummary(cfg *config.Config, summary scan.Summary) error {
	if cfg.FailOnError && summary.Errors > 0 {
		return fmt.Errorf("found %d error-severity finding(s)", summary.Errors)
	}
	if cfg.FailOnWarning && summary.Warnings > 0 {
		return fmt.Errorf("found %d warning-severity finding(s)", summary.Warnings)
	}
	return nil
}

// prNumberFromRef extracts the pull request number from a
// "refs/pull/<n>/merge" ref.
func prNumberFromRef(ref string) (int, bool) {
	parts := strings.Split(ref, "/")
	if len(parts) < 3 || parts[0] != "refs" || parts[1] != "pull" {
		return 0, false
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, false
	}
	return n, true
}

// initClient mirrors the config validation used by action mode for the
// standalone AI commands.
func initClient() (*ai.AzOpenAIClient, error) {
	cfg := &config.Config{
		EnableAI:         true,
		OpenAIKey:        os.Getenv(config.AzureOpenAIKey),
		OpenAIEndpoint:   os.Getenv(config.AzureOpenAIEndpoint),
		OpenAIDeployment: os.Getenv(config.AzureOpenAIDeploymentID),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := ai.NewAzOpenAIClient(cfg.OpenAIEndpoint, cfg.OpenAIKey, cfg.OpenAIDeployment)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure OpenAI client: %w", err)
	}
	return client, nil
}
