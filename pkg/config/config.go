// Package config assembles the tool's configuration from GitHub Action
// inputs, plain environment variables, and an optional project config file.
package config

import (
	"fmt"
	"os"
	"strings"

	"sigs.k8s.io/yaml"
)

// Environment variable names shared with the Azure OpenAI SDK setup.
const (
	AzureOpenAIKey          = "AZURE_OPENAI_KEY"
	AzureOpenAIEndpoint     = "AZURE_OPENAI_ENDPOINT"
	AzureOpenAIDeploymentID = "AZURE_OPENAI_DEPLOYMENT_ID"
)

// ProjectConfigFile is looked up in the working directory when present.
const ProjectConfigFile = ".svelte-scan.yaml"

// Config carries everything the CLI and action entry points need.
type Config struct {
	// Paths are the search roots (or individual files) to scan.
	Paths []string
	// Exclude holds gitignore-style patterns filtered out during discovery.
	Exclude []string
	// OnlyChanged restricts action runs to the pull request's changed files.
	OnlyChanged bool
	// FailOnError makes the process exit non-zero when any error-severity
	// finding exists; FailOnWarning does the same for warnings.
	FailOnError   bool
	FailOnWarning bool
	// EnableAI turns on suggestion augmentation.
	EnableAI bool

	OpenAIKey        string
	OpenAIEndpoint   string
	OpenAIDeployment string

	GitHubToken string
}

// fileConfig is the subset of settings readable from .svelte-scan.yaml.
type fileConfig struct {
	Paths   []string `json:"paths,omitempty"`
	Exclude []string `json:"exclude,omitempty"`
}

// FromEnvironment builds the action-mode configuration from INPUT_* action
// inputs and the Azure OpenAI environment variables, overlaying any project
// config file found in the working directory.
func FromEnvironment() (*Config, error) {
	cfg := &Config{
		Paths:            splitList(actionInput("paths")),
		Exclude:          splitList(actionInput("exclude")),
		OnlyChanged:      boolInput("only-changed-files"),
		FailOnError:      boolInput("fail-on-error"),
		FailOnWarning:    boolInput("fail-on-warning"),
		EnableAI:         boolInput("enable-ai-suggestions"),
		OpenAIKey:        firstEnv(actionInput("azure-openai-key"), os.Getenv(AzureOpenAIKey)),
		OpenAIEndpoint:   os.Getenv(AzureOpenAIEndpoint),
		OpenAIDeployment: os.Getenv(AzureOpenAIDeploymentID),
		GitHubToken:      firstEnv(actionInput("github-token"), os.Getenv("GITHUB_TOKEN")),
	}

	if err := cfg.overlayProjectFile(ProjectConfigFile); err != nil {
		return nil, err
	}

	if len(cfg.Paths) == 0 {
		cfg.Paths = []string{"."}
	}

	return cfg, cfg.Validate()
}

// Validate checks the credential combination up front so a misconfigured run
// fails at startup instead of per file.
func (c *Config) Validate() error {
	if !c.EnableAI {
		return nil
	}

	var missing []string
	if c.OpenAIKey == "" {
		missing = append(missing, AzureOpenAIKey)
	}
	if c.OpenAIEndpoint == "" {
		missing = append(missing, AzureOpenAIEndpoint)
	}
	if c.OpenAIDeployment == "" {
		missing = append(missing, AzureOpenAIDeploymentID)
	}
	if len(missing) > 0 {
		return fmt.Errorf("AI suggestions enabled but missing environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// overlayProjectFile merges paths/excludes from the project config file when
// the corresponding inputs were not set. A missing file is not an error.
func (c *Config) overlayProjectFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if len(c.Paths) == 0 {
		c.Paths = fc.Paths
	}
	c.Exclude = append(c.Exclude, fc.Exclude...)
	return nil
}

// actionInput reads a GitHub Action input: the action runner exposes input
// "foo-bar" as INPUT_FOO-BAR.
func actionInput(name string) string {
	key := "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
	return strings.TrimSpace(os.Getenv(key))
}

func boolInput(name string) bool {
	v := actionInput(name)
	return strings.EqualFold(v, "true") || v == "1" || strings.EqualFold(v, "yes")
}

// splitList accepts newline- or comma-separated values.
func splitList(v string) []string {
	if v == "" {
		return nil
	}
	fields := strings.FieldsFunc(v, func(r rune) bool {
		return r == '\n' || r == ','
	})
	var out []string
	for _, f := range fields {
		if trimmed := strings.TrimSpace(f); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func firstEnv(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
