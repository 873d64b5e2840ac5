package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
}

func clearInputs(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"INPUT_PATHS", "INPUT_EXCLUDE", "INPUT_ONLY-CHANGED-FILES",
		"INPUT_FAIL-ON-ERROR", "INPUT_FAIL-ON-WARNING", "INPUT_ENABLE-AI-SUGGESTIONS",
		"INPUT_AZURE-OPENAI-KEY", "INPUT_GITHUB-TOKEN",
		AzureOpenAIKey, AzureOpenAIEndpoint, AzureOpenAIDeploymentID, "GITHUB_TOKEN",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnvironmentDefaults(t *testing.T) {
	clearInputs(t)
	chdir(t, t.TempDir())

	cfg, err := FromEnvironment()
	require.NoError(t, err)

	assert.Equal(t, []string{"."}, cfg.Paths)
	assert.False(t, cfg.OnlyChanged)
	assert.False(t, cfg.EnableAI)
	assert.False(t, cfg.FailOnError)
}

func TestFromEnvironmentParsesInputs(t *testing.T) {
	clearInputs(t)
	chdir(t, t.TempDir())
	t.Setenv("INPUT_PATHS", "src\npackages/ui, apps/web")
	t.Setenv("INPUT_EXCLUDE", "**/*.stories.svelte")
	t.Setenv("INPUT_FAIL-ON-ERROR", "true")
	t.Setenv("INPUT_ONLY-CHANGED-FILES", "yes")
	t.Setenv("GITHUB_TOKEN", "ghs_token")

	cfg, err := FromEnvironment()
	require.NoError(t, err)

	assert.Equal(t, []string{"src", "packages/ui", "apps/web"}, cfg.Paths)
	assert.Equal(t, []string{"**/*.stories.svelte"}, cfg.Exclude)
	assert.True(t, cfg.FailOnError)
	assert.True(t, cfg.OnlyChanged)
	assert.False(t, cfg.FailOnWarning)
	assert.Equal(t, "ghs_token", cfg.GitHubToken)
}

func TestValidateRequiresCredentialsWhenAIEnabled(t *testing.T) {
	cfg := &Config{EnableAI: true, OpenAIKey: "key"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), AzureOpenAIEndpoint)
	assert.Contains(t, err.Error(), AzureOpenAIDeploymentID)
	assert.NotContains(t, err.Error(), AzureOpenAIKey+",")
}

func TestValidatePassesWithoutAI(t *testing.T) {
	cfg := &Config{EnableAI: false}
	assert.NoError(t, cfg.Validate())
}

func TestValidatePassesWithFullCredentials(t *testing.T) {
	cfg := &Config{
		EnableAI:         true,
		OpenAIKey:        "k",
		OpenAIEndpoint:   "https://example.openai.azure.com",
		OpenAIDeployment: "gpt-4o",
	}
	assert.NoError(t, cfg.Validate())
}

func TestProjectFileOverlay(t *testing.T) {
	clearInputs(t)
	dir := t.TempDir()
	content := "paths:\n  - src\nexclude:\n  - legacy/\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectConfigFile), []byte(content), 0o644))
	chdir(t, dir)

	cfg, err := FromEnvironment()
	require.NoError(t, err)

	assert.Equal(t, []string{"src"}, cfg.Paths)
	assert.Equal(t, []string{"legacy/"}, cfg.Exclude)
}

func TestProjectFileDoesNotOverrideInputs(t *testing.T) {
	clearInputs(t)
	dir := t.TempDir()
	content := "paths:\n  - from-file\nexclude:\n  - from-file/\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectConfigFile), []byte(content), 0o644))
	chdir(t, dir)
	t.Setenv("INPUT_PATHS", "from-input")

	cfg, err := FromEnvironment()
	require.NoError(t, err)

	assert.Equal(t, []string{"from-input"}, cfg.Paths)
	// Excludes accumulate.
	assert.Equal(t, []string{"from-file/"}, cfg.Exclude)
}

func TestProjectFileMalformed(t *testing.T) {
	clearInputs(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectConfigFile), []byte("paths: [unclosed"), 0o644))
	chdir(t, dir)

	_, err := FromEnvironment()
	assert.Error(t, err)
}
