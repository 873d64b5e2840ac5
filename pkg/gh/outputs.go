package gh

import (
	"fmt"
	"os"
)

// WriteOutput appends a key=value pair to the file named by GITHUB_OUTPUT.
// Outside an action run (variable unset) it is a no-op.
func WriteOutput(key, value string) error {
	return appendToEnvFile("GITHUB_OUTPUT", fmt.Sprintf("%s=%s\n", key, value))
}

// WriteStepSummary appends markdown to the file named by GITHUB_STEP_SUMMARY.
// Outside an action run it is a no-op.
func WriteStepSummary(markdown string) error {
	return appendToEnvFile("GITHUB_STEP_SUMMARY", markdown+"\n")
}

func appendToEnvFile(envVar, content string) error {
	path := os.Getenv(envVar)
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s file: %w", envVar, err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("writing %s file: %w", envVar, err)
	}
	return nil
}
