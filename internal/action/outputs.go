package action

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/actions-marketplace-validations/DopplerHQ-secrets-fetch-action/internal/api"
)

// State files the runner sets in the environment of every step.
const (
	EnvGitHubOutput = "GITHUB_OUTPUT"
	EnvGitHubEnv    = "GITHUB_ENV"
)

// Runner talks back to the GitHub Actions runner: workflow commands on
// stdout and append-only records in the step's state files.
type Runner struct {
	Stdout     io.Writer
	OutputPath string
	EnvPath    string
}

// NewRunner returns a Runner wired to the current step's environment.
func NewRunner() *Runner {
	return &Runner{
		Stdout:     os.Stdout,
		OutputPath: os.Getenv(EnvGitHubOutput),
		EnvPath:    os.Getenv(EnvGitHubEnv),
	}
}

// Mask registers value with the runner's log scrubber.
func (r *Runner) Mask(value string) {
	fmt.Fprintf(r.Stdout, "::add-mask::%s\n", escapeData(value))
}

// SetOutput appends a step output to $GITHUB_OUTPUT.
func (r *Runner) SetOutput(name, value string) error {
	if r.OutputPath == "" {
		return fmt.Errorf("%s is not set", EnvGitHubOutput)
	}
	return appendFileCommand(r.OutputPath, name, value)
}

// ExportVariable appends an environment variable to $GITHUB_ENV.
func (r *Runner) ExportVariable(name, value string) error {
	if r.EnvPath == "" {
		return fmt.Errorf("%s is not set", EnvGitHubEnv)
	}
	return appendFileCommand(r.EnvPath, name, value)
}

// appendFileCommand writes one heredoc-delimited name/value record in the
// format the runner parses from its state files. The delimiter is
// randomized so secret values cannot terminate the record early.
func appendFileCommand(path, name, value string) error {
	delimiter := "ghadelimiter_" + uuid.NewString()
	if strings.Contains(name, delimiter) || strings.Contains(value, delimiter) {
		return fmt.Errorf("delimiter collision writing %q", name)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter)
	return err
}

// escapeData escapes the data segment of a workflow command.
func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}

// ShouldMask reports whether a secret value must be hidden from logs:
// auto-mask is on and the secret's visibility is anything but unmasked.
func ShouldMask(autoMask bool, visibility string) bool {
	return autoMask && visibility != api.VisibilityUnmasked
}
