package cli

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ksyq12/phpvhost/internal/config"
	"github.com/ksyq12/phpvhost/internal/errors"
	"github.com/ksyq12/phpvhost/internal/input"
	"github.com/ksyq12/phpvhost/internal/output"
	"github.com/ksyq12/phpvhost/internal/reconcile"
)

// loadConfig loads the persisted user config
func loadConfig() (*config.Config, error) {
	cfg, err := deps.ConfigLoader.Load()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, "failed to load config", err)
	}
	return cfg, nil
}

// saveConfig saves the config and returns error instead of just warning
func saveConfig(cfg *config.Config) error {
	if err := deps.ConfigLoader.Save(cfg); err != nil {
		return errors.Wrap(errors.ErrCodeConfig, "failed to save config", err)
	}
	return nil
}

// outputResult handles JSON or human-readable output
func outputResult(data interface{}, successMsg string, args ...interface{}) error {
	if jsonOutput {
		return output.JSON(data)
	}
	output.Success(successMsg, args...)
	return nil
}

// prompt prints question and returns the trimmed answer
func prompt(question string) (string, error) {
	output.Prompt("%s", question)
	return input.Line(deps.StdinReader)
}

// confirm asks a y/N question; anything but y or yes is a no
func confirm(question string) bool {
	answer, err := prompt(question + " [y/N]: ")
	if err != nil {
		return false
	}
	return input.IsYes(answer)
}

var projectNamePattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// validateName checks that name yields a single-label .test domain
func validateName(name string) error {
	name = config.NameFor(strings.ToLower(strings.TrimSpace(name)))
	if name == "" {
		return errors.Validation("project name cannot be empty")
	}
	if !projectNamePattern.MatchString(name) {
		return errors.Validation(fmt.Sprintf("invalid project name %q: use lowercase letters, digits and inner hyphens", name))
	}
	return nil
}

// reportWarnings prints the non-fatal problems of a pipeline run
func reportWarnings(res *reconcile.Result) {
	if jsonOutput || res == nil {
		return
	}
	for _, w := range res.Warnings {
		output.Warn("%s", w)
	}
}

// CommandResult represents a common result structure for CLI commands
type CommandResult struct {
	Success  bool                   `json:"success"`
	Domain   string                 `json:"domain"`
	Action   string                 `json:"action,omitempty"`
	Message  string                 `json:"message,omitempty"`
	Restart  bool                   `json:"restarted"`
	Steps    []reconcile.StepResult `json:"steps,omitempty"`
	Warnings []string               `json:"warnings,omitempty"`
}

// newResult builds the command result for a pipeline run
func newResult(action string, res *reconcile.Result) CommandResult {
	return CommandResult{
		Success:  true,
		Domain:   res.Domain,
		Action:   action,
		Restart:  res.Restarted(),
		Steps:    res.Steps,
		Warnings: res.Warnings,
	}
}

// progress prints a step message unless JSON output is requested
func progress(format string, args ...interface{}) {
	if !jsonOutput {
		output.Info(format, args...)
	}
}
