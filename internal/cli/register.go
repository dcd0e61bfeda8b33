package cli

import (
	"github.com/ksyq12/phpvhost/internal/config"
	"github.com/ksyq12/phpvhost/internal/errors"
	"github.com/ksyq12/phpvhost/internal/output"
	"github.com/spf13/cobra"
)

var (
	entryPoint   string
	basePathFlag string
)

var registerCmd = &cobra.Command{
	Use:     "register <name>",
	Aliases: []string{"add"},
	Short:   "Register a project as <name>.test",
	Long: `Register a project under the base path as https://<name>.test.

The document root is <base path>/<entry>, where entry defaults to
<name>/public. On first use the base path is asked for interactively, or
can be given with --base-path.

Examples:
  phpvhost register shop
  phpvhost register blog --entry blog/web
  phpvhost register api --base-path ~/Projects`,
	Args: cobra.ExactArgs(1),
	RunE: runRegister,
}

func init() {
	registerCmd.Flags().StringVarP(&entryPoint, "entry", "e", "", "Document root relative to the base path (default <name>/public)")
	registerCmd.Flags().StringVar(&basePathFlag, "base-path", "", "Set and save the projects base path")

	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	name := args[0]

	// Validate name
	if err := validateName(name); err != nil {
		return err
	}
	domain := config.DomainFor(name)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := ensureBasePath(cfg, basePathFlag); err != nil {
		return err
	}

	entry := entryPoint
	if entry == "" {
		entry = config.DefaultEntry(config.NameFor(domain))
	}
	root := cfg.DocumentRoot(entry)

	tools, err := loadTools()
	if err != nil {
		return err
	}

	progress("Registering %s -> %s", domain, root)
	res, err := tools.Reconciler().Register(domain, root)
	if err != nil {
		return err
	}
	reportWarnings(res)

	result := newResult("register", res)
	result.Message = "https://" + domain
	return outputResult(result, "Project registered: https://%s", domain)
}

// ensureBasePath makes sure cfg has a base path. An explicit flag value
// replaces the saved one; a missing one is asked for on a terminal.
func ensureBasePath(cfg *config.Config, flagValue string) error {
	if flagValue != "" {
		if err := cfg.SetBasePath(flagValue); err != nil {
			return errors.Wrap(errors.ErrCodeValidation, "invalid base path", err)
		}
		return saveConfig(cfg)
	}
	if cfg.HasBasePath() {
		return nil
	}

	if !deps.Terminal.IsInteractive() {
		return errors.Validation("no base path configured; run 'phpvhost config --base-path <dir>'")
	}

	answer, err := prompt("Base path for your projects (e.g. ~/Projects): ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeValidation, "failed to read base path", err)
	}
	if err := cfg.SetBasePath(answer); err != nil {
		return errors.Wrap(errors.ErrCodeValidation, "invalid base path", err)
	}
	if err := saveConfig(cfg); err != nil {
		return err
	}
	if !jsonOutput {
		output.Success("Base path saved: %s", cfg.BasePath)
	}
	return nil
}
