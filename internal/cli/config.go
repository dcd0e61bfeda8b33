package cli

import (
	"github.com/ksyq12/phpvhost/internal/config"
	"github.com/ksyq12/phpvhost/internal/output"
	"github.com/spf13/cobra"
)

var configBasePath string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	Long: `Show the saved base path and the detected system layout, or change
the base path.

Layout paths can be overridden with PHPVHOST_* environment variables or in
~/.config/phpvhost/env.

Examples:
  phpvhost config
  phpvhost config --base-path ~/Projects`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&configBasePath, "base-path", "", "Set the projects base path")

	rootCmd.AddCommand(configCmd)
}

// configView is the config command output
type configView struct {
	BasePath     string `json:"base_path"`
	ConfigFile   string `json:"config_file,omitempty"`
	Platform     string `json:"platform"`
	ServerConfig string `json:"server_config"`
	VHostDir     string `json:"vhost_dir"`
	HostsFile    string `json:"hosts_file"`
	CertDir      string `json:"cert_dir"`
	Service      string `json:"service"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if configBasePath != "" {
		if err := ensureBasePath(cfg, configBasePath); err != nil {
			return err
		}
		if !jsonOutput {
			output.Success("Base path set to %s", cfg.BasePath)
		}
	}

	tools, err := loadTools()
	if err != nil {
		return err
	}
	layout := tools.Layout

	view := configView{
		BasePath:     cfg.BasePath,
		Platform:     string(layout.Family),
		ServerConfig: layout.ServerConfig,
		VHostDir:     layout.VHostDir,
		HostsFile:    layout.HostsFile,
		CertDir:      layout.CertDir,
		Service:      layout.ServiceManager + " " + layout.Service,
	}
	if path, err := config.ConfigPath(); err == nil {
		view.ConfigFile = path
	}

	if jsonOutput {
		return output.JSON(view)
	}

	basePath := view.BasePath
	if basePath == "" {
		basePath = "(not set)"
	}
	output.Print("Base path:     %s", basePath)
	output.Print("Config file:   %s", view.ConfigFile)
	output.Print("Platform:      %s", view.Platform)
	output.Print("Apache config: %s", view.ServerConfig)
	output.Print("VHost dir:     %s", view.VHostDir)
	output.Print("Hosts file:    %s", view.HostsFile)
	output.Print("Cert dir:      %s", view.CertDir)
	output.Print("Service:       %s", view.Service)
	return nil
}
