// Package cli provides the gdocs2md command line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gdocs2md/internal/config"
	"github.com/custodia-labs/gdocs2md/internal/logger"
)

var (
	// version is set at build time via SetVersion.
	version = "dev"

	verbose    bool
	envFile    string
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "gdocs2md",
	Short: "Convert Google Docs to Markdown",
	Long: `gdocs2md exports the Google Docs of a Drive folder as Markdown with
front-matter and writes them to a GitHub repository, a local directory, or both.

Settings are read from ./.env, the file named by ENV_PATH, the process
environment and an optional gdocs2md.toml project file.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Env file read after ./.env (overrides ENV_PATH)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "TOML project file (default ./gdocs2md.toml)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// loadConfig resolves configuration from the persistent flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{
		EnvFile:     envFile,
		ProjectFile: configFile,
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("configuration:\n%s", cfg)
	return cfg, nil
}
