package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gdocs2md/internal/connectors/github"
	"github.com/custodia-labs/gdocs2md/internal/logger"
)

// validateGitHubToken checks a token against the API; tests replace it.
var validateGitHubToken = func(ctx context.Context, token string) error {
	return github.NewClientWithToken(ctx, token).ValidateCredentials(ctx)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration",
	Long: `Loads the configuration, reports missing settings and, when a GitHub
target is configured, verifies that GITHUB_TOKEN is accepted by the API.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	for _, f := range cfg.Files {
		cmd.Printf("Read %s\n", f)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.GitHub.Enabled() {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if err := validateGitHubToken(ctx, cfg.GitHub.Token); err != nil {
			return fmt.Errorf("GitHub token %s rejected: %w", logger.Redact(cfg.GitHub.Token), err)
		}
		cmd.Printf("GitHub: %s/%s, default branch %s\n", cfg.GitHub.Owner, cfg.GitHub.Repo, cfg.GitHub.Branches.Default())
	}
	if cfg.Output.LocalRoot != "" {
		cmd.Printf("Local: %s\n", cfg.Output.LocalRoot)
	}
	cmd.Println("Configuration OK.")
	return nil
}
