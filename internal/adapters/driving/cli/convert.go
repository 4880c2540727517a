package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gdocs2md/internal/adapters/driven/storage/filesystem"
	"github.com/custodia-labs/gdocs2md/internal/config"
	"github.com/custodia-labs/gdocs2md/internal/connectors/github"
	"github.com/custodia-labs/gdocs2md/internal/connectors/google"
	"github.com/custodia-labs/gdocs2md/internal/connectors/google/drive"
	"github.com/custodia-labs/gdocs2md/internal/core/ports/driven"
	"github.com/custodia-labs/gdocs2md/internal/core/ports/driving"
	"github.com/custodia-labs/gdocs2md/internal/core/services"
	"github.com/custodia-labs/gdocs2md/internal/normalisers/markdown"
)

var convertDryRun bool

// newConverter builds the conversion service; tests replace it.
var newConverter = buildConverter

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert Drive documents and write them out",
	Long: `Exports every Google Doc below GDRIVE_FOLDER_ID as Markdown and writes it
to the configured sinks: the GitHub repository GITHUB_OWNER/GITHUB_REPO
and/or the directory LOCAL_ROOT.

The commit branch of each document is chosen from its phase property
through the GITHUB_BRANCH mapping. The run stops at the first error.`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().BoolVar(&convertDryRun, "dry-run", false, "Convert documents without writing them")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	converter, err := newConverter(ctx, cfg)
	if err != nil {
		return err
	}

	report, err := converter.Convert(ctx, driving.ConvertOptions{DryRun: convertDryRun})
	if report != nil {
		for _, w := range report.Writes {
			cmd.Printf("%-10s %-9s %s\n", w.Sink, w.Result.Action, w.Result.Path)
		}
	}
	if err != nil {
		return fmt.Errorf("convert failed: %w", err)
	}

	if convertDryRun {
		cmd.Printf("Dry run: %d documents converted, nothing written.\n", report.Documents)
	} else {
		cmd.Printf("Converted %d documents (%d writes).\n", report.Documents, len(report.Writes))
	}
	return nil
}

// buildConverter wires the Drive source, the normaliser and the configured sinks.
func buildConverter(ctx context.Context, cfg *config.Config) (driving.Converter, error) {
	ts, err := google.NewTokenSource(ctx, google.Credentials{
		File:        cfg.Drive.CredentialsFile,
		AccessToken: cfg.Drive.AccessToken,
	})
	if err != nil {
		return nil, err
	}
	svc, err := google.NewDriveService(ctx, ts)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	driveCfg := drive.DefaultConfig(cfg.Drive.FolderID)
	driveCfg.Recursive = cfg.Drive.Recursive
	driveCfg.PageSize = int64(cfg.Drive.PageSize)
	source, err := drive.NewSource(svc, driveCfg)
	if err != nil {
		return nil, err
	}

	normaliser := markdown.New(markdown.Options{
		Suffix:       cfg.Output.Suffix,
		Extension:    cfg.Output.Extension,
		ExtractCover: cfg.Output.ExtractCover,
	})

	return services.NewConvertService(source, normaliser, buildSinks(ctx, cfg)...), nil
}

func buildSinks(ctx context.Context, cfg *config.Config) []driven.MarkdownWriter {
	var sinks []driven.MarkdownWriter
	if cfg.GitHub.Enabled() {
		client := github.NewClientWithToken(ctx, cfg.GitHub.Token)
		writer := github.NewWriter(client, github.WithForceCommit(cfg.Output.ForceCommit))
		sinks = append(sinks, github.NewMarkdownWriter(writer, github.MarkdownWriterConfig{
			Target: github.Target{
				Owner:      cfg.GitHub.Owner,
				Repo:       cfg.GitHub.Repo,
				PathPrefix: cfg.GitHub.Path,
			},
			Branches:        cfg.GitHub.Branches,
			DefaultPhase:    cfg.GitHub.DefaultPhase,
			Committer:       cfg.GitHub.Committer,
			MessageTemplate: cfg.GitHub.Message,
		}))
	}
	if cfg.Output.LocalRoot != "" {
		sinks = append(sinks, filesystem.NewOsWriter(cfg.Output.LocalRoot))
	}
	return sinks
}
