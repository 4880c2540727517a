package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gdocs2md/internal/snapshot"
)

var (
	compareActual   string
	compareExpected string
)

// errSnapshotMismatch is returned when the trees differ.
var errSnapshotMismatch = errors.New("snapshot mismatch")

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare generated Markdown against a stored snapshot",
	Long: `Compares every file below --actual with the file at the same relative
path below --expected. Missing, extra and differing files are reported,
differences with a unified diff. Exits non-zero when the trees differ.`,
	Args: cobra.NoArgs,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareActual, "actual", "", "Directory with freshly generated Markdown")
	compareCmd.Flags().StringVar(&compareExpected, "expected", "", "Directory with the expected Markdown")
	_ = compareCmd.MarkFlagRequired("actual")
	_ = compareCmd.MarkFlagRequired("expected")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	actual, err := snapshot.NewDirFs(compareActual)
	if err != nil {
		return fmt.Errorf("actual: %w", err)
	}
	expected, err := snapshot.NewDirFs(compareExpected)
	if err != nil {
		return fmt.Errorf("expected: %w", err)
	}

	mismatches, err := snapshot.Compare(actual, expected)
	if err != nil {
		return err
	}
	if len(mismatches) == 0 {
		cmd.Println("Snapshots match.")
		return nil
	}

	for _, m := range mismatches {
		cmd.Println(m.String())
		if m.Diff != "" {
			cmd.Print(m.Diff)
		}
	}
	return fmt.Errorf("%w: %d files differ", errSnapshotMismatch, len(mismatches))
}
