package cli

import (
	"sort"

	"github.com/spf13/cobra"
)

var branchCmd = &cobra.Command{
	Use:   "branch [phase...]",
	Short: "Show the commit branch for document phases",
	Long: `Resolves each phase through the GITHUB_BRANCH mapping and prints the
branch a document with that phase is committed to. Without arguments the
whole mapping is printed.`,
	RunE: runBranch,
}

func init() {
	rootCmd.AddCommand(branchCmd)
}

func runBranch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	branches := cfg.GitHub.Branches

	if len(args) == 0 {
		if len(branches) == 0 {
			cmd.Println("No branch mapping configured.")
			return nil
		}
		phases := make([]string, 0, len(branches))
		for phase := range branches {
			phases = append(phases, phase)
		}
		sort.Strings(phases)
		for _, phase := range phases {
			cmd.Printf("%s -> %s\n", phase, branches[phase])
		}
		return nil
	}

	for _, phase := range args {
		branch, err := branches.Resolve(phase)
		if err != nil {
			return err
		}
		cmd.Printf("%s -> %s\n", phase, branch)
	}
	return nil
}
