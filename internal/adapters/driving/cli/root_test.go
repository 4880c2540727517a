package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gdocs2md/internal/logger"
)

func TestRootCmd_Subcommands(t *testing.T) {
	names := make([]string, 0, len(rootCmd.Commands()))
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}

	for _, want := range []string{"branch", "check", "compare", "convert", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"verbose", "env-file", "config"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
}

func TestRootCmd_VerboseFlag(t *testing.T) {
	setupCLITest(t)
	defer logger.SetVerbose(false)

	rootCmd.SetArgs([]string{"--verbose", "version"})
	require.NoError(t, Execute(context.Background()))

	assert.True(t, logger.IsVerbose())
}

func TestLoadConfig_UsesEnvFileFlag(t *testing.T) {
	setupCLITest(t)
	envFile = writeEnvFile(t, "GITHUB_OWNER=octo\n")

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, "octo", cfg.GitHub.Owner)
}
