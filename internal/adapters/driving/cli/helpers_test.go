package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gdocs2md/internal/config"
)

// setupCLITest isolates a command run from the machine's configuration and
// from flag values left behind by earlier tests.
func setupCLITest(t *testing.T) *bytes.Buffer {
	t.Helper()
	for _, key := range config.Keys {
		t.Setenv(key, "")
	}

	verbose, envFile, configFile = false, "", filepath.Join(t.TempDir(), "gdocs2md.toml")
	convertDryRun = false
	compareActual, compareExpected = "", ""

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	return buf
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
