package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// Not parallel: cobra commands share package-level flag state.
func TestAnalyzeDedup_WritesCSVReports(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "links.csv", "Link ID,Source,Source Port,Destination,Destination Port\n"+
		"L1,R1,Gi0/1,R2,Gi0/2\n"+
		"L2,R2,Eth2/1,R1,Eth1/1\n"+
		"L3,R3,Eth3/1,R4,Eth4/1\n")
	out := filepath.Join(dir, "reports")

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"analyze", "dedup", "--file", in, "--out", out, "--format", "csv"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	// No config.yaml next to the test, so built-in defaults apply.
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, buf.String(), "Unique links: 2")
	assert.Contains(t, buf.String(), "Rows removed: 1")

	cleaned, err := os.ReadFile(filepath.Join(out, "cleaned_links.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(cleaned), "L2,R2,Eth2/1,R1,Eth1/1")
	assert.NotContains(t, string(cleaned), "L1,")

	_, err = os.Stat(filepath.Join(out, "duplicate_links_summary.csv"))
	assert.NoError(t, err)
}
