package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestDisplayVersion(t *testing.T) {
	tests := map[string]string{
		"(devel)": "(devel)",
		"v1.2":    "v1.2.0",
		"1.4.2":   "v1.4.2",
		"v2.0.0":  "v2.0.0",
	}
	for in, want := range tests {
		assert.Equal(t, want, displayVersion(in), in)
	}
}

func TestRunAutoThenDays(t *testing.T) {
	t.Setenv("COUNTERLINE_LOG_LEVEL", "ERROR")
	db := filepath.Join(t.TempDir(), "test.db")

	out, err := execute(t, "run", "--day", "1", "--auto", "--interval", "1h", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "PASSED")

	out, err = execute(t, "days", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "passed")
	assert.Contains(t, out, "1/7 days passed")

	// Day 2 opened up, day 3 is still locked.
	_, err = execute(t, "run", "--day", "3", "--auto", "--interval", "1h", "--db", db)
	assert.ErrorContains(t, err, "locked")
}

func TestScenariosValidateBuiltin(t *testing.T) {
	out, err := execute(t, "scenarios", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "built-in days: ok")
}
