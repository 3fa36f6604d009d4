package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// cli runs commands in-process against one file store.
type cli struct {
	t         *testing.T
	storePath string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	return &cli{t: t, storePath: filepath.Join(t.TempDir(), "store.json")}
}

// run executes args with the test store and returns stdout.
func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	return execute(append(args, "--store", "file", "--store-path", c.storePath, "--offline")...)
}

// execute runs the root command with exactly args and returns stdout.
func execute(args ...string) (string, error) {
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	defer resetFlags(rootCmd)

	err := rootCmd.Execute()
	return out.String(), err
}

// mustRun runs args and fails the test on error.
func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, "args: %v", args)
	return out
}

// runJSON runs args with --json and decodes stdout into v.
func runJSON[T any](c *cli, args ...string) T {
	c.t.Helper()
	out := c.mustRun(append(args, "--json")...)
	var v T
	require.NoError(c.t, json.Unmarshal([]byte(out), &v), out)
	return v
}

// resetFlags restores every flag to its default so package-level flag
// variables do not leak between in-process runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
