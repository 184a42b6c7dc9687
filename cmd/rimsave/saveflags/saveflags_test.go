// SPDX-FileCopyrightText: Copyright The rimsave Authors
// SPDX-License-Identifier: Apache-2.0

package saveflags

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"gotest.tools/v3/assert"
)

func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	RegisterWrite(cmd)
	assert.NilError(t, cmd.ParseFlags(args))
	return cmd
}

func TestWriteOptionsDefault(t *testing.T) {
	cmd := newTestCommand(t)
	opts, err := WriteOptions(cmd.Flags())
	assert.NilError(t, err)
	assert.Equal(t, opts.BackupSuffix, ".bak")
	assert.Equal(t, opts.Output, "")
	dryRun, err := DryRun(cmd.Flags())
	assert.NilError(t, err)
	assert.Assert(t, !dryRun)
}

func TestWriteOptions(t *testing.T) {
	cmd := newTestCommand(t, "--backup-suffix=", "-o", "edited.rws", "--dry-run")
	opts, err := WriteOptions(cmd.Flags())
	assert.NilError(t, err)
	assert.Equal(t, opts.BackupSuffix, "")
	assert.Assert(t, filepath.IsAbs(opts.Output))
	assert.Equal(t, filepath.Base(opts.Output), "edited.rws")
	dryRun, err := DryRun(cmd.Flags())
	assert.NilError(t, err)
	assert.Assert(t, dryRun)
}

func TestWriteOptionsInvalidSuffix(t *testing.T) {
	cmd := newTestCommand(t, "--backup-suffix=/tmp/x")
	_, err := WriteOptions(cmd.Flags())
	assert.ErrorContains(t, err, "path separator")
}
