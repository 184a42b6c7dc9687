// SPDX-FileCopyrightText: Copyright The rimsave Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rimsave/rimsave/pkg/savedirs"
	"github.com/rimsave/rimsave/pkg/savefile"
)

func newRestoreCommand() *cobra.Command {
	restoreCommand := &cobra.Command{
		Use:               "restore SAVE",
		Short:             "Restore a save from its backup",
		Args:              WrapArgsError(cobra.ExactArgs(1)),
		RunE:              restoreAction,
		ValidArgsFunction: dedupeBashComplete,
		GroupID:           editCommand,
	}
	restoreCommand.Flags().String("backup-suffix", savefile.DefaultBackupSuffix, "Suffix of the backup to restore")
	return restoreCommand
}

func restoreAction(cmd *cobra.Command, args []string) error {
	suffix, err := cmd.Flags().GetString("backup-suffix")
	if err != nil {
		return err
	}
	if suffix == "" {
		return errors.New("--backup-suffix must not be empty")
	}
	p, err := savedirs.Resolve(args[0])
	if err != nil {
		return err
	}
	backup := p + suffix
	// The backup must still be a parseable save.
	if _, err := savefile.Load(backup); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("no backup found for %q", p)
		}
		return err
	}

	c, err := confirmer(cmd)
	if err != nil {
		return err
	}
	ok, err := c.Confirm(fmt.Sprintf("Replace %q with its backup %q?", p, backup), true)
	if err != nil {
		return err
	}
	if !ok {
		logrus.Info("Aborting, as requested")
		return nil
	}
	if err := os.Rename(backup, p); err != nil {
		return err
	}
	statusOut(cmd).Successf("Restored %q", p)
	return nil
}
