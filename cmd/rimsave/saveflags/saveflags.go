// SPDX-FileCopyrightText: Copyright The rimsave Authors
// SPDX-License-Identifier: Apache-2.0

// Package saveflags holds the flags shared by the commands that rewrite a save.
package saveflags

import (
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	"github.com/rimsave/rimsave/pkg/savefile"
)

// RegisterWrite registers flags related to writing the edited save.
func RegisterWrite(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Bool("dry-run", false, "Show what would change without writing anything")
	flags.String("backup-suffix", savefile.DefaultBackupSuffix, "Suffix of the backup of the original save. Empty disables the backup")
	flags.StringP("output", "o", "", "Write the edited save to this path instead of replacing the original")
	_ = cmd.RegisterFlagCompletionFunc("backup-suffix", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{savefile.DefaultBackupSuffix, ".orig"}, cobra.ShellCompDirectiveNoFileComp
	})
}

// DryRun returns the value of --dry-run.
func DryRun(flags *flag.FlagSet) (bool, error) {
	return flags.GetBool("dry-run")
}

// WriteOptions converts the flags registered by RegisterWrite.
func WriteOptions(flags *flag.FlagSet) (savefile.WriteOptions, error) {
	var opts savefile.WriteOptions
	var err error
	opts.BackupSuffix, err = flags.GetString("backup-suffix")
	if err != nil {
		return opts, err
	}
	if opts.BackupSuffix != "" && filepath.Base(opts.BackupSuffix) != opts.BackupSuffix {
		return opts, errors.New("--backup-suffix must not contain a path separator")
	}
	opts.Output, err = flags.GetString("output")
	if err != nil {
		return opts, err
	}
	if opts.Output != "" {
		opts.Output, err = filepath.Abs(opts.Output)
		if err != nil {
			return opts, err
		}
	}
	return opts, nil
}
