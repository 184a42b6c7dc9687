// SPDX-FileCopyrightText: Copyright The rimsave Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	validateCommand := &cobra.Command{
		Use:               "validate SAVE [SAVE, ...]",
		Short:             "Check that saves parse as XML",
		Args:              WrapArgsError(cobra.MinimumNArgs(1)),
		RunE:              validateAction,
		ValidArgsFunction: validateBashComplete,
		GroupID:           inspectCommand,
	}
	return validateCommand
}

func validateAction(cmd *cobra.Command, args []string) error {
	status := statusOut(cmd)
	var failed int
	for _, f := range args {
		doc, err := loadSave(f)
		if err != nil {
			logrus.WithError(err).Errorf("%q: invalid", f)
			failed++
			continue
		}
		if !doc.HasHeader() {
			logrus.Warnf("%q: no XML declaration, one will be added on write", doc.Path)
		}
		status.Successf("%q: OK", doc.Path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d save(s) failed to validate", failed, len(args))
	}
	return nil
}

func validateBashComplete(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return bashCompleteSaveNames(cmd)
}
