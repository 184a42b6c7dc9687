// SPDX-FileCopyrightText: Copyright The rimsave Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rimsave/rimsave/pkg/ideo"
	"github.com/rimsave/rimsave/pkg/progressbar"
	"github.com/rimsave/rimsave/pkg/savedirs"
	"github.com/rimsave/rimsave/pkg/savefile"
	"github.com/rimsave/rimsave/pkg/uiutil"
)

// loadSave resolves arg (a path or the name of a save) and parses it.
func loadSave(arg string) (*savefile.Document, error) {
	p, err := savedirs.Resolve(arg)
	if err != nil {
		return nil, err
	}
	doc, err := savefile.LoadProgress(p, progressbar.Reader)
	if err != nil {
		return nil, err
	}
	if !doc.IsSave() {
		logrus.Warnf("%q does not look like a RimWorld save (root element is <%s>)", p, doc.Root().Tag)
	}
	return doc, nil
}

// confirmer returns a prompt when --tty is set, otherwise a confirmer that
// always accepts the default answer.
func confirmer(cmd *cobra.Command) (ideo.Confirmer, error) {
	tty, err := cmd.Flags().GetBool("tty")
	if err != nil {
		return nil, err
	}
	if tty {
		return ideo.ConfirmFunc(uiutil.Confirm), nil
	}
	return ideo.ConfirmFunc(func(message string, defaultValue bool) (bool, error) {
		logrus.Debugf("%s (non-interactive, answering %v)", message, defaultValue)
		return defaultValue, nil
	}), nil
}

func statusOut(cmd *cobra.Command) *uiutil.Status {
	return uiutil.NewStatus(cmd.OutOrStdout())
}

func bashCompleteSaveNames(_ *cobra.Command) ([]string, cobra.ShellCompDirective) {
	saves, err := savedirs.List()
	if err != nil {
		return nil, cobra.ShellCompDirectiveDefault
	}
	var names []string
	for _, s := range saves {
		names = append(names, s.Name)
	}
	return names, cobra.ShellCompDirectiveDefault
}
