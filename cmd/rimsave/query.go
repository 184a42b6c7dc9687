// SPDX-FileCopyrightText: Copyright The rimsave Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rimsave/rimsave/pkg/savefile"
)

func newQueryCommand() *cobra.Command {
	queryCommand := &cobra.Command{
		Use:   "query SAVE PATH",
		Short: "Print the elements of a save that match a path expression",
		Long: `Print the elements of a save that match a path expression.

PATH uses the XPath-like syntax of etree, for example:
  /savegame/meta/gameVersion
  //ideos/li[name='Sunfolk']/precepts/li
  //li[@Class='Precept_Ritual']`,
		Args:              WrapArgsError(cobra.ExactArgs(2)),
		RunE:              queryAction,
		ValidArgsFunction: queryBashComplete,
		GroupID:           inspectCommand,
	}
	queryCommand.Flags().Bool("text", false, "Only print the inner text of the matching elements")
	queryCommand.Flags().Bool("count", false, "Only print the number of matching elements")
	queryCommand.Flags().Int("indent", 2, "Indentation of the printed XML, 0 keeps the original formatting")
	return queryCommand
}

func queryAction(cmd *cobra.Command, args []string) error {
	text, err := cmd.Flags().GetBool("text")
	if err != nil {
		return err
	}
	count, err := cmd.Flags().GetBool("count")
	if err != nil {
		return err
	}
	indent, err := cmd.Flags().GetInt("indent")
	if err != nil {
		return err
	}
	if text && count {
		return errors.New("option --text conflicts with --count")
	}

	doc, err := loadSave(args[0])
	if err != nil {
		return err
	}
	elems, err := doc.FindElements(args[1])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if count {
		fmt.Fprintln(out, len(elems))
		return nil
	}
	if len(elems) == 0 {
		logrus.Warnf("No element matches %q", args[1])
	}
	for _, e := range elems {
		if text {
			fmt.Fprintln(out, e.Text())
			continue
		}
		s, err := savefile.ElementString(e, indent)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, s)
	}
	return nil
}

func queryBashComplete(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return bashCompleteSaveNames(cmd)
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}
