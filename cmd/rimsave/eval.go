// SPDX-FileCopyrightText: Copyright The rimsave Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/rimsave/rimsave/pkg/savedirs"
	"github.com/rimsave/rimsave/pkg/savefile"
	"github.com/rimsave/rimsave/pkg/yqutil"
)

func newEvalCommand() *cobra.Command {
	evalCommand := &cobra.Command{
		Use:   "eval SAVE EXPRESSION [EXPRESSION, ...]",
		Short: "Evaluate yq expressions over a save",
		Long: `Evaluate yq expressions over a save.

The save is decoded as XML; attributes are prefixed with "+@".
Multiple expressions are piped into each other.`,
		Example: `  $ rimsave eval MyColony '.savegame.meta.modNames.li'
  $ rimsave eval MyColony '.savegame.game.world.ideoManager.ideos.li[].name'`,
		Args:              WrapArgsError(cobra.MinimumNArgs(2)),
		RunE:              evalAction,
		ValidArgsFunction: queryBashComplete,
		GroupID:           inspectCommand,
	}
	evalCommand.Flags().String("output-format", "yaml", "Output format [yaml, xml, json, props]")
	return evalCommand
}

func evalAction(cmd *cobra.Command, args []string) error {
	outputFormat, err := cmd.Flags().GetString("output-format")
	if err != nil {
		return err
	}
	p, err := savedirs.Resolve(args[0])
	if err != nil {
		return err
	}
	// yq decodes the file itself; only the path is checked here.
	if _, err := savefile.Stat(p); err != nil {
		return err
	}
	out, err := yqutil.EvaluateFile(yqutil.Join(args[1:]), p, outputFormat)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
