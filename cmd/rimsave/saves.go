// SPDX-FileCopyrightText: Copyright The rimsave Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/docker/go-units"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rimsave/rimsave/pkg/savedirs"
)

func newSavesCommand() *cobra.Command {
	savesCommand := &cobra.Command{
		Use:               "saves",
		Aliases:           []string{"ls"},
		Short:             "List the saves of the RimWorld saves directory",
		Args:              WrapArgsError(cobra.NoArgs),
		RunE:              savesAction,
		ValidArgsFunction: cobra.NoFileCompletions,
		GroupID:           inspectCommand,
	}
	savesCommand.Flags().Bool("json", false, "JSONify output")
	savesCommand.Flags().BoolP("quiet", "q", false, "Only show names")
	return savesCommand
}

func savesAction(cmd *cobra.Command, _ []string) error {
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return err
	}
	jsonFormat, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	saves, err := savedirs.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case quiet:
		for _, s := range saves {
			fmt.Fprintln(out, s.Name)
		}
		return nil
	case jsonFormat:
		for _, s := range saves {
			b, err := json.Marshal(s)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
		}
		return nil
	}

	if len(saves) == 0 {
		logrus.Warn("No save found.")
	}
	w := tabwriter.NewWriter(out, 4, 8, 4, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tMODIFIED")
	for _, s := range saves {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			s.Name,
			units.BytesSize(float64(s.Size)),
			s.Modified.Format(time.DateTime),
		)
	}
	return w.Flush()
}
