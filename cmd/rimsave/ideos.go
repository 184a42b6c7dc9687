// SPDX-FileCopyrightText: Copyright The rimsave Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rimsave/rimsave/pkg/ideo"
	"github.com/rimsave/rimsave/pkg/textutil"
)

func newIdeosCommand() *cobra.Command {
	ideosCommand := &cobra.Command{
		Use:     "ideos",
		Short:   "Inspect the ideoligions of a save",
		GroupID: inspectCommand,
	}
	ideosCommand.AddCommand(newIdeosListCommand())
	return ideosCommand
}

func newIdeosListCommand() *cobra.Command {
	listCommand := &cobra.Command{
		Use:               "list SAVE",
		Aliases:           []string{"ls"},
		Short:             "List the ideoligions of a save",
		Args:              WrapArgsError(cobra.ExactArgs(1)),
		RunE:              ideosListAction,
		ValidArgsFunction: dedupeBashComplete,
	}
	listCommand.Flags().StringP("format", "f", "", "Format the output using the given Go template")
	listCommand.Flags().Bool("json", false, "JSONify output")
	listCommand.Flags().BoolP("quiet", "q", false, "Only show names")
	return listCommand
}

// ideoRow is one line of `ideos list`.
type ideoRow struct {
	Index      int    `json:"index"`
	Name       string `json:"name"`
	Precepts   int    `json:"precepts"`
	Duplicates int    `json:"duplicates"`
}

func newIdeoRow(x *ideo.Ideo) ideoRow {
	row := ideoRow{Index: x.Index, Name: x.Name}
	precepts, err := x.Precepts()
	if err != nil {
		logrus.WithError(err).Warnf("ideo %q has no precepts", x.Name)
		return row
	}
	row.Precepts = len(precepts)
	dups, _, err := ideo.FindDuplicates(x, ideo.KeyName)
	if err == nil {
		row.Duplicates = len(dups)
	}
	return row
}

func ideosListAction(cmd *cobra.Command, args []string) error {
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return err
	}
	goFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	jsonFormat, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	if quiet && jsonFormat {
		return errors.New("option --quiet conflicts with --json")
	}
	if goFormat != "" && jsonFormat {
		return errors.New("option --format conflicts with --json")
	}

	doc, err := loadSave(args[0])
	if err != nil {
		return err
	}
	ideos, err := ideo.Ideos(doc)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if quiet {
		for _, x := range ideos {
			fmt.Fprintln(out, x.Name)
		}
		return nil
	}

	if goFormat != "" {
		tmpl, err := textutil.Parse(goFormat)
		if err != nil {
			return err
		}
		for _, x := range ideos {
			if err := tmpl.Execute(out, newIdeoRow(x)); err != nil {
				return err
			}
			fmt.Fprintln(out)
		}
		return nil
	}
	if jsonFormat {
		for _, x := range ideos {
			b, err := json.Marshal(newIdeoRow(x))
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 4, 8, 4, ' ', 0)
	fmt.Fprintln(w, "INDEX\tNAME\tPRECEPTS\tDUPLICATES")

	if len(ideos) == 0 {
		logrus.Warn("No ideoligion found in the save.")
	}

	for _, x := range ideos {
		row := newIdeoRow(x)
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\n",
			row.Index,
			row.Name,
			row.Precepts,
			row.Duplicates,
		)
	}
	return w.Flush()
}
