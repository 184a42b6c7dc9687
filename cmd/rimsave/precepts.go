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

	"github.com/rimsave/rimsave/cmd/rimsave/saveflags"
	"github.com/rimsave/rimsave/pkg/ideo"
	"github.com/rimsave/rimsave/pkg/savefile"
	"github.com/rimsave/rimsave/pkg/textutil"
	"github.com/rimsave/rimsave/pkg/uiutil"
)

func newPreceptsCommand() *cobra.Command {
	preceptsCommand := &cobra.Command{
		Use:     "precepts",
		Short:   "Inspect and clean the precepts of ideoligions",
		GroupID: editCommand,
	}
	preceptsCommand.AddCommand(
		newPreceptsDedupeCommand(),
		newPreceptsListCommand(),
	)
	return preceptsCommand
}

func registerDedupeFlags(cmd *cobra.Command) {
	cmd.Flags().String("ideo", "", "Only process the ideoligion with this name")
	cmd.Flags().String("key", string(ideo.KeyName), "Field that identifies duplicate precepts [name, def]")
	_ = cmd.RegisterFlagCompletionFunc("key", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(ideo.KeyName), string(ideo.KeyDef)}, cobra.ShellCompDirectiveNoFileComp
	})
	saveflags.RegisterWrite(cmd)
}

func newPreceptsDedupeCommand() *cobra.Command {
	dedupeCommand := &cobra.Command{
		Use:     "dedupe SAVE",
		Aliases: []string{"remove-extra"},
		Short:   "Remove extra/duplicate precepts from a single or all ideoligions",
		Long: `Remove extra/duplicate precepts from a single or all ideoligions.

The first precept with a given name is kept; every later one is removed after
confirmation. Rituals, roles and other precepts with a Class attribute are
never touched. The original save is kept next to it with the backup suffix.`,
		Args:              WrapArgsError(cobra.ExactArgs(1)),
		RunE:              dedupeAction,
		ValidArgsFunction: dedupeBashComplete,
	}
	registerDedupeFlags(dedupeCommand)
	return dedupeCommand
}

func newRemoveExtraPreceptsCommand() *cobra.Command {
	cmd := newPreceptsDedupeCommand()
	cmd.Use = "remove-extra-precepts SAVE"
	cmd.Aliases = nil
	cmd.Short = "Alias of `precepts dedupe`"
	cmd.GroupID = editCommand
	return cmd
}

func selectIdeos(doc *savefile.Document, name string) ([]*ideo.Ideo, error) {
	ideos, err := ideo.Ideos(doc)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return ideos, nil
	}
	found := ideo.Find(ideos, name)
	if len(found) == 0 {
		return nil, fmt.Errorf("ideo %q not found in %q", name, doc.Path)
	}
	return found, nil
}

func dedupeAction(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	ideoName, err := flags.GetString("ideo")
	if err != nil {
		return err
	}
	keyFlag, err := flags.GetString("key")
	if err != nil {
		return err
	}
	key, err := ideo.ParseKey(keyFlag)
	if err != nil {
		return err
	}
	dryRun, err := saveflags.DryRun(flags)
	if err != nil {
		return err
	}
	opts, err := saveflags.WriteOptions(flags)
	if err != nil {
		return err
	}
	c, err := confirmer(cmd)
	if err != nil {
		return err
	}
	if dryRun {
		c = ideo.ConfirmFunc(func(string, bool) (bool, error) { return true, nil })
	}

	doc, err := loadSave(args[0])
	if err != nil {
		return err
	}
	ideos, err := selectIdeos(doc, ideoName)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	status := statusOut(cmd)
	var removed int
	for _, x := range ideos {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("interrupted, %q was not modified: %w", doc.Path, err)
		}
		res, err := ideo.Dedupe(x, key, c)
		if err != nil {
			if errors.Is(err, ideo.ErrNoPrecepts) {
				status.Failf("No precepts node found in ideo %s", x.Name)
				continue
			}
			if errors.Is(err, uiutil.InterruptErr) {
				return fmt.Errorf("interrupted, %q was not modified: %w", doc.Path, err)
			}
			return err
		}
		for _, p := range res.Removed {
			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "Would remove precept %s with def %s from ideo %s\n", p.Name, p.Def, x.Name)
			} else {
				logrus.Infof("Removing precept %s with def %s from ideo %s", p.Name, p.Def, x.Name)
			}
		}
		for _, msg := range res.LeftoverMessages() {
			status.Warnf("%s", msg)
		}
		removed += len(res.Removed)
	}

	if removed == 0 {
		status.Warnf("No Changes!")
		return nil
	}
	if dryRun {
		status.Warnf("Dry run: %d precept(s) would be removed, %q was not modified", removed, doc.Path)
		return nil
	}
	wr, err := doc.Write(opts)
	if err != nil {
		return err
	}
	entry := logrus.WithField("path", wr.Path)
	if wr.BackupPath != "" {
		entry = entry.WithField("backup", wr.BackupPath)
	}
	entry.Infof("Removed %d precept(s)", removed)
	status.Successf("Done!")
	return nil
}

func dedupeBashComplete(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return bashCompleteSaveNames(cmd)
}

func newPreceptsListCommand() *cobra.Command {
	listCommand := &cobra.Command{
		Use:               "list SAVE",
		Aliases:           []string{"ls"},
		Short:             "List the precepts of the ideoligions of a save",
		Args:              WrapArgsError(cobra.ExactArgs(1)),
		RunE:              preceptsListAction,
		ValidArgsFunction: dedupeBashComplete,
	}
	listCommand.Flags().String("ideo", "", "Only list the ideoligion with this name")
	listCommand.Flags().String("key", string(ideo.KeyName), "Field that identifies duplicate precepts [name, def]")
	listCommand.Flags().Bool("duplicates-only", false, "Only list duplicate precepts")
	listCommand.Flags().StringP("format", "f", "", "Format the output using the given Go template")
	listCommand.Flags().Bool("json", false, "JSONify output")
	return listCommand
}

// preceptRow is one line of `precepts list`.
type preceptRow struct {
	Ideo string `json:"ideo"`
	*ideo.Precept
	Duplicate bool `json:"duplicate"`
}

func preceptRows(ideos []*ideo.Ideo, key ideo.Key, duplicatesOnly bool) []preceptRow {
	var rows []preceptRow
	for _, x := range ideos {
		precepts, err := x.Precepts()
		if err != nil {
			logrus.WithError(err).Warnf("Skipping ideo %q", x.Name)
			continue
		}
		dups, _, err := ideo.FindDuplicates(x, key)
		if err != nil {
			logrus.WithError(err).Warnf("Skipping ideo %q", x.Name)
			continue
		}
		dupIndex := make(map[int]struct{}, len(dups))
		for _, p := range dups {
			dupIndex[p.Index] = struct{}{}
		}
		for _, p := range precepts {
			_, dup := dupIndex[p.Index]
			if duplicatesOnly && !dup {
				continue
			}
			rows = append(rows, preceptRow{Ideo: x.Name, Precept: p, Duplicate: dup})
		}
	}
	return rows
}

func preceptsListAction(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	ideoName, err := flags.GetString("ideo")
	if err != nil {
		return err
	}
	keyFlag, err := flags.GetString("key")
	if err != nil {
		return err
	}
	key, err := ideo.ParseKey(keyFlag)
	if err != nil {
		return err
	}
	duplicatesOnly, err := flags.GetBool("duplicates-only")
	if err != nil {
		return err
	}
	goFormat, err := flags.GetString("format")
	if err != nil {
		return err
	}
	jsonFormat, err := flags.GetBool("json")
	if err != nil {
		return err
	}
	if goFormat != "" && jsonFormat {
		return errors.New("option --format conflicts with --json")
	}

	doc, err := loadSave(args[0])
	if err != nil {
		return err
	}
	ideos, err := selectIdeos(doc, ideoName)
	if err != nil {
		return err
	}
	rows := preceptRows(ideos, key, duplicatesOnly)

	out := cmd.OutOrStdout()
	switch {
	case goFormat != "":
		tmpl, err := textutil.Parse(goFormat)
		if err != nil {
			return err
		}
		for _, row := range rows {
			if err := tmpl.Execute(out, row); err != nil {
				return err
			}
			fmt.Fprintln(out)
		}
		return nil
	case jsonFormat:
		for _, row := range rows {
			b, err := json.Marshal(row)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 4, 8, 4, ' ', 0)
	fmt.Fprintln(w, "IDEO\tINDEX\tNAME\tDEF\tCLASS\tDUPLICATE")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%v\n",
			row.Ideo,
			row.Index,
			row.Name,
			row.Def,
			row.Class,
			row.Duplicate,
		)
	}
	return w.Flush()
}
