// SPDX-FileCopyrightText: Copyright The rimsave Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/rimsave/rimsave/pkg/ideo"
	"github.com/rimsave/rimsave/pkg/meta"
	"github.com/rimsave/rimsave/pkg/savefile"
)

func newInfoCommand() *cobra.Command {
	infoCommand := &cobra.Command{
		Use:               "info SAVE",
		Short:             "Show diagnostic information about a save",
		Args:              WrapArgsError(cobra.ExactArgs(1)),
		RunE:              infoAction,
		ValidArgsFunction: dedupeBashComplete,
		GroupID:           inspectCommand,
	}
	infoCommand.Flags().Bool("json", false, "JSONify output")
	return infoCommand
}

// saveInfo is the output of `info`.
type saveInfo struct {
	Path      string `json:"path"`
	Size      int64  `json:"size"`
	HasHeader bool   `json:"hasHeader"`
	meta.Meta
	Ideos      []string `json:"ideos"`
	Duplicates int      `json:"duplicatePrecepts"`
}

func newSaveInfo(doc *savefile.Document) saveInfo {
	inf := saveInfo{
		Path:      doc.Path,
		Size:      int64(len(doc.Original())),
		HasHeader: doc.HasHeader(),
		Meta:      meta.Read(doc),
	}
	ideos, err := ideo.Ideos(doc)
	if err != nil {
		return inf
	}
	for _, x := range ideos {
		inf.Ideos = append(inf.Ideos, x.Name)
		if dups, _, err := ideo.FindDuplicates(x, ideo.KeyName); err == nil {
			inf.Duplicates += len(dups)
		}
	}
	return inf
}

func infoAction(cmd *cobra.Command, args []string) error {
	jsonFormat, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	doc, err := loadSave(args[0])
	if err != nil {
		return err
	}
	inf := newSaveInfo(doc)

	out := cmd.OutOrStdout()
	if jsonFormat {
		b, err := json.MarshalIndent(inf, "", "    ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	}

	w := tabwriter.NewWriter(out, 4, 8, 4, ' ', 0)
	fmt.Fprintf(w, "Path:\t%s\n", inf.Path)
	fmt.Fprintf(w, "Size:\t%s\n", units.HumanSize(float64(inf.Size)))
	fmt.Fprintf(w, "Game version:\t%s\n", inf.GameVersion)
	fmt.Fprintf(w, "Mods:\t%d\n", len(inf.ModIDs))
	fmt.Fprintf(w, "Ideoligions:\t%d\n", len(inf.Ideos))
	fmt.Fprintf(w, "Duplicate precepts:\t%d\n", inf.Duplicates)
	return w.Flush()
}
