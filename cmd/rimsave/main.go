// SPDX-FileCopyrightText: Copyright The rimsave Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rimsave/rimsave/cmd/yq"
	"github.com/rimsave/rimsave/pkg/savedirs"
	"github.com/rimsave/rimsave/pkg/version"
)

const (
	editCommand    = "edit"
	inspectCommand = "inspect"
)

func main() {
	yq.MaybeRunYQ()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newApp().ExecuteContext(ctx)
	stop()
	if err != nil {
		logrus.Fatal(err)
	}
}

func processGlobalFlags(rootCmd *cobra.Command) error {
	// --log-level will override --debug
	if debug, _ := rootCmd.Flags().GetBool("debug"); debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	l, _ := rootCmd.Flags().GetString("log-level")
	if l != "" {
		lvl, err := logrus.ParseLevel(l)
		if err != nil {
			return err
		}
		logrus.SetLevel(lvl)
	}

	logFormat, _ := rootCmd.Flags().GetString("log-format")
	switch logFormat {
	case "json":
		formatter := new(logrus.JSONFormatter)
		logrus.StandardLogger().SetFormatter(formatter)
	case "text":
		// logrus use text format by default.
		if runtime.GOOS == "windows" && isatty.IsCygwinTerminal(os.Stderr.Fd()) {
			formatter := new(logrus.TextFormatter)
			// the default setting does not recognize cygwin on windows
			formatter.ForceColors = true
			logrus.StandardLogger().SetFormatter(formatter)
		}
	default:
		return fmt.Errorf("unsupported log-format: %q", logFormat)
	}
	return nil
}

func newApp() *cobra.Command {
	savesDir := "the RimWorld saves directory"
	if dir, err := savedirs.SavesDir(); err == nil {
		savesDir = dir
	}

	rootCmd := &cobra.Command{
		Use:     "rimsave",
		Short:   "rimsave: scripts to edit RimWorld saves",
		Version: strings.TrimPrefix(version.Version, "v"),
		Example: fmt.Sprintf(`  List the saves:
  $ rimsave saves

  Remove duplicate precepts from every ideoligion of a save:
  $ rimsave precepts dedupe MyColony

  Query a save with a path expression:
  $ rimsave query MyColony.rws '/savegame/meta/gameVersion' --text

  Saves are looked up in %s (override with $%s).`, savesDir, savedirs.EnvSavesDir),
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}
	rootCmd.PersistentFlags().String("log-level", "", "Set the logging level [trace, debug, info, warn, error]")
	rootCmd.PersistentFlags().String("log-format", "text", "Set the logging format [text, json]")
	rootCmd.PersistentFlags().Bool("debug", false, "Debug mode")
	// TODO: "survey" does not support using cygwin terminal on windows yet
	rootCmd.PersistentFlags().Bool("tty", isatty.IsTerminal(os.Stdout.Fd()), "Enable TUI interactions such as confirmation prompts. Defaults to true when stdout is a terminal. Set to false for automation.")
	rootCmd.PersistentFlags().BoolP("yes", "y", false, "Alias of --tty=false (answer every prompt with its default)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if err := processGlobalFlags(rootCmd); err != nil {
			return err
		}

		if cmd.Flags().Changed("yes") && cmd.Flags().Changed("tty") {
			return errors.New("cannot use both --tty and --yes flags at the same time")
		}

		if cmd.Flags().Changed("yes") {
			yesValue, _ := cmd.Flags().GetBool("yes")
			if yesValue {
				// Sets to the default value false
				if err := cmd.Flags().Set("tty", "false"); err != nil {
					return err
				}
			}
		}
		return nil
	}
	rootCmd.AddGroup(&cobra.Group{ID: editCommand, Title: "Edit Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: inspectCommand, Title: "Inspect Commands:"})

	rootCmd.AddCommand(
		newPreceptsCommand(),
		newRemoveExtraPreceptsCommand(),
		newRestoreCommand(),
		newIdeosCommand(),
		newQueryCommand(),
		newEvalCommand(),
		newInfoCommand(),
		newValidateCommand(),
		newSavesCommand(),
	)
	return rootCmd
}

// WrapArgsError annotates cobra args error with some context, so the error message is more user-friendly.
func WrapArgsError(argFn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		err := argFn(cmd, args)
		if err == nil {
			return nil
		}

		return fmt.Errorf("%q %s.\nSee '%s --help'.\n\nUsage:  %s\n\n%s",
			cmd.CommandPath(), err.Error(),
			cmd.CommandPath(),
			cmd.UseLine(), cmd.Short,
		)
	}
}
