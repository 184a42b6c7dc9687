// SPDX-FileCopyrightText: Copyright The rimsave Authors
// SPDX-License-Identifier: Apache-2.0

// SPDX-FileCopyrightText: Copyright (c) 2017 Mike Farah

// Package yq embeds yq, reading XML unless told otherwise.
package yq

import (
	"os"
	"path/filepath"
	"strings"

	command "github.com/mikefarah/yq/v4/cmd"
)

func main(args []string) {
	cmd := command.New()
	if len(args) == 0 || args[0] != "__complete" {
		if _, _, err := cmd.Find(args); err != nil {
			// default command when nothing matches...
			args = append([]string{"eval"}, args...)
		}
		args = WithXMLInput(args)
	}
	cmd.SetArgs(args)
	code := 0
	if err := cmd.Execute(); err != nil {
		code = 1
	}
	os.Exit(code)
}

// WithXMLInput adds `--input-format=xml` unless args already select an input format.
func WithXMLInput(args []string) []string {
	end := len(args)
	for i, a := range args {
		if a == "--" {
			end = i
			break
		}
		if a == "-p" || strings.HasPrefix(a, "-p=") || strings.HasPrefix(a, "--input-format") {
			return args
		}
		if len(a) > 2 && a[0] == '-' && a[1] != '-' && shortFlagsSelectInput(a[1:]) {
			return args
		}
	}
	res := make([]string, 0, len(args)+1)
	res = append(res, args[:end]...)
	res = append(res, "--input-format=xml")
	return append(res, args[end:]...)
}

// shortFlagsSelectInput reports whether a cluster of short flags such as -Pp
// contains -p. Letters after a flag that takes a value are that value.
func shortFlagsSelectInput(cluster string) bool {
	for _, c := range cluster {
		switch {
		case c == 'p':
			return true
		case c == '=' || strings.ContainsRune("oIs", c):
			return false
		case !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'):
			return false
		}
	}
	return false
}

// MaybeRunYQ runs as `yq` if the program name or first argument is `yq`.
// Only returns to caller if os.Args doesn't contain a `yq` command.
func MaybeRunYQ() {
	progName := filepath.Base(os.Args[0])
	// remove all extensions, so we match "yq.exe"
	progName, _, _ = strings.Cut(progName, ".")
	if progName == "yq" {
		main(os.Args[1:])
	}
	if len(os.Args) > 1 && os.Args[1] == "yq" {
		main(os.Args[2:])
	}
}
