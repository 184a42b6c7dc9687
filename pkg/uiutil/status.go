// SPDX-FileCopyrightText: Copyright The rimsave Authors
// SPDX-License-Identifier: Apache-2.0

package uiutil

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Status prints colored one-line status messages.
type Status struct {
	w       io.Writer
	success *color.Color
	warn    *color.Color
	fail    *color.Color
}

// NewStatus returns a Status writing to w. Colors are enabled only when w is a terminal.
func NewStatus(w io.Writer) *Status {
	s := &Status{
		w:       w,
		success: color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		fail:    color.New(color.FgRed),
	}
	if !isTerminal(w) {
		s.success.DisableColor()
		s.warn.DisableColor()
		s.fail.DisableColor()
	} else {
		s.success.EnableColor()
		s.warn.EnableColor()
		s.fail.EnableColor()
	}
	return s
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Successf prints a green line.
func (s *Status) Successf(format string, a ...any) {
	s.print(s.success, format, a...)
}

// Warnf prints a yellow line.
func (s *Status) Warnf(format string, a ...any) {
	s.print(s.warn, format, a...)
}

// Failf prints a red line.
func (s *Status) Failf(format string, a ...any) {
	s.print(s.fail, format, a...)
}

func (s *Status) print(c *color.Color, format string, a ...any) {
	_, _ = c.Fprintln(s.w, fmt.Sprintf(format, a...))
}
