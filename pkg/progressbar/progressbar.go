// SPDX-FileCopyrightText: Copyright The rimsave Authors
// SPDX-License-Identifier: Apache-2.0

package progressbar

import (
	"io"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// MinSize is the smallest file for which Reader shows a bar.
const MinSize = 16 << 20

// New returns a byte-counting bar for size bytes.
func New(size int64) (*pb.ProgressBar, error) {
	bar := pb.New64(size)

	bar.Set(pb.Bytes, true)

	if showProgress() {
		bar.SetTemplateString(`{{counters . }} {{bar . | green }} {{percent .}} {{speed . "%s/s"}}`)
		bar.SetRefreshRate(200 * time.Millisecond)
	} else {
		bar.Set(pb.Static, true)
	}

	bar.SetWidth(80)
	if err := bar.Err(); err != nil {
		return nil, err
	}

	return bar, nil
}

// Reader wraps r so that reading it draws a bar on stderr.
// The returned func stops the bar. Small or non-interactive reads are returned unwrapped.
func Reader(r io.Reader, size int64) (io.Reader, func()) {
	if size < MinSize || !showProgress() {
		return r, func() {}
	}
	bar, err := New(size)
	if err != nil {
		logrus.WithError(err).Debug("failed to create a progress bar")
		return r, func() {}
	}
	bar.Start()
	return bar.NewProxyReader(r), func() { bar.Finish() }
}

func showProgress() bool {
	// Progress supports only text format fow now.
	if _, ok := logrus.StandardLogger().Formatter.(*logrus.TextFormatter); !ok {
		return false
	}

	// Both logrus and pb use stderr by default.
	logFd := os.Stderr.Fd()
	return isatty.IsTerminal(logFd) || isatty.IsCygwinTerminal(logFd)
}
