// SPDX-FileCopyrightText: Copyright The rimsave Authors
// SPDX-License-Identifier: Apache-2.0

package savefile

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// WriteOptions controls where a document is written.
type WriteOptions struct {
	// Output is the destination path. Empty means the source path.
	Output string
	// BackupSuffix names the backup of the source file. Empty disables the backup.
	BackupSuffix string
}

// WriteResult describes the files touched by Write.
type WriteResult struct {
	Path       string
	BackupPath string
	Size       int
}

// Write serializes the document and atomically replaces the destination.
// When the destination is the source file, its original bytes are backed up first.
func (d *Document) Write(opts WriteOptions) (*WriteResult, error) {
	d.EnsureHeader()
	b, err := d.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %q: %w", d.Path, err)
	}

	res := &WriteResult{Path: d.Path, Size: len(b)}
	if opts.Output != "" {
		res.Path = opts.Output
	}
	// The source is only backed up when it is the file being replaced.
	if opts.BackupSuffix != "" && sameFile(res.Path, d.Path) {
		res.BackupPath = d.Path + opts.BackupSuffix
		if err := replaceFile(res.BackupPath, d.original, d.Mode); err != nil {
			return nil, fmt.Errorf("failed to back up %q to %q: %w", d.Path, res.BackupPath, err)
		}
		logrus.WithField("backup", res.BackupPath).Debug("Wrote backup")
	}
	if err := replaceFile(res.Path, b, d.Mode); err != nil {
		return nil, fmt.Errorf("failed to write %q: %w", res.Path, err)
	}
	logrus.WithField("path", res.Path).Debugf("Wrote save (%d bytes)", len(b))
	return res, nil
}

func sameFile(a, b string) bool {
	if absA, err := filepath.Abs(a); err == nil {
		a = absA
	}
	if absB, err := filepath.Abs(b); err == nil {
		b = absB
	}
	return a == b
}
