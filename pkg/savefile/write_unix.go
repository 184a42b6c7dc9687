// SPDX-FileCopyrightText: Copyright The rimsave Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !windows

package savefile

import (
	"os"

	"github.com/google/renameio/v2"
	"github.com/sirupsen/logrus"
)

func replaceFile(path string, data []byte, perm os.FileMode) error {
	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(perm))
	if err != nil {
		return err
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			logrus.WithError(err).Debugf("cleanup pending file for %q", path)
		}
	}()
	if _, err := pendingFile.Write(data); err != nil {
		return err
	}
	return pendingFile.CloseAtomicallyReplace()
}
