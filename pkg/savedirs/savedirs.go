// SPDX-FileCopyrightText: Copyright The rimsave Authors
// SPDX-License-Identifier: Apache-2.0

// Package savedirs locates RimWorld save files on disk.
package savedirs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"
)

const (
	// EnvSavesDir overrides the default saves directory.
	EnvSavesDir = "RIMSAVE_SAVES_DIR"
	// Ext is the extension of RimWorld save files.
	Ext = ".rws"
)

// SavesDir returns the directory RimWorld stores saves in (or $RIMSAVE_SAVES_DIR, if set).
func SavesDir() (string, error) {
	if dir := os.Getenv(EnvSavesDir); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return defaultSavesDir(runtime.GOOS, homeDir), nil
}

func defaultSavesDir(goos, homeDir string) string {
	switch goos {
	case "windows":
		return filepath.Join(homeDir, "AppData", "LocalLow", "Ludeon Studios", "RimWorld by Ludeon Studios", "Saves")
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", "RimWorld", "Saves")
	default:
		return filepath.Join(homeDir, ".config", "unity3d", "Ludeon Studios", "RimWorld by Ludeon Studios", "Saves")
	}
}

// IsPath reports whether arg should be treated as a file path rather than a save name.
func IsPath(arg string) bool {
	if strings.ContainsRune(arg, '/') || strings.ContainsRune(arg, filepath.Separator) {
		return true
	}
	switch strings.ToLower(filepath.Ext(arg)) {
	case Ext, ".xml", ".bak":
		return true
	}
	if st, err := os.Stat(arg); err == nil && !st.IsDir() {
		return true
	}
	return false
}

// Resolve returns the file path for arg, which is either a path or the name of
// a save in SavesDir. Resolve does not check whether the save exists.
func Resolve(arg string) (string, error) {
	if arg == "" {
		return "", errors.New("save name must not be empty")
	}
	if IsPath(arg) {
		return filepath.Abs(arg)
	}
	dir, err := SavesDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, arg+Ext), nil
}

// Save is an entry of the saves directory.
type Save struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// List returns the saves in SavesDir, sorted by name.
func List() ([]Save, error) {
	dir, err := SavesDir()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read saves directory %q: %w", dir, err)
	}
	var saves []Save
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), Ext) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, err
		}
		saves = append(saves, Save{
			Name:     strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())),
			Path:     filepath.Join(dir, e.Name()),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}
	sort.Slice(saves, func(i, j int) bool { return saves[i].Name < saves[j].Name })
	return saves, nil
}
