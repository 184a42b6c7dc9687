// SPDX-FileCopyrightText: Copyright The rimsave Authors
// SPDX-License-Identifier: Apache-2.0

package savedirs

import (
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"
)

func TestDefaultSavesDir(t *testing.T) {
	home := filepath.FromSlash("/home/pawn")
	testCases := map[string]string{
		"windows": filepath.Join(home, "AppData", "LocalLow", "Ludeon Studios", "RimWorld by Ludeon Studios", "Saves"),
		"darwin":  filepath.Join(home, "Library", "Application Support", "RimWorld", "Saves"),
		"linux":   filepath.Join(home, ".config", "unity3d", "Ludeon Studios", "RimWorld by Ludeon Studios", "Saves"),
	}
	for goos, expected := range testCases {
		assert.Equal(t, defaultSavesDir(goos, home), expected, goos)
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvSavesDir, dir)

	p, err := Resolve("Colony")
	assert.NilError(t, err)
	assert.Equal(t, p, filepath.Join(dir, "Colony.rws"))

	p, err = Resolve(filepath.Join("saves", "Colony.rws"))
	assert.NilError(t, err)
	assert.Assert(t, filepath.IsAbs(p))
	assert.Equal(t, filepath.Base(p), "Colony.rws")

	p, err = Resolve("Colony.xml")
	assert.NilError(t, err)
	assert.Equal(t, filepath.Base(p), "Colony.xml")

	_, err = Resolve("")
	assert.ErrorContains(t, err, "must not be empty")
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvSavesDir, dir)
	for _, name := range []string{"b.rws", "a.rws", "notes.txt", "a.rws.bak"} {
		assert.NilError(t, os.WriteFile(filepath.Join(dir, name), []byte("<savegame/>"), 0o600))
	}
	assert.NilError(t, os.Mkdir(filepath.Join(dir, "dir.rws"), 0o700))

	saves, err := List()
	assert.NilError(t, err)
	assert.Equal(t, len(saves), 2)
	assert.Equal(t, saves[0].Name, "a")
	assert.Equal(t, saves[1].Name, "b")
	assert.Equal(t, saves[0].Size, int64(len("<savegame/>")))
	assert.Equal(t, saves[0].Path, filepath.Join(dir, "a.rws"))
}

func TestListMissingDir(t *testing.T) {
	t.Setenv(EnvSavesDir, filepath.Join(t.TempDir(), "nope"))
	_, err := List()
	assert.ErrorContains(t, err, "failed to read saves directory")
}
