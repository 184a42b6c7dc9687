// SPDX-FileCopyrightText: Copyright The rimsave Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/rimsave/rimsave/pkg/savedirs"
)

const colonySave = `<?xml version="1.0" encoding="utf-8"?>
<savegame>
	<meta>
		<gameVersion>1.5.4104 rev435</gameVersion>
		<modIds>
			<li>ludeon.rimworld</li>
			<li>ludeon.rimworld.ideology</li>
		</modIds>
	</meta>
	<game>
		<world>
			<ideoManager>
				<ideos>
					<li>
						<name>Sunfolk</name>
						<precepts>
							<li>
								<def>Cannibalism_Abhorrent</def>
								<name>Cannibalism</name>
							</li>
							<li Class="Precept_Ritual">
								<def>Funeral</def>
								<name>Funeral</name>
							</li>
							<li>
								<def>Cannibalism_Abhorrent</def>
								<name>Cannibalism</name>
							</li>
						</precepts>
					</li>
					<li>
						<name>Moonkin</name>
						<precepts>
							<li>
								<def>Nudity_Male_Mandatory</def>
								<name>Nudity</name>
							</li>
						</precepts>
					</li>
				</ideos>
			</ideoManager>
		</world>
	</game>
</savegame>
`

// setupSaves creates a saves directory holding Colony.rws and points $RIMSAVE_SAVES_DIR at it.
func setupSaves(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(savedirs.EnvSavesDir, dir)
	p := filepath.Join(dir, "Colony.rws")
	assert.NilError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	var out bytes.Buffer
	app.SetOut(&out)
	app.SetErr(&out)
	app.SetArgs(args)
	err := app.Execute()
	return out.String(), err
}

func TestDedupe(t *testing.T) {
	p := setupSaves(t, colonySave)

	out, err := run(t, "precepts", "dedupe", "Colony", "--yes")
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(out, "Done!"), out)

	edited, err := os.ReadFile(p)
	assert.NilError(t, err)
	assert.Equal(t, strings.Count(string(edited), "Cannibalism_Abhorrent"), 1)
	assert.Equal(t, strings.Count(string(edited), "Precept_Ritual"), 1)
	assert.Assert(t, strings.HasPrefix(string(edited), `<?xml version="1.0" encoding="utf-8"?>`))

	backup, err := os.ReadFile(p + ".bak")
	assert.NilError(t, err)
	assert.Equal(t, string(backup), colonySave)

	out, err = run(t, "remove-extra-precepts", p, "--yes")
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(out, "No Changes!"), out)
}

func TestDedupeNoChanges(t *testing.T) {
	p := setupSaves(t, colonySave)

	out, err := run(t, "precepts", "dedupe", "Colony", "--ideo", "moonkin", "--yes")
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(out, "No Changes!"), out)
	_, err = os.Stat(p + ".bak")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestDedupeDryRun(t *testing.T) {
	p := setupSaves(t, colonySave)

	out, err := run(t, "precepts", "dedupe", "Colony", "--dry-run", "--yes")
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(out, "Would remove precept Cannibalism with def Cannibalism_Abhorrent from ideo Sunfolk"), out)

	content, err := os.ReadFile(p)
	assert.NilError(t, err)
	assert.Equal(t, string(content), colonySave)
}

func TestDedupeOutput(t *testing.T) {
	p := setupSaves(t, colonySave)
	edited := filepath.Join(t.TempDir(), "Edited.rws")

	_, err := run(t, "precepts", "dedupe", "Colony", "-o", edited, "--backup-suffix=", "--yes")
	assert.NilError(t, err)

	content, err := os.ReadFile(p)
	assert.NilError(t, err)
	assert.Equal(t, string(content), colonySave)
	content, err = os.ReadFile(edited)
	assert.NilError(t, err)
	assert.Equal(t, strings.Count(string(content), "Cannibalism_Abhorrent"), 1)

	_, err = run(t, "precepts", "dedupe", "Colony", "-o", edited, "--yes")
	assert.NilError(t, err)
	_, err = os.Stat(p + ".bak")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestDedupeErrors(t *testing.T) {
	setupSaves(t, colonySave)

	_, err := run(t, "precepts", "dedupe", "Missing", "--yes")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = run(t, "precepts", "dedupe", "Colony", "--ideo", "Nobody", "--yes")
	assert.ErrorContains(t, err, `ideo "Nobody" not found`)

	_, err = run(t, "precepts", "dedupe", "Colony", "--key", "label", "--yes")
	assert.ErrorContains(t, err, "unknown duplicate key")

	_, err = run(t, "precepts", "dedupe", "--yes")
	assert.ErrorContains(t, err, "See 'rimsave precepts dedupe --help'")

	_, err = run(t, "precepts", "dedupe", "Colony", "--yes", "--tty")
	assert.ErrorContains(t, err, "cannot use both --tty and --yes")
}

func TestPreceptsList(t *testing.T) {
	setupSaves(t, colonySave)

	out, err := run(t, "precepts", "list", "Colony", "--duplicates-only", "--json")
	assert.NilError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, len(lines), 1)
	var row map[string]any
	assert.NilError(t, json.Unmarshal([]byte(lines[0]), &row))
	assert.Equal(t, row["ideo"], "Sunfolk")
	assert.Equal(t, row["def"], "Cannibalism_Abhorrent")
	assert.Equal(t, row["index"], float64(2))
	assert.Equal(t, row["duplicate"], true)

	out, err = run(t, "precepts", "list", "Colony", "--format", "{{.Ideo}}:{{.Name}}:{{.Duplicate}}")
	assert.NilError(t, err)
	assert.Equal(t, out, "Sunfolk:Cannibalism:false\nSunfolk:Funeral:false\nSunfolk:Cannibalism:true\nMoonkin:Nudity:false\n")

	out, err = run(t, "precepts", "list", "Colony", "--ideo", "Moonkin")
	assert.NilError(t, err)
	assert.Assert(t, strings.HasPrefix(out, "IDEO"), out)
	assert.Assert(t, strings.Contains(out, "Nudity_Male_Mandatory"), out)
	assert.Assert(t, !strings.Contains(out, "Sunfolk"), out)
}

func TestIdeosList(t *testing.T) {
	setupSaves(t, colonySave)

	out, err := run(t, "ideos", "list", "Colony", "-q")
	assert.NilError(t, err)
	assert.Equal(t, out, "Sunfolk\nMoonkin\n")

	out, err = run(t, "ideos", "list", "Colony", "--format", "{{.Name}} {{.Precepts}} {{.Duplicates}}")
	assert.NilError(t, err)
	assert.Equal(t, out, "Sunfolk 3 1\nMoonkin 1 0\n")

	_, err = run(t, "ideos", "list", "Colony", "-q", "--json")
	assert.ErrorContains(t, err, "conflicts")
}

func TestQuery(t *testing.T) {
	setupSaves(t, colonySave)

	out, err := run(t, "query", "Colony", "/savegame/meta/gameVersion", "--text")
	assert.NilError(t, err)
	assert.Equal(t, out, "1.5.4104 rev435\n")

	out, err = run(t, "query", "Colony", "//li[@Class='Precept_Ritual']", "--count")
	assert.NilError(t, err)
	assert.Equal(t, out, "1\n")

	out, err = run(t, "query", "Colony", "//ideos/li[name='Moonkin']/precepts/li")
	assert.NilError(t, err)
	assert.Equal(t, out, "<li>\n  <def>Nudity_Male_Mandatory</def>\n  <name>Nudity</name>\n</li>\n")
}

func TestInfo(t *testing.T) {
	p := setupSaves(t, colonySave)

	out, err := run(t, "info", "Colony", "--json")
	assert.NilError(t, err)
	var inf saveInfo
	assert.NilError(t, json.Unmarshal([]byte(out), &inf))
	assert.Equal(t, inf.Path, p)
	assert.Equal(t, inf.GameVersion, "1.5.4104 rev435")
	assert.Equal(t, len(inf.ModIDs), 2)
	assert.DeepEqual(t, inf.Ideos, []string{"Sunfolk", "Moonkin"})
	assert.Equal(t, inf.Duplicates, 1)
	assert.Assert(t, inf.HasHeader)

	out, err = run(t, "info", "Colony")
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(out, "1.5.4104 rev435"), out)
}

func TestValidate(t *testing.T) {
	p := setupSaves(t, colonySave)
	bad := filepath.Join(filepath.Dir(p), "Broken.rws")
	assert.NilError(t, os.WriteFile(bad, []byte("<savegame><meta></savegame>"), 0o600))

	out, err := run(t, "validate", "Colony")
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(out, "OK"), out)

	_, err = run(t, "validate", "Colony", "Broken")
	assert.ErrorContains(t, err, "1 of 2 save(s) failed to validate")
}

func TestSaves(t *testing.T) {
	p := setupSaves(t, colonySave)
	assert.NilError(t, os.WriteFile(filepath.Join(filepath.Dir(p), "Another.rws"), []byte("<savegame/>"), 0o600))

	out, err := run(t, "saves", "-q")
	assert.NilError(t, err)
	assert.Equal(t, out, "Another\nColony\n")
}

func TestRestore(t *testing.T) {
	p := setupSaves(t, colonySave)

	_, err := run(t, "restore", "Colony", "--yes")
	assert.ErrorContains(t, err, "no backup found")

	_, err = run(t, "precepts", "dedupe", "Colony", "--yes")
	assert.NilError(t, err)
	_, err = run(t, "restore", "Colony", "--yes")
	assert.NilError(t, err)

	content, err := os.ReadFile(p)
	assert.NilError(t, err)
	assert.Equal(t, string(content), colonySave)
	_, err = os.Stat(p + ".bak")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestEval(t *testing.T) {
	setupSaves(t, colonySave)

	out, err := run(t, "eval", "Colony", ".savegame.meta", ".gameVersion")
	assert.NilError(t, err)
	assert.Equal(t, out, "1.5.4104 rev435\n")

	_, err = run(t, "eval", "Missing", ".savegame")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
