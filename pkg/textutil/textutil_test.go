// SPDX-FileCopyrightText: Copyright The rimsave Authors
// SPDX-License-Identifier: Apache-2.0

package textutil

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestExecuteTemplate(t *testing.T) {
	type X struct {
		Name  string   `json:"name" yaml:"name"`
		Count int      `json:"count" yaml:"count"`
		Mods  []string `json:"mods" yaml:"mods"`
		Empty string   `json:"empty" yaml:"empty"`
	}
	x := X{Name: "Sunfolk", Count: 3, Mods: []string{"Core", "Ideology"}}

	testCases := map[string]string{
		"{{.Name}}":                      "Sunfolk",
		`{{json .Mods}}`:                 `["Core","Ideology"]`,
		"{{yaml .Mods}}":                 "---\n- Core\n- Ideology",
		`{{indent 4 .Name}}`:             "    Sunfolk",
		`{{missing .Empty}}`:             "<missing>",
		`{{missing "none" .Empty}}`:      "none",
		`{{join .Mods ", "}}`:            "Core, Ideology",
		`{{.Name}} has {{.Count}} rules`: "Sunfolk has 3 rules",
	}
	for format, expected := range testCases {
		out, err := ExecuteTemplate(format, x)
		assert.NilError(t, err, format)
		assert.Equal(t, string(out), expected, format)
	}
}

func TestExecuteTemplateError(t *testing.T) {
	_, err := ExecuteTemplate("{{.Name", nil)
	assert.ErrorContains(t, err, "unclosed action")

	_, err = ExecuteTemplate(`{{indent "x" "y"}}`, nil)
	assert.ErrorContains(t, err, "must be an integer")
}

func TestIndentString(t *testing.T) {
	assert.Equal(t, IndentString(2, "a\n\nb"), "  a\n\n  b")
}
