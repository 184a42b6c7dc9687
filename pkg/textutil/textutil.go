// SPDX-FileCopyrightText: Copyright The rimsave Authors
// SPDX-License-Identifier: Apache-2.0

// Package textutil renders --format templates.
package textutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/goccy/go-yaml"
)

// Parse parses tmpl with FuncMap available.
func Parse(tmpl string) (*template.Template, error) {
	return template.New("format").Funcs(FuncMap).Parse(tmpl)
}

// ExecuteTemplate executes a text/template template.
func ExecuteTemplate(tmpl string, args any) ([]byte, error) {
	x, err := Parse(tmpl)
	if err != nil {
		return nil, err
	}
	var b bytes.Buffer
	if err := x.Execute(&b, args); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// IndentString adds size spaces to the beginning of each non-empty line.
func IndentString(size int, text string) string {
	prefix := strings.Repeat(" ", size)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// FuncMap is available to every --format template.
var FuncMap = template.FuncMap{
	"json": func(v any) string {
		var b bytes.Buffer
		enc := json.NewEncoder(&b)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			panic(fmt.Errorf("failed to marshal as JSON: %+v: %w", v, err))
		}
		return strings.TrimSuffix(b.String(), "\n")
	},
	"yaml": func(v any) string {
		b, err := yaml.Marshal(v)
		if err != nil {
			panic(fmt.Errorf("failed to marshal as YAML: %+v: %w", v, err))
		}
		return "---\n" + strings.TrimSuffix(string(b), "\n")
	},
	"indent": func(a ...any) (string, error) {
		if len(a) == 0 || len(a) > 2 {
			return "", errors.New("function takes one or two arguments")
		}
		size := 2
		if len(a) > 1 {
			var ok bool
			if size, ok = a[0].(int); !ok {
				return "", errors.New("optional first argument must be an integer")
			}
		}
		text, ok := a[len(a)-1].(string)
		if !ok {
			return "", errors.New("last argument must be a string")
		}
		return IndentString(size, text), nil
	},
	"missing": func(a ...any) (string, error) {
		if len(a) == 0 || len(a) > 2 {
			return "", errors.New("function takes one or two arguments")
		}
		message := "<missing>"
		if len(a) > 1 {
			var ok bool
			if message, ok = a[0].(string); !ok {
				return "", errors.New("optional first argument must be a string")
			}
		}
		text, ok := a[len(a)-1].(string)
		if !ok {
			return "", errors.New("last argument must be a string")
		}
		if text == "" {
			return message, nil
		}
		return text, nil
	},
	"join": strings.Join,
}

// FuncHelp documents FuncMap for --help.
var FuncHelp = []string{
	"json: marshal as JSON",
	"yaml: marshal as YAML",
	"indent <size>: add spaces to beginning of each line",
	"missing <message>: return message if the text is empty",
	"join <sep>: join a list of strings",
}
