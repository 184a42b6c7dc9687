// SPDX-FileCopyrightText: Copyright The rimsave Authors
// SPDX-License-Identifier: Apache-2.0

// Package meta reads the metadata header of a RimWorld save.
package meta

import (
	"github.com/beevik/etree"

	"github.com/rimsave/rimsave/pkg/savefile"
)

// Meta is the content of /savegame/meta.
type Meta struct {
	GameVersion string   `json:"gameVersion"`
	ModIDs      []string `json:"modIds"`
	ModNames    []string `json:"modNames"`
}

// Read returns the metadata of doc. Missing nodes are left empty.
func Read(doc *savefile.Document) Meta {
	var m Meta
	root := doc.Root()
	if root == nil {
		return m
	}
	metaElem := root.SelectElement("meta")
	if metaElem == nil {
		return m
	}
	if v := metaElem.SelectElement("gameVersion"); v != nil {
		m.GameVersion = v.Text()
	}
	m.ModIDs = listTexts(metaElem.SelectElement("modIds"))
	m.ModNames = listTexts(metaElem.SelectElement("modNames"))
	return m
}

func listTexts(e *etree.Element) []string {
	if e == nil {
		return nil
	}
	var res []string
	for _, li := range e.SelectElements("li") {
		res = append(res, li.Text())
	}
	return res
}
