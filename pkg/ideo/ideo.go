// SPDX-FileCopyrightText: Copyright The rimsave Authors
// SPDX-License-Identifier: Apache-2.0

// Package ideo reads and edits the ideoligions stored in a RimWorld save.
package ideo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"

	"github.com/rimsave/rimsave/pkg/savefile"
)

// IdeosPath is the location of the ideo list in a save.
const IdeosPath = "/savegame/game/world/ideoManager/ideos"

var (
	// ErrNoIdeos is returned when a save has no ideo list.
	ErrNoIdeos = errors.New("no ideos node found")
	// ErrNoPrecepts is returned when an ideo has no precept list.
	ErrNoPrecepts = errors.New("no precepts node found")
)

// Ideo is one ideoligion of a save.
type Ideo struct {
	Index   int            `json:"index"`
	Name    string         `json:"name"`
	Element *etree.Element `json:"-"`
}

// Precept is one precept of an ideo.
type Precept struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Def   string `json:"def"`
	// Class is the value of the Class attribute, set for rituals, roles and other subclassed precepts.
	Class   string         `json:"class,omitempty"`
	Classed bool           `json:"classed"`
	Element *etree.Element `json:"-"`
}

// Ideos returns the named ideos of doc. Entries without a name are logged and skipped.
func Ideos(doc *savefile.Document) ([]*Ideo, error) {
	ideos, err := doc.FindElement(IdeosPath)
	if err != nil {
		return nil, err
	}
	if ideos == nil {
		return nil, fmt.Errorf("%w in %q", ErrNoIdeos, doc.Path)
	}
	var res []*Ideo
	for i, li := range ideos.SelectElements("li") {
		nameElem := li.SelectElement("name")
		if nameElem == nil {
			logrus.Errorf("Failed to find ideo name for ideo at position %d", i)
			continue
		}
		name := nameElem.Text()
		if name == "" {
			logrus.Errorf("Failed to find ideo name (inner text) for ideo at position %d", i)
			continue
		}
		res = append(res, &Ideo{Index: i, Name: name, Element: li})
	}
	return res, nil
}

// Find returns the ideos whose name matches name, case-insensitively.
func Find(ideos []*Ideo, name string) []*Ideo {
	var res []*Ideo
	for _, x := range ideos {
		if strings.EqualFold(x.Name, name) {
			res = append(res, x)
		}
	}
	return res
}

func (x *Ideo) preceptsElement() (*etree.Element, error) {
	e := x.Element.SelectElement("precepts")
	if e == nil {
		return nil, fmt.Errorf("%w in ideo %q", ErrNoPrecepts, x.Name)
	}
	return e, nil
}

// Precepts returns the precepts of the ideo, in document order.
// Unclassed precepts without a name or def are logged and skipped.
func (x *Ideo) Precepts() ([]*Precept, error) {
	parent, err := x.preceptsElement()
	if err != nil {
		return nil, err
	}
	var res []*Precept
	for i, li := range parent.SelectElements("li") {
		p := &Precept{Index: i, Element: li}
		if attr := li.SelectAttr("Class"); attr != nil {
			p.Classed = true
			p.Class = attr.Value
		}
		p.Name, err = childText(li, "name")
		if err != nil && !p.Classed {
			logrus.WithField("ideo", x.Name).Errorf("Failed to find %v for precept at position %d", err, i)
			continue
		}
		p.Def, err = childText(li, "def")
		if err != nil && !p.Classed {
			logrus.WithField("ideo", x.Name).Errorf("Failed to find %v for precept at position %d", err, i)
			continue
		}
		res = append(res, p)
	}
	return res, nil
}

type missingError struct {
	tag       string
	innerText bool
}

func (e *missingError) Error() string {
	if e.innerText {
		return e.tag + " (inner text)"
	}
	return e.tag + " element"
}

func childText(e *etree.Element, tag string) (string, error) {
	c := e.SelectElement(tag)
	if c == nil {
		return "", &missingError{tag: tag}
	}
	s := c.Text()
	if s == "" {
		return "", &missingError{tag: tag, innerText: true}
	}
	return s, nil
}
