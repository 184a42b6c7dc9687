// SPDX-FileCopyrightText: Copyright The rimsave Authors
// SPDX-License-Identifier: Apache-2.0

package ideo

import (
	"errors"
	"fmt"
)

// ErrUnknownEntry is returned when the tracker has never seen a name or def.
var ErrUnknownEntry = errors.New("entry not found")

// Key selects which field identifies a precept when looking for duplicates.
type Key string

const (
	KeyName Key = "name"
	KeyDef  Key = "def"
)

// ParseKey parses "name" or "def".
func ParseKey(s string) (Key, error) {
	switch Key(s) {
	case KeyName, KeyDef:
		return Key(s), nil
	}
	return "", fmt.Errorf("unknown duplicate key %q (expected %q or %q)", s, KeyName, KeyDef)
}

func (k Key) of(p *Precept) string {
	if k == KeyDef {
		return p.Def
	}
	return p.Name
}

// Count is a tracked name or def with the number of extra occurrences.
type Count struct {
	Key   string
	Extra int
}

// DuplicateTracker counts the extra occurrences of precepts, by name and by def.
// The zero value is not usable; use NewDuplicateTracker.
type DuplicateTracker struct {
	names       map[string]int
	defs        map[string]int
	namesToDefs map[string][]string
	nameOrder   []string
	defOrder    []string
}

func NewDuplicateTracker() *DuplicateTracker {
	return &DuplicateTracker{
		names:       make(map[string]int),
		defs:        make(map[string]int),
		namesToDefs: make(map[string][]string),
	}
}

// Append records one extra occurrence of a precept.
func (t *DuplicateTracker) Append(def, name string) {
	if _, ok := t.names[name]; !ok {
		t.nameOrder = append(t.nameOrder, name)
	}
	t.names[name]++
	if _, ok := t.defs[def]; !ok {
		t.defOrder = append(t.defOrder, def)
	}
	t.defs[def]++
	t.namesToDefs[name] = append(t.namesToDefs[name], def)
}

// Count returns the number of extra occurrences of name.
func (t *DuplicateTracker) Count(name string) (int, error) {
	n, ok := t.names[name]
	if !ok {
		return 0, fmt.Errorf("name %q: %w", name, ErrUnknownEntry)
	}
	return n, nil
}

// CountDef returns the number of extra occurrences of def.
func (t *DuplicateTracker) CountDef(def string) (int, error) {
	n, ok := t.defs[def]
	if !ok {
		return 0, fmt.Errorf("def %q: %w", def, ErrUnknownEntry)
	}
	return n, nil
}

// Defs returns the defs recorded for name, in the order they were appended.
func (t *DuplicateTracker) Defs(name string) []string {
	return t.namesToDefs[name]
}

// Remove marks one extra occurrence of the precept with def and name as removed.
// Counts never drop below zero.
func (t *DuplicateTracker) Remove(def, name string) error {
	if _, ok := t.defs[def]; !ok {
		return fmt.Errorf("def %q: %w", def, ErrUnknownEntry)
	}
	if _, ok := t.names[name]; !ok {
		return fmt.Errorf("name %q: %w", name, ErrUnknownEntry)
	}
	if t.defs[def] > 0 {
		t.defs[def]--
	}
	if t.names[name] > 0 {
		t.names[name]--
	}
	return nil
}

// Items returns the name counts followed by the def counts, in insertion order.
func (t *DuplicateTracker) Items() []Count {
	res := make([]Count, 0, len(t.nameOrder)+len(t.defOrder))
	for _, name := range t.nameOrder {
		res = append(res, Count{Key: name, Extra: t.names[name]})
	}
	for _, def := range t.defOrder {
		res = append(res, Count{Key: def, Extra: t.defs[def]})
	}
	return res
}

// Remaining returns the entries of the given key that still have extra occurrences.
func (t *DuplicateTracker) Remaining(key Key) []Count {
	order, counts := t.nameOrder, t.names
	if key == KeyDef {
		order, counts = t.defOrder, t.defs
	}
	var res []Count
	for _, k := range order {
		if n := counts[k]; n > 0 {
			res = append(res, Count{Key: k, Extra: n})
		}
	}
	return res
}
