// SPDX-FileCopyrightText: Copyright The rimsave Authors
// SPDX-License-Identifier: Apache-2.0

package ideo

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/rimsave/rimsave/pkg/savefile"
)

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(message string, defaultValue bool) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(message string, defaultValue bool) (bool, error)

func (f ConfirmFunc) Confirm(message string, defaultValue bool) (bool, error) {
	return f(message, defaultValue)
}

// Result is the outcome of Dedupe for one ideo.
type Result struct {
	Ideo      *Ideo      `json:"ideo"`
	Removed   []*Precept `json:"removed"`
	Declined  []*Precept `json:"declined"`
	Leftovers []Count    `json:"leftovers"`
}

// Changed reports whether any precept was removed.
func (r *Result) Changed() bool {
	return len(r.Removed) > 0
}

// LeftoverMessages describes the duplicates that were not removed.
func (r *Result) LeftoverMessages() []string {
	res := make([]string, 0, len(r.Leftovers))
	for _, c := range r.Leftovers {
		res = append(res, fmt.Sprintf("Failed to remove extra precept for %s, we have %d more", c.Key, c.Extra))
	}
	return res
}

// FindDuplicates returns the unclassed precepts of x whose key was already
// seen on an earlier precept, along with a tracker of the extra occurrences.
// The first occurrence of each key is never returned.
func FindDuplicates(x *Ideo, key Key) ([]*Precept, *DuplicateTracker, error) {
	precepts, err := x.Precepts()
	if err != nil {
		return nil, nil, err
	}
	seen := make(map[string]struct{}, len(precepts))
	tracker := NewDuplicateTracker()
	var dups []*Precept
	for _, p := range precepts {
		if p.Classed {
			continue
		}
		k := key.of(p)
		if _, ok := seen[k]; ok {
			tracker.Append(p.Def, p.Name)
			dups = append(dups, p)
			continue
		}
		seen[k] = struct{}{}
	}
	return dups, tracker, nil
}

// Dedupe removes the duplicate precepts of x, asking c before each removal.
// An error from c aborts the remaining removals and is returned as is.
func Dedupe(x *Ideo, key Key, c Confirmer) (*Result, error) {
	dups, tracker, err := FindDuplicates(x, key)
	if err != nil {
		return nil, err
	}
	res := &Result{Ideo: x}
	for _, p := range dups {
		msg := fmt.Sprintf("Remove precept %s with def %s from ideo %s?", p.Name, p.Def, x.Name)
		ok, err := c.Confirm(msg, true)
		if err != nil {
			return res, err
		}
		if !ok {
			res.Declined = append(res.Declined, p)
			continue
		}
		savefile.RemoveElement(p.Element)
		if err := tracker.Remove(p.Def, p.Name); err != nil {
			return res, err
		}
		res.Removed = append(res.Removed, p)
		logrus.WithFields(logrus.Fields{
			"ideo": x.Name,
			"def":  p.Def,
		}).Debugf("Removed precept %q", p.Name)
	}
	res.Leftovers = tracker.Remaining(key)
	return res, nil
}
