// SPDX-FileCopyrightText: Copyright The rimsave Authors
// SPDX-License-Identifier: Apache-2.0

// Package savefile loads and writes RimWorld save documents.
package savefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultBackupSuffix is appended to the save path to name the backup file.
	DefaultBackupSuffix = ".bak"
	// RootTag is the tag of the root element of every save.
	RootTag = "savegame"

	declarationTarget = "xml"
	declarationInst   = `version="1.0" encoding="utf-8"`
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// ErrMalformed is returned when a file cannot be parsed as a save document.
var ErrMalformed = errors.New("malformed save file")

// Document is a parsed save file.
type Document struct {
	// Path is the file the document was loaded from.
	Path string
	// Mode is the permission of the source file, reused on write.
	Mode fs.FileMode

	original []byte
	// bom is set when the source started with a UTF-8 byte order mark.
	bom  bool
	tree *etree.Document
}

// ProgressFunc wraps the reader of a file of the given size, and returns a
// func that is called once the file has been read.
type ProgressFunc func(r io.Reader, size int64) (io.Reader, func())

// Load reads and parses the save at path.
func Load(path string) (*Document, error) {
	return LoadProgress(path, nil)
}

// Stat checks that path is an existing regular file without reading it.
func Stat(path string) (fs.FileInfo, error) {
	st, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("file not found at path %q: %w", path, fs.ErrNotExist)
		}
		return nil, err
	}
	if st.IsDir() {
		return nil, fmt.Errorf("%q is a directory, not a save file", path)
	}
	return st, nil
}

// LoadProgress is like Load, reporting read progress through progress when it is not nil.
func LoadProgress(path string, progress ProgressFunc) (*Document, error) {
	st, err := Stat(path)
	if err != nil {
		return nil, err
	}
	b, err := readAll(path, st.Size(), progress)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(path, b)
	if err != nil {
		return nil, err
	}
	doc.Mode = st.Mode().Perm()
	logrus.WithField("path", path).Debugf("Loaded save (%d bytes)", len(b))
	return doc, nil
}

func readAll(path string, size int64, progress ProgressFunc) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	if progress != nil {
		var done func()
		r, done = progress(f, size)
		defer done()
	}
	return io.ReadAll(r)
}

// Parse parses b as a save document. path is only recorded, not read.
// A leading UTF-8 byte order mark is kept out of the tree and restored by Bytes.
func Parse(path string, b []byte) (*Document, error) {
	body, hasBOM := bytes.CutPrefix(b, bom)
	tree := etree.NewDocument()
	tree.ReadSettings.PreserveCData = true
	if err := tree.ReadFromBytes(body); err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w: %w", path, ErrMalformed, err)
	}
	if tree.Root() == nil {
		return nil, fmt.Errorf("failed to parse %q: %w: no root element", path, ErrMalformed)
	}
	return &Document{
		Path:     path,
		Mode:     0o644,
		original: b,
		bom:      hasBOM,
		tree:     tree,
	}, nil
}

// Root returns the root element.
func (d *Document) Root() *etree.Element {
	return d.tree.Root()
}

// IsSave reports whether the root element is a RimWorld savegame.
func (d *Document) IsSave() bool {
	return d.tree.Root().Tag == RootTag
}

// Original returns the bytes the document was parsed from.
func (d *Document) Original() []byte {
	return d.original
}

// FindElement returns the first element matching the etree path, or nil.
func (d *Document) FindElement(path string) (*etree.Element, error) {
	p, err := etree.CompilePath(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}
	return d.tree.FindElementPath(p), nil
}

// FindElements returns all elements matching the etree path.
func (d *Document) FindElements(path string) ([]*etree.Element, error) {
	p, err := etree.CompilePath(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}
	return d.tree.FindElementsPath(p), nil
}

// HasHeader reports whether the document starts with an XML declaration.
func (d *Document) HasHeader() bool {
	for _, tok := range d.tree.Child {
		switch t := tok.(type) {
		case *etree.ProcInst:
			return t.Target == declarationTarget
		case *etree.CharData:
			if t.IsWhitespace() {
				continue
			}
			return false
		default:
			return false
		}
	}
	return false
}

// EnsureHeader inserts an XML declaration when the document has none.
func (d *Document) EnsureHeader() {
	if d.HasHeader() {
		return
	}
	d.tree.InsertChildAt(0, etree.NewProcInst(declarationTarget, declarationInst))
	d.tree.InsertChildAt(1, etree.NewText("\n"))
}

// Bytes serializes the document.
func (d *Document) Bytes() ([]byte, error) {
	b, err := d.tree.WriteToBytes()
	if err != nil || !d.bom {
		return b, err
	}
	return append(append([]byte{}, bom...), b...), nil
}

// RemoveElement detaches e from its parent, along with the whitespace that indents it.
func RemoveElement(e *etree.Element) {
	parent := e.Parent()
	if parent == nil {
		return
	}
	if idx := e.Index(); idx > 0 {
		if cd, ok := parent.Child[idx-1].(*etree.CharData); ok && cd.IsWhitespace() {
			parent.RemoveChildAt(idx - 1)
		}
	}
	parent.RemoveChild(e)
}

// ElementString renders e (and its subtree) as indented XML.
func ElementString(e *etree.Element, indent int) (string, error) {
	doc := etree.NewDocument()
	doc.SetRoot(e.Copy())
	if indent > 0 {
		doc.Indent(indent)
	}
	s, err := doc.WriteToString()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(s, "\n"), nil
}
