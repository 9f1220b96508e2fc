// Package emit renders compilation units into files and persists them, either
// in place or as a unified diff against what is already on disk.
package emit

import (
	"bytes"
	"log"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/newrelic/go-cpp-codegen/codegraph"
	godiffpatch "github.com/sourcegraph/go-diff-patch"
)

const (
	HeaderExtension = ".h"
	SourceExtension = ".cpp"
)

// Artifact is one rendered file.
type Artifact struct {
	Name    string // path relative to the output directory
	Content string
}

// RenderUnit renders unit as <name>.cpp, or as <name>.h and <name>.cpp when
// split is set. The split header is guarded with #pragma once and the source
// includes it.
func RenderUnit(unit *codegraph.CompilationUnit, split bool) ([]Artifact, error) {
	if unit == nil {
		return nil, errors.New("cannot render a nil compilation unit")
	}
	if unit.Name() == "" {
		return nil, errors.New("compilation unit has no name")
	}

	if !split {
		text, err := codegraph.RenderString(unit)
		if err != nil {
			return nil, errors.Wrapf(err, "rendering %s", unit.Name())
		}
		return []Artifact{{Name: unit.Name() + SourceExtension, Content: text}}, nil
	}

	var decl, def bytes.Buffer
	guard, err := codegraph.NewDirective(codegraph.Pragma, "once")
	if err != nil {
		return nil, err
	}
	header := unit.Name() + HeaderExtension
	if err := codegraph.Render(guard, &decl); err != nil {
		return nil, err
	}
	if err := codegraph.Render(codegraph.NewInclude(`"`+header+`"`), &def); err != nil {
		return nil, err
	}
	if err := codegraph.RenderSplit(unit, &decl, &def); err != nil {
		return nil, errors.Wrapf(err, "rendering %s", unit.Name())
	}

	return []Artifact{
		{Name: header, Content: decl.String()},
		{Name: unit.Name() + SourceExtension, Content: def.String()},
	}, nil
}

// Writer persists artifacts below Dir. When DiffFile is set nothing under Dir
// is modified; a patch against the current files is appended to DiffFile.
type Writer struct {
	Dir      string
	DiffFile string
}

// CreateDiffFile truncates the diff file so that a run starts from an empty
// patch.
func (w *Writer) CreateDiffFile() error {
	if w.DiffFile == "" {
		return nil
	}
	f, err := os.Create(w.DiffFile)
	if err != nil {
		return errors.Wrapf(err, "creating diff file %s", w.DiffFile)
	}
	return f.Close()
}

func (w *Writer) Write(artifacts ...Artifact) error {
	if w.DiffFile != "" {
		return w.writeDiff(artifacts)
	}

	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return errors.Wrapf(err, "creating output directory %s", w.Dir)
	}
	for _, a := range artifacts {
		path := filepath.Join(w.Dir, a.Name)
		if err := os.WriteFile(path, []byte(a.Content), 0644); err != nil {
			return errors.Wrapf(err, "writing %s", path)
		}
		log.Printf("wrote %s", path)
	}
	return nil
}

// writeDiff appends a patch for every artifact that differs from the file on
// disk. Missing files diff against empty content.
func (w *Writer) writeDiff(artifacts []Artifact) (err error) {
	f, err := os.OpenFile(w.DiffFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, "opening diff file %s", w.DiffFile)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	for _, a := range artifacts {
		original, err := os.ReadFile(filepath.Join(w.Dir, a.Name))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return errors.Wrapf(err, "reading %s", a.Name)
		}
		if string(original) == a.Content {
			continue
		}

		patch := godiffpatch.GeneratePatch(a.Name, string(original), a.Content)
		if _, err := f.WriteString(patch); err != nil {
			return errors.Wrapf(err, "writing diff file %s", w.DiffFile)
		}
	}
	log.Printf("changes written to %s", w.DiffFile)
	return nil
}
