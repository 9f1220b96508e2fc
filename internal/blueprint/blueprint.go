// Package blueprint decodes YAML descriptions of C++ compilation units and
// builds them as code graphs.
package blueprint

import (
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Unit describes one compilation unit.
type Unit struct {
	Name       string      `yaml:"name"`
	Comment    string      `yaml:"comment,omitempty"`
	Includes   []string    `yaml:"includes,omitempty"`
	Namespaces []Namespace `yaml:"namespaces"`
}

// Namespace groups declarations. An empty name is an anonymous namespace.
type Namespace struct {
	Name      string     `yaml:"name"`
	Comment   string     `yaml:"comment,omitempty"`
	Enums     []Enum     `yaml:"enums,omitempty"`
	Types     []Type     `yaml:"types,omitempty"`
	Variables []Variable `yaml:"variables,omitempty"`
	Functions []Function `yaml:"functions,omitempty"`
}

type Enum struct {
	Name    string      `yaml:"name"`
	Comment string      `yaml:"comment,omitempty"`
	Values  []EnumValue `yaml:"values"`
}

type EnumValue struct {
	Name    string `yaml:"name"`
	Value   string `yaml:"value,omitempty"`
	Comment string `yaml:"comment,omitempty"`
}

// Type describes a class or struct. Access only applies to nested types.
type Type struct {
	Name      string   `yaml:"name"`
	Kind      string   `yaml:"kind,omitempty"`
	Comment   string   `yaml:"comment,omitempty"`
	Access    string   `yaml:"access,omitempty"`
	Abstract  bool     `yaml:"abstract,omitempty"`
	Sealed    bool     `yaml:"sealed,omitempty"`
	Inline    bool     `yaml:"inline,omitempty"`
	Templates []string `yaml:"templates,omitempty"`
	Bases     []Base   `yaml:"bases,omitempty"`
	Members   []Member `yaml:"members,omitempty"`
	Nested    []Type   `yaml:"nested,omitempty"`
}

type Base struct {
	Name    string `yaml:"name"`
	Access  string `yaml:"access,omitempty"`
	Virtual bool   `yaml:"virtual,omitempty"`
}

// Member is a data member, member function, constructor or destructor,
// selected by Kind.
type Member struct {
	Access       string        `yaml:"access,omitempty"`
	Kind         string        `yaml:"kind"`
	Name         string        `yaml:"name,omitempty"`
	Comment      string        `yaml:"comment,omitempty"`
	Returns      string        `yaml:"returns,omitempty"`
	Type         string        `yaml:"type,omitempty"`
	Pointer      int           `yaml:"pointer,omitempty"`
	Reference    bool          `yaml:"reference,omitempty"`
	Const        bool          `yaml:"const,omitempty"`
	Pure         bool          `yaml:"pure,omitempty"`
	Static       bool          `yaml:"static,omitempty"`
	Virtual      bool          `yaml:"virtual,omitempty"`
	Inline       bool          `yaml:"inline,omitempty"`
	Mutable      bool          `yaml:"mutable,omitempty"`
	ForceBody    bool          `yaml:"force_body,omitempty"`
	Explicit     bool          `yaml:"explicit,omitempty"`
	Init         string        `yaml:"init,omitempty"`
	Templates    []string      `yaml:"templates,omitempty"`
	Params       []Param       `yaml:"params,omitempty"`
	Initializers []Initializer `yaml:"initializers,omitempty"`
	Body         []string      `yaml:"body,omitempty"`
}

type Param struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Pointer   int    `yaml:"pointer,omitempty"`
	Reference bool   `yaml:"reference,omitempty"`
	Const     bool   `yaml:"const,omitempty"`
	Default   string `yaml:"default,omitempty"`
}

// Initializer is one entry of a constructor's member initializer list.
type Initializer struct {
	Name string   `yaml:"name"`
	Args []string `yaml:"args,omitempty"`
}

type Function struct {
	Name      string   `yaml:"name"`
	Comment   string   `yaml:"comment,omitempty"`
	Returns   string   `yaml:"returns,omitempty"`
	Pointer   int      `yaml:"pointer,omitempty"`
	Reference bool     `yaml:"reference,omitempty"`
	Inline    bool     `yaml:"inline,omitempty"`
	Templates []string `yaml:"templates,omitempty"`
	Params    []Param  `yaml:"params,omitempty"`
	Body      []string `yaml:"body,omitempty"`
}

type Variable struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Comment   string `yaml:"comment,omitempty"`
	Pointer   int    `yaml:"pointer,omitempty"`
	Reference bool   `yaml:"reference,omitempty"`
	Const     bool   `yaml:"const,omitempty"`
	Static    bool   `yaml:"static,omitempty"`
	Init      string `yaml:"init,omitempty"`
}

// Decode reads a blueprint. Unknown fields are rejected.
func Decode(r io.Reader) (*Unit, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var u Unit
	if err := dec.Decode(&u); err != nil {
		return nil, errors.Wrap(err, "decoding blueprint")
	}
	return &u, nil
}

// Load decodes the blueprint stored at path.
func Load(path string) (*Unit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening blueprint %s", path)
	}
	defer f.Close()

	u, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "blueprint %s", path)
	}
	return u, nil
}

// Parse decodes a blueprint held in memory.
func Parse(text string) (*Unit, error) {
	return Decode(strings.NewReader(text))
}
