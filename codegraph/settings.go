package codegraph

import (
	"strings"
	"sync/atomic"

	"github.com/cockroachdb/errors"
)

// Capability is a set of optional grammar features the renderer may use.
type Capability uint

const (
	ExceptionSpecifications Capability = 1 << iota
	FunctionTryBlocks
	AlternateKeywords
	ExportKeyword
	OutofClassTemplates

	NoCapabilities      Capability = 0
	DefaultCapabilities            = FunctionTryBlocks | ExceptionSpecifications
)

var capabilityNames = []struct {
	name string
	c    Capability
}{
	{"exception-specifications", ExceptionSpecifications},
	{"function-try-blocks", FunctionTryBlocks},
	{"alternate-keywords", AlternateKeywords},
	{"export-keyword", ExportKeyword},
	{"out-of-class-templates", OutofClassTemplates},
}

func (c Capability) Has(flag Capability) bool {
	return c&flag == flag
}

func (c Capability) String() string {
	var names []string
	for _, n := range capabilityNames {
		if c.Has(n.c) {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

// ParseCapabilities turns capability names into a set. "none" and "default" are
// accepted as shorthands.
func ParseCapabilities(names []string) (Capability, error) {
	var c Capability
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		switch name {
		case "", "none":
			continue
		case "default":
			c |= DefaultCapabilities
			continue
		}
		found := false
		for _, n := range capabilityNames {
			if n.name == name {
				c |= n.c
				found = true
				break
			}
		}
		if !found {
			return 0, errors.Wrapf(ErrInvalidArgument, "unknown capability %q", raw)
		}
	}
	return c, nil
}

var (
	indentation  atomic.Int32
	capabilities atomic.Uint32
)

func init() {
	indentation.Store('\t')
	capabilities.Store(uint32(DefaultCapabilities))
}

// IndentationCharacter is the character repeated once per indentation level.
func IndentationCharacter() rune {
	return rune(indentation.Load())
}

// SetIndentationCharacter changes the process wide indentation character and
// returns the previous one. Renders already in progress keep their character.
func SetIndentationCharacter(r rune) rune {
	return rune(indentation.Swap(int32(r)))
}

func Capabilities() Capability {
	return Capability(capabilities.Load())
}

// SetCapabilities changes the process wide capability set and returns the
// previous one.
func SetCapabilities(c Capability) Capability {
	return Capability(capabilities.Swap(uint32(c)))
}
