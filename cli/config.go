package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/newrelic/go-cpp-codegen/codegraph"
)

// Default Config Values
const (
	DefaultOutputDir = "."
	DefaultIndent    = IndentTab
	DiffExtension    = ".diff"

	IndentTab   = "tab"
	IndentSpace = "space"
)

// Config holds the flag values shared by the render and scaffold commands.
type Config struct {
	Debug        bool
	Path         string // blueprint file or Go package directory
	OutputDir    string
	DiffFile     string // when set, changes are written as a patch instead of in place
	Namespace    string
	Split        bool
	Indent       string
	Capabilities []string
}

func setConfigValue(input string, defaultValue string) string {
	if v := strings.TrimSpace(input); v != "" {
		return v
	}
	return defaultValue
}

// Normalize trims every value and fills in defaults.
func (cfg *Config) Normalize() {
	cfg.Path = strings.TrimSpace(cfg.Path)
	cfg.OutputDir = setConfigValue(cfg.OutputDir, DefaultOutputDir)
	cfg.DiffFile = strings.TrimSpace(cfg.DiffFile)
	cfg.Namespace = strings.TrimSpace(cfg.Namespace)
	cfg.Indent = strings.ToLower(setConfigValue(cfg.Indent, DefaultIndent))

	var caps []string
	for _, c := range cfg.Capabilities {
		if c = strings.TrimSpace(c); c != "" {
			caps = append(caps, c)
		}
	}
	cfg.Capabilities = caps
}

// Validate checks a normalized config.
func (cfg *Config) Validate() error {
	if cfg.Path == "" {
		return errors.New("a blueprint or package path is required")
	}
	if _, err := os.Stat(cfg.Path); err != nil {
		return errors.Wrapf(err, "path %q is invalid", cfg.Path)
	}

	info, err := os.Stat(cfg.OutputDir)
	if err != nil {
		return errors.Wrapf(err, "output directory %q is invalid", cfg.OutputDir)
	}
	if !info.IsDir() {
		return errors.Newf("output path %q is not a directory", cfg.OutputDir)
	}

	if cfg.DiffFile != "" {
		if err := validateDiffFile(cfg.DiffFile); err != nil {
			return err
		}
	}

	if cfg.Indent != IndentTab && cfg.Indent != IndentSpace {
		return errors.Newf("indent must be %q or %q, got %q", IndentTab, IndentSpace, cfg.Indent)
	}
	if _, err := codegraph.ParseCapabilities(cfg.Capabilities); err != nil {
		return err
	}
	return nil
}

// validateDiffFile checks that the diff output path is usable.
func validateDiffFile(path string) error {
	if filepath.Ext(path) != DiffExtension {
		return errors.Newf("diff file must have a %s extension", DiffExtension)
	}

	_, err := os.Stat(filepath.Dir(path))
	if errors.Is(err, os.ErrNotExist) {
		return errors.Wrap(err, "diff file directory does not exist")
	}
	return err
}

// Apply sets the process wide indentation character and, when any were named,
// the capability set.
func (cfg *Config) Apply() error {
	switch cfg.Indent {
	case IndentSpace:
		codegraph.SetIndentationCharacter(' ')
	default:
		codegraph.SetIndentationCharacter('\t')
	}

	if len(cfg.Capabilities) == 0 {
		return nil
	}
	caps, err := codegraph.ParseCapabilities(cfg.Capabilities)
	if err != nil {
		return err
	}
	codegraph.SetCapabilities(caps)
	return nil
}
