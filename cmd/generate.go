package cmd

import (
	"log"

	"github.com/newrelic/go-cpp-codegen/cli"
	"github.com/newrelic/go-cpp-codegen/codegraph"
	"github.com/newrelic/go-cpp-codegen/internal/emit"
	"github.com/newrelic/go-cpp-codegen/internal/util"
	"github.com/spf13/cobra"
)

const (
	defaultPath      = ""
	defaultNamespace = ""
	defaultOutputDir = cli.DefaultOutputDir
	defaultDiffFile  = ""
	defaultIndent    = cli.DefaultIndent
	defaultSplit     = false
	defaultDebug     = false
)

// cfg collects the flag values of whichever command runs.
var cfg cli.Config

// prepare validates the flags and applies the render settings.
func prepare() *emit.Writer {
	cfg.Normalize()
	cobra.CheckErr(cfg.Validate())
	cobra.CheckErr(cfg.Apply())

	w := &emit.Writer{Dir: cfg.OutputDir, DiffFile: cfg.DiffFile}
	cobra.CheckErr(w.CreateDiffFile())
	return w
}

// generate renders unit and hands the artifacts to w. source is what the unit
// was built from and is dumped with --debug.
func generate(w *emit.Writer, unit *codegraph.CompilationUnit, source any) {
	if cfg.Debug {
		log.Printf("building %s from:\n%s", unit.Name(), util.DebugPrint(source))
	}

	artifacts, err := emit.RenderUnit(unit, cfg.Split)
	cobra.CheckErr(err)
	cobra.CheckErr(w.Write(artifacts...))
}
