package cmd

import (
	"log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "go-cpp-codegen",
	Short: "go-cpp-codegen generates C++ headers and sources from a code graph",
	Long:  "go-cpp-codegen builds a C++ code graph from a YAML blueprint or a Go package and renders it as declarations and definitions",
	Run: func(cmd *cobra.Command, args []string) {
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// addOutputFlags registers the flags every generating command shares.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&cfg.OutputDir, "out", defaultOutputDir, "directory the generated files are written to")
	cmd.Flags().BoolVar(&cfg.Split, "split", defaultSplit, "write a header with declarations and a source file with definitions")
	cmd.Flags().StringVar(&cfg.DiffFile, "diff", defaultDiffFile, "write changes as a patch to this .diff file instead of modifying files")
	cmd.Flags().StringVar(&cfg.Indent, "indent", defaultIndent, "indentation character, tab or space")
	cmd.Flags().StringSliceVar(&cfg.Capabilities, "capabilities", nil, "grammar features the renderer may use, e.g. default,export-keyword")
	cmd.Flags().BoolVar(&cfg.Debug, "debug", defaultDebug, "enable debugging output")
	cobra.MarkFlagFilename(cmd.Flags(), "diff", "diff") // for file completion
	cobra.MarkFlagDirname(cmd.Flags(), "out")
}
