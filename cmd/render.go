package cmd

import (
	"github.com/newrelic/go-cpp-codegen/internal/blueprint"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "render a blueprint",
	Long:  "render the C++ code described by a YAML blueprint file",
	Args:  cobra.ExactArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		Render()
	},
}

func Render() {
	w := prepare()

	bp, err := blueprint.Load(cfg.Path)
	cobra.CheckErr(err)

	unit, err := bp.Build()
	cobra.CheckErr(err)

	generate(w, unit, bp)
}

func init() {
	renderCmd.Flags().StringVar(&cfg.Path, "blueprint", defaultPath, "blueprint file to render")
	cobra.MarkFlagFilename(renderCmd.Flags(), "blueprint", "yaml", "yml")
	addOutputFlags(renderCmd)

	rootCmd.AddCommand(renderCmd)
}
