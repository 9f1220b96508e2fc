package cmd

import (
	"log"

	"github.com/dave/dst/decorator"
	"github.com/newrelic/go-cpp-codegen/importer"
	"github.com/newrelic/go-cpp-codegen/internal/comment"
	"github.com/spf13/cobra"
	"golang.org/x/tools/go/packages"
)

const defaultPackagePattern = "./..."

var scaffoldCmd = &cobra.Command{
	Use:   "scaffold",
	Short: "scaffold C++ from Go",
	Long:  "scaffold C++ classes, structs and function stubs from the types and functions of existing Go packages",
	Args:  cobra.ExactArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		Scaffold()
	},
}

func Scaffold() {
	w := prepare()

	if cfg.Debug {
		comment.EnableConsolePrinter(cfg.Path)
	}

	pkgs, err := decorator.Load(&packages.Config{Dir: cfg.Path, Mode: packages.LoadSyntax}, defaultPackagePattern)
	if err != nil {
		log.Fatal(err)
	}

	im := importer.New(cfg.Namespace)
	for _, pkg := range pkgs {
		unit, err := im.Package(pkg)
		if err != nil {
			log.Fatal(err)
		}
		generate(w, unit, im.Facts())
	}

	comment.WriteAll()
}

func init() {
	scaffoldCmd.Flags().StringVar(&cfg.Path, "path", defaultPath, "specify package path")
	scaffoldCmd.Flags().StringVar(&cfg.Namespace, "namespace", defaultNamespace, "C++ namespace, defaults to the package name")
	addOutputFlags(scaffoldCmd)

	rootCmd.AddCommand(scaffoldCmd)
}
