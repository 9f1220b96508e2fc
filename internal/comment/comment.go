package comment

import (
	"fmt"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"github.com/newrelic/go-cpp-codegen/codegraph"
)

const (
	InfoHeader string = "SCAFFOLD INFO"
	WarnHeader string = "SCAFFOLD WARN"
)

// Info returns a comment for the C++ node generated from a Go node.
// The message is the main comment, and additionalInfo is a list of optional
// comments that will be placed on new lines below the main comment.
// The same text is queued for the console printer when it is enabled.
func Info(pkg *decorator.Package, node dst.Node, message string, additionalInfo ...string) *codegraph.Comment {
	printer.Add(pkg, node, InfoHeader, message, additionalInfo...)
	return annotate(InfoHeader, message, additionalInfo)
}

func Warn(pkg *decorator.Package, node dst.Node, message string, additionalInfo ...string) *codegraph.Comment {
	printer.Add(pkg, node, WarnHeader, message, additionalInfo...)
	return annotate(WarnHeader, message, additionalInfo)
}

func annotate(header, message string, additionalInfo []string) *codegraph.Comment {
	lines := []string{fmt.Sprintf(" %s: %s", header, message)}
	for _, info := range additionalInfo {
		lines = append(lines, " "+info)
	}
	return codegraph.NewComment(strings.Join(lines, "\n")).SetMultiline(true)
}
