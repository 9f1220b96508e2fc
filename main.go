package main

import (
	"log"

	"github.com/newrelic/go-cpp-codegen/cmd"
)

func main() {
	log.Default().SetFlags(0)
	cmd.Execute()
}
