package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/gitrdm/mlproofcheck/cmd/mlproofcheck/app"
)

func main() {
	if err := app.NewRootCommand().Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
