// Package app wires the mlproofcheck CLI's command tree, following the
// cobra root-command-plus-AddCommand shape vmware-tanzu/sonobuoy's
// cmd/sonobuoy/app package uses.
package app

import (
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/gitrdm/mlproofcheck/internal/obslog"
)

var verbose bool

// NewRootCommand builds the mlproofcheck command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "mlproofcheck",
		Short: "Verify matching-logic Hilbert-style proof bundles",
		Long:  "mlproofcheck replays a theory, claim and proof instruction stream through the three-phase matching-logic proof checker and reports whether every claim was discharged.",
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable trace-level logging of each dispatched instruction")
	root.AddCommand(newVerifyCommand())
	root.AddCommand(newBatchCommand())
	return root
}

func logger() obslog.Logger {
	if verbose {
		return obslog.New(hclog.Trace)
	}
	return obslog.Null()
}
