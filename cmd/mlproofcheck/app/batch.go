package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gitrdm/mlproofcheck/internal/batch"
)

type batchFlags struct {
	theory  []string
	claims  []string
	proof   []string
	workers int
}

func newBatchCommand() *cobra.Command {
	var f batchFlags
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Verify many independent proof bundles concurrently",
		Long:  "batch takes parallel --theory/--claims/--proof flag sets (one triple per job) and verifies them across a bounded worker pool, reporting every job's outcome.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd.OutOrStdout(), f)
		},
	}
	cmd.Flags().StringArrayVar(&f.theory, "theory", nil, "theory stream path for one job (repeatable)")
	cmd.Flags().StringArrayVar(&f.claims, "claims", nil, "claims stream path for one job (repeatable, same count as --theory)")
	cmd.Flags().StringArrayVar(&f.proof, "proof", nil, "proof stream path for one job (repeatable, same count as --theory)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "worker pool size (0 picks runtime.NumCPU)")
	return cmd
}

func runBatch(out io.Writer, f batchFlags) error {
	if len(f.theory) != len(f.claims) || len(f.theory) != len(f.proof) {
		return pflag.ErrHelp
	}

	jobs := make([]batch.Job, 0, len(f.theory))
	for i := range f.theory {
		theory, closeTheory, err := openSource(f.theory[i])
		if err != nil {
			return err
		}
		defer closeTheory()
		claims, closeClaims, err := openSource(f.claims[i])
		if err != nil {
			return err
		}
		defer closeClaims()
		proof, closeProof, err := openSource(f.proof[i])
		if err != nil {
			return err
		}
		defer closeProof()

		jobs = append(jobs, batch.Job{
			Label:  filepath.Base(f.proof[i]),
			Theory: theory,
			Claims: claims,
			Proof:  proof,
		})
	}

	outcomes, err := batch.Run(context.Background(), jobs, batch.Options{Workers: f.workers, Logger: logger()})
	for _, o := range outcomes {
		if o.Err != nil {
			color.New(color.FgRed, color.Bold).Fprintf(out, "FAIL ")
			fmt.Fprintf(out, "%s: %v\n", o.Label, o.Err)
			continue
		}
		color.New(color.FgGreen, color.Bold).Fprintf(out, "OK ")
		fmt.Fprintf(out, "%s\n", o.Label)
	}
	return err
}
