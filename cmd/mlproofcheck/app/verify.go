package app

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/gitrdm/mlproofcheck/pkg/bytesource"
	"github.com/gitrdm/mlproofcheck/pkg/verifier"
)

type verifyFlags struct {
	theory string
	claims string
	proof  string
}

func newVerifyCommand() *cobra.Command {
	var f verifyFlags
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a single (theory, claims, proof) instruction bundle",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd.OutOrStdout(), f)
		},
	}
	cmd.Flags().StringVar(&f.theory, "theory", "", "path to the theory instruction stream, or - for stdin")
	cmd.Flags().StringVar(&f.claims, "claims", "", "path to the claim instruction stream, or - for stdin")
	cmd.Flags().StringVar(&f.proof, "proof", "", "path to the proof instruction stream, or - for stdin")
	cmd.MarkFlagRequired("theory")
	cmd.MarkFlagRequired("claims")
	cmd.MarkFlagRequired("proof")
	return cmd
}

func runVerify(out io.Writer, f verifyFlags) error {
	runID := uuid.New()
	theory, closeTheory, err := openSource(f.theory)
	if err != nil {
		return errors.Wrap(err, "opening theory stream")
	}
	defer closeTheory()
	claims, closeClaims, err := openSource(f.claims)
	if err != nil {
		return errors.Wrap(err, "opening claims stream")
	}
	defer closeClaims()
	proof, closeProof, err := openSource(f.proof)
	if err != nil {
		return errors.Wrap(err, "opening proof stream")
	}
	defer closeProof()

	_, err = verifier.Verify(theory, claims, proof, verifier.Options{Logger: logger()})
	if err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(out, "FAIL ")
		fmt.Fprintf(out, "[%s] %v\n", runID, err)
		return err
	}
	color.New(color.FgGreen, color.Bold).Fprintf(out, "OK ")
	fmt.Fprintf(out, "[%s] every claim discharged\n", runID)
	return nil
}

// openSource opens path as a bytesource.NextFunc. path "-" reads
// stdin; the returned closer is always safe to call.
func openSource(path string) (bytesource.NextFunc, func(), error) {
	if path == "-" {
		return bytesource.FromReader(os.Stdin), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return bytesource.FromReader(f), func() { f.Close() }, nil
}
