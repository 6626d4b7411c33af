package batch

import (
	"context"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/mlproofcheck/pkg/bytesource"
	"github.com/gitrdm/mlproofcheck/pkg/machine"
)

func symbolAxiomJob(label string, id byte, ok bool) Job {
	theory := []byte{byte(machine.OpSymbol), id, byte(machine.OpPublish)}
	claims := []byte{byte(machine.OpSymbol), id, byte(machine.OpPublish)}
	proof := []byte{byte(machine.OpLoad), 0, byte(machine.OpPublish)}
	if !ok {
		// No Publish: the claim is left undischarged.
		proof = nil
	}
	return Job{
		Label:  label,
		Theory: bytesource.FromBytes(theory),
		Claims: bytesource.FromBytes(claims),
		Proof:  bytesource.FromBytes(proof),
	}
}

func TestRun_AllSucceed(t *testing.T) {
	jobs := []Job{
		symbolAxiomJob("a", 1, true),
		symbolAxiomJob("b", 2, true),
		symbolAxiomJob("c", 3, true),
	}
	outcomes, err := Run(context.Background(), jobs, Options{Workers: 2})
	require.NoError(t, err)
	require.Len(t, outcomes, 3)
	for i, o := range outcomes {
		require.NoError(t, o.Err, "job %d", i)
		require.Equal(t, jobs[i].Label, o.Label)
	}
}

func TestRun_AggregatesFailures(t *testing.T) {
	jobs := []Job{
		symbolAxiomJob("good", 1, true),
		symbolAxiomJob("bad", 2, false),
	}
	outcomes, err := Run(context.Background(), jobs, Options{Workers: 2})
	require.Error(t, err)
	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	require.Len(t, merr.Errors, 1)

	require.NoError(t, outcomes[0].Err)
	require.Error(t, outcomes[1].Err)
}

func TestRun_PreservesOrder(t *testing.T) {
	jobs := make([]Job, 0, 10)
	for i := byte(0); i < 10; i++ {
		jobs = append(jobs, symbolAxiomJob(string(rune('a')+rune(i)), i, true))
	}
	outcomes, err := Run(context.Background(), jobs, Options{Workers: 4})
	require.NoError(t, err)
	for i, o := range outcomes {
		require.Equal(t, jobs[i].Label, o.Label)
	}
}
