package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestScanRunCloneIsIndependent(t *testing.T) {
	now := time.Now()
	run := &ScanRun{
		ScanId:          "scan-1",
		RequestedChains: []string{"ethereum"},
		Status:          ScanStatusRunning,
		StartedAt:       now,
		OutputLog:       []string{"cursor initialized"},
		ChainErrors:     map[string]string{},
	}

	clone := run.Clone()

	run.Status = ScanStatusCompleted
	run.FinishedAt = &now
	run.DepositsFound = 5
	run.OutputLog = append(run.OutputLog, "pass finished")
	run.ChainErrors["solana"] = "endpoint exhausted"
	run.RequestedChains[0] = "bsc"

	require.Equal(t, ScanStatusRunning, clone.Status)
	require.Nil(t, clone.FinishedAt)
	require.Zero(t, clone.DepositsFound)
	require.Equal(t, []string{"cursor initialized"}, clone.OutputLog)
	require.Empty(t, clone.ChainErrors)
	require.Equal(t, []string{"ethereum"}, clone.RequestedChains)
}
