package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rootcode-org/protothread/internal/config"
	"github.com/rootcode-org/protothread/internal/runner"
)

func TestRegisterWorkload(t *testing.T) {
	r, err := runner.New(nil, nil, nil)
	require.NoError(t, err)

	cfg := config.NewDefaultConfig()
	require.NoError(t, registerWorkload(r, &cfg.Sim))

	// Blinkers + patrols + the countdown.
	assert.Equal(t, cfg.Sim.Blinkers+cfg.Sim.Patrols+1, r.Len())
}

func TestRegisterWorkload_EmptySim(t *testing.T) {
	r, err := runner.New(nil, nil, nil)
	require.NoError(t, err)

	require.NoError(t, registerWorkload(r, &config.SimConfig{}))
	assert.Equal(t, 1, r.Len(), "the countdown is always registered")
}
