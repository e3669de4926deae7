package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tspRepair/internal/bench"
	"tspRepair/internal/sa"
)

func TestParseCases(t *testing.T) {
	cases, err := parseCases(" 15, us13 ,30", 7)
	require.NoError(t, err)
	require.Len(t, cases, 3)

	assert.Equal(t, "rnd15", cases[0].Name)
	assert.Equal(t, 15, cases[0].Cities)
	assert.Equal(t, int64(7+15), cases[0].InstanceSeed)

	assert.Equal(t, bench.BuiltinUS13, cases[1].Builtin)

	assert.Equal(t, 30, cases[2].Cities)
	assert.Equal(t, int64(7+20_000+30), cases[2].InstanceSeed)
}

func TestParseCases_Invalid(t *testing.T) {
	for _, s := range []string{"", "abc", "1", "10,x"} {
		_, err := parseCases(s, 0)
		assert.Error(t, err, s)
	}
}

func TestFactoriesProduceSolvers(t *testing.T) {
	_, err := newLogger(false)
	require.NoError(t, err)

	op, err := newSAFactory(sa.DefaultConfig())(1)
	require.NoError(t, err)
	assert.NotNil(t, op)

	bad := sa.DefaultConfig()
	bad.Alpha = 2
	op, err = newSAFactory(bad)(1)
	assert.ErrorContains(t, err, "alpha")
	assert.Nil(t, op)
}
