package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/collide/internal/scenario"
)

func pairSet(title string) Factory {
	return func() scenario.Set {
		return scenario.Set{
			Title: title,
			Cases: []scenario.Case{
				{Name: "overlap", A: scenario.Box(0, 0, 1, 1), B: scenario.Box(0.5, 0, 1, 1)},
			},
		}
	}
}

func TestRegisterAndCreate(t *testing.T) {
	Register("test-zeta", pairSet("Zeta"))
	Register("test-alpha", pairSet("Alpha"))

	assert.True(t, Exists("test-alpha"))
	assert.False(t, Exists("test-missing"))

	set, err := Create("test-alpha")
	require.NoError(t, err)
	assert.Equal(t, "test-alpha", set.ID)
	assert.Equal(t, "Alpha", set.Title)
	assert.Equal(t, "builtin", set.Source)
	assert.Len(t, set.Cases, 1)

	_, err = Create("test-missing")
	assert.Error(t, err)

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
		if info.ID == "test-zeta" {
			assert.Equal(t, "Zeta", info.Title)
			assert.Equal(t, 1, info.Cases)
		}
	}
	assert.Subset(t, ids, []string{"test-alpha", "test-zeta"})
	assert.IsIncreasing(t, ids)

	all := All()
	assert.Len(t, all, len(ids))
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test-dup", pairSet("Dup"))
	assert.Panics(t, func() {
		Register("test-dup", pairSet("Dup again"))
	})
}

func TestCreateReturnsFreshCopies(t *testing.T) {
	Register("test-fresh", pairSet("Fresh"))

	a, err := Create("test-fresh")
	require.NoError(t, err)
	a.Cases[0].Name = "mutated"

	b, err := Create("test-fresh")
	require.NoError(t, err)
	assert.Equal(t, "overlap", b.Cases[0].Name)
}
