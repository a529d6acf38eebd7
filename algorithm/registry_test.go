package algorithm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rete/pandora/event"
	"github.com/rete/pandora/types"
)

type nopAlgorithm struct{}

func (nopAlgorithm) Configure(Settings) error { return nil }
func (nopAlgorithm) Run(*event.Store) error   { return nil }

func TestRegistry_RegisterAndCreate(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("Nop", func() Algorithm { return nopAlgorithm{} }))

	alg, err := r.Create("Nop")
	require.NoError(t, err)
	require.NotNil(t, alg)

	t.Run("unknown name", func(t *testing.T) {
		_, err := r.Create("Missing")
		require.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("duplicate registration", func(t *testing.T) {
		err := r.Register("Nop", func() Algorithm { return nopAlgorithm{} })
		require.ErrorIs(t, err, types.ErrInvalidParameter)
	})

	t.Run("nil factory", func(t *testing.T) {
		require.ErrorIs(t, r.Register("Bad", nil), types.ErrInvalidParameter)
	})
}

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("B", func() Algorithm { return nopAlgorithm{} }))
	require.NoError(t, r.Register("A", func() Algorithm { return nopAlgorithm{} }))

	require.Equal(t, []string{"A", "B"}, r.Names())
}
