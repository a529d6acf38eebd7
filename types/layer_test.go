package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnsetLayer_ComparesGreaterThanRealLayers(t *testing.T) {
	layers := []PseudoLayer{0, 1, 42, 1 << 20}

	for _, l := range layers {
		require.Less(t, l, UnsetLayer)
	}
}

func TestPseudoLayer_IsSet(t *testing.T) {
	require.True(t, TrackProjectionLayer.IsSet())
	require.True(t, PseudoLayer(30).IsSet())
	require.False(t, UnsetLayer.IsSet())
}

func TestDefaultCompatibility(t *testing.T) {
	t.Run("perfect match scores zero", func(t *testing.T) {
		require.Zero(t, DefaultCompatibility(10, 10))
	})

	t.Run("sign follows energy difference", func(t *testing.T) {
		require.Positive(t, DefaultCompatibility(12, 10))
		require.Negative(t, DefaultCompatibility(8, 10))
	})

	t.Run("non positive track energy scores poorly", func(t *testing.T) {
		require.Greater(t, DefaultCompatibility(5, 0), 1e30)
	})
}
