package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rete/pandora/event"
	"github.com/rete/pandora/eventtest"
	"github.com/rete/pandora/types"
)

func fixture() ([]types.Hit, []types.Track) {
	hits := []types.Hit{
		eventtest.NewHit(1, types.Vector3{Z: 10}, 1, eventtest.PossibleMip()),
		eventtest.NewHit(2, types.Vector3{X: 1, Z: 20}, 0.5, eventtest.InHCal()),
	}
	tracks := []types.Track{eventtest.NewTrack(5, types.Vector3{}, types.Vector3{Z: 1})}

	return hits, tracks
}

func TestEvent_ReproducibleAcrossStores(t *testing.T) {
	hits, tracks := fixture()

	a := Event(event.NewStore(hits, tracks))
	b := Event(event.NewStore(hits, tracks))

	require.Equal(t, a, b)
}

func TestEvent_SensitiveToContent(t *testing.T) {
	hits, tracks := fixture()
	base := Event(event.NewStore(hits, tracks))

	changed := append([]types.Hit(nil), hits...)
	changed[0].Energy += 0.001

	require.NotEqual(t, base, Event(event.NewStore(changed, tracks)))
}

func TestClusters_TracksMembership(t *testing.T) {
	hits, tracks := fixture()

	build := func(claimSecond bool) uint64 {
		st := event.NewStore(hits, tracks)
		cid, err := st.CreateClusterFromTrack(0)
		require.NoError(t, err)
		require.NoError(t, st.AddHitToCluster(cid, 0))
		if claimSecond {
			require.NoError(t, st.AddHitToCluster(cid, 1))
		}

		return Clusters(st)
	}

	require.Equal(t, build(false), build(false))
	require.NotEqual(t, build(false), build(true))
}
