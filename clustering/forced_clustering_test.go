package clustering

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rete/pandora/algorithm"
	"github.com/rete/pandora/event"
	"github.com/rete/pandora/eventtest"
	"github.com/rete/pandora/types"
)

type fakeRunner struct {
	calls []string
	fn    func(name string, ev *event.Store) error
}

func (r *fakeRunner) RunAlgorithm(name string, ev *event.Store) error {
	r.calls = append(r.calls, name)
	if r.fn != nil {
		return r.fn(name, ev)
	}

	return nil
}

// zTrack runs along the z axis at the given x offset.
func zTrack(energy, x float64) types.Track {
	return eventtest.NewTrack(energy, types.Vector3{X: x}, types.Vector3{Z: 1})
}

func configured(t *testing.T, a *ForcedClustering, settings algorithm.Settings) *ForcedClustering {
	t.Helper()
	require.NoError(t, a.Configure(settings))

	return a
}

func TestForcedClustering_SingleTrackSingleHit(t *testing.T) {
	// One hit on the track axis with energy exactly matching the track's
	// DCA energy: assigned, and the cluster stops there.
	hits := []types.Hit{eventtest.NewHit(1, types.Vector3{Z: 10}, 5)}
	st := event.NewStore(hits, []types.Track{zTrack(5, 0)})

	a := configured(t, New(), algorithm.Settings{})
	require.NoError(t, a.Run(st))

	ids := st.ClusterIDs()
	require.Len(t, ids, 1)

	c, err := st.Cluster(ids[0])
	require.NoError(t, err)
	require.Equal(t, 1, c.NumHits())
	require.InDelta(t, 5.0, c.HadronicEnergy(), 1e-12)
	require.False(t, st.HitAvailable(0))
}

func TestForcedClustering_EmptyInputs(t *testing.T) {
	t.Run("empty track list", func(t *testing.T) {
		hits := []types.Hit{eventtest.NewHit(1, types.Vector3{Z: 10}, 1)}
		st := event.NewStore(hits, nil)

		err := configured(t, New(), algorithm.Settings{}).Run(st)
		require.ErrorIs(t, err, types.ErrInvalidParameter)
		require.Empty(t, st.ClusterIDs())
	})

	t.Run("empty hit list", func(t *testing.T) {
		st := event.NewStore(nil, []types.Track{zTrack(5, 0)})

		err := configured(t, New(), algorithm.Settings{}).Run(st)
		require.ErrorIs(t, err, types.ErrInvalidParameter)
		require.Empty(t, st.ClusterIDs())
	})
}

func TestForcedClustering_EnergyCap(t *testing.T) {
	// Four 1 GeV hits at increasing distance from a 2.5 GeV track. The
	// third hit crosses the cap; the fourth must stay out and become a
	// remnant cluster of its own.
	hits := []types.Hit{
		eventtest.NewHit(1, types.Vector3{X: 1, Z: 10}, 1),
		eventtest.NewHit(2, types.Vector3{X: 2, Z: 20}, 1),
		eventtest.NewHit(3, types.Vector3{X: 3, Z: 30}, 1),
		eventtest.NewHit(4, types.Vector3{X: 4, Z: 40}, 1),
	}
	st := event.NewStore(hits, []types.Track{zTrack(2.5, 0)})

	require.NoError(t, configured(t, New(), algorithm.Settings{}).Run(st))

	ids := st.ClusterIDs()
	require.Len(t, ids, 2)

	seeded, err := st.Cluster(ids[0])
	require.NoError(t, err)
	require.Equal(t, 3, seeded.NumHits())
	// The last accepted hit may overshoot the cap by at most its own energy.
	require.LessOrEqual(t, seeded.HadronicEnergy(), 2.5+1.0)

	remnant, err := st.Cluster(ids[1])
	require.NoError(t, err)
	require.Equal(t, 1, remnant.NumHits())
}

func TestForcedClustering_Exclusivity(t *testing.T) {
	// Two tracks competing over the same hits: every hit ends up in
	// exactly one cluster.
	hits := []types.Hit{
		eventtest.NewHit(1, types.Vector3{X: 0, Z: 10}, 1),
		eventtest.NewHit(1, types.Vector3{X: 10, Z: 10}, 1),
		eventtest.NewHit(2, types.Vector3{X: 5, Z: 20}, 1),
	}
	st := event.NewStore(hits, []types.Track{zTrack(10, 0), zTrack(10, 10)})

	require.NoError(t, configured(t, New(), algorithm.Settings{}).Run(st))

	owners := make(map[types.HitID]int)
	for _, cid := range st.ClusterIDs() {
		layered, err := st.OrderedClusterHits(cid, true)
		require.NoError(t, err)
		for _, lh := range layered {
			for _, hid := range lh.Hits {
				owners[hid]++
			}
		}
	}

	require.Len(t, owners, 3)
	for hid, n := range owners {
		require.Equal(t, 1, n, "hit %d claimed %d times", hid, n)
		require.False(t, st.HitAvailable(hid))
	}
}

func TestForcedClustering_Determinism(t *testing.T) {
	hits := []types.Hit{
		eventtest.NewHit(1, types.Vector3{X: 2, Z: 10}, 0.7),
		eventtest.NewHit(1, types.Vector3{X: -2, Z: 10}, 0.7), // same distance, tie
		eventtest.NewHit(2, types.Vector3{X: 2, Z: 20}, 0.7),
		eventtest.NewHit(3, types.Vector3{X: -2, Z: 30}, 0.7),
	}
	tracks := []types.Track{zTrack(1.5, 0), zTrack(1.5, 4)}

	membership := func() map[types.ClusterID][]types.HitID {
		st := event.NewStore(hits, tracks)
		require.NoError(t, configured(t, New(), algorithm.Settings{}).Run(st))

		out := make(map[types.ClusterID][]types.HitID)
		for _, cid := range st.ClusterIDs() {
			layered, err := st.OrderedClusterHits(cid, true)
			require.NoError(t, err)
			for _, lh := range layered {
				out[cid] = append(out[cid], lh.Hits...)
			}
		}

		return out
	}

	first := membership()
	for range 5 {
		require.Equal(t, first, membership())
	}
}

func TestForcedClustering_IsolatedHitPolicy(t *testing.T) {
	hits := []types.Hit{
		eventtest.NewHit(1, types.Vector3{Z: 10}, 1),
		eventtest.NewHit(2, types.Vector3{Z: 20}, 1, eventtest.Isolated()),
	}

	t.Run("isolated hits excluded by default", func(t *testing.T) {
		st := event.NewStore(hits, []types.Track{zTrack(10, 0)})
		require.NoError(t, configured(t, New(), algorithm.Settings{}).Run(st))

		require.False(t, st.HitAvailable(0))
		require.True(t, st.HitAvailable(1))
	})

	t.Run("isolated hits included when configured", func(t *testing.T) {
		st := event.NewStore(hits, []types.Track{zTrack(10, 0)})
		settings := algorithm.Settings{"ShouldClusterIsolatedHits": true}
		require.NoError(t, configured(t, New(), settings).Run(st))

		require.False(t, st.HitAvailable(0))
		require.False(t, st.HitAvailable(1))
	})
}

func TestForcedClustering_Daughters(t *testing.T) {
	hits := []types.Hit{eventtest.NewHit(1, types.Vector3{X: 50, Z: 10}, 1)}

	t.Run("standard clustering daughter takes remnants", func(t *testing.T) {
		runner := &fakeRunner{}
		st := event.NewStore(hits, []types.Track{zTrack(0, 0)})

		settings := algorithm.Settings{
			"ShouldRunStandardClusteringAlgorithm": true,
			"StandardClustering":                   "ConeClustering",
		}
		require.NoError(t, configured(t, New(WithRunner(runner)), settings).Run(st))
		require.Equal(t, []string{"ConeClustering"}, runner.calls)

		// The remnant hit was left for the daughter, not collected here.
		require.True(t, st.HitAvailable(0))
	})

	t.Run("isolated hit association daughter runs last", func(t *testing.T) {
		runner := &fakeRunner{}
		st := event.NewStore(hits, []types.Track{zTrack(10, 50)})

		settings := algorithm.Settings{
			"ShouldAssociateIsolatedHits": true,
			"IsolatedHitAssociation":      "IsolatedHitAssociation",
		}
		require.NoError(t, configured(t, New(WithRunner(runner)), settings).Run(st))
		require.Equal(t, []string{"IsolatedHitAssociation"}, runner.calls)
	})

	t.Run("daughter without runner is a misconfiguration", func(t *testing.T) {
		st := event.NewStore(hits, []types.Track{zTrack(10, 0)})

		settings := algorithm.Settings{
			"ShouldRunStandardClusteringAlgorithm": true,
			"StandardClustering":                   "ConeClustering",
		}
		err := configured(t, New(), settings).Run(st)
		require.ErrorIs(t, err, types.ErrMisconfigured)
	})

	t.Run("daughter enabled without a name fails configuration", func(t *testing.T) {
		err := New().Configure(algorithm.Settings{"ShouldRunStandardClusteringAlgorithm": true})
		require.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestForcedClustering_DeletesEmptyClusters(t *testing.T) {
	// A zero-energy track saturates immediately, so its seeded cluster
	// stays empty and must be removed; the hits become one remnant cluster.
	hits := []types.Hit{
		eventtest.NewHit(1, types.Vector3{Z: 10}, 1),
		eventtest.NewHit(2, types.Vector3{Z: 20}, 1),
	}
	st := event.NewStore(hits, []types.Track{zTrack(0, 0)})

	require.NoError(t, configured(t, New(), algorithm.Settings{}).Run(st))

	ids := st.ClusterIDs()
	require.Len(t, ids, 1)

	remnant, err := st.Cluster(ids[0])
	require.NoError(t, err)
	require.Equal(t, 2, remnant.NumHits())
	require.Empty(t, remnant.Tracks())
}
