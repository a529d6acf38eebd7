package event_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rete/pandora/event"
	"github.com/rete/pandora/eventtest"
	"github.com/rete/pandora/types"
)

func fragmentationFixture(t *testing.T) (*event.Store, types.ClusterID) {
	t.Helper()

	hits := []types.Hit{
		eventtest.NewHit(1, types.Vector3{Z: 10}, 1),
		eventtest.NewHit(2, types.Vector3{Z: 20}, 1),
		eventtest.NewHit(3, types.Vector3{Z: 30}, 1),
		eventtest.NewHit(9, types.Vector3{Z: 90}, 1), // stays unclustered
	}
	track := eventtest.NewTrack(10, types.Vector3{}, types.Vector3{Z: 1})
	st := event.NewStore(hits, []types.Track{track})

	cid, err := st.CreateClusterFromTrack(0)
	require.NoError(t, err)
	for hid := range 3 {
		require.NoError(t, st.AddHitToCluster(cid, types.HitID(hid)))
	}

	return st, cid
}

func TestFragmentation_CommitFragments(t *testing.T) {
	st, original := fragmentationFixture(t)

	tx, err := st.BeginFragmentation([]types.ClusterID{original})
	require.NoError(t, err)
	require.Equal(t, []types.ClusterID{original}, tx.Originals())

	// Staged clusters may claim the originals' hits and stay off the
	// canonical list until commit.
	mip, err := st.CreateClusterFromTrack(0)
	require.NoError(t, err)
	require.NoError(t, st.AddHitToCluster(mip, 0))
	require.NoError(t, st.AddHitToCluster(mip, 1))

	photon, err := st.CreateClusterFromHit(2)
	require.NoError(t, err)

	require.Equal(t, []types.ClusterID{original}, st.ClusterIDs())
	require.Equal(t, []types.ClusterID{mip, photon}, tx.Fragments())

	require.NoError(t, tx.Commit(true))

	require.Equal(t, []types.ClusterID{mip, photon}, st.ClusterIDs())
	require.False(t, st.HasCluster(original))

	// Hits stay claimed by the surviving side.
	for hid := range 3 {
		require.False(t, st.HitAvailable(types.HitID(hid)))
	}
}

func TestFragmentation_CommitOriginals(t *testing.T) {
	st, original := fragmentationFixture(t)

	tx, err := st.BeginFragmentation([]types.ClusterID{original})
	require.NoError(t, err)

	mip, err := st.CreateClusterFromTrack(0)
	require.NoError(t, err)
	require.NoError(t, st.AddHitToCluster(mip, 0))

	require.NoError(t, tx.Commit(false))

	require.Equal(t, []types.ClusterID{original}, st.ClusterIDs())
	require.False(t, st.HasCluster(mip))

	c, err := st.Cluster(original)
	require.NoError(t, err)
	require.Equal(t, 3, c.NumHits())
	require.False(t, st.HitAvailable(0))
}

func TestFragmentation_Guards(t *testing.T) {
	st, original := fragmentationFixture(t)

	t.Run("empty cluster list", func(t *testing.T) {
		_, err := st.BeginFragmentation(nil)
		require.ErrorIs(t, err, types.ErrInvalidParameter)
	})

	tx, err := st.BeginFragmentation([]types.ClusterID{original})
	require.NoError(t, err)

	t.Run("no concurrent transactions", func(t *testing.T) {
		_, err := st.BeginFragmentation([]types.ClusterID{original})
		require.ErrorIs(t, err, types.ErrInvalidParameter)
	})

	t.Run("staged cluster cannot claim hits outside the originals", func(t *testing.T) {
		frag, err := st.CreateClusterFromTrack(0)
		require.NoError(t, err)
		require.ErrorIs(t, st.AddHitToCluster(frag, 3), types.ErrInvalidParameter)
	})

	require.NoError(t, tx.Commit(false))

	t.Run("double commit rejected", func(t *testing.T) {
		require.ErrorIs(t, tx.Commit(false), types.ErrInvalidParameter)
	})
}
