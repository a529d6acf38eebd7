// Package event owns the per-event reconstruction state: the hit and track
// arenas, the canonical cluster list, and the transactional cluster
// fragmentation protocol.
//
// Hits and tracks are loaded once and addressed by stable integer handles
// (types.HitID, types.TrackID); clusters are created and destroyed by
// algorithms through the Store's mutators and addressed by types.ClusterID
// handles that are never reused within an event. A hit's availability flag
// lives on the arena entry: a hit is available to at most one cluster at a
// time, and claiming it clears the flag for the rest of the pass.
//
// Cluster splitting runs under a two-phase transaction (BeginFragmentation /
// Commit): fragment clusters are staged outside the canonical list, and the
// commit step atomically keeps either the originals or the fragments. No
// observer of the canonical list ever sees both sides at once.
package event
