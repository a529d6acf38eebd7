package event

import (
	"fmt"
	"slices"

	"github.com/rete/pandora/types"
)

// Fragmentation is an in-flight cluster fragmentation transaction.
//
// Between BeginFragmentation and Commit, clusters created through the store
// are staged on the transaction's fragment list instead of the canonical
// cluster list, and may claim hits owned by the transaction's original
// clusters. Commit settles ownership atomically: either the fragments
// replace the originals in the canonical list, or the fragments are
// discarded and the originals stand untouched. Observers of the canonical
// list never see a half-applied state.
type Fragmentation struct {
	store     *Store
	originals []types.ClusterID
	fragments []types.ClusterID
	allowed   map[types.HitID]struct{}
	done      bool
}

// BeginFragmentation opens a fragmentation transaction over the given
// clusters. Only one transaction may be active on a store at a time.
func (s *Store) BeginFragmentation(ids []types.ClusterID) (*Fragmentation, error) {
	if s.frag != nil {
		return nil, fmt.Errorf("fragmentation already active: %w", types.ErrInvalidParameter)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("empty cluster list: %w", types.ErrInvalidParameter)
	}

	allowed := make(map[types.HitID]struct{})
	for _, id := range ids {
		c, err := s.Cluster(id)
		if err != nil {
			return nil, err
		}
		for _, layer := range c.layers {
			for _, hid := range c.hitsByLayer[layer] {
				allowed[hid] = struct{}{}
			}
		}
		for _, hid := range c.isolated {
			allowed[hid] = struct{}{}
		}
	}

	s.frag = &Fragmentation{
		store:     s,
		originals: slices.Clone(ids),
		allowed:   allowed,
	}

	return s.frag, nil
}

// Originals returns the handles of the clusters the transaction was opened
// over.
func (f *Fragmentation) Originals() []types.ClusterID {
	return slices.Clone(f.originals)
}

// Fragments returns the handles of the clusters staged so far.
func (f *Fragmentation) Fragments() []types.ClusterID {
	return slices.Clone(f.fragments)
}

func (f *Fragmentation) staged(id types.ClusterID) bool {
	return slices.Contains(f.fragments, id)
}

func (f *Fragmentation) owns(id types.HitID) bool {
	_, ok := f.allowed[id]

	return ok
}

// Commit ends the transaction. With keepFragments set, the original
// clusters are removed and the staged fragments join the canonical list in
// their place; otherwise the fragments are discarded and the originals are
// kept. Hit availability is unaffected either way: the hits stay owned by
// whichever side survives.
func (f *Fragmentation) Commit(keepFragments bool) error {
	if f.done {
		return fmt.Errorf("fragmentation already committed: %w", types.ErrInvalidParameter)
	}
	f.done = true
	f.store.frag = nil

	if keepFragments {
		for _, id := range f.originals {
			f.store.removeCluster(id, false)
		}
		f.store.order = append(f.store.order, f.fragments...)

		return nil
	}

	for _, id := range f.fragments {
		f.store.removeCluster(id, false)
	}

	return nil
}
