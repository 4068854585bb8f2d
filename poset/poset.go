// Package poset implements a mutable poset specialised for asymptotic
// expansions: elements are stored in key order, and inserting an element
// eagerly merges it with any stored element the configured predicate
// declares mergeable, in either direction, until a fixpoint is reached.
// The backing store is a persistent sorted map, so copying a poset is
// cheap and copies never share subsequent mutations.
package poset

import (
	"github.com/benbjohnson/immutable"
)

// Poset holds elements of type T ordered by keys of type K.
//
// canMerge(into, other) reports whether into can absorb other;
// merge(into, other) returns the merged element, or false when the
// merge annihilates both. The invariant maintained by Insert is that no
// two stored elements are mergeable in either direction.
type Poset[T, K any] struct {
	key      func(T) K
	canMerge func(into, other T) bool
	merge    func(into, other T) (T, bool)
	m        *immutable.SortedMap[entryKey[K], T]
	serial   uint64
}

// entryKey disambiguates elements with equal user keys: unmergeable
// elements may still share a key and must coexist.
type entryKey[K any] struct {
	user   K
	serial uint64
}

type entryComparer[K any] struct {
	user immutable.Comparer[K]
}

func (c entryComparer[K]) Compare(a, b entryKey[K]) int {
	if d := c.user.Compare(a.user, b.user); d != 0 {
		return d
	}
	switch {
	case a.serial < b.serial:
		return -1
	case a.serial > b.serial:
		return 1
	}
	return 0
}

// New returns an empty poset.
func New[T, K any](
	key func(T) K,
	comparer immutable.Comparer[K],
	canMerge func(into, other T) bool,
	merge func(into, other T) (T, bool),
) *Poset[T, K] {
	return &Poset[T, K]{
		key:      key,
		canMerge: canMerge,
		merge:    merge,
		m:        immutable.NewSortedMap[entryKey[K], T](entryComparer[K]{user: comparer}),
	}
}

// Insert adds t, eagerly applying absorption: stored elements that can
// absorb t consume it, and t absorbs any stored elements it can, until
// no merge applies. A merge that annihilates removes both elements.
func (p *Poset[T, K]) Insert(t T) {
restart:
	for itr := p.m.Iterator(); ; {
		k, v, ok := itr.Next()
		if !ok {
			break
		}
		if p.canMerge(v, t) {
			p.m = p.m.Delete(k)
			merged, keep := p.merge(v, t)
			if !keep {
				return
			}
			t = merged
			goto restart
		}
		if p.canMerge(t, v) {
			p.m = p.m.Delete(k)
			merged, keep := p.merge(t, v)
			if !keep {
				return
			}
			t = merged
			goto restart
		}
	}
	p.serial++
	p.m = p.m.Set(entryKey[K]{user: p.key(t), serial: p.serial}, t)
}

// Len returns the number of stored elements.
func (p *Poset[T, K]) Len() int { return p.m.Len() }

// All returns the stored elements; the order is unspecified.
func (p *Poset[T, K]) All() []T { return p.Ascending() }

// Ascending returns the elements in ascending key order.
func (p *Poset[T, K]) Ascending() []T {
	out := make([]T, 0, p.m.Len())
	for itr := p.m.Iterator(); ; {
		_, v, ok := itr.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// Descending returns the elements in descending key order.
func (p *Poset[T, K]) Descending() []T {
	asc := p.Ascending()
	for i, j := 0, len(asc)-1; i < j; i, j = i+1, j-1 {
		asc[i], asc[j] = asc[j], asc[i]
	}
	return asc
}

// Clone returns a poset with the same configuration and contents.
// Cloning is O(1): the persistent backing map is shared, and mutations
// on either copy are invisible to the other.
func (p *Poset[T, K]) Clone() *Poset[T, K] {
	clone := *p
	return &clone
}
