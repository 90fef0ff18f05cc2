package radix

import (
	"sync/atomic"
	"unsafe"

	"github.com/aglyzov/go-radix/epoch"
)

// Key is any fixed-width unsigned integer a stored value identifies itself
// with. The key width decides the depth of the tree.
type Key interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Keyed is implemented by stored value types. ID must be pure and must not
// change while the value is in a tree - the id is the identity.
type Keyed[K Key] interface {
	ID() K
}

// Tree is a concurrent, lock-free radix tree mapping fixed-width integer
// ids to values. A Tree must be created with New or NewWithDomain.
type Tree[K Key, V Keyed[K]] struct {
	dom  *epoch.Domain
	root slot[K, V]
	size atomic.Uint64
	top  int // level of the root slot: (W-1)/chunkBits
}

// New returns an empty tree with a private epoch domain.
func New[K Key, V Keyed[K]]() *Tree[K, V] {
	return NewWithDomain[K, V](new(epoch.Domain))
}

// NewWithDomain returns an empty tree whose read-side epochs are tracked by
// dom, letting several trees share one grace-period clock.
func NewWithDomain[K Key, V Keyed[K]](dom *epoch.Domain) *Tree[K, V] {
	var (
		k K
		v V
	)
	if unsafe.Alignof(v) < 2 || unsafe.Sizeof(v) < 2 {
		panic("radix: value type needs size and alignment of at least 2")
	}
	return &Tree[K, V]{
		dom: dom,
		top: (int(8*unsafe.Sizeof(k)) - 1) / chunkBits,
	}
}

// Len returns the number of values in the tree. It never decreases: nothing
// can be removed from the tree at this time.
func (t *Tree[K, V]) Len() uint64 {
	return t.size.Load()
}

// Get returns the value whose id equals key, if there is one. The value is
// shared with every other reader and must be treated as immutable.
func (t *Tree[K, V]) Get(key K) (*V, bool) {
	g := t.dom.Enter()
	defer g.Leave()

	var (
		level = t.top
		e     = t.root.load()
	)

	// walk down to a non-node slot
	for e.isNode() {
		e = e.node().slotFor(level, key).load()
		level--
	}

	leaf := e.leaf()
	if leaf == nil || (*leaf).ID() != key {
		return nil, false
	}

	return leaf, true
}

// Insert adds v to the tree. It returns true if v's id was absent, in which
// case the tree has taken the value: the caller must not mutate it anymore.
// It returns false if a value with the same id is already present - the tree
// is unchanged then and the caller keeps v.
func (t *Tree[K, V]) Insert(v *V) bool {
	key := (*v).ID()

	g := t.dom.Enter()
	defer g.Leave()

	var (
		level = t.top
		cur   = &t.root
	)

	for {
		e := cur.load()

		// walk down to a non-node slot
		for e.isNode() {
			cur = e.node().slotFor(level, key)
			level--
			e = cur.load()
		}

		// An empty slot - try to claim it. This CAS is the linearization
		// point of a winning insert.
		if leaf := e.leaf(); leaf == nil {
			if cur.compareAndSwap(e, leafElement[K, V](v)) {
				t.size.Add(1)
				return true
			}
			continue // lost the race, the slot holds a leaf or node now
		} else if (*leaf).ID() == key {
			return false // already present
		}

		// The slot holds a leaf with a different id. Split: build the next
		// level down off-tree with the old leaf already in place, then
		// publish it. The pre-store happens before the CAS, so a reader
		// that observes the node observes the migrated leaf. A losing CAS
		// drops the node unpublished - no reference to it has escaped, so
		// the collector takes it back; that is the only direct-free path.
		n := newNode(level, (*e.leaf()).ID(), e)
		cur.compareAndSwap(e, nodeElement(n))
		// Either way the slot holds a node now; resume the descent into it.
	}
}
