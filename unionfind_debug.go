//go:build partitiondebug

package partition

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/gstamatelat/partition/internal/arena"
)

// checkInvariants walks every root and block cycle and panics if any of
// the structural invariants from spec.md §4.2 is violated: I1 (block
// cycle length equals root.Size), I2 (root cycle length equals
// subsetCount), every live handle reachable from exactly one root, and
// parents forming a forest whose tree count equals subsetCount. These
// invariants are not user-observable; this walker only runs under
// -tags partitiondebug, per spec.md §4.2's "validated in debug builds".
func (p *UnionFindPartition[T]) checkInvariants() {
	n := p.arenaLen()
	visited := bitset.New(uint(n))

	rootCount := 0
	if p.anyRoot != arena.Nil {
		cur := p.anyRoot
		for {
			rootCount++
			if rootCount > p.subsetCount+1 {
				panic(fmt.Sprintf("partition: root cycle longer than subsetCount=%d", p.subsetCount))
			}
			root := cur
			rootSlot := p.arena.Get(root)
			if rootSlot.Parent != root {
				panic(fmt.Sprintf("partition: root handle %d does not self-parent", root))
			}

			blockLen := 0
			item := root
			for {
				if visited.Test(uint(item)) {
					panic(fmt.Sprintf("partition: handle %d visited from two different blocks", item))
				}
				visited.Set(uint(item))
				anc, steps := item, 0
				for p.arena.Get(anc).Parent != anc {
					anc = p.arena.Get(anc).Parent
					if steps++; steps > n {
						panic(fmt.Sprintf("partition: parent chain from handle %d does not end at a root", item))
					}
				}
				if anc != root {
					panic(fmt.Sprintf("partition: handle %d in the block of root %d has root %d", item, root, anc))
				}
				blockLen++
				if blockLen > rootSlot.Size+1 {
					panic(fmt.Sprintf("partition: block cycle at root %d longer than Size=%d", root, rootSlot.Size))
				}
				item = p.arena.Get(item).NextItem
				if item == root {
					break
				}
			}
			if blockLen != rootSlot.Size {
				panic(fmt.Sprintf("partition: I1 violated at root %d: cycle length %d != Size %d", root, blockLen, rootSlot.Size))
			}

			cur = rootSlot.NextRoot
			if cur == p.anyRoot {
				break
			}
		}
	}

	if rootCount != p.subsetCount {
		panic(fmt.Sprintf("partition: I2 violated: root cycle length %d != subsetCount %d", rootCount, p.subsetCount))
	}
	if int(visited.Count()) != len(p.lookup) {
		panic(fmt.Sprintf("partition: reachable handle count %d != element count %d", visited.Count(), len(p.lookup)))
	}
	for t, h := range p.lookup {
		if p.arena.Get(h).Element != t {
			panic(fmt.Sprintf("partition: lookup(%v).element != %v", t, t))
		}
	}
}

// arenaLen returns the arena's high-water handle count, used to size the
// debug bitset.
func (p *UnionFindPartition[T]) arenaLen() int {
	return p.arena.Len()
}
