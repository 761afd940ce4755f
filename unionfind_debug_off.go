//go:build !partitiondebug

package partition

// checkInvariants is a no-op outside -tags partitiondebug builds: the
// structural invariants it validates are not user-observable, and
// walking every block and root cycle after each mutator is too costly to
// pay for unconditionally (see unionfind_debug.go for the real check).
func (p *UnionFindPartition[T]) checkInvariants() {}
