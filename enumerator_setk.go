package partition

import "golang.org/x/exp/slices"

// SetK enumerates, in lexicographic order, every restricted-growth string
// of length n whose distinct-value count lies in an arbitrary finite set
// K ⊆ {1..n} (spec.md §4.5's "set-K" variant). It shares boundedRGS's
// zero-padding forward-fill shape but replaces the constant kmin target
// with a lookup table m[v] (the smallest member of K that is >= v),
// because K need not be a contiguous range the way Between's is.
type SetK struct {
	a, b  []int
	n     int
	k     []int // sorted, deduplicated K
	kmax  int
	m     []int // m[v], v = 0..kmax
	first bool
	done  bool
}

// NewSetK returns a forward enumerator over partitions of an n-element
// set whose block count is a member of K. K is copied, sorted and
// deduplicated; duplicate entries are silently ignored (spec.md §9's Open
// Question, resolved in favour of silent deduplication).
func NewSetK(n int, k []int) (*SetK, error) {
	const op = "NewSetK"
	sorted, err := normalizeK(op, n, k)
	if err != nil {
		return nil, err
	}
	kmax := sorted[len(sorted)-1]
	kmin := sorted[0]
	m := computeM(sorted, kmax)

	e := &SetK{
		a:     make([]int, n),
		b:     make([]int, n),
		n:     n,
		k:     sorted,
		kmax:  kmax,
		m:     m,
		first: true,
	}
	initTail(e.a, n, kmin)
	deriveRunningMax(e.a, e.b)
	return e, nil
}

// normalizeK validates and normalizes a caller-supplied block-count set:
// non-nil, non-empty, every entry in [1, n], sorted ascending, deduplicated.
func normalizeK(op string, n int, k []int) ([]int, error) {
	if k == nil {
		return nil, newErr(NullArg, op, "K is nil")
	}
	if len(k) == 0 {
		return nil, newErr(ArgInvalid, op, "K is empty")
	}
	for _, v := range k {
		if v < 1 || v > n {
			return nil, newErr(ArgInvalid, op, "K entry %d out of range [1,%d]", v, n)
		}
	}
	sorted := append([]int(nil), k...)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	return sorted, nil
}

// computeM builds m[v] for v = 0..kmax: the smallest element of the
// (sorted) set that is >= v, per spec.md §4.5.
func computeM(sorted []int, kmax int) []int {
	m := make([]int, kmax+1)
	idx := 0
	for v := 0; v <= kmax; v++ {
		for idx < len(sorted) && sorted[idx] < v {
			idx++
		}
		m[v] = sorted[idx]
	}
	return m
}

// computeMr builds mr[v] for v = 0..kmax: the largest element of the
// (sorted) set that is <= v, or -1 if no such element exists (v is
// below every member of the set), used to bound the reverse
// enumerator's forward fill.
func computeMr(sorted []int, kmax int) []int {
	mr := make([]int, kmax+1)
	idx := len(sorted) - 1
	for v := kmax; v >= 0; v-- {
		for idx >= 0 && sorted[idx] > v {
			idx--
		}
		if idx < 0 {
			mr[v] = -1
			continue
		}
		mr[v] = sorted[idx]
	}
	return mr
}

// Value returns the current RGS vector.
func (e *SetK) Value() []int {
	return e.a
}

// Next advances to the successor vector and reports whether one exists.
func (e *SetK) Next() bool {
	if e.first {
		e.first = false
		return true
	}
	if e.done {
		return false
	}
	i := e.scanBack()
	if i < 0 {
		e.done = true
		return false
	}
	e.a[i]++
	e.fillForward(i)
	return true
}

// scanBack finds the largest i >= 1 where incrementing a[i] is legal,
// using spec.md §4.5's three-clause set-K predicate: already at the cap,
// or already at the per-position maximum (a[i] > b[i]), or incrementing
// here could never be completed into a valid member of K given the
// remaining positions.
func (e *SetK) scanBack() int {
	i := e.n - 1
	for i >= 1 {
		v := e.a[i] + 1
		if v < e.b[i] {
			v = e.b[i]
		}
		infeasible := e.a[i] == e.kmax-1 ||
			e.m[v+1]-(v+1) > e.n-i-1 ||
			e.a[i] > e.b[i]
		if !infeasible {
			break
		}
		i--
	}
	if i < 1 {
		return -1
	}
	return i
}

// fillForward mirrors boundedRGS.fillForward but looks up the distinct-
// count target via m[] instead of a constant kmin.
func (e *SetK) fillForward(i int) {
	running := e.b[i]
	if e.a[i] > running {
		running = e.a[i]
	}
	target := e.m[running+1]
	zeros := running + e.n - i - target
	for j := i + 1; j < e.n; j++ {
		e.b[j] = running
		if zeros > 0 {
			e.a[j] = 0
			zeros--
		} else {
			running++
			e.a[j] = running
		}
	}
}

// SetKReverse enumerates the SetK family in reverse lexicographic order.
type SetKReverse struct {
	a, b  []int
	n     int
	k     []int
	kmax  int
	mr    []int
	first bool
	done  bool
}

// NewSetKReverse returns the reverse-lexicographic counterpart of NewSetK.
func NewSetKReverse(n int, k []int) (*SetKReverse, error) {
	const op = "NewSetKReverse"
	sorted, err := normalizeK(op, n, k)
	if err != nil {
		return nil, err
	}
	kmax := sorted[len(sorted)-1]
	mr := computeMr(sorted, kmax)

	e := &SetKReverse{
		a:    make([]int, n),
		b:    make([]int, n),
		n:    n,
		k:    sorted,
		kmax: kmax,
		mr:   mr,
	}
	e.first = true
	for i := 0; i < n; i++ {
		v := i
		if v > kmax-1 {
			v = kmax - 1
		}
		e.a[i] = v
	}
	deriveRunningMax(e.a, e.b)
	return e, nil
}

// Value returns the current RGS vector.
func (e *SetKReverse) Value() []int {
	return e.a
}

// Next advances to the predecessor vector and reports whether one exists.
func (e *SetKReverse) Next() bool {
	if e.first {
		e.first = false
		return true
	}
	if e.done {
		return false
	}
	i, target := e.scanDecrementable()
	if i < 0 {
		e.done = true
		return false
	}
	e.a[i]--
	e.fillToTarget(i, target)
	return true
}

// scanDecrementable finds the largest i >= 1 such that decrementing a[i]
// still leaves a member of K reachable in the suffix, using mr to bound
// the best achievable distinct count; it returns that position and the
// exact distinct-value count the fill must land on.
func (e *SetKReverse) scanDecrementable() (int, int) {
	for i := e.n - 1; i >= 1; i-- {
		if e.a[i] == 0 {
			continue
		}
		newRunning := e.b[i]
		if e.a[i]-1 > newRunning {
			newRunning = e.a[i] - 1
		}
		reachable := newRunning + 1 + (e.n - 1 - i)
		if reachable > e.kmax {
			reachable = e.kmax
		}
		target := e.mr[reachable]
		if target >= 0 && target >= newRunning+1 {
			return i, target
		}
	}
	return -1, 0
}

// fillToTarget fills positions i+1..n-1 with the lexicographically
// largest values that land the final distinct-value count exactly on
// target: front-load the forced new-maximum steps (largest possible
// early values), then repeat the final running maximum for the rest.
// This is the reverse mirror of SetK.fillForward, which instead delays
// forced steps as late as possible to land on the same target from the
// lexicographically small side.
func (e *SetKReverse) fillToTarget(i, target int) {
	running := e.b[i]
	if e.a[i] > running {
		running = e.a[i]
	}
	needed := target - running - 1
	for j := i + 1; j < e.n; j++ {
		e.b[j] = running
		if needed > 0 {
			running++
			needed--
		}
		e.a[j] = running
	}
}
