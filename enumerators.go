package partition

// boundedRGS enumerates, in lexicographic order, every restricted-growth
// string of length n whose running maximum never exceeds kmax-1 and whose
// final distinct-value count is at least kmin (spec.md §4.5). At-most-k,
// exactly-k and between-kmin-kmax are all this same struct under
// different (kmin, kmax) pairs:
//
//   - AtMostK(k)   == Between(1, k)
//   - ExactlyK(k)  == Between(k, k)
//   - Between(a,b) == Between(a, b)
//
// This unification follows directly from the "zeros" forward-fill
// formula in spec.md §4.5: with kmin=1 the fill always has enough slack
// to zero-pad every remaining position (reducing to the plain at-most-k
// fill), and with kmin=kmax the fill is forced to land on exactly kmax
// distinct values every time (reducing to exactly-k without a separate
// post-hoc distinct-count filter).
type boundedRGS struct {
	a, b       []int
	n          int
	kmin, kmax int
	first      bool
	done       bool
}

// NewAtMostK returns an enumerator over every RGS of length n with at
// most k distinct values (1 <= k <= n).
func NewAtMostK(n, k int) (*boundedRGS, error) {
	return newBoundedRGS("NewAtMostK", n, 1, k)
}

// NewExactlyK returns an enumerator over every RGS of length n with
// exactly k distinct values (1 <= k <= n).
func NewExactlyK(n, k int) (*boundedRGS, error) {
	return newBoundedRGS("NewExactlyK", n, k, k)
}

// NewBetween returns an enumerator over every RGS of length n with
// between kmin and kmax distinct values, inclusive (1 <= kmin <= kmax <= n).
func NewBetween(n, kmin, kmax int) (*boundedRGS, error) {
	return newBoundedRGS("NewBetween", n, kmin, kmax)
}

func newBoundedRGS(op string, n, kmin, kmax int) (*boundedRGS, error) {
	if n <= 0 {
		return nil, newErr(ArgInvalid, op, "n must be positive, got %d", n)
	}
	if kmin <= 0 {
		return nil, newErr(ArgInvalid, op, "kmin must be positive, got %d", kmin)
	}
	if kmax > n {
		return nil, newErr(ArgInvalid, op, "kmax %d exceeds n %d", kmax, n)
	}
	if kmin > kmax {
		return nil, newErr(ArgInvalid, op, "kmin %d exceeds kmax %d", kmin, kmax)
	}
	e := &boundedRGS{
		a:     make([]int, n),
		b:     make([]int, n),
		n:     n,
		kmin:  kmin,
		kmax:  kmax,
		first: true,
	}
	initTail(e.a, n, kmin)
	deriveRunningMax(e.a, e.b)
	return e, nil
}

// initTail sets the last k-1 positions of a to 1,2,...,k-1 (the
// lexicographically smallest RGS with at least k distinct values), per
// the exactly-k / between initialization rule in spec.md §4.5. All
// earlier positions remain 0. When k==1 this is a no-op (all-zero a).
func initTail(a []int, n, k int) {
	for i := n - k + 1; i < n; i++ {
		if i < 0 {
			continue
		}
		a[i] = k - n + i
	}
}

// deriveRunningMax recomputes b from a in one left-to-right pass:
// b[i] = max(a[0..i-1]), with b[0] = 0.
func deriveRunningMax(a, b []int) {
	running := 0
	for i := range a {
		b[i] = running
		if a[i] > running {
			running = a[i]
		}
	}
}

// Value returns the current RGS vector. Owned by the enumerator; copy it
// before the next call to Next if it must be retained.
func (e *boundedRGS) Value() []int {
	return e.a
}

// Next advances to the successor vector and reports whether one exists.
func (e *boundedRGS) Next() bool {
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

// scanBack finds the largest i >= 1 where incrementing a[i] is legal:
// a[i] <= b[i] (restricted growth) and a[i] < kmax-1 (cap not yet
// reached).
func (e *boundedRGS) scanBack() int {
	i := e.n - 1
	for i >= 1 && (e.a[i] > e.b[i] || e.a[i] == e.kmax-1) {
		i--
	}
	if i < 1 {
		return -1
	}
	return i
}

// fillForward fills positions i+1..n-1 with the lexicographically
// smallest values that still guarantee at least kmin distinct values by
// the end: zero-pad while there is slack, then force minimal new values
// once slack runs out (spec.md §4.5's "zeros" rule for Between).
func (e *boundedRGS) fillForward(i int) {
	running := e.b[i]
	if e.a[i] > running {
		running = e.a[i]
	}
	zeros := running + e.n - i - e.kmin
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

// reverseBoundedRGS enumerates the same family as boundedRGS but in
// reverse lexicographic order, per spec.md §4.5's reverse-variant rules.
type reverseBoundedRGS struct {
	a, b       []int
	n          int
	kmin, kmax int
	first      bool
	done       bool
}

// NewAtMostKReverse returns the reverse-lexicographic at-most-k enumerator.
func NewAtMostKReverse(n, k int) (*reverseBoundedRGS, error) {
	return newReverseBoundedRGS("NewAtMostKReverse", n, 1, k)
}

// NewExactlyKReverse returns the reverse-lexicographic exactly-k enumerator.
func NewExactlyKReverse(n, k int) (*reverseBoundedRGS, error) {
	return newReverseBoundedRGS("NewExactlyKReverse", n, k, k)
}

// NewBetweenReverse returns the reverse-lexicographic between-kmin-kmax
// enumerator.
func NewBetweenReverse(n, kmin, kmax int) (*reverseBoundedRGS, error) {
	return newReverseBoundedRGS("NewBetweenReverse", n, kmin, kmax)
}

func newReverseBoundedRGS(op string, n, kmin, kmax int) (*reverseBoundedRGS, error) {
	if n <= 0 {
		return nil, newErr(ArgInvalid, op, "n must be positive, got %d", n)
	}
	if kmin <= 0 {
		return nil, newErr(ArgInvalid, op, "kmin must be positive, got %d", kmin)
	}
	if kmax > n {
		return nil, newErr(ArgInvalid, op, "kmax %d exceeds n %d", kmax, n)
	}
	if kmin > kmax {
		return nil, newErr(ArgInvalid, op, "kmin %d exceeds kmax %d", kmin, kmax)
	}
	e := &reverseBoundedRGS{
		a:     make([]int, n),
		b:     make([]int, n),
		n:     n,
		kmin:  kmin,
		kmax:  kmax,
		first: true,
	}
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
func (e *reverseBoundedRGS) Value() []int {
	return e.a
}

// Next advances to the predecessor vector (in forward lex order) and
// reports whether one exists.
func (e *reverseBoundedRGS) Next() bool {
	if e.first {
		e.first = false
		return true
	}
	if e.done {
		return false
	}
	i := e.scanDecrementable()
	if i < 0 {
		e.done = true
		return false
	}
	e.a[i]--
	e.fillMax(i)
	return true
}

// scanDecrementable finds the largest i >= 1 such that a[i] can be
// decremented while leaving enough remaining positions to still reach
// kmin distinct values by the end.
func (e *reverseBoundedRGS) scanDecrementable() int {
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
		if reachable >= e.kmin {
			return i
		}
	}
	return -1
}

// fillMax fills positions i+1..n-1 with the largest permissible values
// (min(b[j]+1, kmax-1) at each step), per spec.md §4.5's reverse fill
// rule, producing the lexicographically greatest completion of the
// decremented prefix.
func (e *reverseBoundedRGS) fillMax(i int) {
	running := e.b[i]
	if e.a[i] > running {
		running = e.a[i]
	}
	for j := i + 1; j < e.n; j++ {
		e.b[j] = running
		v := running + 1
		if v > e.kmax-1 {
			v = e.kmax - 1
		}
		e.a[j] = v
		if v > running {
			running = v
		}
	}
}
