package rediscoll

import "context"

type setOp string

const (
	opUnion     setOp = "union"
	opIntersect setOp = "intersection"
	opDiff      setOp = "difference"
	opSymDiff   setOp = "symmetric difference"
)

// operandMembers resolves one algebra operand to decoded members: remote
// operands snapshot through their own view, plain slices are taken as-is,
// anything else is a TypeError.
func (s *Set[V]) operandMembers(ctx context.Context, op string, operand any) ([]V, error) {
	switch o := operand.(type) {
	case SetView[V]:
		return o.Members(ctx)
	case []V:
		return o, nil
	default:
		return nil, &TypeError{Op: op, Value: operand}
	}
}

// nativeKeys returns the store keys of self plus every operand when all
// operands are remote sets bound to the same store handle — the only case a
// multi-key server-side command reads the right data.
func (s *Set[V]) nativeKeys(operands []any) ([]string, bool) {
	ks := make([]string, 0, len(operands)+1)
	ks = append(ks, s.key)
	for _, operand := range operands {
		sv, ok := operand.(SetView[V])
		if !ok || sv.Store() != s.store {
			return nil, false
		}
		ks = append(ks, sv.Key())
	}
	return ks, true
}

// compute evaluates one algebra operation over self and operands. When every
// operand is a remote set on the same store and the store has a native
// command for op, the whole computation is a single server-side round trip;
// otherwise self's snapshot is folded with each operand client-side.
// Symmetric difference has no native multi-key command and always folds.
func (s *Set[V]) compute(ctx context.Context, op setOp, operands []any) ([]V, error) {
	if ks, ok := s.nativeKeys(operands); ok && op != opSymDiff {
		var raw []string
		var err error
		switch op {
		case opUnion:
			raw, err = s.store.SUnion(ctx, ks...)
		case opIntersect:
			raw, err = s.store.SInter(ctx, ks...)
		case opDiff:
			raw, err = s.store.SDiff(ctx, ks...)
		}
		if err != nil {
			return nil, err
		}
		return s.decodeAll(raw)
	}

	s.hooks.ClientFallback(string(op), len(operands))
	s.log.Debug("algebra computed client-side", Fields{
		"op": string(op), "key": s.key, "operands": len(operands),
	})

	mine, err := s.Members(ctx)
	if err != nil {
		return nil, err
	}
	acc := toSet(mine)
	for _, operand := range operands {
		members, err := s.operandMembers(ctx, string(op), operand)
		if err != nil {
			return nil, err
		}
		acc = fold(acc, members, op)
	}
	out := make([]V, 0, len(acc))
	for v := range acc {
		out = append(out, v)
	}
	return out, nil
}

func (s *Set[V]) decodeAll(raw []string) ([]V, error) {
	out := make([]V, 0, len(raw))
	for _, m := range raw {
		v, ok, err := s.decode(m)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func toSet[V comparable](members []V) map[V]struct{} {
	set := make(map[V]struct{}, len(members))
	for _, v := range members {
		set[v] = struct{}{}
	}
	return set
}

// fold accumulates one operand into the running result. Union accumulates,
// intersection retains the common members, difference removes the present
// ones, and symmetric difference toggles membership of each distinct
// operand member.
func fold[V comparable](acc map[V]struct{}, members []V, op setOp) map[V]struct{} {
	switch op {
	case opUnion:
		for _, v := range members {
			acc[v] = struct{}{}
		}
		return acc
	case opIntersect:
		next := make(map[V]struct{})
		for _, v := range members {
			if _, ok := acc[v]; ok {
				next[v] = struct{}{}
			}
		}
		return next
	case opDiff:
		for _, v := range members {
			delete(acc, v)
		}
		return acc
	default: // opSymDiff
		for v := range toSet(members) {
			if _, ok := acc[v]; ok {
				delete(acc, v)
			} else {
				acc[v] = struct{}{}
			}
		}
		return acc
	}
}

// derived materializes an algebra result as a brand-new collection of the
// receiver's kind — the left operand always decides the result type.
func (s *Set[V]) derived(ctx context.Context, op setOp, operands []any) (*Set[V], error) {
	data, err := s.compute(ctx, op, operands)
	if err != nil {
		return nil, err
	}
	return s.Derive(ctx, data, "", nil)
}

// applied overwrites self with an algebra result through the atomic
// clear+repopulate bootstrap, so even client-computed results are observed
// all-or-nothing.
func (s *Set[V]) applied(ctx context.Context, op setOp, operands []any) error {
	data, err := s.compute(ctx, op, operands)
	if err != nil {
		return err
	}
	members, err := s.encodeAll(data)
	if err != nil {
		return err
	}
	return s.initData(ctx, s, members, nil)
}

// strictDerived backs the operator spellings, which by convention only
// combine remote collections: any other operand kind is a TypeError. The
// named methods accept plain slices instead.
func (s *Set[V]) strictDerived(ctx context.Context, op setOp, other any) (*Set[V], error) {
	if _, ok := other.(SetView[V]); !ok {
		return nil, &TypeError{Op: string(op), Value: other}
	}
	return s.derived(ctx, op, []any{other})
}

// Union returns a new set holding the receiver's members plus every
// operand's. Operands may mix remote sets and plain []V slices.
func (s *Set[V]) Union(ctx context.Context, others ...any) (*Set[V], error) {
	return s.derived(ctx, opUnion, others)
}

// Intersection returns a new set holding the members common to the receiver
// and every operand.
func (s *Set[V]) Intersection(ctx context.Context, others ...any) (*Set[V], error) {
	return s.derived(ctx, opIntersect, others)
}

// Difference returns a new set holding the receiver's members not present in
// any operand.
func (s *Set[V]) Difference(ctx context.Context, others ...any) (*Set[V], error) {
	return s.derived(ctx, opDiff, others)
}

// SymmetricDifference returns a new set holding the members present in an
// odd number of the involved sets. Unlike Xor it accepts plain slices.
func (s *Set[V]) SymmetricDifference(ctx context.Context, others ...any) (*Set[V], error) {
	return s.derived(ctx, opSymDiff, others)
}

// Or, And, Sub and Xor are the operator spellings of Union, Intersection,
// Difference and SymmetricDifference. They only combine remote collections;
// a plain sequence operand fails with a TypeError.
func (s *Set[V]) Or(ctx context.Context, other any) (*Set[V], error) {
	return s.strictDerived(ctx, opUnion, other)
}

func (s *Set[V]) And(ctx context.Context, other any) (*Set[V], error) {
	return s.strictDerived(ctx, opIntersect, other)
}

func (s *Set[V]) Sub(ctx context.Context, other any) (*Set[V], error) {
	return s.strictDerived(ctx, opDiff, other)
}

func (s *Set[V]) Xor(ctx context.Context, other any) (*Set[V], error) {
	return s.strictDerived(ctx, opSymDiff, other)
}

// Update adds every operand's members to the receiver. Like all mutating
// algebra it rewrites the key via the atomic bootstrap rather than issuing
// per-member commands.
func (s *Set[V]) Update(ctx context.Context, others ...any) error {
	return s.applied(ctx, opUnion, others)
}

// IntersectionUpdate keeps only members common to the receiver and every
// operand.
func (s *Set[V]) IntersectionUpdate(ctx context.Context, others ...any) error {
	return s.applied(ctx, opIntersect, others)
}

// DifferenceUpdate removes every operand's members from the receiver.
func (s *Set[V]) DifferenceUpdate(ctx context.Context, others ...any) error {
	return s.applied(ctx, opDiff, others)
}

// SymmetricDifferenceUpdate replaces the receiver with the symmetric
// difference of itself and the operands.
func (s *Set[V]) SymmetricDifferenceUpdate(ctx context.Context, others ...any) error {
	return s.applied(ctx, opSymDiff, others)
}

// Equal reports whether both sides hold the same members, ignoring order and
// duplicates. The operand may be a remote set or a plain slice.
func (s *Set[V]) Equal(ctx context.Context, other any) (bool, error) {
	mine, err := s.Members(ctx)
	if err != nil {
		return false, err
	}
	theirs, err := s.operandMembers(ctx, "equal", other)
	if err != nil {
		return false, err
	}
	a, b := toSet(mine), toSet(theirs)
	if len(a) != len(b) {
		return false, nil
	}
	for v := range a {
		if _, ok := b[v]; !ok {
			return false, nil
		}
	}
	return true, nil
}

// IsDisjoint reports whether the receiver and the operand share no members.
func (s *Set[V]) IsDisjoint(ctx context.Context, other any) (bool, error) {
	theirs, err := s.operandMembers(ctx, "isdisjoint", other)
	if err != nil {
		return false, err
	}
	for _, v := range theirs {
		ok, err := s.Contains(ctx, v)
		if err != nil {
			return false, err
		}
		if ok {
			return false, nil
		}
	}
	return true, nil
}

// IsSubset reports whether every member of the receiver is in the operand.
func (s *Set[V]) IsSubset(ctx context.Context, other any) (bool, error) {
	sub, _, err := s.compare(ctx, "issubset", other)
	return sub, err
}

// IsProperSubset additionally requires the operand to hold at least one
// member the receiver lacks.
func (s *Set[V]) IsProperSubset(ctx context.Context, other any) (bool, error) {
	sub, equalSize, err := s.compare(ctx, "issubset", other)
	return sub && !equalSize, err
}

// IsSuperset reports whether every member of the operand is in the receiver.
func (s *Set[V]) IsSuperset(ctx context.Context, other any) (bool, error) {
	theirs, err := s.operandMembers(ctx, "issuperset", other)
	if err != nil {
		return false, err
	}
	for _, v := range theirs {
		ok, err := s.Contains(ctx, v)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// IsProperSuperset additionally requires the receiver to hold at least one
// member the operand lacks.
func (s *Set[V]) IsProperSuperset(ctx context.Context, other any) (bool, error) {
	sup, err := s.IsSuperset(ctx, other)
	if err != nil || !sup {
		return false, err
	}
	mine, err := s.Members(ctx)
	if err != nil {
		return false, err
	}
	theirs, err := s.operandMembers(ctx, "issuperset", other)
	if err != nil {
		return false, err
	}
	return len(toSet(mine)) != len(toSet(theirs)), nil
}

// compare reports (receiver ⊆ operand, sizes equal).
func (s *Set[V]) compare(ctx context.Context, op string, other any) (sub, equalSize bool, err error) {
	mine, err := s.Members(ctx)
	if err != nil {
		return false, false, err
	}
	theirs, err := s.operandMembers(ctx, op, other)
	if err != nil {
		return false, false, err
	}
	a, b := toSet(mine), toSet(theirs)
	for v := range a {
		if _, ok := b[v]; !ok {
			return false, len(a) == len(b), nil
		}
	}
	return true, len(a) == len(b), nil
}
