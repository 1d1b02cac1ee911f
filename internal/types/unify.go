package types

import "fmt"

// Mismatch describes a failed unification with both pruned sides, so
// the caller can build a precise diagnostic.
type Mismatch struct {
	Left, Right Type
	Reason      string
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("cannot unify %s with %s: %s", m.Left, m.Right, m.Reason)
}

// Unify attempts to unify a and b under s, returning an updated
// substitution. Unification of two primitives succeeds only when their
// normalized names match; unifying two ADTs succeeds iff their names
// match, their parameter lists have equal arity, and each pair of
// parameters unifies (const arguments are not compared).
func Unify(a, b Type, s Substitution) (Substitution, error) {
	a = Prune(a, s)
	b = Prune(b, s)

	if av, ok := a.(*Variable); ok {
		return bindVar(av, b, s)
	}
	if bv, ok := b.(*Variable); ok {
		return bindVar(bv, a, s)
	}

	switch at := a.(type) {
	case *Primitive:
		bt, ok := b.(*Primitive)
		if !ok || NormalizeTypeName(at.Name) != NormalizeTypeName(bt.Name) {
			return nil, &Mismatch{a, b, "primitive names differ"}
		}
		return s, nil

	case *Hole:
		return s, nil // a hole unifies with anything; inference will replace it

	case *ADT:
		bt, ok := b.(*ADT)
		if !ok || at.Name != bt.Name || len(at.Params) != len(bt.Params) {
			return nil, &Mismatch{a, b, "adt name or arity mismatch"}
		}
		var err error
		for i := range at.Params {
			s, err = Unify(at.Params[i], bt.Params[i], s)
			if err != nil {
				return nil, err
			}
		}
		return s, nil

	case *Array:
		bt, ok := b.(*Array)
		if !ok {
			return nil, &Mismatch{a, b, "not an array"}
		}
		if at.Size != nil && bt.Size != nil && at.Size.Value != bt.Size.Value {
			return nil, &Mismatch{a, b, "array sizes differ"}
		}
		return Unify(at.Element, bt.Element, s)

	case *Function:
		bt, ok := b.(*Function)
		if !ok || len(at.Args) != len(bt.Args) {
			return nil, &Mismatch{a, b, "function arity mismatch"}
		}
		var err error
		for i := range at.Args {
			s, err = Unify(at.Args[i], bt.Args[i], s)
			if err != nil {
				return nil, err
			}
		}
		return Unify(at.ReturnType, bt.ReturnType, s)

	case *Promise:
		bt, ok := b.(*Promise)
		if !ok {
			return nil, &Mismatch{a, b, "not a promise"}
		}
		return Unify(at.Inner, bt.Inner, s)

	case *Row:
		return unifyRows(at, b, s)

	default:
		return nil, &Mismatch{a, b, "unsupported type term"}
	}
}

func bindVar(v *Variable, t Type, s Substitution) (Substitution, error) {
	if other, ok := t.(*Variable); ok && other.ID == v.ID {
		return s, nil
	}
	if occurs(v.ID, t, s) {
		return nil, &Mismatch{v, t, "occurs check failed"}
	}
	next := NewSubstitution()
	for k, vv := range s {
		next[k] = vv
	}
	next.Bind(v.ID, t)
	return next, nil
}

// occurs implements the occurs-check: whether variable id appears
// (after pruning) inside t, which would create a cyclic substitution.
func occurs(id int, t Type, s Substitution) bool {
	t = Prune(t, s)
	switch n := t.(type) {
	case *Variable:
		return n.ID == id
	case *ADT:
		for _, p := range n.Params {
			if occurs(id, p, s) {
				return true
			}
		}
		return false
	case *Array:
		return occurs(id, n.Element, s)
	case *Function:
		for _, a := range n.Args {
			if occurs(id, a, s) {
				return true
			}
		}
		return occurs(id, n.ReturnType, s)
	case *Promise:
		return occurs(id, n.Inner, s)
	default:
		return false
	}
}

func unifyRows(a *Row, b Type, s Substitution) (Substitution, error) {
	br, ok := b.(*Row)
	if !ok {
		return nil, &Mismatch{a, b, "not a row"}
	}
	var err error
	for name, at := range a.Fields {
		bt, ok := br.Fields[name]
		if !ok {
			if br.Tail == nil {
				return nil, &Mismatch{a, b, fmt.Sprintf("missing field %q", name)}
			}
			continue
		}
		s, err = Unify(at, bt, s)
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}
