package types

import "strconv"

// Substitution maps a unification variable's id (as a string key) to a
// resolved Type. It is owned by a single analysis run: callers must not
// share one across concurrent compilations.
type Substitution map[string]Type

// NewSubstitution returns an empty Substitution.
func NewSubstitution() Substitution {
	return make(Substitution)
}

func varKey(id int) string { return strconv.Itoa(id) }

// Bind records variable id -> t in the substitution. Callers must
// ensure occurs-check has already passed.
func (s Substitution) Bind(id int, t Type) {
	s[varKey(id)] = t
}

// Lookup returns the type bound to a variable id, if any.
func (s Substitution) Lookup(id int) (Type, bool) {
	t, ok := s[varKey(id)]
	return t, ok
}

// Prune walks t, replacing resolved variables transitively until a
// fixed point. It also prunes nested type arguments
// so the result is fully canonical.
func Prune(t Type, s Substitution) Type {
	for {
		v, ok := t.(*Variable)
		if !ok {
			break
		}
		next, bound := s.Lookup(v.ID)
		if !bound {
			break
		}
		t = next
	}
	switch n := t.(type) {
	case *ADT:
		params := make([]Type, len(n.Params))
		for i, p := range n.Params {
			params[i] = Prune(p, s)
		}
		return &ADT{Name: n.Name, Params: params, ConstArgs: n.ConstArgs}
	case *Array:
		return &Array{Element: Prune(n.Element, s), Size: n.Size}
	case *Function:
		args := make([]Type, len(n.Args))
		for i, a := range n.Args {
			args[i] = Prune(a, s)
		}
		return &Function{Args: args, ReturnType: Prune(n.ReturnType, s)}
	case *Promise:
		return &Promise{Inner: Prune(n.Inner, s)}
	default:
		return t
	}
}
