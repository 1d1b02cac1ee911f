package types

// VarGen allocates fresh unification variables with monotonically
// increasing ids. One VarGen is owned per analysis run.
type VarGen struct {
	next int
}

// Fresh returns a new *Variable with an id never returned before by
// this generator.
func (g *VarGen) Fresh() *Variable {
	g.next++
	return &Variable{ID: g.next}
}
