package ast

// Pattern is a match-arm pattern: a wildcard, a plain binding, or an
// enum variant pattern with nested bindings.
type Pattern interface {
	Node
	patternNode()
}

// WildcardPattern matches anything and binds nothing: `_`.
type WildcardPattern struct {
	Location Location
}

func (w *WildcardPattern) Loc() Location  { return w.Location }
func (w *WildcardPattern) patternNode() {}

// BindingPattern matches anything and binds it to Name.
type BindingPattern struct {
	Name     string
	Location Location
}

func (b *BindingPattern) Loc() Location  { return b.Location }
func (b *BindingPattern) patternNode() {}

// VariantPattern matches a specific enum variant, optionally binding
// its payload positions: `Variant(x, y)` or `Variant` for a
// no-payload variant.
type VariantPattern struct {
	Variant  string
	Bindings []string
	Location Location
}

func (v *VariantPattern) Loc() Location  { return v.Location }
func (v *VariantPattern) patternNode() {}
