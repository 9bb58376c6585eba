package attrs

import "fmt"

// Kind discriminates the states an attribute cell can be in.
type Kind uint8

const (
	// KindInvalid guards against zero-valued cells so schema validation can
	// detect declarations that never received a default.
	KindInvalid Kind = iota
	// KindConcrete holds a materialised value ready for consumers.
	KindConcrete
	// KindAutomatic defers the value until a resolution rule runs with
	// enough context.
	KindAutomatic
	// KindInherit defers the value to the nearest ancestor theme that
	// defines the referenced attribute.
	KindInherit
)

func (k Kind) String() string {
	switch k {
	case KindConcrete:
		return "concrete"
	case KindAutomatic:
		return "automatic"
	case KindInherit:
		return "inherit"
	default:
		return "invalid"
	}
}

// Value is one attribute cell: a concrete value, the automatic sentinel, or
// an inheritance reference. The engine stores concrete payloads as opaque
// boxed data; typing is the concern of the declaring recipe.
type Value struct {
	kind     Kind
	concrete any
	inherit  string
}

// Concrete wraps v as a materialised attribute value.
func Concrete(v any) Value {
	return Value{kind: KindConcrete, concrete: v}
}

// Automatic returns the deferred sentinel. The concrete value is computed by
// the recipe's resolution rule on first read.
func Automatic() Value {
	return Value{kind: KindAutomatic}
}

// Inherit returns a reference that resolves by walking the theme chain for
// name.
func Inherit(name string) Value {
	return Value{kind: KindInherit, inherit: name}
}

// Kind reports which state the cell is in.
func (v Value) Kind() Kind { return v.kind }

// IsConcrete reports whether the cell holds a materialised value.
func (v Value) IsConcrete() bool { return v.kind == KindConcrete }

// IsAutomatic reports whether the cell still holds the deferred sentinel.
func (v Value) IsAutomatic() bool { return v.kind == KindAutomatic }

// IsInherit reports whether the cell defers to the theme chain.
func (v Value) IsInherit() bool { return v.kind == KindInherit }

// Any returns the boxed concrete payload. The second return is false when the
// cell is a sentinel.
func (v Value) Any() (any, bool) {
	if v.kind != KindConcrete {
		return nil, false
	}
	return v.concrete, true
}

// InheritTarget returns the attribute name an inherit cell refers to.
func (v Value) InheritTarget() string { return v.inherit }

func (v Value) String() string {
	switch v.kind {
	case KindConcrete:
		return fmt.Sprintf("%v", v.concrete)
	case KindAutomatic:
		return "automatic"
	case KindInherit:
		return fmt.Sprintf("inherit(%s)", v.inherit)
	default:
		return "<invalid>"
	}
}
