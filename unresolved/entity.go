// Package unresolved is the frozen, in-memory domain model produced by
// the loader: types, members, parameters, attributes and constants
// whose cross-assembly references have not yet been bound. Nothing in
// this package parses metadata or drives the load; it only defines the
// shape of the result and the interning/accessibility/kind vocabulary
// shared by every part of it.
package unresolved

// Entity is implemented by every domain object the loader can notify
// Options.OnEntityLoaded about once it has been fully registered.
type Entity interface {
	// Id returns a canonical identifier for this entity. Two entities
	// with the same Id are interchangeable.
	Id() string
}

// Accessibility mirrors the C#-visible accessibility levels a member
// or type can have; it is the union target used when promoting a
// property's accessibility from its accessors (spec.md §4.4).
type Accessibility uint8

const (
	AccessibilityPrivate Accessibility = iota
	AccessibilityProtectedAndInternal
	AccessibilityInternal
	AccessibilityProtected
	AccessibilityProtectedOrInternal
	AccessibilityPublic
)

func (a Accessibility) String() string {
	switch a {
	case AccessibilityPrivate:
		return "private"
	case AccessibilityProtectedAndInternal:
		return "private protected"
	case AccessibilityInternal:
		return "internal"
	case AccessibilityProtected:
		return "protected"
	case AccessibilityProtectedOrInternal:
		return "protected internal"
	case AccessibilityPublic:
		return "public"
	default:
		return "unknown"
	}
}

// IsVisible reports whether a member at this accessibility level would
// be loaded: public, family (protected) or fam-or-assem, or anything at
// all when includeInternal is set (spec.md §4.4).
func (a Accessibility) IsVisible(includeInternal bool) bool {
	switch a {
	case AccessibilityPublic, AccessibilityProtected, AccessibilityProtectedOrInternal:
		return true
	default:
		return includeInternal
	}
}

// promotionJoin lists the accessor pairs whose join, for the
// property-accessor union rule in spec.md §4.4, is not simply the later
// of the two in the Accessibility declaration order. Internal and
// protected are incomparable in C#'s lattice except through their join,
// protected-or-internal, so that pair maps to it explicitly.
var promotionJoin = map[[2]Accessibility]Accessibility{
	{AccessibilityProtected, AccessibilityInternal}: AccessibilityProtectedOrInternal,
	{AccessibilityInternal, AccessibilityProtected}: AccessibilityProtectedOrInternal,
}

// Join computes the most permissive accessibility of two accessor
// accessibility levels, per the C# promotion rules named in spec.md
// §4.4: public > protected-or-internal > protected, internal >
// protected-and-internal > private; protected∪internal promotes to
// protected-or-internal.
func Join(a, b Accessibility) Accessibility {
	if a == b {
		return a
	}
	if v, ok := promotionJoin[[2]Accessibility{a, b}]; ok {
		return v
	}
	if a > b {
		return a
	}
	return b
}
