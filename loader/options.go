package loader

import "github.com/jprathore/clrmeta/unresolved"

// Options is the typed configuration surface named in spec.md §6.
type Options struct {
	// IncludeInternalMembers loads members/types below public/family
	// visibility too (spec.md §4.4).
	IncludeInternalMembers bool
	// LazyLoad defers base types, nested types and members of each
	// top-level type to first access (spec.md §4.6).
	LazyLoad bool
	// UseDynamicType turns a DynamicAttribute-flagged `object` slot
	// into the `dynamic` sentinel (spec.md §4.2 case 7). Default true.
	UseDynamicType bool
	// UseTupleTypes flattens System.ValueTuple instantiations into a
	// TupleType (spec.md §4.2.1). Default true.
	UseTupleTypes bool
	// ShortenInterfaceImplNames truncates an explicit interface
	// implementation's short name to the text after the final dot
	// (spec.md §4.4). Default true.
	ShortenInterfaceImplNames bool
	// OnEntityLoaded, if set, is invoked once for each top-level type
	// definition added to the assembly, on the goroutine running
	// LoadModule. Members and nested types do not trigger it.
	OnEntityLoaded func(unresolved.Entity)
}

// NewDefaultOptions returns the documented defaults (spec.md §6).
func NewDefaultOptions() *Options {
	return &Options{
		UseDynamicType:            true,
		UseTupleTypes:             true,
		ShortenInterfaceImplNames: true,
	}
}

func (o *Options) notify(e unresolved.Entity) {
	if o != nil && o.OnEntityLoaded != nil {
		o.OnEntityLoaded(e)
	}
}
