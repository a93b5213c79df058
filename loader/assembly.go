package loader

import (
	"context"
	"fmt"
	"sync"

	"github.com/jprathore/clrmeta/metadata"
	"github.com/jprathore/clrmeta/unresolved"
)

// assemblyDriver implements spec.md §4.7: translate one metadata.Module
// into a frozen *unresolved.Assembly, dispatching each top-level type to
// either the eager or the lazy type-definition reader depending on
// Options.LazyLoad.
type assemblyDriver struct {
	pool unresolved.Pool
	opts *Options

	eager *typeDefinitionReader // real pool, used always for step 1-2 and for eager mode
	lazy  *typeDefinitionReader // dummy pool, used by lazy proxies' deferred compute
	mu    sync.Mutex            // shared across every lazy type definition this assembly produces
}

func newAssemblyDriver(pool unresolved.Pool, opts *Options) *assemblyDriver {
	return &assemblyDriver{
		pool:  pool,
		opts:  opts,
		eager: newTypeDefinitionReader(pool, opts),
		lazy:  newTypeDefinitionReader(unresolved.NewDummyPool(), opts),
	}
}

// Load implements spec.md §4.7's four steps: capture assembly/module
// attributes, register type forwarders, dispatch each top-level type,
// then freeze. In eager mode, ctx is checked at each top-level type
// boundary (spec.md §5, §7); lazy mode has no such boundary to check
// since materialization happens after Load returns.
func (d *assemblyDriver) Load(ctx context.Context, mod metadata.Module) (*unresolved.Assembly, error) {
	asm := unresolved.NewAssembly(mod.Name(), mod.Location(), mod.Mvid(), mod.EntryPointToken())

	var assemblyAttrs []*unresolved.Attribute
	if info := mod.Assembly(); info != nil {
		assemblyAttrs = d.eager.attrs.Decode(info.Attributes)
		assemblyAttrs = append(assemblyAttrs, d.synthesizeAssemblyVersion(info))
	}
	moduleAttrs := d.eager.attrs.Decode(mod.ModuleAttributes())
	asm.SetAttributes(assemblyAttrs, moduleAttrs)

	for _, fwd := range mod.TypeForwarders() {
		ref := unresolved.NewNamedTypeReference(fwd.Scope.AssemblyName, fwd.Namespace, fwd.Name, fwd.Arity, true, false)
		asm.AddForwarder(unresolved.TypeForwarderKey{Namespace: fwd.Namespace, Name: fwd.Name, Arity: fwd.Arity}, ref)
	}

	for _, td := range mod.Types() {
		if !d.opts.LazyLoad {
			if err := ctx.Err(); err != nil {
				return nil, ErrCancelled
			}
		}
		if !typeAccessibility(td.Attributes()).IsVisible(d.opts.IncludeInternalMembers) {
			continue
		}
		asm.AddType(d.buildTopLevel(td))
	}

	asm.Freeze()
	return asm, nil
}

func (d *assemblyDriver) buildTopLevel(td metadata.TypeDefinition) unresolved.TypeDefinition {
	entity := d.dispatch(td)
	d.opts.notify(entity)
	return entity
}

func (d *assemblyDriver) dispatch(td metadata.TypeDefinition) unresolved.TypeDefinition {
	if !d.opts.LazyLoad {
		return d.eager.BuildEager(td)
	}
	return d.eager.BuildLazy(td, &d.mu, d.lazy)
}

// synthesizeAssemblyVersion builds an AssemblyVersionAttribute-shaped
// record from the Assembly table's own Version column (spec.md §4.3);
// unlike DllImport/StructLayout this one has no compiler-emitted
// counterpart to filter, since the version lives only in the table.
func (d *assemblyDriver) synthesizeAssemblyVersion(info *metadata.AssemblyInfo) *unresolved.Attribute {
	version := formatVersion(info.Version)
	ref := unresolved.NewNamedTypeReference("", nsReflection, "AssemblyVersionAttribute", 0, true, true)
	return d.pool.InternAttribute("assembly-version:"+version, unresolved.NewSynthesizedAttribute(ref, []any{version}, nil))
}

func formatVersion(v [4]uint16) string {
	return fmt.Sprintf("%d.%d.%d.%d", v[0], v[1], v[2], v[3])
}
