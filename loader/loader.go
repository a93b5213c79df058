package loader

import (
	"context"
	"fmt"

	"github.com/jprathore/clrmeta/logger"
	"github.com/jprathore/clrmeta/metadata"
	"github.com/jprathore/clrmeta/unresolved"
)

// Loader is the entry point named in spec.md §5: one Loader instance
// owns one interning pool and produces zero or more frozen assemblies
// from it. A single Loader is not safe for concurrent LoadModule calls
// against the same pool; run one Loader per goroutine when loading
// several files at once (spec.md §5's concurrency model).
type Loader struct {
	opts     *Options
	pool     unresolved.Pool
	resolver metadata.AssemblyResolver
	log      logger.Logger
}

// New creates a Loader. A nil opts uses NewDefaultOptions.
func New(opts *Options) *Loader {
	if opts == nil {
		opts = NewDefaultOptions()
	}
	return &Loader{
		opts:     opts,
		pool:     unresolved.NewPool(),
		resolver: metadata.NonFollowingResolver{},
		log:      logger.New(),
	}
}

// WithResolver installs an AssemblyResolver for cross-assembly lookups
// a caller may want to drive from OnEntityLoaded callbacks or from its
// own post-processing; the loader itself never calls Resolve (loading a
// single module's own metadata graph never requires resolving another
// assembly, spec.md §1's scope boundary).
func (l *Loader) WithResolver(r metadata.AssemblyResolver) *Loader {
	l.resolver = r
	return l
}

// Resolver returns the loader's configured AssemblyResolver.
func (l *Loader) Resolver() metadata.AssemblyResolver { return l.resolver }

// LoadModule translates an already-parsed metadata.Module into a frozen
// unresolved.Assembly (spec.md §4.7). It is safe to call LoadModule
// multiple times on the same Loader to accumulate types from several
// modules into one shared interning pool.
func (l *Loader) LoadModule(ctx context.Context, mod metadata.Module) (*unresolved.Assembly, error) {
	if mod == nil {
		return nil, invalidArgument("module must not be nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, ErrCancelled
	}

	l.log.SetTag(mod.Name())
	l.log.Info(fmt.Sprintf("loading module: %d top-level types, lazy=%v", len(mod.Types()), l.opts.LazyLoad))

	driver := newAssemblyDriver(l.pool, l.opts)
	asm, err := driver.Load(ctx, mod)
	if err != nil {
		l.log.Error(fmt.Sprintf("load cancelled: %v", err))
		return nil, err
	}

	l.log.Info(fmt.Sprintf("loaded assembly %q: %d types", asm.Name(), len(asm.Types())))
	return asm, nil
}

// LoadAssemblyFile loads a single module with assembly-reference
// following disabled regardless of any resolver installed via
// WithResolver, per metadata.NonFollowingResolver's contract. Use this
// entry point for the common "one file, no cross-assembly resolution"
// case; use LoadModule directly when a resolver is meant to apply.
func (l *Loader) LoadAssemblyFile(ctx context.Context, mod metadata.Module) (*unresolved.Assembly, error) {
	prior := l.resolver
	l.resolver = metadata.NonFollowingResolver{}
	defer func() { l.resolver = prior }()
	return l.LoadModule(ctx, mod)
}

// Pool exposes the loader's interning pool, e.g. so a caller loading
// several related modules can pass it to unresolved.NewDummyPool-style
// scaffolding of their own.
func (l *Loader) Pool() unresolved.Pool { return l.pool }

// Finish implements spec.md §4.6's Finish operation for a lazily-loaded
// assembly: it forces every still-null lazy slot on every top-level
// type to materialize, then drops the loader's own references so the
// source metadata graph asm was built from becomes collectible once the
// caller also releases it. Calling Finish on an eagerly-loaded assembly
// is a harmless no-op.
func (l *Loader) Finish(asm *unresolved.Assembly) {
	if asm == nil {
		return
	}
	finishTypes(asm.Types())
}
