package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jprathore/clrmeta/jsonmodule"
	"github.com/jprathore/clrmeta/loader"
	"github.com/jprathore/clrmeta/unresolved"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	dumpFormat   string
	dumpLazy     bool
	dumpInternal bool
)

var dumpCmd = &cobra.Command{
	Use:   "dump <metadata-file>...",
	Short: "Load JSON metadata graphs and dump the resulting type system",
	Long: `dump reads one or more JSON-encoded CLI metadata graphs (see
package jsonmodule) and loads each through package loader, one Loader
per file, concurrently, then prints the frozen assemblies.

Supported formats:
  - text: human-readable text (default)
  - json: JSON format`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpFormat, "format", "f", "text", "output format (text, json)")
	dumpCmd.Flags().BoolVar(&dumpLazy, "lazy", false, "defer base types, nested types and members to first access")
	dumpCmd.Flags().BoolVar(&dumpInternal, "internal", false, "include members below public/family visibility")
}

func runDump(cmd *cobra.Command, args []string) error {
	opts := loader.NewDefaultOptions()
	opts.LazyLoad = dumpLazy
	opts.IncludeInternalMembers = dumpInternal

	assemblies := make([]*unresolved.Assembly, len(args))
	g, ctx := errgroup.WithContext(context.Background())
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			asm, err := loadFile(ctx, path, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			assemblies[i] = asm
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	switch dumpFormat {
	case "json":
		return dumpJSON(args, assemblies)
	case "text":
		return dumpText(args, assemblies)
	default:
		return fmt.Errorf("unknown format: %s", dumpFormat)
	}
}

// loadFile builds a fresh Loader, and so a fresh interning pool, per
// file: a single Loader is not safe for concurrent LoadModule calls
// against the same pool, so concurrent multi-file loading means one
// Loader per goroutine (spec.md §5).
func loadFile(ctx context.Context, path string, opts *loader.Options) (*unresolved.Assembly, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mod, err := jsonmodule.Load(f)
	if err != nil {
		return nil, fmt.Errorf("parsing metadata graph: %w", err)
	}

	l := loader.New(opts)
	return l.LoadAssemblyFile(ctx, mod)
}
