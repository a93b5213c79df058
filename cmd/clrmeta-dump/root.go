// Command clrmeta-dump loads one or more JSON-encoded metadata graphs
// through package loader and prints the resulting unresolved type
// system, the same shape a caller embedding package loader directly
// would get back from Loader.LoadModule.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	outputFile string
	output     io.Writer
)

var rootCmd = &cobra.Command{
	Use:   "clrmeta-dump",
	Short: "Managed-assembly metadata loader CLI",
	Long: `clrmeta-dump loads one or more JSON-encoded CLI metadata graphs
and prints the frozen, interned unresolved type system package loader
builds from them: types, members, parameters, attributes and type
parameters, with cross-assembly references left unresolved.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if outputFile != "" {
			f, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			output = f
		} else {
			output = os.Stdout
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if f, ok := output.(*os.File); ok && f != os.Stdout {
			f.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "write output to file instead of stdout")
	rootCmd.AddCommand(dumpCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
