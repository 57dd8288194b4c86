// Command promptcompare compares before/after prompt pairs loaded from CSV
// or XLSX files, either in a browser (serve) or on the terminal (inspect).
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:          "promptcompare",
		Short:        "Compare before/after prompt pairs side by side",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newInspectCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
