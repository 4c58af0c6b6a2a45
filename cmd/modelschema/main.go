package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "modelschema",
		Short: "Structural schema extraction for declared model types",
	}

	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newTypesCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
