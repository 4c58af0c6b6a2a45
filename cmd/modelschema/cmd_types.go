package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/john3300/modelschema/jtype"
	"github.com/john3300/modelschema/managed"
)

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types <types.yaml>",
		Short: "List the types declared in a type-description document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := jtype.LoadYAMLFile(args[0])
			if err != nil {
				return err
			}
			for _, decl := range registry.Decls() {
				marker := ""
				if decl.HasAnnotation(managed.AnnotationManaged) {
					marker = " (managed)"
				}
				fmt.Printf("%s %s%s\n", decl.Kind, decl.Name, marker)
			}
			return nil
		},
	}
}
