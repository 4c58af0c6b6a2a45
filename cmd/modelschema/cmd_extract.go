package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/john3300/modelschema/format"
	"github.com/john3300/modelschema/jtype"
	"github.com/john3300/modelschema/managed"
	"github.com/john3300/modelschema/store"
)

func newExtractCmd() *cobra.Command {
	var (
		typeName     string
		outputFormat string
		strict       bool
		verbosity    int
	)

	cmd := &cobra.Command{
		Use:   "extract <types.yaml>",
		Short: "Extract schemas from a type-description document",
		Long: `Extract reads a type-description document, runs structural schema
extraction for managed types, and prints the resulting schemas. Problems
found during extraction are reported on stderr; with --strict any finding
makes the command fail.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(verbosity, nil)

			registry, err := jtype.LoadYAMLFile(args[0])
			if err != nil {
				return err
			}

			st, err := store.New(managed.NewExtractor(registry))
			if err != nil {
				return err
			}

			var encoder format.Encoder
			switch outputFormat {
			case "json":
				encoder = format.NewJSONEncoder(os.Stdout)
			case "text":
				encoder = format.NewTextEncoder(os.Stdout)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			targets, err := selectTargets(registry, typeName)
			if err != nil {
				return err
			}

			reported := 0
			for _, target := range targets {
				sch, diags, err := st.Schema(jtype.Named(target))
				if err != nil {
					return fmt.Errorf("extract %s: %w", target, err)
				}
				if sch == nil {
					return fmt.Errorf("extract %s: not a managed type", target)
				}
				if err := encoder.Encode(sch); err != nil {
					return fmt.Errorf("encode %s: %w", target, err)
				}
				for _, d := range diags {
					fmt.Fprintln(os.Stderr, d)
					reported++
				}
			}

			if strict && reported > 0 {
				return fmt.Errorf("extraction reported %d problems", reported)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "", "extract only this type (default: all managed types)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (json, text)")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when extraction reports any problem")
	cmd.Flags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")

	return cmd
}

// selectTargets picks the requested type, or every managed declaration in
// the document when none is named.
func selectTargets(registry *jtype.Registry, typeName string) ([]string, error) {
	if typeName != "" {
		if registry.Lookup(typeName) == nil {
			return nil, fmt.Errorf("type %s is not declared in the document", typeName)
		}
		return []string{typeName}, nil
	}
	var targets []string
	for _, decl := range registry.Decls() {
		if decl.HasAnnotation(managed.AnnotationManaged) {
			targets = append(targets, decl.Name)
		}
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("no managed types declared in the document")
	}
	return targets, nil
}
