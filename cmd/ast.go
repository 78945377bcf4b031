/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/samwightt/gqlcheck/pkg/ast"
	"github.com/samwightt/gqlcheck/pkg/language"
	"github.com/samwightt/gqlcheck/pkg/printer"
	"github.com/samwightt/gqlcheck/pkg/render"
	"github.com/spf13/cobra"
)

type astOptions struct {
	noLocations bool
}

func definitionName(def ast.Definition) string {
	var name *ast.Name
	switch def := def.(type) {
	case *ast.OperationDefinition:
		name = def.Name
	case *ast.FragmentDefinition:
		name = def.Name
	case *ast.DirectiveDefinition:
		name = def.Name
	}
	if name == nil {
		return ""
	}
	return name.Value
}

func formatDefinitionsPretty(doc *ast.Document) string {
	t := render.Table("kind", "name", "location")
	for _, def := range doc.Definitions {
		loc := ""
		if l := def.Location(); l != nil {
			loc = fmt.Sprintf("%d:%d", l.Line, l.Column)
		}
		t.Row(def.Kind().String(), definitionName(def), loc)
	}
	return t.String()
}

func NewASTCmd() *cobra.Command {
	opts := &astOptions{}

	cmd := &cobra.Command{
		Use:   "ast [file]",
		Short: "Prints the syntax tree of a GraphQL document.",
		Long: `Parses a GraphQL document and prints its syntax tree.

The document can be provided as a file path argument or piped via stdin.

Output formats:
  json     The tree as nested objects with "kind" first and "loc" last
  msgpack  The same structure encoded as msgpack
  text     The document printed back as GraphQL
  pretty   A table of the top level definitions`,
		Example: `  # Dump the tree of a query
  gqlcheck ast query.graphql -f json

  # Compare two documents ignoring positions
  diff <(gqlcheck ast a.graphql -f json --no-locations) <(gqlcheck ast b.graphql -f json --no-locations)`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAST(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.noLocations, "no-locations", false, "Leave source locations out of json and msgpack output")

	return cmd
}

func runAST(cmd *cobra.Command, args []string, opts *astOptions) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	name, content, err := readSource(cmd, path)
	if err != nil {
		return err
	}
	doc, err := language.ParseQuery(name, content)
	if err != nil {
		return err
	}

	switch outputFormat {
	case render.FormatJSON, render.FormatMsgpack:
		tree := ast.ToStructured(doc)
		if opts.noLocations {
			tree = tree.WithoutLocations()
		}
		output, err := render.Marshal(outputFormat, tree)
		if err != nil {
			return fmt.Errorf("error rendering output: %w", err)
		}
		writeOutput(cmd, output)
	case render.FormatPretty:
		fmt.Fprintln(cmd.OutOrStdout(), formatDefinitionsPretty(doc))
	default:
		fmt.Fprintln(cmd.OutOrStdout(), printer.Print(doc))
	}
	return nil
}
