/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samwightt/gqlcheck/pkg/ast"
	"github.com/samwightt/gqlcheck/pkg/render"
	"github.com/samwightt/gqlcheck/pkg/schema"
	"github.com/samwightt/gqlcheck/pkg/suggest"
	"github.com/samwightt/gqlcheck/pkg/validator"
	"github.com/spf13/cobra"
)

type directivesOptions struct {
	required       bool
	nullable       bool
	name           string
	nameRegex      string
	hasDescription bool
}

func matchesDirectiveArgFilters(arg *schema.InputValue, opts *directivesOptions) bool {
	if opts.required && !arg.IsRequired() {
		return false
	}
	if opts.nullable && arg.Type.IsNonNull() {
		return false
	}
	if opts.hasDescription && arg.Description == "" {
		return false
	}
	return true
}

func formatDirectiveArgName(arg DirectiveArgInfo) string {
	return fmt.Sprintf("@%s(%s)", arg.Directive, arg.Name)
}

func formatDirectiveArgText(arg DirectiveArgInfo) string {
	name := formatDirectiveArgName(arg)

	typeStr := arg.Type
	if arg.DefaultValue != "" {
		typeStr += " = " + arg.DefaultValue
	}

	desc := ""
	if arg.Description != "" {
		desc = " # " + strings.ReplaceAll(arg.Description, "\n", " ")
	}
	return fmt.Sprintf("%s: %s%s", name, typeStr, desc)
}

func formatDirectiveArgsPretty(args []DirectiveArgInfo) string {
	t := render.Table("argument", "type", "required", "description")

	for _, arg := range args {
		typeStr := arg.Type
		if arg.DefaultValue != "" {
			typeStr += " = " + arg.DefaultValue
		}
		required := ""
		if arg.Required {
			required = "yes"
		}
		desc := strings.ReplaceAll(arg.Description, "\n", " ")
		t.Row(formatDirectiveArgName(arg), typeStr, required, desc)
	}

	return t.String()
}

func directiveArgToInfo(dir *schema.Directive, arg *schema.InputValue) DirectiveArgInfo {
	return DirectiveArgInfo{
		Directive:    dir.Name,
		Name:         arg.Name,
		Type:         arg.Type.String(),
		Required:     arg.IsRequired(),
		DefaultValue: arg.DefaultValue,
		Description:  arg.Description,
	}
}

// knownDirectives returns the directives a document is checked against: the
// schema's (or the built-in ones without a schema) with the given
// definitions taking precedence, sorted by name.
func knownDirectives(s *schema.Schema, defs []*ast.DirectiveDefinition) []*schema.Directive {
	doc := &ast.Document{}
	for _, def := range defs {
		doc.Definitions = append(doc.Definitions, def)
	}
	ctx := validator.NewContext(s, doc)

	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	if s != nil {
		for _, d := range s.DirectiveList() {
			add(d.Name)
		}
	} else {
		for _, d := range schema.BuiltinDirectives() {
			add(d.Name)
		}
	}
	for _, def := range defs {
		add(def.Name.Value)
	}
	sort.Strings(names)

	return pluck(names, ctx.Directive)
}

func NewDirectivesCmd() *cobra.Command {
	opts := &directivesOptions{}

	cmd := &cobra.Command{
		Use:   "directives [directive]",
		Short: "Lists arguments of the known directives.",
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			schemaPath, _ := cmd.Flags().GetString("schema")
			directivesPath, _ := cmd.Flags().GetString("directives")
			s, err := loadSchema(schemaPath)
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			defs, err := loadDirectiveDefinitions(directivesPath)
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}

			var outputNames []string
			for _, dir := range knownDirectives(s, defs) {
				if strings.Contains(strings.ToLower(dir.Name), strings.ToLower(strings.TrimPrefix(toComplete, "@"))) {
					outputNames = append(outputNames, dir.Name)
				}
			}
			return outputNames, cobra.ShellCompDirectiveNoFileComp
		},
		Args: cobra.MaximumNArgs(1),
		Long: `Lists arguments of the directives documents are checked against.

These are the directives of the schema, or the built-in directives when the
schema is empty, plus the definitions read with --directives.

If a directive is specified (with or without @), only its arguments are shown.`,
		Example: `  # Arguments of every directive
  gqlcheck directives

  # Arguments that must always be provided
  gqlcheck directives --required

  # Arguments of @include
  gqlcheck directives @include`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDirectives(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.required, "required", false, "Filter to only show required arguments (non-null without a default)")
	cmd.Flags().BoolVar(&opts.nullable, "nullable", false, "Filter to only show nullable arguments")
	cmd.Flags().StringVar(&opts.name, "name", "", "Filter arguments by name using a glob pattern (e.g., if, *Id)")
	cmd.Flags().StringVar(&opts.nameRegex, "name-regex", "", "Filter arguments by name using a regex pattern")
	cmd.Flags().BoolVar(&opts.hasDescription, "has-description", false, "Filter to only show arguments that have a description")

	return cmd
}

func runDirectives(cmd *cobra.Command, args []string, opts *directivesOptions) error {
	if opts.required && opts.nullable {
		return fmt.Errorf("--required and --nullable cannot be used together")
	}

	filter, err := newNameFilter(opts.name, opts.nameRegex)
	if err != nil {
		return err
	}

	s, err := loadSchema(cfg.Schema)
	if err != nil {
		return err
	}
	defs, err := loadDirectiveDefinitions(cfg.Directives)
	if err != nil {
		return err
	}

	dirs := knownDirectives(s, defs)
	if len(args) == 1 {
		name := strings.TrimPrefix(args[0], "@")
		dirs = filterSlice(dirs, func(d *schema.Directive) bool { return d.Name == name })
		if len(dirs) == 0 {
			names := pluck(knownDirectives(s, defs), func(d *schema.Directive) string { return d.Name })
			if suggestion := suggest.Closest(name, names, maxSuggestionDistance); suggestion != "" {
				return fmt.Errorf("directive '@%s' does not exist, did you mean '@%s'?", name, suggestion)
			}
			return fmt.Errorf("directive '@%s' does not exist", name)
		}
	}

	var argInfos []DirectiveArgInfo
	for _, dir := range dirs {
		for _, arg := range dir.Arguments {
			if !matchesDirectiveArgFilters(arg, opts) || !filter.Match(arg.Name) {
				continue
			}
			argInfos = append(argInfos, directiveArgToInfo(dir, arg))
		}
	}

	if len(argInfos) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No arguments found that match the filters.")
	}

	renderer := render.Renderer[DirectiveArgInfo]{
		Data:         argInfos,
		TextFormat:   formatDirectiveArgText,
		PrettyFormat: formatDirectiveArgsPretty,
	}

	output, err := renderer.Render(outputFormat)
	if err != nil {
		return fmt.Errorf("error rendering output: %w", err)
	}
	writeOutput(cmd, output)
	return nil
}
