/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/samwightt/gqlcheck/pkg/ast"
	"github.com/samwightt/gqlcheck/pkg/diagnostic"
	"github.com/samwightt/gqlcheck/pkg/language"
	"github.com/samwightt/gqlcheck/pkg/render"
	"github.com/samwightt/gqlcheck/pkg/schema"
	"github.com/samwightt/gqlcheck/pkg/suggest"
	"github.com/samwightt/gqlcheck/pkg/validator"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrValidationFailed is returned when a query fails validation.
// This is a sentinel error that indicates the query is invalid,
// not that the command itself failed.
var ErrValidationFailed = errors.New("validation failed")

// SyntaxRule is the rule name given to parse failures.
const SyntaxRule = "Syntax"

// validation holds everything shared by the documents of one run.
type validation struct {
	schema     *schema.Schema
	directives []*ast.DirectiveDefinition
	rules      []validator.Rule
	maxDepth   int
	logger     *zap.Logger
}

// document is one validated source and its result.
type document struct {
	name    string
	content string
	doc     *ast.Document
	result  *ValidationResult
}

// errorSource returns the source of the first node of err that has a location.
func errorSource(err *validator.Error) *ast.Source {
	for _, n := range err.Nodes {
		if n != nil && n.Location() != nil {
			return n.Location().Source
		}
	}
	return nil
}

func convertErrors(errs []*validator.Error) []ValidationError {
	var result []ValidationError
	for _, err := range errs {
		valErr := ValidationError{
			Message: err.Message,
			Rule:    err.Rule,
		}
		for _, loc := range err.Locations() {
			valErr.Locations = append(valErr.Locations, Location{
				Line:   loc.Line,
				Column: loc.Column,
			})
		}
		for _, n := range err.Nodes {
			if n != nil && n.Location() != nil {
				valErr.span = n.Location().End - n.Location().Start
				break
			}
		}
		result = append(result, valErr)
	}
	return result
}

func convertSyntaxError(err error) []ValidationError {
	var syntaxErr *language.SyntaxError
	if !errors.As(err, &syntaxErr) {
		return []ValidationError{{Message: err.Error(), Rule: SyntaxRule}}
	}
	valErr := ValidationError{Message: syntaxErr.Message, Rule: SyntaxRule}
	if syntaxErr.Line > 0 {
		valErr.Locations = []Location{{Line: syntaxErr.Line, Column: syntaxErr.Column}}
	}
	return []ValidationError{valErr}
}

func (v *validation) validate(name, content string) *document {
	d := &document{name: name, content: content}
	doc, err := language.ParseQuery(name, content)
	if err != nil {
		// Parse errors are also validation failures
		d.result = &ValidationResult{Valid: false, Errors: convertSyntaxError(err)}
		return d
	}
	d.doc = doc
	for _, def := range v.directives {
		doc.Definitions = append(doc.Definitions, def)
	}

	// Errors inside the directive definitions are reported once, by
	// validateDirectives.
	errs := filterSlice(v.run(name, doc), func(err *validator.Error) bool {
		src := errorSource(err)
		return src == nil || src != v.directivesSource()
	})
	if len(errs) > 0 {
		d.result = &ValidationResult{Valid: false, Errors: convertErrors(errs)}
		return d
	}
	d.result = &ValidationResult{Valid: true}
	return d
}

// directivesSource returns the source the directive definitions were read
// from, if any.
func (v *validation) directivesSource() *ast.Source {
	for _, def := range v.directives {
		if loc := def.Location(); loc != nil {
			return loc.Source
		}
	}
	return nil
}

func (v *validation) run(name string, doc *ast.Document) []*validator.Error {
	start := time.Now()
	errs := validator.Validate(v.schema, doc, v.rules,
		validator.WithMaxDepth(v.maxDepth),
		validator.WithLogger(v.logger.With(zap.String("file", name))),
	)
	v.logger.Debug("validated file",
		zap.String("file", name),
		zap.Int("errors", len(errs)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return errs
}

// validateDirectives checks the directive definitions on their own and
// returns them as a document named name, or nil when they are valid.
func (v *validation) validateDirectives(name string) *document {
	if len(v.directives) == 0 {
		return nil
	}
	doc := &ast.Document{}
	for _, def := range v.directives {
		doc.Definitions = append(doc.Definitions, def)
	}
	errs := v.run(name, doc)
	if len(errs) == 0 {
		return nil
	}
	d := &document{
		name:   name,
		doc:    doc,
		result: &ValidationResult{Valid: false, Errors: convertErrors(errs)},
	}
	if src := v.directivesSource(); src != nil {
		d.content = src.Body
	}
	return d
}

// validateAll validates the sources concurrently, at most jobs at a time,
// and returns the documents in the order of paths. An empty paths reads
// stdin.
func (v *validation) validateAll(cmd *cobra.Command, paths []string, jobs int) ([]*document, error) {
	if len(paths) == 0 {
		name, content, err := readSource(cmd, "")
		if err != nil {
			return nil, err
		}
		return []*document{v.validate(name, content)}, nil
	}

	docs := make([]*document, len(paths))
	g := new(errgroup.Group)
	g.SetLimit(jobs)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			name, content, err := readSource(cmd, path)
			if err != nil {
				return err
			}
			docs[i] = v.validate(name, content)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// Validation Error Display
//
// Validator errors carry the nodes they are about, so the underline spans
// the whole node. Syntax errors only have a start position and fall back to
// a single caret (^).
//
// Help lines are derived from the message for rules whose message does not
// already suggest a fix.

// Regex to parse KnownFragmentNames error messages
// Example: Unknown fragment "UserFeilds".
var unknownFragmentRegex = regexp.MustCompile(`^Unknown fragment "([^"]+)"`)

// parseUnknownFragmentError extracts the fragment name from the error message.
// Returns an empty string if the message doesn't match.
func parseUnknownFragmentError(message string) string {
	matches := unknownFragmentRegex.FindStringSubmatch(message)
	if len(matches) == 2 {
		return matches[1]
	}
	return ""
}

// errorSpanLength returns the length to underline for a given error.
// Errors without a node span get a single caret.
func errorSpanLength(err ValidationError) int {
	if err.span > 0 {
		return err.span
	}
	return 1
}

// detectZshEscapeIssue checks if a parse error might be caused by zsh's history
// expansion escaping `!` as `\!`. Returns a help message if detected.
func detectZshEscapeIssue(err ValidationError, sourceContent string, sourceName string) string {
	if sourceName != stdinName {
		return ""
	}
	// Check if content contains \! which is likely zsh escape
	if !strings.Contains(sourceContent, `\!`) {
		return ""
	}
	// Check if error is near a \! sequence
	if len(err.Locations) == 0 {
		return ""
	}
	loc := err.Locations[0]
	lines := strings.Split(sourceContent, "\n")
	if loc.Line < 1 || loc.Line > len(lines) {
		return ""
	}
	line := []rune(lines[loc.Line-1])
	// Check if there's a \! at or near the error column
	col := loc.Column - 1
	if col >= 0 && col < len(line)-1 && line[col] == '\\' && line[col+1] == '!' {
		return "it looks like zsh escaped `!` as `\\!`. Try using a heredoc instead:\n" +
			"       cat <<'EOF' | gqlcheck validate\n" +
			"       query { ... }\n" +
			"       EOF"
	}
	return ""
}

// errorSuggestion returns a "did you mean" suggestion for the error, if applicable.
func errorSuggestion(err ValidationError, doc *ast.Document) string {
	switch err.Rule {
	case "KnownFragmentNames":
		name := parseUnknownFragmentError(err.Message)
		if name == "" || doc == nil {
			return ""
		}
		names := pluck(doc.Fragments(), func(f *ast.FragmentDefinition) string { return f.Name.Value })
		if closest := suggest.Closest(name, names, maxSuggestionDistance); closest != "" {
			return fmt.Sprintf("did you mean `%s`?", closest)
		}
	}
	return ""
}

func formatValidationResultText(d *document) string {
	result := d.result
	if result.Valid {
		return "✓ Query is valid"
	}

	var output string
	if len(result.Errors) == 1 {
		output = "✗ Query has 1 error:\n"
	} else {
		output = fmt.Sprintf("✗ Query has %d errors:\n", len(result.Errors))
	}

	for _, err := range result.Errors {
		diag := diagnostic.Diagnostic{File: d.name, Message: err.Message, Length: errorSpanLength(err)}
		if len(err.Locations) > 0 {
			diag.Line = err.Locations[0].Line
			diag.Column = err.Locations[0].Column
		}
		// Check for zsh escape issue first
		if zshHelp := detectZshEscapeIssue(err, d.content, d.name); zshHelp != "" {
			diag.Help = append(diag.Help, zshHelp)
		} else if suggestion := errorSuggestion(err, d.doc); suggestion != "" {
			diag.Help = append(diag.Help, suggestion)
		}
		output += diagnostic.Render(diag, d.content) + "\n"
	}

	return output
}

func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [file...]",
		Short: "Check GraphQL documents against the schema",
		Long: `Validates GraphQL queries, mutations and fragments against the schema.

Documents can be provided as file path arguments or piped via stdin. Several
files are validated concurrently (see --jobs) and reported in argument order.

Exit codes:
  0 - Every document is valid
  1 - A document has validation or parse errors

Output formats:
  text     Human-readable error messages with locations
  json     {"valid": bool, "errors": [...]}, an array for several files
  msgpack  The JSON structure encoded as msgpack`,
		Example: `  # Validate from a file
  gqlcheck validate query.graphql

  # Validate from stdin
  echo "query { user { ...UserFields } }" | gqlcheck validate

  # Check documents that only use directives, without a schema
  gqlcheck validate -s "" --directives directives.graphql query.graphql

  # JSON output for CI integration
  gqlcheck validate queries/*.graphql -f json`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runValidateCmd,
	}

	return cmd
}

func runValidateCmd(cmd *cobra.Command, args []string) error {
	s, err := loadSchema(cfg.Schema)
	if err != nil {
		return err
	}
	directives, err := loadDirectiveDefinitions(cfg.Directives)
	if err != nil {
		return err
	}
	rules, err := validator.Select(cfg.Rules)
	if err != nil {
		return err
	}

	v := &validation{
		schema:     s,
		directives: directives,
		rules:      rules,
		maxDepth:   cfg.MaxDepth,
		logger:     logger,
	}
	docs, err := v.validateAll(cmd, args, cfg.Jobs)
	if err != nil {
		return err
	}
	if d := v.validateDirectives(cfg.Directives); d != nil {
		docs = append([]*document{d}, docs...)
	}

	if err := writeValidationResults(cmd, docs); err != nil {
		return err
	}

	// Return error if validation failed (causes exit code 1)
	for _, d := range docs {
		if !d.result.Valid {
			return ErrValidationFailed
		}
	}
	return nil
}

func writeValidationResults(cmd *cobra.Command, docs []*document) error {
	switch outputFormat {
	case render.FormatJSON, render.FormatMsgpack:
		var v any = docs[0].result
		if len(docs) > 1 {
			results := make([]*ValidationResult, len(docs))
			for i, d := range docs {
				d.result.File = d.name
				results[i] = d.result
			}
			v = results
		}
		output, err := render.Marshal(outputFormat, v)
		if err != nil {
			return err
		}
		writeOutput(cmd, output)
	default:
		for i, d := range docs {
			if len(docs) > 1 {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				fmt.Fprintln(cmd.OutOrStdout(), d.name)
			}
			output := formatValidationResultText(d)
			if !strings.HasSuffix(output, "\n") {
				output += "\n"
			}
			fmt.Fprint(cmd.OutOrStdout(), output)
		}
	}
	return nil
}
