package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/samwightt/gqlcheck/pkg/ast"
	"github.com/samwightt/gqlcheck/pkg/language"
	"github.com/samwightt/gqlcheck/pkg/schema"
	"github.com/spf13/cobra"
)

const maxSuggestionDistance = 5

const stdinName = "stdin"

// loadSchema reads and builds the schema at path. An empty path selects
// schema definition language mode and returns a nil schema.
func loadSchema(path string) (*schema.Schema, error) {
	if path == "" {
		return nil, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("schema file does not exist: %s", path)
		}
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	s, err := schema.Load(filepath.Base(abs), string(content))
	if err != nil {
		return nil, fmt.Errorf("GraphQL schema parsing error: %v", errors.Unwrap(err))
	}
	return s, nil
}

// loadDirectiveDefinitions returns the directive definitions of the SDL file
// at path, or nothing when path is empty.
func loadDirectiveDefinitions(path string) ([]*ast.DirectiveDefinition, error) {
	if path == "" {
		return nil, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("directives file does not exist: %s", path)
		}
		return nil, fmt.Errorf("failed to read directives file: %w", err)
	}
	defs, err := language.ParseDirectiveDefinitions(filepath.Base(path), string(content))
	if err != nil {
		return nil, fmt.Errorf("GraphQL directives parsing error: %w", err)
	}
	return defs, nil
}

// readSource returns the contents of path, or of stdin when path is empty.
func readSource(cmd *cobra.Command, path string) (name string, content string, err error) {
	if path == "" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		return stdinName, string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read query file: %w", err)
	}
	return path, string(b), nil
}

// nameFilter matches names against an optional glob and an optional regex.
type nameFilter struct {
	glob  string
	regex *regexp.Regexp
}

func newNameFilter(glob, pattern string) (*nameFilter, error) {
	f := &nameFilter{glob: glob}
	if pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern for --name-regex: %w", err)
		}
		f.regex = re
	}
	if glob != "" {
		if _, err := filepath.Match(glob, ""); err != nil {
			return nil, fmt.Errorf("invalid glob pattern for --name: %w", err)
		}
	}
	return f, nil
}

func (f *nameFilter) Match(name string) bool {
	if f.glob != "" {
		if matched, _ := filepath.Match(f.glob, name); !matched {
			return false
		}
	}
	return f.regex == nil || f.regex.MatchString(name)
}

// filterSlice returns a new slice containing only the elements that satisfy the predicate.
func filterSlice[T any](items []T, predicate func(T) bool) []T {
	var result []T
	for _, item := range items {
		if predicate(item) {
			result = append(result, item)
		}
	}
	return result
}

// pluck extracts a single value from each item.
func pluck[T any, V any](items []T, fn func(T) V) []V {
	result := make([]V, 0, len(items))
	for _, item := range items {
		result = append(result, fn(item))
	}
	return result
}

// writeOutput prints rendered output, with a trailing newline unless the
// format is binary.
func writeOutput(cmd *cobra.Command, output string) {
	if outputFormat.Binary() {
		fmt.Fprint(cmd.OutOrStdout(), output)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
}
