package cmd_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samwightt/gqlcheck/cmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func isValidationError(err error) bool {
	return err != nil && errors.Is(err, cmd.ErrValidationFailed)
}

const validateTestSchema = `
directive @cached(ttl: Int!, scope: String = "public") on FIELD

type User {
  id: ID!
  name: String!
  email: String!
  posts: [Post!]!
}

type Post {
  id: ID!
  title: String!
  author: User!
}

type Query {
  user(id: ID!): User
  users(limit: Int, offset: Int): [User!]!
  post(id: ID!): Post
}

type Mutation {
  createUser(name: String!, email: String!): User!
}
`

func writeTestSchema(t *testing.T, schema string) string {
	t.Helper()
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "schema.graphql")
	err := os.WriteFile(schemaPath, []byte(schema), 0644)
	require.NoError(t, err)
	return schemaPath
}

func setupValidateTestSchema(t *testing.T) string {
	t.Helper()
	return writeTestSchema(t, validateTestSchema)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
	return path
}

func writeValidateQuery(t *testing.T, dir string, query string) string {
	t.Helper()
	return writeFile(t, dir, "query.graphql", query)
}

func TestValidate_ValidQueryWithFragments(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	dir := filepath.Dir(schemaPath)

	queryPath := writeValidateQuery(t, dir, `
		query GetUser($userId: ID!) {
			user(id: $userId) {
				...UserFields
				posts { ... on Post { title } }
			}
		}

		fragment UserFields on User {
			id
			name @cached(ttl: 60)
		}
	`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "text"})
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ Query is valid")
}

func TestValidate_ValidMutation(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	dir := filepath.Dir(schemaPath)

	queryPath := writeValidateQuery(t, dir, `
		mutation CreateNewUser($name: String!, $email: String!) {
			createUser(name: $name, email: $email) {
				id
			}
		}
	`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "text"})
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ Query is valid")
}

func TestValidate_UnknownFragment(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	dir := filepath.Dir(schemaPath)

	queryPath := writeValidateQuery(t, dir, `query { user(id: "1") { ...UserFeilds } }
fragment UserFields on User { id }
`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "text"})
	assert.True(t, isValidationError(err))
	assert.Contains(t, stdout, "✗ Query has 1 error:")
	assert.Contains(t, stdout, `Unknown fragment "UserFeilds".`)
	assert.Contains(t, stdout, queryPath+":1:28")
	assert.Contains(t, stdout, "^^^^^^^^^^")
	assert.Contains(t, stdout, "did you mean `UserFields`?")
}

func TestValidate_FragmentOnScalar(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	dir := filepath.Dir(schemaPath)

	queryPath := writeValidateQuery(t, dir, `fragment F on String { length }`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "text"})
	assert.True(t, isValidationError(err))
	assert.Contains(t, stdout, `Fragment "F" cannot condition on non composite type "String".`)
	assert.Contains(t, stdout, queryPath+":1:15")
}

func TestValidate_MissingDirectiveArgument(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	dir := filepath.Dir(schemaPath)

	queryPath := writeValidateQuery(t, dir, `{ user(id: "1") { name @cached } }`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "text"})
	assert.True(t, isValidationError(err))
	assert.Contains(t, stdout, `Directive "@cached" argument "ttl" of type "Int!" is required but not provided.`)
	assert.Contains(t, stdout, queryPath+":1:24")
	assert.Contains(t, stdout, "^^^^^^^")
}

func TestValidate_MultipleErrors(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	dir := filepath.Dir(schemaPath)

	queryPath := writeValidateQuery(t, dir, `{ user(id: "1") { ...Missing name @cached(ttel: 1) } }`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "text"})
	assert.True(t, isValidationError(err))
	assert.Contains(t, stdout, "✗ Query has 3 errors:")
	assert.Contains(t, stdout, `Unknown fragment "Missing".`)
	assert.Contains(t, stdout, `Unknown argument "ttel" on directive "@cached". Did you mean "ttl"?`)
	assert.Contains(t, stdout, `argument "ttl" of type "Int!" is required but not provided.`)
}

func TestValidate_UnknownType(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	dir := filepath.Dir(schemaPath)

	queryPath := writeValidateQuery(t, dir, `query ($id: Strin) { user(id: $id) { id } }`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "text"})
	assert.True(t, isValidationError(err))
	assert.Contains(t, stdout, `Unknown type "Strin". Did you mean "String"`)
}

func TestValidate_SyntaxError(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	dir := filepath.Dir(schemaPath)

	queryPath := writeValidateQuery(t, dir, `query { user(id: "1") { id }`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "json"})
	assert.True(t, isValidationError(err))

	var result cmd.ValidationResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, cmd.SyntaxRule, result.Errors[0].Rule)
	assert.NotEmpty(t, result.Errors[0].Locations)
}

func TestValidate_JSONOutput(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	dir := filepath.Dir(schemaPath)

	queryPath := writeValidateQuery(t, dir, `{ user(id: "1") { name @cached } }`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "json"})
	assert.True(t, isValidationError(err))

	var result cmd.ValidationResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, cmd.ValidationResult{
		Valid: false,
		Errors: []cmd.ValidationError{{
			Message:   `Directive "@cached" argument "ttl" of type "Int!" is required but not provided.`,
			Rule:      "ProvidedRequiredArgumentsOnDirectives",
			Locations: []cmd.Location{{Line: 1, Column: 24}},
		}},
	}, result)
	assert.NotContains(t, stdout, `"file"`)
}

func TestValidate_JSONOutputValid(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	dir := filepath.Dir(schemaPath)

	queryPath := writeValidateQuery(t, dir, `{ users { id } }`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "json"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"valid": true}`, stdout)
}

func TestValidate_MsgpackOutput(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	dir := filepath.Dir(schemaPath)

	queryPath := writeValidateQuery(t, dir, `{ user(id: "1") { ...Missing } }`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "msgpack"})
	assert.True(t, isValidationError(err))

	var result map[string]any
	require.NoError(t, msgpack.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, false, result["valid"])
	errs, ok := result["errors"].([]any)
	require.True(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, `Unknown fragment "Missing".`, errs[0].(map[string]any)["message"])
}

func TestValidate_MultipleFiles(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	dir := filepath.Dir(schemaPath)

	valid := writeFile(t, dir, "valid.graphql", `{ users { id } }`)
	invalid := writeFile(t, dir, "invalid.graphql", `{ user(id: "1") { ...Missing } }`)
	other := writeFile(t, dir, "other.graphql", `{ post(id: "1") { title } }`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", valid, invalid, other, "-s", schemaPath, "-f", "json", "-j", "2"})
	assert.True(t, isValidationError(err))

	var results []cmd.ValidationResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 3)
	assert.Equal(t, valid, results[0].File)
	assert.True(t, results[0].Valid)
	assert.Equal(t, invalid, results[1].File)
	assert.False(t, results[1].Valid)
	assert.Equal(t, other, results[2].File)
	assert.True(t, results[2].Valid)
}

func TestValidate_MultipleFilesText(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	dir := filepath.Dir(schemaPath)

	first := writeFile(t, dir, "first.graphql", `{ users { id } }`)
	second := writeFile(t, dir, "second.graphql", `{ users { name } }`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", first, second, "-s", schemaPath, "-f", "text"})
	require.NoError(t, err)
	assert.Equal(t, first+"\n✓ Query is valid\n\n"+second+"\n✓ Query is valid\n", stdout)
}

func TestValidate_MissingQueryFile(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)

	_, _, err := cmd.ExecuteWithArgs([]string{"validate", filepath.Join(t.TempDir(), "nope.graphql"), "-s", schemaPath})
	require.Error(t, err)
	assert.False(t, isValidationError(err))
	assert.Contains(t, err.Error(), "failed to read query file")
}

func TestValidate_MissingSchema(t *testing.T) {
	dir := t.TempDir()
	queryPath := writeValidateQuery(t, dir, `{ users { id } }`)

	_, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", filepath.Join(dir, "missing.graphql")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema file does not exist")
}

func TestValidate_InvalidSchema(t *testing.T) {
	schemaPath := writeTestSchema(t, `type Query { user: Missing }`)
	queryPath := writeValidateQuery(t, filepath.Dir(schemaPath), `{ user }`)

	_, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GraphQL schema parsing error")
}

func TestValidate_Stdin(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)

	stdin := bytes.NewBufferString(`{ user(id: "1") { ...Missing } }`)
	stdout, _, err := cmd.ExecuteWithArgsAndStdin([]string{"validate", "-s", schemaPath, "-f", "text"}, stdin)
	assert.True(t, isValidationError(err))
	assert.Contains(t, stdout, "stdin:1:22")
}

func TestValidate_StdinZshEscape(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)

	stdin := bytes.NewBufferString(`query ($id: ID\!) { user(id: $id) { id } }`)
	stdout, _, err := cmd.ExecuteWithArgsAndStdin([]string{"validate", "-s", schemaPath, "-f", "text"}, stdin)
	assert.True(t, isValidationError(err))
	assert.Contains(t, stdout, "zsh escaped")
	assert.Contains(t, stdout, "gqlcheck validate")
}

func TestValidate_RulesFlag(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	dir := filepath.Dir(schemaPath)

	queryPath := writeValidateQuery(t, dir, `{ user(id: "1") { name @cached ...Missing } }`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "json", "--rules", "KnownFragmentNames"})
	assert.True(t, isValidationError(err))

	var result cmd.ValidationResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "KnownFragmentNames", result.Errors[0].Rule)
}

func TestValidate_UnknownRule(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	queryPath := writeValidateQuery(t, filepath.Dir(schemaPath), `{ users { id } }`)

	_, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "--rules", "KnownFragmentName"})
	require.Error(t, err)
	assert.False(t, isValidationError(err))
	assert.Contains(t, err.Error(), `unknown rule "KnownFragmentName". Did you mean "KnownFragmentNames", "KnownArgumentNames", or "UniqueFragmentNames"?`)
}

func TestValidate_MaxDepth(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	queryPath := writeValidateQuery(t, filepath.Dir(schemaPath), `{ users { id } }`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "json", "--max-depth", "3"})
	assert.True(t, isValidationError(err))

	var result cmd.ValidationResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "MaxDepth", result.Errors[0].Rule)
	assert.Equal(t, "Document is too deeply nested (maximum depth 3).", result.Errors[0].Message)
	assert.Equal(t, []cmd.Location{{Line: 1, Column: 3}}, result.Errors[0].Locations)
}

func TestValidate_SchemaDefinitionLanguageMode(t *testing.T) {
	dir := t.TempDir()
	directivesPath := writeFile(t, dir, "directives.graphql", `
		directive @auth(role: String!, scopes: [String!]) on FIELD
	`)
	queryPath := writeValidateQuery(t, dir, `{ me @auth(scopes: ["read"]) { anything } }`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", "", "--directives", directivesPath, "-f", "text"})
	assert.True(t, isValidationError(err))
	assert.Contains(t, stdout, "✗ Query has 1 error:")
	assert.Contains(t, stdout, `Directive "@auth" argument "role" of type "String!" is required but not provided.`)
}

func TestValidate_SchemaDefinitionLanguageModeBuiltins(t *testing.T) {
	dir := t.TempDir()
	queryPath := writeValidateQuery(t, dir, `{ me @include { id } }`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", "", "-f", "text"})
	assert.True(t, isValidationError(err))
	assert.Contains(t, stdout, `Directive "@include" argument "if" of type "Boolean!" is required but not provided.`)
}

func TestValidate_DirectivesFileErrorsReportedOnce(t *testing.T) {
	schemaPath := writeTestSchema(t, `type Query { a: String }`)
	dir := filepath.Dir(schemaPath)
	directivesPath := writeFile(t, dir, "directives.graphql", "\n\ndirective @x(arg: Missing) on FIELD")
	first := writeFile(t, dir, "q1.graphql", `{ a }`)
	second := writeFile(t, dir, "q2.graphql", `{ a }`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", first, second, "-s", schemaPath, "--directives", directivesPath, "-f", "text"})
	assert.True(t, isValidationError(err))
	assert.Equal(t, 1, strings.Count(stdout, `Unknown type "Missing".`))
	assert.Contains(t, stdout, directivesPath+":3:19")
	assert.Contains(t, stdout, "directive @x(arg: Missing) on FIELD")
	assert.NotContains(t, stdout, first+":3:19")
	assert.NotContains(t, stdout, second+":3:19")
	assert.Contains(t, stdout, first+"\n✓ Query is valid")
	assert.Contains(t, stdout, second+"\n✓ Query is valid")
}

func TestValidate_DirectivesFileErrorsJSON(t *testing.T) {
	schemaPath := writeTestSchema(t, `type Query { a: String }`)
	dir := filepath.Dir(schemaPath)
	directivesPath := writeFile(t, dir, "directives.graphql", "\n\ndirective @x(arg: Missing) on FIELD")
	queryPath := writeValidateQuery(t, dir, `{ a @x(arg: 1) }`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "--directives", directivesPath, "-f", "json"})
	assert.True(t, isValidationError(err))

	var results []cmd.ValidationResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 2)
	assert.Equal(t, cmd.ValidationResult{
		File:  directivesPath,
		Valid: false,
		Errors: []cmd.ValidationError{{
			Message:   `Unknown type "Missing".`,
			Rule:      "KnownTypeNames",
			Locations: []cmd.Location{{Line: 3, Column: 19}},
		}},
	}, results[0])
	assert.Equal(t, cmd.ValidationResult{File: queryPath, Valid: true}, results[1])
}

func TestValidate_MissingDirectivesFile(t *testing.T) {
	dir := t.TempDir()
	queryPath := writeValidateQuery(t, dir, `{ me }`)

	_, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", "", "--directives", filepath.Join(dir, "nope.graphql")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directives file does not exist")
}

func TestValidate_VerboseLogsToStderr(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	queryPath := writeValidateQuery(t, filepath.Dir(schemaPath), `{ users { id } }`)

	_, stderr, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "text", "-v"})
	require.NoError(t, err)
	assert.Contains(t, stderr, "loaded config")
	assert.Contains(t, stderr, "validated file")
}

func TestValidate_InvalidFormat(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	queryPath := writeValidateQuery(t, filepath.Dir(schemaPath), `{ users { id } }`)

	_, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format: xml")
}
