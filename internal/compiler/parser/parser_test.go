package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archquery/archquery/internal/compiler/ast"
	"github.com/archquery/archquery/internal/compiler/lexer"
	"github.com/archquery/archquery/internal/compiler/tables"
)

func parseSource(t *testing.T, source string) (ast.Expr, ast.Options, *ParseError) {
	t.Helper()
	tokens, lexErr := lexer.Tokenize(source)
	require.Nil(t, lexErr, "unexpected lex error: %v", lexErr)
	return Parse(tokens)
}

func TestParse_BareKeywordDefaultsToNilField(t *testing.T) {
	expr, opts, err := parseSource(t, "quantum")
	require.Nil(t, err)

	term, ok := expr.(*ast.Term)
	require.True(t, ok)
	assert.Nil(t, term.Field)
	assert.Equal(t, "quantum", term.Value)
	assert.Equal(t, ast.DefaultOptions(), opts)
}

func TestParse_ImplicitAnd(t *testing.T) {
	expr, _, err := parseSource(t, "quantum @hinton")
	require.Nil(t, err)

	and, ok := expr.(*ast.And)
	require.True(t, ok)
	require.Len(t, and.Children, 2)
	assert.Equal(t, "quantum", and.Children[0].(*ast.Term).Value)
	term := and.Children[1].(*ast.Term)
	assert.Equal(t, ast.Author, *term.Field)
	assert.Equal(t, "hinton", term.Value)
}

func TestParse_OrBindsLooserThanAnd(t *testing.T) {
	expr, _, err := parseSource(t, "bert gpt | roberta")
	require.Nil(t, err)

	or, ok := expr.(*ast.Or)
	require.True(t, ok)
	require.Len(t, or.Children, 2)
	and, ok := or.Children[0].(*ast.And)
	require.True(t, ok)
	assert.Len(t, and.Children, 2)
	assert.Equal(t, "roberta", or.Children[1].(*ast.Term).Value)
}

func TestParse_NotDoesNotFold(t *testing.T) {
	expr, _, err := parseSource(t, "--bert")
	require.Nil(t, err)

	outer, ok := expr.(*ast.Not)
	require.True(t, ok)
	inner, ok := outer.Child.(*ast.Not)
	require.True(t, ok)
	assert.Equal(t, "bert", inner.Child.(*ast.Term).Value)
}

func TestParse_PlainGroup(t *testing.T) {
	expr, _, err := parseSource(t, "(bert | gpt)")
	require.Nil(t, err)

	group, ok := expr.(*ast.Group)
	require.True(t, ok)
	assert.Nil(t, group.FieldContext)
	_, isOr := group.Inner.(*ast.Or)
	assert.True(t, isOr)
}

func TestParse_SigilGroupCarriesFieldContext(t *testing.T) {
	expr, _, err := parseSource(t, "@(hinton lecun)")
	require.Nil(t, err)

	group, ok := expr.(*ast.Group)
	require.True(t, ok)
	require.NotNil(t, group.FieldContext)
	assert.Equal(t, ast.Author, *group.FieldContext)
}

func TestParse_FieldTokenWithUnrecognizedPrefix(t *testing.T) {
	expr, _, err := parseSource(t, "foo:bar")
	require.Nil(t, err)

	term, ok := expr.(*ast.Term)
	require.True(t, ok)
	assert.Nil(t, term.Field)
	assert.Equal(t, "foo", term.UnresolvedPrefix)
	assert.Equal(t, "bar", term.Value)
}

func TestParse_OptionsAnywhereInInput(t *testing.T) {
	_, opts, err := parseSource(t, "quantum 20 rd @hinton")
	require.Nil(t, err)
	assert.Equal(t, uint32(20), opts.MaxResults)
	assert.Equal(t, tables.Relevance, opts.SortCriterion)
}

func TestParse_DuplicateNumberIsError(t *testing.T) {
	_, _, err := parseSource(t, "quantum 10 20")
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "more than once")
}

func TestParse_DuplicateSortIsError(t *testing.T) {
	_, _, err := parseSource(t, "quantum rd ra")
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "more than once")
}

func TestParse_NumberOutOfRange(t *testing.T) {
	_, _, err := parseSource(t, "quantum 0")
	require.NotNil(t, err)
	assert.Equal(t, "Number of results must be between 1 and 1000", err.Message)

	_, _, err = parseSource(t, "quantum 1001")
	require.NotNil(t, err)
	assert.Equal(t, "Number of results must be between 1 and 1000", err.Message)
}

func TestParse_EmptyGroup(t *testing.T) {
	_, _, err := parseSource(t, "(quantum | )")
	require.NotNil(t, err)
	assert.Equal(t, "Empty group", err.Message)

	_, _, err = parseSource(t, "()")
	require.NotNil(t, err)
	assert.Equal(t, "Empty group", err.Message)
}

func TestParse_UnmatchedParenthesis(t *testing.T) {
	_, _, err := parseSource(t, "(bert")
	require.NotNil(t, err)
	assert.Equal(t, "Unmatched parenthesis", err.Message)

	_, _, err = parseSource(t, "bert)")
	require.NotNil(t, err)
	assert.Equal(t, "Unmatched parenthesis", err.Message)
}

func TestParse_EndToEndScenario4(t *testing.T) {
	expr, opts, err := parseSource(t, "(bert | gpt) @google -@bengio #cs.CL 50 rd")
	require.Nil(t, err)
	assert.Equal(t, uint32(50), opts.MaxResults)

	and, ok := expr.(*ast.And)
	require.True(t, ok)
	require.Len(t, and.Children, 4)

	group, ok := and.Children[0].(*ast.Group)
	require.True(t, ok)
	assert.Nil(t, group.FieldContext)

	not, ok := and.Children[2].(*ast.Not)
	require.True(t, ok)
	authorTerm := not.Child.(*ast.Term)
	assert.Equal(t, ast.Author, *authorTerm.Field)
	assert.Equal(t, "bengio", authorTerm.Value)
}

func TestParseWithDefaults_AppliesSuppliedDefaultWhenInputOmitsSortToken(t *testing.T) {
	tokens, lexErr := lexer.Tokenize("quantum")
	require.Nil(t, lexErr)

	defaults := ast.Options{
		MaxResults:    10,
		SortCriterion: tables.Relevance,
		SortDirection: tables.Ascending,
	}
	_, opts, err := ParseWithDefaults(tokens, defaults)
	require.Nil(t, err)
	assert.Equal(t, defaults, opts)
}

func TestParseWithDefaults_ExplicitSortTokenWins(t *testing.T) {
	tokens, lexErr := lexer.Tokenize("quantum sd")
	require.Nil(t, lexErr)

	defaults := ast.Options{
		MaxResults:    10,
		SortCriterion: tables.Relevance,
		SortDirection: tables.Ascending,
	}
	_, opts, err := ParseWithDefaults(tokens, defaults)
	require.Nil(t, err)
	assert.Equal(t, tables.SubmittedDate, opts.SortCriterion)
	assert.Equal(t, tables.Descending, opts.SortDirection)
}
