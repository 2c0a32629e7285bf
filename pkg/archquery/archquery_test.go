package archquery

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	compilererrors "github.com/archquery/archquery/internal/compiler/errors"
	"github.com/archquery/archquery/internal/compiler/tables"
)

func TestParse_Scenario4(t *testing.T) {
	result, err := Parse("(bert | gpt) @google -@bengio #cs.CL 50 rd")
	require.NoError(t, err)
	assert.Equal(t, "(ti:bert OR ti:gpt) AND au:google AND NOT ( au:bengio ) AND cat:cs.CL", result.QueryString)
	assert.Equal(t, uint32(50), result.MaxResults)
	assert.Nil(t, result.Tokens, "debug-only fields must be empty on the default compiler")
}

func TestParse_Scenario6_UnrecognizedField(t *testing.T) {
	_, err := Parse("quantum foo:bar")
	require.Error(t, err)
	parseErr, ok := err.(*compilererrors.ParseError)
	require.True(t, ok)
	assert.Equal(t, compilererrors.StageTransform, parseErr.Stage)
	assert.Equal(t, "Unrecognized field: foo", parseErr.Message)
}

func TestParse_Scenario7_ResultCountRange(t *testing.T) {
	_, err := Parse("quantum 0")
	require.Error(t, err)
	parseErr, ok := err.(*compilererrors.ParseError)
	require.True(t, ok)
	assert.Equal(t, compilererrors.StageParse, parseErr.Stage)
	assert.Equal(t, "Number of results must be between 1 and 1000", parseErr.Message)
}

func TestParse_Scenario8_EmptyGroup(t *testing.T) {
	_, err := Parse("(quantum | )")
	require.Error(t, err)
	parseErr, ok := err.(*compilererrors.ParseError)
	require.True(t, ok)
	assert.Equal(t, "Empty group", parseErr.Message)
}

func TestParse_InputTooLong(t *testing.T) {
	huge := strings.Repeat("a", defaultMaxInputLength+1)
	_, err := Parse(huge)
	require.Error(t, err)
	parseErr, ok := err.(*compilererrors.ParseError)
	require.True(t, ok)
	assert.Equal(t, compilererrors.StageInput, parseErr.Stage)
}

func TestCompiler_DebugModeReturnsIntermediates(t *testing.T) {
	c := New(WithDebug())
	result, err := c.Parse("quantum")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Tokens)
	assert.NotNil(t, result.Expr)
}

func TestCompiler_CustomMaxInputLength(t *testing.T) {
	c := New(WithMaxInputLength(4))
	_, err := c.Parse("quantum")
	require.Error(t, err)
	parseErr, ok := err.(*compilererrors.ParseError)
	require.True(t, ok)
	assert.Equal(t, compilererrors.StageInput, parseErr.Stage)
}

func TestCompiler_WithDefaultSort_AppliesWhenInputOmitsSortToken(t *testing.T) {
	c := New(WithDefaultSort(tables.Relevance, tables.Ascending))
	result, err := c.Parse("quantum")
	require.NoError(t, err)
	assert.Equal(t, tables.Relevance, result.SortCriterion)
	assert.Equal(t, tables.Ascending, result.SortDirection)
}

func TestCompiler_WithDefaultSort_DoesNotOverrideExplicitSortToken(t *testing.T) {
	c := New(WithDefaultSort(tables.Relevance, tables.Ascending))
	result, err := c.Parse("quantum sd")
	require.NoError(t, err)
	assert.Equal(t, tables.SubmittedDate, result.SortCriterion)
	assert.Equal(t, tables.Descending, result.SortDirection)
}

func TestParse_Deterministic(t *testing.T) {
	a, errA := Parse("quantum @hinton 20 rd")
	b, errB := Parse("quantum @hinton 20 rd")
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, a.QueryString, b.QueryString)
	assert.Equal(t, a.Echo, b.Echo)
}
