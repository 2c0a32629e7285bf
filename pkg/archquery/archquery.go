// Package archquery is the compiler's façade: a single entry point that
// wraps the tokenizer, parser and transformer and produces a uniform
// success/error shape for the chat-command host.
package archquery

import (
	"fmt"

	"github.com/archquery/archquery/internal/compiler/ast"
	"github.com/archquery/archquery/internal/compiler/errors"
	"github.com/archquery/archquery/internal/compiler/lexer"
	"github.com/archquery/archquery/internal/compiler/parser"
	"github.com/archquery/archquery/internal/compiler/tables"
	"github.com/archquery/archquery/internal/compiler/transformer"
)

// defaultMaxInputLength is the façade's enforced input ceiling, per the
// 4 KiB recommendation.
const defaultMaxInputLength = 4096

// Result is the façade's success value. Tokens and Expr are populated
// only when the Compiler that produced the Result was built with Debug.
type Result struct {
	QueryString   string
	MaxResults    uint32
	SortCriterion tables.SortCriterion
	SortDirection tables.SortDirection
	Echo          string
	Tokens        []lexer.Token `json:"tokens,omitempty"`
	Expr          ast.Expr      `json:"-"`
}

// Compiler is a constructible façade instance. The debug flag is a
// construction-time option rather than a per-call argument: a single
// Compiler is either always debug-capable or never is.
type Compiler struct {
	debug          bool
	maxInputLen    int
	defaultOptions ast.Options
}

// Option configures a Compiler at construction time.
type Option func(*Compiler)

// WithDebug makes Parse also return the intermediate token stream and AST
// on success.
func WithDebug() Option {
	return func(c *Compiler) { c.debug = true }
}

// WithMaxInputLength overrides the default 4 KiB input ceiling.
func WithMaxInputLength(n int) Option {
	return func(c *Compiler) { c.maxInputLen = n }
}

// WithDefaultSort overrides the sort criterion and direction Parse falls
// back to for an input that carries no explicit SORT token. It has no
// effect on an input that does specify one.
func WithDefaultSort(criterion tables.SortCriterion, direction tables.SortDirection) Option {
	return func(c *Compiler) {
		c.defaultOptions.SortCriterion = criterion
		c.defaultOptions.SortDirection = direction
	}
}

// New builds a Compiler with the given options.
func New(opts ...Option) *Compiler {
	c := &Compiler{maxInputLen: defaultMaxInputLength, defaultOptions: ast.DefaultOptions()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Parse compiles input, a single free-form chat-command string, into a
// Result. It is a pure function of input and the static normalization
// tables: no I/O, no shared mutable state, safe to call concurrently.
func (c *Compiler) Parse(input string) (*Result, error) {
	if len(input) > c.maxInputLen {
		return nil, errors.New(errors.StageInput,
			fmt.Sprintf("input exceeds maximum length of %d bytes", c.maxInputLen))
	}

	tokens, lexErr := lexer.Tokenize(input)
	if lexErr != nil {
		return nil, errors.At(errors.StageTokenize, lexErr.Position, lexErr.Message)
	}

	expr, opts, parseErr := parser.ParseWithDefaults(tokens, c.defaultOptions)
	if parseErr != nil {
		return nil, errors.At(errors.StageParse, parseErr.Position, parseErr.Message)
	}

	compiled, transformErr := transformer.Transform(expr, opts)
	if transformErr != nil {
		return nil, errors.New(errors.StageTransform, transformErr.Message)
	}

	result := &Result{
		QueryString:   compiled.QueryString,
		MaxResults:    compiled.MaxResults,
		SortCriterion: compiled.SortCriterion,
		SortDirection: compiled.SortDirection,
		Echo:          compiled.Echo,
	}
	if c.debug {
		result.Tokens = tokens
		result.Expr = expr
	}
	return result, nil
}

var defaultCompiler = New()

// Parse compiles input using a default, non-debug Compiler. Most callers
// that don't need the intermediate token stream or AST should use this
// instead of constructing their own Compiler.
func Parse(input string) (*Result, error) {
	return defaultCompiler.Parse(input)
}
