// Package ast defines the abstract syntax tree produced by the parser:
// a closed, tagged union of boolean expression nodes plus the sibling
// Options the parser extracts from NUMBER/SORT tokens. The tree is built
// bottom-up by recursive descent and never mutated once constructed.
package ast

import "github.com/archquery/archquery/internal/compiler/tables"

// Field is the enumeration of archive fields a leaf term can resolve to.
type Field int

const (
	// Title is the default field for a term with no explicit or
	// inherited field context.
	Title Field = iota
	Author
	Abstract
	Category
	All
)

// Prefix returns the archive query prefix for f (e.g. Author -> "au").
// This is the fixed inverse of tables.FieldPrefixMap plus "ti"; it lives
// here rather than in tables because Field itself is an ast-level
// concept the tables package has no need to know about.
func (f Field) Prefix() string {
	switch f {
	case Author:
		return "au"
	case Abstract:
		return "abs"
	case Category:
		return "cat"
	case All:
		return "all"
	default:
		return "ti"
	}
}

// FieldFromPrefix maps a recognized archive prefix string to a Field.
// ok is false for an unrecognized prefix; callers must not use f in
// that case.
func FieldFromPrefix(prefix string) (f Field, ok bool) {
	if !tables.RecognizedPrefixes[prefix] {
		return Title, false
	}
	switch prefix {
	case "au":
		return Author, true
	case "abs":
		return Abstract, true
	case "cat":
		return Category, true
	case "all":
		return All, true
	default:
		return Title, true
	}
}

// Expr is the closed set of boolean-expression node kinds. It is a
// marker interface rather than a class hierarchy: the transformer
// threads an ambient field context through a type switch rather than
// virtual dispatch, since that context is orthogonal to node kind.
type Expr interface {
	exprNode()
}

// Term is a leaf: a single value, optionally field-scoped, optionally a
// quoted phrase. Field == nil means "inherit the ambient field context,
// defaulting to Title if there is none."
type Term struct {
	Field *Field
	Value string
	// Phrase is true when the value came from a quoted literal
	// ("vision transformer") rather than a bare identifier run.
	Phrase bool
	// UnresolvedPrefix is set only when this term came from an explicit
	// FIELD token (prefix:value) whose prefix is not in
	// tables.RecognizedPrefixes. Field is nil in that case, and it must
	// be distinguished from plain field inheritance: the transformer
	// raises "Unrecognized field: <prefix>" instead of defaulting.
	UnresolvedPrefix string
}

func (*Term) exprNode() {}

// And is an n-ary conjunction. The parser never constructs one with
// fewer than two children; a single operand degenerates to that
// operand directly.
type And struct {
	Children []Expr
}

func (*And) exprNode() {}

// Or is an n-ary disjunction, same non-degeneracy rule as And.
type Or struct {
	Children []Expr
}

func (*Or) exprNode() {}

// Not is a unary negation.
type Not struct {
	Child Expr
}

func (*Not) exprNode() {}

// Group is a parenthesized subexpression. FieldContext is non-nil only
// for a sigil-led group (e.g. @(hinton lecun)), and propagates into
// bare terms inside Inner. The parser never constructs a Group with a
// nil Inner; an empty group is rejected as a parse error instead.
type Group struct {
	Inner        Expr
	FieldContext *Field
}

func (*Group) exprNode() {}

// SortCriterion and SortDirection reuse the tables package's
// enumerations directly: there is nothing AST-specific about them.
type SortCriterion = tables.SortCriterion
type SortDirection = tables.SortDirection

// Options holds the trailing NUMBER/SORT option values the parser's
// pre-pass extracts from the token stream, with spec-mandated defaults.
type Options struct {
	MaxResults    uint32
	SortCriterion SortCriterion
	SortDirection SortDirection
}

// DefaultOptions returns the Options value used when the input contains
// neither a NUMBER nor a SORT token.
func DefaultOptions() Options {
	return Options{
		MaxResults:    10,
		SortCriterion: tables.SubmittedDate,
		SortDirection: tables.Descending,
	}
}
