// Package transformer walks the parser's AST and renders it into the
// archive's external boolean query grammar, resolving every leaf's field,
// normalizing category values, and producing the echo string shown back
// to the chat user.
package transformer

import (
	"fmt"
	"strings"

	"github.com/archquery/archquery/internal/compiler/ast"
	compilererrors "github.com/archquery/archquery/internal/compiler/errors"
	"github.com/archquery/archquery/internal/compiler/tables"
)

// TransformError is this stage's own error type, wrapped by the façade
// into the shared errors.ParseError. The transformer never has a source
// position to anchor an error to (the AST carries no token positions),
// so unlike lexer.LexError and parser.ParseError this one is message-only.
type TransformError struct {
	Message string
}

func (e *TransformError) Error() string {
	return e.Message
}

// CompiledQuery is the transformer's output: the rendered query string in
// the archive's grammar, the option values that ride alongside it, and a
// compact human-readable echo.
type CompiledQuery struct {
	QueryString   string
	MaxResults    uint32
	SortCriterion tables.SortCriterion
	SortDirection tables.SortDirection
	Echo          string
}

// Transform renders expr under opts into a CompiledQuery.
func Transform(expr ast.Expr, opts ast.Options) (*CompiledQuery, *TransformError) {
	queryString, err := render(expr, nil)
	if err != nil {
		return nil, err
	}

	return &CompiledQuery{
		QueryString:   queryString,
		MaxResults:    opts.MaxResults,
		SortCriterion: opts.SortCriterion,
		SortDirection: opts.SortDirection,
		Echo:          echo(queryString, opts),
	}, nil
}

// render walks expr top-down, threading the ambient field context a
// sigil-led Group propagates into the bare terms nested inside it.
//
// Parenthesization is produced by exactly two places: Group (the plain
// "(...)" form, or the sigil form "prefix:(...)") and Not's unconditional
// "NOT ( ... )". And and Or never add their own parentheses: the grammar
// only lets an Or (or a flattened And it doesn't already dominate) appear
// as a non-root node via a Group, so Group's own parens already cover it.
func render(expr ast.Expr, ambient *ast.Field) (string, *TransformError) {
	switch node := expr.(type) {
	case *ast.Term:
		return renderTerm(node, ambient)

	case *ast.Not:
		inner, err := render(node.Child, ambient)
		if err != nil {
			return "", err
		}
		return "NOT ( " + inner + " )", nil

	case *ast.And:
		return renderChildren(node.Children, ambient, " AND ")

	case *ast.Or:
		return renderChildren(node.Children, ambient, " OR ")

	case *ast.Group:
		return renderGroup(node, ambient)

	default:
		return "", &TransformError{Message: "Unknown expression node"}
	}
}

func renderChildren(children []ast.Expr, ambient *ast.Field, sep string) (string, *TransformError) {
	parts := make([]string, len(children))
	for i, child := range children {
		rendered, err := render(child, ambient)
		if err != nil {
			return "", err
		}
		parts[i] = rendered
	}
	return strings.Join(parts, sep), nil
}

func renderGroup(node *ast.Group, ambient *ast.Field) (string, *TransformError) {
	if node.FieldContext != nil {
		inner, err := render(node.Inner, node.FieldContext)
		if err != nil {
			return "", err
		}
		return node.FieldContext.Prefix() + ":(" + inner + ")", nil
	}
	inner, err := render(node.Inner, ambient)
	if err != nil {
		return "", err
	}
	return "(" + inner + ")", nil
}

// renderTerm resolves node's field (its own, the ambient context, or the
// title default) and renders "prefix:value". A term that only inherits
// its field from an enclosing sigil-led group renders without a prefix of
// its own: the group already shows it once, at the front of the
// parenthesized list (see scenario au:(hinton AND lecun), not
// au:(au:hinton AND au:lecun)).
func renderTerm(node *ast.Term, ambient *ast.Field) (string, *TransformError) {
	if node.UnresolvedPrefix != "" {
		return "", &TransformError{Message: compilererrors.PrefixUnrecognizedField + node.UnresolvedPrefix}
	}

	var field ast.Field
	showPrefix := true

	switch {
	case node.Field != nil:
		field = *node.Field
	case ambient != nil:
		field = *ambient
		showPrefix = false
	default:
		field = ast.Title
	}

	value := node.Value
	if field == ast.Category {
		value = normalizeCategory(value)
	}
	rendered := renderValue(value, node.Phrase)

	if !showPrefix {
		return rendered, nil
	}
	return field.Prefix() + ":" + rendered, nil
}

func renderValue(value string, phrase bool) string {
	if phrase {
		return `"` + value + `"`
	}
	return value
}

// normalizeCategory applies the two-stage category normalization: an
// alias table for bare (dot-free) short group names, a case-correction
// table for everything else, falling through to the lowercased value
// unchanged when neither table has an entry.
func normalizeCategory(value string) string {
	lower := strings.ToLower(value)
	if alias, ok := tables.CategoryAliases[lower]; ok {
		return alias
	}
	if canonical, ok := tables.CategoryCaseMap[lower]; ok {
		return canonical
	}
	return lower
}

func echo(queryString string, opts ast.Options) string {
	return fmt.Sprintf("%s (%d results, %s %s)",
		queryString, opts.MaxResults, opts.SortCriterion, opts.SortDirection)
}
