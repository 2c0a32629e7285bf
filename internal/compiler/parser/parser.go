package parser

import (
	"strconv"

	"github.com/archquery/archquery/internal/compiler/ast"
	"github.com/archquery/archquery/internal/compiler/lexer"
	"github.com/archquery/archquery/internal/compiler/tables"
)

// Parse consumes the full token stream produced by lexer.Tokenize and
// returns the boolean-expression AST plus the option set extracted from
// any NUMBER/SORT tokens, or the first ParseError encountered. Absent an
// explicit NUMBER/SORT token, the result falls back to ast.DefaultOptions().
//
// Precedence, lowest to highest: OR, implicit AND by juxtaposition, NOT,
// then atoms. OR and AND are both left-associative and flattened into
// n-ary nodes rather than nested binary ones.
func Parse(tokens []lexer.Token) (ast.Expr, ast.Options, *ParseError) {
	return ParseWithDefaults(tokens, ast.DefaultOptions())
}

// ParseWithDefaults is Parse, but falls back to defaults instead of
// ast.DefaultOptions() when the input carries no explicit NUMBER/SORT
// token. This is the hook a deployment-configured default sort order
// rides in on.
func ParseWithDefaults(tokens []lexer.Token, defaults ast.Options) (ast.Expr, ast.Options, *ParseError) {
	exprTokens, opts, err := extractOptions(tokens, defaults)
	if err != nil {
		return nil, ast.Options{}, err
	}

	p := &parser{tokens: exprTokens}
	if p.isAtEnd() {
		return nil, ast.Options{}, newParseError(0, "Empty group")
	}

	expr, err := p.parseOr()
	if err != nil {
		return nil, ast.Options{}, err
	}
	if !p.isAtEnd() {
		return nil, ast.Options{}, newParseError(p.peek().Position, "Unmatched parenthesis")
	}
	return expr, opts, nil
}

// extractOptions runs the pre-pass: strip every NUMBER and SORT token out
// of the stream (they may appear anywhere, not only at the tail),
// enforcing at most one of each and range-checking NUMBER. defaults seeds
// opts before any SORT token is seen.
func extractOptions(tokens []lexer.Token, defaults ast.Options) ([]lexer.Token, ast.Options, *ParseError) {
	opts := defaults
	exprTokens := make([]lexer.Token, 0, len(tokens))
	sawNumber, sawSort := false, false

	for _, tok := range tokens {
		switch tok.Kind {
		case lexer.NUMBER:
			if sawNumber {
				return nil, ast.Options{}, newParseError(tok.Position, "Number of results specified more than once")
			}
			sawNumber = true
			n, convErr := strconv.Atoi(tok.Value)
			if convErr != nil || n < 1 || n > 1000 {
				return nil, ast.Options{}, newParseError(tok.Position, "Number of results must be between 1 and 1000")
			}
			opts.MaxResults = uint32(n)

		case lexer.SORT:
			if sawSort {
				return nil, ast.Options{}, newParseError(tok.Position, "Sort specified more than once")
			}
			sawSort = true
			spec := tables.SortCodes[tok.Value]
			opts.SortCriterion = spec.Criterion
			opts.SortDirection = spec.Direction

		default:
			exprTokens = append(exprTokens, tok)
		}
	}

	return exprTokens, opts, nil
}

// parser is the recursive-descent cursor over the option-stripped token
// stream. It is not exported: Parse is the package's only entry point.
type parser struct {
	tokens []lexer.Token
	pos    int
}

func (p *parser) isAtEnd() bool {
	return p.pos >= len(p.tokens)
}

func (p *parser) peek() lexer.Token {
	return p.tokens[p.pos]
}

func (p *parser) previous() lexer.Token {
	return p.tokens[p.pos-1]
}

func (p *parser) advance() lexer.Token {
	tok := p.tokens[p.pos]
	p.pos++
	return tok
}

func (p *parser) check(kind lexer.Kind) bool {
	return !p.isAtEnd() && p.peek().Kind == kind
}

func (p *parser) match(kind lexer.Kind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

// parseOr := and_expr ( "|" and_expr )*
func (p *parser) parseOr() (ast.Expr, *ParseError) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	children := []ast.Expr{first}
	for p.match(lexer.OR) {
		next, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return &ast.Or{Children: children}, nil
}

// parseAnd := not_expr ( not_expr )*; juxtaposed atoms are an implicit AND.
func (p *parser) parseAnd() (ast.Expr, *ParseError) {
	first, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	children := []ast.Expr{first}
	for !p.isAtEnd() && isAtomStart(p.peek().Kind) {
		next, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return &ast.And{Children: children}, nil
}

// parseNot := "-" not_expr | atom. Recursive, so NOT NOT x survives
// unfolded to the transformer.
func (p *parser) parseNot() (ast.Expr, *ParseError) {
	if p.match(lexer.NOT) {
		child, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &ast.Not{Child: child}, nil
	}
	return p.parseAtom()
}

// isAtomStart reports whether kind can begin an atom, i.e. whether an
// and_expr should keep consuming juxtaposed operands.
func isAtomStart(kind lexer.Kind) bool {
	switch kind {
	case lexer.PHRASE, lexer.KEYWORD, lexer.FIELD,
		lexer.AUTHOR, lexer.CATEGORY, lexer.ABSTRACT, lexer.ALL,
		lexer.NOT, lexer.LPAREN:
		return true
	default:
		return false
	}
}

func fieldForSigilKind(kind lexer.Kind) ast.Field {
	switch kind {
	case lexer.AUTHOR:
		return ast.Author
	case lexer.CATEGORY:
		return ast.Category
	case lexer.ABSTRACT:
		return ast.Abstract
	case lexer.ALL:
		return ast.All
	default:
		return ast.Title
	}
}

// parseAtom := PHRASE | KEYWORD | FIELD
//            | SIGIL identifier | SIGIL phrase
//            | SIGIL "(" expr ")"
//            | "(" expr ")"
func (p *parser) parseAtom() (ast.Expr, *ParseError) {
	if p.isAtEnd() {
		return nil, newParseError(0, "Unexpected end of expression")
	}

	tok := p.peek()
	switch tok.Kind {
	case lexer.RPAREN:
		return nil, newParseError(tok.Position, "Empty group")

	case lexer.OR:
		return nil, newParseError(tok.Position, "Expected an expression between '|' operators")

	case lexer.PHRASE:
		p.advance()
		return &ast.Term{Value: tok.Value, Phrase: true}, nil

	case lexer.KEYWORD:
		p.advance()
		return &ast.Term{Value: tok.Value}, nil

	case lexer.FIELD:
		p.advance()
		if field, ok := ast.FieldFromPrefix(tok.Prefix); ok {
			return &ast.Term{Field: &field, Value: tok.Value, Phrase: tok.Phrase}, nil
		}
		return &ast.Term{UnresolvedPrefix: tok.Prefix, Value: tok.Value, Phrase: tok.Phrase}, nil

	case lexer.AUTHOR, lexer.CATEGORY, lexer.ABSTRACT, lexer.ALL:
		p.advance()
		field := fieldForSigilKind(tok.Kind)
		if tok.Value == "" && !tok.Phrase {
			return p.parseSigilGroup(tok.Position, field)
		}
		return &ast.Term{Field: &field, Value: tok.Value, Phrase: tok.Phrase}, nil

	case lexer.LPAREN:
		p.advance()
		return p.parseGroup(tok.Position, nil)

	default:
		return nil, newParseError(tok.Position, "Unexpected token")
	}
}

// parseSigilGroup handles rule 6c: a sigil immediately followed by "(".
// The lexer has already emitted the sigil token with an empty value and
// left the LPAREN as the very next token.
func (p *parser) parseSigilGroup(sigilPos int, field ast.Field) (ast.Expr, *ParseError) {
	if !p.check(lexer.LPAREN) {
		return nil, newParseError(sigilPos, "Empty group")
	}
	openPos := p.advance().Position
	return p.parseGroup(openPos, &field)
}

// parseGroup parses the body of a group whose LPAREN has already been
// consumed at openPos, then requires the matching RPAREN.
func (p *parser) parseGroup(openPos int, fieldContext *ast.Field) (ast.Expr, *ParseError) {
	inner, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.check(lexer.RPAREN) {
		return nil, newParseError(openPos, "Unmatched parenthesis")
	}
	p.advance()
	return &ast.Group{Inner: inner, FieldContext: fieldContext}, nil
}
