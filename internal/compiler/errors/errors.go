// Package errors defines the façade-level uniform error every pipeline
// stage's own error type is wrapped into. Unlike a per-stage error
// hierarchy, a single ParseError value with a stage tag and an optional
// position is enough here: the façade is one function and the message is
// meant for direct display in a chat surface, not a diagnostics UI.
package errors

import "fmt"

// Stage identifies which pipeline stage produced a ParseError.
type Stage string

const (
	StageInput     Stage = "input"
	StageTokenize  Stage = "tokenize"
	StageParse     Stage = "parse"
	StageTransform Stage = "transform"
)

// Recommended message prefixes, kept as constants so the CLI, the debug
// HTTP endpoint, and the cache layer all surface identical text.
const (
	PrefixUnrecognizedField  = "Unrecognized field: "
	PrefixResultCountRange   = "Number of results must be between 1 and 1000"
	PrefixCategoryNotFound   = "Category not found: "
	PrefixUnmatchedParen     = "Unmatched parenthesis"
	PrefixEmptyGroup         = "Empty group"
	PrefixUnterminatedPhrase = "Unterminated phrase"
)

// ParseError is the façade's uniform error shape. Position is a zero-based
// rune index into the original input; it is absent (nil) for errors that
// are not anchored to a single token, such as an input-length violation.
type ParseError struct {
	Stage    Stage
	Position *int
	Message  string
}

func (e *ParseError) Error() string {
	if e.Position != nil {
		return fmt.Sprintf("%s (at position %d)", e.Message, *e.Position)
	}
	return e.Message
}

// New builds a ParseError with no associated position.
func New(stage Stage, message string) *ParseError {
	return &ParseError{Stage: stage, Message: message}
}

// At builds a ParseError anchored to a specific input position.
func At(stage Stage, position int, message string) *ParseError {
	return &ParseError{Stage: stage, Position: &position, Message: message}
}
