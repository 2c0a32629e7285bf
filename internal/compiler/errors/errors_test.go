package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError_ErrorWithPosition(t *testing.T) {
	err := At(StageTokenize, 4, "Unterminated phrase")
	assert.Equal(t, "Unterminated phrase (at position 4)", err.Error())
	assert.Equal(t, StageTokenize, err.Stage)
	assert.Equal(t, 4, *err.Position)
}

func TestParseError_ErrorWithoutPosition(t *testing.T) {
	err := New(StageInput, "input exceeds maximum length")
	assert.Nil(t, err.Position)
	assert.Equal(t, "input exceeds maximum length", err.Error())
}
