// Package logging builds the zap loggers every host-side component wraps
// around the pure façade with. The façade itself never takes a logger:
// logging is a host concern, not something a pure function from input
// string to compiled query should depend on.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewDevelopment builds a console-formatted, colorized logger suitable
// for the CLI and local debug server runs.
func NewDevelopment() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg.Build()
}

// NewProduction builds a JSON logger suitable for a deployed debug server
// or stored-query scheduler.
func NewProduction() (*zap.Logger, error) {
	return zap.NewProduction()
}

// MustDevelopment is NewDevelopment, falling back to a no-op logger if
// construction fails. Used at CLI startup, where a logging failure
// should never prevent the command itself from running.
func MustDevelopment() *zap.Logger {
	logger, err := NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// Structured log field names. The debug server logs FieldInputLength
// around each Parse call; no component in this module logs FieldStage or
// FieldQueryID.
const (
	FieldInputLength = "input_len"
	FieldStage       = "stage"
	FieldQueryID     = "query_id"
)
