package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds a JSON production logger at level (debug, info, warn, error).
func New(level string) (*zap.Logger, error) {
	atomic, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = atomic
	cfg.Sampling = nil

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l.With(zap.String("service", "visit-dashboard")), nil
}
