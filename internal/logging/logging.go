// Package logging builds the process-wide zap logger.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New returns a sugared logger. Mode "dev" is human-readable console
// output; "prod" is JSON.
func New(mode string) (*zap.SugaredLogger, error) {
	var (
		log *zap.Logger
		err error
	)
	switch mode {
	case "dev":
		log, err = zap.NewDevelopment()
	case "prod":
		log, err = zap.NewProduction()
	default:
		return nil, fmt.Errorf("unknown log mode %q", mode)
	}
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log.Sugar(), nil
}
