package llm

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// LoggingProvider records every model call with purpose, latency and token
// usage. Logging never fails the request.
type LoggingProvider struct {
	inner Provider
	log   *zap.SugaredLogger
}

// WithLogging wraps a Provider with structured request logging.
func WithLogging(p Provider, log *zap.SugaredLogger) Provider {
	return &LoggingProvider{inner: p, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	fields := []any{
		"purpose", PurposeFrom(ctx),
		"model", l.inner.ModelID(),
		"latency_ms", time.Since(start).Milliseconds(),
	}
	if resp != nil {
		fields = append(fields,
			"input_tokens", resp.Usage.InputTokens,
			"output_tokens", resp.Usage.OutputTokens,
		)
	}

	if err != nil {
		l.log.Warnw("llm request failed", append(fields, "error", err)...)
	} else {
		l.log.Debugw("llm request", fields...)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
