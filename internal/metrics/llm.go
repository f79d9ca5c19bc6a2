package metrics

import (
	"context"
	"time"

	"focusbot/internal/llm"
)

// InstrumentProvider wraps a Provider so every model call lands in the
// latency histogram, labeled by its purpose.
func InstrumentProvider(p llm.Provider, c Collector) llm.Provider {
	return &instrumentedProvider{inner: p, collector: c}
}

type instrumentedProvider struct {
	inner     llm.Provider
	collector Collector
}

func (p *instrumentedProvider) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	start := time.Now()
	resp, err := p.inner.Generate(ctx, req)
	p.collector.RecordLLMLatency(llm.PurposeFrom(ctx), time.Since(start))
	return resp, err
}

func (p *instrumentedProvider) ModelID() string {
	return p.inner.ModelID()
}
