package gateway

import (
	"context"
	"encoding/json"
	"time"

	"dispatch-console/internal/core/metrics"

	"go.uber.org/zap"
)

// Instrumented decorates a Gateway with call metrics and failure logs.
type Instrumented struct {
	next    Gateway
	metrics *metrics.Metrics
	log     *zap.Logger
}

// NewInstrumented wraps next. A nil metrics disables the collectors.
func NewInstrumented(next Gateway, m *metrics.Metrics, log *zap.Logger) *Instrumented {
	if log == nil {
		log = zap.NewNop()
	}
	return &Instrumented{next: next, metrics: m, log: log}
}

func (i *Instrumented) observe(op, target string, start time.Time, err error) {
	elapsed := time.Since(start)
	i.metrics.ObserveGatewayCall(op, err, elapsed)
	if err != nil {
		i.log.Warn("Gateway call failed",
			zap.String("operation", op),
			zap.String("target", target),
			zap.Duration("duration", elapsed),
			zap.Error(err),
		)
		return
	}
	i.log.Debug("Gateway call completed",
		zap.String("operation", op),
		zap.String("target", target),
		zap.Duration("duration", elapsed),
	)
}

// Select implements Gateway.
func (i *Instrumented) Select(ctx context.Context, table string, q Query) (json.RawMessage, error) {
	start := time.Now()
	raw, err := i.next.Select(ctx, table, q)
	i.observe("select", table, start, err)
	return raw, err
}

// Insert implements Gateway.
func (i *Instrumented) Insert(ctx context.Context, table string, record any) (json.RawMessage, error) {
	start := time.Now()
	raw, err := i.next.Insert(ctx, table, record)
	i.observe("insert", table, start, err)
	return raw, err
}

// Update implements Gateway.
func (i *Instrumented) Update(ctx context.Context, table string, patch any, filters ...Filter) (json.RawMessage, error) {
	start := time.Now()
	raw, err := i.next.Update(ctx, table, patch, filters...)
	i.observe("update", table, start, err)
	return raw, err
}

// Delete implements Gateway.
func (i *Instrumented) Delete(ctx context.Context, table string, filters ...Filter) error {
	start := time.Now()
	err := i.next.Delete(ctx, table, filters...)
	i.observe("delete", table, start, err)
	return err
}

// Call implements Gateway.
func (i *Instrumented) Call(ctx context.Context, procedure string, args any) (json.RawMessage, error) {
	start := time.Now()
	raw, err := i.next.Call(ctx, procedure, args)
	i.observe("call", procedure, start, err)
	return raw, err
}

// Close implements Gateway.
func (i *Instrumented) Close() {
	i.next.Close()
}
