package bus

import (
	"context"
	"fmt"
	"reflect"
	"sync"
)

// Query is a read request. Validate runs before dispatch so handlers
// only ever see well-formed queries.
type Query interface {
	Validate() error
}

// QueryHandler executes one query type and returns its view result.
type QueryHandler interface {
	Handle(ctx context.Context, query Query) (interface{}, error)
}

// QueryHandlerFunc adapts a function to QueryHandler.
type QueryHandlerFunc func(ctx context.Context, query Query) (interface{}, error)

func (f QueryHandlerFunc) Handle(ctx context.Context, query Query) (interface{}, error) {
	return f(ctx, query)
}

// QueryBus routes queries to handlers keyed by concrete query type.
// Registration happens once during container assembly; Ask is safe for
// concurrent use afterwards.
type QueryBus struct {
	mu       sync.RWMutex
	handlers map[reflect.Type]QueryHandler
}

func NewQueryBus() *QueryBus {
	return &QueryBus{handlers: make(map[reflect.Type]QueryHandler)}
}

// Register binds handler to queryType's concrete type. Registering the
// same type twice is a wiring bug and rejected.
func (b *QueryBus) Register(queryType Query, handler QueryHandler) error {
	t := reflect.TypeOf(queryType)

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, dup := b.handlers[t]; dup {
		return fmt.Errorf("handler already registered for query type %s", t.Name())
	}
	b.handlers[t] = handler
	return nil
}

// Ask validates the query, finds its handler, and returns the result.
func (b *QueryBus) Ask(ctx context.Context, query Query) (interface{}, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	b.mu.RLock()
	handler, ok := b.handlers[reflect.TypeOf(query)]
	b.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("no handler registered for query type %T", query)
	}

	return handler.Handle(ctx, query)
}

// Metrics is the sink the metrics middleware reports into. The
// CloudWatch collector satisfies it through a thin adapter in the DI
// layer.
type Metrics interface {
	StartTimer(metric, label string) Timer
	Increment(metric, label string)
}

// Timer measures one handler execution.
type Timer interface {
	Stop()
}

// MetricsMiddleware records per-query-type counts and latency.
type MetricsMiddleware struct {
	metrics Metrics
}

func NewMetricsMiddleware(metrics Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: metrics}
}

// Wrap decorates next with timing and outcome counters.
func (m *MetricsMiddleware) Wrap(next QueryHandler) QueryHandler {
	return QueryHandlerFunc(func(ctx context.Context, query Query) (interface{}, error) {
		label := reflect.TypeOf(query).Name()

		timer := m.metrics.StartTimer("query_duration", label)
		defer timer.Stop()
		m.metrics.Increment("query_count", label)

		result, err := next.Handle(ctx, query)
		if err != nil {
			m.metrics.Increment("query_errors", label)
			return nil, err
		}

		m.metrics.Increment("query_success", label)
		return result, nil
	})
}
