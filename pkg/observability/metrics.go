package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

const (
	metricBufferSize = 256
	flushInterval    = 30 * time.Second
	// PutMetricData caps a single call at 20 datums
	maxBatchSize = 20
)

// MetricsCollector publishes application metrics to CloudWatch. Datums
// are buffered and flushed in the background so the request path never
// waits on the metrics API.
type MetricsCollector struct {
	client    *cloudwatch.Client
	namespace string
	logger    *zap.Logger
	buffer    chan types.MetricDatum
	done      chan struct{}
}

// NewMetricsCollector creates a collector publishing under the given
// namespace. A nil client yields a collector that drops everything,
// which keeps local development quiet.
func NewMetricsCollector(client *cloudwatch.Client, namespace string, logger *zap.Logger) *MetricsCollector {
	m := &MetricsCollector{
		client:    client,
		namespace: namespace,
		logger:    logger,
		buffer:    make(chan types.MetricDatum, metricBufferSize),
		done:      make(chan struct{}),
	}

	if client != nil {
		go m.flushLoop()
	}

	return m
}

// Increment records a count of one for the metric
func (m *MetricsCollector) Increment(metric, label string) {
	m.record(types.MetricDatum{
		MetricName: aws.String(metric),
		Value:      aws.Float64(1),
		Unit:       types.StandardUnitCount,
		Timestamp:  aws.Time(time.Now()),
		Dimensions: []types.Dimension{
			{Name: aws.String("Operation"), Value: aws.String(label)},
		},
	})
}

// RecordDuration records an operation latency
func (m *MetricsCollector) RecordDuration(metric, label string, d time.Duration) {
	m.record(types.MetricDatum{
		MetricName: aws.String(metric),
		Value:      aws.Float64(float64(d.Milliseconds())),
		Unit:       types.StandardUnitMilliseconds,
		Timestamp:  aws.Time(time.Now()),
		Dimensions: []types.Dimension{
			{Name: aws.String("Operation"), Value: aws.String(label)},
		},
	})
}

func (m *MetricsCollector) record(datum types.MetricDatum) {
	if m.client == nil {
		return
	}
	select {
	case m.buffer <- datum:
	default:
		// Buffer full: dropping a datum beats blocking a request
	}
}

func (m *MetricsCollector) flushLoop() {
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	pending := make([]types.MetricDatum, 0, maxBatchSize)

	for {
		select {
		case datum := <-m.buffer:
			pending = append(pending, datum)
			if len(pending) >= maxBatchSize {
				m.flush(pending)
				pending = pending[:0]
			}
		case <-ticker.C:
			if len(pending) > 0 {
				m.flush(pending)
				pending = pending[:0]
			}
		case <-m.done:
			if len(pending) > 0 {
				m.flush(pending)
			}
			return
		}
	}
}

func (m *MetricsCollector) flush(datums []types.MetricDatum) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: datums,
	})
	if err != nil {
		m.logger.Warn("Failed to publish metrics", zap.Error(err), zap.Int("count", len(datums)))
	}
}

// Close flushes any buffered datums and stops the background loop
func (m *MetricsCollector) Close() {
	if m.client != nil {
		close(m.done)
	}
}
