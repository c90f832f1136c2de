package observability

import (
	"context"

	"github.com/aws/aws-xray-sdk-go/xray"
)

// Tracer records command execution as X-Ray subsegments. In Lambda the
// runtime opens the facade segment; when running as a plain server the
// xray SDK falls back to its context-missing strategy, so callers never
// need to branch on deployment mode.
type Tracer struct {
	serviceName string
}

func NewTracer(serviceName string) *Tracer {
	return &Tracer{serviceName: serviceName}
}

// TraceFunction runs fn inside a subsegment named after the operation,
// attaching any returned error to the segment.
func (t *Tracer) TraceFunction(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, seg := xray.BeginSubsegment(ctx, t.serviceName+"."+name)
	defer seg.Close(nil)

	err := fn(ctx)
	if err != nil {
		seg.AddError(err)
	}
	return err
}

// Annotate adds an indexed annotation to the active segment, if any.
func (t *Tracer) Annotate(ctx context.Context, key, value string) {
	if seg := xray.GetSegment(ctx); seg != nil {
		seg.AddAnnotation(key, value)
	}
}
