package operator

import (
	"github.com/opentracing/opentracing-go"

	"github.com/relq/relq/record"
	"github.com/relq/relq/schema"
)

var tracer opentracing.Tracer = opentracing.NoopTracer{}

// SetTracer redirects the span emitted by every Trace-wrapped operator.
// Passing nil restores the no-op tracer.
func SetTracer(t opentracing.Tracer) {
	if t == nil {
		tracer = opentracing.NoopTracer{}
		return
	}
	tracer = t
}

// Trace wraps any operator in a span per pulled record, named name
// (§4.8). It is an opt-in decorator, not something the query compiler
// applies automatically: wrap whichever stage of a pipeline needs
// instrumentation by hand.
type Trace struct {
	sub  Operator
	name string
}

// NewTrace wraps sub so every pull through it is recorded as a span.
func NewTrace(name string, sub Operator) *Trace {
	return &Trace{sub: sub, name: name}
}

func (t *Trace) Schema() *schema.Schema { return t.sub.Schema() }

func (t *Trace) Stream() Next {
	next := t.sub.Stream()
	return func() (record.Record, bool, error) {
		span := tracer.StartSpan(t.name)
		defer span.Finish()
		r, ok, err := next()
		if err != nil {
			span.SetTag("error", true)
		}
		return r, ok, err
	}
}
