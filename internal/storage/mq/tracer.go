package mq

import (
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("internal/storage/mq")

// tracingHooks instruments a kafka client with the globally installed tracer
// provider and propagator. Clients must be created after the tracer is set up.
func tracingHooks() kgo.Opt {
	kTracer := kotel.NewTracer(
		kotel.TracerProvider(otel.GetTracerProvider()),
		kotel.TracerPropagator(otel.GetTextMapPropagator()),
	)
	return kgo.WithHooks(kotel.NewKotel(kotel.WithTracer(kTracer)).Hooks()...)
}
