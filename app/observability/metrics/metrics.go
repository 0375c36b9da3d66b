package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	ItineraryGenerationsTotal metric.Int64Counter
	ItineraryRefinementsTotal metric.Int64Counter
	AIRequestDurationSeconds  metric.Float64Histogram
	JSONRepairsTotal          metric.Int64Counter
	CheckoutSessionsTotal     metric.Int64Counter
	WebhookEventsTotal        metric.Int64Counter
	PDFExportsTotal           metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global instruments once, using whatever
// MeterProvider is globally registered at that point. Call it after the
// provider is installed so the instruments are exported.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("RoadtripGenie")
		m := &AppMetrics{}

		m.ItineraryGenerationsTotal = mustCounter(meter, "itinerary_generations_total",
			"Total number of itinerary generation attempts", "{request}")
		m.ItineraryRefinementsTotal = mustCounter(meter, "itinerary_refinements_total",
			"Total number of itinerary refinement attempts", "{request}")
		m.JSONRepairsTotal = mustCounter(meter, "ai_json_repairs_total",
			"Model responses that needed a JSON repair stage", "{response}")
		m.CheckoutSessionsTotal = mustCounter(meter, "checkout_sessions_total",
			"Stripe checkout sessions created", "{session}")
		m.WebhookEventsTotal = mustCounter(meter, "payment_webhook_events_total",
			"Stripe webhook events received", "{event}")
		m.PDFExportsTotal = mustCounter(meter, "pdf_exports_total",
			"PDF roadbooks rendered", "{document}")

		var err error
		m.AIRequestDurationSeconds, err = meter.Float64Histogram(
			"ai_request_duration_seconds",
			metric.WithDescription("Duration of Gemini requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create ai_request_duration_seconds: %v", err)
		}

		appMetrics = m
	})
}

func mustCounter(meter metric.Meter, name, description, unit string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		log.Fatalf("Metrics: Failed to create %s: %v", name, err)
	}
	return c
}

// Get returns the global AppMetrics, initializing it on first use.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}
