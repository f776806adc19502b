package metrics

import "github.com/prometheus/client_golang/prometheus"

// SchedulingMetrics exposes counters/histograms for the slot and booking flows.
type SchedulingMetrics struct {
	slotQueriesTotal *prometheus.CounterVec
	slotsPerQuery    prometheus.Histogram
	bookingsTotal    *prometheus.CounterVec
	summariesTotal   *prometheus.CounterVec
}

func NewSchedulingMetrics(reg prometheus.Registerer) *SchedulingMetrics {
	m := &SchedulingMetrics{
		slotQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ehr",
			Subsystem: "scheduling",
			Name:      "slot_queries_total",
			Help:      "Total slot availability queries",
		}, []string{"empty"}),
		slotsPerQuery: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ehr",
			Subsystem: "scheduling",
			Name:      "slots_per_query",
			Help:      "Free slots returned per availability query",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32},
		}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ehr",
			Subsystem: "scheduling",
			Name:      "bookings_total",
			Help:      "Booking attempts by outcome",
		}, []string{"outcome"}),
		summariesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ehr",
			Subsystem: "transcription",
			Name:      "summaries_total",
			Help:      "Visit summarization jobs by outcome",
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.slotQueriesTotal, m.slotsPerQuery, m.bookingsTotal, m.summariesTotal)
	return m
}

func (m *SchedulingMetrics) ObserveSlotQuery(freeSlots int) {
	if m == nil {
		return
	}
	empty := "false"
	if freeSlots == 0 {
		empty = "true"
	}
	m.slotQueriesTotal.WithLabelValues(empty).Inc()
	m.slotsPerQuery.Observe(float64(freeSlots))
}

// ObserveBooking records a booking attempt. Outcomes are "created",
// "conflict", "validation_error", "not_found", and "store_error".
func (m *SchedulingMetrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(outcome).Inc()
}

func (m *SchedulingMetrics) ObserveSummary(outcome string) {
	if m == nil {
		return
	}
	m.summariesTotal.WithLabelValues(outcome).Inc()
}
