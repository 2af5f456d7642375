package monitoring

import (
	"context"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

var (
	bookingOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_operations_total",
			Help: "Total booking operations by outcome",
		},
		[]string{"operation", "status"},
	)

	slotAvailability = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "slot_availability_total",
			Help: "Available catalog slots per turf and date",
		},
		[]string{"turf_id", "date"},
	)

	activeHolds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_slot_holds_total",
			Help: "Current number of advisory slot holds",
		},
	)

	goroutineCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_goroutines_total",
			Help: "Current number of active goroutines",
		},
	)

	gatewayDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_request_duration_seconds",
			Help:    "Duration of outbound gateway calls",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		},
		[]string{"gateway", "operation"},
	)

	otpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otp_requests_total",
			Help: "Total OTP requests by outcome",
		},
		[]string{"operation", "status"},
	)
)

// TrackBookingOperation counts one allocator operation outcome.
func TrackBookingOperation(operation, status string) {
	bookingOperations.WithLabelValues(operation, status).Inc()
}

// SetSlotAvailability records how many catalog slots are still free for a
// turf on a date, as of the last availability query.
func SetSlotAvailability(turfID, date string, available int) {
	slotAvailability.WithLabelValues(turfID, date).Set(float64(available))
}

// TrackGatewayCall records the duration of one outbound gateway request.
func TrackGatewayCall(gateway, operation string, duration time.Duration) {
	gatewayDuration.WithLabelValues(gateway, operation).Observe(duration.Seconds())
}

// TrackOTPRequest counts one OTP operation outcome.
func TrackOTPRequest(operation, status string) {
	otpRequests.WithLabelValues(operation, status).Inc()
}

type Monitor struct {
	redis *redis.Client
}

func NewMonitor(redisClient *redis.Client) *Monitor {
	monitor := &Monitor{redis: redisClient}

	go monitor.collectMetrics()

	return monitor
}

func (m *Monitor) collectMetrics() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		ctx := context.Background()

		m.collectHoldMetrics(ctx)
		goroutineCount.Set(float64(runtime.NumGoroutine()))
	}
}

func (m *Monitor) collectHoldMetrics(ctx context.Context) {
	keys, err := m.redis.Keys(ctx, "hold:*").Result()
	if err != nil {
		return
	}
	activeHolds.Set(float64(len(keys)))
}
