// Package metrics exposes the Prometheus instruments shared by the server
// and the client-side cache.
package metrics

import (
	"context"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rpcRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "schedulist",
		Name:      "rpc_requests_total",
		Help:      "RPC calls by procedure and result code.",
	}, []string{"procedure", "code"})

	rpcDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "schedulist",
		Name:      "rpc_duration_seconds",
		Help:      "RPC latency by procedure.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"procedure"})

	// CacheOptimisticWrites counts optimistic snapshot replacements that ran
	// ahead of server confirmation.
	CacheOptimisticWrites = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "schedulist",
		Name:      "cache_optimistic_writes_total",
		Help:      "Optimistic collection replacements.",
	})

	// CacheRefetches counts invalidate-and-refetch cycles.
	CacheRefetches = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "schedulist",
		Name:      "cache_refetches_total",
		Help:      "Collection refetches after mutation settle or invalidation.",
	})

	// CacheRefetchErrors counts refetches that failed and left the previous
	// snapshot in place.
	CacheRefetchErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "schedulist",
		Name:      "cache_refetch_errors_total",
		Help:      "Failed collection refetches.",
	})
)

// Interceptor returns a Connect interceptor recording request counts and
// latency per procedure.
func Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			rpcDuration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())
			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			rpcRequests.WithLabelValues(procedure, code).Inc()

			return resp, err
		}
	}
}
