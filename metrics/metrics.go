// Package metrics exposes the Prometheus registry and collectors of the
// reference deployment backend, served on a dedicated listener.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "pca"

// Results recorded by ProvisionRequests.
const (
	ResultProvisioned  = "provisioned"
	ResultInvalid      = "invalid"
	ResultStorageError = "storage_error"
)

type MetricsServer struct {
	Registry *prometheus.Registry

	// ProvisionRequests counts POST /provision calls by result.
	ProvisionRequests *prometheus.CounterVec

	srv *http.Server
}

func New(namespace, listenAddr string) (*MetricsServer, error) {
	registry := prometheus.NewRegistry()

	provisionRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provision_requests_total",
		Help:      "Provision requests received by the deployment backend.",
	}, []string{"result"})

	for _, c := range []prometheus.Collector{
		provisionRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	return &MetricsServer{
		Registry:          registry,
		ProvisionRequests: provisionRequests,
		srv: &http.Server{
			Addr:              listenAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

func (m *MetricsServer) ListenAndServe() error {
	return m.srv.ListenAndServe()
}

func (m *MetricsServer) Shutdown(ctx context.Context) error {
	return m.srv.Shutdown(ctx)
}
