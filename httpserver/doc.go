/*
Package httpserver runs the reference deployment backend.

It wraps API handlers (see api/deployhandler) in a chi router with access
logging, and adds the operational endpoints expected by load balancers:

  - GET /livez - Liveness check
  - GET /readyz - Readiness check, also failing while storage is unavailable
  - GET /drain - Mark server as not ready
  - GET /undrain - Mark server as ready

Prometheus metrics are served by a separate listener on MetricsAddr.

# Example Usage

	m, _ := metrics.New(metrics.Namespace, ":9090")
	handler := deployhandler.NewHandler(store, m.ProvisionRequests, logger)

	server, err := httpserver.New(&httpserver.HTTPServerConfig{
		ListenAddr:               ":8080",
		MetricsAddr:              ":9090",
		Metrics:                  m,
		Log:                      logger,
		ReadinessCheck:           store.Available,
		DrainDuration:            30 * time.Second,
		GracefulShutdownDuration: 30 * time.Second,
		ReadTimeout:              5 * time.Second,
		WriteTimeout:             10 * time.Second,
	}, handler)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	server.RunInBackground()
	defer server.Shutdown()
*/
package httpserver
