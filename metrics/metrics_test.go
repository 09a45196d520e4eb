package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvisionRequestsCounter(t *testing.T) {
	m, err := New(Namespace, "127.0.0.1:0")
	require.NoError(t, err)

	m.ProvisionRequests.WithLabelValues(ResultProvisioned).Inc()
	m.ProvisionRequests.WithLabelValues(ResultProvisioned).Inc()
	m.ProvisionRequests.WithLabelValues(ResultInvalid).Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ProvisionRequests.WithLabelValues(ResultProvisioned)))

	expected := `
# HELP pca_provision_requests_total Provision requests received by the deployment backend.
# TYPE pca_provision_requests_total counter
pca_provision_requests_total{result="invalid"} 1
pca_provision_requests_total{result="provisioned"} 2
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry, strings.NewReader(expected), "pca_provision_requests_total"))
}

func TestNewRegistriesAreIndependent(t *testing.T) {
	_, err := New(Namespace, "")
	require.NoError(t, err)
	_, err = New(Namespace, "")
	require.NoError(t, err)
}
