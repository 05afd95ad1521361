package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/gestion-pro/pkg/metrics"
)

func TestObserve_RegistraContadorPorRuta(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewHTTPMetrics(reg)

	m.Observe("POST", "/api/products/:id/stock", 200, 15*time.Millisecond)
	m.Observe("POST", "/api/products/:id/stock", 409, 3*time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	var total float64
	for _, fam := range families {
		if fam.GetName() != "http_requests_total" {
			continue
		}
		for _, metric := range fam.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
	}
	assert.Equal(t, 2.0, total, "deben contarse ambos requests")
}

func TestObserve_RegistererNil_NoPanic(t *testing.T) {
	m := metrics.NewHTTPMetrics(nil)
	assert.NotPanics(t, func() {
		m.Observe("GET", "/health", 200, time.Millisecond)
	})
}
