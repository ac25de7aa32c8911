package observability

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMetricsRecordsRegistrationsAndLookups(t *testing.T) {
	m := NewMetrics()

	m.RecordRegistration("donor")
	m.RecordRegistration("donor")
	m.RecordRegistration("recipient")
	m.RecordMatchLookup(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Registrations.WithLabelValues("donor")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Registrations.WithLabelValues("recipient")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MatchLookups))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/", "GET", 200, time.Millisecond)
		m.RecordError("/", "GET", "NOT_FOUND")
		m.RecordRegistration("donor")
		m.RecordMatchLookup(0)
		m.RecordStatsRefresh("ok")
	})
}

func TestRequestLoggerRecordsRoute(t *testing.T) {
	m := NewMetrics()
	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop(), m))
	app.Get("/donors/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/donors/42", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCount.WithLabelValues("/donors/:id", "GET", "204")))
}
