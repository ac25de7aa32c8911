package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apihttp "github.com/spec-kit/lifematch-service/internal/api/http"
	"github.com/spec-kit/lifematch-service/internal/api/http/handlers"
	"github.com/spec-kit/lifematch-service/internal/cache"
	"github.com/spec-kit/lifematch-service/internal/events"
	"github.com/spec-kit/lifematch-service/internal/observability"
	"github.com/spec-kit/lifematch-service/internal/persistence"
	"github.com/spec-kit/lifematch-service/internal/repository"
	"github.com/spec-kit/lifematch-service/internal/service"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := repository.NewMemoryStore()
	stats := cache.NewMemoryStatsCache(time.Minute)
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	registration := service.NewRegistrationService(service.RegistrationDependencies{
		DonorRepo:     store.Donors(),
		RecipientRepo: store.Recipients(),
		StatsCache:    stats,
		Dispatcher:    dispatcher,
		Metrics:       metrics,
	})
	matching := service.NewMatchService(service.MatchDependencies{
		DonorRepo:     store.Donors(),
		RecipientRepo: store.Recipients(),
		MatchRepo:     store.Matches(),
		StatsCache:    stats,
		Dispatcher:    dispatcher,
		Metrics:       metrics,
	})
	dashboard := service.NewDashboardService(service.DashboardDependencies{
		DonorRepo:     store.Donors(),
		RecipientRepo: store.Recipients(),
		MatchRepo:     store.Matches(),
		StatsCache:    stats,
	})

	return apihttp.NewApp("lifematch-test", apihttp.RouteConfig{
		Health:        handlers.NewHealthHandler("lifematch-test", "test", &persistence.Postgres{}, &persistence.Redis{}),
		Compatibility: handlers.NewCompatibilityHandler(),
		Donors:        handlers.NewDonorsHandler(registration, matching),
		Recipients:    handlers.NewRecipientsHandler(registration, matching),
		Matches:       handlers.NewMatchesHandler(matching),
		Dashboard:     handlers.NewDashboardHandler(dashboard),
		Metrics:       metrics,
	}, apihttp.MiddlewareConfig{Timeout: 5 * time.Second})
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &env))
	}
	return resp.StatusCode, env
}

func registerDonor(t *testing.T, app *fiber.App, name, bloodType string) string {
	t.Helper()
	status, env := do(t, app, http.MethodPost, "/api/v1/donors", `{
		"name": "`+name+`", "email": "donor@example.org", "phone": "+12125550101",
		"blood_type": "`+bloodType+`", "address": "1 Main St", "city": "New York", "state": "NY",
		"donation_types": ["blood"]
	}`)
	require.Equal(t, http.StatusCreated, status)
	var donor struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &donor))
	return donor.ID
}

func registerRecipient(t *testing.T, app *fiber.App, bloodType, urgency string) string {
	t.Helper()
	status, env := do(t, app, http.MethodPost, "/api/v1/recipients", `{
		"name": "Sarah Johnson", "email": "sarah@example.org", "phone": "+13105550202",
		"blood_type": "`+bloodType+`", "hospital": "St. Mary's Medical Center",
		"location": "Los Angeles, CA", "urgency": "`+urgency+`", "amount_needed": "1.5"
	}`)
	require.Equal(t, http.StatusCreated, status)
	var recipient struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &recipient))
	return recipient.ID
}

func TestHealthEndpoints(t *testing.T) {
	app := newTestApp(t)

	status, _ := do(t, app, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, status)

	status, _ = do(t, app, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, status)
}

func TestCompatibilityEndpoint(t *testing.T) {
	app := newTestApp(t)

	status, env := do(t, app, http.MethodGet, "/api/v1/blood-types/A%2B/compatibility", "")
	require.Equal(t, http.StatusOK, status)

	var body struct {
		BloodType   string   `json:"blood_type"`
		CanReceive  []string `json:"can_receive_from"`
		CanDonateTo []string `json:"can_donate_to"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &body))
	assert.Equal(t, "A+", body.BloodType)
	assert.Equal(t, []string{"O-", "O+", "A-", "A+"}, body.CanReceive)
	assert.Equal(t, []string{"A+", "AB+"}, body.CanDonateTo)

	status, env = do(t, app, http.MethodGet, "/api/v1/blood-types/XY/compatibility", "")
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
}

func TestRegisterDonorValidationErrors(t *testing.T) {
	app := newTestApp(t)

	status, env := do(t, app, http.MethodPost, "/api/v1/donors", `{"name": "", "email": "nope"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	assert.Contains(t, env.Error.Details, "fields")
}

func TestRecipientMatchesFlow(t *testing.T) {
	app := newTestApp(t)

	oNeg := registerDonor(t, app, "O neg", "O-")
	aPos := registerDonor(t, app, "A pos", "A+")
	registerDonor(t, app, "B pos", "B+")
	recipient := registerRecipient(t, app, "A+", "high")

	status, _ := do(t, app, http.MethodPatch, "/api/v1/donors/"+aPos+"/status", `{"status": "unavailable"}`)
	require.Equal(t, http.StatusOK, status)

	status, env := do(t, app, http.MethodGet, "/api/v1/recipients/"+recipient+"/matches", "")
	require.Equal(t, http.StatusOK, status)
	var matches struct {
		CompatibleDonors []struct {
			ID string `json:"id"`
		} `json:"compatible_donors"`
		Contacts []any `json:"contacts"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &matches))
	require.Len(t, matches.CompatibleDonors, 1)
	assert.Equal(t, oNeg, matches.CompatibleDonors[0].ID)
	assert.Empty(t, matches.Contacts)

	status, env = do(t, app, http.MethodPost, "/api/v1/matches", `{"recipient_id": "`+recipient+`", "donor_id": "`+oNeg+`"}`)
	require.Equal(t, http.StatusCreated, status)
	var match struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &match))
	assert.Equal(t, "contacted", match.Status)

	status, _ = do(t, app, http.MethodPatch, "/api/v1/matches/"+match.ID+"/status", `{"status": "matched"}`)
	require.Equal(t, http.StatusOK, status)

	status, env = do(t, app, http.MethodGet, "/api/v1/dashboard/stats", "")
	require.Equal(t, http.StatusOK, status)
	var stats struct {
		ActiveDonors      int `json:"active_donors"`
		TotalDonors       int `json:"total_donors"`
		SuccessfulMatches int `json:"successful_matches"`
		PendingRequests   int `json:"pending_requests"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 2, stats.ActiveDonors)
	assert.Equal(t, 3, stats.TotalDonors)
	assert.Equal(t, 1, stats.SuccessfulMatches)
	assert.Equal(t, 1, stats.PendingRequests)
}

func TestContactIncompatibleDonorConflicts(t *testing.T) {
	app := newTestApp(t)

	donor := registerDonor(t, app, "AB pos", "AB+")
	recipient := registerRecipient(t, app, "O-", "critical")

	status, env := do(t, app, http.MethodPost, "/api/v1/matches", `{"recipient_id": "`+recipient+`", "donor_id": "`+donor+`"}`)
	assert.Equal(t, http.StatusConflict, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CONFLICT", env.Error.Code)
}

func TestListDonorsFilters(t *testing.T) {
	app := newTestApp(t)
	registerDonor(t, app, "O neg", "O-")
	registerDonor(t, app, "A pos", "A+")

	status, env := do(t, app, http.MethodGet, "/api/v1/donors?blood_type=A%2B", "")
	require.Equal(t, http.StatusOK, status)
	var donors []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &donors))
	require.Len(t, donors, 1)
	assert.Equal(t, "A pos", donors[0].Name)

	status, env = do(t, app, http.MethodGet, "/api/v1/donors?status=retired", "")
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
}

func TestUnknownResourcesReturnNotFound(t *testing.T) {
	app := newTestApp(t)

	status, env := do(t, app, http.MethodGet, "/api/v1/recipients/missing", "")
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	status, env = do(t, app, http.MethodGet, "/api/v1/nowhere", "")
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(t)
	registerDonor(t, app, "O neg", "O-")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `lifematch_registrations_total{kind="donor"} 1`)
}
