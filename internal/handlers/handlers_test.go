package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ElephaSolutions/rtoappfrontend/internal/backend"
	"github.com/ElephaSolutions/rtoappfrontend/internal/branding"
	"github.com/ElephaSolutions/rtoappfrontend/internal/config"
	"github.com/ElephaSolutions/rtoappfrontend/internal/models"
)

const testBranding = `{
  "default": {
    "logo": "/logos/default.png",
    "brandName": "Vehicle Records",
    "theme": {"primary": "#2563EB", "secondary": "#3B82F6", "accent": "#059669", "background": "#F8FAFC"}
  },
  "sharma-transports": {
    "logo": "/logos/sharma-transports.png",
    "brandName": "Sharma Transports",
    "theme": {"primary": "#B91C1C", "secondary": "#EF4444", "accent": "#D97706", "background": "#FEF2F2"}
  }
}`

func newTestRouter(t *testing.T, backendHandler http.Handler) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server := httptest.NewServer(backendHandler)
	t.Cleanup(server.Close)

	brandingPath := filepath.Join(t.TempDir(), "business-config.json")
	require.NoError(t, os.WriteFile(brandingPath, []byte(testBranding), 0o644))

	logger := zap.NewNop()
	cfg := &config.Config{
		Server: config.ServerConfig{
			TemplatesGlob: "../../web/templates/*.html",
			LoginPath:     "/login",
		},
		Backend: config.BackendConfig{
			BaseURL: server.URL,
			Timeout: 5 * time.Second,
		},
	}

	store := branding.NewStore(brandingPath, "default", logger)
	client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, logger)
	return NewRouter(cfg, client, store, logger)
}

func listBackend(t *testing.T, total int, vehicles []models.VehicleRecord) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/vehicle", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.VehicleListPage{Vehicles: vehicles, TotalVehicles: total})
	})
	return mux
}

func sampleVehicles() []models.VehicleRecord {
	return []models.VehicleRecord{
		{
			VehicleNumber:                  "KA05MX1234",
			FcExpiryDate:                   "2020-01-01",
			InsuranceExpiryDate:            time.Now().AddDate(1, 0, 0).Format("2006-01-02"),
			PermitExpiryDate:               time.Now().AddDate(1, 0, 0).Format("2006-01-02"),
			TaxDueDate:                     time.Now().AddDate(1, 0, 0).Format("2006-01-02"),
			PollutionCertificateExpiryDate: time.Now().AddDate(1, 0, 0).Format("2006-01-02"),
			ContactNumber:                  "+919876543210",
		},
		{
			VehicleNumber:                  "UP12AB5678",
			FcExpiryDate:                   time.Now().AddDate(1, 0, 0).Format("2006-01-02"),
			InsuranceExpiryDate:            time.Now().AddDate(1, 0, 0).Format("2006-01-02"),
			PermitExpiryDate:               time.Now().AddDate(1, 0, 0).Format("2006-01-02"),
			TaxDueDate:                     time.Now().AddDate(1, 0, 0).Format("2006-01-02"),
			PollutionCertificateExpiryDate: time.Now().AddDate(1, 0, 0).Format("2006-01-02"),
			ContactNumber:                  "+918887776665",
		},
	}
}

func TestDashboardRendersStatsAndActivity(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/vehicle/metadata", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.FleetMetadata{TotalVehicles: 24, ExpiringSoon: 6})
	})
	mux.HandleFunc("/api/v1/vehicle/recent-activity", func(w http.ResponseWriter, r *http.Request) {
		entries := []map[string]interface{}{
			{"revisionType": "ADD", "vehicleNumber": "KA05MX1234", "timestamp": time.Now().Add(-90 * time.Minute).UTC().Format(time.RFC3339)},
			{"revisionType": "DELETE", "vehicleNumber": "UP12AB5678", "timestamp": time.Now().Add(-30 * time.Second).UTC().Format(time.RFC3339)},
		}
		json.NewEncoder(w).Encode(entries)
	})
	router := newTestRouter(t, mux)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Welcome to Vehicle Records")
	assert.Contains(t, body, ">24<")
	assert.Contains(t, body, ">6<")
	assert.Contains(t, body, "Vehicle KA05MX1234 Added")
	assert.Contains(t, body, "2 hours ago")
	assert.Contains(t, body, "Vehicle UP12AB5678 deleted")
}

func TestDashboardDegradesWhenBackendDown(t *testing.T) {
	router := newTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to load dashboard data")
}

func TestBrandingSelectedByClientQuery(t *testing.T) {
	mux := http.NewServeMux()
	router := newTestRouter(t, mux)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?client=sharma-transports", nil))

	body := w.Body.String()
	assert.Contains(t, body, "Sharma Transports")
	assert.Contains(t, body, "#B91C1C")
}

func TestBrandingUnknownClientFallsBack(t *testing.T) {
	router := newTestRouter(t, http.NewServeMux())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?client=acme", nil))

	assert.Contains(t, w.Body.String(), "Vehicle Records")
}

func TestVehicleTableRendersRowsAndBadges(t *testing.T) {
	router := newTestRouter(t, listBackend(t, 24, sampleVehicles()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vehicle/view", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "KA05MX1234")
	assert.Contains(t, body, "UP12AB5678")
	assert.Contains(t, body, "24 vehicles found")
	assert.Contains(t, body, "Expired")
	assert.Contains(t, body, "Valid")
	assert.Contains(t, body, "Page 1 of 3")
	assert.Contains(t, body, "Next")
}

func TestVehicleTableSearchFiltersFetchedRows(t *testing.T) {
	router := newTestRouter(t, listBackend(t, 2, sampleVehicles()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vehicle/view?q=ka05", nil))

	body := w.Body.String()
	assert.Contains(t, body, "KA05MX1234")
	assert.NotContains(t, body, "UP12AB5678")
}

func TestVehicleTableUnauthorizedRedirectsToLogin(t *testing.T) {
	router := newTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vehicle/view", nil))

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestVehicleTableClampsOutOfRangePage(t *testing.T) {
	router := newTestRouter(t, listBackend(t, 24, nil))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vehicle/view?page=99", nil))

	require.Equal(t, http.StatusSeeOther, w.Code)
	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/vehicle/view", location.Path)
	assert.Equal(t, "3", location.Query().Get("page"))
}

func TestVehicleTableEditOverlayPrefillsForm(t *testing.T) {
	router := newTestRouter(t, listBackend(t, 2, sampleVehicles()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vehicle/view?edit=KA05MX1234", nil))

	body := w.Body.String()
	assert.Contains(t, body, `value="KA05MX1234"`)
	assert.Contains(t, body, `value="2020-01-01"`)
	assert.Contains(t, body, `name="return" value="/vehicle/view"`)
}

func TestShowVehicleForm(t *testing.T) {
	router := newTestRouter(t, http.NewServeMux())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vehicle", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Add Vehicle Record")
}

func postForm(router *gin.Engine, path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func vehicleFormValues() url.Values {
	return url.Values{
		"vehicleNo":      {"KA05MX1234"},
		"fitnessValid":   {"2026-10-01"},
		"insuranceValid": {"2026-11-15"},
		"permitValid":    {"2027-01-20"},
		"taxValid":       {"2026-09-30"},
		"pucValid":       {"2026-12-05"},
		"contactNumber":  {"+919876543210"},
	}
}

func TestSubmitVehicleFormValidationFailureRetainsValues(t *testing.T) {
	backendCalled := false
	router := newTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backendCalled = true
	}))

	values := vehicleFormValues()
	values.Set("fitnessValid", "")
	w := postForm(router, "/vehicle", values)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "fitnessValid")
	assert.Contains(t, body, `value="KA05MX1234"`)
	// Validation failures never reach the network
	assert.False(t, backendCalled)
}

func TestSubmitVehicleFormPhoneValidation(t *testing.T) {
	router := newTestRouter(t, http.NewServeMux())

	values := vehicleFormValues()
	values.Set("contactNumber", "0123")
	w := postForm(router, "/vehicle", values)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "valid phone number")
}

func TestSubmitVehicleFormSuccessRedirectsWithNotice(t *testing.T) {
	var received models.VehicleRecord
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/vehicle", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	})
	router := newTestRouter(t, mux)

	w := postForm(router, "/vehicle", vehicleFormValues())

	require.Equal(t, http.StatusSeeOther, w.Code)
	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/vehicle", location.Path)
	assert.Contains(t, location.Query().Get("notice"), "saved successfully")
	assert.Equal(t, "KA05MX1234", received.VehicleNumber)
	assert.Equal(t, "2026-10-01", received.FcExpiryDate)
}

func TestSubmitVehicleFormBackendFailureRetainsValues(t *testing.T) {
	router := newTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	w := postForm(router, "/vehicle", vehicleFormValues())

	require.Equal(t, http.StatusBadGateway, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Failed to save vehicle record")
	assert.Contains(t, body, `value="KA05MX1234"`)
}

func TestSubmitVehicleFormUnauthorizedRedirectsToLogin(t *testing.T) {
	router := newTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	w := postForm(router, "/vehicle", vehicleFormValues())

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestDeleteVehicleRedirectsBackToTable(t *testing.T) {
	deleted := ""
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/vehicle", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		deleted = r.Header.Get("vehicle_number")
		w.WriteHeader(http.StatusNoContent)
	})
	router := newTestRouter(t, mux)

	w := postForm(router, "/vehicle/delete", url.Values{
		"vehicle_number": {"KA05MX1234"},
		"page":           {"2"},
	})

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "KA05MX1234", deleted)
	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/vehicle/view", location.Path)
	assert.Equal(t, "2", location.Query().Get("page"))
	assert.Contains(t, location.Query().Get("notice"), "deleted successfully")
}

func TestDeleteVehicleFailureCarriesAlert(t *testing.T) {
	router := newTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	w := postForm(router, "/vehicle/delete", url.Values{"vehicle_number": {"KA05MX1234"}})

	require.Equal(t, http.StatusSeeOther, w.Code)
	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Contains(t, location.Query().Get("alert"), "Failed to delete vehicle KA05MX1234")
	assert.Empty(t, location.Query().Get("notice"))
}

func TestLogoutRedirectsToLogin(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router := newTestRouter(t, mux)

	w := postForm(router, "/logout", url.Values{})

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestLogoutFailureShowsErrorPage(t *testing.T) {
	router := newTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	w := postForm(router, "/logout", url.Values{})

	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Error calling logout")
}

func TestNotFound(t *testing.T) {
	router := newTestRouter(t, http.NewServeMux())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/license", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "404")
}

func TestLicensePlaceholder(t *testing.T) {
	router := newTestRouter(t, http.NewServeMux())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/license/view", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Coming Soon")
}

func TestRequestIDHeaderEchoed(t *testing.T) {
	router := newTestRouter(t, http.NewServeMux())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/license/view", nil))

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
