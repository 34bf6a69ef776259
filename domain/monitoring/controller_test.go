package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akeren/sunday-signup/config/router"
	"github.com/akeren/sunday-signup/internal/log"
	"github.com/akeren/sunday-signup/pkg/circuitbreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeProbe struct {
	configured bool
	state      circuitbreaker.CircuitState
}

func (p fakeProbe) Configured() bool                          { return p.configured }
func (p fakeProbe) BreakerState() circuitbreaker.CircuitState { return p.state }

func healthOf(t *testing.T, probe SheetsProbe, emailEnabled bool) (int, HealthStatus) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	rs := router.CreateRouterService(log.NewDiscardLogger(), nil, &router.RouterConfig{
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    5 * time.Second,
	})
	rs.MountController(NewMonitoringController(db, log.NewDiscardLogger(), nil, probe, emailEnabled, nil))

	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body struct {
		Data HealthStatus `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body.Data
}

func TestHealthCheck_ReportsSheetsAndEmail(t *testing.T) {
	code, status := healthOf(t, fakeProbe{configured: true, state: circuitbreaker.Closed}, true)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, status.Database)
	assert.Equal(t, 0, status.Cache)
	assert.Equal(t, 1, status.Storage)
	assert.Equal(t, "closed", status.Breaker)
	assert.Equal(t, 1, status.Email)
}

func TestHealthCheck_OpenBreakerMarksStorageDown(t *testing.T) {
	_, status := healthOf(t, fakeProbe{configured: true, state: circuitbreaker.Open}, false)

	assert.Equal(t, 0, status.Storage)
	assert.Equal(t, "open", status.Breaker)
	assert.Equal(t, 0, status.Email)
}

func TestHealthCheck_TestModeMarksStorageDown(t *testing.T) {
	_, status := healthOf(t, fakeProbe{configured: false, state: circuitbreaker.Closed}, false)

	assert.Equal(t, 0, status.Storage)
}
