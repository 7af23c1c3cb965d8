package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_CountsOutcomes(t *testing.T) {
	r := New()
	r.Operation("create_list", OutcomeCommitted)
	r.Operation("create_list", OutcomeCommitted)
	r.Operation("create_list", OutcomeRolledBack)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.Counter("create_list", OutcomeCommitted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Counter("create_list", OutcomeRolledBack)))
}

func TestRecorder_BeginTracksInFlight(t *testing.T) {
	r := New()
	done := r.Begin("fetch_lists")
	assert.Equal(t, 1.0, testutil.ToFloat64(r.inFlight))
	done()
	assert.Equal(t, 0.0, testutil.ToFloat64(r.inFlight))
	assert.Equal(t, 1, testutil.CollectAndCount(r.duration))
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	r.Operation("x", OutcomeFailed)
	r.Begin("x")()

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 404, rec.Code)
}

func TestRecorder_HandlerExposesMetrics(t *testing.T) {
	r := New()
	r.Operation("toggle_item", OutcomeCommitted)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `tote_operations_total{operation="toggle_item",outcome="committed"} 1`))
}
