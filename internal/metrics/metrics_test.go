package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequest("GET", "/api/tasks", 200, 15*time.Millisecond)
	c.RecordRequest("GET", "/api/tasks", 200, 5*time.Millisecond)
	c.RecordRequest("POST", "/api/tasks", 400, time.Millisecond)
	c.RecordCascadeDelete(3)
	c.RecordCascadeDelete(0)
	c.RecordOrphansSwept(2)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.requests.WithLabelValues("GET", "/api/tasks", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("POST", "/api/tasks", "400")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.categoryDeletes))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.cascadedTasks))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.sweptTasks))
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordOrphansSwept(5)

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "taskapi_orphan_tasks_swept_total 5")
}

func TestNop(t *testing.T) {
	var r Recorder = Nop{}
	r.RecordRequest("GET", "/", 200, time.Second)
	r.RecordCascadeDelete(1)
	r.RecordOrphansSwept(1)
}
