package desktop

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShayCichocki/shikabom/internal/store/memory"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	s := memory.New()
	srv := NewServer(NewCommands(s, WithConsole(io.Discard)), nil, time.Second)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func post(t *testing.T, ts *httptest.Server, command, body string) (*http.Response, response) {
	t.Helper()
	resp, err := http.Post(ts.URL+"/invoke/"+command, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var r response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&r))
	return resp, r
}

func TestInvokeOverHTTP(t *testing.T) {
	srv, ts := newTestServer(t)

	resp, r := post(t, ts, "add_new_part", `{"inpart":{"part_number":"R1","manufacturer":"Yageo"}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, r.Error)

	resp, r = post(t, ts, "get_mfg", `{"pn":"R1"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `"Yageo"`, string(r.Result))

	assert.Equal(t, 1.0, testutil.ToFloat64(srv.Metrics().Invocations.WithLabelValues("get_mfg", "ok")))
}

func TestInvokeStatusCodes(t *testing.T) {
	_, ts := newTestServer(t)
	post(t, ts, "add_new_part", `{"inpart":{"part_number":"R1"}}`)

	tests := []struct {
		command string
		body    string
		want    int
	}{
		{"nope", `{}`, http.StatusNotFound},
		{"retrieve_part", `{"pn":"X"}`, http.StatusNotFound},
		{"add_new_part", `{"inpart":{"part_number":"R1"}}`, http.StatusConflict},
		{"add_new_part", `{"inpart":{"part_number":""}}`, http.StatusBadRequest},
		{"get_mfg", `not json`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			resp, r := post(t, ts, tt.command, tt.body)
			assert.Equal(t, tt.want, resp.StatusCode)
			assert.NotEmpty(t, r.Error)
		})
	}
}

func TestUnknownCommandsShareMetricLabel(t *testing.T) {
	srv, ts := newTestServer(t)

	for _, name := range []string{"nope", "drop_tables", "x1"} {
		resp, _ := post(t, ts, name, `{}`)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	}

	invocations := srv.Metrics().Invocations
	assert.Equal(t, 1, testutil.CollectAndCount(invocations))
	assert.Equal(t, 3.0, testutil.ToFloat64(invocations.WithLabelValues("unknown", "error")))
	assert.Equal(t, 1, testutil.CollectAndCount(srv.Metrics().Duration))
}

func TestInvokeRequiresPost(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/invoke/fetch_part_data")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHealthAndMetrics(t *testing.T) {
	_, ts := newTestServer(t)
	post(t, ts, "fetch_part_data", ``)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `shikabom_desktop_invocations_total{command="fetch_part_data",result="ok"} 1`)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	srv := NewServer(NewCommands(memory.New()), nil, 0)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
