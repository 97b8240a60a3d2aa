package server

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sqrt2Body = `{"func":"x^2 - 2","iterFunc":"(x + 2/x)/2","derivFunc":"2*x","a":0,"b":2,"x0":1,"tol":0.01,"digits":4}`

func startRun(t *testing.T, ts *httptest.Server, body string) (string, map[string]any) {
	t.Helper()
	resp, err := http.Post(ts.URL+"/start", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	id, _ := out["id"].(string)
	require.NotEmpty(t, id)
	return id, out
}

func getResult(t *testing.T, ts *httptest.Server, id string) map[string]any {
	t.Helper()
	resp, err := http.Get(ts.URL + "/result?id=" + id)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestStartRun_Completes(t *testing.T) {
	ts := httptest.NewServer(New(t.TempDir()).Router())
	defer ts.Close()

	id, start := startRun(t, ts, sqrt2Body)
	assert.Len(t, start["xs"], samples)
	assert.Len(t, start["ys"], samples)

	var res map[string]any
	require.Eventually(t, func() bool {
		res = getResult(t, ts, id)
		return res["done"] == true
	}, 5*time.Second, 10*time.Millisecond)

	comparison, ok := res["comparison"].([]any)
	require.True(t, ok)
	require.Len(t, comparison, 5)
	for _, c := range comparison {
		row := c.(map[string]any)
		assert.Equal(t, true, row["converged"], row["method"])
		assert.InDelta(t, 1.4142, row["root"], 0.01)
	}

	resp, err := http.Get(ts.URL + "/export?id=" + id)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))

	rows, err := csv.NewReader(resp.Body).ReadAll()
	require.NoError(t, err)
	require.Greater(t, len(rows), 1)
	assert.Equal(t, []string{"method", "iter", "v1", "v2", "v3", "v4", "v5"}, rows[0])
	assert.Equal(t, []string{"Bisection", "1", "0", "2", "1", "-1", "1"}, rows[1])
	assert.Equal(t, float64(len(rows)-1), getResult(t, ts, id)["records"])
}

// TestStartRun_UndefinedSamples checks that points outside the domain are sent as null.
func TestStartRun_UndefinedSamples(t *testing.T) {
	ts := httptest.NewServer(New(t.TempDir()).Router())
	defer ts.Close()

	_, start := startRun(t, ts, `{"func":"log(x)","iterFunc":"x","derivFunc":"1/x","a":-1,"b":1,"x0":0.5}`)
	ys := start["ys"].([]any)
	assert.Nil(t, ys[0])
	assert.NotNil(t, ys[samples-1])
}

func TestStartRun_BadRequests(t *testing.T) {
	ts := httptest.NewServer(New(t.TempDir()).Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/start")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	for _, body := range []string{
		`{"func":`,
		`{"func":"x","a":2,"b":1}`,
		`{"func":"x +","a":0,"b":1}`,
	} {
		resp, err := http.Post(ts.URL+"/start", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
	}
}

func TestUnknownRun(t *testing.T) {
	ts := httptest.NewServer(New(t.TempDir()).Router())
	defer ts.Close()

	for _, path := range []string{"/export?id=nope", "/result?id=nope"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}

	resp, err := http.Post(ts.URL+"/stop?id=nope", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/export")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStopRun(t *testing.T) {
	ts := httptest.NewServer(New(t.TempDir()).Router())
	defer ts.Close()

	id, _ := startRun(t, ts, sqrt2Body)
	resp, err := http.Post(ts.URL+"/stop?id="+id, "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// the run either finished before the stop or was stopped
	require.Eventually(t, func() bool {
		res := getResult(t, ts, id)
		return res["done"] == true || res["err"] == "stopped"
	}, 5*time.Second, 10*time.Millisecond)
}

func TestStream(t *testing.T) {
	s := New(t.TempDir())
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/stream?id=run-1", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	require.Eventually(t, func() bool { return s.hub.Subscribers("run-1") == 1 },
		time.Second, 5*time.Millisecond)
	s.publish("run-1", map[string]any{"type": "start", "id": "run-1"})

	sc := bufio.NewScanner(resp.Body)
	require.True(t, sc.Scan())
	assert.Equal(t, "event: msg", sc.Text())
	require.True(t, sc.Scan())
	assert.Equal(t, `data: {"id":"run-1","type":"start"}`, sc.Text())
}
