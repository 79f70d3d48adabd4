package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(log.New(io.Discard)).Router())
	t.Cleanup(srv.Close)
	return srv
}

func TestIndexServed(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "collatz shrub")
}

func TestShrubEndpoint(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/api/shrub?n_starts=5&max_start=100&seed=42&hero=27")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var out jsonResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "binary", out.Rule)
	assert.GreaterOrEqual(t, len(out.Lines), 5)

	last := out.Lines[len(out.Lines)-1]
	assert.True(t, last.Hero, "hero line should be ordered last")
	assert.Equal(t, int64(27), last.Start)
	for _, l := range out.Lines {
		require.NotEmpty(t, l.Points)
		assert.Equal(t, [3]float64{}, l.Points[0], "trajectories start at the origin")
		assert.True(t, strings.HasPrefix(l.Color, "#"))
	}
}

func TestShrubInvalidRule(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/api/shrub?rule=quaternary")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Contains(t, out["error"], "invalid rule")
}

func TestShrubInvalidRange(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/api/shrub?max_start=2&n_starts=5")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestShrubMalformedNumbersDefaulted(t *testing.T) {
	srv := testServer(t)

	// Malformed numeric parameters fall back to defaults instead of
	// failing, but small explicit values still win.
	resp, err := http.Get(srv.URL + "/api/shrub?n_starts=banana&max_start=50&seed=1")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out jsonResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	// Population of [2, 50) clamps the defaulted count.
	assert.LessOrEqual(t, len(out.Lines), 48)
}

func TestShrubSingleFlight(t *testing.T) {
	s := New(log.New(io.Discard))
	s.busy.Store(true)

	req := httptest.NewRequest(http.MethodGet, "/api/shrub?n_starts=2&max_start=20", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
