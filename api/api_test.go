package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vicrail "vicrail.dev/vicrail"
	"vicrail.dev/vicrail/api"
	"vicrail.dev/vicrail/model"
	"vicrail.dev/vicrail/testutil"
)

type staticProvider struct {
	snapshot *vicrail.Snapshot
}

func (p staticProvider) Snapshot() (*vicrail.Snapshot, error) {
	if p.snapshot == nil {
		return nil, vicrail.ErrNoSnapshot
	}
	return p.snapshot, nil
}

func fixtureTtbl() []string {
	return []string{
		"[timetable]",
		"version: 2",
		"created: 2022-12-20",
		"id: 10",
		"line: 1",
		"type: main",
		"begins: *",
		"ends: *",
		"",
		"[up-direct, MTWTFSS]",
		"1153 pakenham        5:01 8:01",
		"1049 dandenong       5:20 8:16",
		"1030 caulfield       5:40 8:30",
		"1162 richmond        5:55 8:45",
		"1071 flinders-street 6:05 8:55",
	}
}

func testHandler(t *testing.T) http.Handler {
	snapshot := testutil.BuildSnapshot(t, map[string][]string{
		"timetables/10-pakenham.ttbl": fixtureTtbl(),
	})
	return api.NewServer(staticProvider{snapshot}).Handler()
}

func get(t *testing.T, handler http.Handler, path string,
	params map[string]string) *httptest.ResponseRecorder {

	t.Helper()
	query := url.Values{}
	for k, v := range params {
		query.Set(k, v)
	}
	req := httptest.NewRequest("GET", path+"?"+query.Encode(), nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func departureParams(overrides map[string]string) map[string]string {
	params := map[string]string{
		"stop":    fmt.Sprint(testutil.StopCaulfield),
		"time":    time.Now().UTC().Format(time.RFC3339),
		"count":   "2",
		"reverse": "false",
		"hash":    "test-hash",
	}
	for k, v := range overrides {
		if v == "" {
			delete(params, k)
		} else {
			params[k] = v
		}
	}
	return params
}

func TestHealth(t *testing.T) {
	handler := testHandler(t)
	rec := get(t, handler, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	empty := api.NewServer(staticProvider{}).Handler()
	rec = get(t, empty, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestNoSnapshotGives503(t *testing.T) {
	handler := api.NewServer(staticProvider{}).Handler()

	for _, path := range []string{"/network/v1", "/service/v1", "/departures/v1"} {
		rec := get(t, handler, path, nil)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, path)
	}
}

func TestNetworkV1(t *testing.T) {
	handler := testHandler(t)
	rec := get(t, handler, "/network/v1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var payload struct {
		Hash  string `json:"hash"`
		Stops []struct {
			ID        int    `json:"id"`
			Name      string `json:"name"`
			URLName   string `json:"urlName"`
			Platforms []struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"platforms"`
		} `json:"stops"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))

	assert.Equal(t, "test-hash", payload.Hash)
	assert.Len(t, payload.Stops, 13)
	for _, stop := range payload.Stops {
		assert.NotEmpty(t, stop.Name)
		assert.NotEmpty(t, stop.Platforms)
	}
}

func TestServiceV1(t *testing.T) {
	handler := testHandler(t)

	id, err := model.ComposeServiceID(10, 2, 0)
	require.NoError(t, err)

	rec := get(t, handler, "/service/v1", map[string]string{
		"id": id.String(), "hash": "stale-hash",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Service struct {
			ID    string `json:"id"`
			Line  int    `json:"line"`
			Stops []struct {
				Stop     int     `json:"stop"`
				TimeUTC  string  `json:"timeUTC"`
				Platform *string `json:"platform"`
			} `json:"stops"`
		} `json:"service"`
		Network *struct {
			Hash string `json:"hash"`
		} `json:"network"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))

	assert.Equal(t, id.String(), payload.Service.ID)
	assert.Equal(t, 1, payload.Service.Line)
	require.Len(t, payload.Service.Stops, 5)
	for _, stop := range payload.Service.Stops {
		_, err := time.Parse(time.RFC3339, stop.TimeUTC)
		assert.NoError(t, err)
		require.NotNil(t, stop.Platform)
		assert.Equal(t, "1", *stop.Platform)
	}

	// The client's hash is stale, so the network comes along.
	require.NotNil(t, payload.Network)
	assert.Equal(t, "test-hash", payload.Network.Hash)
}

func TestServiceV1NetworkOmittedWhenHashMatches(t *testing.T) {
	handler := testHandler(t)

	id, err := model.ComposeServiceID(10, 2, 0)
	require.NoError(t, err)

	rec := get(t, handler, "/service/v1", map[string]string{
		"id": id.String(), "hash": "test-hash",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Network json.RawMessage `json:"network"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "null", string(payload.Network))
}

func TestServiceV1Errors(t *testing.T) {
	handler := testHandler(t)

	rec := get(t, handler, "/service/v1", map[string]string{"hash": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "The \"id\" parameter was missing from the request.\n", rec.Body.String())

	rec = get(t, handler, "/service/v1", map[string]string{"id": "000000"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "The \"hash\" parameter was missing from the request.\n", rec.Body.String())

	rec = get(t, handler, "/service/v1", map[string]string{"id": "NOPE", "hash": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "\"NOPE\" is not a valid service ID.\n", rec.Body.String())

	// Valid ID shape, but no timetable 1295 exists.
	rec = get(t, handler, "/service/v1", map[string]string{"id": "zzzzzz", "hash": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No service with ID \"zzzzzz\" found.\n", rec.Body.String())
}

func TestDeparturesV1(t *testing.T) {
	handler := testHandler(t)

	rec := get(t, handler, "/departures/v1", departureParams(nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Departures []struct {
			Stop      int    `json:"stop"`
			TimeUTC   string `json:"timeUTC"`
			Line      int    `json:"line"`
			Service   string `json:"service"`
			Direction string `json:"direction"`
			Stops     []struct {
				Stop int `json:"stop"`
			} `json:"stops"`
		} `json:"departures"`
		Network json.RawMessage `json:"network"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))

	require.Len(t, payload.Departures, 2)
	previous := ""
	for _, d := range payload.Departures {
		assert.Equal(t, testutil.StopCaulfield, d.Stop)
		assert.Equal(t, 1, d.Line)
		assert.Equal(t, "up-direct", d.Direction)
		assert.Len(t, d.Stops, 5)
		_, err := model.ParseServiceID(d.Service)
		assert.NoError(t, err)

		when, err := time.Parse(time.RFC3339, d.TimeUTC)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, d.TimeUTC, previous)
		assert.False(t, when.Before(time.Now().Add(-time.Minute)))
		previous = d.TimeUTC
	}

	// Matching hash keeps the network out of the response.
	assert.Equal(t, "null", string(payload.Network))
}

func TestDeparturesV1IncludesNetworkWhenStale(t *testing.T) {
	handler := testHandler(t)

	rec := get(t, handler, "/departures/v1",
		departureParams(map[string]string{"hash": "old-hash"}))
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Network *struct {
			Hash string `json:"hash"`
		} `json:"network"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.NotNil(t, payload.Network)
	assert.Equal(t, "test-hash", payload.Network.Hash)
}

func TestDeparturesV1Errors(t *testing.T) {
	handler := testHandler(t)

	badRequest := func(params map[string]string, want string) {
		t.Helper()
		rec := get(t, handler, "/departures/v1", departureParams(params))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, want+"\n", rec.Body.String())
	}

	badRequest(map[string]string{"stop": ""},
		"The \"stop\" parameter was missing from the request.")
	badRequest(map[string]string{"time": ""},
		"The \"time\" parameter was missing from the request.")
	badRequest(map[string]string{"count": ""},
		"The \"count\" parameter was missing from the request.")
	badRequest(map[string]string{"reverse": ""},
		"The \"reverse\" parameter was missing from the request.")
	badRequest(map[string]string{"hash": ""},
		"The \"hash\" parameter was missing from the request.")

	badRequest(map[string]string{"stop": "caulfield"},
		"\"caulfield\" is not a valid stop ID.")
	badRequest(map[string]string{"time": "today"},
		"\"today\" is not a valid ISO8601 time.")
	badRequest(map[string]string{"count": "zero"},
		"\"zero\" is not a positive integer.")
	badRequest(map[string]string{"count": "0"},
		"\"0\" is not a positive integer.")
	badRequest(map[string]string{"count": "51"},
		"50 is the limit for count, so 51 is not allowed.")
	badRequest(map[string]string{"reverse": "maybe"},
		"\"maybe\" is not a boolean value.")
	badRequest(map[string]string{"stop": "9999"},
		"No stop with ID 9999 found.")

	farFuture := time.Now().AddDate(0, 0, 101).UTC().Format(time.RFC3339)
	badRequest(map[string]string{"time": farFuture},
		"Cannot get departures over 100 days in the past/future.")
}

func TestDeparturesV1CustomLimits(t *testing.T) {
	snapshot := testutil.BuildSnapshot(t, map[string][]string{
		"timetables/10-pakenham.ttbl": fixtureTtbl(),
	})
	server := api.NewServer(staticProvider{snapshot})
	server.MaxDepartures = 5
	server.MaxQueryDays = 3
	handler := server.Handler()

	rec := get(t, handler, "/departures/v1",
		departureParams(map[string]string{"count": "6"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "5 is the limit for count, so 6 is not allowed.\n", rec.Body.String())

	nearFuture := time.Now().AddDate(0, 0, 4).UTC().Format(time.RFC3339)
	rec = get(t, handler, "/departures/v1",
		departureParams(map[string]string{"time": nearFuture}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Cannot get departures over 3 days in the past/future.\n", rec.Body.String())
}
