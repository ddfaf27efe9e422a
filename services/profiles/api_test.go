package profiles

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"foundermatch-backend/lib/testutil"
	"foundermatch-backend/services/profiles/db"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

func setupApiTest(t *testing.T, opts Options) (*httptest.Server, *db.Queries, func()) {
	result, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "profiles",
		DbSchema: db.Schema,
	})

	router := mux.NewRouter()
	RegisterRoutes(router, NewService(result.DB, opts))
	server := httptest.NewServer(router)

	return server, db.New(result.DB), func() {
		server.Close()
		cleanup()
	}
}

func getJSON(t *testing.T, url string, out any) int {
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	return res.StatusCode
}

func TestApiListProfiles(t *testing.T) {
	server, qry, cleanup := setupApiTest(t, Options{})
	defer cleanup()

	upsert(t, qry, db.UpsertProfileParams{
		UserID: "ada", Name: "Ada Lovelace", Location: "London, UK",
		CreatedAt: 100, UpdatedAt: 100,
	})
	upsert(t, qry, db.UpsertProfileParams{
		UserID: "grace", Name: "Grace Hopper", Location: "New York, US",
		CreatedAt: 200, UpdatedAt: 200,
	})

	var result ListResult
	status := getJSON(t, server.URL+"/api/profiles", &result)
	require.Equal(t, http.StatusOK, status)
	require.EqualValues(t, 2, result.Total)
	require.Len(t, result.Data, 2)

	status = getJSON(t, server.URL+"/api/profiles?name=Ada&limit=10", &result)
	require.Equal(t, http.StatusOK, status)
	require.EqualValues(t, 1, result.Matched)
	require.Equal(t, "ada", result.Data[0].UserId)
}

func TestApiRefreshWithoutCredentials(t *testing.T) {
	server, _, cleanup := setupApiTest(t, Options{})
	defer cleanup()

	var body map[string]string
	status := getJSON(t, server.URL+"/api/refresh", &body)
	require.Equal(t, http.StatusBadRequest, status)
	require.Contains(t, body["error"], "credentials")
}

func TestApiRefreshStatus(t *testing.T) {
	server, qry, cleanup := setupApiTest(t, Options{})
	defer cleanup()

	upsert(t, qry, db.UpsertProfileParams{
		UserID: "ada", Name: "Ada Lovelace", CreatedAt: 100, UpdatedAt: 100,
	})

	var report StatusReport
	status := getJSON(t, server.URL+"/api/refresh/status", &report)
	require.Equal(t, http.StatusOK, status)
	require.EqualValues(t, 1, report.TotalProfiles)
}
