package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/docstore/docstore-service/internal/api/dto"
	"github.com/docstore/docstore-service/internal/api/handlers"
	"github.com/docstore/docstore-service/internal/api/middleware"
	"github.com/docstore/docstore-service/internal/api/routes"
	"github.com/docstore/docstore-service/internal/services/docstore"
	"github.com/docstore/docstore-service/internal/testutil"
)

const base = routes.BasePath + "/collections/contactlist/documents"

func setupRouter(t *testing.T) (*gin.Engine, *docstore.Client) {
	t.Helper()
	client := testutil.NewMemoryClient(t, "contact")
	router := testutil.SetupTestRouter()
	routes.SetupWithMiddleware(router, &routes.Config{
		HealthHandler:    handlers.NewHealthHandler(nil, client),
		DocumentsHandler: handlers.NewDocumentsHandler(client),
		CORS:             middleware.DefaultCORSConfig("http://localhost:3000"),
	}, middleware.NewLoggingMiddlewareWithLogger(zerolog.Nop()), middleware.NewErrorMiddleware())
	return router, client
}

func insertContacts(t *testing.T, router *gin.Engine) []string {
	t.Helper()
	body := `{"documents":[
		{"last_name":"Ben Lahmer","first_name":"Fares","email":"fares@gmail.com","age":26},
		{"last_name":"Kefi","first_name":"Seif","email":"kefi@gmail.com","age":15},
		{"last_name":"Fatnassi","first_name":"Sarra","email":"sarra.f@gmail.com","age":40},
		{"last_name":"Ben Yahia","first_name":"Rym","age":4},
		{"last_name":"Cherif","first_name":"Sami","age":3}
	]}`
	w := testutil.PerformRequest(router, http.MethodPost, base, body, nil)
	testutil.AssertStatusCode(t, http.StatusCreated, w)

	var resp dto.InsertDocumentsResponse
	testutil.ParseJSONResponse(t, w, &resp)
	require.Len(t, resp.InsertedIDs, 5)
	return resp.InsertedIDs
}

func TestInsertAndGetDocument(t *testing.T) {
	router, _ := setupRouter(t)
	ids := insertContacts(t, router)

	w := testutil.PerformRequest(router, http.MethodGet, base+"/"+ids[1], nil, nil)
	testutil.AssertStatusCode(t, http.StatusOK, w)

	var doc map[string]interface{}
	testutil.ParseJSONResponse(t, w, &doc)
	assert.Equal(t, "Seif", doc["first_name"])
	assert.Equal(t, map[string]interface{}{"$oid": ids[1]}, doc["_id"])
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestGetDocument_NotFound(t *testing.T) {
	router, _ := setupRouter(t)
	insertContacts(t, router)

	w := testutil.PerformRequest(router, http.MethodGet, base+"/000000000000000000000000", nil, nil)
	testutil.AssertStatusCode(t, http.StatusNotFound, w)

	var resp dto.ErrorResponse
	testutil.ParseJSONResponse(t, w, &resp)
	assert.Equal(t, "NOT_FOUND", resp.Code)
}

func TestInsertDocuments_InvalidBody(t *testing.T) {
	router, _ := setupRouter(t)

	for _, body := range []string{`{"documents":[]}`, `{"documents":[42]}`, `not json`} {
		w := testutil.PerformRequest(router, http.MethodPost, base, body, nil)
		testutil.AssertStatusCode(t, http.StatusBadRequest, w)
	}
}

func TestFindDocuments_FilterSortLimitExclude(t *testing.T) {
	router, _ := setupRouter(t)
	insertContacts(t, router)

	q := url.Values{}
	q.Set("filter", `{"age":{"$gt":18}}`)
	q.Set("sort", "-age")
	q.Set("limit", "1")
	q.Set("exclude", "email,age")
	w := testutil.PerformRequest(router, http.MethodGet, base+"?"+q.Encode(), nil, nil)
	testutil.AssertStatusCode(t, http.StatusOK, w)

	var resp struct {
		Documents []map[string]interface{} `json:"documents"`
		Count     int                      `json:"count"`
	}
	testutil.ParseJSONResponse(t, w, &resp)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "Sarra", resp.Documents[0]["first_name"])
	assert.NotContains(t, resp.Documents[0], "age")
	assert.NotContains(t, resp.Documents[0], "email")
}

func TestFindDocuments_WithoutFilterListsAll(t *testing.T) {
	router, _ := setupRouter(t)
	insertContacts(t, router)

	w := testutil.PerformRequest(router, http.MethodGet, base, nil, nil)
	testutil.AssertStatusCode(t, http.StatusOK, w)
	var list dto.DocumentsResponse
	testutil.ParseJSONResponse(t, w, &list)
	assert.Equal(t, 5, list.Count)

	w = testutil.PerformRequest(router, http.MethodGet, base+"?filter="+url.QueryEscape("{}"), nil, nil)
	testutil.AssertStatusCode(t, http.StatusOK, w)
	testutil.ParseJSONResponse(t, w, &list)
	assert.Equal(t, 5, list.Count)

	w = testutil.PerformRequest(router, http.MethodPost, base+"/delete", `{"filter":{}}`, nil)
	testutil.AssertStatusCode(t, http.StatusOK, w)
	var deleted dto.DeleteDocumentsResponse
	testutil.ParseJSONResponse(t, w, &deleted)
	assert.Equal(t, int64(5), deleted.Deleted)
}

func TestFindDocuments_InvalidFilter(t *testing.T) {
	router, _ := setupRouter(t)

	w := testutil.PerformRequest(router, http.MethodGet, base+"?filter="+url.QueryEscape("[1,2]"), nil, nil)
	testutil.AssertStatusCode(t, http.StatusBadRequest, w)

	w = testutil.PerformRequest(router, http.MethodGet, base+`?limit=-3`, nil, nil)
	testutil.AssertStatusCode(t, http.StatusBadRequest, w)
}

func TestUpdateDocuments(t *testing.T) {
	router, _ := setupRouter(t)
	ids := insertContacts(t, router)

	body := `{"filter":{"last_name":"Kefi","first_name":"Seif"},"set":{"first_name":"Anis"}}`
	w := testutil.PerformRequest(router, http.MethodPost, base+"/update", body, nil)
	testutil.AssertStatusCode(t, http.StatusOK, w)

	var resp dto.UpdateDocumentsResponse
	testutil.ParseJSONResponse(t, w, &resp)
	assert.Equal(t, dto.UpdateDocumentsResponse{Matched: 1, Modified: 1}, resp)

	w = testutil.PerformRequest(router, http.MethodGet, base+"/"+ids[1], nil, nil)
	var doc map[string]interface{}
	testutil.ParseJSONResponse(t, w, &doc)
	assert.Equal(t, "Anis", doc["first_name"])
	assert.Equal(t, "Kefi", doc["last_name"])

	body = `{"filter":{"age":{"$lt":18}},"set":{"$set":{"minor":true}},"many":true}`
	w = testutil.PerformRequest(router, http.MethodPost, base+"/update", body, nil)
	testutil.AssertStatusCode(t, http.StatusOK, w)
	testutil.ParseJSONResponse(t, w, &resp)
	assert.Equal(t, int64(3), resp.Matched)
}

func TestFindOneAndUpdateEndpoint(t *testing.T) {
	router, _ := setupRouter(t)
	ids := insertContacts(t, router)

	body := `{"filter":{"_id":{"$oid":"` + ids[2] + `"}},"set":{"age":20},"returnUpdated":true}`
	w := testutil.PerformRequest(router, http.MethodPost, base+"/find-one-and-update", body, nil)
	testutil.AssertStatusCode(t, http.StatusOK, w)

	var doc map[string]interface{}
	testutil.ParseJSONResponse(t, w, &doc)
	assert.EqualValues(t, 20, doc["age"])

	body = `{"filter":{"first_name":"Nobody"},"set":{"age":20}}`
	w = testutil.PerformRequest(router, http.MethodPost, base+"/find-one-and-update", body, nil)
	testutil.AssertStatusCode(t, http.StatusNotFound, w)
}

func TestDeleteEndpoints(t *testing.T) {
	router, _ := setupRouter(t)
	ids := insertContacts(t, router)

	w := testutil.PerformRequest(router, http.MethodPost, base+"/delete", `{"filter":{"age":{"$lt":5}}}`, nil)
	testutil.AssertStatusCode(t, http.StatusOK, w)
	var resp dto.DeleteDocumentsResponse
	testutil.ParseJSONResponse(t, w, &resp)
	assert.Equal(t, int64(2), resp.Deleted)

	w = testutil.PerformRequest(router, http.MethodDelete, base+"/"+ids[0], nil, nil)
	testutil.AssertStatusCode(t, http.StatusOK, w)

	w = testutil.PerformRequest(router, http.MethodDelete, base+"/"+ids[0], nil, nil)
	testutil.AssertStatusCode(t, http.StatusNotFound, w)

	w = testutil.PerformRequest(router, http.MethodGet, base, nil, nil)
	testutil.AssertStatusCode(t, http.StatusOK, w)
	var list dto.DocumentsResponse
	testutil.ParseJSONResponse(t, w, &list)
	assert.Equal(t, 2, list.Count)
}

func TestClosedStoreIsServiceUnavailable(t *testing.T) {
	router, client := setupRouter(t)
	require.NoError(t, client.Close(context.Background()))

	w := testutil.PerformRequest(router, http.MethodGet, base, nil, nil)
	testutil.AssertStatusCode(t, http.StatusServiceUnavailable, w)

	var resp dto.ErrorResponse
	testutil.ParseJSONResponse(t, w, &resp)
	assert.Equal(t, "CONNECTION_CLOSED", resp.Code)
}

func TestHealth(t *testing.T) {
	router, _ := setupRouter(t)

	w := testutil.PerformRequest(router, http.MethodGet, routes.BasePath+"/health", nil, nil)
	testutil.AssertStatusCode(t, http.StatusOK, w)
	var resp dto.HealthResponse
	testutil.ParseJSONResponse(t, w, &resp)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, map[string]string{"docdb": "healthy"}, resp.Components)

	w = testutil.PerformRequest(router, http.MethodGet, routes.BasePath+"/live", nil, nil)
	testutil.AssertStatusCode(t, http.StatusOK, w)
}

func TestHealth_UnhealthyCache(t *testing.T) {
	cacheMock := &testutil.MockCache{}
	cacheMock.On("Ping", mock.Anything).Return(errors.New("connection refused"))
	store := testutil.NewMockDocDBClient()
	store.On("Ping", mock.Anything).Return(nil)

	router := testutil.SetupTestRouter()
	h := handlers.NewHealthHandler(cacheMock, store)
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)

	w := testutil.PerformRequest(router, http.MethodGet, "/health", nil, nil)
	testutil.AssertStatusCode(t, http.StatusServiceUnavailable, w)
	var resp dto.HealthResponse
	testutil.ParseJSONResponse(t, w, &resp)
	assert.Equal(t, "unhealthy", resp.Components["cache"])
	assert.Equal(t, "healthy", resp.Components["docdb"])

	w = testutil.PerformRequest(router, http.MethodGet, "/ready", nil, nil)
	testutil.AssertStatusCode(t, http.StatusServiceUnavailable, w)
}

func TestUnknownRoute(t *testing.T) {
	router, _ := setupRouter(t)

	w := testutil.PerformRequest(router, http.MethodGet, "/nope", nil, nil)
	testutil.AssertStatusCode(t, http.StatusNotFound, w)
}
