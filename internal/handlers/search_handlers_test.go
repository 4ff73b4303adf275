package handlers_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agileboard/backend/internal/handlers"
)

func TestSearch_RequiresQuery(t *testing.T) {
	t.Parallel()

	h := &handlers.SearchHandler{Index: "tasks"}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/tasks/search", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Search(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	assert.Equal(t, http.StatusUnprocessableEntity, he.Code)
}

func TestSearch_QueriesTaskIndex(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotBody []byte
	fake := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"hits":{"total":{"value":1},"hits":[{"_source":{"id":3,"title":"Fix login","project_id":1}}]}}`)
	}))
	defer fake.Close()

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{fake.URL}})
	require.NoError(t, err)

	h := &handlers.SearchHandler{ES: client, Index: "tasks"}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/tasks/search?q=login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Search(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "/tasks/_search", gotPath)
	assert.Contains(t, string(gotBody), "multi_match")
	assert.Contains(t, string(gotBody), "login")

	assert.Contains(t, rec.Body.String(), `"total":1`)
	assert.Contains(t, rec.Body.String(), "Fix login")
}
