package debugserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/archquery/archquery/internal/cache"
	"github.com/archquery/archquery/internal/store"
	"github.com/archquery/archquery/pkg/archquery"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st, err := store.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return New(archquery.New(), st, nil, zap.NewNop())
}

func newTestServerWithCache(t *testing.T) (*Server, cache.Cache) {
	t.Helper()
	st, err := store.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := cache.NewRedisCacheWithClient(client, cache.DefaultConfig())

	return New(archquery.New(), st, c, zap.NewNop()), c
}

func TestHandleParse_Success(t *testing.T) {
	s := newTestServer(t)
	body, _ := json.Marshal(parseRequest{Input: "quantum"})

	req := httptest.NewRequest(http.MethodPost, "/v1/parse", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var result archquery.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "ti:quantum", result.QueryString)
}

func TestHandleParse_CompileError(t *testing.T) {
	s := newTestServer(t)
	body, _ := json.Marshal(parseRequest{Input: "quantum foo:bar"})

	req := httptest.NewRequest(http.MethodPost, "/v1/parse", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "Unrecognized field: foo")
}

func TestStoredQueryLifecycle(t *testing.T) {
	s := newTestServer(t)

	saveBody, _ := json.Marshal(saveQueryRequest{Name: "daily-cs-ai", Input: "#cs.AI 20 rd", CreatedBy: "hinton"})
	saveReq := httptest.NewRequest(http.MethodPost, "/v1/queries/", bytes.NewReader(saveBody))
	saveRec := httptest.NewRecorder()
	s.ServeHTTP(saveRec, saveReq)
	require.Equal(t, http.StatusCreated, saveRec.Code)

	getReq := httptest.NewRequest(http.MethodGet, "/v1/queries/daily-cs-ai", nil)
	getRec := httptest.NewRecorder()
	s.ServeHTTP(getRec, getReq)
	require.Equal(t, http.StatusOK, getRec.Code)

	listReq := httptest.NewRequest(http.MethodGet, "/v1/queries/?sort=name", nil)
	listRec := httptest.NewRecorder()
	s.ServeHTTP(listRec, listReq)
	require.Equal(t, http.StatusOK, listRec.Code)
	var listed []store.StoredQuery
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)

	delReq := httptest.NewRequest(http.MethodDelete, "/v1/queries/daily-cs-ai", nil)
	delRec := httptest.NewRecorder()
	s.ServeHTTP(delRec, delReq)
	require.Equal(t, http.StatusNoContent, delRec.Code)

	getAgainReq := httptest.NewRequest(http.MethodGet, "/v1/queries/daily-cs-ai", nil)
	getAgainRec := httptest.NewRecorder()
	s.ServeHTTP(getAgainRec, getAgainReq)
	assert.Equal(t, http.StatusNotFound, getAgainRec.Code)
}

func TestHandleSaveQuery_RejectsUncompilableInput(t *testing.T) {
	s := newTestServer(t)
	body, _ := json.Marshal(saveQueryRequest{Name: "bad", Input: "quantum foo:bar", CreatedBy: "hinton"})

	req := httptest.NewRequest(http.MethodPost, "/v1/queries/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleParse_PopulatesAndServesFromCache(t *testing.T) {
	s, c := newTestServerWithCache(t)
	body, _ := json.Marshal(parseRequest{Input: "quantum"})

	_, hit, err := c.Get(context.Background(), "quantum")
	require.NoError(t, err)
	require.False(t, hit, "cache must start empty")

	req := httptest.NewRequest(http.MethodPost, "/v1/parse", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	cached, hit, err := c.Get(context.Background(), "quantum")
	require.NoError(t, err)
	require.True(t, hit, "handleParse must populate the cache on a miss")
	assert.Equal(t, "ti:quantum", cached.QueryString)

	req2 := httptest.NewRequest(http.MethodPost, "/v1/parse", bytes.NewReader(body))
	rec2 := httptest.NewRecorder()
	s.ServeHTTP(rec2, req2)
	require.Equal(t, http.StatusOK, rec2.Code)

	var result archquery.Result
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &result))
	assert.Equal(t, "ti:quantum", result.QueryString)
}
