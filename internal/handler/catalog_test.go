package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/gushi-cookie/chan-parser/shared/api"
	"github.com/gushi-cookie/chan-parser/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogEntry(threadId domain.ThreadId) domain.CatalogEntry {
	url := "/cdn/file/42/abc.png"
	thumbnail := "/cdn/thumbnail/42/abc_s.png"
	return domain.CatalogEntry{
		Thread: domain.ThreadSummary{Id: threadId, Board: "g", ImageBoard: "4chan", Number: 1000, Title: "thread"},
		Post:   domain.PostSummary{Id: 7, Number: 2000, Name: "Anonymous", Comment: "hello", IsOp: true},
		File:   &domain.FileSummary{Id: 42, URL: &url, ThumbnailURL: &thumbnail},
	}
}

func TestGetCatalogThreads(t *testing.T) {
	var gotImageBoard, gotBoard string
	catalog := &mockCatalogService{
		ThreadsFunc: func(imageBoard, board string) ([]domain.CatalogEntry, error) {
			gotImageBoard, gotBoard = imageBoard, board
			return []domain.CatalogEntry{catalogEntry(1)}, nil
		},
	}
	h := newTestHandler(catalog, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/catalog-threads?imageBoard=4chan&board=g", nil)
	rr := httptest.NewRecorder()
	h.GetCatalogThreads(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, "4chan", gotImageBoard)
	assert.Equal(t, "g", gotBoard)

	var resp api.CatalogListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Threads, 1)
	assert.EqualValues(t, 1, resp.Threads[0].Thread.Id)
	require.NotNil(t, resp.Threads[0].File)
	require.NotNil(t, resp.Threads[0].File.URL)
	assert.Equal(t, "/cdn/file/42/abc.png", *resp.Threads[0].File.URL)
}

func TestGetCatalogThreadsRejectsBadFilter(t *testing.T) {
	h := newTestHandler(nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/catalog-threads?board=g%2Ftech", nil)
	rr := httptest.NewRecorder()
	h.GetCatalogThreads(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetCatalogThreadsStorageFailureIs500(t *testing.T) {
	catalog := &mockCatalogService{
		ThreadsFunc: func(string, string) ([]domain.CatalogEntry, error) {
			return nil, errStorage
		},
	}
	h := newTestHandler(catalog, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/catalog-threads", nil)
	rr := httptest.NewRecorder()
	h.GetCatalogThreads(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestGetCatalogThread(t *testing.T) {
	catalog := &mockCatalogService{
		ThreadFunc: func(id domain.ThreadId) (*domain.CatalogEntry, error) {
			entry := catalogEntry(id)
			return &entry, nil
		},
	}
	h := newTestHandler(catalog, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/catalog-threads/3", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "3"})
	rr := httptest.NewRecorder()
	h.GetCatalogThread(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	// The single-thread response nests the entry under "threads".
	var resp api.CatalogThreadResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.EqualValues(t, 3, resp.Threads.Thread.Id)
	assert.True(t, resp.Threads.Post.IsOp)
}

func TestGetCatalogThreadInvalidId(t *testing.T) {
	h := newTestHandler(nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/catalog-threads/abc", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "abc"})
	rr := httptest.NewRecorder()
	h.GetCatalogThread(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetCatalogThreadNotFound(t *testing.T) {
	catalog := &mockCatalogService{
		ThreadFunc: func(domain.ThreadId) (*domain.CatalogEntry, error) {
			return nil, notFoundErr()
		},
	}
	h := newTestHandler(catalog, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/catalog-threads/99", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "99"})
	rr := httptest.NewRecorder()
	h.GetCatalogThread(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Thread not found")
}

func TestGetBoards(t *testing.T) {
	catalog := &mockCatalogService{
		BoardsFunc: func(imageBoard, board string) ([]domain.Board, error) {
			return []domain.Board{
				{ImageBoard: "4chan", Name: "g", ThreadsCount: 2},
				{ImageBoard: "2ch", Name: "b", ThreadsCount: 1},
			}, nil
		},
	}
	h := newTestHandler(catalog, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/boards", nil)
	rr := httptest.NewRecorder()
	h.GetBoards(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	// Boards come back as a bare array, not wrapped in an object.
	var boards []domain.Board
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &boards))
	require.Len(t, boards, 2)
	assert.Equal(t, "g", boards[0].Name)
	assert.Equal(t, 2, boards[0].ThreadsCount)
}
