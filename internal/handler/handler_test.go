package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gushi-cookie/chan-parser/shared/config"
	"github.com/gushi-cookie/chan-parser/shared/domain"
	internal_errors "github.com/gushi-cookie/chan-parser/shared/errors"
)

type mockCatalogService struct {
	ThreadFunc  func(id domain.ThreadId) (*domain.CatalogEntry, error)
	ThreadsFunc func(imageBoard, board string) ([]domain.CatalogEntry, error)
	BoardsFunc  func(imageBoard, board string) ([]domain.Board, error)
}

func (m *mockCatalogService) Thread(id domain.ThreadId) (*domain.CatalogEntry, error) {
	return m.ThreadFunc(id)
}

func (m *mockCatalogService) Threads(imageBoard, board string) ([]domain.CatalogEntry, error) {
	return m.ThreadsFunc(imageBoard, board)
}

func (m *mockCatalogService) Boards(imageBoard, board string) ([]domain.Board, error) {
	return m.BoardsFunc(imageBoard, board)
}

type mockThreadService struct {
	DeleteFunc func(id domain.ThreadId) error
}

func (m *mockThreadService) Delete(id domain.ThreadId) error {
	return m.DeleteFunc(id)
}

type mockHealthChecker struct {
	PingFunc func(ctx context.Context) error
}

func (m *mockHealthChecker) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

func newTestHandler(catalog *mockCatalogService, thread *mockThreadService, health *mockHealthChecker) *Handler {
	if catalog == nil {
		catalog = &mockCatalogService{}
	}
	if thread == nil {
		thread = &mockThreadService{}
	}
	if health == nil {
		health = &mockHealthChecker{}
	}
	return New(catalog, thread, health, &config.Config{})
}

func notFoundErr() error {
	return &internal_errors.ErrorWithStatusCode{
		Message:    "Thread not found",
		StatusCode: http.StatusNotFound,
	}
}

var errStorage = errors.New("storage broke")
