package handler

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gushi-cookie/chan-parser/internal/service"
	"github.com/gushi-cookie/chan-parser/shared/config"
)

// HealthChecker reports whether the storage backing the API is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	catalog service.CatalogService
	thread  service.ThreadService
	health  HealthChecker
	cfg     *config.Config
}

func New(catalog service.CatalogService, thread service.ThreadService, health HealthChecker, cfg *config.Config) *Handler {
	return &Handler{catalog, thread, health, cfg}
}

// parseIntParam parses an integer parameter from a string and returns a meaningful error
func parseIntParam(param string, paramName string) (int64, error) {
	val, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be an integer", paramName)
	}
	return val, nil
}
