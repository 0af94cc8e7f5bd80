package api

import (
	"github.com/gushi-cookie/chan-parser/shared/domain"
)

// Request DTOs

// CatalogFilter carries the optional query-string filters of the catalog
// listing endpoints.
type CatalogFilter struct {
	ImageBoard string `validate:"omitempty,alphanum,max=64"`
	Board      string `validate:"omitempty,alphanum,max=64"`
}

// Response DTOs

// CatalogThreadResponse wraps a single composed catalog entry
type CatalogThreadResponse struct {
	Threads domain.CatalogEntry `json:"threads"`
}

// CatalogListResponse wraps the composed catalog listing
type CatalogListResponse struct {
	Threads []domain.CatalogEntry `json:"threads"`
}
