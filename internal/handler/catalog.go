package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/gushi-cookie/chan-parser/shared/api"
	"github.com/gushi-cookie/chan-parser/shared/utils"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// catalogFilterFromQuery reads and validates the optional listing filters.
func catalogFilterFromQuery(r *http.Request) (api.CatalogFilter, error) {
	filter := api.CatalogFilter{
		ImageBoard: r.URL.Query().Get("imageBoard"),
		Board:      r.URL.Query().Get("board"),
	}
	if err := validate.Struct(filter); err != nil {
		return api.CatalogFilter{}, err
	}
	return filter, nil
}

// GetCatalogThreads serves GET /api/catalog-threads[?imageBoard=...][&board=...]
func (h *Handler) GetCatalogThreads(w http.ResponseWriter, r *http.Request) {
	filter, err := catalogFilterFromQuery(r)
	if err != nil {
		http.Error(w, "invalid filter parameters", http.StatusBadRequest)
		return
	}

	entries, err := h.catalog.Threads(filter.ImageBoard, filter.Board)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, api.CatalogListResponse{Threads: entries})
}

// GetCatalogThread serves GET /api/catalog-threads/{id}
func (h *Handler) GetCatalogThread(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(mux.Vars(r)["id"], "thread ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := h.catalog.Thread(id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, api.CatalogThreadResponse{Threads: *entry})
}

// GetBoards serves GET /api/boards as a raw array of board descriptors.
func (h *Handler) GetBoards(w http.ResponseWriter, r *http.Request) {
	filter, err := catalogFilterFromQuery(r)
	if err != nil {
		http.Error(w, "invalid filter parameters", http.StatusBadRequest)
		return
	}

	boards, err := h.catalog.Boards(filter.ImageBoard, filter.Board)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, boards)
}
