package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gushi-cookie/chan-parser/shared/utils"
)

// DeleteThread serves DELETE /api/threads/{id}. Removal is physical: the
// thread's posts and files cascade away, unlike the soft deletes the scraper
// records.
func (h *Handler) DeleteThread(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(mux.Vars(r)["id"], "thread ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.thread.Delete(id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
