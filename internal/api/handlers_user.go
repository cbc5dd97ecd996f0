package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"stockmentor/pkg/stockmentor"
)

func (h *handler) getProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, requestUser(r))
}

// updateProfile applies a partial update; absent fields keep their
// stored values.
func (h *handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var payload stockmentor.UserProfile
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	user, err := h.core.UpdateProfile(requestUser(r).ID, payload)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *handler) getWatchlist(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.core.WatchlistData(r.Context(), requestUser(r).ID)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (h *handler) addToWatchlist(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Symbol string `json:"symbol"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.core.ValidateSymbol(r.Context(), payload.Symbol); err != nil {
		writeCoreError(w, err)
		return
	}
	watchlist, err := h.core.AddToWatchlist(requestUser(r).ID, payload.Symbol)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"watchlist": watchlist})
}

func (h *handler) removeFromWatchlist(w http.ResponseWriter, r *http.Request) {
	watchlist, err := h.core.RemoveFromWatchlist(requestUser(r).ID, chi.URLParam(r, "symbol"))
	if err != nil {
		writeCoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"watchlist": watchlist})
}
