package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"stockmentor/pkg/stockmentor"
)

// getTickers returns summaries for the popular-ticker list as a bare array.
func (h *handler) getTickers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.core.TopTickers(r.Context()))
}

func (h *handler) getTickerDetail(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	period := r.URL.Query().Get("period")
	snap, err := h.core.TickerDetail(r.Context(), symbol, period)
	if err != nil {
		writeSymbolError(w, symbol, "failed to fetch stock data", err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

type explainPayload struct {
	Symbol      string                          `json:"symbol"`
	Preferences *stockmentor.ExplainPreferences `json:"preferences,omitempty"`
}

func (h *handler) explainTicker(w http.ResponseWriter, r *http.Request) {
	var payload explainPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if payload.Symbol == "" {
		writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	var stored *stockmentor.UserProfile
	if user := requestUser(r); user != nil {
		stored = &user.Profile
	}

	result, err := h.core.ExplainStock(r.Context(), payload.Symbol, stored, payload.Preferences)
	if err != nil {
		writeSymbolError(w, payload.Symbol, "failed to generate explanation", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
