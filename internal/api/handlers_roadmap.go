package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *handler) getRoadmap(w http.ResponseWriter, r *http.Request) {
	steps, err := h.core.GetRoadmap()
	if err != nil {
		writeCoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, steps)
}

func (h *handler) getRoadmapStep(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	step, err := h.core.GetRoadmapStep(id)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, step)
}

func (h *handler) setRoadmapProgress(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		StepID    int64 `json:"stepId"`
		Completed bool  `json:"completed"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	progress, err := h.core.SetRoadmapProgress(requestUser(r).ID, payload.StepID, payload.Completed)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"roadmapProgress": progress})
}
