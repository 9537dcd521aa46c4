package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/face-kiosk/internal/registry"
)

// PeopleHandler serves the local person registry under /api.
type PeopleHandler struct {
	store registry.Store
}

// NewPeopleHandler creates a people handler backed by the given store.
func NewPeopleHandler(store registry.Store) *PeopleHandler {
	return &PeopleHandler{store: store}
}

// List returns all registered people.
func (h *PeopleHandler) List(w http.ResponseWriter, r *http.Request) {
	people, err := h.store.List()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to read registry")
		return
	}
	if people == nil {
		people = []registry.Person{}
	}

	respondJSON(w, http.StatusOK, map[string]any{"people": people})
}

// RegisterRequest is the request body for registering a person locally.
type RegisterRequest struct {
	Name       string    `json:"name"`
	Descriptor []float64 `json:"descriptor"`
}

// Register upserts a person record. Re-registering a name that differs only
// in case or whitespace replaces the existing descriptor.
func (h *PeopleHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	count, err := h.store.Upsert(req.Name, req.Descriptor)
	if err != nil {
		if errors.Is(err, registry.ErrInvalidInput) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to write registry")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"ok": true, "count": count})
}

// Delete removes every record matching the name URL parameter. Deleting a
// name that does not exist still succeeds and reports the current count.
func (h *PeopleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}

	count, err := h.store.Remove(name)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update registry")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"ok": true, "count": count})
}
