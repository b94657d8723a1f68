package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/toolshelf/internal/catalog"
	"github.com/MrSnakeDoc/toolshelf/internal/domain"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/toolshelf/internal/logger"
)

const (
	msgMissingFields = "Missing required fields"
	msgNotFound      = "Tool not found"
	msgInvalidJSON   = "Invalid JSON body"
	msgTooLarge      = "Request body too large"
	msgReadTools     = "Failed to read tools"
	msgReadTool      = "Failed to read tool"
	msgCreateTool    = "Failed to create tool"
	msgUpdateTool    = "Failed to update tool"
	msgDeleteTool    = "Failed to delete tool"
)

// ListTools serves GET /api/tools?category=&pricing=&featured=true&q=.
// featuredOnly=true is accepted as an alias of featured=true.
func ListTools(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := domain.Filter{
			Category:     q.Get("category"),
			Pricing:      q.Get("pricing"),
			FeaturedOnly: q.Get("featured") == "true" || q.Get("featuredOnly") == "true",
			Query:        q.Get("q"),
		}

		tools, err := d.Catalog.List(r.Context(), filter)
		if err != nil {
			requestLogger(d, r).Error("failed to list tools", logger.Error(err))
			writeError(w, http.StatusInternalServerError, msgReadTools)
			return
		}
		writeJSON(w, http.StatusOK, tools)
	}
}

// GetTool serves GET /api/tools/{id}.
func GetTool(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		tool, err := d.Catalog.Get(r.Context(), id)
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, tool)
		case errors.Is(err, catalog.ErrNotFound):
			writeError(w, http.StatusNotFound, msgNotFound)
		default:
			requestLogger(d, r).Error("failed to read tool", logger.String("id", id), logger.Error(err))
			writeError(w, http.StatusInternalServerError, msgReadTool)
		}
	}
}

// CreateTool serves POST /api/tools.
func CreateTool(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := readJSONBody(w, r)
		if !ok {
			return
		}
		in, err := domain.DecodeCreateInput(body)
		if err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidJSON)
			return
		}

		tool, err := d.Catalog.Create(r.Context(), in)
		switch {
		case err == nil:
			writeJSON(w, http.StatusCreated, tool)
		case errors.Is(err, catalog.ErrValidation):
			writeError(w, http.StatusBadRequest, msgMissingFields)
		default:
			requestLogger(d, r).Error("failed to create tool", logger.Error(err))
			writeError(w, http.StatusInternalServerError, msgCreateTool)
		}
	}
}

// UpdateTool serves PUT /api/tools/{id}.
func UpdateTool(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		body, ok := readJSONBody(w, r)
		if !ok {
			return
		}
		patch, err := domain.DecodePatch(body)
		if err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidJSON)
			return
		}

		tool, err := d.Catalog.Update(r.Context(), id, patch)
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, tool)
		case errors.Is(err, catalog.ErrNotFound):
			writeError(w, http.StatusNotFound, msgNotFound)
		default:
			requestLogger(d, r).Error("failed to update tool", logger.String("id", id), logger.Error(err))
			writeError(w, http.StatusInternalServerError, msgUpdateTool)
		}
	}
}

// DeleteTool serves DELETE /api/tools/{id}.
func DeleteTool(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		err := d.Catalog.Delete(r.Context(), id)
		switch {
		case err == nil:
			w.WriteHeader(http.StatusNoContent)
		case errors.Is(err, catalog.ErrNotFound):
			writeError(w, http.StatusNotFound, msgNotFound)
		default:
			requestLogger(d, r).Error("failed to delete tool", logger.String("id", id), logger.Error(err))
			writeError(w, http.StatusInternalServerError, msgDeleteTool)
		}
	}
}

func readJSONBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := readBody(w, r)
	switch {
	case err == nil:
		return body, true
	case errors.Is(err, errBodyTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, msgTooLarge)
	default:
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
	}
	return nil, false
}
