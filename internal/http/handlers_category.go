package http

import (
	"log/slog"
	"net/http"

	"hobu/internal/core"
)

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listCategories(w, r)
	case http.MethodPost:
		s.createCategory(w, r)
	case http.MethodPut:
		s.updateCategory(w, r)
	case http.MethodDelete:
		s.deleteCategory(w, r)
	default:
		w.Header().Set("Allow", "GET, POST, PUT, DELETE")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.categories.Categories(r.Context())
	if err != nil {
		writeStoreError(w, r, "list categories", err)
		return
	}
	if categories == nil {
		categories = []core.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var draft core.Category
	if err := decodeJSON(r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if draft.ID != 0 {
		writeError(w, http.StatusBadRequest, "create must not carry an id")
		return
	}
	if err := draft.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := s.categories.AddCategory(r.Context(), draft)
	if err != nil {
		writeStoreError(w, r, "create category", err)
		return
	}
	s.reportCache.Clear()

	slog.InfoContext(r.Context(), "Category created",
		"category_id", id,
		"name", draft.Name)
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	var record core.Category
	if err := decodeJSON(r, &record); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if record.ID <= 0 {
		writeError(w, http.StatusBadRequest, "update requires an id")
		return
	}
	if err := record.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.categories.UpdateCategory(r.Context(), record); err != nil {
		writeStoreError(w, r, "update category", err)
		return
	}
	s.reportCache.Clear()
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Orders referencing the category are kept; reports fall back to the
	// deleted-category bucket.
	if err := s.categories.DeleteCategory(r.Context(), id); err != nil {
		writeStoreError(w, r, "delete category", err)
		return
	}
	s.reportCache.Clear()
	writeJSON(w, http.StatusNoContent, nil)
}
