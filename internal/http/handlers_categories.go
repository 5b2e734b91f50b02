package http

import (
	"net/http"

	"fintrack/internal/core"
)

type createCategoryRequest struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type categoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

func toCategoryResponse(c core.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, Kind: string(c.Kind)}
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(r)
	if !ok {
		respondUnauthorized(w)
		return
	}
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	created, err := s.svc.Categories.Create(r.Context(), core.Category{
		UserID: userID,
		Name:   req.Name,
		Kind:   core.CategoryKind(req.Kind),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toCategoryResponse(created))
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(r)
	if !ok {
		respondUnauthorized(w)
		return
	}

	list, err := s.svc.Categories.List(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]categoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCategoryResponse(c))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(r)
	if !ok {
		respondUnauthorized(w)
		return
	}
	id, err := pathID(r)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	if err := s.svc.Categories.Delete(r.Context(), userID, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
