package http

import (
	"net/http"

	"fintrack/internal/core"
)

type goalRequest struct {
	Name     string  `json:"name"`
	Target   string  `json:"target_amount"`
	Current  string  `json:"current_amount"`
	Deadline *string `json:"deadline"`
}

type goalResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Target   string  `json:"target_amount"`
	Current  string  `json:"current_amount"`
	Deadline *string `json:"deadline,omitempty"`
	Progress string  `json:"progress"`
}

func toGoalResponse(g core.Goal) goalResponse {
	resp := goalResponse{
		ID:       g.ID,
		Name:     g.Name,
		Target:   core.FormatAmount(g.Target),
		Current:  core.FormatAmount(g.Current),
		Progress: g.Progress().StringFixed(2),
	}
	if g.Deadline != nil {
		d := g.Deadline.String()
		resp.Deadline = &d
	}
	return resp
}

// goalFromRequest parses the wire form. Current defaults to zero; amounts are
// non-negative here, unlike transaction amounts which must be positive.
func goalFromRequest(req goalRequest, userID int64) (core.Goal, error) {
	g := core.Goal{UserID: userID, Name: req.Name}

	target, err := core.ParseNonNegativeAmount(req.Target)
	if err != nil {
		return core.Goal{}, err
	}
	g.Target = target

	if req.Current != "" {
		current, err := core.ParseNonNegativeAmount(req.Current)
		if err != nil {
			return core.Goal{}, err
		}
		g.Current = current
	}
	if req.Deadline != nil && *req.Deadline != "" {
		d, err := core.ParseDate(*req.Deadline)
		if err != nil {
			return core.Goal{}, err
		}
		g.Deadline = &d
	}
	return g, nil
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(r)
	if !ok {
		respondUnauthorized(w)
		return
	}
	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	g, err := goalFromRequest(req, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	created, err := s.svc.Goals.Create(r.Context(), g)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toGoalResponse(created))
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(r)
	if !ok {
		respondUnauthorized(w)
		return
	}

	list, err := s.svc.Goals.List(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]goalResponse, 0, len(list))
	for _, g := range list {
		out = append(out, toGoalResponse(g))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
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

	g, err := s.svc.Goals.Get(r.Context(), userID, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toGoalResponse(g))
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
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
	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	g, err := goalFromRequest(req, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	g.ID = id

	updated, err := s.svc.Goals.Update(r.Context(), g)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toGoalResponse(updated))
}

func (s *Server) handleGoalProgress(w http.ResponseWriter, r *http.Request) {
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

	progress, err := s.svc.Goals.Progress(r.Context(), userID, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"progress": progress.StringFixed(2)})
}
