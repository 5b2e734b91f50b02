package http

import (
	"net/http"

	"fintrack/internal/budgets"
	"fintrack/internal/core"
)

type budgetRequest struct {
	CategoryID int64  `json:"category_id"`
	Month      string `json:"month"`
	Amount     string `json:"amount"`
}

type budgetResponse struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"category_id"`
	Month      string `json:"month"`
	Amount     string `json:"amount"`
}

func toBudgetResponse(b core.Budget) budgetResponse {
	return budgetResponse{
		ID:         b.ID,
		CategoryID: b.CategoryID,
		Month:      b.Month.String(),
		Amount:     core.FormatAmount(b.Amount),
	}
}

func budgetInput(req budgetRequest, userID int64) (budgets.Input, error) {
	month, err := core.ParseMonth(req.Month)
	if err != nil {
		return budgets.Input{}, err
	}
	amount, err := core.ParseNonNegativeAmount(req.Amount)
	if err != nil {
		return budgets.Input{}, err
	}
	return budgets.Input{
		UserID:     userID,
		CategoryID: req.CategoryID,
		Month:      month,
		Amount:     amount,
	}, nil
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(r)
	if !ok {
		respondUnauthorized(w)
		return
	}
	var req budgetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	in, err := budgetInput(req, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	created, err := s.svc.Budgets.Create(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toBudgetResponse(created))
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
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
	var req budgetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body: "+err.Error())
		return
	}
	in, err := budgetInput(req, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	updated, err := s.svc.Budgets.Update(r.Context(), userID, id, in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toBudgetResponse(updated))
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(r)
	if !ok {
		respondUnauthorized(w)
		return
	}

	list, err := s.svc.Budgets.List(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]budgetResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBudgetResponse(b))
	}
	respondJSON(w, http.StatusOK, out)
}
