package http

import (
	"net/http"

	"fintrack/internal/core"
)

type createAccountRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Currency string `json:"currency"`
}

type accountResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Currency string `json:"currency"`
	Balance  string `json:"balance"`
}

func toAccountResponse(a core.Account) accountResponse {
	return accountResponse{
		ID:       a.ID,
		Name:     a.Name,
		Type:     string(a.Type),
		Currency: string(a.Currency),
		Balance:  core.FormatAmount(a.Balance),
	}
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(r)
	if !ok {
		respondUnauthorized(w)
		return
	}
	var req createAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	created, err := s.svc.Accounts.Create(r.Context(), core.Account{
		UserID:   userID,
		Name:     req.Name,
		Type:     core.AccountType(req.Type),
		Currency: core.Currency(req.Currency),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toAccountResponse(created))
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(r)
	if !ok {
		respondUnauthorized(w)
		return
	}

	list, err := s.svc.Accounts.List(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]accountResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAccountResponse(a))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
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

	a, err := s.svc.Accounts.Get(r.Context(), userID, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toAccountResponse(a))
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
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

	if err := s.svc.Accounts.Delete(r.Context(), userID, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
