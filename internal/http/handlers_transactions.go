package http

import (
	"net/http"
	"strconv"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
	"fintrack/internal/storage"
)

type createTransactionRequest struct {
	AccountID   *int64 `json:"account_id"`
	CategoryID  int64  `json:"category_id"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

type updateTransactionRequest struct {
	AccountID    *int64  `json:"account_id"`
	ClearAccount bool    `json:"clear_account"`
	CategoryID   *int64  `json:"category_id"`
	Type         *string `json:"type"`
	Amount       *string `json:"amount"`
	Description  *string `json:"description"`
	Date         *string `json:"date"`
}

type transactionResponse struct {
	ID          int64  `json:"id"`
	AccountID   *int64 `json:"account_id,omitempty"`
	CategoryID  int64  `json:"category_id"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency,omitempty"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"`
}

func toTransactionResponse(t core.Transaction) transactionResponse {
	return transactionResponse{
		ID:          t.ID,
		AccountID:   t.AccountID,
		CategoryID:  t.CategoryID,
		Type:        string(t.Type),
		Amount:      core.FormatAmount(t.Amount),
		Currency:    string(t.Currency),
		Description: t.Description,
		Date:        t.Date.String(),
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(r)
	if !ok {
		respondUnauthorized(w)
		return
	}
	var req createTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		respondError(w, err)
		return
	}
	date, err := core.ParseDate(req.Date)
	if err != nil {
		respondError(w, err)
		return
	}

	created, err := s.svc.Ledger.Create(r.Context(), ledger.CreateInput{
		UserID:      userID,
		AccountID:   req.AccountID,
		CategoryID:  req.CategoryID,
		Type:        core.TransactionType(req.Type),
		Amount:      amount,
		Currency:    core.Currency(req.Currency),
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toTransactionResponse(created))
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerID(r)
	if !ok {
		respondUnauthorized(w)
		return
	}

	var filter storage.TransactionFilter
	if raw := r.URL.Query().Get("account_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondBadRequest(w, "invalid account_id filter")
			return
		}
		filter.AccountID = &id
	}
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondBadRequest(w, "invalid category_id filter")
			return
		}
		filter.CategoryID = &id
	}

	transactions, err := s.svc.Ledger.List(r.Context(), userID, filter)
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]transactionResponse, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, toTransactionResponse(t))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
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

	t, err := s.svc.Ledger.Get(r.Context(), userID, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toTransactionResponse(t))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
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
	var req updateTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	in := ledger.UpdateInput{
		AccountID:    req.AccountID,
		ClearAccount: req.ClearAccount,
		CategoryID:   req.CategoryID,
		Description:  req.Description,
	}
	if req.Type != nil {
		t := core.TransactionType(*req.Type)
		in.Type = &t
	}
	if req.Amount != nil {
		amount, err := core.ParseAmount(*req.Amount)
		if err != nil {
			respondError(w, err)
			return
		}
		in.Amount = &amount
	}
	if req.Date != nil {
		date, err := core.ParseDate(*req.Date)
		if err != nil {
			respondError(w, err)
			return
		}
		in.Date = &date
	}

	updated, err := s.svc.Ledger.Update(r.Context(), userID, id, in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toTransactionResponse(updated))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
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

	if err := s.svc.Ledger.Delete(r.Context(), userID, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
