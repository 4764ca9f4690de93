package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Rajmund09/Mini-Banking-System/src/internal/adapter/http/models"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/commons"
)

type TransactionService interface {
	Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.MutationResponse], error)
	Withdraw(ctx context.Context, req models.WithdrawRequest) (commons.Response[models.MutationResponse], error)
	History(ctx context.Context, req models.HistoryRequest) (commons.Response[models.HistoryResponse], error)
}

type TransactionController struct {
	service TransactionService
}

func NewTransactionController(service TransactionService) *TransactionController {
	return &TransactionController{service: service}
}

func (c *TransactionController) RegisterRoutes(mux *http.ServeMux, _ func(http.Handler) http.Handler) {
	mux.Handle("/deposits", http.HandlerFunc(c.deposit))
	mux.Handle("/withdrawals", http.HandlerFunc(c.withdraw))
	mux.Handle("/history", http.HandlerFunc(c.history))
}

func (c *TransactionController) deposit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.MutationResponse]("method not allowed"))
		return
	}

	var req models.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.MutationResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.Deposit(r.Context(), req)
	if err != nil {
		writeJSON(w, statusForFailure(response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *TransactionController) withdraw(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.MutationResponse]("method not allowed"))
		return
	}

	var req models.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.MutationResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.Withdraw(r.Context(), req)
	if err != nil {
		writeJSON(w, statusForFailure(response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *TransactionController) history(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.HistoryResponse]("method not allowed"))
		return
	}

	var req models.HistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.HistoryResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.History(r.Context(), req)
	if err != nil {
		writeJSON(w, statusForFailure(response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
