package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Rajmund09/Mini-Banking-System/src/internal/adapter/http/models"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/commons"
)

type AccountService interface {
	CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.CreateAccountResponse], error)
	Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.AccountResponse], error)
	ListBanks(ctx context.Context) (commons.Response[models.BankListResponse], error)
}

type AccountController struct {
	service AccountService
}

func NewAccountController(service AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux, _ func(http.Handler) http.Handler) {
	mux.Handle("/accounts", http.HandlerFunc(c.createAccount))
	mux.Handle("/login", http.HandlerFunc(c.login))
	mux.Handle("/banks", http.HandlerFunc(c.listBanks))
}

func (c *AccountController) createAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.CreateAccountResponse]("method not allowed"))
		return
	}

	var req models.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.CreateAccountResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.CreateAccount(r.Context(), req)
	if err != nil {
		logHandlerError(r, err, nil)
		writeJSON(w, statusForFailure(response.Message), response)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

func (c *AccountController) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.AccountResponse]("method not allowed"))
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.Login(r.Context(), req)
	if err != nil {
		writeJSON(w, statusForFailure(response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) listBanks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.BankListResponse]("method not allowed"))
		return
	}

	response, err := c.service.ListBanks(r.Context())
	if err != nil {
		logHandlerError(r, err, nil)
		writeJSON(w, statusForFailure(response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
