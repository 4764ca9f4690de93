package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Rajmund09/Mini-Banking-System/src/internal/adapter/http/models"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/commons"
)

type AdminService interface {
	ListPendingAccounts(ctx context.Context) (commons.Response[models.PendingAccountsResponse], error)
	ApproveAccount(ctx context.Context, accountNumber string) (commons.Response[models.ApproveAccountResponse], error)
	DeleteAccount(ctx context.Context, accountNumber string) (commons.Response[models.DeleteAccountResponse], error)
}

// AdminController exposes the approval and deletion operations of the admin
// panel. Every route sits behind the channel-credential middleware.
type AdminController struct {
	service AdminService
}

func NewAdminController(service AdminService) *AdminController {
	return &AdminController{service: service}
}

func (c *AdminController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	pending := http.Handler(http.HandlerFunc(c.listPending))
	approve := http.Handler(http.HandlerFunc(c.approve))
	remove := http.Handler(http.HandlerFunc(c.delete))
	if authMiddleware != nil {
		pending = authMiddleware(pending)
		approve = authMiddleware(approve)
		remove = authMiddleware(remove)
	}
	mux.Handle("/admin/accounts/pending", pending)
	mux.Handle("/admin/accounts/approve", approve)
	mux.Handle("/admin/accounts/delete", remove)
}

func (c *AdminController) listPending(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.PendingAccountsResponse]("method not allowed"))
		return
	}

	response, err := c.service.ListPendingAccounts(r.Context())
	if err != nil {
		logHandlerError(r, err, nil)
		writeJSON(w, statusForFailure(response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AdminController) approve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.ApproveAccountResponse]("method not allowed"))
		return
	}

	var req models.ApproveAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.ApproveAccountResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.ApproveAccount(r.Context(), req.AccountNumber)
	if err != nil {
		writeJSON(w, statusForFailure(response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AdminController) delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.DeleteAccountResponse]("method not allowed"))
		return
	}

	var req models.DeleteAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.DeleteAccountResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.DeleteAccount(r.Context(), req.AccountNumber)
	if err != nil {
		writeJSON(w, statusForFailure(response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
