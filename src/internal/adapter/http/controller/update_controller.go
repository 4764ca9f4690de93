package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Rajmund09/Mini-Banking-System/src/internal/adapter/http/models"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/commons"
)

type UpdateService interface {
	IssueOTP(ctx context.Context, req models.IssueOTPRequest) (commons.Response[models.IssueOTPResponse], error)
	ApplyUpdate(ctx context.Context, req models.ApplyUpdateRequest) (commons.Response[models.ApplyUpdateResponse], error)
}

type UpdateController struct {
	service UpdateService
}

func NewUpdateController(service UpdateService) *UpdateController {
	return &UpdateController{service: service}
}

func (c *UpdateController) RegisterRoutes(mux *http.ServeMux, _ func(http.Handler) http.Handler) {
	mux.Handle("/updates/otp", http.HandlerFunc(c.issueOTP))
	mux.Handle("/updates", http.HandlerFunc(c.applyUpdate))
}

func (c *UpdateController) issueOTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.IssueOTPResponse]("method not allowed"))
		return
	}

	var req models.IssueOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.IssueOTPResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.IssueOTP(r.Context(), req)
	if err != nil {
		writeJSON(w, statusForFailure(response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *UpdateController) applyUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.ApplyUpdateResponse]("method not allowed"))
		return
	}

	var req models.ApplyUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.ApplyUpdateResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.ApplyUpdate(r.Context(), req)
	if err != nil {
		writeJSON(w, statusForFailure(response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
