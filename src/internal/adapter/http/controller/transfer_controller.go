package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Rajmund09/Mini-Banking-System/src/internal/adapter/http/models"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/commons"
)

type TransferService interface {
	TransferFunds(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error)
}

type TransferController struct {
	service TransferService
}

func NewTransferController(service TransferService) *TransferController {
	return &TransferController{service: service}
}

func (c *TransferController) RegisterRoutes(mux *http.ServeMux, _ func(http.Handler) http.Handler) {
	mux.Handle("/transfers", http.HandlerFunc(c.transfer))
}

func (c *TransferController) transfer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.TransferResponse]("method not allowed"))
		return
	}

	var req models.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransferResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.TransferFunds(r.Context(), req)
	if err != nil {
		writeJSON(w, statusForFailure(response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
