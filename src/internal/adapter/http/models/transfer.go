package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type TransferRequest struct {
	SenderAccountNumber    string `json:"senderAccountNumber"`
	RecipientAccountNumber string `json:"recipientAccountNumber"`
	Amount                 string `json:"amount"`
	SenderPin              string `json:"senderPin"`
}

func (r TransferRequest) Validate() error {
	var errs []string

	if !IsAccountNumber(r.SenderAccountNumber) {
		errs = append(errs, "senderAccountNumber must be exactly 8 digits")
	}
	if !IsAccountNumber(r.RecipientAccountNumber) {
		errs = append(errs, "recipientAccountNumber must be exactly 8 digits")
	}
	if !IsFourDigitPin(r.SenderPin) {
		errs = append(errs, "senderPin must be exactly 4 digits")
	}

	// Positivity is a business precondition checked by the service after the
	// sender authenticates; only the format is validated here.
	amount := strings.TrimSpace(r.Amount)
	if amount == "" {
		errs = append(errs, "amount is required")
	} else if _, err := decimal.NewFromString(amount); err != nil {
		errs = append(errs, "amount must be numeric")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type TransferResponse struct {
	SenderAccountNumber    string `json:"senderAccountNumber"`
	RecipientAccountNumber string `json:"recipientAccountNumber"`
	Amount                 string `json:"amount"`
	SenderBalanceAfter     string `json:"senderBalanceAfter"`
	Timestamp              string `json:"timestamp"`
}
