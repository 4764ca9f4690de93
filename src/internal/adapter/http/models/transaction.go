package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type DepositRequest struct {
	AccountNumber string `json:"accountNumber"`
	Pin           string `json:"pin"`
	Amount        string `json:"amount"`
}

func (r DepositRequest) Validate() error {
	return validateMutation(r.AccountNumber, r.Pin, r.Amount)
}

type WithdrawRequest struct {
	AccountNumber string `json:"accountNumber"`
	Pin           string `json:"pin"`
	Amount        string `json:"amount"`
}

func (r WithdrawRequest) Validate() error {
	return validateMutation(r.AccountNumber, r.Pin, r.Amount)
}

type MutationResponse struct {
	AccountNumber string `json:"accountNumber"`
	Type          string `json:"type"`
	Amount        string `json:"amount"`
	BalanceAfter  string `json:"balanceAfter"`
	Timestamp     string `json:"timestamp"`
}

type HistoryRequest struct {
	AccountNumber string `json:"accountNumber"`
	Pin           string `json:"pin"`
}

func (r HistoryRequest) Validate() error {
	var errs []string

	if !IsAccountNumber(r.AccountNumber) {
		errs = append(errs, "accountNumber must be exactly 8 digits")
	}
	if !IsFourDigitPin(r.Pin) {
		errs = append(errs, "pin must be exactly 4 digits")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type LedgerEntryResponse struct {
	Type         string `json:"type"`
	Amount       string `json:"amount"`
	BalanceAfter string `json:"balanceAfter"`
	Timestamp    string `json:"timestamp"`
}

type HistoryResponse struct {
	AccountNumber string                `json:"accountNumber"`
	Entries       []LedgerEntryResponse `json:"entries"`
}

func validateMutation(accountNumber, pin, amount string) error {
	var errs []string

	if !IsAccountNumber(accountNumber) {
		errs = append(errs, "accountNumber must be exactly 8 digits")
	}
	if !IsFourDigitPin(pin) {
		errs = append(errs, "pin must be exactly 4 digits")
	}

	trimmed := strings.TrimSpace(amount)
	if trimmed == "" {
		errs = append(errs, "amount is required")
	} else {
		parsed, err := decimal.NewFromString(trimmed)
		if err != nil {
			errs = append(errs, "amount must be numeric")
		} else if parsed.LessThanOrEqual(decimal.Zero) {
			errs = append(errs, "amount must be greater than zero")
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
