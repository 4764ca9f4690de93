package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type CreateAccountRequest struct {
	HolderName     string `json:"holderName"`
	Pin            string `json:"pin"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	DateOfBirth    string `json:"dateOfBirth"`
	BankName       string `json:"bankName"`
	AccountType    string `json:"accountType"`
	InitialDeposit string `json:"initialDeposit"`
}

func (r CreateAccountRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.HolderName) == "" {
		errs = append(errs, "holderName is required")
	}
	if !IsFourDigitPin(r.Pin) {
		errs = append(errs, "pin must be exactly 4 digits")
	}
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, "email is required")
	}
	if strings.TrimSpace(r.DateOfBirth) == "" {
		errs = append(errs, "dateOfBirth is required")
	}
	if strings.TrimSpace(r.BankName) == "" {
		errs = append(errs, "bankName is required")
	}
	if strings.TrimSpace(r.AccountType) == "" {
		errs = append(errs, "accountType is required")
	}

	deposit := strings.TrimSpace(r.InitialDeposit)
	if deposit == "" {
		errs = append(errs, "initialDeposit is required")
	} else if _, err := decimal.NewFromString(deposit); err != nil {
		errs = append(errs, "initialDeposit must be numeric")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type CreateAccountResponse struct {
	AccountNumber  string `json:"accountNumber"`
	HolderName     string `json:"holderName"`
	BankName       string `json:"bankName"`
	AccountType    string `json:"accountType"`
	InitialDeposit string `json:"initialDeposit"`
	Status         string `json:"status"`
	Balance        string `json:"balance"`
	CreatedAt      string `json:"createdAt"`
}

type LoginRequest struct {
	AccountNumber string `json:"accountNumber"`
	Pin           string `json:"pin"`
}

func (r LoginRequest) Validate() error {
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

type AccountResponse struct {
	AccountNumber string `json:"accountNumber"`
	HolderName    string `json:"holderName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Balance       string `json:"balance"`
	Status        string `json:"status"`
	BankName      string `json:"bankName"`
	AccountType   string `json:"accountType"`
	DateOfBirth   string `json:"dateOfBirth"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

type BankListResponse struct {
	Banks []string `json:"banks"`
}

func IsAccountNumber(value string) bool {
	trimmed := strings.TrimSpace(value)
	return len(trimmed) == 8 && digitsOnly(trimmed)
}

func IsFourDigitPin(value string) bool {
	trimmed := strings.TrimSpace(value)
	return len(trimmed) == 4 && digitsOnly(trimmed)
}

func digitsOnly(value string) bool {
	for _, ch := range value {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
