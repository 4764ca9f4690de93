package models

import "errors"

type PendingAccountResponse struct {
	AccountNumber string `json:"accountNumber"`
	HolderName    string `json:"holderName"`
	Email         string `json:"email"`
}

type PendingAccountsResponse struct {
	Accounts []PendingAccountResponse `json:"accounts"`
}

type ApproveAccountRequest struct {
	AccountNumber string `json:"accountNumber"`
}

func (r ApproveAccountRequest) Validate() error {
	if !IsAccountNumber(r.AccountNumber) {
		return errors.New("accountNumber must be exactly 8 digits")
	}
	return nil
}

type ApproveAccountResponse struct {
	AccountNumber string `json:"accountNumber"`
	Status        string `json:"status"`
	Balance       string `json:"balance"`
}

type DeleteAccountRequest struct {
	AccountNumber string `json:"accountNumber"`
}

func (r DeleteAccountRequest) Validate() error {
	if !IsAccountNumber(r.AccountNumber) {
		return errors.New("accountNumber must be exactly 8 digits")
	}
	return nil
}

type DeleteAccountResponse struct {
	AccountNumber string `json:"accountNumber"`
}
