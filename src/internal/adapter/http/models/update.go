package models

import (
	"errors"
	"strings"
)

type IssueOTPRequest struct {
	AccountNumber string `json:"accountNumber"`
}

func (r IssueOTPRequest) Validate() error {
	if !IsAccountNumber(r.AccountNumber) {
		return errors.New("accountNumber must be exactly 8 digits")
	}
	return nil
}

type IssueOTPResponse struct {
	AccountNumber string `json:"accountNumber"`
	OTP           string `json:"otp"`
}

type ApplyUpdateRequest struct {
	AccountNumber string `json:"accountNumber"`
	Field         string `json:"field"`
	NewValue      string `json:"newValue"`
	OTP           string `json:"otp"`
}

func (r ApplyUpdateRequest) Validate() error {
	var errs []string

	if !IsAccountNumber(r.AccountNumber) {
		errs = append(errs, "accountNumber must be exactly 8 digits")
	}
	if strings.TrimSpace(r.Field) == "" {
		errs = append(errs, "field is required")
	}
	if strings.TrimSpace(r.NewValue) == "" {
		errs = append(errs, "newValue is required")
	}
	if strings.TrimSpace(r.OTP) == "" {
		errs = append(errs, "otp is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type ApplyUpdateResponse struct {
	AccountNumber string `json:"accountNumber"`
	Field         string `json:"field"`
}
