package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountStatus string

const (
	AccountStatusPending AccountStatus = "PENDING"
	AccountStatusActive  AccountStatus = "ACTIVE"
)

type Account struct {
	AccountNumber  string
	HolderName     string
	PinHash        string
	Balance        decimal.Decimal
	Email          string
	Phone          string
	Status         AccountStatus
	DateOfBirth    time.Time
	BankName       string
	AccountType    string
	InitialDeposit decimal.Decimal
	OTP            string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Fields an account holder may change through the OTP-gated update flow.
const (
	UpdatableFieldName  = "name"
	UpdatableFieldPin   = "pin"
	UpdatableFieldEmail = "email"
	UpdatableFieldPhone = "phone"
)

func IsUpdatableField(field string) bool {
	switch field {
	case UpdatableFieldName, UpdatableFieldPin, UpdatableFieldEmail, UpdatableFieldPhone:
		return true
	}
	return false
}
