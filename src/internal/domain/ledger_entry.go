package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is an immutable record of a balance-affecting event. Amount is
// always recorded positive; Type carries the direction ("Deposit",
// "Withdrawal", "Transfer Out to <acct>", "Transfer In from <acct>").
type LedgerEntry struct {
	ID            int64
	AccountNumber string
	Type          string
	Amount        decimal.Decimal
	BalanceAfter  decimal.Decimal
	CreatedAt     time.Time
}

const (
	EntryTypeInitialDeposit = "Initial Deposit"
	EntryTypeDeposit        = "Deposit"
	EntryTypeWithdrawal     = "Withdrawal"
)

type PendingAccount struct {
	AccountNumber string
	HolderName    string
	Email         string
}

type Bank struct {
	BankName string
}
