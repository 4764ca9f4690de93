package repo_interfaces

import (
	"context"

	"github.com/Rajmund09/Mini-Banking-System/src/internal/domain"
	"github.com/shopspring/decimal"
)

// AccountRepository is the persistence gateway for accounts and the ledger
// entries their mutations produce. Every balance-mutating method runs as a
// single atomic unit: commit-or-rollback, no partial visibility.
type AccountRepository interface {
	// Create persists a new PENDING account. Returns domain.ErrDuplicateRecord
	// when the account number is already taken.
	Create(ctx context.Context, account domain.Account) (domain.Account, error)

	GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error)

	ListPending(ctx context.Context) ([]domain.PendingAccount, error)

	// Delete removes the account and cascades its ledger entries.
	Delete(ctx context.Context, accountNumber string) error

	// Approve flips a PENDING account to ACTIVE, credits the initial deposit
	// and writes the first ledger entry, all in one transaction. Returns
	// domain.ErrRecordNotFound or domain.ErrInvalidState when the account is
	// absent or not PENDING.
	Approve(ctx context.Context, accountNumber string) (domain.Account, error)

	// Deposit credits the account and appends one ledger entry carrying the
	// post-mutation balance.
	Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal) (domain.LedgerEntry, error)

	// Withdraw debits the account, guarded so the balance can never go
	// negative; domain.ErrInsufficientFunds when the guard trips.
	Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal) (domain.LedgerEntry, error)

	// Transfer moves amount between two ACTIVE accounts and appends one ledger
	// entry per side, as one atomic unit. Rows are locked in ascending
	// account-number order regardless of transfer direction.
	Transfer(ctx context.Context, senderAccountNumber string, recipientAccountNumber string, amount decimal.Decimal) (domain.LedgerEntry, domain.LedgerEntry, error)

	// StoreOTP records the account's single pending secret, overwriting any
	// previous one.
	StoreOTP(ctx context.Context, accountNumber string, otp string) error

	// ConsumeOTP clears the stored secret and reports whether supplied matched
	// it. The clear commits on mismatch too; a second attempt with the same
	// secret always fails with domain.ErrOTPMismatch.
	ConsumeOTP(ctx context.Context, accountNumber string, supplied string) error

	// UpdateField writes one of the OTP-gated sensitive fields. The field name
	// is one of the domain.UpdatableField constants; pin values arrive hashed.
	UpdateField(ctx context.Context, accountNumber string, field string, value string) error
}
