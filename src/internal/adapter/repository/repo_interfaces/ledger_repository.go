package repo_interfaces

import (
	"context"

	"github.com/Rajmund09/Mini-Banking-System/src/internal/domain"
)

type LedgerRepository interface {
	// History returns the account's ledger entries, most recent first.
	History(ctx context.Context, accountNumber string) ([]domain.LedgerEntry, error)
}

type BankRepository interface {
	GetAll(ctx context.Context) ([]domain.Bank, error)
}
