package implementations

import (
	"context"
	"database/sql"

	"github.com/Rajmund09/Mini-Banking-System/src/internal/domain"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/logger"
)

type LedgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) History(ctx context.Context, accountNumber string) ([]domain.LedgerEntry, error) {
	const query = `
SELECT transaction_id,
       account_number,
       transaction_type,
       amount,
       balance_after,
       created_at
FROM transactions
WHERE account_number = $1
ORDER BY created_at DESC, transaction_id DESC`

	rows, err := r.db.QueryContext(ctx, query, accountNumber)
	if err != nil {
		logger.Error("ledger repository history failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return nil, persistenceError("get transaction history", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var entry domain.LedgerEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.AccountNumber,
			&entry.Type,
			&entry.Amount,
			&entry.BalanceAfter,
			&entry.CreatedAt,
		); err != nil {
			return nil, persistenceError("scan ledger entry", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("iterate ledger entries", err)
	}

	return entries, nil
}
