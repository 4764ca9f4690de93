package implementations

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Rajmund09/Mini-Banking-System/src/internal/domain"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/logger"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `
account_number,
name,
pin_hash,
balance,
email,
phone_number,
status,
date_of_birth,
bank_name,
account_type,
initial_deposit,
otp,
created_at,
updated_at`

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	logger.Info("account repository create", logger.Fields{
		"accountNumber": account.AccountNumber,
		"status":        account.Status,
	})

	const query = `
INSERT INTO accounts (
	account_number,
	name,
	pin_hash,
	balance,
	email,
	phone_number,
	status,
	date_of_birth,
	bank_name,
	account_type,
	initial_deposit
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
)
RETURNING created_at, updated_at`

	var createdAt time.Time
	var updatedAt time.Time

	if err := r.db.QueryRowContext(
		ctx,
		query,
		account.AccountNumber,
		account.HolderName,
		account.PinHash,
		account.Balance.StringFixed(2),
		account.Email,
		account.Phone,
		account.Status,
		account.DateOfBirth,
		account.BankName,
		account.AccountType,
		account.InitialDeposit.StringFixed(2),
	).Scan(&createdAt, &updatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.Account{}, domain.ErrDuplicateRecord
		}
		logger.Error("account repository create failed", err, logger.Fields{
			"accountNumber": account.AccountNumber,
		})
		return domain.Account{}, persistenceError("create account", err)
	}

	account.CreatedAt = createdAt
	account.UpdatedAt = updatedAt

	return account, nil
}

func (r *AccountRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	const query = `
SELECT ` + accountColumns + `
FROM accounts
WHERE account_number = $1`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrRecordNotFound
		}
		logger.Error("account repository get failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return domain.Account{}, persistenceError("get account", err)
	}

	return account, nil
}

func (r *AccountRepository) ListPending(ctx context.Context) ([]domain.PendingAccount, error) {
	const query = `
SELECT account_number, name, email
FROM accounts
WHERE status = 'PENDING'
ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("account repository list pending failed", err, nil)
		return nil, persistenceError("list pending accounts", err)
	}
	defer rows.Close()

	var pending []domain.PendingAccount
	for rows.Next() {
		var p domain.PendingAccount
		var email sql.NullString
		if err := rows.Scan(&p.AccountNumber, &p.HolderName, &email); err != nil {
			return nil, persistenceError("scan pending account", err)
		}
		p.Email = email.String
		pending = append(pending, p)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("iterate pending accounts", err)
	}

	return pending, nil
}

func (r *AccountRepository) Delete(ctx context.Context, accountNumber string) error {
	logger.Info("account repository delete", logger.Fields{
		"accountNumber": accountNumber,
	})

	// Ledger entries go with the account via ON DELETE CASCADE.
	result, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE account_number = $1`, accountNumber)
	if err != nil {
		logger.Error("account repository delete failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return persistenceError("delete account", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return persistenceError("delete account rows affected", err)
	}
	if rows == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (r *AccountRepository) Approve(ctx context.Context, accountNumber string) (account domain.Account, err error) {
	logger.Info("account repository approve", logger.Fields{
		"accountNumber": accountNumber,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Account{}, persistenceError("begin approval transaction", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const activate = `
UPDATE accounts
SET status = 'ACTIVE',
    balance = initial_deposit,
    updated_at = NOW()
WHERE account_number = $1
  AND status = 'PENDING'
RETURNING ` + accountColumns

	account, err = scanAccount(tx.QueryRowContext(ctx, activate, accountNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = r.classifyMissingPending(ctx, accountNumber)
			return domain.Account{}, err
		}
		return domain.Account{}, persistenceError("activate account", err)
	}

	if _, err = appendLedgerEntry(ctx, tx, accountNumber, domain.EntryTypeInitialDeposit, account.InitialDeposit, account.Balance); err != nil {
		return domain.Account{}, err
	}

	if err = tx.Commit(); err != nil {
		return domain.Account{}, persistenceError("commit approval transaction", err)
	}

	logger.Info("account repository approve success", logger.Fields{
		"accountNumber": accountNumber,
	})
	return account, nil
}

// classifyMissingPending distinguishes an absent account from one that is no
// longer PENDING after the conditional activation matched zero rows.
func (r *AccountRepository) classifyMissingPending(ctx context.Context, accountNumber string) error {
	var status string
	err := r.db.QueryRowContext(ctx, `SELECT status FROM accounts WHERE account_number = $1`, accountNumber).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrRecordNotFound
	}
	if err != nil {
		return persistenceError("check account status", err)
	}
	return domain.ErrInvalidState
}

func (r *AccountRepository) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal) (entry domain.LedgerEntry, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.LedgerEntry{}, persistenceError("begin deposit transaction", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const credit = `
UPDATE accounts
SET balance = balance + $2::numeric,
    updated_at = NOW()
WHERE account_number = $1
  AND status = 'ACTIVE'
RETURNING balance`

	var balanceAfter decimal.Decimal
	if err = tx.QueryRowContext(ctx, credit, accountNumber, amount.StringFixed(2)).Scan(&balanceAfter); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = domain.ErrRecordNotFound
			return domain.LedgerEntry{}, err
		}
		return domain.LedgerEntry{}, persistenceError("credit account", err)
	}

	entry, err = appendLedgerEntry(ctx, tx, accountNumber, domain.EntryTypeDeposit, amount, balanceAfter)
	if err != nil {
		return domain.LedgerEntry{}, err
	}

	if err = tx.Commit(); err != nil {
		return domain.LedgerEntry{}, persistenceError("commit deposit transaction", err)
	}

	return entry, nil
}

func (r *AccountRepository) Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal) (entry domain.LedgerEntry, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.LedgerEntry{}, persistenceError("begin withdrawal transaction", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const debit = `
UPDATE accounts
SET balance = balance - $2::numeric,
    updated_at = NOW()
WHERE account_number = $1
  AND status = 'ACTIVE'
  AND balance >= $2::numeric
RETURNING balance`

	var balanceAfter decimal.Decimal
	if err = tx.QueryRowContext(ctx, debit, accountNumber, amount.StringFixed(2)).Scan(&balanceAfter); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = r.classifyFailedDebit(ctx, accountNumber)
			return domain.LedgerEntry{}, err
		}
		return domain.LedgerEntry{}, persistenceError("debit account", err)
	}

	entry, err = appendLedgerEntry(ctx, tx, accountNumber, domain.EntryTypeWithdrawal, amount, balanceAfter)
	if err != nil {
		return domain.LedgerEntry{}, err
	}

	if err = tx.Commit(); err != nil {
		return domain.LedgerEntry{}, persistenceError("commit withdrawal transaction", err)
	}

	return entry, nil
}

func (r *AccountRepository) classifyFailedDebit(ctx context.Context, accountNumber string) error {
	var status string
	err := r.db.QueryRowContext(ctx, `SELECT status FROM accounts WHERE account_number = $1`, accountNumber).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrRecordNotFound
	}
	if err != nil {
		return persistenceError("check account status", err)
	}
	if status != string(domain.AccountStatusActive) {
		return domain.ErrInvalidState
	}
	return domain.ErrInsufficientFunds
}

func (r *AccountRepository) Transfer(ctx context.Context, senderAccountNumber string, recipientAccountNumber string, amount decimal.Decimal) (senderEntry domain.LedgerEntry, recipientEntry domain.LedgerEntry, err error) {
	logger.Info("account repository transfer", logger.Fields{
		"senderAccountNumber":    senderAccountNumber,
		"recipientAccountNumber": recipientAccountNumber,
		"amount":                 amount,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.LedgerEntry{}, domain.LedgerEntry{}, persistenceError("begin transfer transaction", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Lock both rows in ascending account-number order so two transfers over
	// the same pair in opposite directions can never deadlock.
	first, second := senderAccountNumber, recipientAccountNumber
	if second < first {
		first, second = second, first
	}
	if err = lockAccountRow(ctx, tx, first); err != nil {
		return domain.LedgerEntry{}, domain.LedgerEntry{}, err
	}
	if err = lockAccountRow(ctx, tx, second); err != nil {
		return domain.LedgerEntry{}, domain.LedgerEntry{}, err
	}

	const debitSender = `
UPDATE accounts
SET balance = balance - $2::numeric,
    updated_at = NOW()
WHERE account_number = $1
  AND status = 'ACTIVE'
  AND balance >= $2::numeric
RETURNING balance`

	var senderBalance decimal.Decimal
	if err = tx.QueryRowContext(ctx, debitSender, senderAccountNumber, amount.StringFixed(2)).Scan(&senderBalance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = r.classifyFailedDebit(ctx, senderAccountNumber)
			return domain.LedgerEntry{}, domain.LedgerEntry{}, err
		}
		return domain.LedgerEntry{}, domain.LedgerEntry{}, persistenceError("debit sender", err)
	}

	const creditRecipient = `
UPDATE accounts
SET balance = balance + $2::numeric,
    updated_at = NOW()
WHERE account_number = $1
  AND status = 'ACTIVE'
RETURNING balance`

	var recipientBalance decimal.Decimal
	if err = tx.QueryRowContext(ctx, creditRecipient, recipientAccountNumber, amount.StringFixed(2)).Scan(&recipientBalance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = domain.ErrRecordNotFound
			return domain.LedgerEntry{}, domain.LedgerEntry{}, err
		}
		return domain.LedgerEntry{}, domain.LedgerEntry{}, persistenceError("credit recipient", err)
	}

	senderEntry, err = appendLedgerEntry(ctx, tx, senderAccountNumber, "Transfer Out to "+recipientAccountNumber, amount, senderBalance)
	if err != nil {
		return domain.LedgerEntry{}, domain.LedgerEntry{}, err
	}
	recipientEntry, err = appendLedgerEntry(ctx, tx, recipientAccountNumber, "Transfer In from "+senderAccountNumber, amount, recipientBalance)
	if err != nil {
		return domain.LedgerEntry{}, domain.LedgerEntry{}, err
	}

	if err = tx.Commit(); err != nil {
		return domain.LedgerEntry{}, domain.LedgerEntry{}, persistenceError("commit transfer transaction", err)
	}

	logger.Info("account repository transfer success", logger.Fields{
		"senderAccountNumber":    senderAccountNumber,
		"recipientAccountNumber": recipientAccountNumber,
	})
	return senderEntry, recipientEntry, nil
}

func (r *AccountRepository) StoreOTP(ctx context.Context, accountNumber string, otp string) error {
	const query = `
UPDATE accounts
SET otp = $2,
    updated_at = NOW()
WHERE account_number = $1
  AND status = 'ACTIVE'`

	result, err := r.db.ExecContext(ctx, query, accountNumber, otp)
	if err != nil {
		logger.Error("account repository store otp failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return persistenceError("store otp", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return persistenceError("store otp rows affected", err)
	}
	if rows == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (r *AccountRepository) ConsumeOTP(ctx context.Context, accountNumber string, supplied string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return persistenceError("begin otp transaction", err)
	}

	var stored sql.NullString
	if err := tx.QueryRowContext(ctx, `SELECT otp FROM accounts WHERE account_number = $1 FOR UPDATE`, accountNumber).Scan(&stored); err != nil {
		_ = tx.Rollback()
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrRecordNotFound
		}
		return persistenceError("read otp", err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE accounts SET otp = NULL, updated_at = NOW() WHERE account_number = $1`, accountNumber); err != nil {
		_ = tx.Rollback()
		return persistenceError("clear otp", err)
	}

	// The secret is burnt by this attempt whatever the outcome, so the clear
	// commits before the match result is decided.
	if err := tx.Commit(); err != nil {
		return persistenceError("commit otp transaction", err)
	}

	if !stored.Valid || stored.String == "" || subtle.ConstantTimeCompare([]byte(stored.String), []byte(supplied)) != 1 {
		logger.Info("account repository otp mismatch", logger.Fields{
			"accountNumber": accountNumber,
		})
		return domain.ErrOTPMismatch
	}

	return nil
}

func (r *AccountRepository) UpdateField(ctx context.Context, accountNumber string, field string, value string) error {
	var column string
	switch field {
	case domain.UpdatableFieldName:
		column = "name"
	case domain.UpdatableFieldPin:
		column = "pin_hash"
	case domain.UpdatableFieldEmail:
		column = "email"
	case domain.UpdatableFieldPhone:
		column = "phone_number"
	default:
		return fmt.Errorf("%w: field %q cannot be updated", domain.ErrValidation, field)
	}

	query := fmt.Sprintf(`UPDATE accounts SET %s = $2, updated_at = NOW() WHERE account_number = $1`, column)
	result, err := r.db.ExecContext(ctx, query, accountNumber, value)
	if err != nil {
		logger.Error("account repository update field failed", err, logger.Fields{
			"accountNumber": accountNumber,
			"field":         field,
		})
		return persistenceError("update account field", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return persistenceError("update account field rows affected", err)
	}
	if rows == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func lockAccountRow(ctx context.Context, tx *sql.Tx, accountNumber string) error {
	var locked string
	err := tx.QueryRowContext(ctx, `SELECT account_number FROM accounts WHERE account_number = $1 FOR UPDATE`, accountNumber).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrRecordNotFound
	}
	if err != nil {
		return persistenceError("lock account row", err)
	}
	return nil
}

func appendLedgerEntry(ctx context.Context, tx *sql.Tx, accountNumber string, entryType string, amount decimal.Decimal, balanceAfter decimal.Decimal) (domain.LedgerEntry, error) {
	const query = `
INSERT INTO transactions (
	account_number,
	transaction_type,
	amount,
	balance_after
) VALUES ($1, $2, $3, $4)
RETURNING transaction_id, created_at`

	entry := domain.LedgerEntry{
		AccountNumber: accountNumber,
		Type:          entryType,
		Amount:        amount,
		BalanceAfter:  balanceAfter,
	}

	if err := tx.QueryRowContext(
		ctx,
		query,
		accountNumber,
		entryType,
		amount.StringFixed(2),
		balanceAfter.StringFixed(2),
	).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return domain.LedgerEntry{}, persistenceError("append ledger entry", err)
	}

	return entry, nil
}

func scanAccount(row *sql.Row) (domain.Account, error) {
	var (
		account domain.Account
		email   sql.NullString
		phone   sql.NullString
		otp     sql.NullString
	)

	if err := row.Scan(
		&account.AccountNumber,
		&account.HolderName,
		&account.PinHash,
		&account.Balance,
		&email,
		&phone,
		&account.Status,
		&account.DateOfBirth,
		&account.BankName,
		&account.AccountType,
		&account.InitialDeposit,
		&otp,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return domain.Account{}, err
	}

	account.Email = email.String
	account.Phone = phone.String
	account.OTP = otp.String

	return account, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == "23505"
	}
	return false
}
