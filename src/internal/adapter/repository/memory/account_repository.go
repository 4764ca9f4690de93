package memory

import (
	"context"
	"crypto/subtle"
	"sort"
	"sync"
	"time"

	"github.com/Rajmund09/Mini-Banking-System/src/internal/domain"
	"github.com/shopspring/decimal"
)

// AccountRepository is a mutex-guarded in-memory account and ledger store
// honoring the same atomicity contract as the Postgres gateway. Service tests
// run against it.
type AccountRepository struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
	entries  map[string][]domain.LedgerEntry
	nextID   int64
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[string]*domain.Account),
		entries:  make(map[string][]domain.LedgerEntry),
	}
}

func (r *AccountRepository) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.AccountNumber]; exists {
		return domain.Account{}, domain.ErrDuplicateRecord
	}

	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now
	stored := account
	r.accounts[account.AccountNumber] = &stored

	return account, nil
}

func (r *AccountRepository) GetByAccountNumber(_ context.Context, accountNumber string) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[accountNumber]
	if !ok {
		return domain.Account{}, domain.ErrRecordNotFound
	}
	return *account, nil
}

func (r *AccountRepository) ListPending(_ context.Context) ([]domain.PendingAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var pending []domain.PendingAccount
	for _, account := range r.accounts {
		if account.Status == domain.AccountStatusPending {
			pending = append(pending, domain.PendingAccount{
				AccountNumber: account.AccountNumber,
				HolderName:    account.HolderName,
				Email:         account.Email,
			})
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].AccountNumber < pending[j].AccountNumber
	})

	return pending, nil
}

func (r *AccountRepository) Delete(_ context.Context, accountNumber string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[accountNumber]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(r.accounts, accountNumber)
	delete(r.entries, accountNumber)

	return nil
}

func (r *AccountRepository) Approve(_ context.Context, accountNumber string) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[accountNumber]
	if !ok {
		return domain.Account{}, domain.ErrRecordNotFound
	}
	if account.Status != domain.AccountStatusPending {
		return domain.Account{}, domain.ErrInvalidState
	}

	account.Status = domain.AccountStatusActive
	account.Balance = account.InitialDeposit
	account.UpdatedAt = time.Now()
	r.appendLocked(accountNumber, domain.EntryTypeInitialDeposit, account.InitialDeposit, account.Balance)

	return *account, nil
}

func (r *AccountRepository) Deposit(_ context.Context, accountNumber string, amount decimal.Decimal) (domain.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[accountNumber]
	if !ok || account.Status != domain.AccountStatusActive {
		return domain.LedgerEntry{}, domain.ErrRecordNotFound
	}

	account.Balance = account.Balance.Add(amount)
	account.UpdatedAt = time.Now()

	return r.appendLocked(accountNumber, domain.EntryTypeDeposit, amount, account.Balance), nil
}

func (r *AccountRepository) Withdraw(_ context.Context, accountNumber string, amount decimal.Decimal) (domain.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[accountNumber]
	if !ok {
		return domain.LedgerEntry{}, domain.ErrRecordNotFound
	}
	if account.Status != domain.AccountStatusActive {
		return domain.LedgerEntry{}, domain.ErrInvalidState
	}
	if account.Balance.LessThan(amount) {
		return domain.LedgerEntry{}, domain.ErrInsufficientFunds
	}

	account.Balance = account.Balance.Sub(amount)
	account.UpdatedAt = time.Now()

	return r.appendLocked(accountNumber, domain.EntryTypeWithdrawal, amount, account.Balance), nil
}

func (r *AccountRepository) Transfer(_ context.Context, senderAccountNumber string, recipientAccountNumber string, amount decimal.Decimal) (domain.LedgerEntry, domain.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sender, ok := r.accounts[senderAccountNumber]
	if !ok {
		return domain.LedgerEntry{}, domain.LedgerEntry{}, domain.ErrRecordNotFound
	}
	recipient, ok := r.accounts[recipientAccountNumber]
	if !ok {
		return domain.LedgerEntry{}, domain.LedgerEntry{}, domain.ErrRecordNotFound
	}
	if sender.Status != domain.AccountStatusActive || recipient.Status != domain.AccountStatusActive {
		return domain.LedgerEntry{}, domain.LedgerEntry{}, domain.ErrInvalidState
	}
	if sender.Balance.LessThan(amount) {
		return domain.LedgerEntry{}, domain.LedgerEntry{}, domain.ErrInsufficientFunds
	}

	now := time.Now()
	sender.Balance = sender.Balance.Sub(amount)
	sender.UpdatedAt = now
	recipient.Balance = recipient.Balance.Add(amount)
	recipient.UpdatedAt = now

	senderEntry := r.appendLocked(senderAccountNumber, "Transfer Out to "+recipientAccountNumber, amount, sender.Balance)
	recipientEntry := r.appendLocked(recipientAccountNumber, "Transfer In from "+senderAccountNumber, amount, recipient.Balance)

	return senderEntry, recipientEntry, nil
}

func (r *AccountRepository) StoreOTP(_ context.Context, accountNumber string, otp string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[accountNumber]
	if !ok || account.Status != domain.AccountStatusActive {
		return domain.ErrRecordNotFound
	}
	account.OTP = otp
	account.UpdatedAt = time.Now()

	return nil
}

func (r *AccountRepository) ConsumeOTP(_ context.Context, accountNumber string, supplied string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[accountNumber]
	if !ok {
		return domain.ErrRecordNotFound
	}

	stored := account.OTP
	account.OTP = ""
	account.UpdatedAt = time.Now()

	if stored == "" || subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) != 1 {
		return domain.ErrOTPMismatch
	}

	return nil
}

func (r *AccountRepository) UpdateField(_ context.Context, accountNumber string, field string, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[accountNumber]
	if !ok {
		return domain.ErrRecordNotFound
	}

	switch field {
	case domain.UpdatableFieldName:
		account.HolderName = value
	case domain.UpdatableFieldPin:
		account.PinHash = value
	case domain.UpdatableFieldEmail:
		account.Email = value
	case domain.UpdatableFieldPhone:
		account.Phone = value
	default:
		return domain.ErrValidation
	}
	account.UpdatedAt = time.Now()

	return nil
}

func (r *AccountRepository) History(_ context.Context, accountNumber string) ([]domain.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := r.entries[accountNumber]
	out := make([]domain.LedgerEntry, len(entries))
	// Stored oldest-first; serve most-recent-first.
	for i, entry := range entries {
		out[len(entries)-1-i] = entry
	}

	return out, nil
}

func (r *AccountRepository) appendLocked(accountNumber string, entryType string, amount decimal.Decimal, balanceAfter decimal.Decimal) domain.LedgerEntry {
	r.nextID++
	entry := domain.LedgerEntry{
		ID:            r.nextID,
		AccountNumber: accountNumber,
		Type:          entryType,
		Amount:        amount,
		BalanceAfter:  balanceAfter,
		CreatedAt:     time.Now(),
	}
	r.entries[accountNumber] = append(r.entries[accountNumber], entry)

	return entry
}
