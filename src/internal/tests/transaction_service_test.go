package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Rajmund09/Mini-Banking-System/src/internal/adapter/http/models"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/domain"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/usecase/services"
)

func TestTransactionServiceDepositValidationError(t *testing.T) {
	svc := services.NewTransactionService(nil, nil)

	_, err := svc.Deposit(context.Background(), models.DepositRequest{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for empty deposit request, got %v", err)
	}
}

func TestTransactionServiceDepositRejectsNonPositiveAmount(t *testing.T) {
	svc := services.NewTransactionService(nil, nil)

	_, err := svc.Deposit(context.Background(), models.DepositRequest{
		AccountNumber: "10000001",
		Pin:           "4321",
		Amount:        "-50",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for negative amount, got %v", err)
	}
}

func TestTransactionServiceDepositUpdatesBalanceAndLedger(t *testing.T) {
	f := newBankFixture(t, &digitScript{accountNumbers: []string{"10000001"}})
	f.openActiveAccount(t, "1000")

	resp, err := f.transactions.Deposit(context.Background(), models.DepositRequest{
		AccountNumber: "10000001",
		Pin:           "4321",
		Amount:        "500",
	})
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if resp.Data.Type != domain.EntryTypeDeposit {
		t.Fatalf("unexpected entry type: %s", resp.Data.Type)
	}
	if resp.Data.BalanceAfter != "1500.00" {
		t.Fatalf("expected balance 1500.00 after deposit, got %s", resp.Data.BalanceAfter)
	}

	account, err := f.repo.GetByAccountNumber(context.Background(), "10000001")
	if err != nil {
		t.Fatalf("lookup account: %v", err)
	}
	if account.Balance.StringFixed(2) != "1500.00" {
		t.Fatalf("stored balance diverged from ledger: %s", account.Balance.StringFixed(2))
	}
}

func TestTransactionServiceDepositRequiresAuthentication(t *testing.T) {
	f := newBankFixture(t, &digitScript{accountNumbers: []string{"10000001"}})
	f.openActiveAccount(t, "1000")

	_, err := f.transactions.Deposit(context.Background(), models.DepositRequest{
		AccountNumber: "10000001",
		Pin:           "0000",
		Amount:        "500",
	})
	if !errors.Is(err, domain.ErrAuthenticationFailed) {
		t.Fatalf("expected authentication failure for wrong pin, got %v", err)
	}

	account, err := f.repo.GetByAccountNumber(context.Background(), "10000001")
	if err != nil {
		t.Fatalf("lookup account: %v", err)
	}
	if account.Balance.StringFixed(2) != "1000.00" {
		t.Fatalf("balance changed by rejected deposit: %s", account.Balance.StringFixed(2))
	}
}

func TestTransactionServiceDepositRejectsPendingAccount(t *testing.T) {
	f := newBankFixture(t, &digitScript{accountNumbers: []string{"10000001"}})

	if _, err := f.accounts.CreateAccount(context.Background(), validCreateRequest()); err != nil {
		t.Fatalf("create account: %v", err)
	}

	_, err := f.transactions.Deposit(context.Background(), models.DepositRequest{
		AccountNumber: "10000001",
		Pin:           "4321",
		Amount:        "500",
	})
	if !errors.Is(err, domain.ErrAuthenticationFailed) {
		t.Fatalf("expected authentication failure for pending account, got %v", err)
	}
}

func TestTransactionServiceWithdrawInsufficientFunds(t *testing.T) {
	f := newBankFixture(t, &digitScript{accountNumbers: []string{"10000001"}})
	f.openActiveAccount(t, "1000")

	_, err := f.transactions.Withdraw(context.Background(), models.WithdrawRequest{
		AccountNumber: "10000001",
		Pin:           "4321",
		Amount:        "2000",
	})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds error, got %v", err)
	}

	account, err := f.repo.GetByAccountNumber(context.Background(), "10000001")
	if err != nil {
		t.Fatalf("lookup account: %v", err)
	}
	if account.Balance.StringFixed(2) != "1000.00" {
		t.Fatalf("balance changed by failed withdrawal: %s", account.Balance.StringFixed(2))
	}
	entries, err := f.repo.History(context.Background(), "10000001")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("failed withdrawal must not append a ledger entry, got %d", len(entries))
	}
}

func TestTransactionServiceWithdrawAllowsFullBalance(t *testing.T) {
	f := newBankFixture(t, &digitScript{accountNumbers: []string{"10000001"}})
	f.openActiveAccount(t, "1000")

	resp, err := f.transactions.Withdraw(context.Background(), models.WithdrawRequest{
		AccountNumber: "10000001",
		Pin:           "4321",
		Amount:        "1000",
	})
	if err != nil {
		t.Fatalf("withdraw full balance: %v", err)
	}
	if resp.Data.BalanceAfter != "0.00" {
		t.Fatalf("expected zero balance after full withdrawal, got %s", resp.Data.BalanceAfter)
	}
}

func TestTransactionServiceHistoryMostRecentFirst(t *testing.T) {
	f := newBankFixture(t, &digitScript{accountNumbers: []string{"10000001"}})
	f.openActiveAccount(t, "1000")

	deposits := []string{"200", "300"}
	for _, amount := range deposits {
		if _, err := f.transactions.Deposit(context.Background(), models.DepositRequest{
			AccountNumber: "10000001",
			Pin:           "4321",
			Amount:        amount,
		}); err != nil {
			t.Fatalf("deposit %s: %v", amount, err)
		}
	}
	if _, err := f.transactions.Withdraw(context.Background(), models.WithdrawRequest{
		AccountNumber: "10000001",
		Pin:           "4321",
		Amount:        "150",
	}); err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	resp, err := f.transactions.History(context.Background(), models.HistoryRequest{
		AccountNumber: "10000001",
		Pin:           "4321",
	})
	if err != nil {
		t.Fatalf("history: %v", err)
	}

	entries := resp.Data.Entries
	if len(entries) != 4 {
		t.Fatalf("expected 4 ledger entries, got %d", len(entries))
	}

	wantTypes := []string{domain.EntryTypeWithdrawal, domain.EntryTypeDeposit, domain.EntryTypeDeposit, domain.EntryTypeInitialDeposit}
	wantBalances := []string{"1350.00", "1500.00", "1200.00", "1000.00"}
	for i := range entries {
		if entries[i].Type != wantTypes[i] {
			t.Fatalf("entry %d: expected type %s, got %s", i, wantTypes[i], entries[i].Type)
		}
		if entries[i].BalanceAfter != wantBalances[i] {
			t.Fatalf("entry %d: expected balance after %s, got %s", i, wantBalances[i], entries[i].BalanceAfter)
		}
	}
}

func TestTransactionServiceHistoryRequiresAuthentication(t *testing.T) {
	f := newBankFixture(t, &digitScript{accountNumbers: []string{"10000001"}})
	f.openActiveAccount(t, "1000")

	_, err := f.transactions.History(context.Background(), models.HistoryRequest{
		AccountNumber: "10000001",
		Pin:           "0000",
	})
	if !errors.Is(err, domain.ErrAuthenticationFailed) {
		t.Fatalf("expected authentication failure, got %v", err)
	}
}
