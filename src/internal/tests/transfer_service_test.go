package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Rajmund09/Mini-Banking-System/src/internal/adapter/http/models"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/domain"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/usecase/services"
	"github.com/shopspring/decimal"
)

func TestTransferServiceValidationError(t *testing.T) {
	svc := services.NewTransferService(nil)

	_, err := svc.TransferFunds(context.Background(), models.TransferRequest{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for empty transfer request, got %v", err)
	}
}

func TestTransferServiceMovesFundsAndConservesTotal(t *testing.T) {
	f := newBankFixture(t, &digitScript{accountNumbers: []string{"10000001", "10000002"}})
	f.openActiveAccount(t, "2000")
	f.openActiveAccount(t, "1000")

	resp, err := f.transfers.TransferFunds(context.Background(), models.TransferRequest{
		SenderAccountNumber:    "10000001",
		RecipientAccountNumber: "10000002",
		Amount:                 "750",
		SenderPin:              "4321",
	})
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if resp.Data.SenderBalanceAfter != "1250.00" {
		t.Fatalf("expected sender balance 1250.00, got %s", resp.Data.SenderBalanceAfter)
	}

	sender, err := f.repo.GetByAccountNumber(context.Background(), "10000001")
	if err != nil {
		t.Fatalf("lookup sender: %v", err)
	}
	recipient, err := f.repo.GetByAccountNumber(context.Background(), "10000002")
	if err != nil {
		t.Fatalf("lookup recipient: %v", err)
	}

	if recipient.Balance.StringFixed(2) != "1750.00" {
		t.Fatalf("expected recipient balance 1750.00, got %s", recipient.Balance.StringFixed(2))
	}
	total := sender.Balance.Add(recipient.Balance)
	if !total.Equal(decimal.NewFromInt(3000)) {
		t.Fatalf("transfer must conserve the combined balance, got %s", total.StringFixed(2))
	}

	senderEntries, err := f.repo.History(context.Background(), "10000001")
	if err != nil {
		t.Fatalf("sender history: %v", err)
	}
	if senderEntries[0].Type != "Transfer Out to 10000002" {
		t.Fatalf("unexpected sender entry type: %s", senderEntries[0].Type)
	}
	recipientEntries, err := f.repo.History(context.Background(), "10000002")
	if err != nil {
		t.Fatalf("recipient history: %v", err)
	}
	if recipientEntries[0].Type != "Transfer In from 10000001" {
		t.Fatalf("unexpected recipient entry type: %s", recipientEntries[0].Type)
	}
}

func TestTransferServiceRejectsNonPositiveAmount(t *testing.T) {
	f := newBankFixture(t, &digitScript{accountNumbers: []string{"10000001", "10000002"}})
	f.openActiveAccount(t, "2000")
	f.openActiveAccount(t, "1000")

	_, err := f.transfers.TransferFunds(context.Background(), models.TransferRequest{
		SenderAccountNumber:    "10000001",
		RecipientAccountNumber: "10000002",
		Amount:                 "-100",
		SenderPin:              "4321",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for non-positive amount, got %v", err)
	}
}

func TestTransferServiceAuthenticatesBeforeAmountCheck(t *testing.T) {
	f := newBankFixture(t, &digitScript{accountNumbers: []string{"10000001", "10000002"}})
	f.openActiveAccount(t, "2000")
	f.openActiveAccount(t, "1000")

	// A bad pin and a bad amount together fail on the pin: authentication is
	// the first precondition.
	_, err := f.transfers.TransferFunds(context.Background(), models.TransferRequest{
		SenderAccountNumber:    "10000001",
		RecipientAccountNumber: "10000002",
		Amount:                 "-100",
		SenderPin:              "0000",
	})
	if !errors.Is(err, domain.ErrAuthenticationFailed) {
		t.Fatalf("expected authentication failure to win over amount check, got %v", err)
	}
}

func TestTransferServiceRejectsSameAccount(t *testing.T) {
	f := newBankFixture(t, &digitScript{accountNumbers: []string{"10000001"}})
	f.openActiveAccount(t, "2000")

	_, err := f.transfers.TransferFunds(context.Background(), models.TransferRequest{
		SenderAccountNumber:    "10000001",
		RecipientAccountNumber: "10000001",
		Amount:                 "100",
		SenderPin:              "4321",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for same-account transfer, got %v", err)
	}
}

func TestTransferServiceInsufficientFunds(t *testing.T) {
	f := newBankFixture(t, &digitScript{accountNumbers: []string{"10000001", "10000002"}})
	f.openActiveAccount(t, "1000")
	f.openActiveAccount(t, "1000")

	_, err := f.transfers.TransferFunds(context.Background(), models.TransferRequest{
		SenderAccountNumber:    "10000001",
		RecipientAccountNumber: "10000002",
		Amount:                 "1500",
		SenderPin:              "4321",
	})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds error, got %v", err)
	}

	sender, err := f.repo.GetByAccountNumber(context.Background(), "10000001")
	if err != nil {
		t.Fatalf("lookup sender: %v", err)
	}
	recipient, err := f.repo.GetByAccountNumber(context.Background(), "10000002")
	if err != nil {
		t.Fatalf("lookup recipient: %v", err)
	}
	if sender.Balance.StringFixed(2) != "1000.00" || recipient.Balance.StringFixed(2) != "1000.00" {
		t.Fatal("failed transfer must leave both balances untouched")
	}
}

func TestTransferServiceRecipientNotFound(t *testing.T) {
	f := newBankFixture(t, &digitScript{accountNumbers: []string{"10000001"}})
	f.openActiveAccount(t, "2000")

	_, err := f.transfers.TransferFunds(context.Background(), models.TransferRequest{
		SenderAccountNumber:    "10000001",
		RecipientAccountNumber: "10009999",
		Amount:                 "100",
		SenderPin:              "4321",
	})
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected not found error for missing recipient, got %v", err)
	}
}

func TestTransferServiceRejectsPendingRecipient(t *testing.T) {
	f := newBankFixture(t, &digitScript{accountNumbers: []string{"10000001", "10000002"}})
	f.openActiveAccount(t, "2000")
	if _, err := f.accounts.CreateAccount(context.Background(), validCreateRequest()); err != nil {
		t.Fatalf("create pending recipient: %v", err)
	}

	_, err := f.transfers.TransferFunds(context.Background(), models.TransferRequest{
		SenderAccountNumber:    "10000001",
		RecipientAccountNumber: "10000002",
		Amount:                 "100",
		SenderPin:              "4321",
	})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected invalid state error for pending recipient, got %v", err)
	}
}

func TestTransferServiceRequiresSenderPin(t *testing.T) {
	f := newBankFixture(t, &digitScript{accountNumbers: []string{"10000001", "10000002"}})
	f.openActiveAccount(t, "2000")
	f.openActiveAccount(t, "1000")

	_, err := f.transfers.TransferFunds(context.Background(), models.TransferRequest{
		SenderAccountNumber:    "10000001",
		RecipientAccountNumber: "10000002",
		Amount:                 "100",
		SenderPin:              "0000",
	})
	if !errors.Is(err, domain.ErrAuthenticationFailed) {
		t.Fatalf("expected authentication failure for wrong sender pin, got %v", err)
	}
}
