package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/Rajmund09/Mini-Banking-System/src/internal/adapter/http/models"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/adapter/repository/memory"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/notifier"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/usecase/services"
)

// digitScript replays a fixed sequence of account numbers and one-time
// passwords so tests control every generated identifier.
type digitScript struct {
	mu             sync.Mutex
	accountNumbers []string
	otps           []string
}

func (s *digitScript) AccountNumber() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.accountNumbers) == 0 {
		return "99999999"
	}
	next := s.accountNumbers[0]
	if len(s.accountNumbers) > 1 {
		s.accountNumbers = s.accountNumbers[1:]
	}
	return next
}

func (s *digitScript) OTP() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.otps) == 0 {
		return "000000"
	}
	next := s.otps[0]
	if len(s.otps) > 1 {
		s.otps = s.otps[1:]
	}
	return next
}

// recordingNotifier captures every dispatched email for assertion.
type recordingNotifier struct {
	mu     sync.Mutex
	emails []notifier.Email
}

func (r *recordingNotifier) Notify(_ context.Context, email notifier.Email) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.emails = append(r.emails, email)
	return nil
}

func (r *recordingNotifier) sent() []notifier.Email {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]notifier.Email, len(r.emails))
	copy(out, r.emails)
	return out
}

type bankFixture struct {
	repo         *memory.AccountRepository
	digits       *digitScript
	recorder     *recordingNotifier
	dispatcher   *notifier.Dispatcher
	accounts     *services.AccountService
	transactions *services.TransactionService
	transfers    *services.TransferService
	updates      *services.UpdateService
}

func newBankFixture(t *testing.T, digits *digitScript) *bankFixture {
	t.Helper()

	if digits == nil {
		digits = &digitScript{}
	}

	repo := memory.NewAccountRepository()
	recorder := &recordingNotifier{}
	dispatcher := notifier.NewDispatcher(recorder, 16)
	t.Cleanup(dispatcher.Close)

	return &bankFixture{
		repo:         repo,
		digits:       digits,
		recorder:     recorder,
		dispatcher:   dispatcher,
		accounts:     services.NewAccountService(repo, memory.NewBankRepository(), digits, dispatcher),
		transactions: services.NewTransactionService(repo, repo),
		transfers:    services.NewTransferService(repo),
		updates:      services.NewUpdateService(repo, digits, dispatcher),
	}
}

func validCreateRequest() models.CreateAccountRequest {
	return models.CreateAccountRequest{
		HolderName:     "Asha Verma",
		Pin:            "4321",
		Email:          "asha.verma@example.com",
		Phone:          "9876543210",
		DateOfBirth:    "1990-05-14",
		BankName:       "HDFC Bank",
		AccountType:    "Savings",
		InitialDeposit: "1000",
	}
}

// openActiveAccount creates and approves an account, returning its number.
func (f *bankFixture) openActiveAccount(t *testing.T, deposit string) string {
	t.Helper()

	req := validCreateRequest()
	req.InitialDeposit = deposit

	created, err := f.accounts.CreateAccount(context.Background(), req)
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	accountNumber := created.Data.AccountNumber
	if _, err := f.accounts.ApproveAccount(context.Background(), accountNumber); err != nil {
		t.Fatalf("approve account %s: %v", accountNumber, err)
	}
	return accountNumber
}
