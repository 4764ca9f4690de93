package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Rajmund09/Mini-Banking-System/src/internal/adapter/http/models"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/domain"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/usecase/services"
)

func TestUpdateServiceIssueOTPValidationError(t *testing.T) {
	svc := services.NewUpdateService(nil, nil, nil)

	_, err := svc.IssueOTP(context.Background(), models.IssueOTPRequest{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for empty issue otp request, got %v", err)
	}
}

func TestUpdateServiceIssueOTPStoresAndMailsSecret(t *testing.T) {
	f := newBankFixture(t, &digitScript{
		accountNumbers: []string{"10000001"},
		otps:           []string{"123456"},
	})
	f.openActiveAccount(t, "1000")

	resp, err := f.updates.IssueOTP(context.Background(), models.IssueOTPRequest{AccountNumber: "10000001"})
	if err != nil {
		t.Fatalf("issue otp: %v", err)
	}
	if resp.Data.OTP != "123456" {
		t.Fatalf("expected scripted otp in response, got %s", resp.Data.OTP)
	}

	account, err := f.repo.GetByAccountNumber(context.Background(), "10000001")
	if err != nil {
		t.Fatalf("lookup account: %v", err)
	}
	if account.OTP != "123456" {
		t.Fatalf("expected otp stored on account, got %q", account.OTP)
	}

	f.dispatcher.Close()
	emails := f.recorder.sent()
	last := emails[len(emails)-1]
	if !strings.Contains(last.Subject, "One-Time Password") {
		t.Fatalf("expected otp email, got subject %s", last.Subject)
	}
	if !strings.Contains(last.Body, "123456") {
		t.Fatal("otp email should carry the secret")
	}
}

func TestUpdateServiceIssueOTPRejectsPendingAccount(t *testing.T) {
	f := newBankFixture(t, &digitScript{accountNumbers: []string{"10000001"}})
	if _, err := f.accounts.CreateAccount(context.Background(), validCreateRequest()); err != nil {
		t.Fatalf("create account: %v", err)
	}

	_, err := f.updates.IssueOTP(context.Background(), models.IssueOTPRequest{AccountNumber: "10000001"})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected invalid state error for pending account, got %v", err)
	}
}

func TestUpdateServiceApplyUpdateChangesField(t *testing.T) {
	f := newBankFixture(t, &digitScript{
		accountNumbers: []string{"10000001"},
		otps:           []string{"123456"},
	})
	f.openActiveAccount(t, "1000")

	if _, err := f.updates.IssueOTP(context.Background(), models.IssueOTPRequest{AccountNumber: "10000001"}); err != nil {
		t.Fatalf("issue otp: %v", err)
	}

	resp, err := f.updates.ApplyUpdate(context.Background(), models.ApplyUpdateRequest{
		AccountNumber: "10000001",
		Field:         "email",
		NewValue:      "new.address@example.com",
		OTP:           "123456",
	})
	if err != nil {
		t.Fatalf("apply update: %v", err)
	}
	if resp.Data.Field != "email" {
		t.Fatalf("unexpected field in response: %s", resp.Data.Field)
	}

	account, err := f.repo.GetByAccountNumber(context.Background(), "10000001")
	if err != nil {
		t.Fatalf("lookup account: %v", err)
	}
	if account.Email != "new.address@example.com" {
		t.Fatalf("email not updated, got %s", account.Email)
	}
	if account.OTP != "" {
		t.Fatal("otp must be cleared after a successful update")
	}
}

func TestUpdateServiceApplyUpdateBurnsOTPOnMismatch(t *testing.T) {
	f := newBankFixture(t, &digitScript{
		accountNumbers: []string{"10000001"},
		otps:           []string{"123456"},
	})
	f.openActiveAccount(t, "1000")

	if _, err := f.updates.IssueOTP(context.Background(), models.IssueOTPRequest{AccountNumber: "10000001"}); err != nil {
		t.Fatalf("issue otp: %v", err)
	}

	_, err := f.updates.ApplyUpdate(context.Background(), models.ApplyUpdateRequest{
		AccountNumber: "10000001",
		Field:         "email",
		NewValue:      "new.address@example.com",
		OTP:           "654321",
	})
	if !errors.Is(err, domain.ErrOTPMismatch) {
		t.Fatalf("expected otp mismatch error, got %v", err)
	}

	// The wrong guess consumed the secret; the original code no longer works.
	_, err = f.updates.ApplyUpdate(context.Background(), models.ApplyUpdateRequest{
		AccountNumber: "10000001",
		Field:         "email",
		NewValue:      "new.address@example.com",
		OTP:           "123456",
	})
	if !errors.Is(err, domain.ErrOTPMismatch) {
		t.Fatalf("expected otp mismatch after secret was burnt, got %v", err)
	}
}

func TestUpdateServiceApplyUpdateUnknownFieldStillConsumesOTP(t *testing.T) {
	f := newBankFixture(t, &digitScript{
		accountNumbers: []string{"10000001"},
		otps:           []string{"123456"},
	})
	f.openActiveAccount(t, "1000")

	if _, err := f.updates.IssueOTP(context.Background(), models.IssueOTPRequest{AccountNumber: "10000001"}); err != nil {
		t.Fatalf("issue otp: %v", err)
	}

	_, err := f.updates.ApplyUpdate(context.Background(), models.ApplyUpdateRequest{
		AccountNumber: "10000001",
		Field:         "balance",
		NewValue:      "1000000",
		OTP:           "123456",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for non-updatable field, got %v", err)
	}

	account, err := f.repo.GetByAccountNumber(context.Background(), "10000001")
	if err != nil {
		t.Fatalf("lookup account: %v", err)
	}
	if account.OTP != "" {
		t.Fatal("verification attempt must consume the otp even when the field is rejected")
	}
}

func TestUpdateServiceApplyUpdateWithoutIssuedOTP(t *testing.T) {
	f := newBankFixture(t, &digitScript{accountNumbers: []string{"10000001"}})
	f.openActiveAccount(t, "1000")

	_, err := f.updates.ApplyUpdate(context.Background(), models.ApplyUpdateRequest{
		AccountNumber: "10000001",
		Field:         "email",
		NewValue:      "new.address@example.com",
		OTP:           "123456",
	})
	if !errors.Is(err, domain.ErrOTPMismatch) {
		t.Fatalf("expected otp mismatch when no otp was issued, got %v", err)
	}
}

func TestUpdateServiceApplyUpdateRehashesPin(t *testing.T) {
	f := newBankFixture(t, &digitScript{
		accountNumbers: []string{"10000001"},
		otps:           []string{"123456"},
	})
	f.openActiveAccount(t, "1000")

	if _, err := f.updates.IssueOTP(context.Background(), models.IssueOTPRequest{AccountNumber: "10000001"}); err != nil {
		t.Fatalf("issue otp: %v", err)
	}
	if _, err := f.updates.ApplyUpdate(context.Background(), models.ApplyUpdateRequest{
		AccountNumber: "10000001",
		Field:         "pin",
		NewValue:      "9876",
		OTP:           "123456",
	}); err != nil {
		t.Fatalf("apply pin update: %v", err)
	}

	account, err := f.repo.GetByAccountNumber(context.Background(), "10000001")
	if err != nil {
		t.Fatalf("lookup account: %v", err)
	}
	if account.PinHash == "9876" {
		t.Fatal("new pin must not be stored in the clear")
	}

	if _, err := f.accounts.Login(context.Background(), models.LoginRequest{AccountNumber: "10000001", Pin: "9876"}); err != nil {
		t.Fatalf("login with new pin: %v", err)
	}
	if _, err := f.accounts.Login(context.Background(), models.LoginRequest{AccountNumber: "10000001", Pin: "4321"}); !errors.Is(err, domain.ErrAuthenticationFailed) {
		t.Fatalf("expected old pin rejected after update, got %v", err)
	}
}
