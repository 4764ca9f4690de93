package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rajmund09/Mini-Banking-System/src/internal/adapter/repository/repo_interfaces"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// authenticateAccount is the single identity gate: the account must exist, be
// ACTIVE and the PIN must match. Every failure mode collapses into
// ErrAuthenticationFailed so a caller cannot probe which part was wrong.
func authenticateAccount(ctx context.Context, repo repo_interfaces.AccountRepository, accountNumber string, pin string) (domain.Account, error) {
	account, err := repo.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Account{}, domain.ErrAuthenticationFailed
		}
		return domain.Account{}, err
	}

	if account.Status != domain.AccountStatusActive {
		return domain.Account{}, domain.ErrAuthenticationFailed
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PinHash), []byte(pin)); err != nil {
		return domain.Account{}, domain.ErrAuthenticationFailed
	}

	return account, nil
}

func hashPin(pin string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash pin: %w", err)
	}

	return string(hashed), nil
}
