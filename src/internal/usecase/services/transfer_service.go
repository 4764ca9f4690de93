package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Rajmund09/Mini-Banking-System/src/internal/adapter/http/models"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/adapter/repository/repo_interfaces"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/commons"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/domain"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/logger"
	"github.com/shopspring/decimal"
)

type TransferService struct {
	accountRepo repo_interfaces.AccountRepository
}

func NewTransferService(accountRepo repo_interfaces.AccountRepository) *TransferService {
	return &TransferService{accountRepo: accountRepo}
}

// TransferFunds checks preconditions in a fixed order, first failure wins:
// sender authenticates, sender and recipient differ, amount is positive and
// covered, recipient exists and is ACTIVE. The posting itself is one atomic
// unit in the gateway.
func (s *TransferService) TransferFunds(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error) {
	logger.Info("transfer service transfer request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()), fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	senderAccountNumber := strings.TrimSpace(req.SenderAccountNumber)
	recipientAccountNumber := strings.TrimSpace(req.RecipientAccountNumber)
	amount, _ := decimal.NewFromString(strings.TrimSpace(req.Amount))

	sender, err := authenticateAccount(ctx, s.accountRepo, senderAccountNumber, strings.TrimSpace(req.SenderPin))
	if err != nil {
		if errors.Is(err, domain.ErrAuthenticationFailed) {
			logger.Info("transfer service sender authentication rejected", logger.Fields{
				"senderAccountNumber": senderAccountNumber,
			})
			return commons.ErrorResponse[models.TransferResponse]("authentication failed", "sender account, pin or account status is invalid"), err
		}
		return commons.ErrorResponse[models.TransferResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}

	if senderAccountNumber == recipientAccountNumber {
		err := fmt.Errorf("%w: cannot transfer to the same account", domain.ErrValidation)
		return commons.ErrorResponse[models.TransferResponse]("validation failed", "cannot transfer to the same account"), err
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		err := fmt.Errorf("%w: amount must be greater than zero", domain.ErrValidation)
		return commons.ErrorResponse[models.TransferResponse]("validation failed", "amount must be greater than zero"), err
	}

	if sender.Balance.LessThan(amount) {
		logger.Info("transfer service insufficient funds", logger.Fields{
			"senderAccountNumber": senderAccountNumber,
		})
		return commons.ErrorResponse[models.TransferResponse]("Insufficient funds"), domain.ErrInsufficientFunds
	}

	recipient, err := s.accountRepo.GetByAccountNumber(ctx, recipientAccountNumber)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransferResponse]("Recipient account not found"), err
		}
		return commons.ErrorResponse[models.TransferResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}
	if recipient.Status != domain.AccountStatusActive {
		err := domain.ErrInvalidState
		return commons.ErrorResponse[models.TransferResponse]("transfer failed", "recipient account is not active"), err
	}

	senderEntry, _, err := s.accountRepo.Transfer(ctx, senderAccountNumber, recipientAccountNumber, amount)
	if err != nil {
		// The precondition may have gone stale under concurrency; the atomic
		// unit re-checks and rolls back, leaving both balances untouched.
		if errors.Is(err, domain.ErrInsufficientFunds) {
			return commons.ErrorResponse[models.TransferResponse]("Insufficient funds"), err
		}
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransferResponse]("Account not found"), err
		}
		if errors.Is(err, domain.ErrInvalidState) {
			return commons.ErrorResponse[models.TransferResponse]("transfer failed", "account is not active"), err
		}
		logger.Error("transfer service posting failed", err, logger.Fields{
			"senderAccountNumber":    senderAccountNumber,
			"recipientAccountNumber": recipientAccountNumber,
		})
		return commons.ErrorResponse[models.TransferResponse]("transfer failed", "Unable to complete transfer posting"), err
	}

	response := models.TransferResponse{
		SenderAccountNumber:    senderAccountNumber,
		RecipientAccountNumber: recipientAccountNumber,
		Amount:                 amount.StringFixed(2),
		SenderBalanceAfter:     senderEntry.BalanceAfter.StringFixed(2),
		Timestamp:              senderEntry.CreatedAt.Format(time.RFC3339),
	}

	logger.Info("transfer service transfer success", logger.Fields{
		"senderAccountNumber":    senderAccountNumber,
		"recipientAccountNumber": recipientAccountNumber,
	})

	return commons.SuccessResponse("transfer successful", response), nil
}
