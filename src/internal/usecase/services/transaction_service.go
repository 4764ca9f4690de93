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

type TransactionService struct {
	accountRepo repo_interfaces.AccountRepository
	ledgerRepo  repo_interfaces.LedgerRepository
}

func NewTransactionService(
	accountRepo repo_interfaces.AccountRepository,
	ledgerRepo repo_interfaces.LedgerRepository,
) *TransactionService {
	return &TransactionService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

func (s *TransactionService) Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.MutationResponse], error) {
	logger.Info("transaction service deposit request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.MutationResponse]("validation failed", err.Error()), fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	accountNumber := strings.TrimSpace(req.AccountNumber)
	amount, _ := decimal.NewFromString(strings.TrimSpace(req.Amount))

	if _, err := authenticateAccount(ctx, s.accountRepo, accountNumber, strings.TrimSpace(req.Pin)); err != nil {
		if errors.Is(err, domain.ErrAuthenticationFailed) {
			return commons.ErrorResponse[models.MutationResponse]("authentication failed", "account number, pin or account status is invalid"), err
		}
		return commons.ErrorResponse[models.MutationResponse]("failed to deposit funds", "Unable to deposit funds right now"), err
	}

	entry, err := s.accountRepo.Deposit(ctx, accountNumber, amount)
	if err != nil {
		logger.Error("transaction service deposit failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.MutationResponse]("Account not found"), err
		}
		return commons.ErrorResponse[models.MutationResponse]("failed to deposit funds", "Unable to deposit funds right now"), err
	}

	logger.Info("transaction service deposit success", logger.Fields{
		"accountNumber": accountNumber,
	})

	return commons.SuccessResponse("deposit successful", mapEntryToMutationResponse(entry)), nil
}

func (s *TransactionService) Withdraw(ctx context.Context, req models.WithdrawRequest) (commons.Response[models.MutationResponse], error) {
	logger.Info("transaction service withdraw request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.MutationResponse]("validation failed", err.Error()), fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	accountNumber := strings.TrimSpace(req.AccountNumber)
	amount, _ := decimal.NewFromString(strings.TrimSpace(req.Amount))

	if _, err := authenticateAccount(ctx, s.accountRepo, accountNumber, strings.TrimSpace(req.Pin)); err != nil {
		if errors.Is(err, domain.ErrAuthenticationFailed) {
			return commons.ErrorResponse[models.MutationResponse]("authentication failed", "account number, pin or account status is invalid"), err
		}
		return commons.ErrorResponse[models.MutationResponse]("failed to withdraw funds", "Unable to withdraw funds right now"), err
	}

	entry, err := s.accountRepo.Withdraw(ctx, accountNumber, amount)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			logger.Info("transaction service withdraw rejected", logger.Fields{
				"accountNumber": accountNumber,
			})
			return commons.ErrorResponse[models.MutationResponse]("Insufficient funds"), err
		}
		logger.Error("transaction service withdraw failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.MutationResponse]("Account not found"), err
		}
		return commons.ErrorResponse[models.MutationResponse]("failed to withdraw funds", "Unable to withdraw funds right now"), err
	}

	logger.Info("transaction service withdraw success", logger.Fields{
		"accountNumber": accountNumber,
	})

	return commons.SuccessResponse("withdrawal successful", mapEntryToMutationResponse(entry)), nil
}

func (s *TransactionService) History(ctx context.Context, req models.HistoryRequest) (commons.Response[models.HistoryResponse], error) {
	logger.Info("transaction service history request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.HistoryResponse]("validation failed", err.Error()), fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	accountNumber := strings.TrimSpace(req.AccountNumber)

	if _, err := authenticateAccount(ctx, s.accountRepo, accountNumber, strings.TrimSpace(req.Pin)); err != nil {
		if errors.Is(err, domain.ErrAuthenticationFailed) {
			return commons.ErrorResponse[models.HistoryResponse]("authentication failed", "account number, pin or account status is invalid"), err
		}
		return commons.ErrorResponse[models.HistoryResponse]("failed to fetch history", "Unable to fetch history right now"), err
	}

	entries, err := s.ledgerRepo.History(ctx, accountNumber)
	if err != nil {
		logger.Error("transaction service history failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return commons.ErrorResponse[models.HistoryResponse]("failed to fetch history", "Unable to fetch history right now"), err
	}

	response := models.HistoryResponse{
		AccountNumber: accountNumber,
		Entries:       make([]models.LedgerEntryResponse, 0, len(entries)),
	}
	for _, entry := range entries {
		response.Entries = append(response.Entries, models.LedgerEntryResponse{
			Type:         entry.Type,
			Amount:       entry.Amount.StringFixed(2),
			BalanceAfter: entry.BalanceAfter.StringFixed(2),
			Timestamp:    entry.CreatedAt.Format(time.RFC3339),
		})
	}

	return commons.SuccessResponse("history fetched successfully", response), nil
}

func mapEntryToMutationResponse(entry domain.LedgerEntry) models.MutationResponse {
	return models.MutationResponse{
		AccountNumber: entry.AccountNumber,
		Type:          entry.Type,
		Amount:        entry.Amount.StringFixed(2),
		BalanceAfter:  entry.BalanceAfter.StringFixed(2),
		Timestamp:     entry.CreatedAt.Format(time.RFC3339),
	}
}
