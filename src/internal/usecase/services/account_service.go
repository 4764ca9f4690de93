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
	"github.com/Rajmund09/Mini-Banking-System/src/internal/idgen"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/logger"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/notifier"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var minimumInitialDeposit = decimal.NewFromInt(1000)

const minimumHolderAge = 18

// accountNumberAttempts bounds the collision-retry loop when generating a new
// account number against the store's uniqueness constraint.
const accountNumberAttempts = 5

type AccountService struct {
	accountRepo repo_interfaces.AccountRepository
	bankRepo    repo_interfaces.BankRepository
	digits      idgen.DigitSource
	dispatcher  *notifier.Dispatcher
}

func NewAccountService(
	accountRepo repo_interfaces.AccountRepository,
	bankRepo repo_interfaces.BankRepository,
	digits idgen.DigitSource,
	dispatcher *notifier.Dispatcher,
) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		bankRepo:    bankRepo,
		digits:      digits,
		dispatcher:  dispatcher,
	}
}

func (s *AccountService) CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.CreateAccountResponse], error) {
	logger.Info("account service create account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service create account validation failed", err, nil)
		return commons.ErrorResponse[models.CreateAccountResponse]("validation failed", err.Error()), fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	initialDeposit, err := decimal.NewFromString(strings.TrimSpace(req.InitialDeposit))
	if err != nil {
		return commons.ErrorResponse[models.CreateAccountResponse]("validation failed", "initialDeposit must be numeric"), fmt.Errorf("%w: initialDeposit must be numeric", domain.ErrValidation)
	}
	if initialDeposit.LessThan(minimumInitialDeposit) {
		err := fmt.Errorf("%w: initial deposit must be at least %s", domain.ErrValidation, minimumInitialDeposit.StringFixed(2))
		return commons.ErrorResponse[models.CreateAccountResponse]("validation failed", "initial deposit must be at least 1000"), err
	}

	dateOfBirth, err := time.Parse("2006-01-02", strings.TrimSpace(req.DateOfBirth))
	if err != nil {
		return commons.ErrorResponse[models.CreateAccountResponse]("validation failed", "dateOfBirth must be in YYYY-MM-DD format"), fmt.Errorf("%w: dateOfBirth must be in YYYY-MM-DD format", domain.ErrValidation)
	}
	if ageInYears(dateOfBirth, time.Now()) < minimumHolderAge {
		err := fmt.Errorf("%w: account holder must be 18 years or older", domain.ErrValidation)
		return commons.ErrorResponse[models.CreateAccountResponse]("validation failed", "account holder must be 18 years or older"), err
	}

	bankName := strings.TrimSpace(req.BankName)
	supported, err := s.isSupportedBank(ctx, bankName)
	if err != nil {
		return commons.ErrorResponse[models.CreateAccountResponse]("failed to create account", "Unable to create account right now"), err
	}
	if !supported {
		err := fmt.Errorf("%w: bank %q is not supported", domain.ErrValidation, bankName)
		return commons.ErrorResponse[models.CreateAccountResponse]("validation failed", "bankName is not supported"), err
	}

	pinHash, err := hashPin(strings.TrimSpace(req.Pin))
	if err != nil {
		logger.Error("account service create account hash pin failed", err, nil)
		return commons.ErrorResponse[models.CreateAccountResponse]("failed to create account", "Unable to create account right now"), err
	}

	account := domain.Account{
		HolderName:     strings.TrimSpace(req.HolderName),
		PinHash:        pinHash,
		Balance:        decimal.Zero,
		Email:          strings.TrimSpace(req.Email),
		Phone:          strings.TrimSpace(req.Phone),
		Status:         domain.AccountStatusPending,
		DateOfBirth:    dateOfBirth,
		BankName:       bankName,
		AccountType:    strings.TrimSpace(req.AccountType),
		InitialDeposit: initialDeposit,
	}

	var created domain.Account
	for attempt := 0; attempt < accountNumberAttempts; attempt++ {
		account.AccountNumber = s.digits.AccountNumber()
		created, err = s.accountRepo.Create(ctx, account)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDuplicateRecord) {
			logger.Error("account service create account repository failed", err, logger.Fields{
				"accountNumber": account.AccountNumber,
			})
			return commons.ErrorResponse[models.CreateAccountResponse]("failed to create account", "Unable to create account right now"), err
		}
	}
	if err != nil {
		logger.Error("account service create account number generation exhausted", err, nil)
		return commons.ErrorResponse[models.CreateAccountResponse]("failed to create account", "Unable to create account right now"), err
	}

	s.dispatcher.Enqueue(notifier.Email{
		EventID: uuid.NewString(),
		To:      created.Email,
		Subject: "Welcome to " + created.BankName + " - Account Pending Approval",
		Body:    buildPendingEmailBody(created),
	})

	response := models.CreateAccountResponse{
		AccountNumber:  created.AccountNumber,
		HolderName:     created.HolderName,
		BankName:       created.BankName,
		AccountType:    created.AccountType,
		InitialDeposit: created.InitialDeposit.StringFixed(2),
		Status:         string(created.Status),
		Balance:        created.Balance.StringFixed(2),
		CreatedAt:      created.CreatedAt.Format(time.RFC3339),
	}

	logger.Info("account service create account success", logger.Fields{
		"accountNumber": response.AccountNumber,
		"status":        response.Status,
	})

	return commons.SuccessResponse("account created successfully", response), nil
}

func (s *AccountService) Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service login request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	account, err := authenticateAccount(ctx, s.accountRepo, strings.TrimSpace(req.AccountNumber), strings.TrimSpace(req.Pin))
	if err != nil {
		if errors.Is(err, domain.ErrAuthenticationFailed) {
			logger.Info("account service login rejected", logger.Fields{
				"accountNumber": req.AccountNumber,
			})
			return commons.ErrorResponse[models.AccountResponse]("authentication failed", "account number, pin or account status is invalid"), err
		}
		logger.Error("account service login failed", err, logger.Fields{
			"accountNumber": req.AccountNumber,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to login", "Unable to login right now"), err
	}

	response := mapAccountToResponse(account)

	logger.Info("account service login success", logger.Fields{
		"accountNumber": account.AccountNumber,
	})

	return commons.SuccessResponse("login successful", response), nil
}

func (s *AccountService) ApproveAccount(ctx context.Context, accountNumber string) (commons.Response[models.ApproveAccountResponse], error) {
	logger.Info("account service approve account request", logger.Fields{
		"accountNumber": accountNumber,
	})

	accountNumber = strings.TrimSpace(accountNumber)
	if !models.IsAccountNumber(accountNumber) {
		return commons.ErrorResponse[models.ApproveAccountResponse]("validation failed", "accountNumber must be exactly 8 digits"), fmt.Errorf("%w: accountNumber must be exactly 8 digits", domain.ErrValidation)
	}

	account, err := s.accountRepo.Approve(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.ApproveAccountResponse]("Account not found"), err
		}
		if errors.Is(err, domain.ErrInvalidState) {
			return commons.ErrorResponse[models.ApproveAccountResponse]("approval failed", "account is not pending approval"), err
		}
		logger.Error("account service approve account failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return commons.ErrorResponse[models.ApproveAccountResponse]("failed to approve account", "Unable to approve account right now"), err
	}

	s.dispatcher.Enqueue(notifier.Email{
		EventID: uuid.NewString(),
		To:      account.Email,
		Subject: "Your " + account.BankName + " Account is Now Active!",
		Body:    buildActivationEmailBody(account),
	})

	response := models.ApproveAccountResponse{
		AccountNumber: account.AccountNumber,
		Status:        string(account.Status),
		Balance:       account.Balance.StringFixed(2),
	}

	logger.Info("account service approve account success", logger.Fields{
		"accountNumber": account.AccountNumber,
	})

	return commons.SuccessResponse("account approved successfully", response), nil
}

func (s *AccountService) DeleteAccount(ctx context.Context, accountNumber string) (commons.Response[models.DeleteAccountResponse], error) {
	logger.Info("account service delete account request", logger.Fields{
		"accountNumber": accountNumber,
	})

	accountNumber = strings.TrimSpace(accountNumber)
	if !models.IsAccountNumber(accountNumber) {
		return commons.ErrorResponse[models.DeleteAccountResponse]("validation failed", "accountNumber must be exactly 8 digits"), fmt.Errorf("%w: accountNumber must be exactly 8 digits", domain.ErrValidation)
	}

	if err := s.accountRepo.Delete(ctx, accountNumber); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.DeleteAccountResponse]("Account not found"), err
		}
		logger.Error("account service delete account failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return commons.ErrorResponse[models.DeleteAccountResponse]("failed to delete account", "Unable to delete account right now"), err
	}

	logger.Info("account service delete account success", logger.Fields{
		"accountNumber": accountNumber,
	})

	return commons.SuccessResponse("account deleted successfully", models.DeleteAccountResponse{AccountNumber: accountNumber}), nil
}

func (s *AccountService) ListPendingAccounts(ctx context.Context) (commons.Response[models.PendingAccountsResponse], error) {
	pending, err := s.accountRepo.ListPending(ctx)
	if err != nil {
		logger.Error("account service list pending accounts failed", err, nil)
		return commons.ErrorResponse[models.PendingAccountsResponse]("failed to list pending accounts", "Unable to list pending accounts right now"), err
	}

	response := models.PendingAccountsResponse{
		Accounts: make([]models.PendingAccountResponse, 0, len(pending)),
	}
	for _, p := range pending {
		response.Accounts = append(response.Accounts, models.PendingAccountResponse{
			AccountNumber: p.AccountNumber,
			HolderName:    p.HolderName,
			Email:         p.Email,
		})
	}

	return commons.SuccessResponse("pending accounts fetched successfully", response), nil
}

func (s *AccountService) ListBanks(ctx context.Context) (commons.Response[models.BankListResponse], error) {
	banks, err := s.bankRepo.GetAll(ctx)
	if err != nil {
		logger.Error("account service list banks failed", err, nil)
		return commons.ErrorResponse[models.BankListResponse]("failed to list banks", "Unable to list banks right now"), err
	}

	response := models.BankListResponse{Banks: make([]string, 0, len(banks))}
	for _, bank := range banks {
		response.Banks = append(response.Banks, bank.BankName)
	}

	return commons.SuccessResponse("banks fetched successfully", response), nil
}

func (s *AccountService) isSupportedBank(ctx context.Context, bankName string) (bool, error) {
	banks, err := s.bankRepo.GetAll(ctx)
	if err != nil {
		logger.Error("account service bank catalog lookup failed", err, nil)
		return false, err
	}

	for _, bank := range banks {
		if strings.EqualFold(strings.TrimSpace(bank.BankName), bankName) {
			return true, nil
		}
	}
	return false, nil
}

func mapAccountToResponse(account domain.Account) models.AccountResponse {
	return models.AccountResponse{
		AccountNumber: account.AccountNumber,
		HolderName:    account.HolderName,
		Email:         account.Email,
		Phone:         account.Phone,
		Balance:       account.Balance.StringFixed(2),
		Status:        string(account.Status),
		BankName:      account.BankName,
		AccountType:   account.AccountType,
		DateOfBirth:   account.DateOfBirth.Format("2006-01-02"),
		CreatedAt:     account.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     account.UpdatedAt.Format(time.RFC3339),
	}
}

func ageInYears(dateOfBirth time.Time, now time.Time) int {
	years := now.Year() - dateOfBirth.Year()
	anniversary := dateOfBirth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}
