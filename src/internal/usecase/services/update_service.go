package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Rajmund09/Mini-Banking-System/src/internal/adapter/http/models"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/adapter/repository/repo_interfaces"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/commons"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/domain"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/idgen"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/logger"
	"github.com/Rajmund09/Mini-Banking-System/src/internal/notifier"
	"github.com/google/uuid"
)

// UpdateService gates mutation of the sensitive account fields behind a
// single-use secret. The secret is consumed by every verification attempt,
// matched or not, so a wrong guess forces re-issuance.
type UpdateService struct {
	accountRepo repo_interfaces.AccountRepository
	digits      idgen.DigitSource
	dispatcher  *notifier.Dispatcher
}

func NewUpdateService(
	accountRepo repo_interfaces.AccountRepository,
	digits idgen.DigitSource,
	dispatcher *notifier.Dispatcher,
) *UpdateService {
	return &UpdateService{
		accountRepo: accountRepo,
		digits:      digits,
		dispatcher:  dispatcher,
	}
}

func (s *UpdateService) IssueOTP(ctx context.Context, req models.IssueOTPRequest) (commons.Response[models.IssueOTPResponse], error) {
	logger.Info("update service issue otp request", logger.Fields{
		"accountNumber": req.AccountNumber,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.IssueOTPResponse]("validation failed", err.Error()), fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	accountNumber := strings.TrimSpace(req.AccountNumber)

	account, err := s.accountRepo.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.IssueOTPResponse]("Account not found"), err
		}
		logger.Error("update service issue otp lookup failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return commons.ErrorResponse[models.IssueOTPResponse]("failed to issue otp", "Unable to issue otp right now"), err
	}
	if account.Status != domain.AccountStatusActive {
		err := domain.ErrInvalidState
		return commons.ErrorResponse[models.IssueOTPResponse]("otp issuance failed", "account is not active"), err
	}

	otp := s.digits.OTP()
	if err := s.accountRepo.StoreOTP(ctx, accountNumber, otp); err != nil {
		logger.Error("update service store otp failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.IssueOTPResponse]("Account not found"), err
		}
		return commons.ErrorResponse[models.IssueOTPResponse]("failed to issue otp", "Unable to issue otp right now"), err
	}

	s.dispatcher.Enqueue(notifier.Email{
		EventID: uuid.NewString(),
		To:      account.Email,
		Subject: "Your One-Time Password (OTP) for Account Update",
		Body:    buildOTPEmailBody(account, otp),
	})

	logger.Info("update service issue otp success", logger.Fields{
		"accountNumber": accountNumber,
	})

	// The secret goes back to the caller's session context only; it is never
	// written to logs.
	response := models.IssueOTPResponse{
		AccountNumber: accountNumber,
		OTP:           otp,
	}

	return commons.SuccessResponse("otp issued successfully", response), nil
}

func (s *UpdateService) ApplyUpdate(ctx context.Context, req models.ApplyUpdateRequest) (commons.Response[models.ApplyUpdateResponse], error) {
	logger.Info("update service apply update request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.ApplyUpdateResponse]("validation failed", err.Error()), fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	accountNumber := strings.TrimSpace(req.AccountNumber)
	field := strings.ToLower(strings.TrimSpace(req.Field))
	newValue := strings.TrimSpace(req.NewValue)

	// Verification consumes the secret before anything else is looked at,
	// matching the protocol: a failed attempt burns the OTP too.
	if err := s.accountRepo.ConsumeOTP(ctx, accountNumber, strings.TrimSpace(req.OTP)); err != nil {
		if errors.Is(err, domain.ErrOTPMismatch) {
			logger.Info("update service otp verification failed", logger.Fields{
				"accountNumber": accountNumber,
			})
			return commons.ErrorResponse[models.ApplyUpdateResponse]("otp verification failed", "otp is missing, expired or does not match"), err
		}
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.ApplyUpdateResponse]("Account not found"), err
		}
		logger.Error("update service consume otp failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return commons.ErrorResponse[models.ApplyUpdateResponse]("failed to apply update", "Unable to apply update right now"), err
	}

	if !domain.IsUpdatableField(field) {
		err := fmt.Errorf("%w: field %q cannot be updated", domain.ErrValidation, field)
		return commons.ErrorResponse[models.ApplyUpdateResponse]("validation failed", "field must be one of name, pin, email, phone"), err
	}

	value := newValue
	if field == domain.UpdatableFieldPin {
		if !models.IsFourDigitPin(newValue) {
			err := fmt.Errorf("%w: pin must be exactly 4 digits", domain.ErrValidation)
			return commons.ErrorResponse[models.ApplyUpdateResponse]("validation failed", "pin must be exactly 4 digits"), err
		}
		hashed, err := hashPin(newValue)
		if err != nil {
			logger.Error("update service hash pin failed", err, nil)
			return commons.ErrorResponse[models.ApplyUpdateResponse]("failed to apply update", "Unable to apply update right now"), err
		}
		value = hashed
	}

	if err := s.accountRepo.UpdateField(ctx, accountNumber, field, value); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.ApplyUpdateResponse]("Account not found"), err
		}
		logger.Error("update service update field failed", err, logger.Fields{
			"accountNumber": accountNumber,
			"field":         field,
		})
		return commons.ErrorResponse[models.ApplyUpdateResponse]("failed to apply update", "Unable to apply update right now"), err
	}

	logger.Info("update service apply update success", logger.Fields{
		"accountNumber": accountNumber,
		"field":         field,
	})

	response := models.ApplyUpdateResponse{
		AccountNumber: accountNumber,
		Field:         field,
	}

	return commons.SuccessResponse("account updated successfully", response), nil
}
