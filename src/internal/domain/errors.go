package domain

import "errors"

var ErrRecordNotFound = errors.New("Record not found")
var ErrDuplicateRecord = errors.New("Record already exists")
var ErrInsufficientFunds = errors.New("Insufficient funds")
var ErrInvalidState = errors.New("Account is not in a valid state for this operation")
var ErrAuthenticationFailed = errors.New("Authentication failed")
var ErrOTPMismatch = errors.New("OTP missing or does not match")
var ErrValidation = errors.New("validation failed")
var ErrPersistence = errors.New("persistence failure")
