package services

import (
	"github.com/Rajmund09/Mini-Banking-System/src/internal/domain"
)

func buildPendingEmailBody(account domain.Account) string {
	return "Dear " + account.HolderName + ",\n\n" +
		"Welcome to " + account.BankName + "! Your account application has been received.\n\n" +
		"--- Your Account Details ---\n" +
		"Account Holder: " + account.HolderName + "\n" +
		"Account Number: " + account.AccountNumber + "\n" +
		"Account Type: " + account.AccountType + "\n" +
		"Bank: " + account.BankName + "\n" +
		"Initial Deposit: " + account.InitialDeposit.StringFixed(2) + "\n" +
		"Registered Email: " + account.Email + "\n" +
		"Registered Phone: " + account.Phone + "\n\n" +
		"--- Account Status ---\n" +
		"Status: PENDING APPROVAL\n\n" +
		"An administrator needs to approve your account before you can log in. " +
		"Your initial deposit will be available upon approval.\n\n" +
		"You will receive another email once your account is activated.\n\n" +
		"Thank you for choosing " + account.BankName + ".\n\n" +
		"Sincerely,\nThe " + account.BankName + " Team"
}

func buildActivationEmailBody(account domain.Account) string {
	return "Dear " + account.HolderName + ",\n\n" +
		"Great news! Your bank account at " + account.BankName + " has been activated successfully.\n\n" +
		"--- Your Active Account Details ---\n" +
		"Account Holder: " + account.HolderName + "\n" +
		"Account Number: " + account.AccountNumber + "\n" +
		"Bank: " + account.BankName + "\n" +
		"Current Balance: " + account.Balance.StringFixed(2) + " (Initial Deposit Added)\n" +
		"Status: ACTIVE\n\n" +
		"You can now log in to your account and start using all banking services.\n\n" +
		"Sincerely,\nThe " + account.BankName + " Team"
}

func buildOTPEmailBody(account domain.Account, otp string) string {
	return "Dear " + account.HolderName + ",\n\n" +
		"Your One-Time Password (OTP) for updating your account details is: " + otp + "\n\n" +
		"This OTP is valid for a short time. Please do not share it with anyone.\n\n" +
		"If you did not request this change, please contact customer support immediately.\n\n" +
		"Sincerely,\nThe " + account.BankName + " Team"
}
