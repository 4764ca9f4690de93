package memory

import (
	"context"

	"github.com/Rajmund09/Mini-Banking-System/src/internal/domain"
)

type BankRepository struct{}

func NewBankRepository() *BankRepository {
	return &BankRepository{}
}

func (r *BankRepository) GetAll(_ context.Context) ([]domain.Bank, error) {
	banks := []domain.Bank{
		{BankName: "State Bank of India"},
		{BankName: "HDFC Bank"},
		{BankName: "ICICI Bank"},
		{BankName: "Axis Bank"},
		{BankName: "Punjab National Bank"},
		{BankName: "Bank of Baroda"},
		{BankName: "Canara Bank"},
		{BankName: "Union Bank"},
	}

	return banks, nil
}
