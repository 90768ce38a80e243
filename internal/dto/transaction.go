package dto

import (
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/SscSPs/finance_tracker_app/internal/utils"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record an income or expense.
type CreateTransactionRequest struct {
	Amount          decimal.Decimal        `json:"amount" binding:"required,decimal_gt0" swaggertype:"string" example:"120.50"`
	Type            domain.TransactionType `json:"type" binding:"required,txtype"`
	Category        domain.Category        `json:"category" binding:"required,category"`
	Date            string                 `json:"date" binding:"required,datetime=2006-01-02" example:"2024-03-15"`
	Description     string                 `json:"description" binding:"max=500"`
	Recurring       bool                   `json:"recurring"`
	RecurringPeriod domain.RecurringPeriod `json:"recurringPeriod" binding:"omitempty,period"`
	IncomeSourceID  *string                `json:"incomeSourceID"` // Optional, expenses only
}

// UpdateTransactionRequest defines the fields that may change on a transaction.
// Pointers distinguish omitted fields from zero values.
type UpdateTransactionRequest struct {
	Amount          *decimal.Decimal        `json:"amount" swaggertype:"string"`
	Category        *domain.Category        `json:"category" binding:"omitempty,category"`
	Date            *string                 `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Description     *string                 `json:"description" binding:"omitempty,max=500"`
	Recurring       *bool                   `json:"recurring"`
	RecurringPeriod *domain.RecurringPeriod `json:"recurringPeriod" binding:"omitempty,period"`
	IncomeSourceID  *string                 `json:"incomeSourceID"` // Empty string makes the expense unscoped
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID   string                 `json:"transactionID"`
	Amount          decimal.Decimal        `json:"amount" swaggertype:"string"`
	AmountFormatted string                 `json:"amountFormatted"`
	Type            domain.TransactionType `json:"type"`
	Category        domain.Category        `json:"category"`
	Date            string                 `json:"date"`
	Description     string                 `json:"description"`
	Recurring       bool                   `json:"recurring"`
	RecurringPeriod domain.RecurringPeriod `json:"recurringPeriod,omitempty"`
	IncomeSourceID  *string                `json:"incomeSourceID,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
	LastUpdatedAt   time.Time              `json:"lastUpdatedAt"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// AdmissionCheckRequest asks whether an expense would fit in its income source.
type AdmissionCheckRequest struct {
	Amount         decimal.Decimal `json:"amount" binding:"required,decimal_gt0" swaggertype:"string"`
	IncomeSourceID *string         `json:"incomeSourceID"`
}

// AdmissionCheckResponse reports the admission decision.
type AdmissionCheckResponse struct {
	Admitted           bool            `json:"admitted"`
	IncomeSourceID     string          `json:"incomeSourceID,omitempty"`
	Remaining          decimal.Decimal `json:"remaining" swaggertype:"string"`
	RemainingFormatted string          `json:"remainingFormatted"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		Amount:          txn.Amount,
		AmountFormatted: utils.FormatCurrency(txn.Amount),
		Type:            txn.Type,
		Category:        txn.Category,
		Date:            txn.Date.Format(domain.DateLayout),
		Description:     txn.Description,
		Recurring:       txn.Recurring,
		RecurringPeriod: txn.RecurringPeriod,
		IncomeSourceID:  txn.IncomeSourceID,
		CreatedAt:       txn.CreatedAt,
		LastUpdatedAt:   txn.LastUpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}

// ToAdmissionCheckResponse converts a domain.AdmissionDecision.
func ToAdmissionCheckResponse(d *domain.AdmissionDecision) AdmissionCheckResponse {
	return AdmissionCheckResponse{
		Admitted:           d.Admitted,
		IncomeSourceID:     d.SourceID,
		Remaining:          d.Remaining,
		RemainingFormatted: utils.FormatCurrency(d.Remaining),
	}
}
