package mapping

import (
	"database/sql"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/SscSPs/finance_tracker_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	m := models.Transaction{
		TransactionID:   d.TransactionID,
		UserID:          d.UserID,
		Amount:          d.Amount,
		TransactionType: string(d.Type),
		Category:        string(d.Category),
		TransactionDate: domain.TruncateToDate(d.Date),
		Description:     d.Description,
		Recurring:       d.Recurring,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
	if d.RecurringPeriod != "" {
		m.RecurringPeriod = sql.NullString{String: string(d.RecurringPeriod), Valid: true}
	}
	if d.IncomeSourceID != nil {
		m.IncomeSourceID = sql.NullString{String: *d.IncomeSourceID, Valid: true}
	}
	return m
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	d := domain.Transaction{
		TransactionID: m.TransactionID,
		UserID:        m.UserID,
		Amount:        m.Amount,
		Type:          domain.TransactionType(m.TransactionType),
		Category:      domain.Category(m.Category),
		Date:          domain.TruncateToDate(m.TransactionDate),
		Description:   m.Description,
		Recurring:     m.Recurring,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
	if m.RecurringPeriod.Valid {
		d.RecurringPeriod = domain.RecurringPeriod(m.RecurringPeriod.String)
	}
	if m.IncomeSourceID.Valid {
		id := m.IncomeSourceID.String
		d.IncomeSourceID = &id
	}
	return d
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
