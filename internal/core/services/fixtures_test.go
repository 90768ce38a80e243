package services_test

import (
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

const testUserID = "user-1"

var fixedNow = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func strPtr(s string) *string { return &s }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func income(id, amount string, cat domain.Category, date string) domain.Transaction {
	d, _ := domain.ParseDate(date)
	return domain.Transaction{
		TransactionID: id,
		UserID:        testUserID,
		Amount:        dec(amount),
		Type:          domain.Income,
		Category:      cat,
		Date:          d,
	}
}

func expense(id, amount string, cat domain.Category, date string, source *string) domain.Transaction {
	d, _ := domain.ParseDate(date)
	return domain.Transaction{
		TransactionID:  id,
		UserID:         testUserID,
		Amount:         dec(amount),
		Type:           domain.Expense,
		Category:       cat,
		Date:           d,
		IncomeSourceID: source,
	}
}

// scenarioLedger is the reference ledger: two incomes, two scoped expenses and one unscoped.
func scenarioLedger() []domain.Transaction {
	return []domain.Transaction{
		income("i1", "500", domain.CategoryJob, "2024-03-01"),
		income("i2", "250", domain.CategoryFamily, "2024-03-02"),
		expense("e1", "120", domain.CategoryFood, "2024-03-03", strPtr("i1")),
		expense("e2", "50", domain.CategoryTransportation, "2024-03-04", strPtr("i2")),
		expense("e3", "30", domain.CategoryOther, "2024-03-05", nil),
	}
}
