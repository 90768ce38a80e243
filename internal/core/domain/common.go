package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// DateLayout is the calendar-date layout used for transaction and goal dates.
const DateLayout = "2006-01-02"

// TruncateToDate drops the time-of-day component, keeping the calendar date in UTC.
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// MoneyScale is the number of decimal places every stored amount carries.
const MoneyScale = 2

// HasMoneyScale reports whether d can be stored without rounding.
func HasMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MoneyScale))
}
