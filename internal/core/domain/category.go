package domain

// Category tags a transaction. Income and expense transactions draw from different sets;
// CategoryOther is valid for both.
type Category string

const (
	// Income categories
	CategoryScholarship Category = "scholarship"
	CategoryFamily      Category = "family"
	CategoryJob         Category = "job"

	// Expense categories
	CategoryHousing        Category = "housing"
	CategoryFood           Category = "food"
	CategoryTransportation Category = "transportation"
	CategoryEducation      Category = "education"
	CategoryEntertainment  Category = "entertainment"
	CategoryShopping       Category = "shopping"
	CategoryHealth         Category = "health"
	CategorySavings        Category = "savings" // contribution to a savings goal

	CategoryOther Category = "other"
)

// IncomeCategories lists the income categories in display order.
var IncomeCategories = []Category{
	CategoryScholarship,
	CategoryFamily,
	CategoryJob,
	CategoryOther,
}

// ExpenseCategories lists the expense categories in display order.
// The order is also the order of budget breakdowns.
var ExpenseCategories = []Category{
	CategoryHousing,
	CategoryFood,
	CategoryTransportation,
	CategoryEducation,
	CategoryEntertainment,
	CategoryShopping,
	CategoryHealth,
	CategoryOther,
	CategorySavings,
}

// ValidFor reports whether c may be used on a transaction of type t.
func (c Category) ValidFor(t TransactionType) bool {
	var set []Category
	switch t {
	case Income:
		set = IncomeCategories
	case Expense:
		set = ExpenseCategories
	default:
		return false
	}
	for _, allowed := range set {
		if c == allowed {
			return true
		}
	}
	return false
}

// IsKnown reports whether c belongs to either category set.
func (c Category) IsKnown() bool {
	return c.ValidFor(Income) || c.ValidFor(Expense)
}

// expenseCategoryIndex returns the position of c in ExpenseCategories, or len when absent.
func expenseCategoryIndex(c Category) int {
	for i, ec := range ExpenseCategories {
		if ec == c {
			return i
		}
	}
	return len(ExpenseCategories)
}

// ExpenseCategoryLess orders categories by their position in ExpenseCategories,
// falling back to name order for anything unknown.
func ExpenseCategoryLess(a, b Category) bool {
	ia, ib := expenseCategoryIndex(a), expenseCategoryIndex(b)
	if ia != ib {
		return ia < ib
	}
	return a < b
}
