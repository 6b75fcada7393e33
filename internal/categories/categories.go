// Package categories holds the built-in category lists per transaction type.
// A user's effective category set is the built-in list plus their custom
// categories for that type.
package categories

import "github.com/aungaung101025-ux/adupayment/internal/models"

var builtinExpense = []string{
	"Food & Dining",
	"Rent & Bills",
	"Transport",
	"Entertainment",
	"Clothing",
	"Health",
	"Other",
}

var builtinIncome = []string{
	"Salary",
	"Bonus",
	"Sales",
	"Investment",
	"Other",
}

// Builtin returns the built-in category names for the given type.
// The returned slice is a copy; callers may append to it.
func Builtin(t models.TransactionType) []string {
	var src []string
	switch t {
	case models.TransactionTypeIncome:
		src = builtinIncome
	case models.TransactionTypeExpense:
		src = builtinExpense
	default:
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// IsBuiltin reports whether name is a built-in category for the given type.
func IsBuiltin(t models.TransactionType, name string) bool {
	for _, c := range Builtin(t) {
		if c == name {
			return true
		}
	}
	return false
}
