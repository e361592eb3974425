// Package calculator implements the aggregate money math for receipts.
//
// Every item mutation must leave the persisted receipt total equal to
// sum(item.Quantity * item.Price) - discount. The functions here are pure so
// both the service layer and the storage layer (which recomputes inside the
// mutation transaction) share one definition of that invariant.
package calculator

import (
	"math"

	"github.com/snapledger/snapledger/internal/models"
)

// Subtotal returns the sum of quantity * price over all items.
func Subtotal(items []models.ExpenseItem) float64 {
	var sum float64
	for _, item := range items {
		sum += float64(item.Quantity) * item.Price
	}
	return roundToCents(sum)
}

// Total returns the receipt total for the given item set and discount:
// sum(quantity * price) - discount, rounded to cents.
//
// A receipt with no items and discount d totals -d, never a stale figure
// from a previous item set.
func Total(items []models.ExpenseItem, discount float64) float64 {
	return roundToCents(Subtotal(items) - discount)
}

// roundToCents rounds to 2 decimal places to avoid floating point drift
// accumulating across repeated recalculations.
func roundToCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
