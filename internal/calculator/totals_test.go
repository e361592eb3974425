package calculator

import (
	"testing"

	"github.com/snapledger/snapledger/internal/models"
)

func TestTotal(t *testing.T) {
	tests := []struct {
		name     string
		items    []models.ExpenseItem
		discount float64
		want     float64
	}{
		{
			name:     "no items no discount",
			items:    nil,
			discount: 0,
			want:     0,
		},
		{
			name: "single item",
			items: []models.ExpenseItem{
				{ItemName: "Soda", Quantity: 2, Price: 1.50},
			},
			discount: 0,
			want:     3.00,
		},
		{
			name: "quantity times price minus discount",
			items: []models.ExpenseItem{
				{ItemName: "Eggs", Quantity: 3, Price: 2.00},
			},
			discount: 1.00,
			want:     5.00,
		},
		{
			name: "multiple items",
			items: []models.ExpenseItem{
				{ItemName: "Bread", Quantity: 1, Price: 2.49},
				{ItemName: "Milk", Quantity: 2, Price: 1.25},
				{ItemName: "Free sample", Quantity: 1, Price: 0},
			},
			discount: 0.50,
			want:     4.49,
		},
		{
			name:     "no items with discount goes negative",
			items:    nil,
			discount: 2.50,
			want:     -2.50,
		},
		{
			name: "rounds floating point drift to cents",
			items: []models.ExpenseItem{
				{ItemName: "A", Quantity: 3, Price: 0.10},
			},
			discount: 0,
			want:     0.30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Total(tt.items, tt.discount)
			if got != tt.want {
				t.Errorf("Total() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSubtotal(t *testing.T) {
	items := []models.ExpenseItem{
		{Quantity: 2, Price: 1.10},
		{Quantity: 1, Price: 0.90},
	}
	if got := Subtotal(items); got != 3.10 {
		t.Errorf("Subtotal() = %v, want 3.10", got)
	}
}
