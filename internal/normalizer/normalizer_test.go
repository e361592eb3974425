package normalizer

import (
	"testing"
	"time"
)

var testNow = time.Date(2025, time.March, 14, 10, 30, 0, 0, time.UTC)

func TestNormalize_EmptyObject(t *testing.T) {
	got := Normalize([]byte(`{}`), testNow)

	if got.StoreName != DefaultStoreName {
		t.Errorf("StoreName = %q, want %q", got.StoreName, DefaultStoreName)
	}
	if got.ReceiptDate != "2025-03-14" {
		t.Errorf("ReceiptDate = %q, want ingestion date", got.ReceiptDate)
	}
	if got.TotalPrice != 0 {
		t.Errorf("TotalPrice = %v, want 0", got.TotalPrice)
	}
	if got.TotalDiscount != 0 {
		t.Errorf("TotalDiscount = %v, want 0", got.TotalDiscount)
	}
	if got.Items == nil || len(got.Items) != 0 {
		t.Errorf("Items = %v, want empty list", got.Items)
	}
}

func TestNormalize_InvalidJSON(t *testing.T) {
	for _, raw := range []string{``, `not json`, `[1,2,3]`, `null`} {
		got := Normalize([]byte(raw), testNow)
		if got.StoreName != DefaultStoreName || len(got.Items) != 0 {
			t.Errorf("Normalize(%q) did not degrade to defaults: %+v", raw, got)
		}
	}
}

func TestNormalize_CurrencyDecoratedTotal(t *testing.T) {
	got := Normalize([]byte(`{"total_price": "$12.50"}`), testNow)
	if got.TotalPrice != 12.50 {
		t.Errorf("TotalPrice = %v, want 12.50", got.TotalPrice)
	}
}

func TestNormalize_MoneyFields(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"plain string", `{"total_price": "9.99"}`, 9.99},
		{"currency symbol", `{"total_price": "€7.30"}`, 7.30},
		{"trailing text", `{"total_price": "4.20 USD"}`, 4.20},
		{"json number", `{"total_price": 3.25}`, 3.25},
		{"garbage", `{"total_price": "abc"}`, 0},
		{"only symbols", `{"total_price": "$$"}`, 0},
		{"wrong type", `{"total_price": true}`, 0},
		{"absent", `{}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize([]byte(tt.raw), testNow)
			if got.TotalPrice != tt.want {
				t.Errorf("TotalPrice = %v, want %v", got.TotalPrice, tt.want)
			}
		})
	}
}

func TestNormalize_ReceiptDate(t *testing.T) {
	got := Normalize([]byte(`{"receipt_date": "2024-12-01"}`), testNow)
	if got.ReceiptDate != "2024-12-01" {
		t.Errorf("ReceiptDate = %q, want 2024-12-01", got.ReceiptDate)
	}

	for _, raw := range []string{
		`{"receipt_date": "01/12/2024"}`,
		`{"receipt_date": "yesterday"}`,
		`{"receipt_date": 20241201}`,
	} {
		got := Normalize([]byte(raw), testNow)
		if got.ReceiptDate != "2025-03-14" {
			t.Errorf("Normalize(%s).ReceiptDate = %q, want ingestion date", raw, got.ReceiptDate)
		}
	}
}

func TestNormalize_ItemQuantityDefaults(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"integer", `{"items":[{"quantity": 2}]}`, 2},
		{"numeric string", `{"items":[{"quantity": "3"}]}`, 3},
		{"non-numeric string", `{"items":[{"quantity": "abc"}]}`, 1},
		{"fractional", `{"items":[{"quantity": 2.5}]}`, 1},
		{"zero", `{"items":[{"quantity": 0}]}`, 1},
		{"negative", `{"items":[{"quantity": -4}]}`, 1},
		{"absent", `{"items":[{}]}`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize([]byte(tt.raw), testNow)
			if len(got.Items) != 1 {
				t.Fatalf("expected 1 item, got %d", len(got.Items))
			}
			if got.Items[0].Quantity != tt.want {
				t.Errorf("Quantity = %d, want %d", got.Items[0].Quantity, tt.want)
			}
		})
	}
}

func TestNormalize_ItemsShapes(t *testing.T) {
	// items not an array degrades to an empty list
	got := Normalize([]byte(`{"items": "nope"}`), testNow)
	if len(got.Items) != 0 {
		t.Errorf("non-array items: got %d items, want 0", len(got.Items))
	}

	// a non-object element yields a fully-defaulted item
	got = Normalize([]byte(`{"items": ["weird"]}`), testNow)
	if len(got.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got.Items))
	}
	item := got.Items[0]
	if item.Name != "" || item.Quantity != 1 || item.Price != 0 {
		t.Errorf("defaulted item = %+v", item)
	}
}

func TestNormalize_FullPayload(t *testing.T) {
	raw := []byte(`{
		"store_name": "Mart",
		"receipt_date": "2025-01-02",
		"total_price": "9.99",
		"total_discount": "$1.00",
		"items": [
			{"name": "Soda", "quantity": 2, "price": "1.50"},
			{"name": "Chips", "quantity": "abc", "price": "$2.25", "category": "snacks"}
		]
	}`)

	got := Normalize(raw, testNow)
	if got.StoreName != "Mart" {
		t.Errorf("StoreName = %q, want Mart", got.StoreName)
	}
	if got.TotalPrice != 9.99 {
		t.Errorf("TotalPrice = %v, want 9.99", got.TotalPrice)
	}
	if got.TotalDiscount != 1.00 {
		t.Errorf("TotalDiscount = %v, want 1.00", got.TotalDiscount)
	}
	if len(got.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got.Items))
	}
	soda := got.Items[0]
	if soda.Name != "Soda" || soda.Quantity != 2 || soda.Price != 1.50 {
		t.Errorf("item 0 = %+v", soda)
	}
	chips := got.Items[1]
	if chips.Quantity != 1 || chips.Price != 2.25 || chips.Category != "snacks" {
		t.Errorf("item 1 = %+v", chips)
	}
}
