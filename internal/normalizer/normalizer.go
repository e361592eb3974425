// Package normalizer converts the recognition service's raw JSON payload
// into well-typed, defaulted values.
//
// The recognition service is best-effort and untrusted: fields may be
// missing, wrongly typed, or decorated with currency symbols. Normalize
// therefore never fails — every malformed field degrades to a documented
// default so a user never loses an uploaded receipt because of one bad
// field.
package normalizer

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultStoreName is used when the payload has no usable store_name.
	DefaultStoreName = "Unknown Store"

	// DateLayout is the ISO calendar date format used throughout.
	DateLayout = "2006-01-02"
)

// nonMoney matches every character that is not a digit or decimal point.
// Monetary fields are stripped with it before parsing so values like
// "$12.50" or "4.20 USD" still yield a number.
var nonMoney = regexp.MustCompile(`[^0-9.]`)

// Receipt is the normalized form of a recognition payload.
type Receipt struct {
	StoreName     string
	ReceiptDate   string // ISO date (YYYY-MM-DD)
	TotalPrice    float64
	TotalDiscount float64
	Items         []Item
}

// Item is one normalized line item.
type Item struct {
	Name     string
	Quantity int
	Price    float64
	Category string
}

// Normalize converts a raw recognition payload into a Receipt. It never
// fails; an unparseable document yields a Receipt where every field holds
// its default. now supplies the ingestion date used as the receipt-date
// fallback.
func Normalize(raw []byte, now time.Time) Receipt {
	out := Receipt{
		StoreName:   DefaultStoreName,
		ReceiptDate: now.Format(DateLayout),
		Items:       []Item{},
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return out
	}

	if name := textField(doc["store_name"]); name != "" {
		out.StoreName = name
	}
	if dateStr := textField(doc["receipt_date"]); dateStr != "" {
		if parsed, err := time.Parse(DateLayout, dateStr); err == nil {
			out.ReceiptDate = parsed.Format(DateLayout)
		}
	}
	out.TotalPrice = moneyField(doc["total_price"])
	out.TotalDiscount = moneyField(doc["total_discount"])

	rawItems, ok := doc["items"].([]any)
	if !ok {
		return out
	}
	for _, rawItem := range rawItems {
		fields, _ := rawItem.(map[string]any) // nil map defaults every field
		out.Items = append(out.Items, Item{
			Name:     textField(fields["name"]),
			Quantity: quantityField(fields["quantity"]),
			Price:    moneyField(fields["price"]),
			Category: textField(fields["category"]),
		})
	}
	return out
}

// textField returns the trimmed string value, or "" for anything that is
// not a string.
func textField(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// moneyField applies the strip-and-parse rule: keep only digits and the
// decimal point, then parse as a decimal number. Anything that still fails
// to parse resolves to 0 rather than an error. Plain JSON numbers are
// accepted as-is.
func moneyField(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		stripped := nonMoney.ReplaceAllString(t, "")
		f, err := strconv.ParseFloat(stripped, 64)
		if err != nil {
			return 0.0
		}
		return f
	default:
		return 0.0
	}
}

// quantityField coerces a quantity to a positive integer, defaulting to 1
// when the value is absent, non-integer, or non-positive.
func quantityField(v any) int {
	switch t := v.(type) {
	case float64:
		n := int(t)
		if float64(n) == t && n > 0 {
			return n
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil && n > 0 {
			return n
		}
	}
	return 1
}
