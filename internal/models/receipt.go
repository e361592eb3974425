package models

// Receipt represents one uploaded receipt owned by a user, together with the
// line items extracted from it.
type Receipt struct {
	// ID is the unique identifier for the receipt (UUID format).
	ID string

	// UserID is the owning user's ID. Immutable after creation.
	UserID string

	// OwnerUsername is the owning user's username, populated on load.
	// It exists so ownership checks don't need a second user lookup.
	OwnerUsername string

	// StoreName is the merchant name ("Unknown Store" when the recognition
	// service couldn't extract one).
	StoreName string

	// ReceiptDate is the purchase date in ISO format (YYYY-MM-DD).
	// Falls back to the ingestion date when the recognition service
	// returned nothing parseable.
	ReceiptDate string

	// TotalAmount is the receipt total. At ingestion time this is the
	// figure reported by the recognition service; after any item mutation
	// it is recomputed as sum(quantity * price) - TotalDiscount.
	TotalAmount float64

	// TotalDiscount is the receipt-level discount (0 when absent).
	TotalDiscount float64

	// RawText is the opaque source text returned by the recognition
	// service, kept for debugging. May be empty.
	RawText string

	// Items are the line items on this receipt. Insertion order carries no
	// meaning.
	Items []ExpenseItem

	// CreatedAt is the Unix timestamp when the receipt was ingested.
	CreatedAt int64
}

// ExpenseItem represents a single line item on a receipt.
type ExpenseItem struct {
	// ID is the unique identifier for the item (UUID format).
	ID string

	// ReceiptID is the owning receipt's ID. Immutable after creation.
	ReceiptID string

	// ItemName is the item description (may be empty when the recognition
	// service returned none).
	ItemName string

	// Quantity is the number of units, always >= 1.
	Quantity int

	// Price is the unit price, never negative.
	Price float64

	// Category is an optional classification label.
	Category string
}
