// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/snapledger/snapledger/internal/models"
)

// ErrNotFound is returned when a referenced user, receipt, or item does not
// exist. Callers distinguish it from other persistence failures with
// errors.Is.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for expense record storage.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
//
// Every method that touches more than one record executes as a single
// transaction: a receipt is never observable without its items, and an item
// mutation is never observable without the recomputed receipt total.
type Store interface {
	// CreateUser persists a new user.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves a user by their unique username.
	// Returns ErrNotFound if no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// CreateReceipt persists a receipt together with all its items in one
	// transaction. Missing IDs are generated; item ReceiptID fields are
	// populated by the store.
	CreateReceipt(ctx context.Context, receipt *models.Receipt) error

	// GetReceipt retrieves a receipt by ID with its owner's username and
	// full item set eagerly loaded. Returns ErrNotFound if absent.
	GetReceipt(ctx context.Context, receiptID string) (*models.Receipt, error)

	// ListReceiptsByUser retrieves all receipts owned by the given user,
	// each with its items loaded.
	ListReceiptsByUser(ctx context.Context, userID string) ([]*models.Receipt, error)

	// DeleteReceipt removes a receipt and all its items in one
	// transaction. Returns ErrNotFound if the receipt is absent.
	DeleteReceipt(ctx context.Context, receiptID string) error

	// GetExpenseItem retrieves a single item by ID.
	// Returns ErrNotFound if absent.
	GetExpenseItem(ctx context.Context, itemID string) (*models.ExpenseItem, error)

	// CreateExpenseItem inserts a new item and recomputes its receipt's
	// total in the same transaction.
	CreateExpenseItem(ctx context.Context, item *models.ExpenseItem) error

	// UpdateExpenseItem overwrites an item's name, quantity, price, and
	// category and recomputes its receipt's total in the same transaction.
	// Returns ErrNotFound if the item is absent.
	UpdateExpenseItem(ctx context.Context, item *models.ExpenseItem) error

	// DeleteExpenseItem removes an item and recomputes its receipt's
	// total in the same transaction. Returns ErrNotFound if absent.
	DeleteExpenseItem(ctx context.Context, itemID string) error

	// Close releases any resources held by the store.
	Close() error
}
