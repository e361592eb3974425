package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/snapledger/snapledger/internal/metrics"
	"github.com/snapledger/snapledger/internal/models"
	"github.com/snapledger/snapledger/internal/storage"
)

// ItemInput carries the client-editable fields of an expense item.
type ItemInput struct {
	ItemName string  `json:"itemName"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

func (in ItemInput) validate() error {
	if in.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}
	if in.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return nil
}

// ExpenseItemService mutates individual expense items. Every mutation
// checks transitive ownership (user -> receipt -> item) and commits
// together with the receipt total recalculation, so the receipt is never
// observably out of sync with its items.
type ExpenseItemService struct {
	store storage.Store
}

// NewExpenseItemService creates an ExpenseItemService with the given
// storage backend.
func NewExpenseItemService(store storage.Store) *ExpenseItemService {
	return &ExpenseItemService{store: store}
}

// Create adds a new item to a receipt owned by username.
func (s *ExpenseItemService) Create(ctx context.Context, receiptID string, input ItemInput, username string) (*models.ExpenseItem, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	receipt, err := s.store.GetReceipt(ctx, receiptID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("receipt %s: %w", receiptID, ErrNotFound)
		}
		return nil, fmt.Errorf("loading receipt: %w", err)
	}
	if receipt.OwnerUsername != username {
		return nil, ErrForbidden
	}

	item := &models.ExpenseItem{
		ReceiptID: receipt.ID,
		ItemName:  input.ItemName,
		Quantity:  input.Quantity,
		Price:     input.Price,
		Category:  input.Category,
	}
	if err := s.store.CreateExpenseItem(ctx, item); err != nil {
		return nil, fmt.Errorf("persisting item: %w", err)
	}

	metrics.ItemMutations.WithLabelValues("create").Inc()
	slog.Info("Expense item created",
		"item_id", item.ID, "receipt_id", receipt.ID, "username", username)

	return item, nil
}

// Update overwrites an item's name, quantity, price, and category.
func (s *ExpenseItemService) Update(ctx context.Context, itemID string, input ItemInput, username string) (*models.ExpenseItem, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	item, err := s.loadOwnedItem(ctx, itemID, username)
	if err != nil {
		return nil, err
	}

	item.ItemName = input.ItemName
	item.Quantity = input.Quantity
	item.Price = input.Price
	item.Category = input.Category

	if err := s.store.UpdateExpenseItem(ctx, item); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("expense item %s: %w", itemID, ErrNotFound)
		}
		return nil, fmt.Errorf("persisting item: %w", err)
	}

	metrics.ItemMutations.WithLabelValues("update").Inc()
	slog.Info("Expense item updated",
		"item_id", item.ID, "receipt_id", item.ReceiptID, "username", username)

	return item, nil
}

// Delete permanently removes an item from its receipt.
func (s *ExpenseItemService) Delete(ctx context.Context, itemID, username string) error {
	item, err := s.loadOwnedItem(ctx, itemID, username)
	if err != nil {
		return err
	}

	if err := s.store.DeleteExpenseItem(ctx, itemID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("expense item %s: %w", itemID, ErrNotFound)
		}
		return fmt.Errorf("deleting item: %w", err)
	}

	metrics.ItemMutations.WithLabelValues("delete").Inc()
	slog.Info("Expense item deleted",
		"item_id", itemID, "receipt_id", item.ReceiptID, "username", username)

	return nil
}

// loadOwnedItem fetches an item and verifies the acting user owns it
// through its receipt.
func (s *ExpenseItemService) loadOwnedItem(ctx context.Context, itemID, username string) (*models.ExpenseItem, error) {
	item, err := s.store.GetExpenseItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("expense item %s: %w", itemID, ErrNotFound)
		}
		return nil, fmt.Errorf("loading item: %w", err)
	}

	receipt, err := s.store.GetReceipt(ctx, item.ReceiptID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("receipt %s: %w", item.ReceiptID, ErrNotFound)
		}
		return nil, fmt.Errorf("loading receipt: %w", err)
	}
	if receipt.OwnerUsername != username {
		return nil, ErrForbidden
	}

	return item, nil
}
