package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/snapledger/snapledger/internal/calculator"
	"github.com/snapledger/snapledger/internal/models"
	"github.com/snapledger/snapledger/internal/storage"
)

// GetExpenseItem retrieves a single expense item by ID.
func (s *SQLiteStore) GetExpenseItem(ctx context.Context, itemID string) (*models.ExpenseItem, error) {
	item := &models.ExpenseItem{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, receipt_id, item_name, quantity, price, category
		 FROM expense_items
		 WHERE id = ?`,
		itemID,
	).Scan(&item.ID, &item.ReceiptID, &item.ItemName, &item.Quantity, &item.Price, &item.Category)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense item %s: %w", itemID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense item: %w", err)
	}

	return item, nil
}

// CreateExpenseItem inserts a new item and recomputes its receipt's total
// in the same transaction.
func (s *SQLiteStore) CreateExpenseItem(ctx context.Context, item *models.ExpenseItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expense_items (id, receipt_id, item_name, quantity, price, category)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		item.ID, item.ReceiptID, item.ItemName, item.Quantity, item.Price, item.Category,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense item: %w", err)
	}

	if err := recalculateTotal(ctx, tx, item.ReceiptID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UpdateExpenseItem overwrites an item's mutable fields and recomputes its
// receipt's total in the same transaction.
func (s *SQLiteStore) UpdateExpenseItem(ctx context.Context, item *models.ExpenseItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE expense_items
		 SET item_name = ?, quantity = ?, price = ?, category = ?
		 WHERE id = ?`,
		item.ItemName, item.Quantity, item.Price, item.Category, item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense item %s: %w", item.ID, storage.ErrNotFound)
	}

	if err := recalculateTotal(ctx, tx, item.ReceiptID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteExpenseItem removes an item and recomputes its receipt's total in
// the same transaction. The delete is issued explicitly against the store;
// detaching the item in memory is never enough to make it durable.
func (s *SQLiteStore) DeleteExpenseItem(ctx context.Context, itemID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var receiptID string
	err = tx.QueryRowContext(ctx,
		"SELECT receipt_id FROM expense_items WHERE id = ?", itemID,
	).Scan(&receiptID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("expense item %s: %w", itemID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get expense item: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM expense_items WHERE id = ?", itemID,
	); err != nil {
		return fmt.Errorf("failed to delete expense item: %w", err)
	}

	if err := recalculateTotal(ctx, tx, receiptID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// recalculateTotal re-derives a receipt's total from its current item set,
// inside the caller's transaction. Reading the post-mutation items from the
// database here (rather than trusting an in-memory copy) means concurrent
// mutations to the same receipt serialize on the store and the persisted
// total always reflects a committed item set.
func recalculateTotal(ctx context.Context, tx *sql.Tx, receiptID string) error {
	var discount float64
	err := tx.QueryRowContext(ctx,
		"SELECT total_discount FROM receipts WHERE id = ?", receiptID,
	).Scan(&discount)
	if err == sql.ErrNoRows {
		return fmt.Errorf("receipt %s: %w", receiptID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get receipt discount: %w", err)
	}

	rows, err := tx.QueryContext(ctx,
		"SELECT id, receipt_id, item_name, quantity, price, category FROM expense_items WHERE receipt_id = ?",
		receiptID,
	)
	if err != nil {
		return fmt.Errorf("failed to get items for recalculation: %w", err)
	}
	defer rows.Close()

	var items []models.ExpenseItem
	for rows.Next() {
		var item models.ExpenseItem
		if err := rows.Scan(
			&item.ID, &item.ReceiptID, &item.ItemName,
			&item.Quantity, &item.Price, &item.Category,
		); err != nil {
			return fmt.Errorf("failed to scan item for recalculation: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate items for recalculation: %w", err)
	}

	total := calculator.Total(items, discount)
	if _, err := tx.ExecContext(ctx,
		"UPDATE receipts SET total_amount = ? WHERE id = ?", total, receiptID,
	); err != nil {
		return fmt.Errorf("failed to update receipt total: %w", err)
	}

	return nil
}
