package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/snapledger/snapledger/internal/models"
	"github.com/snapledger/snapledger/internal/storage"
)

// CreateReceipt persists a receipt and all its items in one transaction so
// a receipt without its items (or vice versa) is never observable.
func (s *SQLiteStore) CreateReceipt(ctx context.Context, receipt *models.Receipt) error {
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	if receipt.CreatedAt == 0 {
		receipt.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO receipts (id, user_id, store_name, receipt_date, total_amount, total_discount, raw_text, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		receipt.ID, receipt.UserID, receipt.StoreName, receipt.ReceiptDate,
		receipt.TotalAmount, receipt.TotalDiscount, receipt.RawText, receipt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert receipt: %w", err)
	}

	for i := range receipt.Items {
		item := &receipt.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.ReceiptID = receipt.ID

		_, err = tx.ExecContext(ctx,
			`INSERT INTO expense_items (id, receipt_id, item_name, quantity, price, category)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			item.ID, item.ReceiptID, item.ItemName, item.Quantity, item.Price, item.Category,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetReceipt retrieves a receipt by ID, with the owner's username and the
// full item set eagerly loaded.
func (s *SQLiteStore) GetReceipt(ctx context.Context, receiptID string) (*models.Receipt, error) {
	receipt := &models.Receipt{}
	err := s.db.QueryRowContext(ctx,
		`SELECT r.id, r.user_id, u.username, r.store_name, r.receipt_date,
		        r.total_amount, r.total_discount, r.raw_text, r.created_at
		 FROM receipts r
		 JOIN users u ON u.id = r.user_id
		 WHERE r.id = ?`,
		receiptID,
	).Scan(
		&receipt.ID, &receipt.UserID, &receipt.OwnerUsername, &receipt.StoreName,
		&receipt.ReceiptDate, &receipt.TotalAmount, &receipt.TotalDiscount,
		&receipt.RawText, &receipt.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("receipt %s: %w", receiptID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}

	items, err := s.itemsForReceipt(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	receipt.Items = items

	return receipt, nil
}

// ListReceiptsByUser retrieves all receipts owned by the given user, newest
// first, each with its items loaded.
func (s *SQLiteStore) ListReceiptsByUser(ctx context.Context, userID string) ([]*models.Receipt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.user_id, u.username, r.store_name, r.receipt_date,
		        r.total_amount, r.total_discount, r.raw_text, r.created_at
		 FROM receipts r
		 JOIN users u ON u.id = r.user_id
		 WHERE r.user_id = ?
		 ORDER BY r.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	defer rows.Close()

	receipts := []*models.Receipt{}
	for rows.Next() {
		receipt := &models.Receipt{}
		if err := rows.Scan(
			&receipt.ID, &receipt.UserID, &receipt.OwnerUsername, &receipt.StoreName,
			&receipt.ReceiptDate, &receipt.TotalAmount, &receipt.TotalDiscount,
			&receipt.RawText, &receipt.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan receipt: %w", err)
		}
		receipts = append(receipts, receipt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate receipts: %w", err)
	}

	for _, receipt := range receipts {
		items, err := s.itemsForReceipt(ctx, receipt.ID)
		if err != nil {
			return nil, err
		}
		receipt.Items = items
	}

	return receipts, nil
}

// DeleteReceipt removes a receipt and all its items in one transaction.
// Items are deleted explicitly rather than relying on the ON DELETE CASCADE
// constraint, so the cascade holds even on databases opened without the
// foreign_keys pragma.
func (s *SQLiteStore) DeleteReceipt(ctx context.Context, receiptID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM expense_items WHERE receipt_id = ?", receiptID,
	); err != nil {
		return fmt.Errorf("failed to delete receipt items: %w", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM receipts WHERE id = ?", receiptID)
	if err != nil {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("receipt %s: %w", receiptID, storage.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// itemsForReceipt loads all items belonging to a receipt.
func (s *SQLiteStore) itemsForReceipt(ctx context.Context, receiptID string) ([]models.ExpenseItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, receipt_id, item_name, quantity, price, category
		 FROM expense_items
		 WHERE receipt_id = ?`,
		receiptID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense items: %w", err)
	}
	defer rows.Close()

	items := []models.ExpenseItem{}
	for rows.Next() {
		var item models.ExpenseItem
		if err := rows.Scan(
			&item.ID, &item.ReceiptID, &item.ItemName,
			&item.Quantity, &item.Price, &item.Category,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense items: %w", err)
	}

	return items, nil
}
