// Package service implements the application services: receipt ingestion
// and expense item mutations, with ownership-based authorization on every
// operation.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/snapledger/snapledger/internal/metrics"
	"github.com/snapledger/snapledger/internal/models"
	"github.com/snapledger/snapledger/internal/normalizer"
	"github.com/snapledger/snapledger/internal/recognizer"
	"github.com/snapledger/snapledger/internal/storage"
)

// RecognitionClient is the outbound dependency on the recognition service.
// Implemented by recognizer.Client; faked in tests.
type RecognitionClient interface {
	Process(ctx context.Context, image []byte, filename string) ([]byte, error)
}

// ReceiptService orchestrates receipt ingestion and receipt-level reads.
type ReceiptService struct {
	store      storage.Store
	recognizer RecognitionClient
	now        func() time.Time
}

// NewReceiptService creates a ReceiptService with the given storage backend
// and recognition client.
func NewReceiptService(store storage.Store, rec RecognitionClient) *ReceiptService {
	return &ReceiptService{
		store:      store,
		recognizer: rec,
		now:        time.Now,
	}
}

// Ingest uploads a receipt image for the given user: the image goes to the
// recognition service, the returned payload is normalized, and the
// resulting receipt graph is persisted in one transaction.
//
// The upstream-reported total_price is persisted verbatim; the
// items-derived total only takes over from the first item mutation onward.
// The recognizer sometimes reads the printed total correctly while missing
// line items, and that figure should not be silently discarded at ingest.
func (s *ReceiptService) Ingest(ctx context.Context, image []byte, filename, username string) (*models.Receipt, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("resolving user: %w", err)
	}

	start := s.now()
	raw, err := s.recognizer.Process(ctx, image, filename)
	if err != nil {
		metrics.RecognitionDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		slog.Error("Recognition call failed", "username", username, "error", err)
		if errors.Is(err, recognizer.ErrUnavailable) {
			return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
		return nil, fmt.Errorf("recognition call: %w", err)
	}
	metrics.RecognitionDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())

	// Normalization never fails: malformed upstream fields degrade to
	// defaults instead of costing the user their upload.
	normalized := normalizer.Normalize(raw, s.now())

	receipt := &models.Receipt{
		UserID:        user.ID,
		OwnerUsername: user.Username,
		StoreName:     normalized.StoreName,
		ReceiptDate:   normalized.ReceiptDate,
		TotalAmount:   normalized.TotalPrice,
		TotalDiscount: normalized.TotalDiscount,
		RawText:       string(raw),
		CreatedAt:     s.now().Unix(),
	}
	for _, item := range normalized.Items {
		receipt.Items = append(receipt.Items, models.ExpenseItem{
			ItemName: item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
			Category: item.Category,
		})
	}

	if err := s.store.CreateReceipt(ctx, receipt); err != nil {
		return nil, fmt.Errorf("persisting receipt: %w", err)
	}

	metrics.ReceiptsIngested.Inc()
	slog.Info("Receipt ingested",
		"receipt_id", receipt.ID,
		"username", username,
		"store_name", receipt.StoreName,
		"items", len(receipt.Items),
		"total", receipt.TotalAmount,
	)

	return receipt, nil
}

// ListForUser returns all receipts owned by the given user.
func (s *ReceiptService) ListForUser(ctx context.Context, username string) ([]*models.Receipt, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("resolving user: %w", err)
	}

	receipts, err := s.store.ListReceiptsByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("listing receipts: %w", err)
	}
	return receipts, nil
}

// Get returns one receipt with its items, only to its owner.
func (s *ReceiptService) Get(ctx context.Context, receiptID, username string) (*models.Receipt, error) {
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
	return receipt, nil
}

// Delete removes a receipt and all its items. Only the owner may delete.
func (s *ReceiptService) Delete(ctx context.Context, receiptID, username string) error {
	receipt, err := s.store.GetReceipt(ctx, receiptID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("receipt %s: %w", receiptID, ErrNotFound)
		}
		return fmt.Errorf("loading receipt: %w", err)
	}
	if receipt.OwnerUsername != username {
		return ErrForbidden
	}

	if err := s.store.DeleteReceipt(ctx, receiptID); err != nil {
		return fmt.Errorf("deleting receipt: %w", err)
	}

	slog.Info("Receipt deleted", "receipt_id", receiptID, "username", username)
	return nil
}
