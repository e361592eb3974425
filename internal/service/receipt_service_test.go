package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/snapledger/snapledger/internal/models"
	"github.com/snapledger/snapledger/internal/recognizer"
	"github.com/snapledger/snapledger/internal/storage"
	"github.com/snapledger/snapledger/internal/storage/sqlite"
)

// fakeRecognizer returns a canned payload or error without touching the
// network.
type fakeRecognizer struct {
	payload []byte
	err     error
	calls   int
}

func (f *fakeRecognizer) Process(ctx context.Context, image []byte, filename string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

func newTestStore(t *testing.T) storage.Store {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "snapledger-svc-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func registerTestUser(t *testing.T, store storage.Store, username string) *models.User {
	t.Helper()

	user := &models.User{Username: username, DisplayName: username, PasswordHash: "x"}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

func TestIngest_PersistsNormalizedReceipt(t *testing.T) {
	store := newTestStore(t)
	registerTestUser(t, store, "alice")

	rec := &fakeRecognizer{payload: []byte(`{
		"store_name": "Mart",
		"total_price": "9.99",
		"items": [{"name": "Soda", "quantity": 2, "price": "1.50"}]
	}`)}
	svc := NewReceiptService(store, rec)

	receipt, err := svc.Ingest(context.Background(), []byte("img"), "r.jpg", "alice")
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	if receipt.StoreName != "Mart" {
		t.Errorf("StoreName = %q, want Mart", receipt.StoreName)
	}
	// The upstream-reported total is persisted verbatim at ingestion time;
	// the items-derived figure only takes over at the first item mutation.
	if receipt.TotalAmount != 9.99 {
		t.Errorf("TotalAmount = %v, want upstream 9.99", receipt.TotalAmount)
	}
	if len(receipt.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(receipt.Items))
	}
	item := receipt.Items[0]
	if item.ItemName != "Soda" || item.Quantity != 2 || item.Price != 1.50 {
		t.Errorf("item = %+v", item)
	}

	// The persisted graph matches what was returned.
	stored, err := store.GetReceipt(context.Background(), receipt.ID)
	if err != nil {
		t.Fatalf("GetReceipt failed: %v", err)
	}
	if stored.TotalAmount != 9.99 || len(stored.Items) != 1 {
		t.Errorf("stored receipt = %+v", stored)
	}
	if stored.RawText == "" {
		t.Error("expected raw payload to be kept on the receipt")
	}
}

func TestIngest_MalformedPayloadStillPersists(t *testing.T) {
	store := newTestStore(t)
	registerTestUser(t, store, "alice")

	rec := &fakeRecognizer{payload: []byte(`this is not json at all`)}
	svc := NewReceiptService(store, rec)

	receipt, err := svc.Ingest(context.Background(), []byte("img"), "r.jpg", "alice")
	if err != nil {
		t.Fatalf("Ingest failed on malformed payload: %v", err)
	}
	if receipt.StoreName != "Unknown Store" {
		t.Errorf("StoreName = %q, want Unknown Store", receipt.StoreName)
	}
	if receipt.TotalAmount != 0 || len(receipt.Items) != 0 {
		t.Errorf("expected fully defaulted receipt, got %+v", receipt)
	}
}

func TestIngest_UnknownUser(t *testing.T) {
	store := newTestStore(t)
	rec := &fakeRecognizer{payload: []byte(`{}`)}
	svc := NewReceiptService(store, rec)

	_, err := svc.Ingest(context.Background(), []byte("img"), "r.jpg", "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if rec.calls != 0 {
		t.Errorf("recognizer should not be called for an unknown user, got %d calls", rec.calls)
	}
}

func TestIngest_UpstreamFailureCreatesNothing(t *testing.T) {
	store := newTestStore(t)
	user := registerTestUser(t, store, "alice")

	rec := &fakeRecognizer{err: fmt.Errorf("%w: status 503", recognizer.ErrUnavailable)}
	svc := NewReceiptService(store, rec)

	_, err := svc.Ingest(context.Background(), []byte("img"), "r.jpg", "alice")
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}

	receipts, err := store.ListReceiptsByUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ListReceiptsByUser failed: %v", err)
	}
	if len(receipts) != 0 {
		t.Errorf("expected no partial receipt, got %d", len(receipts))
	}
}

func TestGetAndDelete_OwnershipEnforced(t *testing.T) {
	store := newTestStore(t)
	registerTestUser(t, store, "alice")
	registerTestUser(t, store, "bob")

	rec := &fakeRecognizer{payload: []byte(`{"store_name": "Mart"}`)}
	svc := NewReceiptService(store, rec)

	receipt, err := svc.Ingest(context.Background(), []byte("img"), "r.jpg", "alice")
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	if _, err := svc.Get(context.Background(), receipt.ID, "bob"); !errors.Is(err, ErrForbidden) {
		t.Errorf("Get as non-owner: expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), receipt.ID, "bob"); !errors.Is(err, ErrForbidden) {
		t.Errorf("Delete as non-owner: expected ErrForbidden, got %v", err)
	}

	got, err := svc.Get(context.Background(), receipt.ID, "alice")
	if err != nil {
		t.Fatalf("Get as owner failed: %v", err)
	}
	if got.ID != receipt.ID {
		t.Errorf("got receipt %s, want %s", got.ID, receipt.ID)
	}

	if err := svc.Delete(context.Background(), receipt.ID, "alice"); err != nil {
		t.Fatalf("Delete as owner failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), receipt.ID, "alice"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestListForUser(t *testing.T) {
	store := newTestStore(t)
	registerTestUser(t, store, "alice")
	registerTestUser(t, store, "bob")

	rec := &fakeRecognizer{payload: []byte(`{"store_name": "Mart"}`)}
	svc := NewReceiptService(store, rec)

	if _, err := svc.Ingest(context.Background(), []byte("img"), "a.jpg", "alice"); err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	aliceReceipts, err := svc.ListForUser(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(aliceReceipts) != 1 {
		t.Errorf("alice: expected 1 receipt, got %d", len(aliceReceipts))
	}

	bobReceipts, err := svc.ListForUser(context.Background(), "bob")
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(bobReceipts) != 0 {
		t.Errorf("bob: expected 0 receipts, got %d", len(bobReceipts))
	}
}
