package store

import (
	"errors"
	"testing"
)

func TestRecordRequiresAccount(t *testing.T) {
	db := setupTestDB(t)
	ps := NewPurchaseStore(db)

	_, err := ps.Record(42, "Milk")
	if !errors.Is(err, ErrAccountMissing) {
		t.Fatalf("record err = %v, want ErrAccountMissing", err)
	}
}

func TestRecordAndListHistory(t *testing.T) {
	db := setupTestDB(t)
	ps := NewPurchaseStore(db)
	uid := seedAccount(t, db, "Alice", "alice@example.com")

	id, err := ps.Record(uid, "Milk")
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero purchase id")
	}

	seedPurchase(t, db, uid, "Bread", 3)

	entries, err := ps.ListByUser(uid)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	// Newest first
	if entries[0].ItemName != "Milk" {
		t.Errorf("entries[0] = %q, want %q", entries[0].ItemName, "Milk")
	}
	if entries[1].ItemName != "Bread" {
		t.Errorf("entries[1] = %q, want %q", entries[1].ItemName, "Bread")
	}
}

func TestCompleteMovesItemToHistory(t *testing.T) {
	db := setupTestDB(t)
	is := NewItemStore(db)
	ps := NewPurchaseStore(db)
	uid := seedAccount(t, db, "Alice", "alice@example.com")

	item, err := is.Create(uid, "Milk", nil, nil)
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	name, err := ps.Complete(item.ID, uid)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if name != "Milk" {
		t.Errorf("completed name = %q, want %q", name, "Milk")
	}

	// Item row gone
	got, err := is.GetByID(item.ID, uid)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if got != nil {
		t.Error("item should be removed after completion")
	}

	// Exactly one history row
	entries, err := ps.ListByUser(uid)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(entries) != 1 || entries[0].ItemName != "Milk" {
		t.Fatalf("history = %v, want single Milk entry", entries)
	}
}

func TestCompleteTwiceFailsWithoutDoubleRecording(t *testing.T) {
	db := setupTestDB(t)
	is := NewItemStore(db)
	ps := NewPurchaseStore(db)
	uid := seedAccount(t, db, "Alice", "alice@example.com")

	item, err := is.Create(uid, "Milk", nil, nil)
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	if _, err := ps.Complete(item.ID, uid); err != nil {
		t.Fatalf("first complete: %v", err)
	}
	_, err = ps.Complete(item.ID, uid)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("second complete err = %v, want ErrNotFound", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM purchase_history WHERE user_id = ?`, uid).Scan(&count); err != nil {
		t.Fatalf("count history: %v", err)
	}
	if count != 1 {
		t.Errorf("history rows = %d, want 1", count)
	}
}

func TestCompleteAfterDeleteLeavesNoHistory(t *testing.T) {
	db := setupTestDB(t)
	is := NewItemStore(db)
	ps := NewPurchaseStore(db)
	uid := seedAccount(t, db, "Alice", "alice@example.com")

	item, err := is.Create(uid, "Milk", nil, nil)
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if err := is.Delete(item.ID, uid); err != nil {
		t.Fatalf("delete item: %v", err)
	}

	_, err = ps.Complete(item.ID, uid)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("complete err = %v, want ErrNotFound", err)
	}

	// Either both effects persist or neither: the failed completion must
	// not have credited a purchase.
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM purchase_history WHERE user_id = ?`, uid).Scan(&count); err != nil {
		t.Fatalf("count history: %v", err)
	}
	if count != 0 {
		t.Errorf("history rows = %d, want 0", count)
	}
}

func TestCompleteCrossAccountRejected(t *testing.T) {
	db := setupTestDB(t)
	is := NewItemStore(db)
	ps := NewPurchaseStore(db)
	alice := seedAccount(t, db, "Alice", "alice@example.com")
	bob := seedAccount(t, db, "Bob", "bob@example.com")

	item, err := is.Create(alice, "Milk", nil, nil)
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	_, err = ps.Complete(item.ID, bob)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-account complete err = %v, want ErrNotFound", err)
	}

	// Alice's item untouched, Bob's history empty
	got, err := is.GetByID(item.ID, alice)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if got == nil {
		t.Error("item should survive a cross-account completion attempt")
	}
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM purchase_history WHERE user_id = ?`, bob).Scan(&count); err != nil {
		t.Fatalf("count history: %v", err)
	}
	if count != 0 {
		t.Errorf("history rows = %d, want 0", count)
	}
}

func TestCompleteMissingAccount(t *testing.T) {
	db := setupTestDB(t)
	ps := NewPurchaseStore(db)

	_, err := ps.Complete(1, 42)
	if !errors.Is(err, ErrAccountMissing) {
		t.Fatalf("complete err = %v, want ErrAccountMissing", err)
	}
}
