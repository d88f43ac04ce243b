package store

import (
	"errors"
	"testing"
)

func strptr(s string) *string { return &s }

func TestItemCreateAndListPending(t *testing.T) {
	db := setupTestDB(t)
	is := NewItemStore(db)
	uid := seedAccount(t, db, "Alice", "alice@example.com")

	item, err := is.Create(uid, "Milk", strptr("1 gallon"), strptr("whole"))
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if item.ItemName != "Milk" {
		t.Errorf("name = %q, want %q", item.ItemName, "Milk")
	}
	if item.Quantity == nil || *item.Quantity != "1 gallon" {
		t.Errorf("quantity = %v, want %q", item.Quantity, "1 gallon")
	}
	if item.IsBought {
		t.Error("new item should not be bought")
	}

	bare, err := is.Create(uid, "Bread", nil, nil)
	if err != nil {
		t.Fatalf("create bare item: %v", err)
	}
	if bare.Quantity != nil || bare.Notes != nil {
		t.Errorf("blank quantity/notes should be nil, got %v / %v", bare.Quantity, bare.Notes)
	}

	items, err := is.ListPending(uid)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 pending items, got %d", len(items))
	}
}

func TestItemListPendingScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	is := NewItemStore(db)
	alice := seedAccount(t, db, "Alice", "alice@example.com")
	bob := seedAccount(t, db, "Bob", "bob@example.com")

	if _, err := is.Create(alice, "Milk", nil, nil); err != nil {
		t.Fatalf("create item: %v", err)
	}

	items, err := is.ListPending(bob)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected 0 items for other account, got %d", len(items))
	}
}

func TestItemQuickBuySentinelHiddenFromPending(t *testing.T) {
	db := setupTestDB(t)
	is := NewItemStore(db)
	uid := seedAccount(t, db, "Alice", "alice@example.com")

	hidden, err := is.Create(uid, "Batteries", nil, strptr(QuickBuyNotes))
	if err != nil {
		t.Fatalf("create sentinel item: %v", err)
	}
	if _, err := is.Create(uid, "Milk", nil, strptr("quick buy maybe")); err != nil {
		t.Fatalf("create item: %v", err)
	}

	items, err := is.ListPending(uid)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 pending item, got %d", len(items))
	}
	if items[0].ItemName != "Milk" {
		t.Errorf("pending item = %q, want %q", items[0].ItemName, "Milk")
	}

	// The sentinel row still physically exists
	got, err := is.GetByID(hidden.ID, uid)
	if err != nil {
		t.Fatalf("get sentinel item: %v", err)
	}
	if got == nil {
		t.Error("sentinel row should remain in storage")
	}
}

func TestItemBoughtHiddenFromPending(t *testing.T) {
	db := setupTestDB(t)
	is := NewItemStore(db)
	uid := seedAccount(t, db, "Alice", "alice@example.com")

	item, err := is.Create(uid, "Milk", nil, nil)
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if _, err := db.Exec(`UPDATE grocery_items SET is_bought = 1 WHERE id = ?`, item.ID); err != nil {
		t.Fatalf("mark bought: %v", err)
	}

	items, err := is.ListPending(uid)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected 0 pending items, got %d", len(items))
	}
}

func TestItemDeleteIsNotIdempotent(t *testing.T) {
	db := setupTestDB(t)
	is := NewItemStore(db)
	uid := seedAccount(t, db, "Alice", "alice@example.com")

	item, err := is.Create(uid, "Milk", nil, nil)
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	if err := is.Delete(item.ID, uid); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	err = is.Delete(item.ID, uid)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestItemDeleteCrossAccountRejected(t *testing.T) {
	db := setupTestDB(t)
	is := NewItemStore(db)
	alice := seedAccount(t, db, "Alice", "alice@example.com")
	bob := seedAccount(t, db, "Bob", "bob@example.com")

	item, err := is.Create(alice, "Milk", nil, nil)
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	err = is.Delete(item.ID, bob)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-account delete err = %v, want ErrNotFound", err)
	}

	got, err := is.GetByID(item.ID, alice)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if got == nil {
		t.Error("item should survive a cross-account delete attempt")
	}
}
