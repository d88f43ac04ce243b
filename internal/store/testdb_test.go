package store

import (
	"database/sql"
	"testing"

	"github.com/ewhitley/cartkeeper/internal/database"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// An in-memory database exists per connection; pin the pool to one so
	// every statement and transaction sees the migrated schema.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// seedAccount inserts an account and returns its id.
func seedAccount(t *testing.T, db *sql.DB, name, email string) int64 {
	t.Helper()
	as := NewAccountStore(db)
	u, err := as.Create(name, email, "x")
	if err != nil {
		t.Fatalf("seed account %s: %v", name, err)
	}
	return u.ID
}

// seedPurchase inserts a purchase backdated by daysAgo calendar days.
func seedPurchase(t *testing.T, db *sql.DB, userID int64, itemName string, daysAgo int) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO purchase_history (user_id, item_name, purchased_on)
		 VALUES (?, ?, datetime('now', '-' || ? || ' days'))`,
		userID, itemName, daysAgo,
	)
	if err != nil {
		t.Fatalf("seed purchase %s: %v", itemName, err)
	}
}
