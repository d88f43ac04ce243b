package store

import (
	"database/sql"
	"fmt"

	"github.com/ewhitley/cartkeeper/internal/model"
)

type PurchaseStore struct {
	db *sql.DB
}

func NewPurchaseStore(db *sql.DB) *PurchaseStore {
	return &PurchaseStore{db: db}
}

// Record logs a purchase directly, with no pending item involved. The
// account is verified first to fail with ErrAccountMissing instead of a
// foreign-key violation.
func (s *PurchaseStore) Record(userID int64, itemName string) (int64, error) {
	var uid int64
	err := s.db.QueryRow(`SELECT id FROM users WHERE id = ?`, userID).Scan(&uid)
	if err == sql.ErrNoRows {
		return 0, ErrAccountMissing
	}
	if err != nil {
		return 0, fmt.Errorf("check user: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO purchase_history (user_id, item_name) VALUES (?, ?)`,
		userID, itemName,
	)
	if err != nil {
		return 0, fmt.Errorf("insert purchase: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// ListByUser returns the account's purchase log, newest first.
func (s *PurchaseStore) ListByUser(userID int64) ([]model.HistoryEntry, error) {
	rows, err := s.db.Query(
		`SELECT item_name, purchased_on FROM purchase_history
		 WHERE user_id = ?
		 ORDER BY purchased_on DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var entries []model.HistoryEntry
	for rows.Next() {
		var e model.HistoryEntry
		if err := rows.Scan(&e.ItemName, &e.PurchasedOn); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Complete atomically moves a pending item into the purchase log: the
// history row is inserted and the item row removed in one transaction, or
// neither happens. A zero-row delete at the end means another request won
// the race; the whole unit aborts with ErrConflict rather than recording
// the purchase twice.
//
// Returns the completed item's name on success.
func (s *PurchaseStore) Complete(itemID, userID int64) (string, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var uid int64
	err = tx.QueryRow(`SELECT id FROM users WHERE id = ?`, userID).Scan(&uid)
	if err == sql.ErrNoRows {
		return "", ErrAccountMissing
	}
	if err != nil {
		return "", fmt.Errorf("check user: %w", err)
	}

	var itemName string
	err = tx.QueryRow(
		`SELECT item_name FROM grocery_items WHERE id = ? AND user_id = ?`,
		itemID, userID,
	).Scan(&itemName)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("fetch item: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO purchase_history (user_id, item_name) VALUES (?, ?)`,
		userID, itemName,
	); err != nil {
		return "", fmt.Errorf("insert purchase: %w", err)
	}

	result, err := tx.Exec(
		`DELETE FROM grocery_items WHERE id = ? AND user_id = ?`,
		itemID, userID,
	)
	if err != nil {
		return "", fmt.Errorf("delete item: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		// The row existed when fetched above but is gone now. Abort so the
		// purchase is not credited without an item transition.
		return "", ErrConflict
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return itemName, nil
}
