package store

import (
	"database/sql"
	"fmt"

	"github.com/ewhitley/cartkeeper/internal/model"
)

// QuickBuyNotes is the reserved notes value marking a row inserted for a
// direct quick-buy flow. Rows carrying it physically live in grocery_items
// but are never part of the pending list.
const QuickBuyNotes = "Quick buy"

type ItemStore struct {
	db *sql.DB
}

func NewItemStore(db *sql.DB) *ItemStore {
	return &ItemStore{db: db}
}

func scanItem(scanner interface{ Scan(...any) error }) (*model.Item, error) {
	var item model.Item
	var quantity, notes sql.NullString
	var bought int

	err := scanner.Scan(
		&item.ID, &item.UserID, &item.ItemName, &quantity, &notes,
		&bought, &item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.IsBought = bought != 0
	if quantity.Valid {
		item.Quantity = &quantity.String
	}
	if notes.Valid {
		item.Notes = &notes.String
	}
	return &item, nil
}

const itemCols = `id, user_id, item_name, quantity, notes, is_bought, created_at`

// Create inserts a pending item. Quantity and notes are stored as NULL
// when nil.
func (s *ItemStore) Create(userID int64, name string, quantity, notes *string) (*model.Item, error) {
	var q, n sql.NullString
	if quantity != nil {
		q = sql.NullString{String: *quantity, Valid: true}
	}
	if notes != nil {
		n = sql.NullString{String: *notes, Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO grocery_items (user_id, item_name, quantity, notes) VALUES (?, ?, ?, ?)`,
		userID, name, q, n,
	)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id, userID)
}

// GetByID fetches an item scoped to its owner. Another account's item id
// yields nil, same as an absent row.
func (s *ItemStore) GetByID(id, userID int64) (*model.Item, error) {
	row := s.db.QueryRow(
		`SELECT `+itemCols+` FROM grocery_items WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// ListPending returns the account's active items, newest first. A row is
// pending only while is_bought is unset and its notes are not the quick-buy
// sentinel.
func (s *ItemStore) ListPending(userID int64) ([]model.Item, error) {
	rows, err := s.db.Query(
		`SELECT `+itemCols+` FROM grocery_items
		 WHERE user_id = ?
		   AND is_bought = 0
		   AND (notes IS NULL OR notes <> ?)
		 ORDER BY created_at DESC`,
		userID, QuickBuyNotes,
	)
	if err != nil {
		return nil, fmt.Errorf("list pending items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// Delete removes an item by (id, user_id). Both must match one row; a miss
// on either returns ErrNotFound, so a repeated delete fails rather than
// silently succeeding.
func (s *ItemStore) Delete(id, userID int64) error {
	result, err := s.db.Exec(
		`DELETE FROM grocery_items WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
