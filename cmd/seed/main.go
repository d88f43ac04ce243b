package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/ewhitley/cartkeeper/internal/database"
)

// Seeds the database with demo accounts, pending items, and backdated
// purchase history spread across distinct calendar days, so the
// recommendations endpoint returns data out of the box.
func main() {
	godotenv.Load()

	dbPath := os.Getenv("CARTKEEPER_DB_PATH")
	if dbPath == "" {
		dbPath = "cartkeeper.db"
	}

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := reset(db); err != nil {
		log.Fatalf("reset tables: %v", err)
	}
	if err := seed(db); err != nil {
		log.Fatalf("seed data: %v", err)
	}

	fmt.Println("Seed complete:", dbPath)
}

func reset(db *sql.DB) error {
	for _, table := range []string{"recommendations", "purchase_history", "grocery_items", "users"} {
		if _, err := db.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
		// Restart id sequences so the demo ids stay stable across runs
		if _, err := db.Exec(`DELETE FROM sqlite_sequence WHERE name = ?`, table); err != nil {
			return fmt.Errorf("reset sequence %s: %w", table, err)
		}
	}
	return nil
}

func seed(db *sql.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	for _, u := range []struct{ name, email string }{
		{"Alice", "alice@example.com"},
		{"Bob", "bob@example.com"},
		{"Carol", "carol@example.com"},
	} {
		if _, err := db.Exec(
			`INSERT INTO users (name, email, password_hash) VALUES (?, ?, ?)`,
			u.name, u.email, string(hash),
		); err != nil {
			return fmt.Errorf("insert user %s: %w", u.name, err)
		}
	}

	// Pending list for Alice
	pending := []struct {
		userID int64
		name   string
		qty    string
	}{
		{1, "Coffee", "1 bag"},
		{1, "Oats", "500g"},
		{2, "Dish soap", ""},
	}
	for _, p := range pending {
		var qty any
		if p.qty != "" {
			qty = p.qty
		}
		if _, err := db.Exec(
			`INSERT INTO grocery_items (user_id, item_name, quantity) VALUES (?, ?, ?)`,
			p.userID, p.name, qty,
		); err != nil {
			return fmt.Errorf("insert item %s: %w", p.name, err)
		}
	}

	// Purchase history. Alice bought Milk within the recent window; Carol's
	// log spans five distinct calendar days, with Milk, Bread, and Eggs
	// falling on the same day so they pair up as co-purchases.
	purchases := []struct {
		userID  int64
		name    string
		daysAgo int
	}{
		{1, "Milk", 2},

		{3, "Milk", 1},
		{3, "Bread", 1},
		{3, "Eggs", 1},
		{3, "Butter", 2},
		{3, "Cheese", 2},
		{3, "Apples", 3},
		{3, "Bananas", 3},
		{3, "Milk", 4},
		{3, "Bread", 4},
		{3, "Juice", 5},

		{2, "Milk", 3},
		{2, "Cereal", 3},
	}
	for _, p := range purchases {
		if _, err := db.Exec(
			`INSERT INTO purchase_history (user_id, item_name, purchased_on)
			 VALUES (?, ?, datetime('now', ?))`,
			p.userID, p.name, fmt.Sprintf("-%d days", p.daysAgo),
		); err != nil {
			return fmt.Errorf("insert purchase %s: %w", p.name, err)
		}
	}

	return nil
}
