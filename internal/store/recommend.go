package store

import (
	"database/sql"
	"fmt"

	"github.com/ewhitley/cartkeeper/internal/model"
)

type RecommendationStore struct {
	db *sql.DB
}

func NewRecommendationStore(db *sql.DB) *RecommendationStore {
	return &RecommendationStore{db: db}
}

// Recommend computes co-purchase suggestions for a user:
//
//  1. recent_items: distinct names the user purchased in the last 7 days
//  2. related_users: other accounts that ever purchased any of those names
//  3. co_purchases: for each related user, every purchase of a recent item
//     paired with that same user's other purchases on the same calendar day
//     whose names are outside the recent set
//  4. group by name, count, order by count descending, top 5
//
// Pairing is by calendar day (date truncation), not a rolling 24h window.
// An empty recent set yields an empty result. Read-only; safe to retry.
func (s *RecommendationStore) Recommend(userID int64) ([]model.Recommendation, error) {
	rows, err := s.db.Query(`
		WITH recent_items AS (
		    SELECT DISTINCT item_name
		    FROM purchase_history
		    WHERE user_id = ?
		      AND purchased_on >= datetime('now', '-7 days')
		),
		related_users AS (
		    SELECT DISTINCT ph.user_id
		    FROM purchase_history ph
		    JOIN recent_items ri ON ph.item_name = ri.item_name
		    WHERE ph.user_id <> ?
		),
		co_purchases AS (
		    SELECT ph2.item_name
		    FROM purchase_history ph1
		    JOIN purchase_history ph2
		      ON ph1.user_id = ph2.user_id
		     AND date(ph1.purchased_on) = date(ph2.purchased_on)
		    WHERE ph1.item_name IN (SELECT item_name FROM recent_items)
		      AND ph1.user_id IN (SELECT user_id FROM related_users)
		      AND ph2.item_name NOT IN (SELECT item_name FROM recent_items)
		)
		SELECT item_name, COUNT(*) AS freq
		FROM co_purchases
		GROUP BY item_name
		ORDER BY freq DESC
		LIMIT 5`,
		userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("recommend query: %w", err)
	}
	defer rows.Close()

	var recs []model.Recommendation
	for rows.Next() {
		var r model.Recommendation
		if err := rows.Scan(&r.ItemName, &r.Freq); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}
