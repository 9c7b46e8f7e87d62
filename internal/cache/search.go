package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jxhee99/HappyMeal/internal/api"
	"github.com/jxhee99/HappyMeal/internal/model"
)

// DefaultTTL keeps a cached search page for a day; the catalog is
// read-mostly and admin edits are rare.
const DefaultTTL = 24 * time.Hour

func normalizeQuery(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}

func PutFoodSearch(db *sql.DB, query string, q api.PageQuery, page model.Page[model.Food], ttl time.Duration) error {
	payload, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("encode search cache payload: %w", err)
	}
	_, err = db.Exec(`
INSERT INTO food_search_cache(query_norm, sort_by, page, size, payload_json, expires_at)
VALUES(?, ?, ?, ?, ?, ?)
ON CONFLICT(query_norm, sort_by, page, size)
DO UPDATE SET payload_json=excluded.payload_json, expires_at=excluded.expires_at
`, normalizeQuery(query), q.SortBy, q.Page, q.Size, string(payload), time.Now().Add(ttl).UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert search cache: %w", err)
	}
	return nil
}

// GetFoodSearch returns a cached page when one exists and has not
// expired.
func GetFoodSearch(db *sql.DB, query string, q api.PageQuery) (model.Page[model.Food], bool, error) {
	var page model.Page[model.Food]
	var payload, expires string
	err := db.QueryRow(`
SELECT payload_json, expires_at FROM food_search_cache
WHERE query_norm = ? AND sort_by = ? AND page = ? AND size = ?
`, normalizeQuery(query), q.SortBy, q.Page, q.Size).Scan(&payload, &expires)
	if err == sql.ErrNoRows {
		return page, false, nil
	}
	if err != nil {
		return page, false, fmt.Errorf("lookup search cache: %w", err)
	}
	exp, err := time.Parse(time.RFC3339, expires)
	if err != nil || !exp.After(time.Now()) {
		return page, false, nil
	}
	if err := json.Unmarshal([]byte(payload), &page); err != nil {
		return page, false, fmt.Errorf("decode search cache payload: %w", err)
	}
	return page, true, nil
}

// Purge removes expired rows, or every row when all is set.
func Purge(db *sql.DB, all bool) (int64, error) {
	var res sql.Result
	var err error
	if all {
		res, err = db.Exec(`DELETE FROM food_search_cache`)
	} else {
		res, err = db.Exec(`DELETE FROM food_search_cache WHERE expires_at <= ?`, time.Now().UTC().Format(time.RFC3339))
	}
	if err != nil {
		return 0, fmt.Errorf("purge search cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count purged rows: %w", err)
	}
	return n, nil
}
