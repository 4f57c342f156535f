package etl

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LoadExistingKeys fetches every listing key currently persisted, for O(1)
// membership tests when diffing a staged batch. This gates the whole
// pipeline run: an unreachable store propagates as a fatal error, there is
// no partial-index fallback.
func LoadExistingKeys(ctx context.Context, pool *pgxpool.Pool) (map[int64]struct{}, error) {
	rows, err := pool.Query(ctx, `SELECT id FROM jobs`)
	if err != nil {
		return nil, fmt.Errorf("query existing keys: %w", err)
	}
	defer rows.Close()

	keys := make(map[int64]struct{})
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys[id] = struct{}{}
	}

	return keys, rows.Err()
}
