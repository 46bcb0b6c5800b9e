package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kalichetiAravindreddy/image-search/internal/domain"
)

// SearchRepository stores the append-only search log and answers the two
// read queries built on it: per-user history and the global top-terms
// aggregate.
type SearchRepository struct {
	pool *pgxpool.Pool
}

func NewSearchRepository(pool *pgxpool.Pool) *SearchRepository {
	return &SearchRepository{pool: pool}
}

func (r *SearchRepository) Create(ctx context.Context, rec *domain.SearchRecord) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO search_records (id, user_id, term, created_at) VALUES ($1, $2, $3, $4)`,
		rec.ID, rec.UserID, rec.Term, rec.CreatedAt,
	)
	return err
}

// ListByUser returns the given user's records, most recent first.
func (r *SearchRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.SearchRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, term, created_at FROM search_records
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.SearchRecord
	for rows.Next() {
		var rec domain.SearchRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Term, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// TopTerms groups all records by exact term string and returns the most
// frequent ones, count descending. Ties fall wherever the aggregation
// engine puts them.
func (r *SearchRepository) TopTerms(ctx context.Context, limit int) ([]*domain.TopSearch, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT term, COUNT(*) AS count FROM search_records
		 GROUP BY term
		 ORDER BY count DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var top []*domain.TopSearch
	for rows.Next() {
		var entry domain.TopSearch
		if err := rows.Scan(&entry.Term, &entry.Count); err != nil {
			return nil, err
		}
		top = append(top, &entry)
	}
	return top, rows.Err()
}
