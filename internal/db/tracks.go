package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TrackByFileID does the exact lookup used for dedup. A miss is not an
// error: it returns (nil, nil).
func (s *PostgresStore) TrackByFileID(ctx context.Context, fileID string) (*Track, error) {
	query := `
		SELECT id, file_id, title, performer, duration, file_size, sender_id, created_at
		FROM tracks
		WHERE file_id = $1
		LIMIT 1
	`

	track := &Track{}
	err := s.db.QueryRow(ctx, query, fileID).Scan(
		&track.ID,
		&track.FileID,
		&track.Title,
		&track.Performer,
		&track.Duration,
		&track.FileSize,
		&track.SenderID,
		&track.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up track by file id: %w", err)
	}

	return track, nil
}

// InsertTrack appends a new track record. It performs no uniqueness check,
// the caller is responsible for dedup.
func (s *PostgresStore) InsertTrack(ctx context.Context, track *Track) error {
	query := `
		INSERT INTO tracks (id, file_id, title, performer, duration, file_size, sender_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if track.ID == uuid.Nil {
		track.ID = uuid.New()
	}
	if track.CreatedAt.IsZero() {
		track.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(ctx, query,
		track.ID,
		track.FileID,
		track.Title,
		track.Performer,
		track.Duration,
		track.FileSize,
		track.SenderID,
		track.CreatedAt,
	)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("operation cancelled: %w", ctx.Err())
		}
		return fmt.Errorf("failed to insert track: %w", err)
	}

	return nil
}

// SearchTracks runs a relevance-scored free-text match over title+performer.
// websearch_to_tsquery gives the query syntax the callers rely on: bare words
// are AND'ed, a quoted segment becomes an exact-phrase constraint, several
// quoted segments are required-AND phrase matches. Results come back in
// descending score order; the window is offset/limit into the full ranked
// set, and the total match count rides along via COUNT(*) OVER().
func (s *PostgresStore) SearchTracks(ctx context.Context, query string, offset, limit int) ([]SearchResult, int, error) {
	sql := `
		SELECT id, file_id, title, performer, duration, file_size, sender_id, created_at,
		       ts_rank(search_vec, q) AS score,
		       COUNT(*) OVER() AS total
		FROM tracks, websearch_to_tsquery('simple', $1) AS q
		WHERE search_vec @@ q
		ORDER BY score DESC, created_at ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.Query(ctx, sql, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search tracks: %w", err)
	}
	defer rows.Close()

	results := []SearchResult{}
	total := 0
	for rows.Next() {
		res := SearchResult{}
		err := rows.Scan(
			&res.Track.ID,
			&res.Track.FileID,
			&res.Track.Title,
			&res.Track.Performer,
			&res.Track.Duration,
			&res.Track.FileSize,
			&res.Track.SenderID,
			&res.Track.CreatedAt,
			&res.Score,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan search result: %w", err)
		}
		results = append(results, res)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating search results: %w", err)
	}

	// The window can land past the end of the result set, in which case no
	// rows (and no COUNT(*) OVER()) came back. Fetch the total separately so
	// out-of-range pages still report it.
	if len(results) == 0 {
		countSQL := `
			SELECT COUNT(*)
			FROM tracks, websearch_to_tsquery('simple', $1) AS q
			WHERE search_vec @@ q
		`
		if err := s.db.QueryRow(ctx, countSQL, query).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("failed to count search matches: %w", err)
		}
	}

	return results, total, nil
}

// TrackStats returns the catalog-wide count and byte sum.
func (s *PostgresStore) TrackStats(ctx context.Context) (CatalogStats, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(file_size), 0) FROM tracks`

	stats := CatalogStats{}
	if err := s.db.QueryRow(ctx, query).Scan(&stats.Count, &stats.TotalBytes); err != nil {
		return CatalogStats{}, fmt.Errorf("failed to aggregate track stats: %w", err)
	}

	return stats, nil
}
