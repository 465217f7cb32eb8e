package db

import (
	"time"

	"github.com/google/uuid"
)

// Track is one submitted audio item. Tracks are write-once: never updated,
// never deleted.
type Track struct {
	ID        uuid.UUID `json:"id"`
	FileID    string    `json:"file_id"`
	Title     string    `json:"title"`
	Performer string    `json:"performer"`
	Duration  int       `json:"duration"`
	FileSize  int64     `json:"file_size"`
	SenderID  int64     `json:"sender_id"`
	CreatedAt time.Time `json:"created_at"`
}

// User is a chat participant who opted in via /start. The id is the
// transport-assigned user id, profile fields are captured verbatim.
type User struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// SearchResult is a track annotated with the index-assigned relevance score
// for one particular query. The score is never persisted.
type SearchResult struct {
	Track Track   `json:"track"`
	Score float64 `json:"score"`
}

// CatalogStats is the aggregate over the whole tracks collection.
// TotalBytes is meaningless when Count is zero.
type CatalogStats struct {
	Count      int64 `json:"count"`
	TotalBytes int64 `json:"total_bytes"`
}
