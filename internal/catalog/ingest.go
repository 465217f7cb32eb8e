package catalog

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/rx3lixir/fonoteka/internal/db"
)

// Outcome classifies a submission. Only Accepted writes anything.
type Outcome int

const (
	// Accepted means the track was persisted.
	Accepted Outcome = iota
	// Duplicate means a track with the same file id already exists.
	// Deliberately silent: no write, no user-visible signal.
	Duplicate
	// MissingTitle means the submission had no title and was rejected
	// before persistence. The transport should tell the sender.
	MissingTitle
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case Duplicate:
		return "duplicate"
	case MissingTitle:
		return "missing_title"
	default:
		return "unknown"
	}
}

// Submission carries the track fields the transport extracted from an
// inbound audio message.
type Submission struct {
	FileID    string
	Title     string
	Performer string
	Duration  int
	FileSize  int64
}

// Service is the catalog core: ingestion, search with stateless pagination,
// and stats. All shared state lives in the store, so a single Service is
// safe for concurrent use.
type Service struct {
	tracks          db.TrackStore
	log             *log.Logger
	pageSize        int
	exactMatchScore float64
}

func NewService(tracks db.TrackStore, logger *log.Logger, pageSize int, exactMatchScore float64) *Service {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if exactMatchScore <= 0 {
		exactMatchScore = DefaultExactMatchScore
	}

	return &Service{
		tracks:          tracks,
		log:             logger,
		pageSize:        pageSize,
		exactMatchScore: exactMatchScore,
	}
}

// Submit runs the ingestion pipeline for one submission. The order matters:
// the dedup lookup comes before title validation, so resubmitting a known
// file id is always a silent Duplicate even if the payload has no title.
// The returned track is non-nil only for Accepted. Only storage faults come
// back as errors.
func (s *Service) Submit(ctx context.Context, sender int64, sub Submission) (Outcome, *db.Track, error) {
	existing, err := s.tracks.TrackByFileID(ctx, sub.FileID)
	if err != nil {
		return 0, nil, fmt.Errorf("dedup lookup failed: %w", err)
	}
	if existing != nil {
		return Duplicate, nil, nil
	}

	if sub.Title == "" {
		return MissingTitle, nil, nil
	}

	track := &db.Track{
		FileID:    sub.FileID,
		Title:     sub.Title,
		Performer: sub.Performer,
		Duration:  sub.Duration,
		FileSize:  sub.FileSize,
		SenderID:  sender,
	}

	if err := s.tracks.InsertTrack(ctx, track); err != nil {
		return 0, nil, fmt.Errorf("failed to persist track: %w", err)
	}

	s.log.Info(
		"track added",
		"sender", sender,
		"performer", track.Performer,
		"title", track.Title,
	)

	return Accepted, track, nil
}
