package catalog

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/rx3lixir/fonoteka/internal/db"
)

// fakeTrackStore implements db.TrackStore in memory. The ranked slice is
// what SearchTracks windows over, standing in for the index's scoring.
type fakeTrackStore struct {
	inserted  []*db.Track
	byFileID  map[string]*db.Track
	ranked    []db.SearchResult
	stats     db.CatalogStats
	lookupErr error
	insertErr error
	searchErr error
}

func newFakeTrackStore() *fakeTrackStore {
	return &fakeTrackStore{byFileID: map[string]*db.Track{}}
}

func (f *fakeTrackStore) TrackByFileID(_ context.Context, fileID string) (*db.Track, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return f.byFileID[fileID], nil
}

func (f *fakeTrackStore) InsertTrack(_ context.Context, track *db.Track) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, track)
	f.byFileID[track.FileID] = track
	return nil
}

func (f *fakeTrackStore) SearchTracks(_ context.Context, _ string, offset, limit int) ([]db.SearchResult, int, error) {
	if f.searchErr != nil {
		return nil, 0, f.searchErr
	}
	total := len(f.ranked)
	if offset >= total {
		return []db.SearchResult{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return f.ranked[offset:end], total, nil
}

func (f *fakeTrackStore) TrackStats(_ context.Context) (db.CatalogStats, error) {
	return f.stats, nil
}

func testService(store *fakeTrackStore) *Service {
	return NewService(store, log.New(io.Discard), DefaultPageSize, DefaultExactMatchScore)
}

func TestSubmitAccepted(t *testing.T) {
	store := newFakeTrackStore()
	svc := testService(store)

	outcome, track, err := svc.Submit(context.Background(), 42, Submission{
		FileID:    "file-1",
		Title:     "Summer of Haze",
		Performer: "Aes Dana",
		Duration:  241,
		FileSize:  5_242_880,
	})

	require.NoError(t, err)
	require.Equal(t, Accepted, outcome)
	require.NotNil(t, track)
	require.Len(t, store.inserted, 1)
	require.Equal(t, int64(42), store.inserted[0].SenderID)
	require.Equal(t, "Summer of Haze", store.inserted[0].Title)
}

func TestSubmitDuplicateIsSilentNoOp(t *testing.T) {
	store := newFakeTrackStore()
	store.byFileID["file-1"] = &db.Track{FileID: "file-1", Title: "Summer of Haze"}
	svc := testService(store)

	outcome, track, err := svc.Submit(context.Background(), 42, Submission{
		FileID: "file-1",
		Title:  "Summer of Haze (Remaster)",
	})

	require.NoError(t, err)
	require.Equal(t, Duplicate, outcome)
	require.Nil(t, track)
	require.Empty(t, store.inserted)
}

func TestSubmitMissingTitleRejectedWithoutWrite(t *testing.T) {
	store := newFakeTrackStore()
	svc := testService(store)

	outcome, track, err := svc.Submit(context.Background(), 42, Submission{
		FileID:    "file-2",
		Performer: "Aes Dana",
		FileSize:  1024,
	})

	require.NoError(t, err)
	require.Equal(t, MissingTitle, outcome)
	require.Nil(t, track)
	require.Empty(t, store.inserted)
}

// Dedup precedes title validation: a titleless resubmission of a known file
// id must be a silent duplicate, not a missing-title rejection.
func TestSubmitDedupPrecedesTitleValidation(t *testing.T) {
	store := newFakeTrackStore()
	store.byFileID["file-1"] = &db.Track{FileID: "file-1", Title: "Summer of Haze"}
	svc := testService(store)

	outcome, track, err := svc.Submit(context.Background(), 42, Submission{FileID: "file-1"})

	require.NoError(t, err)
	require.Equal(t, Duplicate, outcome)
	require.Nil(t, track)
	require.Empty(t, store.inserted)
}

func TestSubmitStoreFaultPropagates(t *testing.T) {
	store := newFakeTrackStore()
	store.lookupErr = errors.New("store unavailable")
	svc := testService(store)

	_, _, err := svc.Submit(context.Background(), 42, Submission{FileID: "file-3", Title: "x"})

	require.Error(t, err)
	require.Empty(t, store.inserted)
}
