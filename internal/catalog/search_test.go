package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rx3lixir/fonoteka/internal/db"
)

func rankedTracks(n int, topScore float64) []db.SearchResult {
	results := make([]db.SearchResult, 0, n)
	score := topScore
	for i := 0; i < n; i++ {
		results = append(results, db.SearchResult{
			Track: db.Track{
				FileID: fmt.Sprintf("file-%d", i),
				Title:  fmt.Sprintf("Track %d", i),
			},
			Score: score,
		})
		score *= 0.9
	}
	return results
}

func TestSearchNoMatchesIsTerminal(t *testing.T) {
	store := newFakeTrackStore()
	svc := testService(store)

	page, err := svc.Search(context.Background(), "zzzznotfound", 1)

	require.ErrorIs(t, err, ErrNoMatches)
	require.Nil(t, page)
}

// Seven matches, page size 3: pages of 3, 3 and 1, with show-more on the
// first two and the page count attached for the continuation.
func TestSearchPaginatesAcrossThreePages(t *testing.T) {
	store := newFakeTrackStore()
	store.ranked = rankedTracks(7, 1.5)
	svc := testService(store)

	page, err := svc.Search(context.Background(), "haze", 1)
	require.NoError(t, err)
	require.Len(t, page.Results, 3)
	require.True(t, page.ShowMore)
	require.Equal(t, 3, page.TotalPages)
	require.Equal(t, 7, page.Total)
	require.Equal(t, 1, page.Number)

	page, err = svc.Search(context.Background(), "haze", 2)
	require.NoError(t, err)
	require.Len(t, page.Results, 3)
	require.True(t, page.ShowMore)
	require.Equal(t, "file-3", page.Results[0].Track.FileID)

	page, err = svc.Search(context.Background(), "haze", 3)
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	require.False(t, page.ShowMore)
	require.Equal(t, "file-6", page.Results[0].Track.FileID)
}

func TestSearchIsIdempotent(t *testing.T) {
	store := newFakeTrackStore()
	store.ranked = rankedTracks(7, 1.5)
	svc := testService(store)

	first, err := svc.Search(context.Background(), "haze", 2)
	require.NoError(t, err)
	second, err := svc.Search(context.Background(), "haze", 2)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

// A top score past the threshold collapses the page to that single result
// with pagination suppressed, regardless of how many looser matches exist.
// Note the threshold itself is only as correct as the scoring scale of the
// index backing the store; these fixtures assume the default scale.
func TestSearchExactMatchShortCircuit(t *testing.T) {
	store := newFakeTrackStore()
	store.ranked = rankedTracks(5, 0.8)
	store.ranked[0] = db.SearchResult{
		Track: db.Track{FileID: "exact", Title: "Summer of Haze"},
		Score: 2.5,
	}
	svc := testService(store)

	page, err := svc.Search(context.Background(), `"summer of haze"`, 1)

	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	require.Equal(t, "exact", page.Results[0].Track.FileID)
	require.False(t, page.ShowMore)
	require.Equal(t, 1, page.TotalPages)
	require.Equal(t, 5, page.Total)
}

// The short-circuit is page-1 only: a high score at the top of a later
// window must not truncate mid-pagination.
func TestSearchShortCircuitDisabledPastPageOne(t *testing.T) {
	store := newFakeTrackStore()
	store.ranked = rankedTracks(7, 9.0)
	svc := testService(store)

	page, err := svc.Search(context.Background(), "haze", 2)

	require.NoError(t, err)
	require.Len(t, page.Results, 3)
	require.True(t, page.ShowMore)
}

func TestSearchShowMoreBoundary(t *testing.T) {
	for _, tc := range []struct {
		total    int
		page     int
		showMore bool
	}{
		{total: 3, page: 1, showMore: false},
		{total: 4, page: 1, showMore: true},
		{total: 6, page: 2, showMore: false},
		{total: 7, page: 2, showMore: true},
	} {
		store := newFakeTrackStore()
		store.ranked = rankedTracks(tc.total, 1.0)
		svc := testService(store)

		page, err := svc.Search(context.Background(), "haze", tc.page)
		require.NoError(t, err)
		require.Equal(t, tc.showMore, page.ShowMore, "total=%d page=%d", tc.total, tc.page)
	}
}

func TestSearchNormalizesPageBelowOne(t *testing.T) {
	store := newFakeTrackStore()
	store.ranked = rankedTracks(2, 1.0)
	svc := testService(store)

	page, err := svc.Search(context.Background(), "haze", 0)

	require.NoError(t, err)
	require.Equal(t, 1, page.Number)
	require.Len(t, page.Results, 2)
}
