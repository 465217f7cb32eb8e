package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/rx3lixir/fonoteka/internal/db"
)

const (
	// DefaultPageSize is the result window per page.
	DefaultPageSize = 3

	// DefaultExactMatchScore is the relevance score at which the top result
	// of page 1 is treated as an unambiguous best match and returned alone,
	// with pagination suppressed. The value is an empirical heuristic tied
	// to the scoring scale of the underlying text index, not a universal
	// constant; deployments should tune search.exact_match_score to their
	// index (Postgres ts_rank sits on a different scale than the score this
	// default was originally calibrated against).
	DefaultExactMatchScore = 2.0
)

// ErrNoMatches is the terminal not-found outcome of a search. It is an
// expected result, distinct from an empty window within a paginated set,
// and callers surface it as a fixed message rather than a failure.
var ErrNoMatches = errors.New("no tracks match the query")

// Page is one window of ranked results plus the continuation metadata the
// transport round-trips for the next "show more" request. Pages carry no
// server-side state: the same (query, number) always derives the same page
// from the current catalog.
type Page struct {
	Query      string
	Number     int
	Total      int
	TotalPages int
	Results    []db.SearchResult
	ShowMore   bool
}

// Search derives page number `page` (1-based) of the ranked results for
// query. Returns ErrNoMatches when nothing in the catalog matches at all.
func (s *Service) Search(ctx context.Context, query string, page int) (*Page, error) {
	if page < 1 {
		page = 1
	}

	limit := s.pageSize
	offset := (page - 1) * limit

	results, total, err := s.tracks.SearchTracks(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	if total == 0 {
		return nil, ErrNoMatches
	}

	// Exact-match short-circuit: a top score past the threshold means an
	// unambiguous best match (e.g. a quoted-phrase hit), so collapse to
	// that single result and suppress pagination. Applies on page 1 only:
	// under correct score ordering an exact match can't rank first on a
	// later page, so the rule is disabled there rather than surprising a
	// user mid-pagination with a single-result page.
	if page == 1 && len(results) > 0 && results[0].Score >= s.exactMatchScore {
		return &Page{
			Query:      query,
			Number:     1,
			Total:      total,
			TotalPages: 1,
			Results:    results[:1],
			ShowMore:   false,
		}, nil
	}

	newOffset := offset + limit
	showMore := total > newOffset
	totalPages := (total + limit - 1) / limit

	return &Page{
		Query:      query,
		Number:     page,
		Total:      total,
		TotalPages: totalPages,
		Results:    results,
		ShowMore:   showMore,
	}, nil
}
