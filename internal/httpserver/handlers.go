package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rx3lixir/fonoteka/internal/catalog"
)

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) HandleStats(w http.ResponseWriter, r *http.Request) {
	summary, err := s.catalog.Stats(r.Context())
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, StatsResponse{Summary: summary})
}

// HandleSearch mirrors the bot's search: same core, same pagination, the
// continuation just travels as query parameters instead of a button label.
func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		s.handleError(w, NewValidationError("query parameter q is required"))
		return
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.handleError(w, NewValidationError("page must be a positive integer"))
			return
		}
		page = parsed
	}

	result, err := s.catalog.Search(r.Context(), query, page)
	if err != nil {
		if errors.Is(err, catalog.ErrNoMatches) {
			s.handleError(w, NewNotFoundError("no tracks match the query"))
			return
		}
		s.handleError(w, err)
		return
	}

	response := SearchResponse{
		Query:      result.Query,
		Page:       result.Number,
		TotalPages: result.TotalPages,
		Total:      result.Total,
		ShowMore:   result.ShowMore,
		Results:    make([]TrackResponse, 0, len(result.Results)),
	}
	for _, res := range result.Results {
		response.Results = append(response.Results, TrackResponse{
			FileID:    res.Track.FileID,
			Title:     res.Track.Title,
			Performer: res.Track.Performer,
			Duration:  res.Track.Duration,
			Score:     res.Score,
		})
	}

	s.respondJSON(w, http.StatusOK, response)
}
