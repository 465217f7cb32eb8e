package httpserver

type StatsResponse struct {
	Summary string `json:"summary"`
}

type TrackResponse struct {
	FileID    string  `json:"file_id"`
	Title     string  `json:"title"`
	Performer string  `json:"performer"`
	Duration  int     `json:"duration"`
	Score     float64 `json:"score"`
}

type SearchResponse struct {
	Query      string          `json:"query"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
	Total      int             `json:"total"`
	ShowMore   bool            `json:"show_more"`
	Results    []TrackResponse `json:"results"`
}
