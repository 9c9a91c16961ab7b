// Package api is the HTTP client for the movie recommendation service.
//
// The service exposes:
//
//	GET  /api/search?q=<query>          title suggestions
//	POST /api/recommend {"movie": ...}  similar movies
//	GET  /api/health                    liveness and catalogue size
//	GET  /api/movies?page=&per_page=    paginated catalogue
package api

// SearchResponse is the body of GET /api/search.
type SearchResponse struct {
	Query        string   `json:"query"`
	TotalMatches int      `json:"total_matches"`
	Matches      []string `json:"matches"`
}

// RecommendRequest is the body of POST /api/recommend.
type RecommendRequest struct {
	Movie string `json:"movie"`
}

// Recommendation is one similar movie. SimilarityScore is in [0, 1].
type Recommendation struct {
	Title           string  `json:"title"`
	SimilarityScore float64 `json:"similarity_score"`
}

// RecommendResponse is the success body of POST /api/recommend.
type RecommendResponse struct {
	InputMovie      string           `json:"input_movie"`
	Recommendations []Recommendation `json:"recommendations"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	TotalMovies int    `json:"total_movies"`
}

// MoviesResponse is one page of GET /api/movies.
type MoviesResponse struct {
	TotalMovies int      `json:"total_movies"`
	Page        int      `json:"page"`
	PerPage     int      `json:"per_page"`
	Movies      []string `json:"movies"`
}

// errorBody is what the service returns alongside non-2xx statuses.
type errorBody struct {
	Error      string `json:"error"`
	Suggestion string `json:"suggestion"`
}
