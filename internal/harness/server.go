package harness

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/baitwatch/baitwatch/internal/api"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Server serves the article API from a Store. Every list and detail request
// also understands ?status=N to force an error response and ?delay=N to sleep
// N seconds before answering.
type Server struct {
	store *Store
	log   io.Writer
}

func NewServer(store *Store, log io.Writer) *Server {
	if log == nil {
		log = io.Discard
	}
	return &Server{store: store, log: log}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /api/articles", s.handleArticles)
	mux.HandleFunc("GET /api/articles/{id}", s.handleArticle)
	mux.HandleFunc("GET /api/sources", s.handleSources)
	return s.logRequests(mux)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		_, _ = fmt.Fprintf(s.log, "%s %s -> %d (%s) ua=%q id=%s\n",
			r.Method, r.URL.RequestURI(), rec.status, time.Since(start).Round(time.Millisecond),
			r.Header.Get("User-Agent"), r.Header.Get("X-Request-ID"))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.Health{
		Status:  "ok",
		Message: "Clickbait Verifier API is running",
		Endpoints: []string{
			"/api/articles",
			"/api/articles/{article_id}",
			"/api/sources",
		},
	})
}

type articlesResponse struct {
	Articles []api.Article `json:"articles"`
	Total    int           `json:"total"`
	Limit    int           `json:"limit"`
	Source   *string       `json:"source,omitempty"`
}

func (s *Server) handleArticles(w http.ResponseWriter, r *http.Request) {
	if s.simulate(w, r) {
		return
	}

	query := r.URL.Query()
	limit, ok := intParam(query.Get("limit"), DefaultLimit)
	if !ok || limit < 0 || limit > MaxLimit {
		writeDetail(w, http.StatusUnprocessableEntity, fmt.Sprintf("limit must be between 0 and %d", MaxLimit))
		return
	}
	offset, ok := intParam(query.Get("offset"), 0)
	if !ok || offset < 0 {
		writeDetail(w, http.StatusUnprocessableEntity, "offset must be a non-negative integer")
		return
	}

	resp := articlesResponse{Limit: limit}
	if source := query.Get("source"); source != "" {
		resp.Source = &source
		resp.Articles = s.store.List(limit, offset, source)
	} else {
		resp.Articles = s.store.List(limit, offset, "")
	}
	resp.Total = len(resp.Articles)

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request) {
	if s.simulate(w, r) {
		return
	}

	article, ok := s.store.Get(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Article not found"})
		return
	}
	writeJSON(w, http.StatusOK, article)
}

func (s *Server) handleSources(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.SourceList{Sources: s.store.Sources()})
}

// simulate applies the delay and status query parameters. It reports whether
// the response has already been written.
func (s *Server) simulate(w http.ResponseWriter, r *http.Request) bool {
	query := r.URL.Query()

	if seconds, ok := intParam(query.Get("delay"), 0); ok && seconds > 0 {
		select {
		case <-time.After(time.Duration(seconds) * time.Second):
		case <-r.Context().Done():
			return true
		}
	}

	if status, ok := intParam(query.Get("status"), 0); ok && status >= 400 && status <= 599 {
		writeJSON(w, status, map[string]string{"error": fmt.Sprintf("simulated %d", status)})
		return true
	}
	return false
}

func intParam(raw string, def int) (int, bool) {
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
