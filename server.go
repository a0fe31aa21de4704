package main

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	gojson "github.com/goccy/go-json"

	"github.com/aldehir/rangesum/rangecache"
	"github.com/aldehir/rangesum/rangesum"
)

// Server exposes a CachedArray over HTTP. A single mutex serializes all
// requests, so an update and its cache invalidation are never observed
// separately.
type Server struct {
	mu     sync.Mutex
	array  *rangesum.CachedArray
	mux    *http.ServeMux
	logger *slog.Logger
}

type sumResponse struct {
	Left  int   `json:"left"`
	Right int   `json:"right"`
	Sum   int64 `json:"sum"`
}

type updateResponse struct {
	Index  int   `json:"index"`
	Value  int64 `json:"value"`
	Cached int   `json:"cached"`
}

type statsResponse struct {
	Size   int              `json:"size"`
	Cached int              `json:"cached"`
	Stats  rangecache.Stats `json:"stats"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewServer(array *rangesum.CachedArray, logger *slog.Logger) *Server {
	mux := http.NewServeMux()
	s := &Server{
		array:  array,
		mux:    mux,
		logger: logger,
	}

	mux.HandleFunc("GET /sum", s.handleSum)
	mux.HandleFunc("POST /update", s.handleUpdate)
	mux.HandleFunc("GET /stats", s.handleStats)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleSum(w http.ResponseWriter, r *http.Request) {
	left, err := intParam(r, "left")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	right, err := intParam(r, "right")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	sum, err := s.array.Sum(left, right)
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	s.logger.Debug("Range sum", "left", left, "right", right, "sum", sum)
	s.writeJSON(w, http.StatusOK, sumResponse{Left: left, Right: right, Sum: sum})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	index, err := intParam(r, "index")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	value, err := strconv.ParseInt(r.URL.Query().Get("value"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New("invalid value parameter"))
		return
	}

	s.mu.Lock()
	err = s.array.Set(index, value)
	cached := s.array.CacheLen()
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	s.logger.Debug("Point update", "index", index, "value", value, "cached", cached)
	s.writeJSON(w, http.StatusOK, updateResponse{Index: index, Value: value, Cached: cached})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := statsResponse{
		Size:   s.array.Len(),
		Cached: s.array.CacheLen(),
		Stats:  s.array.Stats(),
	}
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := gojson.Marshal(v)
	if err != nil {
		s.logger.Error("Failed to encode response", "error", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Debug("Request rejected", "status", status, "error", err)
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func intParam(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0, errors.New("invalid " + name + " parameter")
	}
	return v, nil
}
