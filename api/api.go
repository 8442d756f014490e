// Package api serves the departure query engine over HTTP. Responses are
// JSON; client errors come back as 400 with a plain text reason.
package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	vicrail "vicrail.dev/vicrail"
)

const (
	DefaultMaxDepartures = 50
	DefaultMaxQueryDays  = 100
)

// SnapshotProvider hands out the current timetable snapshot. Implemented by
// vicrail.Manager.
type SnapshotProvider interface {
	Snapshot() (*vicrail.Snapshot, error)
}

// Server holds the handlers for the query APIs.
type Server struct {
	// MaxDepartures caps the count parameter of departure queries.
	MaxDepartures int

	// MaxQueryDays caps how far from now, in days either way, departures
	// may be queried. Week numbers repeat every 36 weeks, so queries beyond
	// roughly half that range would resolve to the wrong cycle.
	MaxQueryDays int

	provider SnapshotProvider
}

func NewServer(provider SnapshotProvider) *Server {
	return &Server{
		MaxDepartures: DefaultMaxDepartures,
		MaxQueryDays:  DefaultMaxQueryDays,
		provider:      provider,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/network/v1", s.handleNetworkV1)
	r.Get("/service/v1", s.handleServiceV1)
	r.Get("/departures/v1", s.handleDeparturesV1)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if _, err := s.provider.Snapshot(); err != nil {
		http.Error(w, "no timetable data loaded", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// snapshot fetches the current snapshot, writing a 503 if none is loaded
// yet.
func (s *Server) snapshot(w http.ResponseWriter) *vicrail.Snapshot {
	snapshot, err := s.provider.Snapshot()
	if err != nil {
		http.Error(w, "no timetable data loaded", http.StatusServiceUnavailable)
		return nil
	}
	return snapshot
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

// badRequest reports a client error as plain text, matching what API
// consumers show their users.
func badRequest(w http.ResponseWriter, format string, args ...any) {
	http.Error(w, fmt.Sprintf(format, args...), http.StatusBadRequest)
}

// requiredParam fetches a query parameter, writing a 400 and returning false
// when it is absent.
func requiredParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	if !r.URL.Query().Has(name) {
		badRequest(w, "The %q parameter was missing from the request.", name)
		return "", false
	}
	return r.URL.Query().Get(name), true
}
