// Package backend provides an in-memory stand-in for the management REST
// service used by tests.
package backend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

const prefix = "/gestion"

// Request is one call received by the fake.
type Request struct {
	Method string
	Path   string
	Body   map[string]any
}

// Failure is a canned answer returned instead of the normal behaviour.
type Failure struct {
	Status int
	Body   string
}

// Server is an in-memory CRUD backend.
type Server struct {
	*httptest.Server

	mu          sync.Mutex
	collections map[string][]map[string]any
	idPrefix    map[string]string
	seq         map[string]int
	requests    []Request
	failures    map[string]Failure
}

// New starts a fake backend and registers its shutdown with t.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		collections: make(map[string][]map[string]any),
		idPrefix:    make(map[string]string),
		seq:         make(map[string]int),
		failures:    make(map[string]Failure),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Server.Close)
	return s
}

// Collection declares a collection path (e.g. "/categorias") whose
// generated identifiers start with idPrefix.
func (s *Server) Collection(path, idPrefix string, items ...map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idPrefix[path] = idPrefix
	s.collections[path] = append([]map[string]any{}, items...)
}

// Fail makes the next calls matching method and path (below the prefix)
// answer with f until Clear is called.
func (s *Server) Fail(method, path string, f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = f
}

// Clear removes all canned failures.
func (s *Server) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[string]Failure)
}

// Requests returns every call received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Count returns the number of calls with the given method.
func (s *Server) Count(method string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method {
			n++
		}
	}
	return n
}

// Items returns a copy of a collection.
func (s *Server) Items(path string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]any(nil), s.collections[path]...)
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, prefix)
	var body map[string]any
	if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
		_ = json.Unmarshal(raw, &body)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, Request{Method: r.Method, Path: path, Body: body})

	if f, ok := s.failures[r.Method+" "+path]; ok {
		w.WriteHeader(f.Status)
		_, _ = w.Write([]byte(f.Body))
		return
	}
	if !strings.HasPrefix(r.URL.Path, prefix) {
		http.NotFound(w, r)
		return
	}

	collection, id := split(path)
	items, known := s.collections[collection]
	if !known {
		http.NotFound(w, r)
		return
	}

	switch {
	case r.Method == http.MethodGet && id == "":
		writeJSON(w, http.StatusOK, items)
	case r.Method == http.MethodPost && id == "":
		created := map[string]any{"id": s.nextID(collection)}
		for k, v := range body {
			if k != "id" && k != "password" {
				created[k] = v
			}
		}
		s.collections[collection] = append(items, created)
		writeJSON(w, http.StatusCreated, created)
	case r.Method == http.MethodPatch && id != "":
		for _, item := range items {
			if fmt.Sprint(item["id"]) == id {
				for k, v := range body {
					if k != "id" && k != "password" {
						item[k] = v
					}
				}
				writeJSON(w, http.StatusOK, item)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "not found"})
	case r.Method == http.MethodDelete && id != "":
		for i, item := range items {
			if fmt.Sprint(item["id"]) == id {
				s.collections[collection] = append(items[:i:i], items[i+1:]...)
				w.WriteHeader(http.StatusOK)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "not found"})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// nextID returns the first generated identifier not already used by the
// collection, so seeded records never collide with created ones.
func (s *Server) nextID(collection string) string {
	for {
		s.seq[collection]++
		id := fmt.Sprintf("%s%d", s.idPrefix[collection], s.seq[collection])
		if !contains(s.collections[collection], id) {
			return id
		}
	}
}

func contains(items []map[string]any, id string) bool {
	for _, item := range items {
		if fmt.Sprint(item["id"]) == id {
			return true
		}
	}
	return false
}

func split(path string) (collection, id string) {
	trimmed := strings.Trim(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		return "/" + trimmed[:i], trimmed[i+1:]
	}
	return "/" + trimmed, ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
