// Package rachiotest provides a fake Rachio API server for testing.
package rachiotest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/clambin/rachio-tools/internal/rachio"
)

const APIKey = "test-api-key"

// Server emulates the parts of the Rachio API used by rachio.Client
type Server struct {
	*httptest.Server
	Person rachio.Person
	// Events are the events returned by /device/<id>/event, keyed by device ID. Only events inside the requested range are returned.
	Events map[string][]rachio.DeviceEvent

	lock      sync.Mutex
	calls     []Call
	failPaths map[string]int
}

// Call records a single API call received by the Server
type Call struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
}

// New starts a Server for the specified person
func New(person rachio.Person, events map[string][]rachio.DeviceEvent) *Server {
	s := Server{
		Person:    person,
		Events:    events,
		failPaths: make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return &s
}

// Fail makes all calls to path return the specified HTTP status code
func (s *Server) Fail(path string, statusCode int) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.failPaths[path] = statusCode
}

// Calls returns all calls received so far
func (s *Server) Calls() []Call {
	s.lock.Lock()
	defer s.lock.Unlock()
	calls := make([]Call, len(s.calls))
	copy(calls, s.calls)
	return calls
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != "Bearer "+APIKey {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	call := Call{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery}
	if r.Body != nil && r.Method == http.MethodPut {
		_ = json.NewDecoder(r.Body).Decode(&call.Body)
	}

	s.lock.Lock()
	s.calls = append(s.calls, call)
	statusCode, fail := s.failPaths[r.URL.Path]
	s.lock.Unlock()

	if fail {
		http.Error(w, http.StatusText(statusCode), statusCode)
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/person/info":
		writeJSON(w, map[string]string{"id": s.Person.ID})
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/person/"):
		if strings.TrimPrefix(r.URL.Path, "/person/") != s.Person.ID {
			http.Error(w, "person not found", http.StatusNotFound)
			return
		}
		writeJSON(w, s.Person)
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/device/") && strings.HasSuffix(r.URL.Path, "/event"):
		s.handleEvents(w, r)
	case r.Method == http.MethodPut && (r.URL.Path == "/zone/start" || r.URL.Path == "/device/on" || r.URL.Path == "/device/off"):
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "not implemented: "+r.URL.Path, http.StatusNotFound)
	}
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	deviceID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/device/"), "/event")
	start, err1 := strconv.ParseInt(r.URL.Query().Get("startTime"), 10, 64)
	end, err2 := strconv.ParseInt(r.URL.Query().Get("endTime"), 10, 64)
	if err1 != nil || err2 != nil {
		http.Error(w, "invalid time range", http.StatusBadRequest)
		return
	}
	events := make([]rachio.DeviceEvent, 0)
	for _, event := range s.Events[deviceID] {
		if event.EventDate >= start && event.EventDate <= end {
			events = append(events, event)
		}
	}
	writeJSON(w, events)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// MakeEvent returns a DeviceEvent for the device at the specified time
func MakeEvent(id, deviceID string, timestamp time.Time) rachio.DeviceEvent {
	return rachio.DeviceEvent{
		ID:        id,
		DeviceID:  deviceID,
		Category:  "DEVICE",
		Type:      "ZONE_STATUS",
		SubType:   "ZONE_COMPLETED",
		EventDate: timestamp.UnixMilli(),
		Summary:   "zone completed",
		Topic:     "WATERING",
	}
}
