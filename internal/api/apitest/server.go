// Package apitest provides an in-memory stand-in for the time-clock backend,
// mirroring its route surface, bearer-token enforcement and error body shape.
// Tests point the API client at Server.URL and drive the real HTTP path.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"github.com/timesheet-offline/timeclock-client-go/internal/domain/audit"
	"github.com/timesheet-offline/timeclock-client-go/internal/domain/auth"
	"github.com/timesheet-offline/timeclock-client-go/internal/domain/clock"
	"github.com/timesheet-offline/timeclock-client-go/internal/domain/timesheet"
	"github.com/timesheet-offline/timeclock-client-go/internal/domain/user"
)

const testSecret = "apitest-secret-key"

// Server is the fake backend. Fixture fields may be mutated between requests;
// handlers copy under the lock.
type Server struct {
	URL       string
	TokenAuth *jwtauth.JWTAuth

	mu       sync.Mutex
	requests []string

	AdminEmail    string
	AdminPassword string
	PinMessages   map[string]string // pin -> clock action message

	Users    []user.User
	nextID   int64
	Statuses []clock.UserStatus
	Sheets   []timesheet.WeeklyTimesheet
	Logs     []audit.LogEntry
	PageSize int
	CSV      []byte

	httpServer *httptest.Server
}

func NewServer() *Server {
	s := &Server{
		TokenAuth:     jwtauth.New("HS256", []byte(testSecret), nil),
		AdminEmail:    "admin@example.com",
		AdminPassword: "password123",
		PinMessages:   map[string]string{},
		nextID:        1000,
		CSV:           []byte("header\n"),
	}
	s.httpServer = httptest.NewServer(s.router())
	s.URL = s.httpServer.URL
	return s
}

func (s *Server) Close() {
	s.httpServer.Close()
}

// Token mints a bearer token the server will accept.
func (s *Server) Token() string {
	_, token, _ := s.TokenAuth.Encode(map[string]any{
		"sub": s.AdminEmail,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	return token
}

// ExpiredToken mints a bearer token the server will reject.
func (s *Server) ExpiredToken() string {
	_, token, _ := s.TokenAuth.Encode(map[string]any{
		"sub": s.AdminEmail,
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	return token
}

// Requests returns every "METHOD path" seen so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// CountRequests returns how many requests matched "METHOD path" exactly.
func (s *Server) CountRequests(methodAndPath string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.requests {
		if r == methodAndPath {
			n++
		}
	}
	return n
}

func (s *Server) router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(s.recordRequests)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/kiosk/login", s.kioskLogin)
		r.Post("/admin/login", s.adminLogin)
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(jwtauth.Verifier(s.TokenAuth))
		r.Use(s.authRequired)

		r.Get("/users/statuses", s.userStatuses)
		r.Get("/timesheets", s.timesheets)
		r.Get("/timesheets/export", s.exportCSV)
		r.Get("/audit-logs", s.auditLogs)
		r.Get("/audit-logs/export", s.exportCSV)
		r.Get("/users", s.listUsers)
		r.Post("/users", s.createUser)
		r.Post("/users/{id}/reset-pin", s.resetPin)
		r.Delete("/users/{id}", s.deleteUser)
	})

	return r
}

func (s *Server) recordRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Method+" "+r.URL.Path)
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			writeError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) kioskLogin(w http.ResponseWriter, r *http.Request) {
	var req auth.PinLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request body")
		return
	}

	s.mu.Lock()
	message, ok := s.PinMessages[req.Pin]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid credentials provided")
		return
	}
	writeJSON(w, http.StatusOK, auth.ClockResponse{Message: message})
}

func (s *Server) adminLogin(w http.ResponseWriter, r *http.Request) {
	var req auth.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request body")
		return
	}

	if req.Email != s.AdminEmail || req.Password != s.AdminPassword {
		writeError(w, http.StatusUnauthorized, "Invalid credentials provided")
		return
	}
	writeJSON(w, http.StatusOK, auth.TokenResponse{
		Token: s.Token(),
		Email: s.AdminEmail,
		Role:  string(user.RoleAdmin),
	})
}

func (s *Server) userStatuses(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	statuses := append([]clock.UserStatus(nil), s.Statuses...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, statuses)
}

func (s *Server) timesheets(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("weekStartDate") == "" {
		writeError(w, http.StatusBadRequest, "weekStartDate is required")
		return
	}
	s.mu.Lock()
	sheets := append([]timesheet.WeeklyTimesheet(nil), s.Sheets...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, sheets)
}

func (s *Server) auditLogs(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	if size <= 0 {
		size = 20
	}

	s.mu.Lock()
	logs := append([]audit.LogEntry(nil), s.Logs...)
	s.mu.Unlock()

	totalPages := (len(logs) + size - 1) / size
	start := page * size
	if start > len(logs) {
		start = len(logs)
	}
	end := start + size
	if end > len(logs) {
		end = len(logs)
	}

	writeJSON(w, http.StatusOK, audit.LogPage{
		Content:       logs[start:end],
		TotalPages:    totalPages,
		TotalElements: int64(len(logs)),
		Number:        page,
		Size:          size,
	})
}

func (s *Server) exportCSV(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("startDate") == "" || q.Get("endDate") == "" {
		writeError(w, http.StatusBadRequest, "startDate and endDate are required")
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	s.mu.Lock()
	csv := s.CSV
	s.mu.Unlock()
	_, _ = w.Write(csv)
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	users := append([]user.User(nil), s.Users...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req user.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.Users {
		if u.Email == req.Email {
			writeError(w, http.StatusBadRequest, "Error: Email is already in use!")
			return
		}
	}
	s.nextID++
	created := user.User{ID: s.nextID, Email: req.Email, Role: req.Role}
	s.Users = append(s.Users, created)
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) resetPin(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req user.ResetPinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NewPin == "" {
		writeError(w, http.StatusBadRequest, "newPin is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.Users {
		if u.ID == id {
			w.WriteHeader(http.StatusOK)
			return
		}
	}
	writeError(w, http.StatusNotFound, "User not found")
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.Users {
		if u.ID == id {
			s.Users = append(s.Users[:i], s.Users[i+1:]...)
			for j, st := range s.Statuses {
				if st.ID == id {
					s.Statuses = append(s.Statuses[:j], s.Statuses[j+1:]...)
					break
				}
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "User not found")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
