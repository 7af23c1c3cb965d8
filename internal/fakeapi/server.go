// Package fakeapi serves the shopping-list REST contract from memory.
//
// It backs the client and manager tests and the tote-fakeapi command used for
// local development. Faults can be injected per route to exercise rollback
// paths, including dropped connections that the client sees as network
// failures.
package fakeapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/five82/tote/internal/listapi"
)

// DefaultUserID is the caller assumed when init data names no user.
const DefaultUserID int64 = 1

// DefaultUsers seeds a server when Options.Users is empty.
var DefaultUsers = []User{
	{ID: DefaultUserID, Username: "owner", FirstName: "Olive"},
	{ID: 2, Username: "alice", FirstName: "Alice", LastName: "Moss"},
	{ID: 3, Username: "bob", FirstName: "Bob"},
}

// Options configure a Server.
type Options struct {
	// BotToken enables init-data signature checks when set.
	BotToken string
	// Prefix is the mount point of the API routes, "/api" by default.
	Prefix string
	// ShareURL is prepended to share ids in share responses.
	ShareURL string
	Users    []User
	// LegacyCompletion emits "isDone" instead of "completed" on items.
	LegacyCompletion bool
	Logger           *zap.Logger
	Clock            func() time.Time
}

// Fault describes an injected failure. Empty Method or Route match anything;
// Route is the chi pattern relative to the prefix, such as
// "/lists/{id}/items". Times of zero keeps the fault until ClearFaults.
type Fault struct {
	Method  string
	Route   string
	Status  int
	Message string
	Drop    bool
	Times   int
}

// Server is an http.Handler implementing the list service.
type Server struct {
	mu       sync.Mutex
	db       *db
	faults   []*Fault
	before   func(*http.Request)
	requests int

	opts   Options
	log    *zap.Logger
	router chi.Router
}

type ctxKey struct{}

// New builds a Server with its routes mounted.
func New(opts Options) *Server {
	if opts.Prefix == "" {
		opts.Prefix = "/api"
	}
	if opts.ShareURL == "" {
		opts.ShareURL = "https://t.me/tote_bot?startapp="
	}
	if len(opts.Users) == 0 {
		opts.Users = DefaultUsers
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		db:   newDB(opts.Users, opts.Clock),
		opts: opts,
		log:  log.Named("fakeapi"),
	}
	s.db.legacyDone = opts.LegacyCompletion
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.logRequests)

	r.Route(s.opts.Prefix, func(r chi.Router) {
		r.Use(s.authenticate)
		r.Use(s.injectFaults)

		r.Get("/lists", s.handleListLists)
		r.Post("/lists", s.handleCreateList)
		r.Route("/lists/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetList)
			r.Patch("/", s.handleUpdateList)
			r.Delete("/", s.handleDeleteList)
			r.Post("/toggle-default", s.handleToggleDefault)
			r.Post("/share", s.handleShare)
			r.Get("/shares", s.handleListShares)
			r.Delete("/shares/{userId}", s.handleRemoveShare)
			r.Get("/items", s.handleListItems)
			r.Post("/items", s.handleCreateItem)
			r.Patch("/items/{itemId}", s.handleUpdateItem)
			r.Delete("/items/{itemId}", s.handleDeleteItem)
			r.Post("/items/{itemId}/toggle", s.handleToggleItem)
		})
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Inject adds a fault.
func (s *Server) Inject(f Fault) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = append(s.faults, &f)
}

// ClearFaults removes every injected fault.
func (s *Server) ClearFaults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = nil
}

// BeforeHandle registers fn to run after authentication and before each
// handler. It runs without the server lock held.
func (s *Server) BeforeHandle(fn func(*http.Request)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.before = fn
}

// Requests returns how many authenticated API requests were served.
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// SeedList creates a list owned by ownerID with the given item names and
// returns its id.
func (s *Server) SeedList(ownerID int64, name string, items ...string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.db.createList(name, ownerID)
	for _, item := range items {
		s.db.addItem(l, item)
	}
	return l.id
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", chimiddleware.GetReqID(r.Context())))
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if v := r.Header.Get(listapi.VersionHeader); v != "" && v != listapi.APIVersion {
			writeError(w, http.StatusBadRequest, "unsupported api version "+v)
			return
		}
		raw := r.Header.Get(listapi.InitDataHeader)
		if raw == "" {
			writeError(w, http.StatusUnauthorized, "missing init data")
			return
		}
		user, ok, err := ParseInitData(raw, s.opts.BotToken)
		if err != nil {
			s.log.Info("rejected init data", zap.Error(err))
			writeError(w, http.StatusUnauthorized, "invalid init data")
			return
		}
		userID := DefaultUserID
		if ok && user.ID != 0 {
			userID = user.ID
			s.mu.Lock()
			if _, known := s.db.users[user.ID]; !known {
				s.db.users[user.ID] = User{ID: user.ID, Username: user.UserName, FirstName: user.FirstName, LastName: user.LastName}
			}
			s.mu.Unlock()
		}

		s.mu.Lock()
		s.requests++
		before := s.before
		s.mu.Unlock()
		if before != nil {
			before(r)
		}

		ctx := context.WithValue(r.Context(), ctxKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func callerID(r *http.Request) int64 {
	if id, ok := r.Context().Value(ctxKey{}).(int64); ok {
		return id
	}
	return DefaultUserID
}

func (s *Server) injectFaults(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f := s.matchFault(r)
		if f == nil {
			next.ServeHTTP(w, r)
			return
		}
		if f.Drop {
			if hj, ok := w.(http.Hijacker); ok {
				if conn, _, err := hj.Hijack(); err == nil {
					conn.Close()
					return
				}
			}
			panic(http.ErrAbortHandler)
		}
		writeError(w, f.Status, f.Message)
	})
}

// matchFault finds the first fault for r and consumes one use of it.
func (s *Server) matchFault(r *http.Request) *Fault {
	route := strings.TrimPrefix(r.URL.Path, s.opts.Prefix)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.faults {
		if f.Method != "" && f.Method != r.Method {
			continue
		}
		if f.Route != "" && !routeMatches(f.Route, route) {
			continue
		}
		hit := *f
		if f.Times > 0 {
			f.Times--
			if f.Times == 0 {
				s.faults = append(s.faults[:i], s.faults[i+1:]...)
			}
		}
		return &hit
	}
	return nil
}

// routeMatches compares a chi-style pattern with a concrete path segment by
// segment.
func routeMatches(pattern, path string) bool {
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(ps) != len(segs) {
		return false
	}
	for i, p := range ps {
		if strings.HasPrefix(p, "{") && strings.HasSuffix(p, "}") {
			continue
		}
		if p != segs[i] {
			return false
		}
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	body := listapi.ErrorBody{Error: http.StatusText(status), Message: message}
	writeJSON(w, status, body)
}
