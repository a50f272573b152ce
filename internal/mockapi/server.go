package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"ptjobs/internal/api"
)

// Options configures a Server.
type Options struct {
	ClientID     string
	ClientSecret string
	SigningKey   []byte
	TokenTTL     time.Duration
	// BcryptCost is used for seeded and registered passwords. Zero means
	// bcrypt.DefaultCost.
	BcryptCost int
	// PageSize bounds paginated list replies. Zero means 10.
	PageSize int
	// Seed is the initial data. Nil loads the embedded fixtures.
	Seed *Seed
	// Registry receives the server collectors and backs /metrics. Nil
	// creates a private registry.
	Registry *prometheus.Registry
	Logger   zerolog.Logger
	Now      func() time.Time
}

// Server is an in-memory implementation of the marketplace API.
type Server struct {
	opts     Options
	db       *db
	tokens   issuer
	log      zerolog.Logger
	requests *prometheus.CounterVec
	registry *prometheus.Registry
	router   *mux.Router
}

// New builds a Server from opts.
func New(opts Options) (*Server, error) {
	if opts.ClientID == "" || opts.ClientSecret == "" {
		return nil, errors.New("mockapi: client id and secret are required")
	}
	if len(opts.SigningKey) == 0 {
		return nil, errors.New("mockapi: signing key is required")
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 10 * time.Hour
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 10
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Seed == nil {
		seed, err := DefaultSeed()
		if err != nil {
			return nil, err
		}
		opts.Seed = seed
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	d, err := newDB(opts.Seed, opts.BcryptCost)
	if err != nil {
		return nil, err
	}
	d.now = opts.Now

	s := &Server{
		opts:     opts,
		db:       d,
		tokens:   issuer{key: opts.SigningKey, ttl: opts.TokenTTL, now: opts.Now},
		log:      opts.Logger,
		registry: opts.Registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ptjobs",
			Subsystem: "mockapi",
			Name:      "requests_total",
			Help:      "Requests served by route template and status code.",
		}, []string{"method", "route", "code"}),
	}
	if err := s.registry.Register(s.requests); err != nil {
		return nil, err
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the HTTP handler for the API.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.observe)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	r.HandleFunc(api.PathToken, s.handleToken).Methods(http.MethodPost)
	r.HandleFunc(api.PathUsers, s.handleCreateUser).Methods(http.MethodPost)

	authed := r.NewRoute().Subrouter()
	authed.Use(s.requireBearer)
	authed.HandleFunc(api.PathCurrentUser, s.handleCurrentUser).Methods(http.MethodGet)
	authed.HandleFunc(api.PathJobCategories, s.handleCategories).Methods(http.MethodGet)
	authed.HandleFunc(api.PathJobPosts, s.handleListPosts).Methods(http.MethodGet)
	authed.HandleFunc(api.PathJobPosts, s.handleCreatePost).Methods(http.MethodPost)
	authed.HandleFunc("/jobposts/{id:[0-9]+}/", s.handleGetPost).Methods(http.MethodGet)
	authed.HandleFunc(api.PathApplications, s.handleListApplications).Methods(http.MethodGet)
	authed.HandleFunc(api.PathApplications, s.handleCreateApplication).Methods(http.MethodPost)
	authed.HandleFunc("/applications/{id:[0-9]+}/", s.handleGetApplication).Methods(http.MethodGet)
	authed.HandleFunc("/applications/{id:[0-9]+}/reviews/", s.handleApplicationReviews).Methods(http.MethodGet)
	authed.HandleFunc("/candidates/{id:[0-9]+}/", s.handleGetCandidate).Methods(http.MethodGet)
	authed.HandleFunc("/candidates/{id:[0-9]+}/reviews/", s.handleCandidateReviews).Methods(http.MethodGet)
	authed.HandleFunc("/companies/{id:[0-9]+}/", s.handleGetCompany).Methods(http.MethodGet)
	authed.HandleFunc("/companies/{id:[0-9]+}/reviews/", s.handleCompanyReviews).Methods(http.MethodGet)
	authed.HandleFunc(api.PathCompanyImages, s.handleListImages).Methods(http.MethodGet)
	authed.HandleFunc("/company-images/{id:[0-9]+}/", s.handleGetImage).Methods(http.MethodGet)
	authed.HandleFunc(api.PathFollowing, s.handleListFollowing).Methods(http.MethodGet)
	authed.HandleFunc(api.PathFollowing, s.handleFollow).Methods(http.MethodPost)
	authed.HandleFunc("/following/{id:[0-9]+}/", s.handleGetFollow).Methods(http.MethodGet)
	authed.HandleFunc("/following/{id:[0-9]+}/", s.handleUnfollow).Methods(http.MethodDelete)
	authed.HandleFunc(api.PathResumes, s.handleListResumes).Methods(http.MethodGet)
	authed.HandleFunc("/resumes/{id:[0-9]+}/", s.handleGetResume).Methods(http.MethodGet)
	authed.HandleFunc("/reviews/{id:[0-9]+}/", s.handleGetReview).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not found.")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method \""+r.Method+"\" not allowed.")
	})
	return r
}

type ctxKey int

const userKey ctxKey = 1

func currentUser(r *http.Request) *user {
	u, _ := r.Context().Value(userKey).(*user)
	return u
}

// requireBearer resolves the Authorization header to a user.
func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeDetail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
			return
		}
		c, err := s.tokens.parse(raw)
		if err != nil {
			s.log.Debug().Err(err).Msg("rejected token")
			writeDetail(w, http.StatusUnauthorized, "Invalid or expired token.")
			return
		}
		u, ok := s.db.user(c.UserID)
		if !ok {
			writeDetail(w, http.StatusUnauthorized, "User not found.")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, u)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// observe writes the access log and counts the request.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := s.opts.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}

		route := "unmatched"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		s.requests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Str("request_id", r.Header.Get("X-Request-ID")).
			Int("status", rec.status).
			Int("bytes", rec.bytes).
			Dur("dur", s.opts.Now().Sub(started)).
			Msg("request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeOAuthError(w http.ResponseWriter, status int, code, description string) {
	writeJSON(w, status, map[string]string{"error": code, "error_description": description})
}
