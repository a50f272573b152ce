package mockapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"ptjobs/internal/domain"
	"ptjobs/internal/rbac"
)

const denied = "You do not have permission to perform this action."

func idVar(r *http.Request) domain.ID {
	id, _ := domain.ParseID(mux.Vars(r)["id"])
	return id
}

func queryID(r *http.Request, key string) domain.ID {
	id, _ := domain.ParseID(r.URL.Query().Get(key))
	return id
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func fieldError(w http.ResponseWriter, field, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string][]string{field: {msg}})
}

func allow(w http.ResponseWriter, u *user, perm rbac.Permission) bool {
	if rbac.HasPermission(u.role, perm) {
		return true
	}
	writeDetail(w, http.StatusForbidden, denied)
	return false
}

type envelope[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// paginate writes items as a page envelope selected by ?page=N.
func paginate[T any](w http.ResponseWriter, r *http.Request, items []T, size int) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeDetail(w, http.StatusNotFound, "Invalid page.")
			return
		}
		page = n
	}
	start := (page - 1) * size
	if start > 0 && start >= len(items) {
		writeDetail(w, http.StatusNotFound, "Invalid page.")
		return
	}
	end := min(start+size, len(items))

	link := func(p int) *string {
		u := url.URL{Path: r.URL.Path}
		q := r.URL.Query()
		q.Set("page", strconv.Itoa(p))
		u.RawQuery = q.Encode()
		s := u.String()
		return &s
	}
	out := envelope[T]{Count: len(items), Results: items[start:end]}
	if end < len(items) {
		out.Next = link(page + 1)
	}
	if page > 1 {
		out.Previous = link(page - 1)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	var g domain.PasswordGrant
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			writeOAuthError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		g = domain.PasswordGrant{
			Username:     r.PostForm.Get("username"),
			Password:     r.PostForm.Get("password"),
			ClientID:     r.PostForm.Get("client_id"),
			ClientSecret: r.PostForm.Get("client_secret"),
			GrantType:    r.PostForm.Get("grant_type"),
		}
	} else if err := decodeBody(r, &g); err != nil {
		writeOAuthError(w, http.StatusBadRequest, "invalid_request", "malformed body")
		return
	}

	if g.ClientID != s.opts.ClientID || g.ClientSecret != s.opts.ClientSecret {
		writeOAuthError(w, http.StatusUnauthorized, "invalid_client", "Client authentication failed.")
		return
	}
	if g.GrantType != domain.GrantTypePassword {
		writeOAuthError(w, http.StatusBadRequest, "unsupported_grant_type", "Only the password grant is supported.")
		return
	}
	u, ok := s.db.authenticate(g.Username, g.Password)
	if !ok {
		writeOAuthError(w, http.StatusBadRequest, "invalid_grant", "Invalid credentials given.")
		return
	}
	tok, err := s.tokens.issue(u)
	if err != nil {
		s.log.Error().Err(err).Msg("sign token")
		writeDetail(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	writeJSON(w, http.StatusOK, domain.TokenResponse{
		AccessToken:  tok,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.opts.TokenTTL.Seconds()),
		RefreshToken: uuid.NewString(),
		Scope:        "read write",
	})
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var reg domain.Registration
	if err := decodeBody(r, &reg); err != nil {
		writeDetail(w, http.StatusBadRequest, "JSON parse error.")
		return
	}
	switch {
	case strings.TrimSpace(reg.Username) == "":
		fieldError(w, "username", "This field is required.")
		return
	case reg.Password == "":
		fieldError(w, "password", "This field is required.")
		return
	}
	if _, ok := domain.ParseRole(reg.Role); !ok {
		fieldError(w, "role", "\""+reg.Role+"\" is not a valid choice.")
		return
	}
	p, err := s.db.createUser(reg)
	if errors.Is(err, errConflict) {
		fieldError(w, "username", "A user with that username already exists.")
		return
	}
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.log.Info().Str("user", p.Username).Str("role", p.Role).Msg("registered")
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currentUser(r).profile)
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	s.db.mu.RLock()
	out := values(s.db.categories, nil)
	s.db.mu.RUnlock()
	slices.SortFunc(out, func(a, b domain.JobCategory) int { return strings.Compare(a.Name, b.Name) })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	search := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	category := queryID(r, "category_id")
	company := queryID(r, "company_id")

	s.db.mu.RLock()
	out := values(s.db.posts, func(p domain.JobPost) bool {
		if category != 0 && p.Category != category {
			return false
		}
		if company != 0 && p.Company != company {
			return false
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			return false
		}
		return true
	})
	s.db.mu.RUnlock()
	slices.Reverse(out)
	paginate(w, r, out, s.opts.PageSize)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	if !allow(w, u, rbac.PermPostJob) {
		return
	}
	var p domain.JobPost
	if err := decodeBody(r, &p); err != nil {
		writeDetail(w, http.StatusBadRequest, "JSON parse error.")
		return
	}
	if strings.TrimSpace(p.Name) == "" {
		fieldError(w, "name", "This field is required.")
		return
	}
	if p.Vacancy < 0 {
		fieldError(w, "vacancy", "Ensure this value is greater than or equal to 0.")
		return
	}

	s.db.mu.Lock()
	if _, ok := s.db.categories[p.Category]; p.Category != 0 && !ok {
		s.db.mu.Unlock()
		fieldError(w, "category", "Invalid pk \""+p.Category.String()+"\" - object does not exist.")
		return
	}
	p.ID = nextID(s.db.posts)
	p.Company = u.company
	p.CreatedAt = s.db.stamp()
	s.db.posts[p.ID] = p
	s.db.mu.Unlock()

	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	s.db.mu.RLock()
	p, ok := s.db.posts[idVar(r)]
	s.db.mu.RUnlock()
	if !ok {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	paginate(w, r, s.db.visibleApplications(currentUser(r), queryID(r, "job_post")), s.opts.PageSize)
}

func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	if !allow(w, u, rbac.PermApply) {
		return
	}
	var a domain.Application
	if err := decodeBody(r, &a); err != nil {
		writeDetail(w, http.StatusBadRequest, "JSON parse error.")
		return
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.posts[a.JobPost]; !ok {
		fieldError(w, "job_post", "Invalid pk \""+a.JobPost.String()+"\" - object does not exist.")
		return
	}
	if res, ok := s.db.resumes[a.Resume]; !ok || res.Candidate != u.candidate {
		fieldError(w, "resume", "Invalid pk \""+a.Resume.String()+"\" - object does not exist.")
		return
	}
	for _, existing := range s.db.apps {
		if existing.Candidate == u.candidate && existing.JobPost == a.JobPost {
			fieldError(w, "non_field_errors", "The fields candidate, job_post must make a unique set.")
			return
		}
	}
	a.ID = nextID(s.db.apps)
	a.Candidate = u.candidate
	a.Status = domain.StatusReviewing
	s.db.apps[a.ID] = a
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	s.db.mu.RLock()
	a, ok := s.db.apps[idVar(r)]
	visible := ok && s.db.canSeeApplication(u, a)
	s.db.mu.RUnlock()
	if !visible {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleApplicationReviews(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	id := idVar(r)
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	a, ok := s.db.apps[id]
	if !ok || !s.db.canSeeApplication(u, a) {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(w, http.StatusOK, s.db.reviewsWhere(func(a domain.Application) bool { return a.ID == id }))
}

func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	s.db.mu.RLock()
	c, ok := s.db.candidates[idVar(r)]
	s.db.mu.RUnlock()
	if !ok {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleCandidateReviews(w http.ResponseWriter, r *http.Request) {
	id := idVar(r)
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	if _, ok := s.db.candidates[id]; !ok {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(w, http.StatusOK, s.db.reviewsWhere(func(a domain.Application) bool { return a.Candidate == id }))
}

func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	s.db.mu.RLock()
	c, ok := s.db.companies[idVar(r)]
	s.db.mu.RUnlock()
	if !ok {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleCompanyReviews(w http.ResponseWriter, r *http.Request) {
	id := idVar(r)
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	if _, ok := s.db.companies[id]; !ok {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(w, http.StatusOK, s.db.reviewsWhere(func(a domain.Application) bool {
		return s.db.posts[a.JobPost].Company == id
	}))
}

func (s *Server) handleListImages(w http.ResponseWriter, r *http.Request) {
	company := queryID(r, "company_id")
	s.db.mu.RLock()
	out := values(s.db.images, func(i domain.CompanyImage) bool { return company == 0 || i.Company == company })
	s.db.mu.RUnlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetImage(w http.ResponseWriter, r *http.Request) {
	s.db.mu.RLock()
	img, ok := s.db.images[idVar(r)]
	s.db.mu.RUnlock()
	if !ok {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(w, http.StatusOK, img)
}

// ownsFollow reports whether u is a party to f.
func ownsFollow(u *user, f domain.Follow) bool {
	switch u.role {
	case domain.RoleCandidate:
		return f.Candidate == u.candidate
	case domain.RoleCompany:
		return f.Company == u.company
	default:
		return false
	}
}

func (s *Server) handleListFollowing(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	s.db.mu.RLock()
	out := values(s.db.follows, func(f domain.Follow) bool { return ownsFollow(u, f) })
	s.db.mu.RUnlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleFollow(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	if !allow(w, u, rbac.PermFollow) {
		return
	}
	var f domain.Follow
	if err := decodeBody(r, &f); err != nil {
		writeDetail(w, http.StatusBadRequest, "JSON parse error.")
		return
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.companies[f.Company]; !ok {
		fieldError(w, "company", "Invalid pk \""+f.Company.String()+"\" - object does not exist.")
		return
	}
	for _, existing := range s.db.follows {
		if existing.Candidate == u.candidate && existing.Company == f.Company {
			fieldError(w, "non_field_errors", "The fields candidate, company must make a unique set.")
			return
		}
	}
	f.ID = nextID(s.db.follows)
	f.Candidate = u.candidate
	f.CreatedAt = s.db.stamp()
	s.db.follows[f.ID] = f
	writeJSON(w, http.StatusCreated, f)
}

func (s *Server) handleGetFollow(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	s.db.mu.RLock()
	f, ok := s.db.follows[idVar(r)]
	s.db.mu.RUnlock()
	if !ok || !ownsFollow(u, f) {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleUnfollow(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	if !allow(w, u, rbac.PermFollow) {
		return
	}
	id := idVar(r)
	s.db.mu.Lock()
	f, ok := s.db.follows[id]
	if ok && ownsFollow(u, f) {
		delete(s.db.follows, id)
	}
	s.db.mu.Unlock()
	if !ok || !ownsFollow(u, f) {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	s.db.mu.RLock()
	out := values(s.db.resumes, func(res domain.Resume) bool {
		return u.role == domain.RoleCandidate && res.Candidate == u.candidate
	})
	s.db.mu.RUnlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	s.db.mu.RLock()
	res, ok := s.db.resumes[idVar(r)]
	s.db.mu.RUnlock()
	if !ok || u.role != domain.RoleCandidate || res.Candidate != u.candidate {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleGetReview(w http.ResponseWriter, r *http.Request) {
	s.db.mu.RLock()
	rev, ok := s.db.reviews[idVar(r)]
	s.db.mu.RUnlock()
	if !ok {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(w, http.StatusOK, rev)
}
