package mockapi

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"ptjobs/internal/domain"
)

var errConflict = errors.New("already exists")

type user struct {
	profile   domain.Profile
	hash      []byte
	role      domain.Role
	candidate domain.ID
	company   domain.ID
}

// db is the in-memory backing state. All state is lost on exit.
type db struct {
	mu sync.RWMutex

	users      map[domain.ID]*user
	byName     map[string]*user
	candidates map[domain.ID]domain.Candidate
	companies  map[domain.ID]domain.Company
	categories map[domain.ID]domain.JobCategory
	posts      map[domain.ID]domain.JobPost
	resumes    map[domain.ID]domain.Resume
	apps       map[domain.ID]domain.Application
	reviews    map[domain.ID]domain.Review
	follows    map[domain.ID]domain.Follow
	images     map[domain.ID]domain.CompanyImage

	cost int
	now  func() time.Time
}

func newDB(seed *Seed, cost int) (*db, error) {
	d := &db{
		users:      map[domain.ID]*user{},
		byName:     map[string]*user{},
		candidates: map[domain.ID]domain.Candidate{},
		companies:  map[domain.ID]domain.Company{},
		categories: map[domain.ID]domain.JobCategory{},
		posts:      map[domain.ID]domain.JobPost{},
		resumes:    map[domain.ID]domain.Resume{},
		apps:       map[domain.ID]domain.Application{},
		reviews:    map[domain.ID]domain.Review{},
		follows:    map[domain.ID]domain.Follow{},
		images:     map[domain.ID]domain.CompanyImage{},
		cost:       cost,
		now:        time.Now,
	}

	for _, c := range seed.Candidates {
		d.candidates[c.ID] = domain.Candidate{ID: c.ID, Name: c.Name, Gender: c.Gender, DOB: c.DOB}
	}
	for _, c := range seed.Companies {
		d.companies[c.ID] = domain.Company{ID: c.ID, Name: c.Name, TaxNumber: c.TaxNumber, Address: c.Address}
	}
	for _, u := range seed.Users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), cost)
		if err != nil {
			return nil, err
		}
		role, _ := domain.ParseRole(u.Role)
		rec := &user{
			profile: domain.Profile{
				ID:        u.ID,
				Username:  u.Username,
				FirstName: u.FirstName,
				LastName:  u.LastName,
				Email:     u.Email,
				Phone:     u.Phone,
				Role:      role.APIName(),
			},
			hash:      hash,
			role:      role,
			candidate: u.Candidate,
			company:   u.Company,
		}
		if role == domain.RoleCompany {
			rec.profile.Name = d.companies[u.Company].Name
		}
		d.users[u.ID] = rec
		d.byName[u.Username] = rec
	}
	for _, c := range seed.Categories {
		d.categories[c.ID] = domain.JobCategory{ID: c.ID, Name: c.Name}
	}
	for _, p := range seed.JobPosts {
		post := domain.JobPost{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Salary:      domain.Amount(p.Salary),
			Address:     p.Address,
			Deadline:    p.Deadline,
			Vacancy:     p.Vacancy,
			Company:     p.Company,
			Category:    p.Category,
			CreatedAt:   p.CreatedAt,
		}
		for _, wt := range p.WorkTimes {
			post.WorkTimes = append(post.WorkTimes, domain.WorkTime{Day: wt.Day, StartTime: wt.StartTime, EndTime: wt.EndTime})
		}
		d.posts[p.ID] = post
	}
	for _, r := range seed.Resumes {
		d.resumes[r.ID] = domain.Resume{ID: r.ID, File: r.File, Candidate: r.Candidate}
	}
	for _, a := range seed.Applications {
		d.apps[a.ID] = domain.Application{
			ID:        a.ID,
			StartDate: a.StartDate,
			EndDate:   a.EndDate,
			Status:    domain.ApplicationStatus(a.Status),
			Resume:    a.Resume,
			Candidate: a.Candidate,
			JobPost:   a.JobPost,
		}
	}
	for _, r := range seed.Reviews {
		d.reviews[r.ID] = domain.Review{ID: r.ID, Comment: r.Comment, User: r.User, Application: r.Application, CreatedAt: r.CreatedAt}
	}
	for _, f := range seed.Follows {
		d.follows[f.ID] = domain.Follow{ID: f.ID, Candidate: f.Candidate, Company: f.Company, CreatedAt: f.CreatedAt}
	}
	for _, i := range seed.CompanyImages {
		d.images[i.ID] = domain.CompanyImage{ID: i.ID, Image: i.Image, Company: i.Company, CreatedAt: i.CreatedAt}
	}
	return d, nil
}

func nextID[T any](m map[domain.ID]T) domain.ID {
	var max domain.ID
	for id := range m {
		if id > max {
			max = id
		}
	}
	return max + 1
}

// values returns m's values ordered by id.
func values[T any](m map[domain.ID]T, keep func(T) bool) []T {
	ids := make([]domain.ID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if v := m[id]; keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func (d *db) stamp() string { return d.now().UTC().Format(time.RFC3339) }

// authenticate checks a username and password.
func (d *db) authenticate(username, password string) (*user, bool) {
	d.mu.RLock()
	u, ok := d.byName[username]
	d.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if bcrypt.CompareHashAndPassword(u.hash, []byte(password)) != nil {
		return nil, false
	}
	return u, true
}

func (d *db) user(id domain.ID) (*user, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.users[id]
	return u, ok
}

// createUser registers an account with its role profile.
func (d *db) createUser(reg domain.Registration) (domain.Profile, error) {
	role, _ := domain.ParseRole(reg.Role)
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), d.cost)
	if err != nil {
		return domain.Profile{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.byName[reg.Username]; ok {
		return domain.Profile{}, errConflict
	}
	rec := &user{
		profile: domain.Profile{
			ID:        nextID(d.users),
			Username:  reg.Username,
			FirstName: reg.FirstName,
			LastName:  reg.LastName,
			Email:     reg.Email,
			Phone:     reg.Phone,
			Role:      role.APIName(),
		},
		hash: hash,
		role: role,
	}
	name := strings.TrimSpace(reg.FirstName + " " + reg.LastName)
	if name == "" {
		name = reg.Username
	}
	switch role {
	case domain.RoleCandidate:
		rec.candidate = nextID(d.candidates)
		d.candidates[rec.candidate] = domain.Candidate{ID: rec.candidate, Name: name}
	case domain.RoleCompany:
		rec.company = nextID(d.companies)
		d.companies[rec.company] = domain.Company{ID: rec.company, Name: name}
		rec.profile.Name = name
	}
	d.users[rec.profile.ID] = rec
	d.byName[rec.profile.Username] = rec
	return rec.profile, nil
}

// visibleApplications returns the applications u may read: their own as a
// candidate, or those on their job posts as a company.
func (d *db) visibleApplications(u *user, jobPost domain.ID) []domain.Application {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return values(d.apps, func(a domain.Application) bool {
		if jobPost != 0 && a.JobPost != jobPost {
			return false
		}
		return d.canSeeApplication(u, a)
	})
}

// canSeeApplication must be called with d.mu held.
func (d *db) canSeeApplication(u *user, a domain.Application) bool {
	switch u.role {
	case domain.RoleCandidate:
		return a.Candidate == u.candidate
	case domain.RoleCompany:
		return d.posts[a.JobPost].Company == u.company
	default:
		return false
	}
}

// reviewsWhere returns reviews whose application matches keep. Must be
// called with d.mu held.
func (d *db) reviewsWhere(keep func(domain.Application) bool) []domain.Review {
	return values(d.reviews, func(r domain.Review) bool {
		a, ok := d.apps[r.Application]
		return ok && keep(a)
	})
}
