package mockapi

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"ptjobs/internal/domain"
)

//go:embed seed.yaml
var defaultSeed []byte

// Seed is the fixture set a Server starts with.
type Seed struct {
	Users         []SeedUser         `yaml:"users"`
	Candidates    []SeedCandidate    `yaml:"candidates"`
	Companies     []SeedCompany      `yaml:"companies"`
	Categories    []SeedCategory     `yaml:"categories"`
	JobPosts      []SeedJobPost      `yaml:"job_posts"`
	Resumes       []SeedResume       `yaml:"resumes"`
	Applications  []SeedApplication  `yaml:"applications"`
	Reviews       []SeedReview       `yaml:"reviews"`
	Follows       []SeedFollow       `yaml:"follows"`
	CompanyImages []SeedCompanyImage `yaml:"company_images"`
}

type SeedUser struct {
	ID        domain.ID `yaml:"id"`
	Username  string    `yaml:"username"`
	Password  string    `yaml:"password"`
	FirstName string    `yaml:"first_name"`
	LastName  string    `yaml:"last_name"`
	Email     string    `yaml:"email"`
	Phone     string    `yaml:"phone"`
	Role      string    `yaml:"role"`
	Candidate domain.ID `yaml:"candidate"`
	Company   domain.ID `yaml:"company"`
}

type SeedCandidate struct {
	ID     domain.ID `yaml:"id"`
	Name   string    `yaml:"name"`
	Gender string    `yaml:"gender"`
	DOB    string    `yaml:"dob"`
}

type SeedCompany struct {
	ID        domain.ID `yaml:"id"`
	Name      string    `yaml:"name"`
	TaxNumber string    `yaml:"tax_number"`
	Address   string    `yaml:"address"`
}

type SeedCategory struct {
	ID   domain.ID `yaml:"id"`
	Name string    `yaml:"name"`
}

type SeedWorkTime struct {
	Day       string `yaml:"day"`
	StartTime string `yaml:"start_time"`
	EndTime   string `yaml:"end_time"`
}

type SeedJobPost struct {
	ID          domain.ID      `yaml:"id"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Salary      string         `yaml:"salary"`
	Address     string         `yaml:"address"`
	Deadline    string         `yaml:"deadline"`
	Vacancy     int            `yaml:"vacancy"`
	Company     domain.ID      `yaml:"company"`
	Category    domain.ID      `yaml:"category"`
	CreatedAt   string         `yaml:"created_at"`
	WorkTimes   []SeedWorkTime `yaml:"work_times"`
}

type SeedResume struct {
	ID        domain.ID `yaml:"id"`
	File      string    `yaml:"file"`
	Candidate domain.ID `yaml:"candidate"`
}

type SeedApplication struct {
	ID        domain.ID `yaml:"id"`
	StartDate string    `yaml:"start_date"`
	EndDate   string    `yaml:"end_date"`
	Status    string    `yaml:"status"`
	Resume    domain.ID `yaml:"resume"`
	Candidate domain.ID `yaml:"candidate"`
	JobPost   domain.ID `yaml:"job_post"`
}

type SeedReview struct {
	ID          domain.ID `yaml:"id"`
	Comment     string    `yaml:"comment"`
	User        domain.ID `yaml:"user"`
	Application domain.ID `yaml:"application"`
	CreatedAt   string    `yaml:"created_at"`
}

type SeedFollow struct {
	ID        domain.ID `yaml:"id"`
	Candidate domain.ID `yaml:"candidate"`
	Company   domain.ID `yaml:"company"`
	CreatedAt string    `yaml:"created_at"`
}

type SeedCompanyImage struct {
	ID        domain.ID `yaml:"id"`
	Image     string    `yaml:"image"`
	Company   domain.ID `yaml:"company"`
	CreatedAt string    `yaml:"created_at"`
}

// DefaultSeed parses the embedded fixtures.
func DefaultSeed() (*Seed, error) { return ParseSeed(defaultSeed) }

// ParseSeed decodes a YAML fixture document and checks its references.
func ParseSeed(b []byte) (*Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("mockapi: parse seed: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Seed) validate() error {
	candidates := map[domain.ID]bool{}
	for _, c := range s.Candidates {
		candidates[c.ID] = true
	}
	companies := map[domain.ID]bool{}
	for _, c := range s.Companies {
		companies[c.ID] = true
	}
	seen := map[string]bool{}
	for _, u := range s.Users {
		if u.Username == "" || u.Password == "" {
			return fmt.Errorf("mockapi: seed user %d needs username and password", u.ID)
		}
		if seen[u.Username] {
			return fmt.Errorf("mockapi: duplicate seed user %q", u.Username)
		}
		seen[u.Username] = true
		role, ok := domain.ParseRole(u.Role)
		switch {
		case !ok:
			return fmt.Errorf("mockapi: seed user %q has role %q", u.Username, u.Role)
		case role == domain.RoleCandidate && !candidates[u.Candidate]:
			return fmt.Errorf("mockapi: seed user %q references unknown candidate %d", u.Username, u.Candidate)
		case role == domain.RoleCompany && !companies[u.Company]:
			return fmt.Errorf("mockapi: seed user %q references unknown company %d", u.Username, u.Company)
		}
	}
	for _, p := range s.JobPosts {
		if !companies[p.Company] {
			return fmt.Errorf("mockapi: job post %d references unknown company %d", p.ID, p.Company)
		}
	}
	return nil
}
