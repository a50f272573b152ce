package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"ptjobs/internal/domain"
	"ptjobs/internal/rbac"
)

var (
	ErrNotAuthenticated = errors.New("catalog: not signed in")
	ErrForbidden        = errors.New("catalog: action not permitted for role")
	ErrInvalidArgument  = errors.New("catalog: invalid argument")
)

// Sessions is the read-only view of the session the catalog needs.
type Sessions interface {
	Snapshot() domain.Session
}

// Service runs screen queries and user actions against the marketplace API.
type Service struct {
	api      domain.MarketplaceClient
	sessions Sessions
	log      zerolog.Logger
}

// New constructs a catalog Service.
func New(api domain.MarketplaceClient, sessions Sessions, log zerolog.Logger) *Service {
	return &Service{api: api, sessions: sessions, log: log}
}

func (s *Service) session() (domain.Session, error) {
	sess := s.sessions.Snapshot()
	if !sess.Authenticated() {
		return domain.Session{}, ErrNotAuthenticated
	}
	return sess, nil
}

func (s *Service) authorize(perm rbac.Permission) (domain.Session, error) {
	sess, err := s.session()
	if err != nil {
		return domain.Session{}, err
	}
	if err := rbac.Require(sess.Role, perm); err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", ErrForbidden, err)
	}
	return sess, nil
}

// Home loads the landing screen for the signed-in role.
func (s *Service) Home(ctx context.Context) (HomeFeed, error) {
	sess, err := s.session()
	if err != nil {
		return HomeFeed{}, err
	}
	feed := HomeFeed{Role: sess.Role}
	if sess.Role == domain.RoleCompany {
		feed.Applications, err = s.api.ListApplications(ctx, sess.Token, domain.ListQuery{})
		return feed, err
	}
	if feed.Jobs, err = s.api.ListJobPosts(ctx, sess.Token, domain.ListQuery{}); err != nil {
		return HomeFeed{}, err
	}
	if feed.Categories, err = s.api.ListJobCategories(ctx, sess.Token); err != nil {
		return HomeFeed{}, err
	}
	return feed, nil
}

// Jobs lists job posts matching q.
func (s *Service) Jobs(ctx context.Context, q domain.ListQuery) ([]domain.JobPost, error) {
	sess, err := s.session()
	if err != nil {
		return nil, err
	}
	return s.api.ListJobPosts(ctx, sess.Token, q)
}

// Categories lists job categories.
func (s *Service) Categories(ctx context.Context) ([]domain.JobCategory, error) {
	sess, err := s.session()
	if err != nil {
		return nil, err
	}
	return s.api.ListJobCategories(ctx, sess.Token)
}

// Following lists the companies the candidate follows.
func (s *Service) Following(ctx context.Context) ([]FollowedCompany, error) {
	sess, err := s.authorize(rbac.PermFollow)
	if err != nil {
		return nil, err
	}
	follows, err := s.api.ListFollowing(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	out := make([]FollowedCompany, 0, len(follows))
	for _, f := range follows {
		row := FollowedCompany{Follow: f, Company: domain.Company{ID: f.Company}}
		c, err := s.api.GetCompany(ctx, sess.Token, f.Company)
		if err != nil {
			s.log.Warn().Err(err).Stringer("company", f.Company).Msg("resolve followed company")
		} else {
			row.Company = c
		}
		out = append(out, row)
	}
	return out, nil
}

// Resumes lists the candidate's uploaded resumes.
func (s *Service) Resumes(ctx context.Context) ([]domain.Resume, error) {
	sess, err := s.authorize(rbac.PermApply)
	if err != nil {
		return nil, err
	}
	return s.api.ListResumes(ctx, sess.Token)
}

// Posts lists job posts for the company Posts tab.
func (s *Service) Posts(ctx context.Context, q domain.ListQuery) ([]domain.JobPost, error) {
	sess, err := s.authorize(rbac.PermPostJob)
	if err != nil {
		return nil, err
	}
	return s.api.ListJobPosts(ctx, sess.Token, q)
}

// Job loads JobDetail.
func (s *Service) Job(ctx context.Context, id domain.ID) (JobView, error) {
	sess, err := s.session()
	if err != nil {
		return JobView{}, err
	}
	if id == 0 {
		return placeholderJob(), nil
	}
	post, err := s.api.GetJobPost(ctx, sess.Token, id)
	if err != nil {
		return JobView{}, err
	}
	view := JobView{Post: post, Company: domain.Company{ID: post.Company}}
	if post.Company != 0 {
		if view.Company, err = s.api.GetCompany(ctx, sess.Token, post.Company); err != nil {
			return JobView{}, err
		}
	}
	return view, nil
}

// Company loads CompanyDetail.
func (s *Service) Company(ctx context.Context, id domain.ID) (CompanyView, error) {
	sess, err := s.session()
	if err != nil {
		return CompanyView{}, err
	}
	if id == 0 {
		return placeholderCompany(), nil
	}
	var view CompanyView
	if view.Company, err = s.api.GetCompany(ctx, sess.Token, id); err != nil {
		return CompanyView{}, err
	}
	if view.Jobs, err = s.api.ListJobPosts(ctx, sess.Token, domain.ListQuery{Company: id}); err != nil {
		return CompanyView{}, err
	}
	if view.Images, err = s.api.ListCompanyImages(ctx, sess.Token, domain.ListQuery{Company: id}); err != nil {
		return CompanyView{}, err
	}
	if view.Reviews, err = s.api.ListCompanyReviews(ctx, sess.Token, id); err != nil {
		return CompanyView{}, err
	}
	return view, nil
}

// Candidate loads CandidateDetail.
func (s *Service) Candidate(ctx context.Context, id domain.ID) (CandidateView, error) {
	sess, err := s.session()
	if err != nil {
		return CandidateView{}, err
	}
	if id == 0 {
		return placeholderCandidate(), nil
	}
	var view CandidateView
	if view.Candidate, err = s.api.GetCandidate(ctx, sess.Token, id); err != nil {
		return CandidateView{}, err
	}
	if view.Reviews, err = s.api.ListCandidateReviews(ctx, sess.Token, id); err != nil {
		return CandidateView{}, err
	}
	return view, nil
}

// Post loads PostDetail.
func (s *Service) Post(ctx context.Context, id domain.ID) (PostView, error) {
	sess, err := s.session()
	if err != nil {
		return PostView{}, err
	}
	if id == 0 {
		return placeholderPost(), nil
	}
	var view PostView
	if view.Post, err = s.api.GetJobPost(ctx, sess.Token, id); err != nil {
		return PostView{}, err
	}
	if view.Applications, err = s.api.ListApplications(ctx, sess.Token, domain.ListQuery{JobPost: id}); err != nil {
		return PostView{}, err
	}
	return view, nil
}

// Notifications derives status updates from the applications visible to
// the signed-in user.
func (s *Service) Notifications(ctx context.Context) ([]domain.Notification, error) {
	sess, err := s.session()
	if err != nil {
		return nil, err
	}
	apps, err := s.api.ListApplications(ctx, sess.Token, domain.ListQuery{})
	if err != nil {
		return nil, err
	}

	names := map[domain.ID]string{}
	jobName := func(id domain.ID) string {
		if n, ok := names[id]; ok {
			return n
		}
		n := "job #" + id.String()
		if post, err := s.api.GetJobPost(ctx, sess.Token, id); err == nil && post.Name != "" {
			n = post.Name
		}
		names[id] = n
		return n
	}

	out := make([]domain.Notification, 0, len(apps))
	for _, a := range apps {
		out = append(out, domain.Notification{
			Application: a.ID,
			JobPost:     a.JobPost,
			Status:      a.Status,
			Text:        notificationText(sess.Role, a, jobName(a.JobPost)),
		})
	}
	return out, nil
}

func notificationText(role domain.Role, a domain.Application, job string) string {
	if role == domain.RoleCompany {
		return fmt.Sprintf("Application #%s for %q is %s", a.ID, job, strings.ToLower(string(a.Status)))
	}
	switch a.Status {
	case domain.StatusEmployed:
		return fmt.Sprintf("You were hired for %q", job)
	case domain.StatusRejected:
		return fmt.Sprintf("Your application for %q was not successful", job)
	case domain.StatusTerminated:
		return fmt.Sprintf("Your employment for %q has ended", job)
	default:
		return fmt.Sprintf("Your application for %q is being reviewed", job)
	}
}

// Apply submits resumeID to jobID.
func (s *Service) Apply(ctx context.Context, jobID, resumeID domain.ID) (domain.Application, error) {
	sess, err := s.authorize(rbac.PermApply)
	if err != nil {
		return domain.Application{}, err
	}
	if jobID == 0 || resumeID == 0 {
		return domain.Application{}, fmt.Errorf("%w: job and resume ids are required", ErrInvalidArgument)
	}
	app, err := s.api.CreateApplication(ctx, sess.Token, domain.Application{JobPost: jobID, Resume: resumeID})
	if err != nil {
		return domain.Application{}, err
	}
	s.log.Info().Stringer("job", jobID).Stringer("application", app.ID).Msg("applied")
	return app, nil
}

// Follow starts following companyID.
func (s *Service) Follow(ctx context.Context, companyID domain.ID) (domain.Follow, error) {
	sess, err := s.authorize(rbac.PermFollow)
	if err != nil {
		return domain.Follow{}, err
	}
	if companyID == 0 {
		return domain.Follow{}, fmt.Errorf("%w: company id is required", ErrInvalidArgument)
	}
	return s.api.Follow(ctx, sess.Token, companyID)
}

// Unfollow removes the follow record followID.
func (s *Service) Unfollow(ctx context.Context, followID domain.ID) error {
	sess, err := s.authorize(rbac.PermFollow)
	if err != nil {
		return err
	}
	if followID == 0 {
		return fmt.Errorf("%w: follow id is required", ErrInvalidArgument)
	}
	return s.api.Unfollow(ctx, sess.Token, followID)
}

// CreatePost publishes a job post on behalf of the signed-in company.
func (s *Service) CreatePost(ctx context.Context, post domain.JobPost) (domain.JobPost, error) {
	sess, err := s.authorize(rbac.PermPostJob)
	if err != nil {
		return domain.JobPost{}, err
	}
	if strings.TrimSpace(post.Name) == "" {
		return domain.JobPost{}, fmt.Errorf("%w: job name is required", ErrInvalidArgument)
	}
	if post.Vacancy < 0 {
		return domain.JobPost{}, fmt.Errorf("%w: vacancy must not be negative", ErrInvalidArgument)
	}
	created, err := s.api.CreateJobPost(ctx, sess.Token, post)
	if err != nil {
		return domain.JobPost{}, err
	}
	s.log.Info().Stringer("post", created.ID).Msg("job posted")
	return created, nil
}
