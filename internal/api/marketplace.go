package api

import (
	"context"
	"net/url"
	"strconv"

	"ptjobs/internal/domain"
)

func listValues(q domain.ListQuery) url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Category != 0 {
		v.Set("category_id", q.Category.String())
	}
	if q.Company != 0 {
		v.Set("company_id", q.Company.String())
	}
	if q.JobPost != 0 {
		v.Set("job_post", q.JobPost.String())
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	return v
}

func (c *Client) ListJobCategories(ctx context.Context, token string) ([]domain.JobCategory, error) {
	return getList[domain.JobCategory](ctx, c.WithToken(token), PathJobCategories, nil)
}

func (c *Client) ListJobPosts(ctx context.Context, token string, q domain.ListQuery) ([]domain.JobPost, error) {
	return getList[domain.JobPost](ctx, c.WithToken(token), PathJobPosts, listValues(q))
}

func (c *Client) GetJobPost(ctx context.Context, token string, id domain.ID) (domain.JobPost, error) {
	var out domain.JobPost
	err := c.WithToken(token).getJSON(ctx, JobPostPath(id), nil, &out)
	return out, err
}

func (c *Client) CreateJobPost(ctx context.Context, token string, post domain.JobPost) (domain.JobPost, error) {
	var out domain.JobPost
	err := c.WithToken(token).post(ctx, PathJobPosts, post, &out)
	return out, err
}

func (c *Client) ListApplications(ctx context.Context, token string, q domain.ListQuery) ([]domain.Application, error) {
	return getList[domain.Application](ctx, c.WithToken(token), PathApplications, listValues(q))
}

func (c *Client) GetApplication(ctx context.Context, token string, id domain.ID) (domain.Application, error) {
	var out domain.Application
	err := c.WithToken(token).getJSON(ctx, ApplicationPath(id), nil, &out)
	return out, err
}

func (c *Client) CreateApplication(ctx context.Context, token string, app domain.Application) (domain.Application, error) {
	var out domain.Application
	err := c.WithToken(token).post(ctx, PathApplications, app, &out)
	return out, err
}

func (c *Client) ListApplicationReviews(ctx context.Context, token string, id domain.ID) ([]domain.Review, error) {
	return getList[domain.Review](ctx, c.WithToken(token), ApplicationReviewsPath(id), nil)
}

func (c *Client) GetCandidate(ctx context.Context, token string, id domain.ID) (domain.Candidate, error) {
	var out domain.Candidate
	err := c.WithToken(token).getJSON(ctx, CandidatePath(id), nil, &out)
	return out, err
}

func (c *Client) ListCandidateReviews(ctx context.Context, token string, id domain.ID) ([]domain.Review, error) {
	return getList[domain.Review](ctx, c.WithToken(token), CandidateReviewsPath(id), nil)
}

func (c *Client) GetCompany(ctx context.Context, token string, id domain.ID) (domain.Company, error) {
	var out domain.Company
	err := c.WithToken(token).getJSON(ctx, CompanyPath(id), nil, &out)
	return out, err
}

func (c *Client) ListCompanyReviews(ctx context.Context, token string, id domain.ID) ([]domain.Review, error) {
	return getList[domain.Review](ctx, c.WithToken(token), CompanyReviewsPath(id), nil)
}

func (c *Client) ListCompanyImages(ctx context.Context, token string, q domain.ListQuery) ([]domain.CompanyImage, error) {
	return getList[domain.CompanyImage](ctx, c.WithToken(token), PathCompanyImages, listValues(q))
}

func (c *Client) ListFollowing(ctx context.Context, token string) ([]domain.Follow, error) {
	return getList[domain.Follow](ctx, c.WithToken(token), PathFollowing, nil)
}

func (c *Client) Follow(ctx context.Context, token string, company domain.ID) (domain.Follow, error) {
	var out domain.Follow
	err := c.WithToken(token).post(ctx, PathFollowing, domain.Follow{Company: company}, &out)
	return out, err
}

func (c *Client) Unfollow(ctx context.Context, token string, follow domain.ID) error {
	return c.WithToken(token).delete(ctx, FollowingPath(follow))
}

func (c *Client) ListResumes(ctx context.Context, token string) ([]domain.Resume, error) {
	return getList[domain.Resume](ctx, c.WithToken(token), PathResumes, nil)
}

func (c *Client) GetReview(ctx context.Context, token string, id domain.ID) (domain.Review, error) {
	var out domain.Review
	err := c.WithToken(token).getJSON(ctx, ReviewPath(id), nil, &out)
	return out, err
}

// Compile-time assertion that Client implements domain.MarketplaceClient.
var _ domain.MarketplaceClient = (*Client)(nil)

// GetResume fetches one resume record.
func (c *Client) GetResume(ctx context.Context, token string, id domain.ID) (domain.Resume, error) {
	var out domain.Resume
	err := c.WithToken(token).getJSON(ctx, ResumePath(id), nil, &out)
	return out, err
}

// GetCompanyImage fetches one gallery image record.
func (c *Client) GetCompanyImage(ctx context.Context, token string, id domain.ID) (domain.CompanyImage, error) {
	var out domain.CompanyImage
	err := c.WithToken(token).getJSON(ctx, CompanyImagePath(id), nil, &out)
	return out, err
}
