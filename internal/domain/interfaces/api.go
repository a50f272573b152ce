package interfaces

import (
	"context"

	domaintypes "ptjobs/internal/domain/types"
)

// AuthClient covers the unauthenticated and freshly-authenticated calls the
// session store makes.
type AuthClient interface {
	Token(ctx context.Context, grant domaintypes.PasswordGrant) (domaintypes.TokenResponse, error)
	CurrentUser(ctx context.Context, token string) (domaintypes.Profile, error)
	CreateUser(ctx context.Context, reg domaintypes.Registration) (domaintypes.RegisterResponse, error)
}

// MarketplaceClient is the read/write surface behind the screens. Every call
// carries the bearer token of the current session.
type MarketplaceClient interface {
	ListJobCategories(ctx context.Context, token string) ([]domaintypes.JobCategory, error)
	ListJobPosts(ctx context.Context, token string, q domaintypes.ListQuery) ([]domaintypes.JobPost, error)
	GetJobPost(ctx context.Context, token string, id domaintypes.ID) (domaintypes.JobPost, error)
	CreateJobPost(ctx context.Context, token string, post domaintypes.JobPost) (domaintypes.JobPost, error)

	ListApplications(ctx context.Context, token string, q domaintypes.ListQuery) ([]domaintypes.Application, error)
	GetApplication(ctx context.Context, token string, id domaintypes.ID) (domaintypes.Application, error)
	CreateApplication(ctx context.Context, token string, app domaintypes.Application) (domaintypes.Application, error)
	ListApplicationReviews(ctx context.Context, token string, id domaintypes.ID) ([]domaintypes.Review, error)

	GetCandidate(ctx context.Context, token string, id domaintypes.ID) (domaintypes.Candidate, error)
	ListCandidateReviews(ctx context.Context, token string, id domaintypes.ID) ([]domaintypes.Review, error)
	GetCompany(ctx context.Context, token string, id domaintypes.ID) (domaintypes.Company, error)
	ListCompanyReviews(ctx context.Context, token string, id domaintypes.ID) ([]domaintypes.Review, error)
	ListCompanyImages(ctx context.Context, token string, q domaintypes.ListQuery) ([]domaintypes.CompanyImage, error)

	ListFollowing(ctx context.Context, token string) ([]domaintypes.Follow, error)
	Follow(ctx context.Context, token string, company domaintypes.ID) (domaintypes.Follow, error)
	Unfollow(ctx context.Context, token string, follow domaintypes.ID) error

	ListResumes(ctx context.Context, token string) ([]domaintypes.Resume, error)
	GetReview(ctx context.Context, token string, id domaintypes.ID) (domaintypes.Review, error)
}
