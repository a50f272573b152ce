package catalog

import "ptjobs/internal/domain"

// HomeFeed is the landing screen. Candidates see recent jobs and the
// category list; companies see incoming applications.
type HomeFeed struct {
	Role         domain.Role
	Jobs         []domain.JobPost
	Categories   []domain.JobCategory
	Applications []domain.Application
}

// FollowedCompany is one row of the candidate Companies tab.
type FollowedCompany struct {
	Follow  domain.Follow
	Company domain.Company
}

// JobView backs JobDetail.
type JobView struct {
	Post        domain.JobPost
	Company     domain.Company
	Placeholder bool
}

// CompanyView backs CompanyDetail.
type CompanyView struct {
	Company     domain.Company
	Jobs        []domain.JobPost
	Images      []domain.CompanyImage
	Reviews     []domain.Review
	Placeholder bool
}

// CandidateView backs CandidateDetail.
type CandidateView struct {
	Candidate   domain.Candidate
	Reviews     []domain.Review
	Placeholder bool
}

// PostView backs PostDetail: a job post with the applications it received.
type PostView struct {
	Post         domain.JobPost
	Applications []domain.Application
	Placeholder  bool
}

const placeholderName = "Not available"

func placeholderJob() JobView {
	return JobView{
		Post:        domain.JobPost{Name: placeholderName},
		Company:     domain.Company{Name: placeholderName},
		Placeholder: true,
	}
}

func placeholderCompany() CompanyView {
	return CompanyView{Company: domain.Company{Name: placeholderName}, Placeholder: true}
}

func placeholderCandidate() CandidateView {
	return CandidateView{Candidate: domain.Candidate{Name: placeholderName}, Placeholder: true}
}

func placeholderPost() PostView {
	return PostView{Post: domain.JobPost{Name: placeholderName}, Placeholder: true}
}
