package api

import (
	"fmt"

	"ptjobs/internal/domain"
)

// Fixed paths of the backend surface.
const (
	PathUsers         = "/users/"
	PathCurrentUser   = "/users/current-user/"
	PathToken         = "/o/token/"
	PathJobCategories = "/job-categories/"
	PathJobPosts      = "/jobposts/"
	PathApplications  = "/applications/"
	PathCompanyImages = "/company-images/"
	PathFollowing     = "/following/"
	PathResumes       = "/resumes/"
)

func JobPostPath(id domain.ID) string { return fmt.Sprintf("/jobposts/%d/", id) }
func ApplicationPath(id domain.ID) string { return fmt.Sprintf("/applications/%d/", id) }
func ApplicationReviewsPath(id domain.ID) string { return fmt.Sprintf("/applications/%d/reviews/", id) }
func CandidatePath(id domain.ID) string { return fmt.Sprintf("/candidates/%d/", id) }
func CandidateReviewsPath(id domain.ID) string { return fmt.Sprintf("/candidates/%d/reviews/", id) }
func CompanyPath(id domain.ID) string { return fmt.Sprintf("/companies/%d/", id) }
func CompanyReviewsPath(id domain.ID) string { return fmt.Sprintf("/companies/%d/reviews/", id) }
func CompanyImagePath(id domain.ID) string { return fmt.Sprintf("/company-images/%d/", id) }
func FollowingPath(id domain.ID) string { return fmt.Sprintf("/following/%d/", id) }
func ResumePath(id domain.ID) string { return fmt.Sprintf("/resumes/%d/", id) }
func ReviewPath(id domain.ID) string { return fmt.Sprintf("/reviews/%d/", id) }

// endpointLabel collapses numeric ids so metric cardinality stays bounded.
func endpointLabel(path string) string {
	out := make([]byte, 0, len(path))
	inDigits := false
	for i := 0; i < len(path); i++ {
		c := path[i]
		if c >= '0' && c <= '9' {
			if !inDigits {
				out = append(out, "{id}"...)
				inDigits = true
			}
			continue
		}
		inDigits = false
		if c == '?' {
			break
		}
		out = append(out, c)
	}
	return string(out)
}
