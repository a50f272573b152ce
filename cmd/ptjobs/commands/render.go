package commands

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"ptjobs/internal/domain"
	"ptjobs/internal/services/catalog"
)

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func printSession(w io.Writer, s domain.Session) {
	switch {
	case !s.Authenticated():
		fmt.Fprintln(w, "Not logged in")
	case s.Degraded():
		fmt.Fprintf(w, "Logged in as a %s (profile unavailable)\n", s.Role)
	default:
		fmt.Fprintf(w, "Logged in as %s (%s)\n", s.Profile.DisplayName(), s.Role)
	}
}

func printWhere(w io.Writer, n domain.Node) {
	fmt.Fprintf(w, "> %s", n.Destination)
	for _, k := range slices.Sorted(maps.Keys(n.Params)) {
		fmt.Fprintf(w, " %s=%s", k, n.Params[k])
	}
	fmt.Fprintln(w)
}

func printJobs(w io.Writer, jobs []domain.JobPost) {
	if len(jobs) == 0 {
		fmt.Fprintln(w, "No job posts")
		return
	}
	tw := table(w)
	fmt.Fprintln(tw, "ID\tNAME\tSALARY\tVACANCY\tDEADLINE\tADDRESS")
	for _, j := range jobs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n", j.ID, j.Name, j.Salary, j.Vacancy, j.Deadline, j.Address)
	}
	_ = tw.Flush()
}

func printApplications(w io.Writer, apps []domain.Application) {
	if len(apps) == 0 {
		fmt.Fprintln(w, "No applications")
		return
	}
	tw := table(w)
	fmt.Fprintln(tw, "ID\tJOB\tCANDIDATE\tRESUME\tSTATUS")
	for _, a := range apps {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%s\n", a.ID, a.JobPost, a.Candidate, a.Resume, a.Status)
	}
	_ = tw.Flush()
}

func printReviews(w io.Writer, reviews []domain.Review) {
	if len(reviews) == 0 {
		return
	}
	fmt.Fprintln(w, "Reviews:")
	for _, r := range reviews {
		fmt.Fprintf(w, "  - %s\n", r.Comment)
	}
}

func printJob(w io.Writer, v catalog.JobView) {
	p := v.Post
	fmt.Fprintf(w, "%s at %s\n", p.Name, v.Company.Name)
	if v.Placeholder {
		return
	}
	fmt.Fprintf(w, "Salary: %s  Vacancy: %d  Deadline: %s\n", p.Salary, p.Vacancy, p.Deadline)
	if p.Address != "" {
		fmt.Fprintf(w, "Address: %s\n", p.Address)
	}
	for _, wt := range p.WorkTimes {
		fmt.Fprintf(w, "  %s %s-%s\n", wt.Day, wt.StartTime, wt.EndTime)
	}
	if p.Description != "" {
		fmt.Fprintln(w, strings.TrimSpace(p.Description))
	}
}

func printCompany(w io.Writer, v catalog.CompanyView) {
	fmt.Fprintln(w, v.Company.Name)
	if v.Placeholder {
		return
	}
	if v.Company.Address != "" {
		fmt.Fprintf(w, "Address: %s\n", v.Company.Address)
	}
	if len(v.Images) > 0 {
		fmt.Fprintf(w, "Images: %d\n", len(v.Images))
	}
	printJobs(w, v.Jobs)
	printReviews(w, v.Reviews)
}

func printCandidate(w io.Writer, v catalog.CandidateView) {
	fmt.Fprintln(w, v.Candidate.Name)
	if v.Placeholder {
		return
	}
	if v.Candidate.Gender != "" || v.Candidate.DOB != "" {
		fmt.Fprintf(w, "Gender: %s  Born: %s\n", v.Candidate.Gender, v.Candidate.DOB)
	}
	printReviews(w, v.Reviews)
}

func printPost(w io.Writer, v catalog.PostView) {
	fmt.Fprintln(w, v.Post.Name)
	if v.Placeholder {
		return
	}
	fmt.Fprintf(w, "Vacancy: %d  Deadline: %s\n", v.Post.Vacancy, v.Post.Deadline)
	printApplications(w, v.Applications)
}

func printFollowing(w io.Writer, rows []catalog.FollowedCompany) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "Not following any companies")
		return
	}
	tw := table(w)
	fmt.Fprintln(tw, "FOLLOW\tCOMPANY\tNAME")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%d\t%s\n", r.Follow.ID, r.Company.ID, r.Company.Name)
	}
	_ = tw.Flush()
}

func printNotifications(w io.Writer, ns []domain.Notification) {
	if len(ns) == 0 {
		fmt.Fprintln(w, "No notifications")
		return
	}
	for _, n := range ns {
		fmt.Fprintf(w, "[%s] %s\n", n.Status, n.Text)
	}
}

func printHome(w io.Writer, h catalog.HomeFeed) {
	if h.Role == domain.RoleCompany {
		fmt.Fprintln(w, "Applications received:")
		printApplications(w, h.Applications)
		return
	}
	if len(h.Categories) > 0 {
		names := make([]string, 0, len(h.Categories))
		for _, c := range h.Categories {
			names = append(names, c.Name)
		}
		fmt.Fprintf(w, "Categories: %s\n", strings.Join(names, ", "))
	}
	printJobs(w, h.Jobs)
}

func printProfile(w io.Writer, s domain.Session) {
	printSession(w, s)
	if s.Profile == nil {
		return
	}
	p := s.Profile
	for _, row := range [][2]string{{"Username", p.Username}, {"Email", p.Email}, {"Phone", p.Phone}} {
		if row[1] != "" {
			fmt.Fprintf(w, "%s: %s\n", row[0], row[1])
		}
	}
}
