package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Amount is a decimal rendered either as a JSON string ("35000") or number.
type Amount string

// UnmarshalJSON accepts both encodings.
func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	*a = Amount(n.String())
	return nil
}

// JobCategory groups job posts.
type JobCategory struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// WorkTime is one weekly shift attached to a job post.
type WorkTime struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// JobPost is a vacancy published by a company.
type JobPost struct {
	ID          ID         `json:"id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Salary      Amount     `json:"salary"`
	Address     string     `json:"address"`
	Deadline    string     `json:"deadline"`
	Vacancy     int        `json:"vacancy"`
	Company     ID         `json:"company,omitempty"`
	Category    ID         `json:"category,omitempty"`
	WorkTimes   []WorkTime `json:"work_times,omitempty"`
	CreatedAt   string     `json:"created_at,omitempty"`
}

// Company is a hiring company's public profile.
type Company struct {
	ID        ID     `json:"id"`
	Name      string `json:"name"`
	TaxNumber string `json:"tax_number,omitempty"`
	Address   string `json:"address,omitempty"`
}

// Candidate is a job seeker's public profile.
type Candidate struct {
	ID     ID     `json:"id"`
	Name   string `json:"name,omitempty"`
	Gender string `json:"gender,omitempty"`
	DOB    string `json:"dob,omitempty"`
}

// ApplicationStatus is the hiring pipeline position of an application.
type ApplicationStatus string

const (
	StatusReviewing  ApplicationStatus = "REVIEWING"
	StatusEmployed   ApplicationStatus = "EMPLOYED"
	StatusRejected   ApplicationStatus = "REJECTED"
	StatusTerminated ApplicationStatus = "TERMINATED"
)

// Application links a candidate's resume to a job post.
type Application struct {
	ID        ID                `json:"id,omitempty"`
	StartDate string            `json:"start_date,omitempty"`
	EndDate   string            `json:"end_date,omitempty"`
	Status    ApplicationStatus `json:"status,omitempty"`
	Resume    ID                `json:"resume"`
	Candidate ID                `json:"candidate,omitempty"`
	JobPost   ID                `json:"job_post"`
}

// Review is a comment left on an application by either party.
type Review struct {
	ID          ID     `json:"id,omitempty"`
	Comment     string `json:"comment"`
	User        ID     `json:"user,omitempty"`
	Application ID     `json:"application"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// Follow records a candidate following a company.
type Follow struct {
	ID        ID     `json:"id,omitempty"`
	Candidate ID     `json:"candidate,omitempty"`
	Company   ID     `json:"company"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Resume is an uploaded CV reference.
type Resume struct {
	ID        ID     `json:"id"`
	File      string `json:"file"`
	Candidate ID     `json:"candidate,omitempty"`
}

// CompanyImage is a gallery image on a company profile.
type CompanyImage struct {
	ID        ID     `json:"id"`
	Image     string `json:"image"`
	Company   ID     `json:"company"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Notification is a derived, user-facing event shown on the Notifications screen.
type Notification struct {
	Application ID                `json:"application"`
	JobPost     ID                `json:"job_post"`
	Status      ApplicationStatus `json:"status"`
	Text        string            `json:"text"`
}

// ListQuery filters list endpoints.
type ListQuery struct {
	Search   string
	Category ID
	Company  ID
	JobPost  ID
	Page     int
}
