package job

import (
	"time"

	"github.com/google/uuid"
)

type EmploymentType string

const (
	TypeFullTime  EmploymentType = "full-time"
	TypePartTime  EmploymentType = "part-time"
	TypeFreelance EmploymentType = "freelance"
	TypeRemote    EmploymentType = "remote"
	TypeHybrid    EmploymentType = "hybrid"
)

func (t EmploymentType) Valid() bool {
	switch t {
	case TypeFullTime, TypePartTime, TypeFreelance, TypeRemote, TypeHybrid:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusDraft    Status = "draft"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusDraft:
		return true
	default:
		return false
	}
}

type Education struct {
	Name      string     `json:"name"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	IsCurrent bool       `json:"is_current"`
}

// Owner is the public profile of the account that posted a job. FullName and
// Email are only set when the listing populates them.
type Owner struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name,omitempty"`
	Email    string    `json:"email,omitempty"`
}

type Posting struct {
	ID                  uuid.UUID      `json:"id"`
	Title               string         `json:"title"`
	Description         string         `json:"description"`
	Type                EmploymentType `json:"type"`
	Education           Education      `json:"education"`
	Experience          Experience     `json:"experience"`
	Skills              []string       `json:"skills"`
	Salary              Salary         `json:"salary"`
	Location            string         `json:"location"`
	Company             string         `json:"company"`
	Status              Status         `json:"status"`
	ApplicationDeadline *time.Time     `json:"application_deadline,omitempty"`
	PostedBy            Owner          `json:"posted_by"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}
