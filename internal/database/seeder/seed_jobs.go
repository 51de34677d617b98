package seeder

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"next-hire/internal/database"
	"next-hire/internal/domain/job"

	"github.com/google/uuid"
)

var jobNamespace = uuid.MustParse("7b1f7f3e-52a4-4c61-9a0c-6f0d6d8f2a11")

type JobsSeeder struct{}

func (JobsSeeder) Name() string { return "jobs" }

func (JobsSeeder) Requires() []Table {
	return []Table{{Name: "jobs", Columns: []string{
		"id", "title", "description", "employment_type", "education", "experience",
		"skills", "salary", "location", "company", "status", "posted_by", "created_at",
	}}}
}

func (JobsSeeder) Run(ctx context.Context, tx database.Tx) error {
	var recruiterID uuid.UUID
	if err := tx.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, DemoRecruiterEmail).Scan(&recruiterID); err != nil {
		return fmt.Errorf("find demo recruiter: %w", err)
	}

	for _, p := range demoPostings(time.Now().UTC()) {
		edu, err := json.Marshal(p.Education)
		if err != nil {
			return err
		}
		exp, err := json.Marshal(p.Experience)
		if err != nil {
			return err
		}
		sal, err := json.Marshal(p.Salary)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(
			ctx,
			`INSERT INTO jobs (id, title, description, employment_type, education, experience, skills, salary, location, company, status, posted_by)
			 VALUES ($1, $2, $3, $4, $5::jsonb, $6::jsonb, $7, $8::jsonb, $9, $10, $11, $12)
			 ON CONFLICT (id) DO NOTHING`,
			demoJobID(p),
			p.Title,
			p.Description,
			string(p.Type),
			edu,
			exp,
			p.Skills,
			sal,
			p.Location,
			p.Company,
			string(p.Status),
			recruiterID,
		); err != nil {
			return fmt.Errorf("insert %q: %w", p.Title, err)
		}
	}
	return nil
}

// demoJobID is stable across runs so reseeding never duplicates postings.
func demoJobID(p job.Posting) uuid.UUID {
	return uuid.NewSHA1(jobNamespace, []byte(p.Company+"/"+p.Title))
}

func demoPostings(now time.Time) []job.Posting {
	start := now.AddDate(-3, 0, 0)
	return []job.Posting{
		{
			Title:       "Backend Engineer (Go)",
			Description: "Build and maintain Go services, REST APIs and PostgreSQL-backed systems.",
			Type:        job.TypeFullTime,
			Education:   job.Education{Name: "Bachelor of Computer Science", StartDate: start.AddDate(-4, 0, 0), EndDate: &start},
			Experience: job.Experience{Type: job.Experience3To5Years, Detail: &job.ExperienceDetail{
				Company: "Any product company", Location: "Jakarta, ID", Role: "Backend Engineer", StartDate: start, IsCurrent: true, NoticePeriod: 30,
			}},
			Skills:   []string{"Go", "PostgreSQL", "Redis"},
			Salary:   job.NewNegotiableSalary(15000000, 25000000, "IDR"),
			Location: "Jakarta, ID",
			Company:  "Next Hire Labs",
			Status:   job.StatusActive,
		},
		{
			Title:       "Frontend Developer",
			Description: "Develop web apps with React and TypeScript.",
			Type:        job.TypeHybrid,
			Education:   job.Education{Name: "Any degree", StartDate: start},
			Experience:  job.Experience{Type: job.ExperienceNone},
			Skills:      []string{"React", "TypeScript"},
			Salary:      job.NewFixedSalary(9000000, "IDR"),
			Location:    "Bandung, ID",
			Company:     "Next Hire Labs",
			Status:      job.StatusActive,
		},
		{
			Title:       "DevOps Engineer",
			Description: "Operate CI/CD, Docker and Kubernetes for production workloads.",
			Type:        job.TypeRemote,
			Education:   job.Education{Name: "Any degree", StartDate: start},
			Experience:  job.Experience{Type: job.ExperienceNone},
			Skills:      []string{"Docker", "Kubernetes", "AWS"},
			Salary:      job.NewNegotiableSalary(18000000, 30000000, "IDR"),
			Location:    "Remote",
			Company:     "CloudKita",
			Status:      job.StatusActive,
		},
		{
			Title:       "Data Analyst Intern",
			Description: "Support the analytics team with SQL reporting.",
			Type:        job.TypePartTime,
			Education:   job.Education{Name: "Any degree", StartDate: start},
			Experience:  job.Experience{Type: job.ExperienceNone},
			Skills:      []string{"SQL", "Excel"},
			Salary:      job.NewFixedSalary(3000000, "IDR"),
			Location:    "Surabaya, ID",
			Company:     "InsightWorks",
			Status:      job.StatusDraft,
		},
	}
}
