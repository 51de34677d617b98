package job

import (
	"html"
	"strings"

	"next-hire/internal/domain/job"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips markup from plain-text fields and unsafe markup from the
// rich-text description.
type Sanitizer struct {
	plain *bluemonday.Policy
	rich  *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{plain: bluemonday.StrictPolicy(), rich: bluemonday.UGCPolicy()}
}

func (s *Sanitizer) Text(v string) string {
	return strings.TrimSpace(html.UnescapeString(s.plain.Sanitize(v)))
}

func (s *Sanitizer) RichText(v string) string {
	return strings.TrimSpace(s.rich.Sanitize(v))
}

func (s *Sanitizer) Posting(p job.Posting) job.Posting {
	p.Title = s.Text(p.Title)
	p.Description = s.RichText(p.Description)
	p.Location = s.Text(p.Location)
	p.Company = s.Text(p.Company)
	p.Education.Name = s.Text(p.Education.Name)

	if p.Skills != nil {
		skills := make([]string, len(p.Skills))
		for i, sk := range p.Skills {
			skills[i] = s.Text(sk)
		}
		p.Skills = skills
	}

	if d := p.Experience.Detail; d != nil {
		cp := *d
		cp.Company = s.Text(cp.Company)
		cp.Location = s.Text(cp.Location)
		cp.Role = s.Text(cp.Role)
		cp.Description = s.Text(cp.Description)
		p.Experience.Detail = &cp
	}

	switch {
	case p.Salary.Fixed != nil:
		f := *p.Salary.Fixed
		f.Currency = strings.ToUpper(s.Text(f.Currency))
		p.Salary.Fixed = &f
	case p.Salary.Negotiable != nil:
		n := *p.Salary.Negotiable
		n.Currency = strings.ToUpper(s.Text(n.Currency))
		p.Salary.Negotiable = &n
	}
	return p
}
