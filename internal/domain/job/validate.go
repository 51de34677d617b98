package job

import "strings"

// Validate reports every problem with p as a field -> message map. It returns
// nil when p is valid.
func (p Posting) Validate() map[string]string {
	errs := map[string]string{}
	required := func(field, v string) {
		if strings.TrimSpace(v) == "" {
			errs[field] = "is required"
		}
	}

	required("title", p.Title)
	required("description", p.Description)
	required("location", p.Location)
	required("company", p.Company)

	if !p.Type.Valid() {
		errs["type"] = "must be one of: full-time, part-time, freelance, remote, hybrid"
	}
	if !p.Status.Valid() {
		errs["status"] = "must be one of: active, inactive, draft"
	}

	required("education.name", p.Education.Name)
	if p.Education.StartDate.IsZero() {
		errs["education.start_date"] = "is required"
	}
	if p.Education.EndDate != nil && p.Education.EndDate.Before(p.Education.StartDate) {
		errs["education.end_date"] = "must not be before start_date"
	}

	for _, s := range p.Skills {
		if strings.TrimSpace(s) == "" {
			errs["skills"] = "must not contain empty values"
			break
		}
	}

	for k, v := range p.Experience.validate() {
		errs["experience"+k] = v
	}
	for k, v := range p.Salary.validate() {
		errs["salary"+k] = v
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validate keys are suffixes of "experience".
func (e Experience) validate() map[string]string {
	errs := map[string]string{}
	switch {
	case e.Type == ExperienceNone:
		if e.Detail != nil {
			errs[".type"] = "no-experience must not carry details"
		}
	case e.Type.Valid():
		d := e.Detail
		if d == nil {
			errs[""] = "details are required for " + string(e.Type)
			break
		}
		if strings.TrimSpace(d.Company) == "" {
			errs[".company"] = "is required"
		}
		if strings.TrimSpace(d.Location) == "" {
			errs[".location"] = "is required"
		}
		if strings.TrimSpace(d.Role) == "" {
			errs[".role"] = "is required"
		}
		if d.StartDate.IsZero() {
			errs[".start_date"] = "is required"
		}
		if d.EndDate != nil && d.EndDate.Before(d.StartDate) {
			errs[".end_date"] = "must not be before start_date"
		}
		if d.NoticePeriod < 0 {
			errs[".notice_period"] = "must be at least 0"
		}
	default:
		errs[".type"] = "must be one of: no-experience, 1-3 years, 3-5 years, 5-10 years, 10+ years"
	}
	return errs
}

func (s Salary) validate() map[string]string {
	errs := map[string]string{}
	switch s.Type {
	case SalaryFixed:
		if s.Fixed == nil || s.Negotiable != nil {
			errs[""] = "fixed salary requires amount and currency only"
			break
		}
		if s.Fixed.Amount < 0 {
			errs[".amount"] = "must be at least 0"
		}
		if strings.TrimSpace(s.Fixed.Currency) == "" {
			errs[".currency"] = "is required"
		}
	case SalaryNegotiable:
		if s.Negotiable == nil || s.Fixed != nil {
			errs[""] = "negotiable salary requires min, max and currency only"
			break
		}
		n := s.Negotiable
		if n.Min < 0 {
			errs[".min"] = "must be at least 0"
		}
		if n.Max < 0 {
			errs[".max"] = "must be at least 0"
		} else if n.Max < n.Min {
			errs[".max"] = "must be greater than or equal to min"
		}
		if strings.TrimSpace(n.Currency) == "" {
			errs[".currency"] = "is required"
		}
	default:
		errs[".type"] = "must be one of: fixed, negotiable"
	}
	return errs
}
