package job

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type ExperienceLevel string

const (
	ExperienceNone       ExperienceLevel = "no-experience"
	Experience1To3Years  ExperienceLevel = "1-3 years"
	Experience3To5Years  ExperienceLevel = "3-5 years"
	Experience5To10Years ExperienceLevel = "5-10 years"
	Experience10Plus     ExperienceLevel = "10+ years"
)

func (l ExperienceLevel) Valid() bool {
	switch l {
	case ExperienceNone, Experience1To3Years, Experience3To5Years, Experience5To10Years, Experience10Plus:
		return true
	default:
		return false
	}
}

type ExperienceDetail struct {
	Company      string     `json:"company"`
	Location     string     `json:"location"`
	Role         string     `json:"role"`
	Description  string     `json:"description,omitempty"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	IsCurrent    bool       `json:"is_current"`
	NoticePeriod int        `json:"notice_period"`
}

// Experience is either "no-experience" (Detail nil) or one of the year
// ranges with Detail set. On the wire the detail fields sit next to "type".
type Experience struct {
	Type   ExperienceLevel
	Detail *ExperienceDetail
}

var ErrUnknownVariant = errors.New("unknown variant")

func (e Experience) MarshalJSON() ([]byte, error) {
	if e.Detail == nil {
		return json.Marshal(struct {
			Type ExperienceLevel `json:"type"`
		}{e.Type})
	}
	return json.Marshal(struct {
		Type ExperienceLevel `json:"type"`
		ExperienceDetail
	}{e.Type, *e.Detail})
}

func (e *Experience) UnmarshalJSON(b []byte) error {
	var head struct {
		Type ExperienceLevel `json:"type"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return err
	}

	switch {
	case head.Type == ExperienceNone:
		*e = Experience{Type: ExperienceNone}
	case head.Type.Valid():
		var d ExperienceDetail
		if err := json.Unmarshal(b, &d); err != nil {
			return err
		}
		*e = Experience{Type: head.Type, Detail: &d}
	default:
		return fmt.Errorf("experience type %q: %w", head.Type, ErrUnknownVariant)
	}
	return nil
}

type SalaryType string

const (
	SalaryFixed      SalaryType = "fixed"
	SalaryNegotiable SalaryType = "negotiable"
)

type FixedSalary struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type NegotiableSalary struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

// Salary carries exactly one of Fixed or Negotiable, selected by Type.
type Salary struct {
	Type       SalaryType
	Fixed      *FixedSalary
	Negotiable *NegotiableSalary
}

func NewFixedSalary(amount float64, currency string) Salary {
	return Salary{Type: SalaryFixed, Fixed: &FixedSalary{Amount: amount, Currency: currency}}
}

func NewNegotiableSalary(lo, hi float64, currency string) Salary {
	return Salary{Type: SalaryNegotiable, Negotiable: &NegotiableSalary{Min: lo, Max: hi, Currency: currency}}
}

// SortKey is the amount used when ordering by salary: the fixed amount or
// the lower bound of a negotiable range.
func (s Salary) SortKey() float64 {
	switch {
	case s.Fixed != nil:
		return s.Fixed.Amount
	case s.Negotiable != nil:
		return s.Negotiable.Min
	default:
		return 0
	}
}

func (s Salary) MarshalJSON() ([]byte, error) {
	switch s.Type {
	case SalaryFixed:
		if s.Fixed == nil {
			return nil, fmt.Errorf("salary %q without amount: %w", s.Type, ErrUnknownVariant)
		}
		return json.Marshal(struct {
			Type SalaryType `json:"type"`
			FixedSalary
		}{s.Type, *s.Fixed})
	case SalaryNegotiable:
		if s.Negotiable == nil {
			return nil, fmt.Errorf("salary %q without range: %w", s.Type, ErrUnknownVariant)
		}
		return json.Marshal(struct {
			Type SalaryType `json:"type"`
			NegotiableSalary
		}{s.Type, *s.Negotiable})
	default:
		return nil, fmt.Errorf("salary type %q: %w", s.Type, ErrUnknownVariant)
	}
}

func (s *Salary) UnmarshalJSON(b []byte) error {
	var head struct {
		Type SalaryType `json:"type"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return err
	}

	switch head.Type {
	case SalaryFixed:
		var f FixedSalary
		if err := json.Unmarshal(b, &f); err != nil {
			return err
		}
		*s = Salary{Type: SalaryFixed, Fixed: &f}
	case SalaryNegotiable:
		var n NegotiableSalary
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*s = Salary{Type: SalaryNegotiable, Negotiable: &n}
	default:
		return fmt.Errorf("salary type %q: %w", head.Type, ErrUnknownVariant)
	}
	return nil
}
