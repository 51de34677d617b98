package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"next-hire/internal/database"
	"next-hire/internal/domain/job"
	"next-hire/internal/query"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// jobColumns maps logical field names to SQL expressions. Fields missing
// here never reach a query.
var jobColumns = map[string]string{
	"title":       "j.title",
	"description": "j.description",
	"company":     "j.company",
	"location":    "j.location",
	"status":      "j.status",
	"type":        "j.employment_type",
	"postedBy":    "j.posted_by",
	"createdAt":   "j.created_at",
	"updatedAt":   "j.updated_at",
	"salary":      "COALESCE((j.salary->>'amount')::numeric, (j.salary->>'min')::numeric)",
}

const jobSelect = `j.id, j.title, j.description, j.employment_type, j.education, j.experience,
	j.skills, j.salary, j.location, j.company, j.status, j.application_deadline,
	j.posted_by, j.created_at, j.updated_at`

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) Create(ctx context.Context, p job.Posting) (job.Posting, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	edu, exp, sal, err := marshalUnions(p)
	if err != nil {
		return job.Posting{}, err
	}
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO jobs AS j (id, title, description, employment_type, education, experience,
			skills, salary, location, company, status, application_deadline, posted_by)
		 VALUES ($1, $2, $3, $4, $5::jsonb, $6::jsonb, $7, $8::jsonb, $9, $10, $11, $12, $13)
		 RETURNING `+jobSelect,
		p.ID, p.Title, p.Description, string(p.Type), edu, exp,
		skills, sal, p.Location, p.Company, string(p.Status), p.ApplicationDeadline, p.PostedBy.ID,
	)
	out, err := scanPosting(row, false)
	if err != nil {
		return job.Posting{}, fmt.Errorf("insert job: %w", err)
	}
	return out, nil
}

func (r *PostgresJobRepository) DeleteByID(ctx context.Context, id uuid.UUID) (job.Posting, error) {
	row := r.db.QueryRow(ctx, `DELETE FROM jobs AS j WHERE j.id = $1 RETURNING `+jobSelect, id)
	out, err := scanPosting(row, false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Posting{}, job.ErrNotFound
		}
		return job.Posting{}, fmt.Errorf("delete job: %w", err)
	}
	return out, nil
}

func (r *PostgresJobRepository) Find(ctx context.Context, opts query.FindOptions) ([]job.Posting, error) {
	sqlText, args := buildFindSQL(opts)
	rows, err := r.db.Query(ctx, sqlText, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Posting, 0)
	for rows.Next() {
		p, err := scanPosting(rows, true)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) Count(ctx context.Context, f query.Filter) (int64, error) {
	where, args := buildWhere(f)
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM jobs j`+where, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func buildFindSQL(opts query.FindOptions) (string, []any) {
	where, args := buildWhere(opts.Filter)

	ownerName, ownerEmail := "''", "''"
	for _, p := range opts.Populate {
		if p.Path != "postedBy" {
			continue
		}
		for _, s := range p.Select {
			switch s {
			case "fullName":
				ownerName = "COALESCE(u.full_name, '')"
			case "email":
				ownerEmail = "COALESCE(u.email, '')"
			}
		}
	}

	var b strings.Builder
	b.WriteString(`SELECT `)
	b.WriteString(jobSelect)
	b.WriteString(`, ` + ownerName + `, ` + ownerEmail)
	b.WriteString(` FROM jobs j LEFT JOIN users u ON u.id = j.posted_by`)
	b.WriteString(where)
	b.WriteString(orderBy(opts.Sort))

	args = append(args, opts.Limit, opts.Skip)
	b.WriteString(` LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args)))
	return b.String(), args
}

// buildWhere renders equality filters in key order, then the OR-ed search.
func buildWhere(f query.Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	keys := make([]string, 0, len(f.Equals))
	for k := range f.Equals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		col, ok := jobColumns[k]
		if !ok {
			continue
		}
		args = append(args, f.Equals[k])
		conds = append(conds, col+" = $"+strconv.Itoa(len(args)))
	}

	if f.Search != nil && f.Search.Pattern != "" {
		var ors []string
		for _, field := range f.Search.Fields {
			col, ok := jobColumns[field]
			if !ok {
				continue
			}
			if len(ors) == 0 {
				args = append(args, f.Search.Pattern)
			}
			ors = append(ors, col+" ~* $"+strconv.Itoa(len(args)))
		}
		if len(ors) > 0 {
			conds = append(conds, "("+strings.Join(ors, " OR ")+")")
		}
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func orderBy(s query.Sort) string {
	col, ok := jobColumns[s.Field]
	desc := s.Desc
	if !ok {
		col, desc = jobColumns[query.DefaultSortField], true
	}
	dir := " ASC"
	if desc {
		dir = " DESC"
	}
	return " ORDER BY " + col + dir + ", j.id" + dir
}

func marshalUnions(p job.Posting) (edu, exp, sal []byte, err error) {
	if edu, err = json.Marshal(p.Education); err != nil {
		return nil, nil, nil, fmt.Errorf("encode education: %w", err)
	}
	if exp, err = json.Marshal(p.Experience); err != nil {
		return nil, nil, nil, fmt.Errorf("encode experience: %w", err)
	}
	if sal, err = json.Marshal(p.Salary); err != nil {
		return nil, nil, nil, fmt.Errorf("encode salary: %w", err)
	}
	return edu, exp, sal, nil
}

func scanPosting(row database.Row, withOwner bool) (job.Posting, error) {
	var (
		p                  job.Posting
		typ, status        string
		edu, exp, sal      []byte
		ownerName, ownerEm string
	)
	dest := []any{
		&p.ID, &p.Title, &p.Description, &typ, &edu, &exp,
		&p.Skills, &sal, &p.Location, &p.Company, &status, &p.ApplicationDeadline,
		&p.PostedBy.ID, &p.CreatedAt, &p.UpdatedAt,
	}
	if withOwner {
		dest = append(dest, &ownerName, &ownerEm)
	}
	if err := row.Scan(dest...); err != nil {
		return job.Posting{}, err
	}

	p.Type = job.EmploymentType(typ)
	p.Status = job.Status(status)
	p.PostedBy.FullName = ownerName
	p.PostedBy.Email = ownerEm
	if p.Skills == nil {
		p.Skills = []string{}
	}

	if err := json.Unmarshal(edu, &p.Education); err != nil {
		return job.Posting{}, fmt.Errorf("decode education: %w", err)
	}
	if err := json.Unmarshal(exp, &p.Experience); err != nil {
		return job.Posting{}, fmt.Errorf("decode experience: %w", err)
	}
	if err := json.Unmarshal(sal, &p.Salary); err != nil {
		return job.Posting{}, fmt.Errorf("decode salary: %w", err)
	}
	return p, nil
}
