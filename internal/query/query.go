// Package query turns loosely-typed listing parameters into a safe, paginated
// lookup against any Collection.
package query

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultPage      = 1
	DefaultLimit     = 10
	MaxLimit         = 100
	MaxSearchLength  = 100
	DefaultSortField = "createdAt"
)

// MaxPage keeps (page-1)*limit within int for every allowed limit.
const MaxPage = math.MaxInt / MaxLimit

const (
	ParamSearch    = "search"
	ParamPage      = "page"
	ParamLimit     = "limit"
	ParamSortBy    = "sortBy"
	ParamSortOrder = "sortOrder"
)

var ErrQueryFailed = errors.New("query failed")

// Request is the raw query string, one value per key.
type Request map[string]string

type Populate struct {
	Path   string
	Select []string
}

type Config struct {
	SearchFields      []string
	FilterFields      []string
	AllowedSortFields []string
	BaseFilter        map[string]any
	Populate          []Populate
}

type Search struct {
	// Pattern is already escaped; it matches literally and case-insensitively.
	Pattern string
	Fields  []string
}

type Filter struct {
	Equals map[string]any
	Search *Search
}

type Sort struct {
	Field string
	Desc  bool
}

type FindOptions struct {
	Filter   Filter
	Sort     Sort
	Skip     int
	Limit    int
	Populate []Populate
}

type Collection[T any] interface {
	Find(ctx context.Context, opts FindOptions) ([]T, error)
	Count(ctx context.Context, filter Filter) (int64, error)
}

type PageInfo struct {
	CurrentPage    int   `json:"current_page"`
	TotalPages     int   `json:"total_pages"`
	TotalDocuments int64 `json:"total_documents"`
	HasNextPage    bool  `json:"has_next_page"`
	HasPrevPage    bool  `json:"has_prev_page"`
	Limit          int   `json:"limit"`
}

type Result[T any] struct {
	Data       []T      `json:"data"`
	Pagination PageInfo `json:"pagination"`
}

// Run counts and fetches concurrently. Either failure fails the whole call.
func Run[T any](ctx context.Context, coll Collection[T], req Request, cfg Config) (Result[T], error) {
	page, limit := Pagination(req)
	opts := FindOptions{
		Filter:   BuildFilter(req, cfg),
		Sort:     BuildSort(req, cfg),
		Skip:     (page - 1) * limit,
		Limit:    limit,
		Populate: cfg.Populate,
	}

	var (
		items []T
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = coll.Find(gctx, opts)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = coll.Count(gctx, opts.Filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return Result[T]{}, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}

	if items == nil {
		items = []T{}
	}
	return Result[T]{Data: items, Pagination: NewPageInfo(page, limit, total)}, nil
}

func NewPageInfo(page, limit int, total int64) PageInfo {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return PageInfo{
		CurrentPage:    page,
		TotalPages:     totalPages,
		TotalDocuments: total,
		HasNextPage:    page < totalPages,
		HasPrevPage:    page > 1,
		Limit:          limit,
	}
}

// Pagination parses page and limit. Missing, zero or non-numeric values fall
// back to the defaults; page is clamped to [1, MaxPage] and limit to [1, MaxLimit].
func Pagination(req Request) (page, limit int) {
	page = parseInt(req[ParamPage], DefaultPage)
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	limit = parseInt(req[ParamLimit], DefaultLimit)
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

func BuildFilter(req Request, cfg Config) Filter {
	eq := make(map[string]any, len(cfg.BaseFilter)+len(cfg.FilterFields))
	for k, v := range cfg.BaseFilter {
		eq[k] = v
	}
	for _, f := range cfg.FilterFields {
		if v := strings.TrimSpace(req[f]); v != "" {
			eq[f] = v
		}
	}

	out := Filter{Equals: eq}
	if s := CleanSearch(req[ParamSearch]); s != "" && len(cfg.SearchFields) > 0 {
		out.Search = &Search{Pattern: s, Fields: cfg.SearchFields}
	}
	return out
}

func BuildSort(req Request, cfg Config) Sort {
	field := strings.TrimSpace(req[ParamSortBy])
	if field == "" || !sortAllowed(field, cfg.AllowedSortFields) {
		return Sort{Field: DefaultSortField, Desc: true}
	}
	return Sort{Field: field, Desc: req[ParamSortOrder] == "desc"}
}

// CleanSearch trims, cuts to MaxSearchLength runes, then escapes regex
// metacharacters so the term matches literally.
func CleanSearch(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if utf8.RuneCountInString(s) > MaxSearchLength {
		s = string([]rune(s)[:MaxSearchLength])
	}
	return regexp.QuoteMeta(s)
}

func sortAllowed(field string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == field {
			return true
		}
	}
	return false
}

func parseInt(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v == 0 {
		return def
	}
	return v
}
