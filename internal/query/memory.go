package query

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"sync"
	"time"
)

// FieldFunc resolves a logical field of item. ok is false for unknown fields.
type FieldFunc[T any] func(item T, field string) (value any, ok bool)

// MemoryCollection is a Collection over a slice, mainly for tests and fixtures.
type MemoryCollection[T any] struct {
	mu    sync.RWMutex
	items []T
	field FieldFunc[T]
}

func NewMemoryCollection[T any](field FieldFunc[T], items ...T) *MemoryCollection[T] {
	return &MemoryCollection[T]{items: append([]T(nil), items...), field: field}
}

func (m *MemoryCollection[T]) Add(items ...T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, items...)
}

// Remove drops every item for which drop returns true and reports how many went.
func (m *MemoryCollection[T]) Remove(drop func(T) bool) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.items[:0]
	for _, it := range m.items {
		if !drop(it) {
			kept = append(kept, it)
		}
	}
	n := len(m.items) - len(kept)
	m.items = kept
	return n
}

func (m *MemoryCollection[T]) Find(ctx context.Context, opts FindOptions) ([]T, error) {
	matched, err := m.match(ctx, opts.Filter)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, _ := m.field(matched[i], opts.Sort.Field)
		b, _ := m.field(matched[j], opts.Sort.Field)
		if opts.Sort.Desc {
			return less(b, a)
		}
		return less(a, b)
	})

	if opts.Skip >= len(matched) {
		return []T{}, nil
	}
	end := len(matched)
	if opts.Limit > 0 && opts.Skip+opts.Limit < end {
		end = opts.Skip + opts.Limit
	}
	return matched[opts.Skip:end], nil
}

func (m *MemoryCollection[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	matched, err := m.match(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(matched)), nil
}

func (m *MemoryCollection[T]) match(ctx context.Context, f Filter) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var re *regexp.Regexp
	if f.Search != nil {
		var err error
		re, err = regexp.Compile("(?i)" + f.Search.Pattern)
		if err != nil {
			return nil, err
		}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]T, 0, len(m.items))
	for _, it := range m.items {
		if !m.equals(it, f.Equals) {
			continue
		}
		if re != nil && !m.searchHit(it, re, f.Search.Fields) {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (m *MemoryCollection[T]) equals(it T, eq map[string]any) bool {
	for k, want := range eq {
		got, ok := m.field(it, k)
		if !ok || fmt.Sprint(got) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}

func (m *MemoryCollection[T]) searchHit(it T, re *regexp.Regexp, fields []string) bool {
	for _, f := range fields {
		v, ok := m.field(it, f)
		if !ok {
			continue
		}
		if s, isStr := v.(string); isStr && re.MatchString(s) {
			return true
		}
	}
	return false
}

func less(a, b any) bool {
	switch x := a.(type) {
	case string:
		y, _ := b.(string)
		return x < y
	case int:
		y, _ := b.(int)
		return x < y
	case int64:
		y, _ := b.(int64)
		return x < y
	case float64:
		y, _ := b.(float64)
		return x < y
	case time.Time:
		y, _ := b.(time.Time)
		return x.Before(y)
	default:
		return false
	}
}
