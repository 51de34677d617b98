package job

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"

	"next-hire/internal/query"
)

const (
	listCachePrefix = "jobs:list:"
	listGenKey      = listCachePrefix + "gen"
)

// ListCacheKey hashes only the parameters that can change a listing, so
// unrelated query-string noise shares a cache entry. The search term is keyed
// exactly as the store receives it. gen is the listing generation; bumping it
// orphans every earlier entry.
func ListCacheKey(req query.Request, cfg query.Config, gen int64) string {
	page, limit := query.Pagination(req)
	s := query.BuildSort(req, cfg)

	in := struct {
		Search  string            `json:"search"`
		Filters map[string]string `json:"filters"`
		Page    int               `json:"page"`
		Limit   int               `json:"limit"`
		SortBy  string            `json:"sort_by"`
		Desc    bool              `json:"desc"`
	}{
		Search:  strings.ToLower(query.CleanSearch(req[query.ParamSearch])),
		Filters: map[string]string{},
		Page:    page,
		Limit:   limit,
		SortBy:  s.Field,
		Desc:    s.Desc,
	}
	for _, f := range cfg.FilterFields {
		if v := strings.TrimSpace(req[f]); v != "" {
			in.Filters[f] = v
		}
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return listCachePrefix + strconv.FormatInt(gen, 10) + ":" + hex.EncodeToString(sum[:])
}
