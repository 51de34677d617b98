package job

import (
	"context"
	"errors"
	"strings"
	"time"

	"next-hire/internal/domain/job"
	"next-hire/internal/pkg/apperror"
	"next-hire/internal/pkg/logger"
	"next-hire/internal/pkg/validator"
	"next-hire/internal/query"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ListConfig is the listing surface exposed to clients.
var ListConfig = query.Config{
	SearchFields:      []string{"title", "description", "company"},
	FilterFields:      []string{"status", "type", "location"},
	AllowedSortFields: []string{"title", "company", "createdAt", "salary"},
	Populate:          []query.Populate{{Path: "postedBy", Select: []string{"fullName", "email"}}},
}

// Store persists postings and serves listings.
type Store interface {
	job.Repository
	query.Collection[job.Posting]
}

type ListingCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Counter(ctx context.Context, key string) (int64, error)
	Incr(ctx context.Context, key string) (int64, error)
}

type EventPublisher interface {
	PublishJobEvent(eventType, jobID, title string)
}

const (
	EventCreated = "job_created"
	EventDeleted = "job_deleted"
)

type CreateInput struct {
	Title               string         `json:"title" validate:"required,max=200"`
	Description         string         `json:"description" validate:"required,max=10000"`
	Type                string         `json:"type" validate:"required"`
	Education           job.Education  `json:"education"`
	Experience          job.Experience `json:"experience"`
	Skills              []string       `json:"skills" validate:"max=50,dive,max=100"`
	Salary              job.Salary     `json:"salary"`
	Location            string         `json:"location" validate:"required,max=200"`
	Company             string         `json:"company" validate:"required,max=200"`
	Status              string         `json:"status"`
	ApplicationDeadline *time.Time     `json:"application_deadline"`
}

type Catalog struct {
	store     Store
	cache     ListingCache
	events    EventPublisher
	sanitizer *Sanitizer
	valid     *validator.Validator
	cacheTTL  time.Duration
	logger    *zap.Logger
}

func NewCatalog(store Store, cache ListingCache, events EventPublisher, cacheTTL time.Duration, l *zap.Logger) *Catalog {
	return &Catalog{
		store:     store,
		cache:     cache,
		events:    events,
		sanitizer: NewSanitizer(),
		valid:     validator.New(),
		cacheTTL:  cacheTTL,
		logger:    logger.OrNop(l),
	}
}

func (c *Catalog) List(ctx context.Context, req query.Request) (query.Result[job.Posting], error) {
	gen, cacheable := c.generation(ctx)
	key := ListCacheKey(req, ListConfig, gen)

	if cacheable {
		var cached query.Result[job.Posting]
		hit, err := c.cache.GetJSON(ctx, key, &cached)
		if err == nil && hit {
			c.logger.Debug("jobs cache hit", zap.String("key", key))
			return cached, nil
		}
	}

	res, err := query.Run[job.Posting](ctx, c.store, req, ListConfig)
	if err != nil {
		return query.Result[job.Posting]{}, apperror.Internalf(err, "list jobs")
	}

	// A write that landed during the query has moved the generation on.
	if cacheable {
		if now, ok := c.generation(ctx); ok && now == gen {
			if err := c.cache.SetJSON(ctx, key, res, c.cacheTTL); err != nil {
				c.logger.Warn("jobs cache set failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return res, nil
}

func (c *Catalog) generation(ctx context.Context) (int64, bool) {
	if c.cache == nil {
		return 0, false
	}
	gen, err := c.cache.Counter(ctx, listGenKey)
	if err != nil {
		c.logger.Warn("jobs cache generation read failed", zap.Error(err))
		return 0, false
	}
	return gen, true
}

func (c *Catalog) Create(ctx context.Context, in CreateInput, ownerID uuid.UUID) (job.Posting, error) {
	p := c.sanitizer.Posting(job.Posting{
		Title:               in.Title,
		Description:         in.Description,
		Type:                job.EmploymentType(in.Type),
		Education:           in.Education,
		Experience:          in.Experience,
		Skills:              in.Skills,
		Salary:              in.Salary,
		Location:            in.Location,
		Company:             in.Company,
		Status:              job.Status(in.Status),
		ApplicationDeadline: in.ApplicationDeadline,
	})
	if p.Status == "" {
		p.Status = job.StatusActive
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	p.PostedBy = job.Owner{ID: ownerID}

	fields := c.valid.Struct(in)
	for k, v := range p.Validate() {
		if fields == nil {
			fields = map[string]string{}
		}
		if _, ok := fields[k]; !ok {
			fields[k] = v
		}
	}
	if fields != nil {
		return job.Posting{}, apperror.BadRequest("validation failed", fields)
	}

	created, err := c.store.Create(ctx, p)
	if err != nil {
		return job.Posting{}, apperror.Internalf(err, "create job")
	}

	c.invalidate(ctx)
	if c.events != nil {
		c.events.PublishJobEvent(EventCreated, created.ID.String(), created.Title)
	}
	c.logger.Info("job created", zap.String("job_id", created.ID.String()), zap.String("owner_id", ownerID.String()))
	return created, nil
}

func (c *Catalog) Delete(ctx context.Context, rawID string) (job.Posting, error) {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return job.Posting{}, apperror.BadRequest("invalid job id", map[string]string{"id": "must be a valid id"})
	}

	deleted, err := c.store.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Posting{}, apperror.NotFound("job not found")
		}
		return job.Posting{}, apperror.Internalf(err, "delete job")
	}

	c.invalidate(ctx)
	if c.events != nil {
		c.events.PublishJobEvent(EventDeleted, deleted.ID.String(), deleted.Title)
	}
	c.logger.Info("job deleted", zap.String("job_id", deleted.ID.String()))
	return deleted, nil
}

func (c *Catalog) invalidate(ctx context.Context) {
	if c.cache == nil {
		return
	}
	if _, err := c.cache.Incr(ctx, listGenKey); err != nil {
		c.logger.Warn("jobs cache invalidation failed", zap.Error(err))
	}
}
