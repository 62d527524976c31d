package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/paladino/propiedades-web/internal/logger"
	"github.com/paladino/propiedades-web/internal/metrics"
	"github.com/paladino/propiedades-web/internal/models"
	"github.com/rs/zerolog"
)

// Gateway is the single point of contact with the content API. It holds no
// mutable state, so one instance serves all requests.
type Gateway struct {
	opts   Options
	client *Client
	log    zerolog.Logger
}

func New(opts Options) *Gateway {
	opts = opts.withDefaults()
	return &Gateway{
		opts:   opts,
		client: NewClient(opts.BaseURL),
		log:    logger.Component("gateway"),
	}
}

// Probe checks that the content API answers before a listing fetch. It is a
// no-op when no probe URL is configured.
func (g *Gateway) Probe(ctx context.Context) error {
	if g.opts.ForceMock {
		return errMockForced
	}
	if g.opts.ProbeURL == "" {
		return nil
	}

	start := time.Now()
	_, err := g.client.Get(ctx, g.opts.ProbeURL, g.opts.ProbeTimeout)
	g.record("probe", g.opts.ProbeURL, start, err)
	if err != nil {
		return fmt.Errorf("content API unreachable: %w", err)
	}
	return nil
}

// FetchCollection reads every raw record of a resource. Callers decide what
// to substitute on error.
func (g *Gateway) FetchCollection(ctx context.Context, resource string) ([]json.RawMessage, error) {
	if g.opts.ForceMock {
		g.log.Debug().Str("resource", resource).Msg("Using mock data")
		return nil, errMockForced
	}

	start := time.Now()
	url := g.client.URL(resource)
	body, err := g.client.Get(ctx, url, g.opts.DataTimeout)
	var records []json.RawMessage
	if err == nil {
		records, err = decodeCollection(body)
	}
	g.record(resource, url, start, err)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (g *Gateway) record(resource, url string, start time.Time, err error) {
	elapsed := time.Since(start)
	if err != nil {
		outcome := "error"
		if errors.Is(err, context.DeadlineExceeded) {
			outcome = "timeout"
		}
		metrics.ObserveFetch(resource, outcome, elapsed)
		g.log.Warn().
			Err(err).
			Str("resource", resource).
			Str("url", url).
			Dur("duration", elapsed).
			Msg("Content API request failed")
		return
	}

	metrics.ObserveFetch(resource, "success", elapsed)
	g.log.Debug().
		Str("resource", resource).
		Str("url", url).
		Dur("duration", elapsed).
		Msg("Content API request succeeded")
}

func (g *Gateway) fellBack(resource string, src Source, err error) Result {
	metrics.ContentAPIFallbacks.WithLabelValues(resource).Inc()
	g.log.Info().
		Str("resource", resource).
		Str("source", string(src)).
		Str("reason", err.Error()).
		Msg("Serving fallback data")
	return degraded(src, err)
}

func fetchAll[T any](ctx context.Context, g *Gateway, resource string) ([]T, error) {
	raws, err := g.FetchCollection(ctx, resource)
	if err != nil {
		return nil, err
	}

	items := make([]T, 0, len(raws))
	for i, raw := range raws {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			g.log.Warn().
				Err(err).
				Str("resource", resource).
				Int("index", i).
				Msg("Skipping malformed record")
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// collection fetches a resource whose fallback is an empty list.
func collection[T any](ctx context.Context, g *Gateway, resource string) ([]T, Result) {
	items, err := fetchAll[T](ctx, g, resource)
	if err != nil {
		return []T{}, g.fellBack(resource, SourceEmpty, err)
	}
	return items, live()
}

func findFirst[T any](items []T, match func(T) bool) (T, error) {
	for _, item := range items {
		if match(item) {
			return item, nil
		}
	}
	var zero T
	return zero, ErrNotFound
}

func (g *Gateway) listings(ctx context.Context) ([]models.Listing, Result) {
	if err := g.Probe(ctx); err != nil {
		return FallbackListings(), g.fellBack(ResourceListings, SourceFallback, err)
	}
	items, err := fetchAll[models.Listing](ctx, g, ResourceListings)
	if err != nil {
		return FallbackListings(), g.fellBack(ResourceListings, SourceFallback, err)
	}
	return items, live()
}

// FetchListings returns the listings matching f, from the content API or,
// when it fails, from the fallback set.
func (g *Gateway) FetchListings(ctx context.Context, f ListingFilter) ([]models.Listing, Result) {
	items, res := g.listings(ctx)
	return f.Apply(items), res
}

// FetchFeaturedListings returns at most FeaturedLimit featured listings,
// wrapped with their 1-based position.
func (g *Gateway) FetchFeaturedListings(ctx context.Context) ([]models.Featured, Result) {
	items, res := g.listings(ctx)

	out := make([]models.Featured, 0, FeaturedLimit)
	for _, l := range items {
		if !l.Destacado {
			continue
		}
		pos := len(out) + 1
		out = append(out, models.Featured{
			ID:        pos,
			Inmueble:  l,
			Orden:     pos,
			CreatedAt: l.CreatedAt,
			UpdatedAt: l.UpdatedAt,
		})
		if len(out) == FeaturedLimit {
			break
		}
	}
	return out, res
}

// FetchListingBySlug returns ErrNotFound when no listing carries slug.
func (g *Gateway) FetchListingBySlug(ctx context.Context, slug string) (models.Listing, Result, error) {
	items, res := g.listings(ctx)
	l, err := findFirst(items, func(l models.Listing) bool { return l.Slug == slug })
	return l, res, err
}

// FetchListingByID returns ErrNotFound when no listing carries id.
func (g *Gateway) FetchListingByID(ctx context.Context, id int) (models.Listing, Result, error) {
	items, res := g.listings(ctx)
	l, err := findFirst(items, func(l models.Listing) bool { return l.ID == id })
	return l, res, err
}

func (g *Gateway) FetchDevelopments(ctx context.Context) ([]models.Development, Result) {
	return collection[models.Development](ctx, g, ResourceDevelopments)
}

func (g *Gateway) FetchDevelopmentBySlug(ctx context.Context, slug string) (models.Development, Result, error) {
	items, res := g.FetchDevelopments(ctx)
	d, err := findFirst(items, func(d models.Development) bool { return d.Slug == slug })
	return d, res, err
}

func (g *Gateway) FetchProjects(ctx context.Context) ([]models.CompletedProject, Result) {
	return collection[models.CompletedProject](ctx, g, ResourceProjects)
}

func (g *Gateway) FetchProjectBySlug(ctx context.Context, slug string) (models.CompletedProject, Result, error) {
	items, res := g.FetchProjects(ctx)
	p, err := findFirst(items, func(p models.CompletedProject) bool { return p.Slug == slug })
	return p, res, err
}

func (g *Gateway) FetchNews(ctx context.Context) ([]models.NewsItem, Result) {
	return collection[models.NewsItem](ctx, g, ResourceNews)
}

func (g *Gateway) FetchNewsBySlug(ctx context.Context, slug string) (models.NewsItem, Result, error) {
	items, res := g.FetchNews(ctx)
	n, err := findFirst(items, func(n models.NewsItem) bool { return n.Slug == slug })
	return n, res, err
}

// FetchSiteConfiguration returns nil when the configuration is unavailable.
// That is never an error: callers show SiteDisplay fallbacks instead.
func (g *Gateway) FetchSiteConfiguration(ctx context.Context) (*models.SiteConfiguration, Result) {
	items, res := collection[models.SiteConfiguration](ctx, g, ResourceSiteConfig)
	if len(items) == 0 {
		return nil, res
	}
	return &items[0], res
}
