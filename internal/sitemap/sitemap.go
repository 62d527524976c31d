// Package sitemap builds the public sitemap from the content API and
// publishes it to object storage.
package sitemap

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/paladino/propiedades-web/internal/gateway"
	"github.com/paladino/propiedades-web/internal/logger"
	"github.com/paladino/propiedades-web/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	Namespace    = "http://www.sitemaps.org/schemas/sitemap/0.9"
	CacheControl = "public, max-age=3600, s-maxage=3600"
)

// URL is one <url> entry.
type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// URLSet is the sitemap document root.
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// Encode renders the document with its XML declaration.
func (s *URLSet) Encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("failed to encode sitemap: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

type staticPage struct {
	path       string
	changeFreq string
	priority   string
}

var staticPages = []staticPage{
	{"/", "daily", "1.0"},
	{"/inmuebles", "daily", "0.9"},
	{"/emprendimientos", "weekly", "0.8"},
	{"/novedades", "weekly", "0.7"},
	{"/zonas", "monthly", "0.6"},
	{"/contacto", "weekly", "0.5"},
}

// Source is the content the sitemap lists. *gateway.Gateway satisfies it.
type Source interface {
	FetchListings(ctx context.Context, f gateway.ListingFilter) ([]models.Listing, gateway.Result)
	FetchDevelopments(ctx context.Context) ([]models.Development, gateway.Result)
	FetchNews(ctx context.Context) ([]models.NewsItem, gateway.Result)
}

type Builder struct {
	src Source
	log zerolog.Logger
	now func() time.Time
}

func NewBuilder(src Source) *Builder {
	return &Builder{
		src: src,
		log: logger.Component("sitemap"),
		now: time.Now,
	}
}

// Build lists the static pages followed by every live listing, development
// and news item. Records served from the fallback dataset are left out.
func (b *Builder) Build(ctx context.Context, baseURL string) (*URLSet, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	today := b.now().UTC().Format(time.DateOnly)

	var (
		listings     []models.Listing
		developments []models.Development
		news         []models.NewsItem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, res := b.src.FetchListings(gctx, gateway.ListingFilter{})
		listings = liveOnly(b.log, gateway.ResourceListings, res, items)
		return nil
	})
	g.Go(func() error {
		items, res := b.src.FetchDevelopments(gctx)
		developments = liveOnly(b.log, gateway.ResourceDevelopments, res, items)
		return nil
	})
	g.Go(func() error {
		items, res := b.src.FetchNews(gctx)
		news = liveOnly(b.log, gateway.ResourceNews, res, items)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	set := &URLSet{Xmlns: Namespace}
	for _, p := range staticPages {
		set.URLs = append(set.URLs, URL{
			Loc:        baseURL + p.path,
			LastMod:    today,
			ChangeFreq: p.changeFreq,
			Priority:   p.priority,
		})
	}
	for _, l := range listings {
		set.add(baseURL+"/inmueble/", l.Slug, lastMod(l.UpdatedAt, today), "weekly", "0.8")
	}
	for _, d := range developments {
		set.add(baseURL+"/emprendimientos/", d.Slug, lastMod(d.UpdatedAt, today), "weekly", "0.7")
	}
	for _, n := range news {
		set.add(baseURL+"/novedades/", n.Slug, lastMod(n.UpdatedAt, today), "weekly", "0.6")
	}
	return set, nil
}

func (s *URLSet) add(prefix, slug, lastmod, freq, priority string) {
	if slug == "" {
		return
	}
	s.URLs = append(s.URLs, URL{
		Loc:        prefix + slug,
		LastMod:    lastmod,
		ChangeFreq: freq,
		Priority:   priority,
	})
}

func liveOnly[T any](log zerolog.Logger, resource string, res gateway.Result, items []T) []T {
	if res.Source != gateway.SourceLive {
		log.Warn().
			Str("resource", resource).
			Str("source", string(res.Source)).
			Str("reason", res.Reason).
			Msg("Skipping non-live records in sitemap")
		return nil
	}
	return items
}

// lastMod returns the calendar date of an upstream timestamp, or today when
// it is missing or unparseable.
func lastMod(raw, today string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return today
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, time.DateTime, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Format(time.DateOnly)
		}
	}
	return today
}

// BaseURL picks the origin for sitemap links: the request host for local
// development, the configured public site otherwise.
func BaseURL(host, siteURL string) string {
	if strings.Contains(host, "localhost") || strings.Contains(host, "127.0.0.1") {
		return "http://" + host
	}
	return strings.TrimRight(siteURL, "/")
}
