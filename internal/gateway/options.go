package gateway

import (
	"errors"
	"time"
)

const (
	DefaultDataTimeout      = 10 * time.Second
	DefaultProbeTimeout     = 5 * time.Second
	DefaultPlaceholderImage = "/placeholder-property.jpg"

	// FeaturedLimit caps the featured listings shown on the home page.
	FeaturedLimit = 6
)

// Upstream resource names, relative to Options.BaseURL.
const (
	ResourceListings     = "inmuebles"
	ResourceDevelopments = "emprendimientos"
	ResourceProjects     = "obras"
	ResourceNews         = "novedades"
	ResourceSiteConfig   = "configuracion"
)

// ErrNotFound is returned by single-record lookups when the collection was
// read but holds no record with the requested key.
var ErrNotFound = errors.New("record not found")

var errMockForced = errors.New("mock data forced by configuration")

// Options is the immutable gateway configuration, built once at startup.
type Options struct {
	BaseURL          string
	ForceMock        bool
	DataTimeout      time.Duration
	ProbeURL         string
	ProbeTimeout     time.Duration
	PlaceholderImage string
}

func (o Options) withDefaults() Options {
	if o.DataTimeout <= 0 {
		o.DataTimeout = DefaultDataTimeout
	}
	if o.ProbeTimeout <= 0 {
		o.ProbeTimeout = DefaultProbeTimeout
	}
	if o.PlaceholderImage == "" {
		o.PlaceholderImage = DefaultPlaceholderImage
	}
	return o
}

// Source tells where the data of a Result came from.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
	SourceEmpty    Source = "empty"
)

// Result describes the outcome of a gateway fetch. Fetch failures never
// reach callers as errors; they show up here instead.
type Result struct {
	OK           bool   `json:"ok"`
	Source       Source `json:"source"`
	Reason       string `json:"reason,omitempty"`
	FallbackUsed bool   `json:"fallback_used"`
}

func live() Result {
	return Result{OK: true, Source: SourceLive}
}

func degraded(src Source, err error) Result {
	return Result{
		OK:           false,
		Source:       src,
		Reason:       err.Error(),
		FallbackUsed: true,
	}
}
