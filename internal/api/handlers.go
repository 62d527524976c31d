package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/paladino/propiedades-web/internal/config"
	"github.com/paladino/propiedades-web/internal/contact"
	"github.com/paladino/propiedades-web/internal/gateway"
	"github.com/paladino/propiedades-web/internal/logger"
	"github.com/paladino/propiedades-web/internal/middleware"
	"github.com/paladino/propiedades-web/internal/models"
	"github.com/paladino/propiedades-web/internal/sitemap"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const version = "1.0.0"

type Handlers struct {
	config    *config.Config
	gateway   *gateway.Gateway
	contact   *contact.Service
	sitemap   *sitemap.Builder
	validator *middleware.Validator
}

func NewHandlers(cfg *config.Config, gw *gateway.Gateway, contactSvc *contact.Service) *Handlers {
	return &Handlers{
		config:    cfg,
		gateway:   gw,
		contact:   contactSvc,
		sitemap:   sitemap.NewBuilder(gw),
		validator: middleware.NewValidator(),
	}
}

// ListingQuery is the query string accepted by the listing search.
type ListingQuery struct {
	Zona        string `query:"zona"`
	Estado      string `query:"estado"`
	Tipo        string `query:"tipo"`
	Operacion   string `query:"operacion"`
	Search      string `query:"search"`
	PrecioMin   string `query:"precio_min" validate:"omitempty,numeric"`
	PrecioMax   string `query:"precio_max" validate:"omitempty,numeric"`
	Dormitorios int    `query:"dormitorios" validate:"gte=0"`
}

// Filter converts the query into a gateway filter. Zero or empty price
// bounds are treated as unset, as the search form sends them.
func (q ListingQuery) Filter() gateway.ListingFilter {
	return gateway.ListingFilter{
		Zone:        strings.TrimSpace(q.Zona),
		Status:      strings.TrimSpace(q.Estado),
		Type:        strings.TrimSpace(q.Tipo),
		Operation:   strings.TrimSpace(q.Operacion),
		Search:      strings.TrimSpace(q.Search),
		MinPrice:    priceBound(q.PrecioMin),
		MaxPrice:    priceBound(q.PrecioMax),
		MinBedrooms: q.Dormitorios,
	}
}

func priceBound(raw string) *decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || d.IsZero() {
		return nil
	}
	return &d
}

func withResult(res gateway.Result, body fiber.Map) fiber.Map {
	body["ok"] = res.OK
	body["source"] = res.Source
	body["fallback_used"] = res.FallbackUsed
	if res.Reason != "" {
		body["reason"] = res.Reason
	}
	return body
}

func notFound(c *fiber.Ctx, what string, res gateway.Result) error {
	return c.Status(fiber.StatusNotFound).JSON(withResult(res, fiber.Map{
		"error": what + " no encontrado",
	}))
}

// HealthCheck handles the /health endpoint
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": version,
		"time":    time.Now().Format(time.RFC3339),
	})
}

// APITest is the lightweight target of the content reachability probe.
func (h *Handlers) APITest(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"message":   "API funcionando correctamente",
		"mock_data": h.config.UseMockData,
	})
}

// GetListings handles GET /api/v1/inmuebles
func (h *Handlers) GetListings(c *fiber.Ctx) error {
	q, ok := middleware.QueryParams[ListingQuery](c)
	if !ok {
		q = &ListingQuery{}
	}

	items, res := h.gateway.FetchListings(c.UserContext(), q.Filter())
	cards := h.gateway.ListingCards(items)
	return c.JSON(withResult(res, fiber.Map{
		"count": len(cards),
		"items": cards,
	}))
}

type featuredCard struct {
	ID       int                 `json:"id"`
	Orden    int                 `json:"orden"`
	Inmueble gateway.ListingCard `json:"inmueble"`
}

func (h *Handlers) featuredCards(items []models.Featured) []featuredCard {
	out := make([]featuredCard, 0, len(items))
	for _, f := range items {
		out = append(out, featuredCard{
			ID:       f.ID,
			Orden:    f.Orden,
			Inmueble: h.gateway.ListingCard(f.Inmueble),
		})
	}
	return out
}

// GetFeaturedListings handles GET /api/v1/inmuebles/destacados
func (h *Handlers) GetFeaturedListings(c *fiber.Ctx) error {
	items, res := h.gateway.FetchFeaturedListings(c.UserContext())
	cards := h.featuredCards(items)
	return c.JSON(withResult(res, fiber.Map{
		"count": len(cards),
		"items": cards,
	}))
}

// GetListingBySlug handles GET /api/v1/inmuebles/slug/:slug
func (h *Handlers) GetListingBySlug(c *fiber.Ctx) error {
	l, res, err := h.gateway.FetchListingBySlug(c.UserContext(), c.Params("slug"))
	if errors.Is(err, gateway.ErrNotFound) {
		return notFound(c, "Inmueble", res)
	}
	return c.JSON(withResult(res, fiber.Map{
		"item": h.gateway.ListingDetail(l),
	}))
}

// GetListingByID handles GET /api/v1/inmuebles/:id
func (h *Handlers) GetListingByID(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "ID de inmueble inválido",
		})
	}

	l, res, err := h.gateway.FetchListingByID(c.UserContext(), id)
	if errors.Is(err, gateway.ErrNotFound) {
		return notFound(c, "Inmueble", res)
	}
	return c.JSON(withResult(res, fiber.Map{
		"item": h.gateway.ListingDetail(l),
	}))
}

// GetDevelopments handles GET /api/v1/emprendimientos
func (h *Handlers) GetDevelopments(c *fiber.Ctx) error {
	items, res := h.gateway.FetchDevelopments(c.UserContext())
	cards := h.gateway.DevelopmentCards(items)
	return c.JSON(withResult(res, fiber.Map{
		"count": len(cards),
		"items": cards,
	}))
}

// GetDevelopmentBySlug handles GET /api/v1/emprendimientos/:slug
func (h *Handlers) GetDevelopmentBySlug(c *fiber.Ctx) error {
	d, res, err := h.gateway.FetchDevelopmentBySlug(c.UserContext(), c.Params("slug"))
	if errors.Is(err, gateway.ErrNotFound) {
		return notFound(c, "Emprendimiento", res)
	}
	return c.JSON(withResult(res, fiber.Map{
		"item": h.gateway.DevelopmentDetail(d),
	}))
}

// GetProjects handles GET /api/v1/obras
func (h *Handlers) GetProjects(c *fiber.Ctx) error {
	items, res := h.gateway.FetchProjects(c.UserContext())
	cards := h.gateway.ProjectCards(items)
	return c.JSON(withResult(res, fiber.Map{
		"count": len(cards),
		"items": cards,
	}))
}

// GetProjectBySlug handles GET /api/v1/obras/:slug
func (h *Handlers) GetProjectBySlug(c *fiber.Ctx) error {
	p, res, err := h.gateway.FetchProjectBySlug(c.UserContext(), c.Params("slug"))
	if errors.Is(err, gateway.ErrNotFound) {
		return notFound(c, "Obra", res)
	}
	return c.JSON(withResult(res, fiber.Map{
		"item": h.gateway.ProjectDetail(p),
	}))
}

// GetNews handles GET /api/v1/novedades
func (h *Handlers) GetNews(c *fiber.Ctx) error {
	items, res := h.gateway.FetchNews(c.UserContext())
	cards := h.gateway.NewsCards(items)
	return c.JSON(withResult(res, fiber.Map{
		"count": len(cards),
		"items": cards,
	}))
}

// GetNewsBySlug handles GET /api/v1/novedades/:slug
func (h *Handlers) GetNewsBySlug(c *fiber.Ctx) error {
	n, res, err := h.gateway.FetchNewsBySlug(c.UserContext(), c.Params("slug"))
	if errors.Is(err, gateway.ErrNotFound) {
		return notFound(c, "Novedad", res)
	}
	return c.JSON(withResult(res, fiber.Map{
		"item": h.gateway.NewsDetail(n),
	}))
}

func (h *Handlers) GetZones(c *fiber.Ctx) error {
	zones := gateway.Zones()
	return c.JSON(fiber.Map{"count": len(zones), "items": zones})
}

func (h *Handlers) GetStatuses(c *fiber.Ctx) error {
	statuses := gateway.Statuses()
	return c.JSON(fiber.Map{"count": len(statuses), "items": statuses})
}

// GetSiteConfiguration handles GET /api/v1/configuracion
func (h *Handlers) GetSiteConfiguration(c *fiber.Ctx) error {
	cfg, res := h.gateway.FetchSiteConfiguration(c.UserContext())
	return c.JSON(withResult(res, fiber.Map{
		"configuration": cfg,
		"display":       h.gateway.SiteDisplay(cfg),
	}))
}

// GetHome handles GET /api/v1/home. The collections are fetched
// concurrently; each one degrades on its own.
func (h *Handlers) GetHome(c *fiber.Ctx) error {
	var (
		featured     []models.Featured
		featuredRes  gateway.Result
		developments []models.Development
		devRes       gateway.Result
		siteCfg      *models.SiteConfiguration
		siteRes      gateway.Result
	)

	g, ctx := errgroup.WithContext(c.UserContext())
	g.Go(func() error {
		featured, featuredRes = h.gateway.FetchFeaturedListings(ctx)
		return nil
	})
	g.Go(func() error {
		developments, devRes = h.gateway.FetchDevelopments(ctx)
		return nil
	})
	g.Go(func() error {
		siteCfg, siteRes = h.gateway.FetchSiteConfiguration(ctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"destacados":      withResult(featuredRes, fiber.Map{"items": h.featuredCards(featured)}),
		"emprendimientos": withResult(devRes, fiber.Map{"items": h.gateway.DevelopmentCards(developments)}),
		"sitio":           withResult(siteRes, fiber.Map{"display": h.gateway.SiteDisplay(siteCfg)}),
		"zonas":           gateway.Zones(),
		"estados":         gateway.Statuses(),
	})
}

// SendEmail handles POST /api/send-email
func (h *Handlers) SendEmail(c *fiber.Ctx) error {
	req, ok := middleware.Validated[contact.Request](c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": middleware.MsgMissingFields,
		})
	}

	_, err := h.contact.Submit(c.UserContext(), *req)
	switch {
	case errors.Is(err, contact.ErrCaptchaRequired):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Debe resolver la verificación",
		})
	case errors.Is(err, contact.ErrCaptchaInvalid):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "La verificación es incorrecta",
		})
	case err != nil:
		logger.WithContext(c.UserContext()).Error().Err(err).Msg("Error sending contact email")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error interno del servidor",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Email enviado correctamente",
	})
}

// GetSitemap handles GET /sitemap.xml
func (h *Handlers) GetSitemap(c *fiber.Ctx) error {
	base := sitemap.BaseURL(c.Hostname(), h.config.SiteURL)
	set, err := h.sitemap.Build(c.UserContext(), base)
	if err != nil {
		return err
	}
	body, err := set.Encode()
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/xml")
	c.Set(fiber.HeaderCacheControl, sitemap.CacheControl)
	return c.Send(body)
}
