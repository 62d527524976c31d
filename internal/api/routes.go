package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/paladino/propiedades-web/internal/contact"
	"github.com/paladino/propiedades-web/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(app *fiber.App, h *Handlers) {
	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: h.config.CORSOrigins,
		AllowMethods: "GET,POST,OPTIONS",
	}))

	app.Get("/health", h.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/sitemap.xml", h.GetSitemap)

	app.Get("/api/test", h.APITest)
	app.Post("/api/send-email", middleware.ValidateRequest[contact.Request](h.validator), h.SendEmail)

	// API group with versioning
	api := app.Group("/api/v1")
	api.Get("/health", h.HealthCheck)
	api.Get("/home", h.GetHome)

	inmuebles := api.Group("/inmuebles")
	{
		inmuebles.Get("", middleware.ValidateQueryParams[ListingQuery](h.validator), h.GetListings)
		inmuebles.Get("/destacados", h.GetFeaturedListings)
		inmuebles.Get("/slug/:slug", h.GetListingBySlug)
		inmuebles.Get("/:id", h.GetListingByID)
	}

	emprendimientos := api.Group("/emprendimientos")
	{
		emprendimientos.Get("", h.GetDevelopments)
		emprendimientos.Get("/:slug", h.GetDevelopmentBySlug)
	}

	obras := api.Group("/obras")
	{
		obras.Get("", h.GetProjects)
		obras.Get("/:slug", h.GetProjectBySlug)
	}

	novedades := api.Group("/novedades")
	{
		novedades.Get("", h.GetNews)
		novedades.Get("/:slug", h.GetNewsBySlug)
	}

	api.Get("/zonas", h.GetZones)
	api.Get("/estados", h.GetStatuses)
	api.Get("/configuracion", h.GetSiteConfiguration)

	// 404 Handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
		})
	})
}
