package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/mithuan2002/dropenote-sub000/internal/config"
	"github.com/mithuan2002/dropenote-sub000/internal/handlers"
	"github.com/mithuan2002/dropenote-sub000/internal/middleware"
	"github.com/mithuan2002/dropenote-sub000/internal/models"
	"github.com/mithuan2002/dropenote-sub000/internal/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authService *services.AuthService,
	authHandler *handlers.AuthHandler,
	campaignHandler *handlers.CampaignHandler,
	publicHandler *handlers.PublicHandler,
	couponHandler *handlers.CouponHandler,
	profileHandler *handlers.ProfileHandler,
	healthHandler *handlers.HealthHandler,
) {
	app.Get("/health", healthHandler.Check)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// General API rate limiter: 120 req/min per IP
	app.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	protected := middleware.SessionProtected(authService, cfg)
	brandOnly := middleware.RoleRequired(models.RoleBrand)
	staffOnly := middleware.RoleRequired(models.RoleStaff)

	// Auth — stricter rate limit against credential stuffing
	auth := app.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", protected, authHandler.Logout)
	auth.Get("/me", protected, authHandler.Me)

	// Campaigns — brand-owned, except detail reads which any authenticated user may hit
	app.Get("/campaigns", protected, brandOnly, campaignHandler.List)
	app.Post("/campaigns", protected, brandOnly, campaignHandler.Create)
	app.Get("/campaigns/:id", protected, campaignHandler.Get)
	app.Patch("/campaigns/:id", protected, brandOnly, campaignHandler.Update)
	app.Get("/campaigns/:id/analytics", protected, brandOnly, campaignHandler.Analytics)
	app.Get("/campaigns/:id/submissions", protected, brandOnly, campaignHandler.Submissions)

	// Public landing page — anonymous, submission attempts rate limited per IP
	app.Get("/c/:slug", publicHandler.Resolve)
	app.Post("/c/:slug/submit", limiter.New(limiter.Config{
		Max:               20,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}), publicHandler.Submit)

	// Profiles
	app.Get("/brand/profile", protected, brandOnly, profileHandler.GetBrand)
	app.Post("/brand/profile", protected, brandOnly, profileHandler.UpsertBrand)
	app.Get("/staff/profile", protected, staffOnly, profileHandler.GetStaff)
	app.Post("/staff/profile", protected, staffOnly, profileHandler.UpsertStaff)

	// Staff counter flow
	app.Post("/coupons/verify", protected, staffOnly, couponHandler.Verify)
	app.Post("/redemptions", protected, staffOnly, couponHandler.Redeem)
	app.Get("/redemptions", protected, staffOnly, couponHandler.ListRedemptions)
}
