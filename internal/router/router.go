package router // package router defines how HTTP routes are registered for the API

import (
	"net/http" // http provides status code constants for the catch-all
	"strings"  // strings matches the /api/ prefix in the catch-all

	"github.com/labstack/echo/v4"                   // echo is the web framework handling routing
	echomw "github.com/labstack/echo/v4/middleware" // echomw supplies the builtin CORS middleware
	"github.com/redis/go-redis/v9"                  // redis backs the rate limiter (nil disables it)

	"github.com/nazosched/schedule-coordinator/internal/config"
	"github.com/nazosched/schedule-coordinator/internal/handler"
	"github.com/nazosched/schedule-coordinator/internal/middleware"
)

// RegisterRoutes wires every endpoint of the scheduling API onto the
// provided Echo instance. Identity resolution and CORS apply to every
// request; the Redis token-bucket limiter guards the /api group only, so
// health checks stay unthrottled.
func RegisterRoutes(e *echo.Echo, api *handler.API, cfg config.Config, rdb *redis.Client) {
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(middleware.Identity(middleware.HeaderIdentity(cfg.IdentityHeaders)))

	// Liveness probe for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	g := e.Group("/api")
	g.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	// Identity echo for the frontend.
	g.GET("/get-username", api.GetUsername)

	// Event CRUD over canonical URLs.
	g.GET("/events", api.ListEvents)
	g.POST("/events", api.CreateEvent)
	g.GET("/events/:eventUrlEncoded", api.GetEvent)
	g.PUT("/events/:eventUrlEncoded", api.UpdateEvent)
	g.DELETE("/events/:eventUrlEncoded", api.DeleteEvent)

	// Attendance summary (the aggregation endpoint).
	g.GET("/events/:eventUrlEncoded/summary", api.GetSummary)

	// Per-user selections.
	g.GET("/users/:username/events/:eventUrlEncoded/selections", api.GetSelections)
	g.POST("/users/:username/events/:eventUrlEncoded/selections", api.SaveSelections)

	// Outbound proxies.
	g.POST("/get-schedule", api.GetSchedule)
	g.POST("/fetch-html", api.FetchHTML)

	// Catch-all: unmatched /api/ paths are a JSON 404, anything else is sent
	// to the deployed frontend.
	e.Any("/*", func(c echo.Context) error {
		if strings.HasPrefix(c.Request().URL.Path, "/api/") {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "api endpoint not found"})
		}
		return c.Redirect(http.StatusFound, cfg.FrontendOrigin)
	})
}
