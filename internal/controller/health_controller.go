package controller

import (
	"fmt"
	"runtime"
	"time"

	"quicknotes-be/internal/cache"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const appVersion = "1.0.0"

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
	Detailed(ctx *fiber.Ctx) error
	Ready(ctx *fiber.Ctx) error
	Live(ctx *fiber.Ctx) error
}

type healthController struct {
	db          *gorm.DB
	cache       cache.Cache
	environment string
	startedAt   time.Time
}

func NewHealthController(db *gorm.DB, cacheGateway cache.Cache, environment string) IHealthController {
	return &healthController{
		db:          db,
		cache:       cacheGateway,
		environment: environment,
		startedAt:   time.Now(),
	}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/health")
	h.Get("/", c.Health)
	h.Get("/detailed", c.Detailed)
	h.Get("/ready", c.Ready)
	h.Get("/live", c.Live)
}

func (c *healthController) uptime() float64 {
	return time.Since(c.startedAt).Seconds()
}

func (c *healthController) pingDB(ctx *fiber.Ctx) (time.Duration, error) {
	sqlDB, err := c.db.DB()
	if err != nil {
		return 0, err
	}
	start := time.Now()
	if err := sqlDB.PingContext(ctx.Context()); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"status":      "healthy",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"uptime":      c.uptime(),
		"environment": c.environment,
		"version":     appVersion,
	})
}

func (c *healthController) Detailed(ctx *fiber.Ctx) error {
	status := "healthy"
	deps := fiber.Map{}

	if took, err := c.pingDB(ctx); err != nil {
		status = "unhealthy"
		deps["postgresql"] = fiber.Map{"status": "unhealthy", "error": err.Error()}
	} else {
		deps["postgresql"] = fiber.Map{"status": "healthy", "responseTime": fmt.Sprintf("%dms", took.Milliseconds())}
	}

	start := time.Now()
	if err := c.cache.Ping(ctx.Context()); err != nil {
		status = "unhealthy"
		deps["redis"] = fiber.Map{"status": "unhealthy", "error": err.Error()}
	} else {
		deps["redis"] = fiber.Map{"status": "healthy", "responseTime": fmt.Sprintf("%dms", time.Since(start).Milliseconds())}
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	code := fiber.StatusOK
	if status != "healthy" {
		code = fiber.StatusServiceUnavailable
	}

	return ctx.Status(code).JSON(fiber.Map{
		"status":       status,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"uptime":       c.uptime(),
		"environment":  c.environment,
		"version":      appVersion,
		"dependencies": deps,
		"memory": fiber.Map{
			"alloc":      fmt.Sprintf("%dMB", mem.Alloc/1024/1024),
			"sys":        fmt.Sprintf("%dMB", mem.Sys/1024/1024),
			"goroutines": runtime.NumGoroutine(),
		},
	})
}

func (c *healthController) Ready(ctx *fiber.Ctx) error {
	if _, err := c.pingDB(ctx); err != nil {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "not ready", "error": err.Error()})
	}
	if err := c.cache.Ping(ctx.Context()); err != nil {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "not ready", "error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"status": "ready"})
}

func (c *healthController) Live(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"status":    "alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    c.uptime(),
	})
}
