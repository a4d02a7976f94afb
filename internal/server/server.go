// Package server exposes the render pipeline over HTTP.
package server

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/KaramelBytes/dataview-cli/internal/pipeline"
	"github.com/KaramelBytes/dataview-cli/internal/view"
)

// HeaderRequestID carries the per-request identifier on every response.
const HeaderRequestID = "X-Request-ID"

// the collector registers itself globally, so it is built once per process
var (
	promOnce  sync.Once
	fiberprom *fiberprometheus.FiberPrometheus
)

func prom() *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		fiberprom = fiberprometheus.New(pipeline.ServiceName)
	})
	return fiberprom
}

// Config tunes the HTTP app.
type Config struct {
	// BodyLimit caps request bodies in bytes; 0 keeps fiber's 4 MiB default.
	BodyLimit int
}

type handlers struct {
	renderer *pipeline.Renderer
	validate *validator.Validate
}

// New builds the fiber app serving r.
func New(r *pipeline.Renderer, conf Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "dataview",
		ServerHeader:          "dataview",
		ReadTimeout:           time.Second * 20,
		WriteTimeout:          time.Second * 20,
		BodyLimit:             conf.BodyLimit,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          ErrorHandler,
		Immutable:             true,
		DisableStartupMessage: true,
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e any) {
			buf := make([]byte, 4096)
			buf = buf[:runtime.Stack(buf, false)]
			log.Error().Msgf("panic: %v\n%s\n", e, buf)
		},
	}))
	app.Use(requestID)
	app.Use(accessLog)

	p := prom()
	p.RegisterAt(app, "/metrics")
	app.Use(p.Middleware)

	h := &handlers{renderer: r, validate: view.NewValidator()}

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	v1 := app.Group("/api/v1")
	v1.Get("/views", h.views)
	v1.Get("/palette", h.palette)
	v1.Post("/render", h.render)
	v1.Post("/filter", h.filter)

	return app
}

func requestID(c *fiber.Ctx) error {
	id := c.Get(HeaderRequestID)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	c.Locals("requestid", id)
	c.Set(HeaderRequestID, id)
	return c.Next()
}

func accessLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	status := c.Response().StatusCode()
	if err != nil {
		var e *Error
		var fe *fiber.Error
		switch {
		case errors.As(err, &e):
			status = e.StatusCode
		case errors.As(err, &fe):
			status = fe.Code
		default:
			status = fiber.StatusInternalServerError
		}
	}
	log.Debug().
		Str("request_id", fmt.Sprint(c.Locals("requestid"))).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", status).
		Dur("took", time.Since(start)).
		Msg("http request")
	return err
}
