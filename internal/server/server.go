// Package server exposes digest generation and repository explanations
// over HTTP with Fiber.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/static"
	"github.com/kevinmichaelchen/trend-digest/internal/digest"
	"github.com/kevinmichaelchen/trend-digest/internal/llm"
	"github.com/kevinmichaelchen/trend-digest/internal/logging"
	"github.com/kevinmichaelchen/trend-digest/internal/models"
	"golang.org/x/sync/errgroup"
)

//go:embed web
var webFS embed.FS

const (
	codeValidation    = "validation"
	codeInternal      = "internal"
	codeConfiguration = "configuration"
	codeUpstream      = "upstream"
)

type Generator interface {
	Generate(ctx context.Context, req digest.Request) (*digest.Result, error)
}

type Explainer interface {
	Explain(ctx context.Context, req models.ExplanationRequest) (string, error)
}

type ExplanationRenderer interface {
	Explanation(req models.ExplanationRequest, text string) (string, error)
}

type Options struct {
	// StaticDir replaces the embedded page when set.
	StaticDir string
}

type Server struct {
	app       *fiber.App
	generator Generator
	explainer Explainer
	renderer  ExplanationRenderer
	logger    *slog.Logger
}

func New(g Generator, e Explainer, r ExplanationRenderer, opts Options) (*Server, error) {
	s := &Server{
		generator: g,
		explainer: e,
		renderer:  r,
		logger:    logging.New("server"),
	}

	app := fiber.New(fiber.Config{
		AppName:      "trend-digest",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
	}))

	api := app.Group("/api")
	api.Get("/health", s.health)
	api.Post("/generate", s.generate)
	api.Post("/ai-explain", s.explain)

	app.Get("/favicon.ico", noContent)
	app.Get("/favicon.png", noContent)

	if opts.StaticDir != "" {
		s.logger.Info("serving static directory", "dir", opts.StaticDir)
		app.Get("/*", static.New(opts.StaticDir))
	} else {
		sub, err := fs.Sub(webFS, "web")
		if err != nil {
			return nil, fmt.Errorf("loading embedded page: %w", err)
		}
		app.Get("/*", static.New("", static.Config{FS: sub}))
	}

	s.app = app
	return s, nil
}

// App returns the underlying Fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("listening", "addr", addr)
		return s.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func noContent(c fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

type generateBody struct {
	Domains   string `json:"domains"`
	Prompt    string `json:"prompt"`
	Days      *int   `json:"days"`
	DateRange string `json:"dateRange"`
}

func (s *Server) generate(c fiber.Ctx) error {
	var body generateBody
	if err := c.Bind().JSON(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, codeValidation, "invalid request body")
	}

	days := 0
	if body.Days != nil {
		days = *body.Days
	}
	req, err := digest.NewRequest(body.Domains, body.Prompt, days, body.DateRange, digest.Permissive)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, codeValidation, err.Error())
	}

	res, err := s.generator.Generate(c.Context(), req)
	if err != nil {
		s.logger.Error("generation failed", "domains", req.Domains, "error", err)
		return fail(c, fiber.StatusInternalServerError, codeInternal, "generation failed, please try again later")
	}

	return c.JSON(fiber.Map{"success": true, "html": res.HTML})
}

func (s *Server) explain(c fiber.Ctx) error {
	var req models.ExplanationRequest
	if err := c.Bind().JSON(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, codeValidation, "invalid request body")
	}
	if req.Repo == "" {
		return fail(c, fiber.StatusBadRequest, codeValidation, "repo is required")
	}

	text, err := s.explainer.Explain(c.Context(), req)
	switch {
	case errors.Is(err, llm.ErrMissingAPIKey):
		s.logger.Warn("explain requested without a completion key", "repo", req.Repo)
		return fail(c, fiber.StatusServiceUnavailable, codeConfiguration, err.Error())
	case err != nil:
		s.logger.Error("explanation failed", "repo", req.Repo, "error", err)
		return fail(c, fiber.StatusBadGateway, codeUpstream, "explanation failed, please try again later")
	}

	page, err := s.renderer.Explanation(req, text)
	if err != nil {
		s.logger.Error("rendering explanation", "repo", req.Repo, "error", err)
		return fail(c, fiber.StatusInternalServerError, codeInternal, "rendering explanation failed")
	}

	return c.JSON(fiber.Map{"success": true, "explanation": text, "html": page})
}

func fail(c fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   msg,
		"code":    code,
	})
}
